//go:build !android

package platform

const osIdentifier = Linux
