//go:build !ios

package platform

const osIdentifier = MacOS
