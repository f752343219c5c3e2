package ui

// Package ui contains the Fyne window content that plays the role of the
// embedded UI layer. It never calls native code directly: every query and
// action goes through the ipc bridge as a named command invocation.
