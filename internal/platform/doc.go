package platform

// Package platform contains OS integration: the compile-time identifier of the
// build target reported to the UI layer, and helpers that hand URLs and files
// to the system default application.
