package manifest

// Package manifest holds the application context bundled into the binary:
// product metadata, main window configuration and plugin settings. It is
// parsed once at start-up and never written back.
