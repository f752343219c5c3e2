package host

// Package host is the application bootstrapper. It builds the host
// configuration, attaches capability modules, registers the command handler
// table and runs the Fyne event loop with the bundled manifest.
