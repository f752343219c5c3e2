package shell

// Package shell is the shell-execution capability module. It exposes
// plugin:shell|open, execute, spawn, kill and processes to the UI layer.
// Every program it runs must be allowlisted in the manifest scope.
