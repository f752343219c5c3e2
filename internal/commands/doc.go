package commands

// Package commands holds the built-in command handlers the UI layer can invoke.
