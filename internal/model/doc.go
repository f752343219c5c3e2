package model

// Package model defines the records the shell capability module keeps for
// child processes it starts on behalf of the UI layer, and their status enum.
// Structures serialize directly into command responses.
