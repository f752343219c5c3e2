package main

import (
	"log/slog"
	"os"

	"github.com/pierre-app/pierre-desktop/internal/host"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

// start is the application start-up function. Fyne's mobile driver enters
// through this same main, so desktop and mobile builds share it.
var start = host.Run

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	slog.Info("Pierre desktop starting", "version", version)

	if err := start(); err != nil {
		slog.Error("error while running Pierre desktop application", "err", err)
		os.Exit(1)
	}
}
