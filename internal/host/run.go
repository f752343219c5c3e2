package host

import (
	"log/slog"

	"github.com/pierre-app/pierre-desktop/internal/commands"
	"github.com/pierre-app/pierre-desktop/internal/manifest"
	"github.com/pierre-app/pierre-desktop/internal/shell"
)

// Run is the application start-up function used by the desktop and mobile
// entry points. It blocks until the event loop exits.
func Run() error {
	return Start(manifest.Bundled())
}

// Start wires the default host with the shell plugin and the command table
// and runs it with the given manifest data.
func Start(manifestData []byte) error {
	logger := slog.Default()
	return Default().
		Logger(logger).
		Plugin(shell.Init(shell.WithLogger(logger))).
		InvokeHandler(commands.Table()).
		Run(manifestData)
}
