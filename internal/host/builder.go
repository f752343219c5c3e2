package host

import (
	"fmt"
	"log/slog"
	"maps"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/pierre-app/pierre-desktop/internal/ipc"
	"github.com/pierre-app/pierre-desktop/internal/manifest"
	"github.com/pierre-app/pierre-desktop/internal/platform"
	"github.com/pierre-app/pierre-desktop/internal/ui"
)

// AppFactory creates the Fyne application for a manifest identifier.
type AppFactory func(id string) fyne.App

// Builder collects the host configuration before the event loop starts.
type Builder struct {
	plugins  []ipc.Plugin
	handlers ipc.HandlerTable
	logger   *slog.Logger
	newApp   AppFactory
}

// Host is a built application ready to run.
type Host struct {
	App        fyne.App
	Window     fyne.Window
	Dispatcher *ipc.Dispatcher
	Manifest   *manifest.Manifest
	UI         *ui.RootUI

	plugins []ipc.Plugin
	logger  *slog.Logger
}

// Default returns a builder with the default host configuration.
func Default() *Builder {
	return &Builder{
		handlers: ipc.HandlerTable{},
		logger:   slog.Default(),
		newApp:   app.NewWithID,
	}
}

// Plugin attaches a capability module.
func (b *Builder) Plugin(p ipc.Plugin) *Builder {
	b.plugins = append(b.plugins, p)
	return b
}

// InvokeHandler registers a command handler table. Later tables override
// earlier entries for the same command.
func (b *Builder) InvokeHandler(table ipc.HandlerTable) *Builder {
	maps.Copy(b.handlers, table)
	return b
}

// Logger sets the logger used by the host and its dispatcher.
func (b *Builder) Logger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// AppFactory replaces the Fyne application constructor.
func (b *Builder) AppFactory(factory AppFactory) *Builder {
	if factory != nil {
		b.newApp = factory
	}
	return b
}

// Build loads the manifest, sets up plugins and creates the main window
// without entering the event loop.
func (b *Builder) Build(manifestData []byte) (*Host, error) {
	m, err := manifest.Parse(manifestData)
	if err != nil {
		return nil, fmt.Errorf("start-up: load manifest: %w", err)
	}

	for _, p := range b.plugins {
		if p == nil {
			return nil, fmt.Errorf("start-up: nil plugin")
		}
		if err := p.Setup(m); err != nil {
			return nil, fmt.Errorf("start-up: plugin %s: %w", p.Name(), err)
		}
	}

	dispatcher, err := ipc.NewDispatcher(b.logger, b.handlers, b.plugins...)
	if err != nil {
		return nil, fmt.Errorf("start-up: register commands: %w", err)
	}

	a := b.newApp(m.Identifier)
	a.Settings().SetTheme(ui.NewTheme())

	w := a.NewWindow(m.WindowTitle())
	configureWindow(w, m.App.Window)
	w.SetMaster()

	h := &Host{
		App:        a,
		Window:     w,
		Dispatcher: dispatcher,
		Manifest:   m,
		plugins:    b.plugins,
		logger:     b.logger,
	}
	h.UI = ui.NewRootUI(w, dispatcher, m, b.logger)

	b.logger.Info("host built",
		"product", m.ProductName,
		"version", m.Version,
		"platform", platform.Identifier(),
		"commands", dispatcher.Commands(),
		"plugins", dispatcher.Plugins(),
	)
	return h, nil
}

// Run builds the host and blocks in the event loop until the main window
// closes.
func (b *Builder) Run(manifestData []byte) error {
	h, err := b.Build(manifestData)
	if err != nil {
		return err
	}
	h.Run()
	return nil
}

// Run shows the main window and blocks in the event loop. Plugins holding
// resources are closed once the loop exits.
func (h *Host) Run() {
	h.logger.Info("event loop starting", "window", h.Window.Title())
	h.Window.ShowAndRun()
	h.close()
	h.logger.Info("event loop stopped")
}

func (h *Host) close() {
	for _, p := range h.plugins {
		if c, ok := p.(interface{ Close() }); ok {
			c.Close()
		}
	}
}

func configureWindow(w fyne.Window, cfg manifest.Window) {
	if platform.IsMobile() {
		// mobile windows always fill the screen
		return
	}
	w.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))
	w.SetFixedSize(!cfg.Resizable)
	if cfg.Fullscreen {
		w.SetFullScreen(true)
	}
}
