package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"regexp"

	"github.com/pelletier/go-toml/v2"
)

//go:embed pierre.toml
var bundled []byte

// Default values
const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
	DefaultOpenPattern  = `^((mailto:\w+)|(tel:\w+)|(https?://\w+)).+`
)

var (
	// ErrMissing means no manifest data was supplied.
	ErrMissing = errors.New("manifest is missing")
	// ErrInvalid means the manifest could not be decoded or failed validation.
	ErrInvalid = errors.New("manifest is invalid")
)

// Manifest is the application context the host is started with.
type Manifest struct {
	ProductName string  `toml:"product_name"`
	Version     string  `toml:"version"`
	Identifier  string  `toml:"identifier"`
	Homepage    string  `toml:"homepage"`
	App         App     `toml:"app"`
	Plugins     Plugins `toml:"plugins"`
}

// App groups host application settings.
type App struct {
	Window Window `toml:"window"`
}

// Window describes the main window.
type Window struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Resizable  bool   `toml:"resizable"`
	Fullscreen bool   `toml:"fullscreen"`
}

// Plugins holds per-plugin configuration.
type Plugins struct {
	Shell Shell `toml:"shell"`
}

// Shell configures the shell capability module.
type Shell struct {
	// Open enables the open command.
	Open bool `toml:"open"`
	// OpenPattern restricts what open accepts. Empty means DefaultOpenPattern.
	OpenPattern string       `toml:"open_pattern"`
	Scope       []ScopeEntry `toml:"scope"`
}

// ScopeEntry allows the UI layer to run one program.
type ScopeEntry struct {
	Name    string   `toml:"name"`
	Cmd     string   `toml:"cmd"`
	Args    []string `toml:"args"`
	AnyArgs bool     `toml:"any_args"`
}

// Bundled returns the manifest compiled into the binary.
func Bundled() []byte {
	return bundled
}

// Load parses the bundled manifest.
func Load() (*Manifest, error) {
	return Parse(bundled)
}

// Parse decodes and validates manifest data. Unknown keys are rejected so a
// corrupted manifest fails loudly instead of starting with defaults.
func Parse(data []byte) (*Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrMissing
	}

	m := defaults()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if m.App.Window.Title == "" {
		m.App.Window.Title = m.ProductName
	}
	if m.Plugins.Shell.OpenPattern == "" {
		m.Plugins.Shell.OpenPattern = DefaultOpenPattern
	}
	return m, nil
}

// WindowTitle returns the title shown in the main window.
func (m *Manifest) WindowTitle() string {
	if m.Version == "" {
		return m.App.Window.Title
	}
	return fmt.Sprintf("%s v%s", m.App.Window.Title, m.Version)
}

func defaults() *Manifest {
	return &Manifest{
		App: App{
			Window: Window{
				Width:     DefaultWindowWidth,
				Height:    DefaultWindowHeight,
				Resizable: true,
			},
		},
	}
}

func (m *Manifest) validate() error {
	if m.ProductName == "" {
		return errors.New("product_name is required")
	}
	if m.Identifier == "" {
		return errors.New("identifier is required")
	}
	if m.App.Window.Width <= 0 || m.App.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", m.App.Window.Width, m.App.Window.Height)
	}

	if p := m.Plugins.Shell.OpenPattern; p != "" {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("shell open_pattern: %w", err)
		}
	}

	seen := make(map[string]bool, len(m.Plugins.Shell.Scope))
	for i, entry := range m.Plugins.Shell.Scope {
		if entry.Name == "" {
			return fmt.Errorf("shell scope entry %d has no name", i)
		}
		if entry.Cmd == "" {
			return fmt.Errorf("shell scope entry %q has no cmd", entry.Name)
		}
		if entry.AnyArgs && len(entry.Args) > 0 {
			return fmt.Errorf("shell scope entry %q sets both args and any_args", entry.Name)
		}
		if seen[entry.Name] {
			return fmt.Errorf("duplicate shell scope entry %q", entry.Name)
		}
		seen[entry.Name] = true
	}
	return nil
}
