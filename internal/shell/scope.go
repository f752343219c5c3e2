package shell

import (
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/pierre-app/pierre-desktop/internal/manifest"
	"github.com/pierre-app/pierre-desktop/internal/platform"
)

// ErrNotAllowed is returned for programs or targets outside the configured scope.
var ErrNotAllowed = errors.New("not allowed by shell scope")

// Scope decides what the UI layer may open and run.
type Scope struct {
	openEnabled bool
	openPattern *regexp.Regexp
	entries     map[string]manifest.ScopeEntry
}

// NewScope builds a Scope from the shell section of the manifest.
func NewScope(cfg manifest.Shell) (*Scope, error) {
	pattern := cfg.OpenPattern
	if pattern == "" {
		pattern = manifest.DefaultOpenPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid open pattern: %w", err)
	}

	entries := make(map[string]manifest.ScopeEntry, len(cfg.Scope))
	for _, entry := range cfg.Scope {
		entries[entry.Name] = entry
	}

	return &Scope{
		openEnabled: cfg.Open,
		openPattern: re,
		entries:     entries,
	}, nil
}

// CheckOpen validates a target for the open command.
func (s *Scope) CheckOpen(target string) error {
	if !s.openEnabled {
		return fmt.Errorf("%w: open is disabled", ErrNotAllowed)
	}
	if !s.openPattern.MatchString(target) {
		return fmt.Errorf("%w: %s does not match the open pattern", ErrNotAllowed, target)
	}
	return nil
}

// CheckOpenWith validates the application requested by the open command.
// Only the known openers are accepted, never a path or an arbitrary program.
func (s *Scope) CheckOpenWith(with string) error {
	if _, err := platform.ParseOpener(with); err != nil {
		return fmt.Errorf("%w: %w", ErrNotAllowed, err)
	}
	return nil
}

// Resolve maps a scope entry name and requested args to the real program and
// the args it will run with. Entries with fixed args accept either no args or
// exactly those args.
func (s *Scope) Resolve(name string, args []string) (string, []string, error) {
	entry, exists := s.entries[name]
	if !exists {
		return "", nil, fmt.Errorf("%w: program %s is not in scope", ErrNotAllowed, name)
	}

	switch {
	case entry.AnyArgs:
		return entry.Cmd, slices.Clone(args), nil
	case len(args) == 0:
		return entry.Cmd, slices.Clone(entry.Args), nil
	case slices.Equal(args, entry.Args):
		return entry.Cmd, slices.Clone(args), nil
	default:
		return "", nil, fmt.Errorf("%w: arguments for %s do not match scope", ErrNotAllowed, name)
	}
}
