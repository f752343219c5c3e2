package shell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pierre-app/pierre-desktop/internal/ipc"
	"github.com/pierre-app/pierre-desktop/internal/manifest"
	"github.com/pierre-app/pierre-desktop/internal/model"
	"github.com/pierre-app/pierre-desktop/internal/platform"
)

// PluginName is the plugin segment of every shell command name.
const PluginName = "shell"

// Shell command names
const (
	CmdOpen      = "open"
	CmdExecute   = "execute"
	CmdSpawn     = "spawn"
	CmdKill      = "kill"
	CmdProcesses = "processes"
)

// OpenFunc hands a target to the system default application.
type OpenFunc func(ctx context.Context, target, with string) error

type openArgs struct {
	Path string `json:"path"`
	With string `json:"with"`
}

type programArgs struct {
	Program string   `json:"program"`
	Args    []string `json:"args"`
}

type killArgs struct {
	ID string `json:"id"`
}

// Plugin is the shell capability module.
type Plugin struct {
	scope     *Scope
	processes *Processes
	open      OpenFunc
	logger    *slog.Logger
}

// Option customizes a Plugin.
type Option func(*Plugin)

// WithOpener replaces the default application launcher.
func WithOpener(open OpenFunc) Option {
	return func(p *Plugin) {
		p.open = open
	}
}

// WithLogger sets the plugin logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		p.logger = logger
	}
}

// Init creates the shell plugin. It rejects every command until Setup has
// applied the manifest scope.
func Init(opts ...Option) *Plugin {
	p := &Plugin{
		open:   platform.OpenWithDefaultApp,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.processes = NewProcesses(p.logger)
	return p
}

// Name implements ipc.Plugin.
func (p *Plugin) Name() string {
	return PluginName
}

// Setup implements ipc.Plugin.
func (p *Plugin) Setup(m *manifest.Manifest) error {
	scope, err := NewScope(m.Plugins.Shell)
	if err != nil {
		return fmt.Errorf("shell plugin setup: %w", err)
	}
	p.scope = scope
	return nil
}

// Processes exposes the spawned process table.
func (p *Plugin) Processes() *Processes {
	return p.processes
}

// Invoke implements ipc.Plugin.
func (p *Plugin) Invoke(ctx context.Context, command string, args json.RawMessage) (any, error) {
	if p.scope == nil {
		return nil, ipc.Errorf(ipc.CodeCommandFailed, "shell plugin is not set up")
	}

	switch command {
	case CmdOpen:
		var in openArgs
		if err := ipc.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, p.Open(ctx, in.Path, in.With)
	case CmdExecute:
		var in programArgs
		if err := ipc.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return p.Execute(ctx, in.Program, in.Args)
	case CmdSpawn:
		var in programArgs
		if err := ipc.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return p.Spawn(in.Program, in.Args)
	case CmdKill:
		var in killArgs
		if err := ipc.DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return nil, p.processes.Kill(in.ID)
	case CmdProcesses:
		return p.processes.List(), nil
	default:
		return nil, ipc.Errorf(ipc.CodeUnknownCommand, "command %s not found", ipc.PluginCommandName(PluginName, command))
	}
}

// Open opens a URL or path allowed by the open pattern, with the default
// application or one of the known openers.
func (p *Plugin) Open(ctx context.Context, target, with string) error {
	if err := p.scope.CheckOpen(target); err != nil {
		return notAllowed(err)
	}
	if err := p.scope.CheckOpenWith(with); err != nil {
		return notAllowed(err)
	}
	p.logger.Info("opening with default application", "target", target, "with", with)
	return p.open(ctx, target, with)
}

// Execute runs an allowlisted program to completion.
func (p *Plugin) Execute(ctx context.Context, name string, args []string) (ExecOutput, error) {
	program, resolved, err := p.scope.Resolve(name, args)
	if err != nil {
		return ExecOutput{}, notAllowed(err)
	}
	return p.processes.Execute(ctx, program, resolved)
}

// Spawn starts an allowlisted program in the background.
func (p *Plugin) Spawn(name string, args []string) (model.ChildProcess, error) {
	program, resolved, err := p.scope.Resolve(name, args)
	if err != nil {
		return model.ChildProcess{}, notAllowed(err)
	}
	return p.processes.Spawn(name, program, resolved)
}

// Close kills every child still running.
func (p *Plugin) Close() {
	p.processes.KillAll()
}

func notAllowed(err error) error {
	if errors.Is(err, ErrNotAllowed) {
		return ipc.Errorf(ipc.CodeNotAllowed, "%v", err)
	}
	return err
}
