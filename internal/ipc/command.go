package ipc

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pierre-app/pierre-desktop/internal/manifest"
)

// Command enumerates the built-in commands the UI layer may invoke.
type Command int

const (
	CommandUnknown Command = iota
	CommandGetPlatform
)

// Wire names of built-in commands
const (
	NameGetPlatform = "get_platform"
)

// PluginPrefix starts every plugin command name: plugin:<plugin>|<command>.
const (
	PluginPrefix    = "plugin:"
	PluginSeparator = "|"
)

// String returns the wire name of the command.
func (c Command) String() string {
	switch c {
	case CommandGetPlatform:
		return NameGetPlatform
	default:
		return "unknown"
	}
}

// ParseCommand maps an incoming command name to its Command.
func ParseCommand(name string) Command {
	switch name {
	case NameGetPlatform:
		return CommandGetPlatform
	default:
		return CommandUnknown
	}
}

// ParsePluginCommand splits "plugin:<plugin>|<command>". ok is false for
// names without the plugin prefix or with an empty part.
func ParsePluginCommand(name string) (plugin, command string, ok bool) {
	rest, found := strings.CutPrefix(name, PluginPrefix)
	if !found {
		return "", "", false
	}
	plugin, command, found = strings.Cut(rest, PluginSeparator)
	if !found || plugin == "" || command == "" {
		return "", "", false
	}
	return plugin, command, true
}

// PluginCommandName builds the wire name of a plugin command.
func PluginCommandName(plugin, command string) string {
	return PluginPrefix + plugin + PluginSeparator + command
}

// Handler runs a built-in command synchronously.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// HandlerTable is the fixed mapping from command to handler.
type HandlerTable map[Command]Handler

// Plugin is a capability module exposing its own command set.
type Plugin interface {
	// Name is the plugin segment of its command names.
	Name() string
	// Setup configures the plugin from the application manifest before the
	// event loop starts.
	Setup(m *manifest.Manifest) error
	// Invoke runs one of the plugin's commands.
	Invoke(ctx context.Context, command string, args json.RawMessage) (any, error)
}
