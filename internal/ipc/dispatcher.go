package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

// RequestIDPrefix marks IDs generated without a UUID source.
const RequestIDPrefix = "req-"

// Dispatcher routes requests to the registered handlers and plugins.
type Dispatcher struct {
	handlers HandlerTable
	plugins  map[string]Plugin
	logger   *slog.Logger
}

// NewDispatcher validates the registrations and returns a Dispatcher.
func NewDispatcher(logger *slog.Logger, handlers HandlerTable, plugins ...Plugin) (*Dispatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		handlers: make(HandlerTable, len(handlers)),
		plugins:  make(map[string]Plugin, len(plugins)),
		logger:   logger,
	}

	for cmd, handler := range handlers {
		if cmd == CommandUnknown {
			return nil, errors.New("cannot register a handler for the unknown command")
		}
		if handler == nil {
			return nil, fmt.Errorf("nil handler for command %s", cmd)
		}
		d.handlers[cmd] = handler
	}

	for _, p := range plugins {
		if p == nil {
			return nil, errors.New("nil plugin")
		}
		name := p.Name()
		if name == "" {
			return nil, errors.New("plugin has an empty name")
		}
		if _, exists := d.plugins[name]; exists {
			return nil, fmt.Errorf("plugin %q registered twice", name)
		}
		d.plugins[name] = p
	}

	return d, nil
}

// Commands returns the built-in command names that have a handler.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.handlers))
	for cmd := range d.handlers {
		names = append(names, cmd.String())
	}
	sort.Strings(names)
	return names
}

// Plugins returns the names of the registered plugins.
func (d *Dispatcher) Plugins() []string {
	names := make([]string, 0, len(d.plugins))
	for name := range d.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the command named by req on the calling goroutine and returns
// its response. The response ID always matches the request ID.
func (d *Dispatcher) Invoke(ctx context.Context, req Request) Response {
	if req.ID == "" {
		req.ID = generateRequestID()
	}

	value, err := d.dispatch(ctx, req)
	if err != nil {
		d.logger.Debug("command failed", "id", req.ID, "cmd", req.Cmd, "err", err)
		return Response{ID: req.ID, Error: toError(err)}
	}

	d.logger.Debug("command handled", "id", req.ID, "cmd", req.Cmd)
	return Response{ID: req.ID, Value: value}
}

// InvokeJSON is the wire form of Invoke: it decodes a JSON request and
// encodes the JSON response.
func (d *Dispatcher) InvokeJSON(ctx context.Context, data []byte) []byte {
	var req Request
	var resp Response
	if err := json.Unmarshal(data, &req); err != nil {
		resp = Response{ID: generateRequestID(), Error: Errorf(CodeInvalidRequest, "%v", err)}
	} else {
		resp = d.Invoke(ctx, req)
	}

	out, err := json.Marshal(resp)
	if err != nil {
		out, _ = json.Marshal(Response{ID: resp.ID, Error: Errorf(CodeCommandFailed, "failed to encode response: %v", err)})
	}
	return out
}

func (d *Dispatcher) dispatch(ctx context.Context, req Request) (any, error) {
	if req.Cmd == "" {
		return nil, Errorf(CodeInvalidRequest, "command name is empty")
	}

	if pluginName, command, ok := ParsePluginCommand(req.Cmd); ok {
		p, exists := d.plugins[pluginName]
		if !exists {
			return nil, Errorf(CodeUnknownPlugin, "plugin %s not found", pluginName)
		}
		return p.Invoke(ctx, command, req.Args)
	}

	handler, exists := d.handlers[ParseCommand(req.Cmd)]
	if !exists {
		return nil, Errorf(CodeUnknownCommand, "command %s not found", req.Cmd)
	}
	return handler(ctx, req.Args)
}

func toError(err error) *Error {
	var ipcErr *Error
	if errors.As(err, &ipcErr) {
		return ipcErr
	}
	return &Error{Code: CodeCommandFailed, Message: err.Error()}
}

// generateRequestID uses UUID v7 so IDs sort by creation time
func generateRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(RequestIDPrefix+"%d", time.Now().UnixNano())
	}
	return id.String()
}
