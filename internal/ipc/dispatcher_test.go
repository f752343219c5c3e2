package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pierre-app/pierre-desktop/internal/manifest"
)

type echoPlugin struct {
	name  string
	calls []string
}

func (p *echoPlugin) Name() string                     { return p.name }
func (p *echoPlugin) Setup(m *manifest.Manifest) error { return nil }

func (p *echoPlugin) Invoke(ctx context.Context, command string, args json.RawMessage) (any, error) {
	p.calls = append(p.calls, command)
	switch command {
	case "echo":
		var in struct {
			Text string `json:"text"`
		}
		if err := DecodeArgs(args, &in); err != nil {
			return nil, err
		}
		return in.Text, nil
	case "deny":
		return nil, Errorf(CodeNotAllowed, "denied")
	default:
		return nil, errors.New("boom")
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDispatcher(t *testing.T, plugins ...Plugin) *Dispatcher {
	t.Helper()
	handlers := HandlerTable{
		CommandGetPlatform: func(ctx context.Context, args json.RawMessage) (any, error) {
			return "testos", nil
		},
	}
	d, err := NewDispatcher(quietLogger(), handlers, plugins...)
	require.NoError(t, err)
	return d
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		expected Command
	}{
		{"get_platform", CommandGetPlatform},
		{"GET_PLATFORM", CommandUnknown},
		{"get_platform ", CommandUnknown},
		{"", CommandUnknown},
		{"plugin:shell|open", CommandUnknown},
	}

	for _, test := range tests {
		if got := ParseCommand(test.name); got != test.expected {
			t.Errorf("ParseCommand(%q) = %v, expected %v", test.name, got, test.expected)
		}
	}
	require.Equal(t, NameGetPlatform, CommandGetPlatform.String())
}

func TestParsePluginCommand(t *testing.T) {
	tests := []struct {
		name           string
		expectedPlugin string
		expectedCmd    string
		expectedOK     bool
	}{
		{"plugin:shell|open", "shell", "open", true},
		{"plugin:shell|", "", "", false},
		{"plugin:|open", "", "", false},
		{"plugin:shell", "", "", false},
		{"shell|open", "", "", false},
		{"get_platform", "", "", false},
	}

	for _, test := range tests {
		plugin, cmd, ok := ParsePluginCommand(test.name)
		if plugin != test.expectedPlugin || cmd != test.expectedCmd || ok != test.expectedOK {
			t.Errorf("ParsePluginCommand(%q) = (%q, %q, %v), expected (%q, %q, %v)",
				test.name, plugin, cmd, ok, test.expectedPlugin, test.expectedCmd, test.expectedOK)
		}
	}
	require.Equal(t, "plugin:shell|open", PluginCommandName("shell", "open"))
}

func TestNewDispatcher_RejectsBadRegistrations(t *testing.T) {
	_, err := NewDispatcher(quietLogger(), HandlerTable{CommandUnknown: func(context.Context, json.RawMessage) (any, error) { return nil, nil }})
	require.Error(t, err)

	_, err = NewDispatcher(quietLogger(), HandlerTable{CommandGetPlatform: nil})
	require.Error(t, err)

	_, err = NewDispatcher(quietLogger(), nil, &echoPlugin{name: ""})
	require.Error(t, err)

	_, err = NewDispatcher(quietLogger(), nil, &echoPlugin{name: "shell"}, &echoPlugin{name: "shell"})
	require.Error(t, err)
}

func TestInvoke_BuiltinCommand(t *testing.T) {
	d := newTestDispatcher(t)

	resp := d.Invoke(context.Background(), Request{ID: "42", Cmd: "get_platform"})
	require.True(t, resp.OK())
	require.Equal(t, "42", resp.ID)
	require.Equal(t, "testos", resp.Value)
}

func TestInvoke_AssignsID(t *testing.T) {
	d := newTestDispatcher(t)

	first := d.Invoke(context.Background(), Request{Cmd: "get_platform"})
	second := d.Invoke(context.Background(), Request{Cmd: "get_platform"})
	require.NotEmpty(t, first.ID)
	require.NotEmpty(t, second.ID)
	require.NotEqual(t, first.ID, second.ID)
}

func TestInvoke_Errors(t *testing.T) {
	p := &echoPlugin{name: "echo"}
	d := newTestDispatcher(t, p)

	tests := []struct {
		cmd          string
		expectedCode string
	}{
		{"", CodeInvalidRequest},
		{"does_not_exist", CodeUnknownCommand},
		{"plugin:missing|open", CodeUnknownPlugin},
		{"plugin:echo|deny", CodeNotAllowed},
		{"plugin:echo|explode", CodeCommandFailed},
	}

	for _, test := range tests {
		resp := d.Invoke(context.Background(), Request{ID: "x", Cmd: test.cmd})
		require.False(t, resp.OK(), test.cmd)
		require.Equal(t, "x", resp.ID, test.cmd)
		require.Equal(t, test.expectedCode, resp.Error.Code, test.cmd)
		require.Nil(t, resp.Value, test.cmd)
	}
}

func TestInvoke_PluginCommand(t *testing.T) {
	p := &echoPlugin{name: "echo"}
	d := newTestDispatcher(t, p)

	resp := d.Invoke(context.Background(), Request{Cmd: "plugin:echo|echo", Args: json.RawMessage(`{"text":"hi"}`)})
	require.True(t, resp.OK())
	require.Equal(t, "hi", resp.Value)
	require.Equal(t, []string{"echo"}, p.calls)

	resp = d.Invoke(context.Background(), Request{Cmd: "plugin:echo|echo", Args: json.RawMessage(`[1]`)})
	require.False(t, resp.OK())
	require.Equal(t, CodeInvalidArgs, resp.Error.Code)
}

func TestInvokeJSON(t *testing.T) {
	d := newTestDispatcher(t, &echoPlugin{name: "echo"})

	var resp Response
	require.NoError(t, json.Unmarshal(d.InvokeJSON(context.Background(), []byte(`{"id":"7","cmd":"get_platform"}`)), &resp))
	require.Equal(t, "7", resp.ID)
	require.Equal(t, "testos", resp.Value)
	require.Nil(t, resp.Error)

	resp = Response{}
	require.NoError(t, json.Unmarshal(d.InvokeJSON(context.Background(), []byte(`{not json`)), &resp))
	require.NotNil(t, resp.Error)
	require.Equal(t, CodeInvalidRequest, resp.Error.Code)
	require.NotEmpty(t, resp.ID)
}

func TestCommandsAndPlugins(t *testing.T) {
	d := newTestDispatcher(t, &echoPlugin{name: "b"}, &echoPlugin{name: "a"})
	require.Equal(t, []string{"get_platform"}, d.Commands())
	require.Equal(t, []string{"a", "b"}, d.Plugins())
}
