package ipc

import (
	"encoding/json"
	"fmt"
)

// Error codes carried in error responses
const (
	CodeInvalidRequest = "invalid_request"
	CodeInvalidArgs    = "invalid_args"
	CodeUnknownCommand = "unknown_command"
	CodeUnknownPlugin  = "unknown_plugin"
	CodeNotAllowed     = "not_allowed"
	CodeCommandFailed  = "command_failed"
)

// Request is a single command invocation issued by the UI layer.
type Request struct {
	ID   string          `json:"id,omitempty"`
	Cmd  string          `json:"cmd"`
	Args json.RawMessage `json:"args,omitempty"`
}

// Response answers exactly one Request. Error is nil on success.
type Response struct {
	ID    string `json:"id"`
	Value any    `json:"value"`
	Error *Error `json:"error,omitempty"`
}

// OK reports whether the invocation succeeded.
func (r Response) OK() bool {
	return r.Error == nil
}

// Error is the structured error returned to the UI layer.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf builds an Error with a formatted message.
func Errorf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// DecodeArgs unmarshals raw request arguments into v. Missing arguments leave
// v untouched.
func DecodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return Errorf(CodeInvalidArgs, "%v", err)
	}
	return nil
}
