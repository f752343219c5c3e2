package ipc

// Package ipc is the request/response bridge between the embedded UI layer and
// native code. A request names a command and carries JSON arguments; the
// response carries either a value or a structured error. Built-in commands are
// matched against an enumerated Command type, plugin commands are routed by
// their "plugin:<name>|<command>" prefix.
