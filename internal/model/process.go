package model

import (
	"strings"
	"time"
)

// ChildProcess represents a program started through the shell plugin
type ChildProcess struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"` // scope entry name the UI asked for
	Program    string        `json:"program"`
	Args       []string      `json:"args"`
	Status     ProcessStatus `json:"status"`
	PID        int           `json:"pid"`
	ExitCode   int           `json:"code"` // -1 until the process exits
	Stdout     string        `json:"stdout"`
	Stderr     string        `json:"stderr"`
	LastError  string        `json:"error,omitempty"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt,omitzero"`
}

// CommandLine returns the program and its arguments joined by spaces
func (cp *ChildProcess) CommandLine() string {
	if len(cp.Args) == 0 {
		return cp.Program
	}
	return cp.Program + " " + strings.Join(cp.Args, " ")
}

// Duration returns how long the process ran, or has been running so far
func (cp *ChildProcess) Duration(now time.Time) time.Duration {
	if cp.StartedAt.IsZero() {
		return 0
	}
	if !cp.FinishedAt.IsZero() {
		return cp.FinishedAt.Sub(cp.StartedAt)
	}
	return now.Sub(cp.StartedAt)
}

// Snapshot returns a copy safe to hand outside the owning lock
func (cp *ChildProcess) Snapshot() ChildProcess {
	out := *cp
	out.Args = append([]string(nil), cp.Args...)
	return out
}
