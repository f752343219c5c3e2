package model

// ProcessStatus represents the state of a child process started by the shell plugin
type ProcessStatus string

const (
	// ProcessStatusStarting means the process is being launched
	ProcessStatusStarting ProcessStatus = "Starting"

	// ProcessStatusRunning means the process is alive
	ProcessStatusRunning ProcessStatus = "Running"

	// ProcessStatusKilling means a kill was requested and not yet observed
	ProcessStatusKilling ProcessStatus = "Killing"

	// ProcessStatusKilled means the process was stopped on request
	ProcessStatusKilled ProcessStatus = "Killed"

	// ProcessStatusTerminated means the process exited on its own
	ProcessStatusTerminated ProcessStatus = "Terminated"

	// ProcessStatusError means the process could not be started or waited on
	ProcessStatusError ProcessStatus = "Error"
)

// String returns the string representation of ProcessStatus
func (ps ProcessStatus) String() string {
	return string(ps)
}

// IsActive returns true if the process may still be running
func (ps ProcessStatus) IsActive() bool {
	return ps == ProcessStatusStarting || ps == ProcessStatusRunning || ps == ProcessStatusKilling
}

// IsFinished returns true if the process is gone (killed, terminated, or error)
func (ps ProcessStatus) IsFinished() bool {
	return ps == ProcessStatusKilled || ps == ProcessStatusTerminated || ps == ProcessStatusError
}
