//go:build !unix

package shell

import (
	"os"
	"os/exec"
)

// configureKill keeps the default cancellation, which kills the child only.
// OutputWaitDelay still bounds the wait for pipes held by descendants.
func configureKill(cmd *exec.Cmd) {}

// A killed process reports an ordinary failing exit code here, so any
// unsuccessful exit after a kill request counts as killed.
func terminatedBySignal(state *os.ProcessState) bool {
	return !state.Success()
}
