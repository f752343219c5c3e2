package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pierre-app/pierre-desktop/internal/model"
)

// Process constants
const (
	ProcessIDPrefix = "proc-"
	UnknownExitCode = -1
	// OutputWaitDelay bounds how long Wait keeps reading output after the
	// child exits. Grandchildren holding the pipes open cannot block it.
	OutputWaitDelay = 2 * time.Second
)

// ExecOutput is the result of a program run to completion.
type ExecOutput struct {
	Code   int    `json:"code"`
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

// control holds the per-process state that never leaves this package
type control struct {
	cancel        context.CancelFunc
	killRequested bool
}

// Processes runs programs and tracks the ones spawned in the background.
type Processes struct {
	procs      map[string]*model.ChildProcess
	controls   map[string]*control
	procsMutex sync.RWMutex
	onUpdate   func(model.ChildProcess)
	logger     *slog.Logger
}

// NewProcesses creates an empty process table.
func NewProcesses(logger *slog.Logger) *Processes {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processes{
		procs:    make(map[string]*model.ChildProcess),
		controls: make(map[string]*control),
		logger:   logger,
	}
}

// SetUpdateCallback sets the function called on every state or output change
// of a spawned process.
func (p *Processes) SetUpdateCallback(callback func(model.ChildProcess)) {
	p.procsMutex.Lock()
	p.onUpdate = callback
	p.procsMutex.Unlock()
}

// Execute runs program to completion. A non-zero exit code is not an error.
func (p *Processes) Execute(ctx context.Context, program string, args []string) (ExecOutput, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, program, args...)
	configureKill(cmd)
	cmd.WaitDelay = OutputWaitDelay
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := ExecOutput{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		out.Code = 0
	case errors.As(err, &exitErr):
		out.Code = exitErr.ExitCode()
	case errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil:
		out.Code = cmd.ProcessState.ExitCode()
	default:
		return ExecOutput{}, fmt.Errorf("failed to run %s: %w", program, err)
	}

	p.logger.Debug("program executed", "program", program, "code", out.Code)
	return out, nil
}

// Spawn starts program in the background and returns its record. The child
// keeps running after the invoking request returns.
func (p *Processes) Spawn(name, program string, args []string) (model.ChildProcess, error) {
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, program, args...)
	configureKill(cmd)
	cmd.WaitDelay = OutputWaitDelay

	proc := &model.ChildProcess{
		ID:        generateProcessID(),
		Name:      name,
		Program:   program,
		Args:      args,
		Status:    model.ProcessStatusStarting,
		ExitCode:  UnknownExitCode,
		StartedAt: time.Now(),
	}
	stdout := &lineWriter{emit: p.appendOutput(proc, &proc.Stdout)}
	stderr := &lineWriter{emit: p.appendOutput(proc, &proc.Stderr)}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return model.ChildProcess{}, fmt.Errorf("failed to start %s: %w", program, err)
	}

	p.procsMutex.Lock()
	proc.PID = cmd.Process.Pid
	proc.Status = model.ProcessStatusRunning
	p.procs[proc.ID] = proc
	p.controls[proc.ID] = &control{cancel: cancel}
	snapshot := proc.Snapshot()
	p.procsMutex.Unlock()

	p.logger.Info("process spawned", "id", proc.ID, "cmd", snapshot.CommandLine(), "pid", snapshot.PID)
	p.notifyUpdate(snapshot)

	go p.wait(cmd, proc, stdout, stderr)

	return snapshot, nil
}

// Kill stops a spawned process. A process that exits on its own before the
// kill reaches it keeps its real exit status.
func (p *Processes) Kill(id string) error {
	p.procsMutex.Lock()
	proc, exists := p.procs[id]
	if !exists {
		p.procsMutex.Unlock()
		return fmt.Errorf("process not found: %s", id)
	}
	ctl, running := p.controls[id]
	if !proc.Status.IsActive() || !running {
		status := proc.Status
		p.procsMutex.Unlock()
		return fmt.Errorf("process is not active: %s", status)
	}
	proc.Status = model.ProcessStatusKilling
	ctl.killRequested = true
	snapshot := proc.Snapshot()
	p.procsMutex.Unlock()

	p.notifyUpdate(snapshot)
	ctl.cancel()
	return nil
}

// Get returns a spawned process by ID.
func (p *Processes) Get(id string) (model.ChildProcess, bool) {
	p.procsMutex.RLock()
	defer p.procsMutex.RUnlock()
	proc, exists := p.procs[id]
	if !exists {
		return model.ChildProcess{}, false
	}
	return proc.Snapshot(), true
}

// List returns all spawned processes, oldest first.
func (p *Processes) List() []model.ChildProcess {
	p.procsMutex.RLock()
	out := make([]model.ChildProcess, 0, len(p.procs))
	for _, proc := range p.procs {
		out = append(out, proc.Snapshot())
	}
	p.procsMutex.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}

// KillAll stops every active process. It is used when the host shuts down.
func (p *Processes) KillAll() {
	p.procsMutex.RLock()
	ids := make([]string, 0, len(p.procs))
	for id, proc := range p.procs {
		if proc.Status.IsActive() && proc.Status != model.ProcessStatusKilling {
			ids = append(ids, id)
		}
	}
	p.procsMutex.RUnlock()

	for _, id := range ids {
		if err := p.Kill(id); err != nil {
			p.logger.Debug("kill on shutdown skipped", "id", id, "err", err)
		}
	}
}

func (p *Processes) wait(cmd *exec.Cmd, proc *model.ChildProcess, stdout, stderr *lineWriter) {
	err := cmd.Wait()
	stdout.flush()
	stderr.flush()

	p.procsMutex.Lock()
	killRequested := false
	if ctl, ok := p.controls[proc.ID]; ok {
		killRequested = ctl.killRequested
		ctl.cancel()
		delete(p.controls, proc.ID)
	}
	proc.Status, proc.ExitCode, proc.LastError = exitStatus(killRequested, cmd.ProcessState, err)
	proc.FinishedAt = time.Now()
	snapshot := proc.Snapshot()
	p.procsMutex.Unlock()

	if errors.Is(err, exec.ErrWaitDelay) {
		p.logger.Debug("output pipes still open after exit", "id", snapshot.ID)
	}
	p.logger.Info("process finished", "id", snapshot.ID, "status", snapshot.Status, "code", snapshot.ExitCode)
	p.notifyUpdate(snapshot)
}

// exitStatus decides the final state of a spawned process. Killed is only
// reported when a kill was requested and the process did not exit by itself.
func exitStatus(killRequested bool, state *os.ProcessState, err error) (model.ProcessStatus, int, string) {
	switch {
	case state == nil:
		if err == nil {
			err = errors.New("process state unavailable")
		}
		return model.ProcessStatusError, UnknownExitCode, err.Error()
	case killRequested && terminatedBySignal(state):
		return model.ProcessStatusKilled, state.ExitCode(), ""
	case state.Exited():
		return model.ProcessStatusTerminated, state.ExitCode(), ""
	default:
		return model.ProcessStatusError, state.ExitCode(), state.String()
	}
}

// appendOutput returns a line sink that appends to dst and reports the change
func (p *Processes) appendOutput(proc *model.ChildProcess, dst *string) func(string) {
	return func(line string) {
		p.procsMutex.Lock()
		*dst += line + "\n"
		snapshot := proc.Snapshot()
		p.procsMutex.Unlock()

		p.notifyUpdate(snapshot)
	}
}

// lineWriter splits an output stream into lines. cmd.Wait owns the copying,
// so Write is only ever called from one goroutine per stream.
type lineWriter struct {
	buf  []byte
	emit func(line string)
}

func (w *lineWriter) Write(b []byte) (int, error) {
	w.buf = append(w.buf, b...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(strings.TrimRight(string(w.buf[:i]), "\r"))
		w.buf = w.buf[i+1:]
	}
	return len(b), nil
}

// flush emits a trailing line without a newline
func (w *lineWriter) flush() {
	if len(w.buf) > 0 {
		w.emit(strings.TrimRight(string(w.buf), "\r"))
		w.buf = nil
	}
}

// notifyUpdate calls the update callback if set
func (p *Processes) notifyUpdate(proc model.ChildProcess) {
	p.procsMutex.RLock()
	callback := p.onUpdate
	p.procsMutex.RUnlock()

	if callback != nil {
		callback(proc)
	}
}

// generateProcessID uses UUID v7 so IDs sort by start time
func generateProcessID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(ProcessIDPrefix+"%d", time.Now().UnixNano())
	}
	return ProcessIDPrefix + id.String()
}
