package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"mesongui/models"
)

// Process is a started child process.
type Process interface {
	Stdout() io.Reader
	Stderr() io.Reader
	// Wait blocks until the process exits. A non-zero exit is reported
	// through the exit code, not the error.
	Wait() (int, error)
}

// Starter launches invocations. ExecStarter is the real implementation;
// tests substitute simulated processes.
type Starter interface {
	Start(ctx context.Context, inv *models.Invocation) (Process, error)
}

// ExecStarter starts processes with os/exec.
type ExecStarter struct{}

// Start launches inv with its stdout and stderr piped back to the caller.
func (ExecStarter) Start(ctx context.Context, inv *models.Invocation) (Process, error) {
	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	if inv.Dir != "" {
		cmd.Dir = inv.Dir
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("executable not found: %s: %w", inv.Program, err)
		}
		return nil, err
	}

	return &execProcess{cmd: cmd, stdout: stdout, stderr: stderr}, nil
}

type execProcess struct {
	cmd    *exec.Cmd
	stdout io.Reader
	stderr io.Reader
}

func (p *execProcess) Stdout() io.Reader { return p.stdout }
func (p *execProcess) Stderr() io.Reader { return p.stderr }

func (p *execProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
