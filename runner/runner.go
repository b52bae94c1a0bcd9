// Package runner executes meson and ninja invocations as child processes.
package runner

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"mesongui/models"
	"mesongui/relay"
)

// Runner executes invocations. Failures are reported through Result and
// never returned as Go errors. There are no retries and no timeout.
type Runner struct {
	starter Starter
}

// New creates a runner that starts real processes.
func New() *Runner {
	return &Runner{starter: ExecStarter{}}
}

// NewWithStarter creates a runner on top of starter.
func NewWithStarter(starter Starter) *Runner {
	return &Runner{starter: starter}
}

// Run executes inv to completion and returns its captured stdout and stderr.
func (r *Runner) Run(ctx context.Context, inv *models.Invocation) Result {
	var stdout strings.Builder
	res := r.execute(ctx, inv, func(line string) { stdout.WriteString(line) })
	res.Stdout = stdout.String()
	return res
}

// Stream executes inv and passes each stdout line to sink as soon as it is
// read, in the order the child wrote them. It must not be called on the
// interface goroutine: it blocks until the child exits.
func (r *Runner) Stream(ctx context.Context, inv *models.Invocation, sink func(string)) Result {
	return r.execute(ctx, inv, sink)
}

func (r *Runner) execute(ctx context.Context, inv *models.Invocation, sink func(string)) Result {
	logger := log.WithFields(log.Fields{"id": inv.ID, "cmd": inv.String(), "dir": inv.Dir})
	logger.Debug("starting command")
	started := time.Now()

	res := Result{InvocationID: inv.ID}

	proc, err := r.starter.Start(ctx, inv)
	if err != nil {
		res.Status = StatusError
		res.ExitCode = -1
		res.Error = err.Error()
		res.Duration = time.Since(started)
		logger.WithError(err).Warn("command failed to start")
		return res
	}

	// stderr is drained concurrently so a chatty child never blocks on a
	// full pipe while stdout is being relayed.
	var stderr bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := io.Copy(&stderr, proc.Stderr()); err != nil {
			logger.WithError(err).Debug("stderr read ended")
		}
	}()

	lines, err := relay.Forward(proc.Stdout(), sink)
	if err != nil {
		logger.WithError(err).Debug("stdout read ended")
	}
	wg.Wait()

	code, err := proc.Wait()
	res.Duration = time.Since(started)
	res.Stderr = stderr.String()
	res.ExitCode = code

	switch {
	case err != nil:
		res.Status = StatusError
		res.Error = err.Error()
		if ctx.Err() != nil {
			res.Error = "command canceled: " + ctx.Err().Error()
		}
	case code != 0:
		res.Status = StatusFailed
	default:
		res.Status = StatusCompleted
	}

	logger.WithFields(log.Fields{
		"status":   res.Status,
		"exit":     res.ExitCode,
		"lines":    lines,
		"duration": res.Duration.String(),
	}).Debug("command finished")
	return res
}
