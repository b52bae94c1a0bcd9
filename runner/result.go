package runner

import (
	"fmt"
	"strings"
	"time"
)

// Status constants for Result.Status.
const (
	StatusCompleted = "completed" // exited 0
	StatusFailed    = "failed"    // exited non-zero
	StatusError     = "error"     // could not be launched or waited on
)

// Result contains the outcome of one invocation.
type Result struct {
	InvocationID string
	Status       string
	ExitCode     int
	Stdout       string // only filled by Run
	Stderr       string
	Error        string
	Duration     time.Duration
}

// OK reports whether the command exited 0.
func (r Result) OK() bool {
	return r.Status == StatusCompleted
}

// Summary returns a one-line description of the outcome.
func (r Result) Summary() string {
	switch r.Status {
	case StatusCompleted:
		return fmt.Sprintf("completed in %s", r.Duration.Round(time.Millisecond))
	case StatusFailed:
		return fmt.Sprintf("failed: exit %d", r.ExitCode)
	default:
		return "error: " + r.Error
	}
}

// Message renders the result for the display sink: the summary and, for
// failures, the captured standard error verbatim.
func (r Result) Message() string {
	var b strings.Builder
	b.WriteString("[" + r.Summary() + "]\n")
	if r.Status == StatusFailed && r.Stderr != "" {
		b.WriteString(r.Stderr)
		if !strings.HasSuffix(r.Stderr, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
