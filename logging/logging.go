// Package logging configures the process-wide logrus logger.
//
// Operational logs go to a file under the XDG state directory and, when
// requested, to stderr as well. They are separate from the command output
// shown in the console.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// DefaultLogPath returns $XDG_STATE_HOME/mesongui/mesongui.log, falling
// back to ~/.local/state.
func DefaultLogPath() string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "mesongui", "mesongui.log")
}

// OpenLogFile opens path for appending, creating parent directories.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Configure sets the level and outputs of the global logger. An empty path
// disables file logging; a nil console disables terminal output. An
// unknown level falls back to info with a warning. The returned closer
// releases the log file and is never nil.
func Configure(level, path string, console io.Writer) (io.Closer, error) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	var writers []io.Writer
	if console != nil {
		writers = append(writers, console)
	}

	var closer io.Closer = nopCloser{}
	if path != "" {
		f, err := OpenLogFile(path)
		if err != nil {
			return closer, err
		}
		writers = append(writers, f)
		closer = f
	}

	switch len(writers) {
	case 0:
		log.SetOutput(io.Discard)
	case 1:
		log.SetOutput(writers[0])
	default:
		log.SetOutput(io.MultiWriter(writers...))
	}

	if lvl, err := log.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(log.InfoLevel)
		log.Warnf("invalid log level %s, defaulting to info", level)
	}
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
