package runner

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"

	"mesongui/models"
)

func init() {
	log.SetOutput(io.Discard)
}

type fakeProcess struct {
	stdout  string
	stderr  string
	code    int
	waitErr error
}

func (p *fakeProcess) Stdout() io.Reader  { return strings.NewReader(p.stdout) }
func (p *fakeProcess) Stderr() io.Reader  { return strings.NewReader(p.stderr) }
func (p *fakeProcess) Wait() (int, error) { return p.code, p.waitErr }

type fakeStarter struct {
	proc     *fakeProcess
	startErr error
	started  []*models.Invocation
}

func (s *fakeStarter) Start(_ context.Context, inv *models.Invocation) (Process, error) {
	s.started = append(s.started, inv)
	if s.startErr != nil {
		return nil, s.startErr
	}
	return s.proc, nil
}

func TestStreamForwardsLinesInOrder(t *testing.T) {
	starter := &fakeStarter{proc: &fakeProcess{stdout: "a\nb\n"}}
	r := NewWithStarter(starter)

	var got []string
	res := r.Stream(context.Background(), models.NewInvocation("ninja", "-C", "B"), func(line string) {
		got = append(got, line)
	})

	if !res.OK() {
		t.Fatalf("result = %+v, want completed", res)
	}
	if want := []string{"a\n", "b\n"}; !reflect.DeepEqual(got, want) {
		t.Errorf("sink received %q, want %q", got, want)
	}
}

func TestStreamNonZeroExitCarriesStderr(t *testing.T) {
	const stderr = "ERROR: Neither directory contains a build file meson.build.\n"
	r := NewWithStarter(&fakeStarter{proc: &fakeProcess{stdout: "partial\n", stderr: stderr, code: 1}})

	res := r.Stream(context.Background(), models.NewInvocation("meson", "setup", "B"), func(string) {})

	if res.Status != StatusFailed {
		t.Errorf("Status = %q, want failed", res.Status)
	}
	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", res.ExitCode)
	}
	if res.Stderr != stderr {
		t.Errorf("Stderr = %q, want %q", res.Stderr, stderr)
	}
	if !strings.Contains(res.Message(), stderr) {
		t.Errorf("Message() = %q should contain stderr verbatim", res.Message())
	}
}

func TestStreamLaunchFailure(t *testing.T) {
	r := NewWithStarter(&fakeStarter{startErr: errors.New("executable not found: meson")})

	calls := 0
	res := r.Stream(context.Background(), models.NewInvocation("meson", "--version"), func(string) { calls++ })

	if res.Status != StatusError {
		t.Errorf("Status = %q, want error", res.Status)
	}
	if res.Error != "executable not found: meson" {
		t.Errorf("Error = %q", res.Error)
	}
	if calls != 0 {
		t.Errorf("sink called %d times for a process that never started", calls)
	}
	if !strings.HasPrefix(res.Message(), "[error: executable not found") {
		t.Errorf("Message() = %q", res.Message())
	}
}

func TestStreamWaitError(t *testing.T) {
	r := NewWithStarter(&fakeStarter{proc: &fakeProcess{code: -1, waitErr: errors.New("signal: killed")}})

	res := r.Stream(context.Background(), models.NewInvocation("ninja"), func(string) {})
	if res.Status != StatusError || res.Error != "signal: killed" {
		t.Errorf("result = %+v", res)
	}
}

func TestRunCapturesStdout(t *testing.T) {
	r := NewWithStarter(&fakeStarter{proc: &fakeProcess{stdout: "1.3.2\n"}})

	res := r.Run(context.Background(), models.NewInvocation("meson", "--version"))
	if res.Stdout != "1.3.2\n" {
		t.Errorf("Stdout = %q", res.Stdout)
	}
	if res.InvocationID == "" {
		t.Error("result should carry the invocation ID")
	}
}

func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestExecStarterStreaming(t *testing.T) {
	sh := requireShell(t)
	r := New()

	var got []string
	inv := models.NewInvocation(sh, "-c", "echo one; echo two; echo oops >&2; exit 3")
	res := r.Stream(context.Background(), inv, func(line string) { got = append(got, line) })

	if want := []string{"one\n", "two\n"}; !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %q, want %q", got, want)
	}
	if res.Status != StatusFailed || res.ExitCode != 3 {
		t.Errorf("result = %+v, want failed/3", res)
	}
	if res.Stderr != "oops\n" {
		t.Errorf("Stderr = %q", res.Stderr)
	}
}

func TestExecStarterWorkingDir(t *testing.T) {
	sh := requireShell(t)
	dir := t.TempDir()

	res := New().Run(context.Background(), models.NewInvocation(sh, "-c", "pwd -P").InDir(dir))
	if !res.OK() {
		t.Fatalf("result = %+v", res)
	}
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(res.Stdout); got != want {
		t.Errorf("pwd = %q, want %q", got, want)
	}
}

func TestExecStarterMissingExecutable(t *testing.T) {
	res := New().Run(context.Background(), models.NewInvocation("mesongui-no-such-tool-xyz"))
	if res.Status != StatusError {
		t.Fatalf("Status = %q, want error", res.Status)
	}
	if !strings.Contains(res.Error, "executable not found") {
		t.Errorf("Error = %q", res.Error)
	}

	_, err := ExecStarter{}.Start(context.Background(), models.NewInvocation("mesongui-no-such-tool-xyz"))
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("Start() error = %v, want exec.ErrNotFound in the chain", err)
	}
}

func TestExecStarterCanceled(t *testing.T) {
	sh := requireShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := New().Run(ctx, models.NewInvocation(sh, "-c", "sleep 5"))
	if res.OK() {
		t.Errorf("canceled command should not complete: %+v", res)
	}
}
