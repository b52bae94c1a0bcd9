package models

import (
	"path/filepath"
	"testing"
)

// TestDefaultSettings tests that every key has a default
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.BuildDir != "builddir" {
		t.Errorf("Expected build dir 'builddir', got '%s'", s.BuildDir)
	}
	if s.GetTheme() != "light" {
		t.Errorf("Expected theme 'light', got '%s'", s.GetTheme())
	}
	if s.Meson != "meson" || s.Ninja != "ninja" {
		t.Errorf("Expected meson/ninja programs, got '%s'/'%s'", s.Meson, s.Ninja)
	}
}

func TestWithDefaultsKeepsSetValues(t *testing.T) {
	s := (&Settings{Theme: "dark"}).WithDefaults()
	if s.Theme != "dark" {
		t.Errorf("Expected theme 'dark', got '%s'", s.Theme)
	}
	if s.BuildDir != DefaultBuildDir {
		t.Errorf("Expected default build dir, got '%s'", s.BuildDir)
	}
	if s.LogLevel != DefaultLogLevel {
		t.Errorf("Expected default log level, got '%s'", s.LogLevel)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := DefaultSettings()
	c := s.Clone()
	c.Theme = "dark"
	if s.Theme != "light" {
		t.Errorf("Clone shares state with original: theme '%s'", s.Theme)
	}
}

func TestNewProject(t *testing.T) {
	src := filepath.Join(string(filepath.Separator), "src", "proj")

	p := NewProject(src, "")
	if p.SourceDir != src {
		t.Errorf("Expected source dir '%s', got '%s'", src, p.SourceDir)
	}
	if want := filepath.Join(src, "builddir"); p.BuildDir != want {
		t.Errorf("Expected build dir '%s', got '%s'", want, p.BuildDir)
	}

	abs := filepath.Join(string(filepath.Separator), "tmp", "out")
	p = NewProject(src, abs)
	if p.BuildDir != abs {
		t.Errorf("Expected absolute build dir '%s' kept, got '%s'", abs, p.BuildDir)
	}
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{`"/a/b/"`, filepath.Clean("/a/b")},
		{"'/a/./c'", filepath.Clean("/a/c")},
		{" builddir ", "builddir"},
	}
	for _, tt := range tests {
		if got := CleanPath(tt.in); got != tt.want {
			t.Errorf("CleanPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInvocation(t *testing.T) {
	inv := NewInvocation("ninja", "-C", "build dir").InDir("/src")
	if inv.ID == "" {
		t.Error("Invocation should have an ID")
	}
	if other := NewInvocation("ninja"); other.ID == inv.ID {
		t.Error("Invocation IDs should be unique")
	}

	tokens := inv.Tokens()
	want := []string{"ninja", "-C", "build dir"}
	if len(tokens) != len(want) {
		t.Fatalf("Expected %d tokens, got %v", len(want), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, tokens[i], want[i])
		}
	}
	if inv.Dir != "/src" {
		t.Errorf("Expected dir '/src', got '%s'", inv.Dir)
	}
	if got := inv.String(); got != `ninja -C "build dir"` {
		t.Errorf("String() = %q", got)
	}
}
