package meson

import "testing"

func TestHeader(t *testing.T) {
	p := Params{SourceDir: "/src", BuildDir: "/src/builddir"}
	tests := []struct {
		op     Operation
		params Params
		want   string
	}{
		{Compile, p, "Compiling the project in /src/builddir...\n"},
		{Setup, p, "Setting up the project in /src/builddir...\n"},
		{Version, p, "Meson Version:\n"},
		{Introspect, p, "Introspecting build directory /src/builddir...\n"},
		{Introspect, Params{SourceDir: "/src"}, "Build directory not specified. Introspecting source directory...\n"},
		{Operation("bench"), p, "Running bench...\n"},
	}
	for _, tt := range tests {
		if got := Header(tt.op, tt.params); got != tt.want {
			t.Errorf("Header(%s) = %q, want %q", tt.op, got, tt.want)
		}
	}
}
