// Package meson maps build operations to meson and ninja command lines.
//
// Every operation is an entry in a Registry: an identifier bound to a
// Template that turns the current Params into a ready-to-run invocation.
package meson

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"mesongui/models"
)

// Operation identifies one user-selectable build action.
type Operation string

// Built-in operations.
const (
	Setup      Operation = "setup"
	Configure  Operation = "configure"
	Compile    Operation = "compile"
	Test       Operation = "test"
	Install    Operation = "install"
	Version    Operation = "version"
	Introspect Operation = "introspect"
	Clean      Operation = "clean"
	Dist       Operation = "dist"
)

var (
	// ErrUnknownOperation is returned when no template is registered for an operation.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrMissingBuildDir is returned when an operation needs a build directory and none is set.
	ErrMissingBuildDir = errors.New("build directory not specified")
)

// Params carries the inputs every template may use.
type Params struct {
	SourceDir string
	BuildDir  string
	Options   string // free-form, split on whitespace
	Meson     string
	Ninja     string
}

// ParamsFrom builds Params from a project and settings. A relative build
// directory is resolved against the source directory, so validation and
// every template see the same path.
func ParamsFrom(p *models.Project, s *models.Settings, options string) Params {
	buildDir := p.BuildDir
	if buildDir != "" && p.SourceDir != "" && !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(p.SourceDir, buildDir)
	}
	return Params{
		SourceDir: p.SourceDir,
		BuildDir:  buildDir,
		Options:   options,
		Meson:     s.Meson,
		Ninja:     s.Ninja,
	}
}

func (p Params) meson() string {
	if p.Meson == "" {
		return models.DefaultMeson
	}
	return p.Meson
}

func (p Params) ninja() string {
	if p.Ninja == "" {
		return models.DefaultNinja
	}
	return p.Ninja
}

// SplitOptions splits free-form option text on whitespace. No quoting or
// escaping is applied.
func SplitOptions(options string) []string {
	return strings.Fields(options)
}

// Template produces the invocation for an operation.
type Template func(Params) (*models.Invocation, error)

type entry struct {
	op       Operation
	summary  string
	template Template
}

// Registry maps operations to templates.
type Registry struct {
	entries map[Operation]entry
	order   []Operation
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Operation]entry)}
}

// Register binds op to t. It panics if op already exists.
func (r *Registry) Register(op Operation, summary string, t Template) {
	if _, exists := r.entries[op]; exists {
		panic(fmt.Sprintf("operation %s already registered", op))
	}
	r.entries[op] = entry{op: op, summary: summary, template: t}
	r.order = append(r.order, op)
}

// Lookup returns the template and whether it exists.
func (r *Registry) Lookup(op Operation) (Template, bool) {
	e, ok := r.entries[op]
	return e.template, ok
}

// Summary returns the one-line description of op.
func (r *Registry) Summary(op Operation) string {
	return r.entries[op].summary
}

// Operations returns the registered operations in registration order.
func (r *Registry) Operations() []Operation {
	ops := make([]Operation, len(r.order))
	copy(ops, r.order)
	return ops
}

// Build looks up op and applies its template to params.
func (r *Registry) Build(op Operation, params Params) (*models.Invocation, error) {
	t, ok := r.Lookup(op)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, op)
	}
	inv, err := t(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return inv, nil
}

// ParseOperation converts user input to a registered operation.
func (r *Registry) ParseOperation(name string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := r.entries[op]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return op, nil
}
