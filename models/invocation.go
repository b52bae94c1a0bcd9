package models

import (
	"strings"

	"github.com/google/uuid"
)

// Invocation is one external command: program, arguments and an optional
// working directory. It is built fresh for every operation.
type Invocation struct {
	ID      string
	Program string
	Args    []string
	Dir     string // empty means the current working directory
}

// NewInvocation creates an invocation with a unique ID
func NewInvocation(program string, args ...string) *Invocation {
	return &Invocation{
		ID:      uuid.New().String(),
		Program: program,
		Args:    args,
	}
}

// InDir sets the working directory and returns inv.
func (inv *Invocation) InDir(dir string) *Invocation {
	inv.Dir = dir
	return inv
}

// Tokens returns the program followed by its arguments.
func (inv *Invocation) Tokens() []string {
	tokens := make([]string, 0, len(inv.Args)+1)
	tokens = append(tokens, inv.Program)
	return append(tokens, inv.Args...)
}

// String renders the invocation as a shell-like line for logs and the console.
func (inv *Invocation) String() string {
	parts := inv.Tokens()
	for i, p := range parts {
		if p == "" || strings.ContainsAny(p, " \t\"'") {
			parts[i] = `"` + strings.ReplaceAll(p, `"`, `\"`) + `"`
		}
	}
	return strings.Join(parts, " ")
}
