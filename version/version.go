// Package version provides version information for mesongui.
// The Version variable is set at build time via ldflags.
package version

// Version is the current version of mesongui.
// Set at build time via: -ldflags "-X mesongui/version.Version=v1.0.0"
var Version = "dev"
