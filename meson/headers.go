package meson

import "fmt"

// Header returns the line printed before an operation's output.
func Header(op Operation, p Params) string {
	switch op {
	case Setup:
		return fmt.Sprintf("Setting up the project in %s...\n", p.BuildDir)
	case Configure:
		return fmt.Sprintf("Configuring the project in %s...\n", p.BuildDir)
	case Compile:
		return fmt.Sprintf("Compiling the project in %s...\n", p.BuildDir)
	case Test:
		return fmt.Sprintf("Testing the project in %s...\n", p.BuildDir)
	case Install:
		return fmt.Sprintf("Installing the project in %s...\n", p.BuildDir)
	case Version:
		return "Meson Version:\n"
	case Introspect:
		if p.BuildDir == "" {
			return "Build directory not specified. Introspecting source directory...\n"
		}
		return fmt.Sprintf("Introspecting build directory %s...\n", p.BuildDir)
	case Clean:
		return fmt.Sprintf("Cleaning the project in %s...\n", p.BuildDir)
	case Dist:
		return fmt.Sprintf("Creating a release archive from %s...\n", p.BuildDir)
	default:
		return fmt.Sprintf("Running %s...\n", op)
	}
}
