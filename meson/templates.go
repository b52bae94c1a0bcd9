package meson

import "mesongui/models"

// DefaultRegistry returns a registry holding every built-in operation.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Setup, "Set up a build directory for the source tree", setupTemplate)
	r.Register(Configure, "Change options of a configured build directory", configureTemplate)
	r.Register(Compile, "Build the project with ninja", ninjaTemplate())
	r.Register(Test, "Run the project's test suite", ninjaTemplate("test"))
	r.Register(Install, "Install the built project", ninjaTemplate("install"))
	r.Register(Version, "Show the meson version", versionTemplate)
	r.Register(Introspect, "Dump project introspection data", introspectTemplate)
	r.Register(Clean, "Remove build products", ninjaTemplate("clean"))
	r.Register(Dist, "Create a release archive", distTemplate)
	return r
}

// meson setup <build> [opts...], run from the source directory.
func setupTemplate(p Params) (*models.Invocation, error) {
	if p.BuildDir == "" {
		return nil, ErrMissingBuildDir
	}
	args := append([]string{"setup", p.BuildDir}, SplitOptions(p.Options)...)
	return models.NewInvocation(p.meson(), args...).InDir(p.SourceDir), nil
}

// meson configure <build> [opts...], run from the source directory.
func configureTemplate(p Params) (*models.Invocation, error) {
	if p.BuildDir == "" {
		return nil, ErrMissingBuildDir
	}
	args := append([]string{"configure", p.BuildDir}, SplitOptions(p.Options)...)
	return models.NewInvocation(p.meson(), args...).InDir(p.SourceDir), nil
}

// ninjaTemplate returns the template for ninja -C <build> [target] [opts...].
func ninjaTemplate(target ...string) Template {
	return func(p Params) (*models.Invocation, error) {
		if p.BuildDir == "" {
			return nil, ErrMissingBuildDir
		}
		args := append([]string{"-C", p.BuildDir}, target...)
		args = append(args, SplitOptions(p.Options)...)
		return models.NewInvocation(p.ninja(), args...), nil
	}
}

func versionTemplate(p Params) (*models.Invocation, error) {
	return models.NewInvocation(p.meson(), "--version"), nil
}

// Introspects the build directory when one is set, otherwise the
// meson.build of the source directory.
func introspectTemplate(p Params) (*models.Invocation, error) {
	if p.BuildDir == "" {
		args := append([]string{"introspect", "--all", "meson.build"}, SplitOptions(p.Options)...)
		return models.NewInvocation(p.meson(), args...).InDir(p.SourceDir), nil
	}
	args := append([]string{"introspect", "--all", p.BuildDir}, SplitOptions(p.Options)...)
	return models.NewInvocation(p.meson(), args...), nil
}

func distTemplate(p Params) (*models.Invocation, error) {
	if p.BuildDir == "" {
		return nil, ErrMissingBuildDir
	}
	args := append([]string{"dist", "-C", p.BuildDir}, SplitOptions(p.Options)...)
	return models.NewInvocation(p.meson(), args...), nil
}
