package models

// Default values for settings keys missing from the file.
const (
	DefaultBuildDir = "builddir"
	DefaultTheme    = "light"
	DefaultMeson    = "meson"
	DefaultNinja    = "ninja"
	DefaultLogLevel = "info"
)

// Settings represents application settings
type Settings struct {
	BuildDir string `yaml:"build_dir"` // default build directory name, relative to the source dir
	Theme    string `yaml:"theme"`     // "light" or "dark"
	Meson    string `yaml:"meson,omitempty"`
	Ninja    string `yaml:"ninja,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

// DefaultSettings returns default application settings
func DefaultSettings() *Settings {
	return &Settings{
		BuildDir: DefaultBuildDir,
		Theme:    DefaultTheme,
		Meson:    DefaultMeson,
		Ninja:    DefaultNinja,
		LogLevel: DefaultLogLevel,
	}
}

// WithDefaults fills every empty key with its default and returns s.
func (s *Settings) WithDefaults() *Settings {
	d := DefaultSettings()
	if s.BuildDir == "" {
		s.BuildDir = d.BuildDir
	}
	if s.Theme == "" {
		s.Theme = d.Theme
	}
	if s.Meson == "" {
		s.Meson = d.Meson
	}
	if s.Ninja == "" {
		s.Ninja = d.Ninja
	}
	if s.LogLevel == "" {
		s.LogLevel = d.LogLevel
	}
	return s
}

// GetTheme returns the configured theme name, falling back to the default.
func (s *Settings) GetTheme() string {
	if s.Theme == "" {
		return DefaultTheme
	}
	return s.Theme
}

// Clone returns a copy that can be edited without touching s.
func (s *Settings) Clone() *Settings {
	c := *s
	return &c
}
