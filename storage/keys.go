package storage

import (
	"errors"
	"fmt"
	"sort"

	"mesongui/models"
)

// ErrUnknownKey is returned for a settings key that does not exist.
var ErrUnknownKey = errors.New("unknown settings key")

// Themes lists the accepted values of the theme key.
var Themes = []string{"light", "dark"}

type keyAccess struct {
	get func(*models.Settings) string
	set func(*models.Settings, string) error
}

var keys = map[string]keyAccess{
	"build_dir": {
		get: func(s *models.Settings) string { return s.BuildDir },
		set: func(s *models.Settings, v string) error {
			v = models.CleanPath(v)
			if v == "" {
				return fmt.Errorf("build_dir must not be empty")
			}
			s.BuildDir = v
			return nil
		},
	},
	"theme": {
		get: func(s *models.Settings) string { return s.GetTheme() },
		set: func(s *models.Settings, v string) error {
			for _, t := range Themes {
				if v == t {
					s.Theme = v
					return nil
				}
			}
			return fmt.Errorf("invalid theme %q (want one of %v)", v, Themes)
		},
	},
	"meson": {
		get: func(s *models.Settings) string { return s.Meson },
		set: func(s *models.Settings, v string) error { s.Meson = v; return nil },
	},
	"ninja": {
		get: func(s *models.Settings) string { return s.Ninja },
		set: func(s *models.Settings, v string) error { s.Ninja = v; return nil },
	},
	"log_level": {
		get: func(s *models.Settings) string { return s.LogLevel },
		set: func(s *models.Settings, v string) error { s.LogLevel = v; return nil },
	},
}

// Keys returns the settings keys in sorted order.
func Keys() []string {
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Get returns the value of key.
func Get(s *models.Settings, key string) (string, error) {
	k, ok := keys[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return k.get(s), nil
}

// Set validates value and stores it under key.
func Set(s *models.Settings, key, value string) error {
	k, ok := keys[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return k.set(s, value)
}
