package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"mesongui/models"
)

const settingsFile = "settings.yaml"

// Manager handles settings persistence
type Manager struct {
	dataPath string
}

// NewManager creates a new storage manager under the user's config directory
func NewManager() *Manager {
	return NewManagerAt(DefaultDir())
}

// NewManagerAt creates a storage manager rooted at dir.
func NewManagerAt(dir string) *Manager {
	return &Manager{
		dataPath: dir,
	}
}

// DefaultDir returns $XDG_CONFIG_HOME/mesongui, falling back to
// ~/.config/mesongui and finally to the current directory.
func DefaultDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "mesongui")
}

// SettingsPath returns the full path of the settings file.
func (m *Manager) SettingsPath() string {
	return filepath.Join(m.dataPath, settingsFile)
}

// SaveSettings saves the settings to disk
func (m *Manager) SaveSettings(settings *models.Settings) error {
	if err := os.MkdirAll(m.dataPath, 0o700); err != nil {
		return fmt.Errorf("ensure settings dir: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	path := m.SettingsPath()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	log.WithField("path", path).Debug("settings saved")
	return nil
}

// LoadSettings loads the settings from disk. On first run the file is
// created with defaults. Keys missing from the file take their defaults.
func (m *Manager) LoadSettings() (*models.Settings, error) {
	path := m.SettingsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.WithField("path", path).Info("settings file not found, writing defaults")
			settings := models.DefaultSettings()
			if err := m.SaveSettings(settings); err != nil {
				log.WithError(err).Warn("failed to create default settings file")
			}
			return settings, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	settings, err := ParseSettings(data)
	if err != nil {
		return nil, fmt.Errorf("load settings %s: %w", path, err)
	}
	return settings.WithDefaults(), nil
}

// Update loads the settings, applies fn and saves the result.
func (m *Manager) Update(fn func(*models.Settings) error) (*models.Settings, error) {
	settings, err := m.LoadSettings()
	if err != nil {
		return nil, err
	}
	if err := fn(settings); err != nil {
		return nil, err
	}
	if err := m.SaveSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// ParseSettings decodes YAML settings, rejecting unknown keys.
// Empty input yields zero-value settings.
func ParseSettings(data []byte) (*models.Settings, error) {
	var settings models.Settings
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	return &settings, nil
}
