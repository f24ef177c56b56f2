package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mainbong/spagrep/internal/filesystem"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ConfigEnv names an alternative settings file.
const ConfigEnv = "SPAGREP_CONFIG"

// Settings holds user preferences that do not change what a search matches.
type Settings struct {
	LogLevel string `json:"log_level" toml:"log_level" yaml:"log_level"` // "debug", "info", "warn", "error"
	LogDir   string `json:"log_dir" toml:"log_dir" yaml:"log_dir"`       // empty disables logging
	Color    string `json:"color" toml:"color" yaml:"color"`             // "auto", "always", "never"
}

var (
	configDir  = filepath.Join(os.Getenv("HOME"), ".spagrep")
	configFile = filepath.Join(configDir, "config.toml")
	defaultFS  = filesystem.NewOSFileSystem()
)

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel: "warn",
		Color:    "auto",
	}
}

// Load loads settings from path. An empty path falls back to $SPAGREP_CONFIG and then to
// ~/.spagrep/config.toml; only the default location may be missing.
func Load(path string) (*Settings, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path == "" {
		path = configFile
		explicit = false
	}
	return LoadWithFS(defaultFS, path, explicit)
}

// LoadWithFS loads settings using a custom FileSystem (for testing)
func LoadWithFS(fs filesystem.FileSystem, file string, mustExist bool) (*Settings, error) {
	s := DefaultSettings()

	if _, err := fs.Stat(file); err != nil {
		if errors.Is(err, os.ErrNotExist) && !mustExist {
			return s, nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	data, err := fs.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := decode(file, data, s); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", file, err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func decode(file string, data []byte, s *Settings) error {
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".toml":
		return toml.Unmarshal(data, s)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, s)
	case ".json":
		return json.Unmarshal(data, s)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

func (s *Settings) validate() error {
	if err := s.Set("log_level", s.LogLevel); err != nil {
		return err
	}
	return s.Set("color", s.Color)
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	return configDir
}

// GetConfigFile returns the default configuration file path
func GetConfigFile() string {
	return configFile
}

// Set updates a settings value by key.
func (s *Settings) Set(key, value string) error {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "log_level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "error":
			s.LogLevel = strings.ToLower(value)
		default:
			return fmt.Errorf("invalid log_level: %s", value)
		}
	case "log_dir":
		s.LogDir = value
	case "color":
		switch strings.ToLower(value) {
		case "auto", "always", "never":
			s.Color = strings.ToLower(value)
		default:
			return fmt.Errorf("invalid color: %s", value)
		}
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	return nil
}
