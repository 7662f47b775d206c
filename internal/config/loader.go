package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".wikinav"

var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidConfigFile is returned when the configuration file has
	// out-of-range values.
	ErrInvalidConfigFile = errors.New("invalid configuration file")
)

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfigFile, path, err)
	}

	if cf.Strategies == nil {
		cf.Strategies = make(map[string]StrategyConfig)
	}

	if err := cf.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cf, nil
}

// validate rejects values that can never be used.
func (cf *File) validate() error {
	check := func(name string, s StrategyConfig) error {
		if s.MaxSteps < 0 {
			return fmt.Errorf("%w: %s: maxSteps must not be negative", ErrInvalidConfigFile, name)
		}
		if s.Threshold != nil && math.IsNaN(*s.Threshold) {
			return fmt.Errorf("%w: %s: threshold must be a number", ErrInvalidConfigFile, name)
		}
		return nil
	}

	if err := check("defaults", cf.Defaults); err != nil {
		return err
	}
	for name, s := range cf.Strategies {
		if err := check(name, s); err != nil {
			return err
		}
	}
	if cf.MaxDepth < 0 {
		return fmt.Errorf("%w: maxDepth must not be negative", ErrInvalidConfigFile)
	}
	if cf.WordLimit < 0 {
		return fmt.Errorf("%w: wordLimit must not be negative", ErrInvalidConfigFile)
	}
	if cf.RequestDelay < 0 {
		return fmt.Errorf("%w: requestDelay must not be negative", ErrInvalidConfigFile)
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .wikinav in the current directory
// 3. Look for config.yaml in the XDG config directory (~/.config/wikinav)
// 4. Look for .wikinav in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
