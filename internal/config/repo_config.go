package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside the .git directory
const FileName = "dendrify.yaml"

// Configuration keys accepted by Get and Set
const (
	KeyQuiet   = "quiet"
	KeyRooted  = "rooted"
	KeyLogFile = "log-file"
)

// RepoConfig represents the repository configuration
type RepoConfig struct {
	Quiet   *bool   `yaml:"quiet,omitempty"`
	Rooted  *bool   `yaml:"rooted,omitempty"`
	LogFile *string `yaml:"logFile,omitempty"`
}

// Settings is the effective configuration after environment overrides
type Settings struct {
	Quiet   bool
	Rooted  bool
	LogFile string
}

func configPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", FileName)
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	data, err := os.ReadFile(configPath(repoRoot))
	if errors.Is(err, os.ErrNotExist) {
		// Config doesn't exist - return default
		return &RepoConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read repo config: %w", err)
	}

	var config RepoConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

// SaveRepoConfig writes the repository configuration
func SaveRepoConfig(repoRoot string, config *RepoConfig) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(configPath(repoRoot), data, 0600)
}

// Load returns the effective settings for a repository.
// DENDRIFY_QUIET and DENDRIFY_LOG_FILE override the config file.
func Load(repoRoot string) (*Settings, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return nil, err
	}

	settings := &Settings{}
	if config.Quiet != nil {
		settings.Quiet = *config.Quiet
	}
	if config.Rooted != nil {
		settings.Rooted = *config.Rooted
	}
	if config.LogFile != nil {
		settings.LogFile = *config.LogFile
	}

	if v := os.Getenv("DENDRIFY_QUIET"); v != "" {
		quiet, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DENDRIFY_QUIET %q: %w", v, err)
		}
		settings.Quiet = quiet
	}
	if v := os.Getenv("DENDRIFY_LOG_FILE"); v != "" {
		settings.LogFile = v
	}

	return settings, nil
}

// Get returns the configured value for key as text
func Get(repoRoot, key string) (string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	switch key {
	case KeyQuiet:
		return strconv.FormatBool(config.Quiet != nil && *config.Quiet), nil
	case KeyRooted:
		return strconv.FormatBool(config.Rooted != nil && *config.Rooted), nil
	case KeyLogFile:
		if config.LogFile == nil {
			return "", nil
		}
		return *config.LogFile, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// Set updates key in the repository configuration
func Set(repoRoot, key, value string) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	switch key {
	case KeyQuiet, KeyRooted:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: must be true or false", key)
		}
		if key == KeyQuiet {
			config.Quiet = &enabled
		} else {
			config.Rooted = &enabled
		}
	case KeyLogFile:
		config.LogFile = &value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	return SaveRepoConfig(repoRoot, config)
}
