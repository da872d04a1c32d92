package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/bibsync/config.yml.
type GlobalConfig struct {
	SheetURL   string `yaml:"sheet_url,omitempty"`
	LabelsFile string `yaml:"labels_file,omitempty"`
	RosterFile string `yaml:"roster_file,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = AppDir
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/bibsync/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file, overlaid with
// environment variables (a .env in the working directory is honored).
// Returns an empty config, not an error, if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	_ = godotenv.Load()

	var cfg GlobalConfig
	path := GlobalConfigPath()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
		}
	}

	// Environment overrides the file.
	if v := os.Getenv("BIBSYNC_SHEET_URL"); v != "" {
		cfg.SheetURL = v
	}
	if v := os.Getenv("BIBSYNC_LABELS_FILE"); v != "" {
		cfg.LabelsFile = v
	}
	if v := os.Getenv("BIBSYNC_ROSTER_FILE"); v != "" {
		cfg.RosterFile = v
	}

	cfg.LabelsFile = ExpandTilde(cfg.LabelsFile)
	cfg.RosterFile = ExpandTilde(cfg.RosterFile)

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetSheetURL returns the spreadsheet URL from config or environment.
func GetSheetURL() string {
	cfg, _ := LoadGlobalConfig()
	return cfg.SheetURL
}

// HelpfulConfigMessage explains how to configure the spreadsheet URL.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No spreadsheet URL configured.

Tip: Create %s to set one:
  mkdir -p %s
  echo 'sheet_url: https://docs.google.com/spreadsheets/d/...' > %s

or set BIBSYNC_SHEET_URL in the environment.`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
