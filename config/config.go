package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gestloc/gestloc/internal/constants"
)

// Config represents the application configuration
type Config struct {
	// BackendURL is the origin of the management backend.
	BackendURL    string `yaml:"backend_url,omitempty"`
	DefaultFormat string `yaml:"default_format,omitempty"`

	// RefreshInterval and PollInterval are Go duration strings
	// ("2m", "30s"). Empty means the built-in default.
	RefreshInterval string `yaml:"refresh_interval,omitempty"`
	PollInterval    string `yaml:"poll_interval,omitempty"`

	// SimulatedMaintenance enables the randomized maintenance
	// notification rule. Off unless explicitly set.
	SimulatedMaintenance *bool `yaml:"simulated_maintenance,omitempty"`
}

// DefaultBackendURL is used when no backend_url is configured.
const DefaultBackendURL = "http://localhost:3000"

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".gestloc"
	}
	return filepath.Join(configDir, "gestloc")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".gestloc.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from the XDG config directory, then merges
// any local .gestloc.yaml config on top (local values take precedence).
func Load() (*Config, error) {
	cfg := &Config{}

	globalPath := ConfigPath()
	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	localPath := LocalConfigPath()
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}

		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}

		cfg = mergeConfig(cfg, &localCfg)
	}

	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}

	return cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{}

	if local.BackendURL != "" {
		result.BackendURL = local.BackendURL
	} else {
		result.BackendURL = global.BackendURL
	}

	if local.DefaultFormat != "" {
		result.DefaultFormat = local.DefaultFormat
	} else {
		result.DefaultFormat = global.DefaultFormat
	}

	if local.RefreshInterval != "" {
		result.RefreshInterval = local.RefreshInterval
	} else {
		result.RefreshInterval = global.RefreshInterval
	}

	if local.PollInterval != "" {
		result.PollInterval = local.PollInterval
	} else {
		result.PollInterval = global.PollInterval
	}

	if local.SimulatedMaintenance != nil {
		result.SimulatedMaintenance = local.SimulatedMaintenance
	} else {
		result.SimulatedMaintenance = global.SimulatedMaintenance
	}

	return result
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configDir := DefaultConfigDir()

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetToken returns the backend token from the GESTLOC_TOKEN environment
// variable. Following 12-factor app practice, tokens are only read from the
// environment, never from config files.
func (c *Config) GetToken() string {
	return os.Getenv("GESTLOC_TOKEN")
}

// GetRefreshInterval parses the refresh interval, falling back to the
// default on empty or invalid input.
func (c *Config) GetRefreshInterval() time.Duration {
	return parseInterval(c.RefreshInterval, constants.AutoRefreshInterval)
}

// GetPollInterval parses the notification poll interval, falling back to
// the default on empty or invalid input.
func (c *Config) GetPollInterval() time.Duration {
	return parseInterval(c.PollInterval, constants.PollInterval)
}

func parseInterval(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// MaintenanceEnabled reports whether simulated maintenance notifications
// are turned on.
func (c *Config) MaintenanceEnabled() bool {
	return c.SimulatedMaintenance != nil && *c.SimulatedMaintenance
}

// SetDefaultFormat sets the default output format and saves
func (c *Config) SetDefaultFormat(format string) error {
	c.DefaultFormat = format
	return c.Save()
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# gestloc configuration file

# Backend origin
backend_url: http://localhost:3000

# Output format: table or json
default_format: table

# Background refresh and notification poll periods (optional)
# refresh_interval: 2m
# poll_interval: 30s

# Enable placeholder maintenance notifications (optional)
# simulated_maintenance: true
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
