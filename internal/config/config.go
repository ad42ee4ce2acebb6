package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NotificationConfig holds settings for desktop notifications.
type NotificationConfig struct {
	// Enabled enables desktop notifications.
	Enabled bool `yaml:"enabled,omitempty"`
	// OnSwitch sends a notification after a successful profile switch.
	OnSwitch bool `yaml:"on_switch,omitempty"`
	// OnImport sends a notification after a successful profile import.
	OnImport bool `yaml:"on_import,omitempty"`
	// OnRefusal sends an alert when an operation is refused to protect
	// existing credentials.
	OnRefusal bool `yaml:"on_refusal,omitempty"`
}

// Config represents the tfprofile configuration.
type Config struct {
	// RegistryDir is the directory holding the registered profile files.
	RegistryDir string `yaml:"registry_dir,omitempty"`
	// CredentialsFile is the credentials path Terraform reads, normally a
	// symlink into the registry.
	CredentialsFile string `yaml:"credentials_file,omitempty"`
	// Notifications holds notification settings.
	Notifications NotificationConfig `yaml:"notifications,omitempty"`

	// filePath is the path where this config was loaded from.
	filePath string `yaml:"-"`
}

// Default returns a new Config with default values.
func Default() (*Config, error) {
	paths, err := GetPaths()
	if err != nil {
		return nil, err
	}
	return &Config{
		RegistryDir:     paths.RegistryDir,
		CredentialsFile: paths.CredentialsFile,
		Notifications: NotificationConfig{
			Enabled:   false,
			OnSwitch:  true,
			OnImport:  true,
			OnRefusal: true,
		},
		filePath: paths.ConfigFile,
	}, nil
}

// Load loads the configuration from the default path.
func Load() (*Config, error) {
	paths, err := GetPaths()
	if err != nil {
		return nil, err
	}
	return LoadFrom(paths.ConfigFile)
}

// LoadFrom loads the configuration from a specific path. A missing file is
// not an error: defaults apply, and environment variables override both.
func LoadFrom(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	cfg.filePath = path

	// #nosec G304 - path is the config file path (controlled, from user config directory)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides path settings from the environment. Environment
// variables win over the config file.
func (c *Config) applyEnv() {
	if dir := os.Getenv("TFPROFILE_REGISTRY_DIR"); dir != "" {
		c.RegistryDir = dir
	}
	if file := os.Getenv("TFPROFILE_CREDENTIALS_FILE"); file != "" {
		c.CredentialsFile = file
	}
}

// Save writes the configuration to its file path.
func (c *Config) Save() error {
	if c.filePath == "" {
		return errors.New("config file path not set")
	}

	paths, err := GetPaths()
	if err != nil {
		return err
	}
	if err := paths.EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// FilePath returns the path where this config was loaded from.
func (c *Config) FilePath() string {
	return c.filePath
}
