// Package config provides configuration management for tfprofile.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppName is the application name used for directories.
	AppName = "tfprofile"
	// ConfigFileName is the default configuration file name.
	ConfigFileName = "config.yaml"
	// RegistryDirName is the registry directory created under the user's home.
	RegistryDirName = ".tfprofile"
	// CredentialsDirName is the directory Terraform keeps its CLI state in.
	CredentialsDirName = ".terraform.d"
	// CredentialsFileName is the credentials file consumed by Terraform.
	CredentialsFileName = "credentials.tfrc.json"
)

// ErrNoHomeDir indicates the user's home directory could not be resolved.
// Nothing can run without it: both the registry and the credentials file
// live underneath it.
var ErrNoHomeDir = errors.New("cannot determine home directory")

// Paths holds all the application paths.
type Paths struct {
	ConfigDir       string
	ConfigFile      string
	RegistryDir     string
	CredentialsFile string
}

// GetPaths returns the default application paths. The config directory
// follows the XDG Base Directory specification; the registry and
// credentials paths are fixed locations under the user's home directory.
func GetPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("%w: %v", ErrNoHomeDir, err)
	}

	configDir := getConfigDir(home)
	return Paths{
		ConfigDir:       configDir,
		ConfigFile:      filepath.Join(configDir, ConfigFileName),
		RegistryDir:     filepath.Join(home, RegistryDirName),
		CredentialsFile: filepath.Join(home, CredentialsDirName, CredentialsFileName),
	}, nil
}

// getConfigDir returns the configuration directory path.
func getConfigDir(home string) string {
	// Check for explicit override
	if dir := os.Getenv("TFPROFILE_CONFIG_DIR"); dir != "" {
		return dir
	}

	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
		return filepath.Join(home, "AppData", "Roaming", AppName)
	case "darwin":
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, AppName)
		}
		// Prefer ~/.config/tfprofile when it already exists
		xdgPath := filepath.Join(home, ".config", AppName)
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
		return filepath.Join(home, "Library", "Application Support", AppName)
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			return filepath.Join(xdgConfig, AppName)
		}
		return filepath.Join(home, ".config", AppName)
	}
}

// EnsureConfigDir creates the configuration directory if it doesn't exist.
func (p Paths) EnsureConfigDir() error {
	return os.MkdirAll(p.ConfigDir, 0700)
}
