package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestGetPaths(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME-based test setup is not applicable on Windows")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TFPROFILE_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	paths, err := GetPaths()
	if err != nil {
		t.Fatalf("GetPaths() failed: %v", err)
	}

	if paths.RegistryDir != filepath.Join(home, RegistryDirName) {
		t.Errorf("unexpected RegistryDir %s", paths.RegistryDir)
	}
	expectedCreds := filepath.Join(home, CredentialsDirName, CredentialsFileName)
	if paths.CredentialsFile != expectedCreds {
		t.Errorf("expected CredentialsFile %s, got %s", expectedCreds, paths.CredentialsFile)
	}
	if filepath.Base(paths.ConfigFile) != ConfigFileName {
		t.Errorf("ConfigFile should end with %s, got %s", ConfigFileName, paths.ConfigFile)
	}
	if filepath.Dir(paths.ConfigFile) != paths.ConfigDir {
		t.Errorf("ConfigFile %s should be within ConfigDir %s", paths.ConfigFile, paths.ConfigDir)
	}
}

func TestGetPathsWithEnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("TFPROFILE_CONFIG_DIR", tmpDir)

	paths, err := GetPaths()
	if err != nil {
		t.Fatalf("GetPaths() failed: %v", err)
	}
	if paths.ConfigDir != tmpDir {
		t.Errorf("expected ConfigDir %s, got %s", tmpDir, paths.ConfigDir)
	}
}

func TestGetPathsXDGConfigHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG not applicable on Windows")
	}

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("TFPROFILE_CONFIG_DIR", "")

	paths, err := GetPaths()
	if err != nil {
		t.Fatalf("GetPaths() failed: %v", err)
	}

	expected := filepath.Join(tmpDir, AppName)
	if paths.ConfigDir != expected {
		t.Errorf("expected ConfigDir %s, got %s", expected, paths.ConfigDir)
	}
}

func TestGetPathsNoHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME unset is not meaningful on Windows")
	}

	t.Setenv("HOME", "")

	if _, err := GetPaths(); err == nil {
		t.Error("expected an error when the home directory cannot be resolved")
	}
}

func TestEnsureConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	paths := Paths{ConfigDir: filepath.Join(tmpDir, "config")}

	if err := paths.EnsureConfigDir(); err != nil {
		t.Fatalf("EnsureConfigDir() failed: %v", err)
	}
	// idempotent
	if err := paths.EnsureConfigDir(); err != nil {
		t.Errorf("second EnsureConfigDir() failed: %v", err)
	}
}
