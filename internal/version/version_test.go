package version

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.Version == "" {
		t.Error("Version should not be empty")
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should not be empty")
	}
	if !strings.Contains(info.Platform, "/") {
		t.Errorf("Platform should be os/arch, got %q", info.Platform)
	}
}

func TestInfoString(t *testing.T) {
	info := Get()

	s := info.String()
	if !strings.HasPrefix(s, "tfprofile ") {
		t.Errorf("String() should start with the app name, got %q", s)
	}
	if !strings.Contains(s, info.Version) {
		t.Errorf("String() should contain the version, got %q", s)
	}

	short := info.Short()
	if short != "tfprofile "+info.Version {
		t.Errorf("unexpected Short() value %q", short)
	}
}
