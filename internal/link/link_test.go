package link

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tfprofile/internal/registry"
)

// testEnv builds a registry with the given profiles and a credentials path
// in a separate temp directory, mirroring the real home-directory layout.
func testEnv(t *testing.T, profiles ...string) (*registry.Registry, *Manager) {
	t.Helper()

	regDir := t.TempDir()
	for _, name := range profiles {
		path := filepath.Join(regDir, name+registry.Suffix)
		if err := os.WriteFile(path, []byte(`{"credentials":{"app.terraform.io":{"token":"`+name+`"}}}`), 0600); err != nil {
			t.Fatalf("failed to write profile %q: %v", name, err)
		}
	}

	reg, err := registry.Load(regDir)
	if err != nil {
		t.Fatalf("failed to load registry: %v", err)
	}

	credentials := filepath.Join(t.TempDir(), "credentials.tfrc.json")
	return reg, NewManager(credentials)
}

func TestManager_Resolve(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		reg, mgr := testEnv(t)

		status, err := mgr.Resolve(reg)
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if status.State != StateAbsent {
			t.Errorf("expected StateAbsent, got %s", status.State)
		}
	})

	t.Run("foreign plain file", func(t *testing.T) {
		reg, mgr := testEnv(t)
		if err := os.WriteFile(mgr.Path(), []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write foreign file: %v", err)
		}

		status, err := mgr.Resolve(reg)
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if status.State != StateForeign {
			t.Errorf("expected StateForeign, got %s", status.State)
		}
	})

	t.Run("active", func(t *testing.T) {
		reg, mgr := testEnv(t, "alice")
		alicePath, err := reg.Get("alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := os.Symlink(alicePath, mgr.Path()); err != nil {
			t.Fatalf("failed to create symlink: %v", err)
		}

		status, err := mgr.Resolve(reg)
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if status.State != StateActive {
			t.Fatalf("expected StateActive, got %s", status.State)
		}
		if status.Profile != "alice" {
			t.Errorf("expected profile 'alice', got %q", status.Profile)
		}
		if status.Target != alicePath {
			t.Errorf("expected target %s, got %s", alicePath, status.Target)
		}
	})

	t.Run("unknown symlink", func(t *testing.T) {
		reg, mgr := testEnv(t, "alice")
		stray := filepath.Join(t.TempDir(), "stray.tfrc.json")
		if err := os.Symlink(stray, mgr.Path()); err != nil {
			t.Fatalf("failed to create symlink: %v", err)
		}

		status, err := mgr.Resolve(reg)
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if status.State != StateUnknown {
			t.Errorf("expected StateUnknown, got %s", status.State)
		}
		if status.Target != stray {
			t.Errorf("expected target %s, got %s", stray, status.Target)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		reg, mgr := testEnv(t, "alice")
		alicePath, _ := reg.Get("alice")
		if err := os.Symlink(alicePath, mgr.Path()); err != nil {
			t.Fatalf("failed to create symlink: %v", err)
		}

		first, err := mgr.Resolve(reg)
		if err != nil {
			t.Fatalf("first Resolve() failed: %v", err)
		}
		second, err := mgr.Resolve(reg)
		if err != nil {
			t.Fatalf("second Resolve() failed: %v", err)
		}
		if first != second {
			t.Errorf("Resolve() not idempotent: %+v vs %+v", first, second)
		}
	})
}

func TestManager_Switch(t *testing.T) {
	t.Run("creates link when absent", func(t *testing.T) {
		reg, mgr := testEnv(t, "alice")
		alicePath, _ := reg.Get("alice")

		if err := mgr.Switch(alicePath); err != nil {
			t.Fatalf("Switch() failed: %v", err)
		}

		target, err := os.Readlink(mgr.Path())
		if err != nil {
			t.Fatalf("credentials path should be a symlink: %v", err)
		}
		if target != alicePath {
			t.Errorf("expected target %s, got %s", alicePath, target)
		}
	})

	t.Run("replaces existing link", func(t *testing.T) {
		reg, mgr := testEnv(t, "alice", "bob")
		alicePath, _ := reg.Get("alice")
		bobPath, _ := reg.Get("bob")

		if err := mgr.Switch(alicePath); err != nil {
			t.Fatalf("first Switch() failed: %v", err)
		}
		if err := mgr.Switch(bobPath); err != nil {
			t.Fatalf("second Switch() failed: %v", err)
		}

		status, err := mgr.Resolve(reg)
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if status.State != StateActive || status.Profile != "bob" {
			t.Errorf("expected active profile 'bob', got %s %q", status.State, status.Profile)
		}
	})

	t.Run("replaces unknown link", func(t *testing.T) {
		reg, mgr := testEnv(t, "alice")
		alicePath, _ := reg.Get("alice")
		if err := os.Symlink(filepath.Join(t.TempDir(), "stray"), mgr.Path()); err != nil {
			t.Fatalf("failed to create symlink: %v", err)
		}

		if err := mgr.Switch(alicePath); err != nil {
			t.Fatalf("Switch() failed: %v", err)
		}

		status, err := mgr.Resolve(reg)
		if err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if status.Profile != "alice" {
			t.Errorf("expected active profile 'alice', got %q", status.Profile)
		}
	})

	t.Run("refuses foreign credentials and leaves them untouched", func(t *testing.T) {
		reg, mgr := testEnv(t, "alice")
		alicePath, _ := reg.Get("alice")

		original := []byte(`{"credentials":{"app.terraform.io":{"token":"precious"}}}`)
		if err := os.WriteFile(mgr.Path(), original, 0600); err != nil {
			t.Fatalf("failed to write foreign file: %v", err)
		}

		err := mgr.Switch(alicePath)
		if !errors.Is(err, ErrForeignCredentials) {
			t.Fatalf("expected ErrForeignCredentials, got %v", err)
		}

		data, err := os.ReadFile(mgr.Path())
		if err != nil {
			t.Fatalf("foreign file should still exist: %v", err)
		}
		if string(data) != string(original) {
			t.Error("foreign credentials were modified")
		}
		if _, err := os.Readlink(mgr.Path()); err == nil {
			t.Error("foreign file should not have become a symlink")
		}
	})
}

func TestManager_Import(t *testing.T) {
	t.Run("moves plain file into registry", func(t *testing.T) {
		reg, mgr := testEnv(t)
		content := []byte(`{"credentials":{"app.terraform.io":{"token":"fresh"}}}`)
		if err := os.WriteFile(mgr.Path(), content, 0600); err != nil {
			t.Fatalf("failed to write credentials: %v", err)
		}

		dest, err := mgr.Import(reg, "work")
		if err != nil {
			t.Fatalf("Import() failed: %v", err)
		}
		if dest != reg.FilePath("work") {
			t.Errorf("expected destination %s, got %s", reg.FilePath("work"), dest)
		}

		data, err := os.ReadFile(dest)
		if err != nil {
			t.Fatalf("registry file should exist: %v", err)
		}
		if string(data) != string(content) {
			t.Error("profile contents changed during import")
		}

		if _, err := os.Lstat(mgr.Path()); !os.IsNotExist(err) {
			t.Error("credentials path should be empty after import")
		}

		// a fresh scan must pick the new profile up
		reloaded, err := registry.Load(reg.Dir())
		if err != nil {
			t.Fatalf("failed to reload registry: %v", err)
		}
		if _, err := reloaded.Get("work"); err != nil {
			t.Errorf("imported profile not found on reload: %v", err)
		}
	})

	t.Run("refuses a link to a registered profile", func(t *testing.T) {
		reg, mgr := testEnv(t, "alice")
		alicePath, _ := reg.Get("alice")
		if err := os.Symlink(alicePath, mgr.Path()); err != nil {
			t.Fatalf("failed to create symlink: %v", err)
		}

		_, err := mgr.Import(reg, "copy")
		if !errors.Is(err, ErrAlreadyImported) {
			t.Fatalf("expected ErrAlreadyImported, got %v", err)
		}
		if _, err := os.Readlink(mgr.Path()); err != nil {
			t.Error("credentials link should be untouched")
		}
	})

	t.Run("refuses an unknown link", func(t *testing.T) {
		reg, mgr := testEnv(t, "alice")
		if err := os.Symlink(filepath.Join(t.TempDir(), "stray"), mgr.Path()); err != nil {
			t.Fatalf("failed to create symlink: %v", err)
		}

		_, err := mgr.Import(reg, "copy")
		if !errors.Is(err, ErrUnknownLink) {
			t.Fatalf("expected ErrUnknownLink, got %v", err)
		}
	})

	t.Run("refuses to overwrite an existing profile", func(t *testing.T) {
		reg, mgr := testEnv(t, "work")
		content := []byte(`{"credentials":{}}`)
		if err := os.WriteFile(mgr.Path(), content, 0600); err != nil {
			t.Fatalf("failed to write credentials: %v", err)
		}

		_, err := mgr.Import(reg, "work")
		if !errors.Is(err, ErrProfileExists) {
			t.Fatalf("expected ErrProfileExists, got %v", err)
		}
		if _, err := os.Stat(mgr.Path()); err != nil {
			t.Error("source credentials should be untouched after refusal")
		}
	})

	t.Run("rejects a name containing the suffix", func(t *testing.T) {
		reg, mgr := testEnv(t)
		_, err := mgr.Import(reg, "work.tfrc.json")
		if !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName, got %v", err)
		}
	})

	t.Run("fails when nothing exists at the credentials path", func(t *testing.T) {
		reg, mgr := testEnv(t)
		if _, err := mgr.Import(reg, "work"); err == nil {
			t.Error("expected error when the credentials path is empty")
		}
	})
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateAbsent, "absent"},
		{StateActive, "active"},
		{StateUnknown, "unknown"},
		{StateForeign, "foreign"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, expected %q", int(tt.state), got, tt.want)
		}
	}
}
