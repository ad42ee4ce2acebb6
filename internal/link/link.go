// Package link manages the active credentials symlink. The link lives at
// the fixed path Terraform reads its credentials from and points at one of
// the files in the profile registry.
package link

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"tfprofile/internal/registry"
)

// State describes what currently occupies the credentials path.
type State int

const (
	// StateAbsent means nothing exists at the credentials path.
	StateAbsent State = iota
	// StateActive means the path is a symlink to a registered profile.
	StateActive
	// StateUnknown means the path is a symlink to something outside the
	// registry.
	StateUnknown
	// StateForeign means the path is a regular file (or directory) that
	// tfprofile does not manage.
	StateForeign
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateActive:
		return "active"
	case StateUnknown:
		return "unknown"
	case StateForeign:
		return "foreign"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Domain errors surfaced by the link manager.
var (
	// ErrForeignCredentials indicates a non-symlink credentials file that
	// would be destroyed by a switch. Refused, never overwritten.
	ErrForeignCredentials = errors.New("existing credentials file is not managed by tfprofile")
	// ErrUnknownLink indicates the credentials symlink points outside the
	// registry.
	ErrUnknownLink = errors.New("credentials file is an unknown symbolic link")
	// ErrAlreadyImported indicates an import was attempted while the
	// credentials path is already a link to a registered profile.
	ErrAlreadyImported = errors.New("credentials are already imported")
	// ErrProfileExists indicates an import would overwrite an existing
	// registry entry.
	ErrProfileExists = errors.New("a profile with that name already exists")
	// ErrNoActiveProfile indicates no registered profile is in use.
	ErrNoActiveProfile = errors.New("no profile is currently in use")
	// ErrInvalidName indicates a profile name that cannot be represented
	// as a registry file name.
	ErrInvalidName = errors.New("invalid profile name")
)

// Status is the result of resolving the credentials path.
type Status struct {
	State State
	// Profile is the active profile name when State is StateActive.
	Profile string
	// Target is the symlink target when the path is a symlink.
	Target string
}

// Manager operates on the credentials path. The path is threaded in
// explicitly so the manager can be pointed at a temp directory in tests.
type Manager struct {
	path string
}

// NewManager returns a Manager for the given credentials path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Path returns the credentials path this manager operates on.
func (m *Manager) Path() string {
	return m.path
}

// Resolve inspects the credentials path and classifies it against the
// registry. It never modifies the filesystem.
func (m *Manager) Resolve(reg *registry.Registry) (Status, error) {
	info, err := os.Lstat(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Status{State: StateAbsent}, nil
		}
		return Status{}, fmt.Errorf("failed to inspect credentials path: %w", err)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return Status{State: StateForeign}, nil
	}

	target, err := os.Readlink(m.path)
	if err != nil {
		return Status{}, fmt.Errorf("failed to read credentials link: %w", err)
	}

	if name, ok := reg.NameFor(target); ok {
		return Status{State: StateActive, Profile: name, Target: target}, nil
	}
	return Status{State: StateUnknown, Target: target}, nil
}

// Switch points the credentials link at profilePath. A foreign credentials
// file is refused: switching over it would destroy credentials that were
// never imported.
func (m *Manager) Switch(profilePath string) error {
	info, err := os.Lstat(m.path)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink == 0:
		return fmt.Errorf("%w: import or delete %s first", ErrForeignCredentials, m.path)
	case err != nil && !os.IsNotExist(err):
		return fmt.Errorf("failed to inspect credentials path: %w", err)
	}
	return m.replace(profilePath)
}

// replace swaps the credentials link for one pointing at target. A fresh
// link is created alongside and renamed into place, so readers never
// observe a missing link on platforms where rename replaces the
// destination atomically. Where rename cannot replace, falls back to
// remove-then-create; that path has a window with no link at all.
func (m *Manager) replace(target string) error {
	tmp := fmt.Sprintf("%s.tmp-%d", m.path, os.Getpid())
	if err := os.Symlink(target, tmp); err != nil {
		return fmt.Errorf("failed to create credentials link: %w", err)
	}

	if err := os.Rename(tmp, m.path); err != nil {
		log.Debug().Err(err).Msg("atomic link replace failed, falling back to remove-then-create")
		_ = os.Remove(tmp)

		if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing credentials link: %w", err)
		}
		if err := os.Symlink(target, m.path); err != nil {
			return fmt.Errorf("failed to create credentials link: %w", err)
		}
	}

	log.Debug().Str("target", target).Str("link", m.path).Msg("credentials link replaced")
	return nil
}

// Import moves the file at the credentials path into the registry under
// name and returns the new registry path. A symlinked credentials path is
// refused: it already belongs to the registry, or to something unknown.
// This is the only way registry entries come into existence.
func (m *Manager) Import(reg *registry.Registry, name string) (string, error) {
	if strings.Contains(name, registry.Suffix) {
		return "", fmt.Errorf("%w: %q must not contain %q", ErrInvalidName, name, registry.Suffix)
	}

	status, err := m.Resolve(reg)
	if err != nil {
		return "", err
	}
	switch status.State {
	case StateActive:
		return "", fmt.Errorf("%w under %q", ErrAlreadyImported, status.Profile)
	case StateUnknown:
		return "", fmt.Errorf("%w: points at %s", ErrUnknownLink, status.Target)
	}

	dest := reg.FilePath(name)
	if _, err := os.Lstat(dest); err == nil {
		return "", fmt.Errorf("%w: %q", ErrProfileExists, name)
	}

	if err := os.Rename(m.path, dest); err != nil {
		return "", fmt.Errorf("failed to move credentials into registry: %w", err)
	}

	log.Debug().Str("from", m.path).Str("to", dest).Msg("credentials imported")
	return dest, nil
}
