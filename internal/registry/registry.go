// Package registry maintains the on-disk registry of Terraform Cloud
// credential profiles. The registry is just a directory of
// <name>.tfrc.json files, rescanned on every invocation; there is no
// persistent index beyond the filesystem itself.
package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Suffix is the file suffix that marks a registry entry as a profile.
const Suffix = ".tfrc.json"

// ErrUnknownProfile indicates a profile name is not present in the registry.
var ErrUnknownProfile = errors.New("unknown profile")

// Registry is the in-memory view of the registry directory, built fresh by
// Load on every run.
type Registry struct {
	dir      string
	names    []string
	profiles map[string]string
}

// Load scans dir and builds the profile mapping, creating the directory if
// it does not exist yet. Entries whose name does not carry the profile
// suffix, and subdirectories, are skipped. The name is whatever precedes
// the first occurrence of the suffix; when several entries reduce to the
// same name the last one scanned wins, and the name is listed once.
func Load(dir string) (*Registry, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry directory: %w", err)
	}

	reg := &Registry{
		dir:      dir,
		profiles: make(map[string]string, len(entries)),
	}
	for _, entry := range entries {
		if entry.IsDir() {
			log.Debug().Str("entry", entry.Name()).Msg("skipping directory in registry")
			continue
		}
		name, ok := SplitName(entry.Name())
		if !ok {
			log.Debug().Str("entry", entry.Name()).Msg("skipping non-profile file in registry")
			continue
		}
		if _, seen := reg.profiles[name]; seen {
			log.Debug().Str("entry", entry.Name()).Str("name", name).Msg("duplicate profile name, later entry wins")
		} else {
			reg.names = append(reg.names, name)
		}
		reg.profiles[name] = filepath.Join(dir, entry.Name())
	}

	log.Debug().Str("dir", dir).Int("profiles", len(reg.profiles)).Msg("registry loaded")
	return reg, nil
}

// SplitName derives a profile name from a registry file name. It splits on
// the first occurrence of the suffix, so a name may never itself contain
// ".tfrc.json". Returns false when the suffix is absent.
func SplitName(fileName string) (string, bool) {
	name, _, found := strings.Cut(fileName, Suffix)
	return name, found
}

// Dir returns the registry directory.
func (r *Registry) Dir() string {
	return r.dir
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	return len(r.profiles)
}

// Names returns all profile names in directory-scan order.
func (r *Registry) Names() []string {
	return r.names
}

// Get returns the backing file path for a profile name.
func (r *Registry) Get(name string) (string, error) {
	path, ok := r.profiles[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownProfile, name)
	}
	return path, nil
}

// NameFor returns the profile whose backing file is exactly target. Paths
// are compared literally; both sides are expected to be the absolute form
// the registry itself produced.
func (r *Registry) NameFor(target string) (string, bool) {
	for name, path := range r.profiles {
		if path == target {
			return name, true
		}
	}
	return "", false
}

// FilePath returns the path a profile with the given name would occupy in
// the registry, whether or not it exists yet.
func (r *Registry) FilePath(name string) string {
	return filepath.Join(r.dir, name+Suffix)
}
