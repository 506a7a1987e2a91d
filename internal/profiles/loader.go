package profiles

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/riftline/guidecrawl/internal/logger"
)

// ErrNoProfiles is returned when the profiles directory contains no profiles.
var ErrNoProfiles = errors.New("no profiles found")

// ErrProfileNotFound is returned when a profile cannot be found by name.
var ErrProfileNotFound = errors.New("profile not found")

// Manager provides read access to the loaded site profiles.
type Manager struct {
	profiles []*Profile
	logger   logger.Interface
}

// Load reads every profile YAML file from dir and returns a Manager.
// Files are loaded in lexical order so listings are stable across runs.
// The logger parameter may be nil.
func Load(dir string, log logger.Interface) (*Manager, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yml" || ext == ".yaml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	loaded := make([]*Profile, 0, len(names))
	for _, name := range names {
		profile, loadErr := loadFile(filepath.Join(dir, name))
		if loadErr != nil {
			return nil, loadErr
		}
		loaded = append(loaded, profile)
	}

	if len(loaded) == 0 {
		return nil, ErrNoProfiles
	}

	if log != nil {
		log.Info("Loaded site profiles", "dir", dir, "count", len(loaded))
	}

	return &Manager{profiles: loaded, logger: log}, nil
}

// loadFile reads and validates a single profile file.
func loadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	return &profile, nil
}

// List returns all loaded profiles.
func (m *Manager) List() []*Profile {
	return m.profiles
}

// FindByName returns the profile with the given name.
func (m *Manager) FindByName(name string) (*Profile, error) {
	for _, profile := range m.profiles {
		if strings.EqualFold(profile.Name, name) {
			return profile, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
}
