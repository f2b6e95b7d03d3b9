// Package alias stores named changelist aliases.
//
// Each alias is one flat file under .git-p4son/changelists/<name> holding
// the changelist number. The on-disk layout is a compatibility contract
// with earlier versions of the tool and must not change.
package alias

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Errors returned by alias operations.
var (
	// ErrExists is returned when saving over an existing alias without
	// force.
	ErrExists = errors.New("alias already exists")

	// ErrNotFound is returned when the named alias does not exist.
	ErrNotFound = errors.New("no changelist alias found")

	// ErrInvalidName is returned for alias names the store rejects.
	ErrInvalidName = errors.New("invalid alias name")
)

// Alias is one stored name-to-changelist binding.
type Alias struct {
	Name       string
	Changelist string
}

// Store manages the alias directory of one workspace.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at the workspace's alias directory.
func NewStore(workspaceDir string) *Store {
	return &Store{dir: filepath.Join(workspaceDir, ".git-p4son", "changelists")}
}

// Save binds a changelist number to a name. An existing binding is only
// overwritten with force.
func (s *Store) Save(name, changelist string, force bool) error {
	// "@" would collide with p4 revision syntax in file arguments.
	if strings.Contains(name, "@") {
		return fmt.Errorf("%w: %q must not contain \"@\"", ErrInvalidName, name)
	}

	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %q (use --force to overwrite)", ErrExists, name)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(changelist+"\n"), 0o644)
}

// Load returns the changelist bound to a name.
func (s *Store) Load(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return "", err
	}

	changelist := strings.TrimSpace(string(data))
	if changelist == "" {
		return "", fmt.Errorf("changelist alias %q is empty", name)
	}
	return changelist, nil
}

// Resolve turns a changelist argument into a number: digit strings pass
// through, anything else is looked up as an alias.
func (s *Store) Resolve(value string) (string, error) {
	if isDigits(value) {
		return value, nil
	}
	return s.Load(value)
}

// List returns all aliases sorted by name.
func (s *Store) List() ([]Alias, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var aliases []Alias
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		changelist, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		aliases = append(aliases, Alias{Name: entry.Name(), Changelist: changelist})
	}

	sort.Slice(aliases, func(i, j int) bool { return aliases[i].Name < aliases[j].Name })
	return aliases, nil
}

// Delete removes an alias.
func (s *Store) Delete(name string) error {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return err
	}
	return os.Remove(path)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
