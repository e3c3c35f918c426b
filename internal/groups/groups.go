// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package groups persists the catalog group sets as a YAML file and
// provides the edit operations used by the CLI. Every successful edit is
// written back immediately.
package groups

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/catalog-builder/pkg/types"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var (
	// ErrNotFound is returned when a named group does not exist.
	ErrNotFound = errors.New("group not found")

	// ErrExists is returned when a group name is already taken.
	ErrExists = errors.New("group already exists")

	// ErrInvalid is returned for empty names or prefixes.
	ErrInvalid = errors.New("invalid group definition")
)

// Defaults returns the built-in group sets.
func Defaults() (types.GroupConfig, error) {
	return parse(defaultsYAML)
}

func parse(data []byte) (types.GroupConfig, error) {
	var cfg types.GroupConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return types.GroupConfig{}, fmt.Errorf("parsing groups: %w", err)
	}
	for _, kind := range types.CatalogKinds {
		if err := validateSet(cfg.Set(kind)); err != nil {
			return types.GroupConfig{}, fmt.Errorf("parsing groups: %s: %w", kind, err)
		}
	}
	return cfg, nil
}

func validateSet(s types.GroupSet) error {
	seen := make(map[string]bool, len(s))
	for _, g := range s {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("%w: empty group name", ErrInvalid)
		}
		if seen[g.Name] {
			return fmt.Errorf("%w: %q", ErrExists, g.Name)
		}
		seen[g.Name] = true
	}
	return nil
}

// Store holds the group sets backed by a YAML file.
type Store struct {
	path string
	cfg  types.GroupConfig
	log  *zap.Logger
}

// Open loads the store at path. A missing, unreadable or malformed file
// yields the built-in defaults; the file is only created on the first
// edit. A nil logger disables logging.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	defaults, err := Defaults()
	if err != nil {
		return nil, err
	}
	s := &Store{path: path, cfg: defaults, log: log}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Debug("group store absent, using defaults", zap.String("path", path))
		return s, nil
	case err != nil:
		log.Warn("group store unreadable, using defaults", zap.String("path", path), zap.Error(err))
		return s, nil
	}

	cfg, err := parse(data)
	if err != nil {
		log.Warn("group store invalid, using defaults", zap.String("path", path), zap.Error(err))
		return s, nil
	}
	s.cfg = cfg
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Set returns a snapshot of the group set for kind.
func (s *Store) Set(kind types.CatalogKind) types.GroupSet {
	return s.cfg.Set(kind).Clone()
}

// Config returns a snapshot of both group sets.
func (s *Store) Config() types.GroupConfig {
	return types.GroupConfig{
		Principal:  s.cfg.Principal.Clone(),
		Secundario: s.cfg.Secundario.Clone(),
	}
}

// Save writes both group sets to the backing file, replacing it
// atomically.
func (s *Store) Save() error {
	data, err := yaml.Marshal(s.cfg)
	if err != nil {
		return fmt.Errorf("encoding groups: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating group store directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing groups: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing groups: %w", err)
	}
	return nil
}

// Add creates a group at the end of kind's set.
func (s *Store) Add(kind types.CatalogKind, name string, prefixes ...string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty group name", ErrInvalid)
	}
	clean, err := cleanPrefixes(prefixes)
	if err != nil {
		return err
	}
	return s.edit(kind, func(set types.GroupSet) (types.GroupSet, error) {
		if _, i := set.Find(name); i >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrExists, name)
		}
		return append(set, types.Group{Name: name, Prefixes: clean}), nil
	}, zap.String("op", "add"), zap.String("group", name))
}

// Remove deletes a group.
func (s *Store) Remove(kind types.CatalogKind, name string) error {
	return s.edit(kind, func(set types.GroupSet) (types.GroupSet, error) {
		_, i := set.Find(name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return slices.Delete(set, i, i+1), nil
	}, zap.String("op", "remove"), zap.String("group", name))
}

// Rename changes a group's name, keeping its position and prefixes.
func (s *Store) Rename(kind types.CatalogKind, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("%w: empty group name", ErrInvalid)
	}
	return s.edit(kind, func(set types.GroupSet) (types.GroupSet, error) {
		_, i := set.Find(oldName)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, oldName)
		}
		if _, j := set.Find(newName); j >= 0 && j != i {
			return nil, fmt.Errorf("%w: %q", ErrExists, newName)
		}
		set[i].Name = newName
		return set, nil
	}, zap.String("op", "rename"), zap.String("group", oldName), zap.String("to", newName))
}

// AddPrefix appends prefix to a group. Adding a prefix the group already
// has is a no-op.
func (s *Store) AddPrefix(kind types.CatalogKind, name, prefix string) error {
	clean, err := cleanPrefixes([]string{prefix})
	if err != nil {
		return err
	}
	return s.edit(kind, func(set types.GroupSet) (types.GroupSet, error) {
		_, i := set.Find(name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		if !slices.Contains(set[i].Prefixes, clean[0]) {
			set[i].Prefixes = append(set[i].Prefixes, clean[0])
		}
		return set, nil
	}, zap.String("op", "add-prefix"), zap.String("group", name), zap.String("prefix", prefix))
}

// RemovePrefix drops prefix from a group.
func (s *Store) RemovePrefix(kind types.CatalogKind, name, prefix string) error {
	return s.edit(kind, func(set types.GroupSet) (types.GroupSet, error) {
		_, i := set.Find(name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		j := slices.Index(set[i].Prefixes, prefix)
		if j < 0 {
			return nil, fmt.Errorf("%w: group %q has no prefix %q", ErrNotFound, name, prefix)
		}
		set[i].Prefixes = slices.Delete(set[i].Prefixes, j, j+1)
		return set, nil
	}, zap.String("op", "remove-prefix"), zap.String("group", name), zap.String("prefix", prefix))
}

// Move places a group at index pos (0-based) of the stored order. The
// position is clamped to the set bounds.
func (s *Store) Move(kind types.CatalogKind, name string, pos int) error {
	return s.edit(kind, func(set types.GroupSet) (types.GroupSet, error) {
		g, i := set.Find(name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		set = slices.Delete(set, i, i+1)
		pos = max(0, min(pos, len(set)))
		return slices.Insert(set, pos, g), nil
	}, zap.String("op", "move"), zap.String("group", name), zap.Int("position", pos))
}

// Reset restores kind's set to the built-in defaults.
func (s *Store) Reset(kind types.CatalogKind) error {
	defaults, err := Defaults()
	if err != nil {
		return err
	}
	return s.edit(kind, func(types.GroupSet) (types.GroupSet, error) {
		return defaults.Set(kind), nil
	}, zap.String("op", "reset"))
}

// Order resolves a per-build group selection against kind's set. An empty
// selection means every group in stored order. Unknown names and
// duplicates are errors.
func (s *Store) Order(kind types.CatalogKind, names []string) ([]string, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown catalog %q", kind)
	}
	set := s.cfg.Set(kind)
	if len(names) == 0 {
		return set.Names(), nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if _, i := set.Find(n); i < 0 {
			return nil, fmt.Errorf("%w: %q in %s", ErrNotFound, n, kind)
		}
		if seen[n] {
			return nil, fmt.Errorf("group %q listed twice", n)
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, nil
}

// edit applies fn to a copy of kind's set and persists the result. The
// in-memory state is only replaced once the file is written.
func (s *Store) edit(kind types.CatalogKind, fn func(types.GroupSet) (types.GroupSet, error), fields ...zap.Field) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown catalog %q", kind)
	}
	set, err := fn(s.cfg.Set(kind).Clone())
	if err != nil {
		return err
	}
	prev := s.cfg
	s.cfg = s.cfg.WithSet(kind, set)
	if err := s.Save(); err != nil {
		s.cfg = prev
		return err
	}
	s.log.Info("groups updated", append(fields, zap.String("catalog", string(kind)))...)
	return nil
}

func cleanPrefixes(prefixes []string) ([]string, error) {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("%w: empty prefix", ErrInvalid)
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out, nil
}
