// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Group is a named bucket of filename prefixes. An image belongs to the
// group when its filename starts with any of the prefixes.
type Group struct {
	Name     string   `json:"name" yaml:"name"`
	Prefixes []string `json:"prefixes" yaml:"prefixes"`
}

// Matches reports whether filename starts with one of the group's prefixes.
// Matching is case-sensitive.
func (g Group) Matches(filename string) bool {
	return HasAnyPrefix(filename, g.Prefixes)
}

// HasAnyPrefix reports whether s starts with any of prefixes.
func HasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// GroupSet is an ordered list of groups. The order is the default sequence
// in which a grouped build visits them.
type GroupSet []Group

// Names returns the group names in order.
func (s GroupSet) Names() []string {
	names := make([]string, len(s))
	for i, g := range s {
		names[i] = g.Name
	}
	return names
}

// Find returns the group called name and its index, or -1.
func (s GroupSet) Find(name string) (Group, int) {
	for i, g := range s {
		if g.Name == name {
			return g, i
		}
	}
	return Group{}, -1
}

// Prefixes returns a name to prefixes mapping for the set.
func (s GroupSet) Prefixes() map[string][]string {
	m := make(map[string][]string, len(s))
	for _, g := range s {
		m[g.Name] = append([]string(nil), g.Prefixes...)
	}
	return m
}

// Clone returns a deep copy so callers can hand out snapshots.
func (s GroupSet) Clone() GroupSet {
	if s == nil {
		return nil
	}
	out := make(GroupSet, len(s))
	for i, g := range s {
		out[i] = Group{Name: g.Name, Prefixes: append([]string(nil), g.Prefixes...)}
	}
	return out
}

// CatalogKind names one of the two persisted group sets.
type CatalogKind string

const (
	CatalogPrincipal  CatalogKind = "principal"
	CatalogSecundario CatalogKind = "secundario"
)

// CatalogKinds lists the persisted group sets in display order.
var CatalogKinds = []CatalogKind{CatalogPrincipal, CatalogSecundario}

// Valid reports whether k is a known catalog kind.
func (k CatalogKind) Valid() bool {
	return k == CatalogPrincipal || k == CatalogSecundario
}

// DefaultName returns the catalog's file stem, e.g. Catalogo_Principal.
func (k CatalogKind) DefaultName() string {
	if k == CatalogSecundario {
		return "Catalogo_Secundario"
	}
	return "Catalogo_Principal"
}

// GroupConfig is the persisted pair of group sets.
type GroupConfig struct {
	Principal  GroupSet `json:"principal" yaml:"principal"`
	Secundario GroupSet `json:"secundario" yaml:"secundario"`
}

// Set returns the group set for kind.
func (c GroupConfig) Set(kind CatalogKind) GroupSet {
	if kind == CatalogSecundario {
		return c.Secundario
	}
	return c.Principal
}

// WithSet returns a copy of c with kind's set replaced by s.
func (c GroupConfig) WithSet(kind CatalogKind, s GroupSet) GroupConfig {
	if kind == CatalogSecundario {
		c.Secundario = s
	} else {
		c.Principal = s
	}
	return c
}
