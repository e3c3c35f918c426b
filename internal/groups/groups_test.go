// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package groups

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/catalog-builder/pkg/types"
)

const testYAML = `principal:
  - name: Alpha
    prefixes: [AB, AC]
  - name: Beta
    prefixes: [BB]
  - name: Gamma
    prefixes: [GG]
secundario:
  - name: Delta
    prefixes: [DD]
`

func openTest(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog_groups.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testYAML), 0o644))
	s, err := Open(path, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

// reopen reads the store file again to check that edits were persisted.
func reopen(t *testing.T, s *Store) *Store {
	t.Helper()
	r, err := Open(s.Path(), nil)
	require.NoError(t, err)
	return r
}

func TestDefaults(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Principal)
	assert.NotEmpty(t, cfg.Secundario)
}

func TestOpen_Fallback(t *testing.T) {
	defaults, err := Defaults()
	require.NoError(t, err)

	tests := []struct {
		name  string
		setup func(t *testing.T, path string)
	}{
		{name: "absent", setup: func(t *testing.T, path string) {}},
		{name: "malformed yaml", setup: func(t *testing.T, path string) {
			require.NoError(t, os.WriteFile(path, []byte("principal: [unclosed"), 0o644))
		}},
		{name: "duplicate names", setup: func(t *testing.T, path string) {
			data := "principal:\n  - name: A\n  - name: A\n"
			require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
		}},
		{name: "path is a directory", setup: func(t *testing.T, path string) {
			require.NoError(t, os.Mkdir(path, 0o755))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "groups.yaml")
			tt.setup(t, path)

			s, err := Open(path, zaptest.NewLogger(t))
			require.NoError(t, err)
			assert.Equal(t, defaults.Principal.Names(), s.Set(types.CatalogPrincipal).Names())
			assert.Equal(t, defaults.Secundario.Names(), s.Set(types.CatalogSecundario).Names())
		})
	}
}

func TestOpen_File(t *testing.T) {
	s := openTest(t)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, s.Set(types.CatalogPrincipal).Names())
	assert.Equal(t, []string{"Delta"}, s.Set(types.CatalogSecundario).Names())

	g, i := s.Set(types.CatalogPrincipal).Find("Alpha")
	assert.Equal(t, 0, i)
	assert.Equal(t, []string{"AB", "AC"}, g.Prefixes)
}

func TestSet_IsSnapshot(t *testing.T) {
	s := openTest(t)
	set := s.Set(types.CatalogPrincipal)
	set[0].Name = "changed"
	set[0].Prefixes[0] = "ZZ"

	g, _ := s.Set(types.CatalogPrincipal).Find("Alpha")
	assert.Equal(t, []string{"AB", "AC"}, g.Prefixes)
}

func TestEdits(t *testing.T) {
	tests := []struct {
		name      string
		edit      func(s *Store) error
		wantNames []string
		check     func(t *testing.T, set types.GroupSet)
	}{
		{
			name:      "add appends",
			edit:      func(s *Store) error { return s.Add(types.CatalogPrincipal, " Omega ", "OM", "OM", "OX") },
			wantNames: []string{"Alpha", "Beta", "Gamma", "Omega"},
			check: func(t *testing.T, set types.GroupSet) {
				g, _ := set.Find("Omega")
				assert.Equal(t, []string{"OM", "OX"}, g.Prefixes)
			},
		},
		{
			name:      "remove",
			edit:      func(s *Store) error { return s.Remove(types.CatalogPrincipal, "Beta") },
			wantNames: []string{"Alpha", "Gamma"},
		},
		{
			name:      "rename keeps position",
			edit:      func(s *Store) error { return s.Rename(types.CatalogPrincipal, "Beta", "Bravo") },
			wantNames: []string{"Alpha", "Bravo", "Gamma"},
			check: func(t *testing.T, set types.GroupSet) {
				g, _ := set.Find("Bravo")
				assert.Equal(t, []string{"BB"}, g.Prefixes)
			},
		},
		{
			name:      "add prefix",
			edit:      func(s *Store) error { return s.AddPrefix(types.CatalogPrincipal, "Gamma", "GH") },
			wantNames: []string{"Alpha", "Beta", "Gamma"},
			check: func(t *testing.T, set types.GroupSet) {
				g, _ := set.Find("Gamma")
				assert.Equal(t, []string{"GG", "GH"}, g.Prefixes)
			},
		},
		{
			name:      "add existing prefix is a no-op",
			edit:      func(s *Store) error { return s.AddPrefix(types.CatalogPrincipal, "Gamma", "GG") },
			wantNames: []string{"Alpha", "Beta", "Gamma"},
			check: func(t *testing.T, set types.GroupSet) {
				g, _ := set.Find("Gamma")
				assert.Equal(t, []string{"GG"}, g.Prefixes)
			},
		},
		{
			name:      "remove prefix",
			edit:      func(s *Store) error { return s.RemovePrefix(types.CatalogPrincipal, "Alpha", "AB") },
			wantNames: []string{"Alpha", "Beta", "Gamma"},
			check: func(t *testing.T, set types.GroupSet) {
				g, _ := set.Find("Alpha")
				assert.Equal(t, []string{"AC"}, g.Prefixes)
			},
		},
		{
			name:      "move to front",
			edit:      func(s *Store) error { return s.Move(types.CatalogPrincipal, "Gamma", 0) },
			wantNames: []string{"Gamma", "Alpha", "Beta"},
		},
		{
			name:      "move past end clamps",
			edit:      func(s *Store) error { return s.Move(types.CatalogPrincipal, "Alpha", 99) },
			wantNames: []string{"Beta", "Gamma", "Alpha"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTest(t)
			require.NoError(t, tt.edit(s))

			for _, store := range []*Store{s, reopen(t, s)} {
				set := store.Set(types.CatalogPrincipal)
				assert.Equal(t, tt.wantNames, set.Names())
				if tt.check != nil {
					tt.check(t, set)
				}
				assert.Equal(t, []string{"Delta"}, store.Set(types.CatalogSecundario).Names())
			}
		})
	}
}

func TestEdits_Errors(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(s *Store) error
		wantErr error
	}{
		{name: "add duplicate", edit: func(s *Store) error { return s.Add(types.CatalogPrincipal, "Alpha") }, wantErr: ErrExists},
		{name: "add empty name", edit: func(s *Store) error { return s.Add(types.CatalogPrincipal, "  ") }, wantErr: ErrInvalid},
		{name: "add empty prefix", edit: func(s *Store) error { return s.Add(types.CatalogPrincipal, "New", "") }, wantErr: ErrInvalid},
		{name: "remove unknown", edit: func(s *Store) error { return s.Remove(types.CatalogPrincipal, "Nope") }, wantErr: ErrNotFound},
		{name: "rename onto existing", edit: func(s *Store) error { return s.Rename(types.CatalogPrincipal, "Alpha", "Beta") }, wantErr: ErrExists},
		{name: "rename unknown", edit: func(s *Store) error { return s.Rename(types.CatalogPrincipal, "Nope", "X") }, wantErr: ErrNotFound},
		{name: "remove missing prefix", edit: func(s *Store) error { return s.RemovePrefix(types.CatalogPrincipal, "Alpha", "ZZ") }, wantErr: ErrNotFound},
		{name: "move unknown", edit: func(s *Store) error { return s.Move(types.CatalogPrincipal, "Nope", 0) }, wantErr: ErrNotFound},
		{name: "group of other catalog", edit: func(s *Store) error { return s.Remove(types.CatalogSecundario, "Alpha") }, wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTest(t)
			before, err := os.ReadFile(s.Path())
			require.NoError(t, err)

			require.ErrorIs(t, tt.edit(s), tt.wantErr)

			after, err := os.ReadFile(s.Path())
			require.NoError(t, err)
			assert.Equal(t, before, after)
			assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, s.Set(types.CatalogPrincipal).Names())
		})
	}
}

func TestEdit_UnknownCatalog(t *testing.T) {
	s := openTest(t)
	require.Error(t, s.Add("terciario", "X"))
}

func TestReset(t *testing.T) {
	s := openTest(t)
	require.NoError(t, s.Reset(types.CatalogPrincipal))

	defaults, err := Defaults()
	require.NoError(t, err)
	assert.Equal(t, defaults.Principal.Names(), reopen(t, s).Set(types.CatalogPrincipal).Names())
	assert.Equal(t, []string{"Delta"}, reopen(t, s).Set(types.CatalogSecundario).Names())
}

func TestSave_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "groups.yaml")
	s, err := Open(path, nil)
	require.NoError(t, err)
	assert.NoFileExists(t, path)

	require.NoError(t, s.Add(types.CatalogSecundario, "Novo", "NV"))
	assert.FileExists(t, path)
	assert.Contains(t, reopen(t, s).Set(types.CatalogSecundario).Names(), "Novo")
}

func TestOrder(t *testing.T) {
	s := openTest(t)

	tests := []struct {
		name    string
		kind    types.CatalogKind
		in      []string
		want    []string
		wantErr bool
	}{
		{name: "empty means stored order", kind: types.CatalogPrincipal, want: []string{"Alpha", "Beta", "Gamma"}},
		{name: "custom subset", kind: types.CatalogPrincipal, in: []string{"Gamma", " Alpha"}, want: []string{"Gamma", "Alpha"}},
		{name: "unknown group", kind: types.CatalogPrincipal, in: []string{"Delta"}, wantErr: true},
		{name: "duplicate", kind: types.CatalogPrincipal, in: []string{"Beta", "Beta"}, wantErr: true},
		{name: "unknown catalog", kind: "other", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Order(tt.kind, tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
