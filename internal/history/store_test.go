// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/catalog-builder/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "sub", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecord(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rec, err := s.Record(ctx, types.BuildRecord{
		Catalog:    "Catalogo_Principal",
		Mode:       "grouped",
		OutputPath: "/out/Catalogo_Principal.pdf",
		Pages:      3,
		Overlays:   2,
		Groups:     []types.GroupCount{{Group: "Canecas", Pages: 2}, {Group: "Copos", Pages: 1}},
		SheetPath:  "/data/Planilha.ods",
	})
	require.NoError(t, err)

	_, err = uuid.Parse(rec.ID)
	require.NoError(t, err)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec, got[0])
}

func TestRecord_DuplicateID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rec := types.BuildRecord{ID: "fixed", Catalog: "A", Mode: "flat", OutputPath: "/a.pdf", Pages: 1}
	_, err := s.Record(ctx, rec)
	require.NoError(t, err)
	_, err = s.Record(ctx, rec)
	require.Error(t, err)
}

func TestList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"A", "B", "A", "C"} {
		_, err := s.Record(ctx, types.BuildRecord{
			ID:         name + string(rune('0'+i)),
			Catalog:    name,
			Mode:       "flat",
			OutputPath: "/out/" + name + ".pdf",
			Pages:      i + 1,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	tests := []struct {
		name    string
		opts    ListOptions
		wantIDs []string
	}{
		{name: "newest first", opts: ListOptions{}, wantIDs: []string{"C3", "A2", "B1", "A0"}},
		{name: "limit", opts: ListOptions{Limit: 2}, wantIDs: []string{"C3", "A2"}},
		{name: "by catalog", opts: ListOptions{Catalog: "A"}, wantIDs: []string{"A2", "A0"}},
		{name: "unknown catalog", opts: ListOptions{Catalog: "Z"}, wantIDs: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.opts)
			require.NoError(t, err)
			var ids []string
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestNewStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := NewStore(path)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), types.BuildRecord{Catalog: "A", Mode: "flat", OutputPath: "/a.pdf"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = NewStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
