// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imageset enumerates the product images of a catalog folder in a
// deterministic order.
package imageset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/catalog-builder/pkg/types"
)

// extensions lists the accepted image extensions, lowercased.
var extensions = map[string]bool{
	".jpg": true,
	".png": true,
}

// IsImage reports whether name has an accepted image extension,
// ignoring case.
func IsImage(name string) bool {
	return extensions[strings.ToLower(filepath.Ext(name))]
}

// List returns the image filenames in dir sorted ascending. An empty
// result is not an error.
func List(dir string) ([]string, error) {
	return list(dir, nil)
}

// ListForGroup is List restricted to filenames starting with any of
// prefixes. An empty prefix list matches nothing.
func ListForGroup(dir string, prefixes []string) ([]string, error) {
	return list(dir, func(name string) bool {
		return types.HasAnyPrefix(name, prefixes)
	})
}

func list(dir string, keep func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading image directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsImage(e.Name()) {
			continue
		}
		if keep != nil && !keep(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Selection is one group's share of a grouped listing.
type Selection struct {
	Group  string
	Images []string
}

// SelectGroups lists dir once per group in the given order. Groups not in
// set yield an empty selection. An image matching several groups appears
// in each of them.
func SelectGroups(dir string, order []string, set types.GroupSet) ([]Selection, error) {
	all, err := List(dir)
	if err != nil {
		return nil, err
	}
	prefixes := set.Prefixes()
	out := make([]Selection, 0, len(order))
	for _, name := range order {
		sel := Selection{Group: name}
		for _, img := range all {
			if types.HasAnyPrefix(img, prefixes[name]) {
				sel.Images = append(sel.Images, img)
			}
		}
		out = append(out, sel)
	}
	return out, nil
}

// Total returns the number of images across selections.
func Total(sels []Selection) int {
	n := 0
	for _, s := range sels {
		n += len(s.Images)
	}
	return n
}

// CodeFromFilename returns the product code an image filename carries.
func CodeFromFilename(name string) types.ProductCode {
	return types.CodeFromFilename(name)
}
