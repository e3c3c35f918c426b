// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pricetable

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrFileNotFound is returned when neither the requested path nor the
	// fallback path exists.
	ErrFileNotFound = errors.New("price sheet not found")

	// ErrParse is returned for any other failure reading the sheet.
	ErrParse = errors.New("price sheet unreadable")
)

// rowReader reads the first sheet of a workbook into a cell grid.
type rowReader func(path string) ([][]string, error)

var readers = map[string]rowReader{
	".ods":  readODS,
	".xlsx": readXLSX,
}

// Load reads the price sheet at path. When path does not exist the sheet
// at fallback is used instead. Errors wrap ErrFileNotFound or ErrParse.
func Load(path, fallback string) (*Sheet, error) {
	resolved, err := resolve(path, fallback)
	if err != nil {
		return nil, err
	}

	read, ok := readers[strings.ToLower(filepath.Ext(resolved))]
	if !ok {
		return nil, fmt.Errorf("%w: %s: unsupported format %q", ErrParse, resolved, filepath.Ext(resolved))
	}

	rows, err := read(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrParse, resolved, err)
	}

	sheet, err := FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, resolved, err)
	}
	sheet.source = resolved
	return sheet, nil
}

func resolve(path, fallback string) (string, error) {
	candidates := []string{path, fallback}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s (fallback %s)", ErrFileNotFound, path, fallback)
}
