//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Catalog groups targets that run the CLI against the working directories.
type Catalog mg.Namespace

func cli(args ...string) error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), args...)
}

// Principal builds the principal catalog.
func (Catalog) Principal() error {
	return cli("build", "principal")
}

// Secundario builds the secundario catalog.
func (Catalog) Secundario() error {
	return cli("build", "secundario")
}

// Groups lists both group sets.
func (Catalog) Groups() error {
	return cli("groups", "list")
}
