// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// GroupCount is the number of pages a group contributed to a build.
type GroupCount struct {
	Group string `json:"group" yaml:"group"`
	Pages int    `json:"pages" yaml:"pages"`
}

// BuildRecord is one written catalog in the build history.
type BuildRecord struct {
	ID         string       `json:"id" yaml:"id"`
	Catalog    string       `json:"catalog" yaml:"catalog"`
	Mode       string       `json:"mode" yaml:"mode"`
	OutputPath string       `json:"output_path" yaml:"output_path"`
	Pages      int          `json:"pages" yaml:"pages"`
	Overlays   int          `json:"overlays" yaml:"overlays"`
	Groups     []GroupCount `json:"groups,omitempty" yaml:"groups,omitempty"`
	SheetPath  string       `json:"sheet_path,omitempty" yaml:"sheet_path,omitempty"`
	CreatedAt  time.Time    `json:"created_at" yaml:"created_at"`
}
