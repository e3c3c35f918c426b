// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"io"

	"go.uber.org/zap"

	"github.com/pdiddy/catalog-builder/pkg/types"
)

// Position selects the horizontal anchor of the price table.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

// layout holds the fixed table geometry of a build mode.
type layout struct {
	rowHeight  float64
	leftWidth  float64
	rightWidth float64
}

var (
	flatLayout    = layout{rowHeight: 26, leftWidth: 135, rightWidth: 80}
	groupedLayout = layout{rowHeight: 25, leftWidth: 120, rightWidth: 80}
)

// Options configures a Builder.
type Options struct {
	// OutputDir receives catalogs built without an explicit output path.
	OutputDir string

	// MaxImageSize bounds image dimensions before placement; 0 disables.
	MaxImageSize int

	// Currency prefixes each price cell.
	Currency string

	// HeaderTitle is the text of the table header.
	HeaderTitle string

	// FlatRightInset places a right-anchored flat-mode table at
	// pageWidth - FlatRightInset.
	FlatRightInset float64

	// GroupedRightOffset places a right-anchored grouped-mode table at
	// pageWidth - GroupedRightOffset.
	GroupedRightOffset float64

	// Confirm, when set, answers the overwrite question inline. When nil
	// a build targeting an existing file stops with
	// StatusNeedsConfirmation and must be resumed.
	Confirm func(path string) bool

	// Progress receives one human-readable line per step. Nil discards.
	Progress io.Writer

	// Logger receives structured diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// OptionsFromConfig builds Options from CLI configuration.
func OptionsFromConfig(cfg types.Config) Options {
	return Options{
		OutputDir:          cfg.Paths.OutputDir,
		MaxImageSize:       cfg.Layout.MaxImageSize,
		Currency:           cfg.Layout.Currency,
		HeaderTitle:        cfg.Layout.HeaderTitle,
		FlatRightInset:     cfg.Layout.FlatRightInset,
		GroupedRightOffset: cfg.Layout.GroupedRightOffset,
	}
}
