// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"os"
	"path/filepath"
)

const (
	// DefaultSheetName is the price sheet looked up under BaseDir/data.
	DefaultSheetName = "Planilha_Catalogo_2025.ods"

	// DefaultGroupsFile is the group store filename under BaseDir.
	DefaultGroupsFile = "catalog_groups.yaml"

	// DefaultHistoryFile is the build ledger filename under BaseDir.
	DefaultHistoryFile = "history.db"
)

// ImagePaths holds the image folder of each grouped catalog.
type ImagePaths struct {
	Principal  string `json:"principal" yaml:"principal" mapstructure:"principal"`
	Secundario string `json:"secundario" yaml:"secundario" mapstructure:"secundario"`
}

// PathsConfig holds filesystem locations used by the CLI.
type PathsConfig struct {
	// BaseDir is the per-user working directory
	// (default ~/Documents/GeradorCatalogo).
	BaseDir string `json:"base_dir" yaml:"base_dir" mapstructure:"base_dir"`

	// PriceSheet is the spreadsheet path. When it does not exist the loader
	// falls back to BaseDir/data/Planilha_Catalogo_2025.ods.
	PriceSheet string `json:"price_sheet" yaml:"price_sheet" mapstructure:"price_sheet"`

	// OutputDir is where catalogs are written when no explicit output path
	// is given (default ~/Desktop/Catálogos).
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// GroupsFile is the persisted group store.
	GroupsFile string `json:"groups_file" yaml:"groups_file" mapstructure:"groups_file"`

	// HistoryDB is the SQLite build ledger.
	HistoryDB string `json:"history_db" yaml:"history_db" mapstructure:"history_db"`

	// Images holds the per-catalog image folders.
	Images ImagePaths `json:"images" yaml:"images" mapstructure:"images"`
}

// LayoutConfig holds overlay and page layout settings.
type LayoutConfig struct {
	// MaxImageSize bounds both image dimensions before placement
	// (default 1024, 0 keeps the original size).
	MaxImageSize int `json:"max_image_size" yaml:"max_image_size" mapstructure:"max_image_size"`

	// Currency prefixes every price cell (default "R$").
	Currency string `json:"currency" yaml:"currency" mapstructure:"currency"`

	// HeaderTitle is the text of the overlay header cell.
	HeaderTitle string `json:"header_title" yaml:"header_title" mapstructure:"header_title"`

	// FlatRightInset is subtracted from the page width to place a
	// right-anchored overlay in flat builds (default 0).
	FlatRightInset float64 `json:"flat_right_inset" yaml:"flat_right_inset" mapstructure:"flat_right_inset"`

	// GroupedRightOffset is subtracted from the page width to place a
	// right-anchored overlay in grouped builds (default 280).
	GroupedRightOffset float64 `json:"grouped_right_offset" yaml:"grouped_right_offset" mapstructure:"grouped_right_offset"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// Config groups all CLI settings.
type Config struct {
	Paths  PathsConfig  `json:"paths" yaml:"paths" mapstructure:"paths"`
	Layout LayoutConfig `json:"layout" yaml:"layout" mapstructure:"layout"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the settings used when no config file overrides
// them, rooted at the user's home directory.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Paths: DefaultPaths(home, filepath.Join(home, "Documents", "GeradorCatalogo")),
		Layout: LayoutConfig{
			MaxImageSize:       1024,
			Currency:           "R$",
			HeaderTitle:        "Preços/Unidade",
			FlatRightInset:     0,
			GroupedRightOffset: 280,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPaths derives every data location from base. Catalogs go to the
// desktop under home.
func DefaultPaths(home, base string) PathsConfig {
	return PathsConfig{
		BaseDir:    base,
		PriceSheet: filepath.Join(base, "data", DefaultSheetName),
		OutputDir:  filepath.Join(home, "Desktop", "Catálogos"),
		GroupsFile: filepath.Join(base, DefaultGroupsFile),
		HistoryDB:  filepath.Join(base, DefaultHistoryFile),
		Images: ImagePaths{
			Principal:  filepath.Join(base, "images", "catalogo_principal"),
			Secundario: filepath.Join(base, "images", "catalogo_secundario"),
		},
	}
}

// FallbackSheet returns BaseDir/data/Planilha_Catalogo_2025.ods.
func (p PathsConfig) FallbackSheet() string {
	return filepath.Join(p.BaseDir, "data", DefaultSheetName)
}

// ImageDir returns the image folder for a grouped catalog kind.
func (p PathsConfig) ImageDir(kind CatalogKind) string {
	if kind == CatalogSecundario {
		return p.Images.Secundario
	}
	return p.Images.Principal
}
