// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the catalog-builder CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/catalog-builder/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the catalog-builder CLI.
var rootCmd = &cobra.Command{
	Use:   "catalog-builder",
	Short: "Build priced product catalogs as PDF",
	Long: `catalog-builder turns folders of product photos into PDF catalogs. Each
photo becomes one page; when the photo's product code is found in the price
spreadsheet, a table of per-unit prices is drawn over it.

Grouped catalogs (principal, secundario) visit named groups of filename
prefixes in order. Flat catalogs take every photo of a folder.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./catalog-builder.yaml or ~/.config/catalog-builder/catalog-builder.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (overrides log.level)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("catalog-builder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "catalog-builder"))
		}
	}

	viper.SetEnvPrefix("CATALOG_BUILDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig merges built-in defaults, the config file and the
// environment. Paths left unset follow paths.base_dir.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if base := viper.GetString("paths.base_dir"); base != "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.Paths = types.DefaultPaths(home, expandHome(base))
	}
	setDefaults(cfg)

	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	for _, p := range []*string{
		&cfg.Paths.BaseDir, &cfg.Paths.PriceSheet, &cfg.Paths.OutputDir,
		&cfg.Paths.GroupsFile, &cfg.Paths.HistoryDB,
		&cfg.Paths.Images.Principal, &cfg.Paths.Images.Secundario,
	} {
		*p = expandHome(*p)
	}
	if lvl, _ := rootCmd.PersistentFlags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// the config file does not mention.
func setDefaults(cfg types.Config) {
	defaults := map[string]any{
		"paths.base_dir":              cfg.Paths.BaseDir,
		"paths.price_sheet":           cfg.Paths.PriceSheet,
		"paths.output_dir":            cfg.Paths.OutputDir,
		"paths.groups_file":           cfg.Paths.GroupsFile,
		"paths.history_db":            cfg.Paths.HistoryDB,
		"paths.images.principal":      cfg.Paths.Images.Principal,
		"paths.images.secundario":     cfg.Paths.Images.Secundario,
		"layout.max_image_size":       cfg.Layout.MaxImageSize,
		"layout.currency":             cfg.Layout.Currency,
		"layout.header_title":         cfg.Layout.HeaderTitle,
		"layout.flat_right_inset":     cfg.Layout.FlatRightInset,
		"layout.grouped_right_offset": cfg.Layout.GroupedRightOffset,
		"log.level":                   cfg.Log.Level,
	}
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// newLogger builds the diagnostic logger. Progress output goes to stdout;
// the logger writes to stderr.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}

// setup loads configuration and the logger shared by every command.
func setup() (types.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, err
	}
	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
