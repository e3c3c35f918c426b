// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-builder/internal/opener"
)

var openSheetCmd = &cobra.Command{
	Use:   "open-sheet",
	Short: "Open the price spreadsheet in the default application",
	Long: `Open-sheet launches the desktop's default application for the price
spreadsheet (paths.price_sheet, or the default location under
paths.base_dir when that file is missing) so prices can be edited.`,
	Args: cobra.NoArgs,
	RunE: runOpenSheet,
}

func runOpenSheet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.Paths.PriceSheet
	if _, err := os.Stat(path); err != nil {
		path = cfg.Paths.FallbackSheet()
	}

	o := opener.New()
	if err := o.Open(path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Opened %s with %s\n", path, o.Launcher())
	return nil
}

func init() {
	rootCmd.AddCommand(openSheetCmd)
}
