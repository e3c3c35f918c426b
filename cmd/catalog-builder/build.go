// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/catalog-builder/internal/catalog"
	"github.com/pdiddy/catalog-builder/internal/groups"
	"github.com/pdiddy/catalog-builder/internal/history"
	"github.com/pdiddy/catalog-builder/internal/pricetable"
	"github.com/pdiddy/catalog-builder/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a catalog PDF (principal, secundario, flat)",
	Long: `Build composes one PDF page per product photo and draws the photo's
per-unit prices over it. Photos without prices, and cover photos (names
containing "capa"), get a plain page.

When the target file already exists you are asked before it is replaced;
--overwrite answers yes in advance.`,
}

// --- grouped subcommands ---

var buildPrincipalCmd = &cobra.Command{
	Use:   "principal",
	Short: "Build the principal catalog group by group",
	Long: `Principal visits the principal group set in stored order, or in the order
given by --groups, and adds every photo of paths.images.principal whose
name starts with one of the group's prefixes. The price table sits at the
bottom of each page.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuildGrouped(cmd, types.CatalogPrincipal)
	},
}

var buildSecundarioCmd = &cobra.Command{
	Use:   "secundario",
	Short: "Build the secundario catalog group by group",
	Long: `Secundario works like principal with the secundario group set, the
paths.images.secundario folder and the secondary table style. The price
table is anchored on the right unless --position says otherwise.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuildGrouped(cmd, types.CatalogSecundario)
	},
}

func runBuildGrouped(cmd *cobra.Command, kind types.CatalogKind) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := groups.Open(cfg.Paths.GroupsFile, log)
	if err != nil {
		return err
	}
	selected, _ := cmd.Flags().GetString("groups")
	order, err := store.Order(kind, splitList(selected))
	if err != nil {
		return err
	}

	imageDir, _ := cmd.Flags().GetString("images")
	if imageDir == "" {
		imageDir = cfg.Paths.ImageDir(kind)
	}

	b, sheet := newBuilder(cmd, cfg, log)
	res, err := b.BuildGrouped(catalog.GroupedRequest{
		Name:     kind.DefaultName(),
		ImageDir: imageDir,
		Output:   outputFlag(cmd),
		Position: positionFlag(cmd, defaultPosition(kind)),
		Order:    order,
		Groups:   store.Set(kind),
		Style:    string(kind),
	})
	return finishBuild(cfg, log, sheet, res, err)
}

// --- flat subcommand ---

var buildFlatCmd = &cobra.Command{
	Use:   "flat <image-dir>",
	Short: "Build a catalog from every photo in a folder",
	Long: `Flat adds every .jpg and .png photo of the folder in filename order. The
price table sits at the top of each page. The catalog is named after the
folder unless --name is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuildFlat,
}

func runBuildFlat(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	imageDir := args[0]
	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = filepath.Base(filepath.Clean(imageDir))
	}

	b, sheet := newBuilder(cmd, cfg, log)
	res, err := b.BuildFlat(catalog.FlatRequest{
		Name:     name,
		ImageDir: imageDir,
		Output:   outputFlag(cmd),
		Position: positionFlag(cmd, catalog.PositionLeft),
	})
	return finishBuild(cfg, log, sheet, res, err)
}

// --- shared helpers ---

// newBuilder loads the price sheet and wires a builder to stdout and
// stdin. A sheet that cannot be loaded is reported and the build goes on
// without prices.
func newBuilder(cmd *cobra.Command, cfg types.Config, log *zap.Logger) (*catalog.Builder, *pricetable.Sheet) {
	sheetPath, _ := cmd.Flags().GetString("sheet")
	if sheetPath == "" {
		sheetPath = cfg.Paths.PriceSheet
	}
	sheet, err := pricetable.Load(sheetPath, cfg.Paths.FallbackSheet())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		fmt.Fprintln(os.Stderr, "warning: building without prices")
		log.Warn("price sheet unavailable", zap.String("path", sheetPath), zap.Error(err))
		sheet = nil
	} else {
		fmt.Fprintf(os.Stdout, "Loaded %d products from %s\n", sheet.Len(), sheet.Source())
	}

	opts := catalog.OptionsFromConfig(cfg)
	opts.Progress = os.Stdout
	opts.Logger = log
	if overwrite, _ := cmd.Flags().GetBool("overwrite"); overwrite {
		opts.Confirm = func(string) bool { return true }
	} else {
		opts.Confirm = promptConfirm(os.Stdin, os.Stdout)
	}
	return catalog.NewBuilder(sheet, opts), sheet
}

// finishBuild reports the outcome and records written catalogs.
func finishBuild(cfg types.Config, log *zap.Logger, sheet *pricetable.Sheet, res *catalog.Result, err error) error {
	if errors.Is(err, catalog.ErrNoImages) {
		return fmt.Errorf("nothing to build: %w", err)
	}
	if err != nil {
		return err
	}
	if res.Status != catalog.StatusWritten {
		return nil
	}
	for _, g := range res.Groups {
		fmt.Fprintf(os.Stdout, "  %-30s %d pages\n", g.Group, g.Pages)
	}
	if err := recordBuild(cfg, sheet, res); err != nil {
		log.Warn("build not recorded in history", zap.Error(err))
	}
	return nil
}

func recordBuild(cfg types.Config, sheet *pricetable.Sheet, res *catalog.Result) error {
	store, err := history.NewStore(cfg.Paths.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()
	_, err = store.Record(context.Background(), types.BuildRecord{
		Catalog:    res.Name,
		Mode:       string(res.Mode),
		OutputPath: res.OutputPath,
		Pages:      res.Pages,
		Overlays:   res.Overlays,
		Groups:     res.Groups,
		SheetPath:  sheet.Source(),
	})
	return err
}

// promptConfirm asks on out and reads one answer line from in. Anything
// but an explicit yes, including a read failure, declines.
func promptConfirm(in io.Reader, out io.Writer) func(path string) bool {
	r := bufio.NewReader(in)
	return func(path string) bool {
		fmt.Fprintf(out, "%s already exists. Replace it? [y/N] ", path)
		line, err := r.ReadString('\n')
		if err != nil {
			fmt.Fprintln(out)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes", "s", "sim":
			return true
		default:
			return false
		}
	}
}

// splitList parses a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func outputFlag(cmd *cobra.Command) string {
	out, _ := cmd.Flags().GetString("output")
	return out
}

// positionFlag returns --position when it was given and fallback otherwise.
func positionFlag(cmd *cobra.Command, fallback catalog.Position) catalog.Position {
	if !cmd.Flags().Changed("position") {
		return fallback
	}
	pos, _ := cmd.Flags().GetString("position")
	return catalog.Position(strings.ToLower(pos))
}

// defaultPosition is the table anchor a grouped catalog uses without
// --position: principal on the left, secundario on the right.
func defaultPosition(kind types.CatalogKind) catalog.Position {
	if kind == types.CatalogSecundario {
		return catalog.PositionRight
	}
	return catalog.PositionLeft
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	buildCmd.PersistentFlags().StringP("output", "o", "", "output PDF path (default: <output_dir>/<catalog>.pdf)")
	buildCmd.PersistentFlags().String("position", "", "price table anchor: left or right (default: left; secundario: right)")
	buildCmd.PersistentFlags().Bool("overwrite", false, "replace an existing output file without asking")
	buildCmd.PersistentFlags().String("sheet", "", "price spreadsheet (.ods or .xlsx; default: paths.price_sheet)")

	// Grouped flags.
	for _, c := range []*cobra.Command{buildPrincipalCmd, buildSecundarioCmd} {
		c.Flags().String("groups", "", "comma-separated groups to include, in build order (default: all, stored order)")
		c.Flags().String("images", "", "image folder (default: paths.images.<catalog>)")
	}

	// Flat flags.
	buildFlatCmd.Flags().String("name", "", "catalog name (default: folder name)")

	// Wire subcommands.
	buildCmd.AddCommand(buildPrincipalCmd)
	buildCmd.AddCommand(buildSecundarioCmd)
	buildCmd.AddCommand(buildFlatCmd)

	rootCmd.AddCommand(buildCmd)
}
