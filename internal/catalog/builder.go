// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog orchestrates catalog builds: it selects images, resolves
// their prices, composes one page per image, and persists the document.
//
// A build that would replace an existing file does not prompt. It returns
// a Result with StatusNeedsConfirmation that still holds the composed
// document; the caller answers with Resume.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/catalog-builder/internal/compose"
	"github.com/pdiddy/catalog-builder/internal/imageset"
	"github.com/pdiddy/catalog-builder/internal/pricetable"
	"github.com/pdiddy/catalog-builder/pkg/types"
)

// Mode names the build orchestration.
type Mode string

const (
	ModeFlat    Mode = "flat"
	ModeGrouped Mode = "grouped"
)

// Status is the outcome of a build that did not fail.
type Status string

const (
	StatusWritten           Status = "written"
	StatusNeedsConfirmation Status = "needs-confirmation"
	StatusDeclined          Status = "declined"
)

// Result describes a finished or suspended build.
type Result struct {
	Name       string             `json:"name" yaml:"name"`
	Mode       Mode               `json:"mode" yaml:"mode"`
	Status     Status             `json:"status" yaml:"status"`
	OutputPath string             `json:"output_path" yaml:"output_path"`
	Pages      int                `json:"pages" yaml:"pages"`
	Overlays   int                `json:"overlays" yaml:"overlays"`
	Groups     []types.GroupCount `json:"groups,omitempty" yaml:"groups,omitempty"`

	// Details describes each composed page in order.
	Details []compose.PageInfo `json:"-" yaml:"-"`

	doc *compose.Document
}

// NeedsConfirmation reports whether the build waits for an overwrite
// decision.
func (r *Result) NeedsConfirmation() bool {
	return r != nil && r.Status == StatusNeedsConfirmation
}

// FlatRequest selects every image of one folder.
type FlatRequest struct {
	// Name is the catalog name; the default output is OutputDir/Name.pdf.
	Name     string
	ImageDir string
	Output   string
	Position Position
}

// GroupedRequest selects images group by group.
type GroupedRequest struct {
	Name     string
	ImageDir string
	Output   string
	Position Position

	// Order lists the groups to include, in build order. Empty means
	// every group of Groups in stored order.
	Order []string

	// Groups is the group snapshot the order refers to.
	Groups types.GroupSet

	// Style names the header preset: "principal" or any other value for
	// the secondary look.
	Style string
}

// Builder runs catalog builds against a fixed price sheet snapshot. A nil
// sheet is allowed; every product is then priceless.
type Builder struct {
	sheet *pricetable.Sheet
	opts  Options
	w     io.Writer
	log   *zap.Logger
}

// NewBuilder creates a builder for sheet.
func NewBuilder(sheet *pricetable.Sheet, opts Options) *Builder {
	w := opts.Progress
	if w == nil {
		w = io.Discard
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{sheet: sheet, opts: opts, w: w, log: log}
}

// placement returns the table origin for a page of size w x h holding n
// price rows.
type placement func(w, h float64, n int) (x, y float64)

// BuildFlat composes every image in req.ImageDir in filename order with
// the table anchored at the top of the page.
func (b *Builder) BuildFlat(req FlatRequest) (*Result, error) {
	if err := validate(req.Name, req.Output, req.Position); err != nil {
		return nil, err
	}
	images, err := imageset.List(req.ImageDir)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		fmt.Fprintf(b.w, "warning: no images found in %s\n", req.ImageDir)
		b.log.Warn("no images", zap.String("dir", req.ImageDir))
		return nil, fmt.Errorf("%w in %s", ErrNoImages, req.ImageDir)
	}

	fmt.Fprintf(b.w, "building catalog %s (%d images)\n", req.Name, len(images))

	tbl := b.table(flatLayout, compose.StylePrincipal)
	place := func(w, h float64, n int) (float64, float64) {
		if req.Position == PositionRight {
			return w - b.opts.FlatRightInset, 0
		}
		return 0, 0
	}

	res := &Result{Name: req.Name, Mode: ModeFlat}
	var doc *compose.Document
	for i, file := range images {
		fmt.Fprintf(b.w, "[%d/%d] processing %s\n", i+1, len(images), file)
		doc, err = b.composePage(doc, res, req.ImageDir, file, tbl, place)
		if err != nil {
			return nil, err
		}
	}
	return b.finalize(res, doc, req.Output)
}

// BuildGrouped composes the images of each group in req.Order, groups in
// order and images sorted within a group, with the table anchored near the
// page bottom.
func (b *Builder) BuildGrouped(req GroupedRequest) (*Result, error) {
	if err := validate(req.Name, req.Output, req.Position); err != nil {
		return nil, err
	}
	order := req.Order
	if len(order) == 0 {
		order = req.Groups.Names()
	}
	sels, err := imageset.SelectGroups(req.ImageDir, order, req.Groups)
	if err != nil {
		return nil, err
	}
	total := imageset.Total(sels)
	if total == 0 {
		fmt.Fprintf(b.w, "warning: no images found in %s for the selected groups\n", req.ImageDir)
		b.log.Warn("no images for groups", zap.String("dir", req.ImageDir), zap.Strings("groups", order))
		return nil, fmt.Errorf("%w in %s for groups %v", ErrNoImages, req.ImageDir, order)
	}

	fmt.Fprintf(b.w, "building catalog %s (%d images in %d groups)\n", req.Name, total, len(sels))

	style := compose.StyleFor(req.Style)
	tbl := b.table(groupedLayout, style)
	place := func(w, h float64, n int) (float64, float64) {
		y := h - tbl.Height(n) - style.Offset
		if req.Position == PositionRight {
			return w - b.opts.GroupedRightOffset, y
		}
		return 0, y
	}

	res := &Result{Name: req.Name, Mode: ModeGrouped}
	var doc *compose.Document
	done := 0
	for _, sel := range sels {
		for _, file := range sel.Images {
			done++
			fmt.Fprintf(b.w, "[%d/%d] processing %s (group: %s)\n", done, total, file, sel.Group)
			doc, err = b.composePage(doc, res, req.ImageDir, file, tbl, place)
			if err != nil {
				return nil, err
			}
		}
		res.Groups = append(res.Groups, types.GroupCount{Group: sel.Group, Pages: len(sel.Images)})
	}
	return b.finalize(res, doc, req.Output)
}

// Resume continues a build suspended with StatusNeedsConfirmation. A
// declined overwrite leaves the existing file untouched and is not an
// error. An accepted one removes the file and writes the catalog.
func (b *Builder) Resume(res *Result, overwrite bool) (*Result, error) {
	if !res.NeedsConfirmation() || res.doc == nil {
		return nil, fmt.Errorf("build is not waiting for confirmation")
	}
	if !overwrite {
		res.Status = StatusDeclined
		res.doc = nil
		fmt.Fprintf(b.w, "cancelled: %s was kept\n", res.OutputPath)
		b.log.Info("overwrite declined", zap.String("path", res.OutputPath))
		return res, nil
	}
	if err := os.Remove(res.OutputPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &WriteError{Op: "removing existing", Path: res.OutputPath, Err: err}
	}
	return b.write(res)
}

func (b *Builder) table(l layout, style compose.Style) compose.Table {
	return compose.Table{
		RowHeight:  l.rowHeight,
		LeftWidth:  l.leftWidth,
		RightWidth: l.rightWidth,
		Title:      b.opts.HeaderTitle,
		Currency:   b.opts.Currency,
		Style:      style,
	}
}

// composePage resolves the prices for file, appends its page, and draws
// the table when the product has at least one price.
func (b *Builder) composePage(doc *compose.Document, res *Result, dir, file string, tbl compose.Table, place placement) (*compose.Document, error) {
	code := imageset.CodeFromFilename(file)
	prices := b.sheet.PricesFor(code)
	b.log.Debug("prices resolved",
		zap.String("file", file),
		zap.String("code", code.Normalized()),
		zap.Bool("cover", code.IsCover()),
		zap.Bool("priced", !prices.AllMissing()),
	)

	img, err := compose.LoadImage(filepath.Join(dir, file), b.opts.MaxImageSize)
	if err != nil {
		return nil, &ImageError{File: file, Err: err}
	}
	doc, err = compose.RenderPage(doc, img)
	if err != nil {
		return nil, &ImageError{File: file, Err: err}
	}
	res.Pages++

	tbl.X, tbl.Y = place(float64(img.Width()), float64(img.Height()), len(prices))
	drawn, err := doc.RenderOverlay(tbl, prices)
	if err != nil {
		return nil, &ImageError{File: file, Err: err}
	}
	if drawn {
		res.Overlays++
	}
	return doc, nil
}

// finalize resolves the output path and writes the document, or suspends
// when the target already exists and no Confirm hook is set.
func (b *Builder) finalize(res *Result, doc *compose.Document, output string) (*Result, error) {
	path := output
	if path == "" {
		path = filepath.Join(b.opts.OutputDir, res.Name+".pdf")
	}
	res.OutputPath = filepath.Clean(path)
	res.doc = doc
	res.Details = doc.Pages()

	if err := os.MkdirAll(filepath.Dir(res.OutputPath), 0o755); err != nil {
		return nil, &WriteError{Op: "creating directory for", Path: res.OutputPath, Err: err}
	}

	_, err := os.Stat(res.OutputPath)
	switch {
	case err == nil:
		res.Status = StatusNeedsConfirmation
		b.log.Info("output exists", zap.String("path", res.OutputPath))
		if b.opts.Confirm == nil {
			return res, nil
		}
		return b.Resume(res, b.opts.Confirm(res.OutputPath))
	case errors.Is(err, fs.ErrNotExist):
		return b.write(res)
	default:
		return nil, &WriteError{Op: "checking", Path: res.OutputPath, Err: err}
	}
}

func (b *Builder) write(res *Result) (*Result, error) {
	if err := res.doc.WriteFile(res.OutputPath); err != nil {
		return nil, &WriteError{Op: "writing", Path: res.OutputPath, Err: err}
	}
	res.doc = nil
	res.Status = StatusWritten
	fmt.Fprintf(b.w, "catalog %s written to %s (%d pages, %d with prices)\n",
		res.Name, res.OutputPath, res.Pages, res.Overlays)
	b.log.Info("catalog written",
		zap.String("name", res.Name),
		zap.String("path", res.OutputPath),
		zap.Int("pages", res.Pages),
	)
	return res, nil
}

func validate(name, output string, pos Position) error {
	if name == "" && output == "" {
		return fmt.Errorf("catalog name or output path required")
	}
	switch pos {
	case "", PositionLeft, PositionRight:
		return nil
	default:
		return fmt.Errorf("invalid position %q: use left or right", pos)
	}
}
