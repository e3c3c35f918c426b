// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"fmt"

	"github.com/pdiddy/catalog-builder/pkg/types"
)

const (
	fontFamily = "Arial"
	fontSize   = 14
)

// Color is an RGB triple.
type Color struct{ R, G, B int }

var (
	borderColor = Color{218, 218, 218}
	bodyText    = Color{48, 48, 48}
	zebraLight  = Color{255, 255, 255}
	zebraDark   = Color{248, 248, 248}
)

// Style is the header look of the price table and its vertical offset
// from the page bottom in grouped catalogs.
type Style struct {
	Name       string
	Background Color
	Text       Color
	Offset     float64
}

var (
	// StylePrincipal is the dark header with gold text.
	StylePrincipal = Style{
		Name:       "principal",
		Background: Color{32, 32, 32},
		Text:       Color{242, 211, 119},
		Offset:     0,
	}

	// StyleSecundario is the gray header with white text, raised 40pt.
	StyleSecundario = Style{
		Name:       "secundario",
		Background: Color{77, 79, 89},
		Text:       Color{255, 255, 255},
		Offset:     40,
	}
)

// StyleFor resolves a style name. Anything but "principal" gets the
// secondary preset.
func StyleFor(name string) Style {
	if name == StylePrincipal.Name {
		return StylePrincipal
	}
	return StyleSecundario
}

// Table places and dresses a price overlay.
type Table struct {
	X, Y       float64
	RowHeight  float64
	LeftWidth  float64
	RightWidth float64
	Title      string
	Currency   string
	Style      Style
}

// Width returns the total table width.
func (t Table) Width() float64 { return t.LeftWidth + t.RightWidth }

// Height returns the table height for n price rows plus the header.
func (t Table) Height(n int) float64 { return float64(n+1) * t.RowHeight }

// RenderOverlay draws the price table for row on the last page. Nothing is
// drawn when every value is N/A; the return reports whether a table was
// drawn.
func (d *Document) RenderOverlay(t Table, row types.PriceRow) (bool, error) {
	if row.AllMissing() {
		return false, nil
	}
	if d == nil || len(d.pages) == 0 {
		return false, fmt.Errorf("overlay needs a page")
	}
	pdf := d.pdf

	pdf.SetXY(t.X, t.Y)
	pdf.SetFillColor(t.Style.Background.R, t.Style.Background.G, t.Style.Background.B)
	pdf.SetTextColor(t.Style.Text.R, t.Style.Text.G, t.Style.Text.B)
	pdf.SetDrawColor(borderColor.R, borderColor.G, borderColor.B)
	pdf.SetFont(fontFamily, "B", fontSize)
	pdf.CellFormat(t.Width(), t.RowHeight, d.tr(t.Title), "1", 0, "C", true, 0, "")
	pdf.Ln(t.RowHeight)

	pdf.SetTextColor(bodyText.R, bodyText.G, bodyText.B)
	pdf.SetFont(fontFamily, "", fontSize)
	fill := zebraLight
	for _, cell := range row {
		pdf.SetX(t.X)
		pdf.SetFillColor(fill.R, fill.G, fill.B)
		pdf.CellFormat(t.LeftWidth, t.RowHeight, d.tr(cell.Label), "1", 0, "L", true, 0, "")
		pdf.CellFormat(t.RightWidth, t.RowHeight, d.tr(t.Currency+" "+cell.Value), "1", 0, "R", true, 0, "")
		pdf.Ln(t.RowHeight)
		if fill == zebraLight {
			fill = zebraDark
		} else {
			fill = zebraLight
		}
	}

	if err := pdf.Error(); err != nil {
		return false, fmt.Errorf("drawing price table: %w", err)
	}
	last := &d.pages[len(d.pages)-1]
	last.Overlay = true
	last.TableX, last.TableY = t.X, t.Y
	return true, nil
}
