// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data shapes shared between the catalog packages
// and the CLI: product codes, price rows, image groups, and configuration.
package types

import (
	"path/filepath"
	"strings"
)

// NotAvailable is the value reported for a price column with no data.
const NotAvailable = "N/A"

// coverMarker identifies cover images; covers never carry prices.
const coverMarker = "capa"

// ProductCode is the product identifier encoded in an image filename as
// "<CODE>[ <anything>].<ext>".
type ProductCode string

// CodeFromFilename derives the product code from an image filename: the
// extension is stripped and everything from the first space on is dropped.
// The result is not normalized; use Normalized for lookups.
func CodeFromFilename(name string) ProductCode {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if i := strings.IndexByte(base, ' '); i >= 0 {
		base = base[:i]
	}
	return ProductCode(base)
}

// Normalized returns the code trimmed and uppercased, the form used as the
// price sheet key.
func (c ProductCode) Normalized() string {
	return NormalizeCode(string(c))
}

// IsCover reports whether the code names a cover page ("capa", any case).
func (c ProductCode) IsCover() bool {
	return strings.Contains(strings.ToLower(string(c)), coverMarker)
}

// NormalizeCode trims surrounding whitespace and uppercases s.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// PriceCell is one labelled value of a PriceRow.
type PriceCell struct {
	// Label is the price column header (e.g. a quantity tier).
	Label string `json:"label" yaml:"label"`

	// Value is the price formatted to two decimals, or NotAvailable.
	Value string `json:"value" yaml:"value"`
}

// PriceRow holds the prices of one product, in sheet column order.
type PriceRow []PriceCell

// MissingRow returns a row with every label set to NotAvailable.
func MissingRow(labels []string) PriceRow {
	row := make(PriceRow, len(labels))
	for i, l := range labels {
		row[i] = PriceCell{Label: l, Value: NotAvailable}
	}
	return row
}

// AllMissing reports whether no cell in the row carries a price. An empty
// row counts as all missing.
func (r PriceRow) AllMissing() bool {
	for _, c := range r {
		if c.Value != NotAvailable {
			return false
		}
	}
	return true
}

// Get returns the value for label and whether the label exists.
func (r PriceRow) Get(label string) (string, bool) {
	for _, c := range r {
		if c.Label == label {
			return c.Value, true
		}
	}
	return "", false
}

// Map returns the row as a label to value map.
func (r PriceRow) Map() map[string]string {
	m := make(map[string]string, len(r))
	for _, c := range r {
		m[c.Label] = c.Value
	}
	return m
}
