// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose assembles catalog PDFs: one full-bleed image per page,
// each page sized to its image, with an optional price table drawn on top.
package compose

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"
)

// PageInfo describes one composed page.
type PageInfo struct {
	Image   string
	Width   float64
	Height  float64
	Overlay bool

	// TableX and TableY are the table origin when Overlay is set.
	TableX, TableY float64
}

// Document is a catalog PDF under construction. Pages live in memory
// until the document is serialized; a document can be serialized once.
type Document struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	pages []PageInfo
	out   []byte
}

// newDocument creates an empty document in points with zero margins and
// automatic page breaks disabled. The first page size becomes the default.
func newDocument(width, height float64) *Document {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	return &Document{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// RenderPage appends a page holding img to doc and returns the document.
// A nil doc starts a new document. The page is exactly the image size
// (1 px = 1 pt) and the image fills it from the origin.
func RenderPage(doc *Document, img Image) (*Document, error) {
	w, h := float64(img.Width()), float64(img.Height())
	if doc == nil {
		doc = newDocument(w, h)
	}
	if doc.out != nil {
		return nil, fmt.Errorf("document already written")
	}

	buf, err := img.encodeJPEG()
	if err != nil {
		return nil, err
	}

	pdf := doc.pdf
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
	name := fmt.Sprintf("page-%04d", len(doc.pages)+1)
	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader(name, opts, buf)
	pdf.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("placing %s: %w", img.Name, err)
	}

	doc.pages = append(doc.pages, PageInfo{Image: img.Name, Width: w, Height: h})
	return doc, nil
}

// PageCount returns the number of pages composed so far.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.pages)
}

// Pages returns a description of every composed page in order.
func (d *Document) Pages() []PageInfo {
	if d == nil {
		return nil
	}
	return append([]PageInfo(nil), d.pages...)
}

// Bytes serializes the document. Later calls return the same bytes.
func (d *Document) Bytes() ([]byte, error) {
	if d == nil || len(d.pages) == 0 {
		return nil, fmt.Errorf("document has no pages")
	}
	if d.out != nil {
		return d.out, nil
	}
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serializing PDF: %w", err)
	}
	d.out = buf.Bytes()
	return d.out, nil
}

// WriteTo writes the serialized document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := d.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// WriteFile serializes the document to path, creating or truncating it.
func (d *Document) WriteFile(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
