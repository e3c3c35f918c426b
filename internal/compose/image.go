// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// jpegQuality is the quality every page image is re-encoded at.
const jpegQuality = 85

// Image is a decoded, size-bounded page image.
type Image struct {
	// Name identifies the image in the document; the source filename.
	Name string

	img image.Image
}

// Width returns the image width in pixels.
func (i Image) Width() int { return i.img.Bounds().Dx() }

// Height returns the image height in pixels.
func (i Image) Height() int { return i.img.Bounds().Dy() }

// LoadImage decodes the image at path and shrinks it to fit within
// maxSize x maxSize, keeping the aspect ratio. Images already within the
// bound are left as they are; maxSize <= 0 disables the bound. EXIF
// orientation is not applied, so pages take the stored pixel layout.
func LoadImage(path string, maxSize int) (Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return Image{}, fmt.Errorf("opening image %s: %w", path, err)
	}
	return NewImage(path, img, maxSize)
}

// NewImage wraps an already decoded image, applying the same bound as
// LoadImage.
func NewImage(name string, img image.Image, maxSize int) (Image, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return Image{}, fmt.Errorf("image %s is empty", name)
	}
	if maxSize > 0 {
		img = imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)
	}
	return Image{Name: name, img: img}, nil
}

// encodeJPEG re-encodes the image for embedding.
func (i Image) encodeJPEG() (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, i.img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encoding %s as JPEG: %w", i.Name, err)
	}
	return &buf, nil
}
