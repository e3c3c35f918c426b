// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"errors"
	"fmt"
)

// ErrNoImages is returned when a build selects zero images. Nothing is
// written.
var ErrNoImages = errors.New("no images match the selection")

// ImageError reports a source image that could not be read or placed.
// The build is aborted.
type ImageError struct {
	File string
	Err  error
}

func (e *ImageError) Error() string {
	return fmt.Sprintf("image %s: %v", e.File, e.Err)
}

func (e *ImageError) Unwrap() error { return e.Err }

// WriteError reports a failure persisting the catalog: creating the output
// directory, removing the file being replaced, or writing the PDF.
type WriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
