// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mask stamps a transparent overlay (logo, frame, watermark) onto
// every JPEG photo of a folder before the photos go into a catalog.
package mask

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// OutputDirName is the subdirectory of the source folder that receives
// the masked copies.
const OutputDirName = "saida"

// Result summarizes one run.
type Result struct {
	OutputDir string
	Processed []string
}

// Options configures Apply. Zero values are valid.
type Options struct {
	Progress io.Writer
	Logger   *zap.Logger
}

// Apply composites the image at maskPath over every .jpg or .JPG file in
// dir and writes the results, same filenames, to dir/saida. The mask is
// resized to each photo when their sizes differ. A folder with no photos
// is reported on Progress and is not an error.
func Apply(maskPath, dir string, opts Options) (*Result, error) {
	w := opts.Progress
	if w == nil {
		w = io.Discard
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	overlay, err := imaging.Open(maskPath)
	if err != nil {
		return nil, fmt.Errorf("opening mask: %w", err)
	}

	files, err := photos(dir)
	if err != nil {
		return nil, err
	}
	res := &Result{OutputDir: filepath.Join(dir, OutputDirName)}
	if len(files) == 0 {
		fmt.Fprintf(w, "warning: no JPEG images found in %s\n", dir)
		log.Warn("no images to mask", zap.String("dir", dir))
		return res, nil
	}
	if err := os.MkdirAll(res.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	fmt.Fprintf(w, "masking %d images in %s\n", len(files), dir)
	for i, name := range files {
		if err := stamp(overlay, filepath.Join(dir, name), filepath.Join(res.OutputDir, name)); err != nil {
			return res, fmt.Errorf("masking %s: %w", name, err)
		}
		res.Processed = append(res.Processed, name)
		fmt.Fprintf(w, "[%d/%d] masked %s\n", i+1, len(files), name)
		log.Debug("image masked", zap.String("file", name))
	}
	fmt.Fprintf(w, "done: %d images written to %s\n", len(res.Processed), res.OutputDir)
	return res, nil
}

func stamp(overlay image.Image, src, dst string) error {
	photo, err := imaging.Open(src)
	if err != nil {
		return err
	}
	b := photo.Bounds()
	if overlay.Bounds().Size() != b.Size() {
		overlay = imaging.Resize(overlay, b.Dx(), b.Dy(), imaging.Lanczos)
	}
	out := imaging.Overlay(photo, overlay, image.Pt(0, 0), 1.0)
	return imaging.Save(out, dst)
}

// photos lists the JPEG files of dir by the two extensions the camera
// export produces, sorted by name.
func photos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading image directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".jpg" || ext == ".JPG" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
