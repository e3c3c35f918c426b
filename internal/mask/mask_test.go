// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mask

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMask(t *testing.T, path string, w, h int) {
	t.Helper()
	// Opaque red top half, transparent bottom half.
	img := imaging.New(w, h, color.NRGBA{})
	top := imaging.New(w, h/2, color.NRGBA{R: 255, A: 255})
	img = imaging.Paste(img, top, image.Pt(0, 0))
	require.NoError(t, imaging.Save(img, path))
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	maskPath := filepath.Join(t.TempDir(), "mask.png")
	writeMask(t, maskPath, 50, 50)

	blue := color.NRGBA{B: 255, A: 255}
	for _, name := range []string{"B.jpg", "A.JPG"} {
		require.NoError(t, imaging.Save(imaging.New(100, 100, blue), filepath.Join(dir, name)))
	}
	require.NoError(t, imaging.Save(imaging.New(10, 10, blue), filepath.Join(dir, "skip.png")))

	var progress bytes.Buffer
	res, err := Apply(maskPath, dir, Options{Progress: &progress})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, OutputDirName), res.OutputDir)
	assert.Equal(t, []string{"A.JPG", "B.jpg"}, res.Processed)
	assert.Contains(t, progress.String(), "[2/2] masked B.jpg")
	assert.NoFileExists(t, filepath.Join(res.OutputDir, "skip.png"))

	out, err := imaging.Open(filepath.Join(res.OutputDir, "B.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 100, out.Bounds().Dy())

	// The mask was stretched to the photo: red on top, photo below.
	r, _, b, _ := out.At(50, 10).RGBA()
	assert.Greater(t, r>>8, uint32(200))
	assert.Less(t, b>>8, uint32(60))
	r, _, b, _ = out.At(50, 90).RGBA()
	assert.Less(t, r>>8, uint32(60))
	assert.Greater(t, b>>8, uint32(200))
}

func TestApply_NoImages(t *testing.T) {
	dir := t.TempDir()
	maskPath := filepath.Join(t.TempDir(), "mask.png")
	writeMask(t, maskPath, 20, 20)

	var progress bytes.Buffer
	res, err := Apply(maskPath, dir, Options{Progress: &progress})
	require.NoError(t, err)
	assert.Empty(t, res.Processed)
	assert.Contains(t, progress.String(), "warning")
	assert.NoDirExists(t, res.OutputDir)
}

func TestApply_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) (maskPath, dir string)
	}{
		{
			name: "missing mask",
			setup: func(t *testing.T) (string, string) {
				return filepath.Join(t.TempDir(), "none.png"), t.TempDir()
			},
		},
		{
			name: "missing directory",
			setup: func(t *testing.T) (string, string) {
				m := filepath.Join(t.TempDir(), "mask.png")
				writeMask(t, m, 10, 10)
				return m, filepath.Join(t.TempDir(), "gone")
			},
		},
		{
			name: "corrupt photo",
			setup: func(t *testing.T) (string, string) {
				m := filepath.Join(t.TempDir(), "mask.png")
				writeMask(t, m, 10, 10)
				dir := t.TempDir()
				require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.jpg"), []byte("nope"), 0o644))
				return m, dir
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maskPath, dir := tt.setup(t)
			_, err := Apply(maskPath, dir, Options{})
			require.Error(t, err)
		})
	}
}
