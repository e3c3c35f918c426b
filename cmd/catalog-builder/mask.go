// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/catalog-builder/internal/mask"
)

var maskCmd = &cobra.Command{
	Use:   "mask <mask-image> <image-dir>",
	Short: "Stamp a transparent overlay onto every JPEG of a folder",
	Long: `Mask composites a transparent image (logo, frame, watermark) over every
.jpg and .JPG photo of the folder. The mask is stretched to each photo's
size. Results keep their filenames and go to the folder's "saida"
subdirectory; the originals are not touched.`,
	Args: cobra.ExactArgs(2),
	RunE: runMask,
}

func runMask(cmd *cobra.Command, args []string) error {
	_, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	_, err = mask.Apply(args[0], args[1], mask.Options{Progress: os.Stdout, Logger: log})
	return err
}

func init() {
	rootCmd.AddCommand(maskCmd)
}
