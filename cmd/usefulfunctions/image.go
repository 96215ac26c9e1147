package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"usefulfunctions/internal/models"
	"usefulfunctions/pkg/imageslice"
)

func newSliceCmd() *cobra.Command {
	var (
		columns, rows int
		outDir        string
		names         []string
		format        string
		noSave        bool
	)

	cmd := &cobra.Command{
		Use:   "slice <image>",
		Short: "Cut an image into a grid of equal-sized slices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grid := cfg.Slicing.Grid
			if cmd.Flags().Changed("columns") {
				grid.Columns = columns
			}
			if cmd.Flags().Changed("rows") {
				grid.Rows = rows
			}

			opts := imageslice.Options{
				Save:   cfg.Slicing.Save && !noSave,
				Dir:    cfg.Slicing.OutputDir,
				Names:  cfg.Slicing.Names,
				Format: cfg.Slicing.Format,
			}
			if outDir != "" {
				opts.Dir = outDir
			}
			if len(names) > 0 {
				opts.Names = names
			}
			if format != "" {
				opts.Format = format
			}
			if opts.Save {
				if opts.Dir == "" {
					return fmt.Errorf("an output directory is required: pass --out or set slicing.outputDir")
				}
				if err := os.MkdirAll(opts.Dir, 0755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			img, err := imageslice.LoadImage(args[0])
			if err != nil {
				return err
			}
			logf("Cutting %s (%dx%d) into %d columns x %d rows",
				args[0], img.Bounds().Dx(), img.Bounds().Dy(), grid.Columns, grid.Rows)

			slices, err := imageslice.Cut(img, grid, opts)
			if err != nil {
				return err
			}

			for _, row := range slices {
				for _, s := range row {
					printSlice(s)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&columns, "columns", 0, "Number of slices along the horizontal axis")
	cmd.Flags().IntVar(&rows, "rows", 0, "Number of slices along the vertical axis")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory to save slices to")
	cmd.Flags().StringSliceVar(&names, "names", nil, "Comma-separated slice names in row-major order")
	cmd.Flags().StringVar(&format, "format", "", "Output format: png or jpeg")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Only report slice bounds, do not write files")
	return cmd
}

func printSlice(s models.Slice) {
	if s.Filename != "" {
		fmt.Printf("[%d,%d] %v -> %s\n", s.Row, s.Column, s.Bounds, s.Filename)
		return
	}
	fmt.Printf("[%d,%d] %v\n", s.Row, s.Column, s.Bounds)
}
