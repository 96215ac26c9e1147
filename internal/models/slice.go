package models

import (
	"errors"
	"fmt"
	"image"
)

// ErrInvalidGrid is returned when a grid has fewer than one column or row.
var ErrInvalidGrid = errors.New("invalid grid specification")

// Grid describes how many equal-width column bands and equal-height row
// bands an image is cut into
type Grid struct {
	// Columns is the number of bands along the horizontal axis
	Columns int `yaml:"columns" toml:"columns"`

	// Rows is the number of bands along the vertical axis
	Rows int `yaml:"rows" toml:"rows"`
}

// Validate reports ErrInvalidGrid when either dimension is below one
func (g Grid) Validate() error {
	if g.Columns < 1 || g.Rows < 1 {
		return fmt.Errorf("%w: columns=%d rows=%d (both must be >= 1)", ErrInvalidGrid, g.Columns, g.Rows)
	}
	return nil
}

// Count returns the total number of slices the grid produces
func (g Grid) Count() int {
	return g.Columns * g.Rows
}

// Slice represents a single rectangular region cut from a source image
type Slice struct {
	// Image is an independent copy of the region, anchored at (0,0)
	Image image.Image

	// Column is the 0-based column index of this slice
	Column int

	// Row is the 0-based row index of this slice
	Row int

	// Bounds is the region in source image coordinates
	Bounds image.Rectangle

	// Filename is the path the slice was written to, empty if not persisted
	Filename string
}

// LatLon is a geographic position in decimal degrees
type LatLon struct {
	Lat float64
	Lon float64
}

// EastNorth is a projected grid position (eastings/northings)
type EastNorth struct {
	Easting  float64
	Northing float64
}
