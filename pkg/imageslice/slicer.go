// Package imageslice cuts an image into a grid of equal-sized slices and
// optionally writes each slice to disk.
//
// The typical use is spreading a wide figure over several pages: cut it into
// columns x rows pieces and place each piece separately.
package imageslice

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"usefulfunctions/internal/models"
)

// ErrInvalidGrid is returned for grids with a non-positive dimension or with
// more bands than pixels on an axis.
var ErrInvalidGrid = models.ErrInvalidGrid

// ErrNamingMismatch is returned when fewer names than slices are supplied.
var ErrNamingMismatch = errors.New("not enough slice names for grid")

// Boundaries returns the cut positions along one axis of the given pixel
// size. The result has count+1 entries, starts at 0 and ends at size. Every
// band is size/count wide except the last, which absorbs the remainder.
func Boundaries(size, count int) ([]int, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: band count %d must be >= 1", ErrInvalidGrid, count)
	}
	if count == 1 {
		return []int{0, size}, nil
	}
	if count > size {
		return nil, fmt.Errorf("%w: %d bands do not fit in %d pixels", ErrInvalidGrid, count, size)
	}

	step := size / count
	coords := make([]int, count+1)
	for i := 0; i < count; i++ {
		coords[i] = i * step
	}
	coords[count] = size

	return coords, nil
}

// Cut partitions img into grid.Columns x grid.Rows slices. The result is
// indexed [row][column] and built in row-major order. When opts.Save is set
// every slice is also written to opts.Dir.
func Cut(img image.Image, grid models.Grid, opts Options) ([][]models.Slice, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if opts.Save {
		if err := opts.validate(grid.Count()); err != nil {
			return nil, err
		}
	}

	bounds := img.Bounds()
	xcoord, err := Boundaries(bounds.Dx(), grid.Columns)
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	ycoord, err := Boundaries(bounds.Dy(), grid.Rows)
	if err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	result := make([][]models.Slice, 0, grid.Rows)
	for y := 0; y < grid.Rows; y++ {
		row := make([]models.Slice, 0, grid.Columns)
		for x := 0; x < grid.Columns; x++ {
			rect := image.Rect(xcoord[x], ycoord[y], xcoord[x+1], ycoord[y+1]).Add(bounds.Min)
			row = append(row, models.Slice{
				Image:  crop(img, rect),
				Column: x,
				Row:    y,
				Bounds: rect,
			})
		}
		result = append(result, row)
	}

	if opts.Save {
		if err := Save(result, opts); err != nil {
			return result, err
		}
	}

	return result, nil
}

// crop copies rect out of src into a new raster anchored at (0,0), keeping
// the source pixel layout where it is a known stdlib type.
func crop(src image.Image, rect image.Rectangle) image.Image {
	r := image.Rect(0, 0, rect.Dx(), rect.Dy())

	var dst draw.Image
	switch src.(type) {
	case *image.Gray:
		dst = image.NewGray(r)
	case *image.Gray16:
		dst = image.NewGray16(r)
	case *image.NRGBA:
		dst = image.NewNRGBA(r)
	case *image.NRGBA64:
		dst = image.NewNRGBA64(r)
	case *image.RGBA64:
		dst = image.NewRGBA64(r)
	default:
		dst = image.NewRGBA(r)
	}

	draw.Copy(dst, image.Point{}, src, rect, draw.Src, nil)
	return dst
}
