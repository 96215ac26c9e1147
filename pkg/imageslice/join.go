package imageslice

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"usefulfunctions/internal/models"
)

// ErrIncompleteGrid is returned by Join when the slices do not tile a rectangle
var ErrIncompleteGrid = errors.New("slices do not tile a rectangle")

// Join pastes a cut grid back into one image covering the union of the slice
// bounds. It fails if the slices leave a gap or overlap.
func Join(slices [][]models.Slice) (image.Image, error) {
	var union image.Rectangle
	for _, row := range slices {
		for _, s := range row {
			union = union.Union(s.Bounds)
		}
	}
	if union.Empty() {
		return nil, fmt.Errorf("%w: no pixels", ErrIncompleteGrid)
	}
	if err := checkCoverage(slices, union); err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, union.Dx(), union.Dy()))
	for _, row := range slices {
		for _, s := range row {
			at := s.Bounds.Min.Sub(union.Min)
			draw.Copy(dst, at, s.Image, s.Image.Bounds(), draw.Src, nil)
		}
	}

	return dst, nil
}

// checkCoverage requires every pixel of union to be covered by exactly one slice
func checkCoverage(slices [][]models.Slice, union image.Rectangle) error {
	w := union.Dx()
	covered := make([]uint8, w*union.Dy())
	for _, row := range slices {
		for _, s := range row {
			r := s.Bounds.Sub(union.Min)
			for y := r.Min.Y; y < r.Max.Y; y++ {
				for x := r.Min.X; x < r.Max.X; x++ {
					if covered[y*w+x] > 0 {
						return fmt.Errorf("%w: slice %d,%d overlaps at %v", ErrIncompleteGrid, s.Column, s.Row, image.Pt(x, y).Add(union.Min))
					}
					covered[y*w+x] = 1
				}
			}
		}
	}
	for i, c := range covered {
		if c == 0 {
			return fmt.Errorf("%w: gap at %v", ErrIncompleteGrid, image.Pt(i%w, i/w).Add(union.Min))
		}
	}
	return nil
}
