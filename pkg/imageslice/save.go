package imageslice

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"usefulfunctions/internal/models"
)

// Output formats supported by Save
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

var (
	// ErrIO marks every filesystem failure reported as an *IOError
	ErrIO = errors.New("image slice i/o failure")

	// ErrNoDestination is returned when saving is requested without a directory
	ErrNoDestination = errors.New("no output directory given")

	// ErrUnknownFormat is returned for an output format other than png or jpeg
	ErrUnknownFormat = errors.New("unknown image format")
)

// IOError describes a failed filesystem operation on a slice destination
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error { return []error{ErrIO, e.Err} }

// Options controls how slices are persisted
type Options struct {
	// Save writes every slice to Dir when true
	Save bool

	// Dir is the destination directory; it must already exist
	Dir string

	// Names optionally supplies one file name (without extension) per slice,
	// consumed in row-major order. When empty, slices are named
	// slice_<column>_<row>.
	Names []string

	// Format is FormatPNG (default) or FormatJPEG
	Format string

	// JPEGQuality is used for FormatJPEG; 0 means 90
	JPEGQuality int
}

func (o Options) format() string {
	switch f := strings.ToLower(o.Format); f {
	case "":
		return FormatPNG
	case "jpg":
		return FormatJPEG
	default:
		return f
	}
}

func (o Options) extension() string {
	if o.format() == FormatJPEG {
		return ".jpg"
	}
	return ".png"
}

// validate checks everything that can be known before pixels are touched
func (o Options) validate(count int) error {
	switch o.format() {
	case FormatPNG, FormatJPEG:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, o.Format)
	}

	if len(o.Names) > 0 && len(o.Names) < count {
		return fmt.Errorf("%w: got %d names for %d slices", ErrNamingMismatch, len(o.Names), count)
	}

	if o.Dir == "" {
		return ErrNoDestination
	}
	info, err := os.Stat(o.Dir)
	if err != nil {
		return &IOError{Op: "stat", Path: o.Dir, Err: err}
	}
	if !info.IsDir() {
		return &IOError{Op: "stat", Path: o.Dir, Err: errors.New("not a directory")}
	}

	return nil
}

// sliceName returns the file name for the idx-th slice in row-major order
func (o Options) sliceName(idx int, s models.Slice) string {
	if len(o.Names) > 0 {
		return o.Names[idx] + o.extension()
	}
	return fmt.Sprintf("slice_%d_%d%s", s.Column, s.Row, o.extension())
}

// Save writes every slice of a cut grid to opts.Dir and records the written
// path in each slice's Filename field.
func Save(slices [][]models.Slice, opts Options) error {
	count := 0
	for _, row := range slices {
		count += len(row)
	}
	if err := opts.validate(count); err != nil {
		return err
	}

	idx := 0
	for y := range slices {
		for x := range slices[y] {
			path := filepath.Join(opts.Dir, opts.sliceName(idx, slices[y][x]))
			if err := writeImage(path, slices[y][x].Image, opts); err != nil {
				return err
			}
			slices[y][x].Filename = path
			idx++
		}
	}

	return nil
}

// writeImage encodes img to path in the configured format
func writeImage(path string, img image.Image, opts Options) error {
	file, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}

	if err := encode(file, img, opts); err != nil {
		file.Close()
		return &IOError{Op: "encode", Path: path, Err: err}
	}

	if err := file.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}
	return nil
}

func encode(w io.Writer, img image.Image, opts Options) error {
	if opts.format() == FormatPNG {
		return png.Encode(w, img)
	}

	quality := opts.JPEGQuality
	if quality == 0 {
		quality = 90
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// LoadImage decodes a PNG or JPEG image from disk
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return img, nil
}
