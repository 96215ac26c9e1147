package imageslice

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usefulfunctions/internal/models"
)

// createTestImage creates a grayscale test image where every pixel encodes
// its own coordinates
func createTestImage(width, height int) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray16(x, y, color.Gray16{Y: uint16(y*width + x)})
		}
	}
	return img
}

func TestBoundaries(t *testing.T) {
	testCases := []struct {
		size, count int
		expected    []int
	}{
		{10, 1, []int{0, 10}},
		{10, 2, []int{0, 5, 10}},
		{10, 3, []int{0, 3, 6, 10}},
		{11, 2, []int{0, 5, 11}},
		{12, 5, []int{0, 2, 4, 6, 8, 12}},
		{7, 7, []int{0, 1, 2, 3, 4, 5, 6, 7}},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d/%d", tc.size, tc.count), func(t *testing.T) {
			coords, err := Boundaries(tc.size, tc.count)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, coords)
		})
	}
}

func TestBoundariesRejectsBadCounts(t *testing.T) {
	_, err := Boundaries(10, 0)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = Boundaries(10, -3)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = Boundaries(3, 4)
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

// TestCutCoversImage checks that the slices partition the source exactly
func TestCutCoversImage(t *testing.T) {
	for _, tc := range []struct{ w, h, cols, rows int }{
		{10, 10, 1, 1},
		{10, 10, 2, 2},
		{17, 9, 3, 4},
		{100, 37, 7, 5},
		{5, 40, 5, 1},
	} {
		t.Run(fmt.Sprintf("%dx%d_%dx%d", tc.w, tc.h, tc.cols, tc.rows), func(t *testing.T) {
			img := createTestImage(tc.w, tc.h)
			slices, err := Cut(img, models.Grid{Columns: tc.cols, Rows: tc.rows}, Options{})
			require.NoError(t, err)
			require.Len(t, slices, tc.rows)

			covered := make([]int, tc.w*tc.h)
			for y, row := range slices {
				require.Len(t, row, tc.cols)
				for x, s := range row {
					assert.Equal(t, x, s.Column)
					assert.Equal(t, y, s.Row)
					assert.True(t, s.Bounds.In(img.Bounds()), "slice %v outside image", s.Bounds)
					assert.Equal(t, image.Pt(0, 0), s.Image.Bounds().Min)
					assert.Equal(t, s.Bounds.Size(), s.Image.Bounds().Size())

					for py := s.Bounds.Min.Y; py < s.Bounds.Max.Y; py++ {
						for px := s.Bounds.Min.X; px < s.Bounds.Max.X; px++ {
							covered[py*tc.w+px]++
						}
					}
				}
			}

			for i, n := range covered {
				require.Equalf(t, 1, n, "pixel %d covered %d times", i, n)
			}
		})
	}
}

func TestCutCopiesPixels(t *testing.T) {
	img := createTestImage(6, 4)
	slices, err := Cut(img, models.Grid{Columns: 3, Rows: 2}, Options{})
	require.NoError(t, err)

	s := slices[1][2]
	assert.Equal(t, image.Rect(4, 2, 6, 4), s.Bounds)

	gray, ok := s.Image.(*image.Gray16)
	require.True(t, ok, "expected *image.Gray16, got %T", s.Image)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			expected := img.Gray16At(4+x, 2+y).Y
			assert.Equal(t, expected, gray.Gray16At(x, y).Y)
		}
	}

	// the slice must not alias the source
	gray.SetGray16(0, 0, color.Gray16{Y: 65535})
	assert.NotEqual(t, uint16(65535), img.Gray16At(4, 2).Y)
}

func TestCutEvenDivision(t *testing.T) {
	img := createTestImage(12, 8)
	slices, err := Cut(img, models.Grid{Columns: 4, Rows: 2}, Options{})
	require.NoError(t, err)

	for _, row := range slices {
		for _, s := range row {
			assert.Equal(t, 3, s.Bounds.Dx())
			assert.Equal(t, 4, s.Bounds.Dy())
		}
	}
}

func TestCutRemainderGoesToLastBand(t *testing.T) {
	img := createTestImage(11, 10)
	slices, err := Cut(img, models.Grid{Columns: 3, Rows: 3}, Options{})
	require.NoError(t, err)

	for y, row := range slices {
		for x, s := range row {
			if x < 2 {
				assert.Equal(t, 3, s.Bounds.Dx())
			} else {
				assert.Equal(t, 5, s.Bounds.Dx())
			}
			if y < 2 {
				assert.Equal(t, 3, s.Bounds.Dy())
			} else {
				assert.Equal(t, 4, s.Bounds.Dy())
			}
		}
	}
}

func TestCutSingleBandSpansAxis(t *testing.T) {
	img := createTestImage(9, 5)
	slices, err := Cut(img, models.Grid{Columns: 1, Rows: 5}, Options{})
	require.NoError(t, err)

	for _, row := range slices {
		require.Len(t, row, 1)
		assert.Equal(t, 0, row[0].Bounds.Min.X)
		assert.Equal(t, 9, row[0].Bounds.Max.X)
	}
}

func TestCutOffsetImage(t *testing.T) {
	src := createTestImage(20, 20)
	sub := src.SubImage(image.Rect(5, 5, 15, 15))

	slices, err := Cut(sub, models.Grid{Columns: 2, Rows: 2}, Options{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(10, 10, 15, 15), slices[1][1].Bounds)
}

func TestCutInvalidGrid(t *testing.T) {
	img := createTestImage(4, 4)

	_, err := Cut(img, models.Grid{Columns: 0, Rows: 1}, Options{})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = Cut(img, models.Grid{Columns: 2, Rows: -1}, Options{})
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestCutSavesDefaultNames(t *testing.T) {
	dir := t.TempDir()
	img := createTestImage(8, 6)

	slices, err := Cut(img, models.Grid{Columns: 2, Rows: 3}, Options{Save: true, Dir: dir})
	require.NoError(t, err)

	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			expected := filepath.Join(dir, fmt.Sprintf("slice_%d_%d.png", x, y))
			assert.Equal(t, expected, slices[y][x].Filename)

			loaded, err := LoadImage(expected)
			require.NoError(t, err)
			assert.Equal(t, slices[y][x].Bounds.Size(), loaded.Bounds().Size())
		}
	}
}

func TestCutSavesGivenNamesRowMajor(t *testing.T) {
	dir := t.TempDir()
	img := createTestImage(4, 4)
	names := []string{"a", "b", "c", "d"}

	slices, err := Cut(img, models.Grid{Columns: 2, Rows: 2}, Options{Save: true, Dir: dir, Names: names})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "a.png"), slices[0][0].Filename)
	assert.Equal(t, filepath.Join(dir, "b.png"), slices[0][1].Filename)
	assert.Equal(t, filepath.Join(dir, "c.png"), slices[1][0].Filename)
	assert.Equal(t, filepath.Join(dir, "d.png"), slices[1][1].Filename)
}

func TestCutSavesJPEG(t *testing.T) {
	dir := t.TempDir()
	img := createTestImage(4, 4)

	slices, err := Cut(img, models.Grid{Columns: 2, Rows: 1}, Options{Save: true, Dir: dir, Format: "JPG"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "slice_1_0.jpg"), slices[0][1].Filename)

	_, err = os.Stat(slices[0][1].Filename)
	assert.NoError(t, err)
}

func TestCutNamingMismatch(t *testing.T) {
	dir := t.TempDir()
	img := createTestImage(4, 4)

	_, err := Cut(img, models.Grid{Columns: 2, Rows: 2}, Options{Save: true, Dir: dir, Names: []string{"a", "b", "c"}})
	assert.ErrorIs(t, err, ErrNamingMismatch)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing should be written on a naming mismatch")
}

func TestSaveRaggedGridNamingMismatch(t *testing.T) {
	dir := t.TempDir()
	img := createTestImage(4, 4)
	slices, err := Cut(img, models.Grid{Columns: 2, Rows: 2}, Options{})
	require.NoError(t, err)

	// first row shorter than the second: 3 slices, 2 names
	slices[0] = slices[0][:1]
	err = Save(slices, Options{Dir: dir, Names: []string{"a", "b"}})
	assert.ErrorIs(t, err, ErrNamingMismatch)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveUnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	img := createTestImage(4, 4)
	slices, err := Cut(img, models.Grid{Columns: 1, Rows: 1}, Options{})
	require.NoError(t, err)

	// a directory already sitting at the target path makes create fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "slice_0_0.png"), 0755))

	err = Save(slices, Options{Dir: dir})
	assert.ErrorIs(t, err, ErrIO)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "create", ioErr.Op)
	assert.Equal(t, filepath.Join(dir, "slice_0_0.png"), ioErr.Path)
	assert.Empty(t, slices[0][0].Filename)
}

func TestCutMissingDestination(t *testing.T) {
	img := createTestImage(4, 4)

	_, err := Cut(img, models.Grid{Columns: 2, Rows: 2}, Options{Save: true})
	assert.ErrorIs(t, err, ErrNoDestination)

	missing := filepath.Join(t.TempDir(), "does-not-exist")
	_, err = Cut(img, models.Grid{Columns: 2, Rows: 2}, Options{Save: true, Dir: missing})
	assert.ErrorIs(t, err, ErrIO)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, missing, ioErr.Path)
}

func TestCutUnknownFormat(t *testing.T) {
	img := createTestImage(4, 4)
	_, err := Cut(img, models.Grid{Columns: 1, Rows: 1}, Options{Save: true, Dir: t.TempDir(), Format: "gif"})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadImageMissing(t *testing.T) {
	_, err := LoadImage(filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorIs(t, err, ErrIO)
}
