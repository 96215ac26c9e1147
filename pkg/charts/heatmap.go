package charts

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

var (
	// ErrUnknownColormap is returned for a palette name with no mapping
	ErrUnknownColormap = errors.New("unknown colormap")

	// ErrEmptyFrame is returned when there are no cells to draw
	ErrEmptyFrame = errors.New("data frame has no cells")
)

// paletteSize is the number of colours sampled from a continuous colormap
const paletteSize = 256

// Palette returns n colours from the named colormap. Names are matched
// case-insensitively; "magma" maps to the extended black-body map.
func Palette(name string, n int) (palette.Palette, error) {
	var cm palette.ColorMap
	switch strings.ToLower(name) {
	case "", "magma", "extendedblackbody":
		cm = moreland.ExtendedBlackBody()
	case "blackbody":
		cm = moreland.BlackBody()
	case "kindlmann":
		cm = moreland.Kindlmann()
	case "extendedkindlmann":
		cm = moreland.ExtendedKindlmann()
	case "smoothbluered", "coolwarm":
		cm = moreland.SmoothBlueRed()
	case "heat":
		return palette.Heat(n, 1), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownColormap, name)
	}

	cm.SetMax(1)
	cm.SetMin(0)
	return cm.Palette(n), nil
}

// cellGrid is a row-major value grid drawn with row 0 at the top
type cellGrid struct {
	cols, rows int
	values     []float64
	min, max   float64
}

func (g cellGrid) Dims() (c, r int)   { return g.cols, g.rows }
func (g cellGrid) Z(c, r int) float64 { return g.values[(g.rows-1-r)*g.cols+c] }
func (g cellGrid) X(c int) float64    { return float64(c) }
func (g cellGrid) Y(r int) float64    { return float64(r) }
func (g cellGrid) Min() float64       { return g.min }
func (g cellGrid) Max() float64       { return g.max }

// reversed returns names bottom-up so that NominalY lines up with cellGrid
func reversed(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[len(names)-1-i] = n
	}
	return out
}

// MissingValuesHeatmap draws one cell per value of df, lit where the value
// is missing. No colour bar is drawn.
func MissingValuesHeatmap(df dataframe.DataFrame, cmap string) (*plot.Plot, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	rows, cols := df.Dims()
	if rows == 0 || cols == 0 {
		return nil, ErrEmptyFrame
	}

	pal, err := Palette(cmap, paletteSize)
	if err != nil {
		return nil, err
	}

	grid := cellGrid{cols: cols, rows: rows, values: make([]float64, rows*cols), max: 1}
	names := df.Names()
	for c, name := range names {
		col := df.Col(name)
		for r := 0; r < rows; r++ {
			if col.Elem(r).IsNA() {
				grid.values[r*cols+c] = 1
			}
		}
	}

	p := plot.New()
	p.Add(plotter.NewHeatMap(grid, pal))
	p.NominalX(names...)
	p.HideY()

	return p, nil
}

// CorrelationMatrix computes Pearson correlations between the numeric
// columns of df. Rows with a missing value in any numeric column are dropped.
func CorrelationMatrix(df dataframe.DataFrame) (*mat.SymDense, []string, error) {
	if df.Err != nil {
		return nil, nil, df.Err
	}

	var names []string
	var cols [][]float64
	for _, name := range df.Names() {
		col := df.Col(name)
		if col.Type() != series.Float && col.Type() != series.Int {
			continue
		}
		names = append(names, name)
		cols = append(cols, col.Float())
	}
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("%w: no numeric columns", ErrEmptyFrame)
	}

	var data []float64
	n := 0
	for r := 0; r < df.Nrow(); r++ {
		complete := true
		for _, col := range cols {
			if math.IsNaN(col[r]) {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		for _, col := range cols {
			data = append(data, col[r])
		}
		n++
	}
	if n < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2 complete rows, got %d", ErrEmptyFrame, n)
	}

	corr := mat.NewSymDense(len(names), nil)
	stat.CorrelationMatrix(corr, mat.NewDense(n, len(names), data), nil)

	return corr, names, nil
}

// CorrelationHeatmap draws corr scaled to percent, each cell annotated with
// its rounded value at fontSize points. X tick labels are rotated 45 degrees.
func CorrelationHeatmap(corr mat.Symmetric, names []string, fontSize float64) (*plot.Plot, error) {
	n := corr.SymmetricDim()
	if n == 0 {
		return nil, ErrEmptyFrame
	}
	if len(names) != n {
		return nil, fmt.Errorf("%d names for a %dx%d matrix", len(names), n, n)
	}
	if fontSize <= 0 {
		fontSize = 10
	}

	pal, err := Palette("smoothbluered", paletteSize)
	if err != nil {
		return nil, err
	}

	grid := cellGrid{cols: n, rows: n, values: make([]float64, n*n), min: -100, max: 100}
	labels := plotter.XYLabels{XYs: make(plotter.XYs, 0, n*n), Labels: make([]string, 0, n*n)}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v := corr.At(r, c) * 100
			grid.values[r*n+c] = v
			labels.XYs = append(labels.XYs, plotter.XY{X: float64(c), Y: float64(n - 1 - r)})
			labels.Labels = append(labels.Labels, fmt.Sprintf("%.0f", v))
		}
	}

	annotations, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, fmt.Errorf("failed to create annotations: %w", err)
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].Font.Size = vg.Points(fontSize)
		annotations.TextStyle[i].XAlign = text.XCenter
		annotations.TextStyle[i].YAlign = text.YCenter
	}

	p := plot.New()
	p.Add(plotter.NewHeatMap(grid, pal), annotations)
	p.NominalX(names...)
	p.NominalY(reversed(names)...)

	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter
	p.X.Tick.Label.Font.Size = vg.Points(13)
	p.Y.Tick.Label.Font.Size = vg.Points(13)

	return p, nil
}
