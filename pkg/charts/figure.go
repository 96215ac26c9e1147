// Package charts builds pre-styled gonum/plot figures: a base time-series
// figure with range presets, a missing-values heatmap and an annotated
// correlation heatmap.
package charts

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrUnknownRange is returned by SelectRange for a label with no button
var ErrUnknownRange = errors.New("unknown range button")

// RangeStep is the unit a range button moves in
type RangeStep string

const (
	StepMonth RangeStep = "month"
	StepYear  RangeStep = "year"
	StepAll   RangeStep = "all"
)

// StepMode says whether a button counts back from the end of the axis or
// starts at the beginning of the current period
type StepMode string

const (
	StepBackward StepMode = "backward"
	StepToDate   StepMode = "todate"
)

// RangeButton is one preset of a time-axis range selector
type RangeButton struct {
	Count    int
	Label    string
	Step     RangeStep
	StepMode StepMode
}

// DefaultRangeButtons returns the 1m, 6m, YTD, 1y, 5y and all presets
func DefaultRangeButtons() []RangeButton {
	return []RangeButton{
		{Count: 1, Label: "1m", Step: StepMonth, StepMode: StepBackward},
		{Count: 6, Label: "6m", Step: StepMonth, StepMode: StepBackward},
		{Count: 1, Label: "YTD", Step: StepYear, StepMode: StepToDate},
		{Count: 1, Label: "1y", Step: StepYear, StepMode: StepBackward},
		{Count: 5, Label: "5y", Step: StepYear, StepMode: StepBackward},
		{Label: "all", Step: StepAll},
	}
}

// FigureOptions configures NewBaseFigure
type FigureOptions struct {
	Title  string
	XTitle string
	YTitle string

	// Width and Height are the rendered size in pixels
	Width  int
	Height int

	// TimeAxis formats X values as unix-second timestamps
	TimeAxis   bool
	TimeFormat string
}

// DefaultFigureOptions returns a 1500x800 time-axis figure
func DefaultFigureOptions() FigureOptions {
	return FigureOptions{
		Width:      1500,
		Height:     800,
		TimeAxis:   true,
		TimeFormat: "2006-01-02",
	}
}

// Figure is a plot with a fixed render size and a time-range selector
type Figure struct {
	*plot.Plot

	Width  vg.Length
	Height vg.Length

	// RangeSlider marks the X axis as range-selectable
	RangeSlider bool
	Buttons     []RangeButton

	series int
	// full is the X extent before the first SelectRange call
	full *[2]float64
}

// NewBaseFigure creates the base figure shared by all time-series charts:
// titles set, legend in the top-left corner and the default range buttons.
func NewBaseFigure(opts FigureOptions) *Figure {
	def := DefaultFigureOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = def.TimeFormat
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XTitle
	p.Y.Label.Text = opts.YTitle
	p.Legend.Top = true
	p.Legend.Left = true
	if opts.TimeAxis {
		p.X.Tick.Marker = plot.TimeTicks{Format: opts.TimeFormat}
	}

	return &Figure{
		Plot:        p,
		Width:       Pixels(opts.Width),
		Height:      Pixels(opts.Height),
		RangeSlider: true,
		Buttons:     DefaultRangeButtons(),
	}
}

// AddTimeSeries adds a named line of values against times
func (f *Figure) AddTimeSeries(name string, times []time.Time, values []float64) error {
	if len(times) != len(values) {
		return fmt.Errorf("series %q: %d times for %d values", name, len(times), len(values))
	}

	xys := make(plotter.XYs, len(times))
	for i := range times {
		xys[i].X = float64(times[i].Unix())
		xys[i].Y = values[i]
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("series %q: %w", name, err)
	}
	line.Color = plotutil.Color(f.series)
	f.series++

	f.Add(line)
	f.Legend.Add(name, line)
	f.full = nil

	return nil
}

// SelectRange applies the range button with the given label to the X axis,
// taking end as the right edge. The "all" button restores the full extent.
func (f *Figure) SelectRange(label string, end time.Time) error {
	var btn *RangeButton
	for i := range f.Buttons {
		if strings.EqualFold(f.Buttons[i].Label, label) {
			btn = &f.Buttons[i]
			break
		}
	}
	if btn == nil {
		return fmt.Errorf("%w: %q", ErrUnknownRange, label)
	}

	if f.full == nil {
		f.full = &[2]float64{f.X.Min, f.X.Max}
	}

	if btn.Step == StepAll {
		f.X.Min, f.X.Max = f.full[0], f.full[1]
		return nil
	}

	f.X.Min = float64(rangeStart(*btn, end).Unix())
	f.X.Max = float64(end.Unix())
	return nil
}

func rangeStart(btn RangeButton, end time.Time) time.Time {
	if btn.StepMode == StepToDate {
		if btn.Step == StepMonth {
			return time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
		}
		return time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, end.Location())
	}

	if btn.Step == StepMonth {
		return end.AddDate(0, -btn.Count, 0)
	}
	return end.AddDate(-btn.Count, 0, 0)
}

// Save renders the figure at its configured size; the format follows the
// file extension
func (f *Figure) Save(path string) error {
	if err := f.Plot.Save(f.Width, f.Height, path); err != nil {
		return fmt.Errorf("failed to save figure: %w", err)
	}
	return nil
}

// Pixels converts a pixel count to a plot length at the raster DPI
func Pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / vgimg.DefaultDPI
}
