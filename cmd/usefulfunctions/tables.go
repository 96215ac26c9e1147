package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/spf13/cobra"

	"usefulfunctions/pkg/charts"
	"usefulfunctions/pkg/tables"
)

func newNullsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nulls <csv>",
		Short: "Count missing and empty cells per column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := tables.LoadCSV(args[0])
			if err != nil {
				return err
			}
			fmt.Println(tables.NullValues(df))
			return nil
		},
	}
}

func newCleanNamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleannames <csv>",
		Short: "Print the cleaned column names of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := tables.LoadCSV(args[0])
			if err != nil {
				return err
			}
			cleaned, err := tables.CleanNames(df)
			if err != nil {
				return err
			}
			for i, name := range cleaned.Names() {
				fmt.Printf("%q -> %q\n", df.Names()[i], name)
			}
			return nil
		},
	}
}

func newHeatmapCmd() *cobra.Command {
	var out, cmap string

	cmd := &cobra.Command{
		Use:   "heatmap <csv>",
		Short: "Render a heatmap of the missing values in a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := tables.LoadCSV(args[0])
			if err != nil {
				return err
			}
			if cmap == "" {
				cmap = cfg.Chart.Colormap
			}
			p, err := charts.MissingValuesHeatmap(df, cmap)
			if err != nil {
				return err
			}
			if err := p.Save(charts.Pixels(cfg.Chart.Width), charts.Pixels(cfg.Chart.Height), out); err != nil {
				return fmt.Errorf("failed to save heatmap: %w", err)
			}
			logf("Heatmap saved to %s", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "missing.png", "Output image file")
	cmd.Flags().StringVar(&cmap, "cmap", "", "Colormap name")
	return cmd
}

func newCorrCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "corr <csv>",
		Short: "Render an annotated correlation heatmap of the numeric columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := tables.LoadCSV(args[0])
			if err != nil {
				return err
			}
			corr, names, err := charts.CorrelationMatrix(df)
			if err != nil {
				return err
			}
			p, err := charts.CorrelationHeatmap(corr, names, cfg.Chart.FontSize)
			if err != nil {
				return err
			}
			side := charts.Pixels(cfg.Chart.Height)
			if err := p.Save(side, side, out); err != nil {
				return fmt.Errorf("failed to save heatmap: %w", err)
			}
			logf("Correlation heatmap saved to %s", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "correlation.png", "Output image file")
	return cmd
}

func newMultiTableCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "multitable <csv>...",
		Short: "Render several CSV files side by side as one HTML table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frames := make([]dataframe.DataFrame, 0, len(args))
			for _, path := range args {
				df, err := tables.LoadCSV(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				frames = append(frames, df)
			}

			html, err := tables.MultiTable(frames...)
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Println(html)
				return nil
			}
			return os.WriteFile(out, []byte(html), 0644)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Write HTML to this file instead of stdout")
	return cmd
}

func newTimeSeriesCmd() *cobra.Command {
	var timeCol, valueCols, title, rangeLabel, out string

	cmd := &cobra.Command{
		Use:   "timeseries <csv>",
		Short: "Plot value columns against a date column on the base figure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := tables.LoadCSV(args[0])
			if err != nil {
				return err
			}

			dates := df.Col(timeCol)
			if dates.Err != nil {
				return dates.Err
			}
			times := make([]time.Time, dates.Len())
			for i, s := range dates.Records() {
				if times[i], err = time.Parse(cfg.Chart.TimeFormat, s); err != nil {
					return fmt.Errorf("row %d: %w", i+1, err)
				}
			}

			fig := charts.NewBaseFigure(charts.FigureOptions{
				Title:      title,
				XTitle:     timeCol,
				Width:      cfg.Chart.Width,
				Height:     cfg.Chart.Height,
				TimeAxis:   true,
				TimeFormat: cfg.Chart.TimeFormat,
			})
			for _, name := range strings.Split(valueCols, ",") {
				col := df.Col(strings.TrimSpace(name))
				if col.Err != nil {
					return col.Err
				}
				if err := fig.AddTimeSeries(col.Name, times, col.Float()); err != nil {
					return err
				}
			}

			if rangeLabel != "" && len(times) > 0 {
				if err := fig.SelectRange(rangeLabel, latest(times)); err != nil {
					return err
				}
			}

			if err := fig.Save(out); err != nil {
				return err
			}
			logf("Figure saved to %s", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&timeCol, "time", "date", "Column holding dates")
	cmd.Flags().StringVar(&valueCols, "values", "value", "Comma-separated value columns")
	cmd.Flags().StringVar(&title, "title", "", "Chart title")
	cmd.Flags().StringVar(&rangeLabel, "range", "", "Range preset: 1m, 6m, YTD, 1y, 5y or all")
	cmd.Flags().StringVar(&out, "out", "timeseries.png", "Output image file")
	return cmd
}

func latest(times []time.Time) time.Time {
	last := times[0]
	for _, t := range times[1:] {
		if t.After(last) {
			last = t
		}
	}
	return last
}
