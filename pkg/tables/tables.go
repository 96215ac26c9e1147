// Package tables holds small helpers for inspecting and tidying tabular data
// held in gota data frames.
package tables

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrDuplicateColumn is returned when cleaning maps two names onto one
var ErrDuplicateColumn = errors.New("duplicate column name")

// MissingMarkers are the cell values read as missing when loading CSV data
var MissingMarkers = []string{"NA", "NaN", "<nil>"}

// ColumnNulls holds the missing and empty cell counts for one column
type ColumnNulls struct {
	Column string
	Null   int
	Empty  int
}

// CountNulls returns, per column and in column order, how many cells are
// missing and how many hold an empty string. A missing cell is never also
// counted as empty.
func CountNulls(df dataframe.DataFrame) []ColumnNulls {
	names := df.Names()
	counts := make([]ColumnNulls, 0, len(names))

	for _, name := range names {
		col := df.Col(name)
		c := ColumnNulls{Column: name}
		for i := 0; i < col.Len(); i++ {
			e := col.Elem(i)
			switch {
			case e.IsNA():
				c.Null++
			case e.String() == "":
				c.Empty++
			}
		}
		counts = append(counts, c)
	}

	return counts
}

// NullValues returns a frame with one row per column of df and the columns
// Column, Null and Empty
func NullValues(df dataframe.DataFrame) dataframe.DataFrame {
	counts := CountNulls(df)

	names := make([]string, len(counts))
	nulls := make([]int, len(counts))
	empties := make([]int, len(counts))
	for i, c := range counts {
		names[i] = c.Column
		nulls[i] = c.Null
		empties[i] = c.Empty
	}

	return dataframe.New(
		series.New(names, series.String, "Column"),
		series.New(nulls, series.Int, "Null"),
		series.New(empties, series.Int, "Empty"),
	)
}

// CleanColumnNames removes every space, turns '-' into '_' and lowercases
// each name. Spaces inside a name are dropped, not replaced.
func CleanColumnNames(columns []string) []string {
	cleaned := make([]string, len(columns))
	for i, col := range columns {
		col = strings.ReplaceAll(col, " ", "")
		col = strings.ReplaceAll(col, "-", "_")
		cleaned[i] = strings.ToLower(col)
	}
	return cleaned
}

// CleanNames returns a copy of df with CleanColumnNames applied to its
// header. df itself is left untouched.
func CleanNames(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	if df.Err != nil {
		return df, df.Err
	}

	names := CleanColumnNames(df.Names())
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %q", ErrDuplicateColumn, n)
		}
		seen[n] = true
	}

	out := df.Copy()
	if err := out.SetNames(names...); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to rename columns: %w", err)
	}
	return out, nil
}

// ReadCSV loads CSV data with a header row, detecting column types and
// treating MissingMarkers as missing values
func ReadCSV(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(MissingMarkers),
	)
	if df.Err != nil {
		return df, fmt.Errorf("error parsing csv: %w", df.Err)
	}
	return df, nil
}

// LoadCSV reads a CSV file from disk with ReadCSV
func LoadCSV(path string) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("error reading csv file: %w", err)
	}
	defer file.Close()

	return ReadCSV(file)
}
