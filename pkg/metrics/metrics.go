// Package metrics measures how far a set of predictions is from the values
// actually observed.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrInvalidInput is returned for empty, mismatched or non-finite inputs and
// for an actual series with zero range
var ErrInvalidInput = errors.New("invalid metric input")

// RMSE computes the root mean squared error sqrt(mean((prediction-actual)^2))
func RMSE(prediction, actual []float64) (float64, error) {
	if err := checkLengths(prediction, actual); err != nil {
		return 0, err
	}

	diff := make([]float64, len(actual))
	floats.SubTo(diff, prediction, actual)
	floats.Mul(diff, diff)

	return math.Sqrt(stat.Mean(diff, nil)), nil
}

// ErrorMargin computes RMSE(prediction, actual) / (max(actual) - min(actual)).
// It is undefined, and reported as ErrInvalidInput, when every actual value
// is the same.
func ErrorMargin(prediction, actual []float64) (float64, error) {
	rmse, err := RMSE(prediction, actual)
	if err != nil {
		return 0, err
	}

	spread := floats.Max(actual) - floats.Min(actual)
	if spread == 0 {
		return 0, fmt.Errorf("%w: actual values have zero range", ErrInvalidInput)
	}

	return rmse / spread, nil
}

func checkLengths(prediction, actual []float64) error {
	if len(actual) == 0 {
		return fmt.Errorf("%w: no values", ErrInvalidInput)
	}
	if len(prediction) != len(actual) {
		return fmt.Errorf("%w: %d predictions for %d actual values", ErrInvalidInput, len(prediction), len(actual))
	}
	if err := checkFinite("prediction", prediction); err != nil {
		return err
	}
	return checkFinite("actual", actual)
}

// checkFinite rejects NaN and infinite values, such as missing cells read
// from a table
func checkFinite(name string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s[%d] is %g", ErrInvalidInput, name, i, v)
		}
	}
	return nil
}
