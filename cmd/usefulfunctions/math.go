package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"usefulfunctions/pkg/distance"
	"usefulfunctions/pkg/metrics"
	"usefulfunctions/pkg/tables"
)

func parseFloats(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}

func newHaversineCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "haversine <lat1> <lon1> <lat2> <lon2>",
		Short:   "Great-circle distance in km between two positions",
		Example: "  usefulfunctions haversine -- 51.5074 -0.1278 48.8566 2.3522",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			d, err := distance.HaversinePairRadius(v[:2], v[2:], cfg.Distance.EarthRadiusKm)
			if err != nil {
				return err
			}
			fmt.Printf("%.3f km\n", d)
			return nil
		},
	}
}

func newEastNorthCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "eastnorth <e1> <n1> <e2> <n2>",
		Short:   "Straight-line distance between two easting/northing positions",
		Example: "  usefulfunctions eastnorth -- 530000 180000 531200 180500",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args)
			if err != nil {
				return err
			}
			d, err := distance.EastNorthPair(v[:2], v[2:])
			if err != nil {
				return err
			}
			fmt.Printf("%.3f\n", d)
			return nil
		},
	}
}

func newErrorsCmd() *cobra.Command {
	var predictionCol, actualCol string

	cmd := &cobra.Command{
		Use:   "errors <csv>",
		Short: "RMSE and error margin between a prediction and an actual column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := tables.LoadCSV(args[0])
			if err != nil {
				return err
			}
			prediction := df.Col(predictionCol)
			if prediction.Err != nil {
				return prediction.Err
			}
			actual := df.Col(actualCol)
			if actual.Err != nil {
				return actual.Err
			}

			rmse, err := metrics.RMSE(prediction.Float(), actual.Float())
			if err != nil {
				return err
			}
			fmt.Printf("RMSE: %.6f\n", rmse)

			margin, err := metrics.ErrorMargin(prediction.Float(), actual.Float())
			if err != nil {
				return err
			}
			fmt.Printf("Error margin: %.6f\n", margin)
			return nil
		},
	}

	cmd.Flags().StringVar(&predictionCol, "prediction", "prediction", "Column holding predicted values")
	cmd.Flags().StringVar(&actualCol, "actual", "actual", "Column holding actual values")
	return cmd
}
