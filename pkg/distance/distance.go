// Package distance provides straight-line distances between two points,
// either on the Earth's surface (haversine) or on a projected
// easting/northing grid.
package distance

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"usefulfunctions/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by Haversine
const EarthRadiusKm = 6371.0

// ErrInvalidInput is returned for malformed coordinate pairs
var ErrInvalidInput = errors.New("invalid coordinates")

// Haversine returns the great-circle distance in km between two positions.
// Elevation is ignored.
func Haversine(origin, destination models.LatLon) float64 {
	return HaversineRadius(origin, destination, EarthRadiusKm)
}

// HaversineRadius is Haversine on a sphere of the given radius. The result
// is in the unit of radius.
func HaversineRadius(origin, destination models.LatLon, radius float64) float64 {
	dlat := radians(destination.Lat - origin.Lat)
	dlon := radians(destination.Lon - origin.Lon)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(radians(origin.Lat))*math.Cos(radians(destination.Lat))*
			math.Sin(dlon/2)*math.Sin(dlon/2)
	// rounding can push a just outside [0,1] for near-antipodal points
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return radius * c
}

// EastNorth returns the planar distance sqrt((E1-E2)^2 + (N1-N2)^2)
func EastNorth(origin, destination models.EastNorth) float64 {
	return r2.Norm(r2.Sub(vec(origin), vec(destination)))
}

// HaversinePair is Haversine for raw (latitude, longitude) pairs. It rejects
// pairs that are not exactly two finite values or that fall outside the
// valid latitude/longitude ranges.
func HaversinePair(origin, destination []float64) (float64, error) {
	return HaversinePairRadius(origin, destination, EarthRadiusKm)
}

// HaversinePairRadius is HaversinePair on a sphere of the given radius
func HaversinePairRadius(origin, destination []float64, radius float64) (float64, error) {
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return 0, fmt.Errorf("%w: radius %g", ErrInvalidInput, radius)
	}
	o, err := latLon(origin)
	if err != nil {
		return 0, fmt.Errorf("origin: %w", err)
	}
	d, err := latLon(destination)
	if err != nil {
		return 0, fmt.Errorf("destination: %w", err)
	}
	return HaversineRadius(o, d, radius), nil
}

// EastNorthPair is EastNorth for raw (easting, northing) pairs
func EastNorthPair(origin, destination []float64) (float64, error) {
	if err := checkPair(origin); err != nil {
		return 0, fmt.Errorf("origin: %w", err)
	}
	if err := checkPair(destination); err != nil {
		return 0, fmt.Errorf("destination: %w", err)
	}
	return EastNorth(
		models.EastNorth{Easting: origin[0], Northing: origin[1]},
		models.EastNorth{Easting: destination[0], Northing: destination[1]},
	), nil
}

func latLon(pair []float64) (models.LatLon, error) {
	if err := checkPair(pair); err != nil {
		return models.LatLon{}, err
	}
	if pair[0] < -90 || pair[0] > 90 {
		return models.LatLon{}, fmt.Errorf("%w: latitude %g out of range", ErrInvalidInput, pair[0])
	}
	if pair[1] < -180 || pair[1] > 180 {
		return models.LatLon{}, fmt.Errorf("%w: longitude %g out of range", ErrInvalidInput, pair[1])
	}
	return models.LatLon{Lat: pair[0], Lon: pair[1]}, nil
}

func checkPair(pair []float64) error {
	if len(pair) != 2 {
		return fmt.Errorf("%w: expected 2 values, got %d", ErrInvalidInput, len(pair))
	}
	for _, v := range pair {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value %g", ErrInvalidInput, v)
		}
	}
	return nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func vec(p models.EastNorth) r2.Vec { return r2.Vec{X: p.Easting, Y: p.Northing} }
