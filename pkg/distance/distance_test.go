package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usefulfunctions/internal/models"
)

var (
	london = models.LatLon{Lat: 51.5074, Lon: -0.1278}
	paris  = models.LatLon{Lat: 48.8566, Lon: 2.3522}
)

func TestHaversineLondonParis(t *testing.T) {
	d := Haversine(london, paris)
	assert.Greater(t, d, 343.0)
	assert.Less(t, d, 344.0)
}

func TestHaversineSymmetric(t *testing.T) {
	pairs := [][2]models.LatLon{
		{london, paris},
		{{Lat: -33.8688, Lon: 151.2093}, {Lat: 40.7128, Lon: -74.0060}},
		{{Lat: 0, Lon: 179.5}, {Lat: 0, Lon: -179.5}},
	}
	for _, p := range pairs {
		assert.InDelta(t, Haversine(p[0], p[1]), Haversine(p[1], p[0]), 1e-9)
	}
}

func TestHaversineSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(paris, paris))
}

func TestHaversineRadius(t *testing.T) {
	// a quarter of the equator on a unit sphere
	d := HaversineRadius(models.LatLon{}, models.LatLon{Lon: 90}, 1)
	assert.InDelta(t, math.Pi/2, d, 1e-12)
}

func TestHaversineAntipodal(t *testing.T) {
	half := math.Pi * EarthRadiusKm
	assert.InDelta(t, half, Haversine(models.LatLon{Lat: -86.78, Lon: -179}, models.LatLon{Lat: 86.78, Lon: 1}), 1e-2)

	for lat := -90.0; lat <= 90; lat += 0.37 {
		for lon := -180.0; lon <= 0; lon += 1.13 {
			d := Haversine(models.LatLon{Lat: lat, Lon: lon}, models.LatLon{Lat: -lat, Lon: lon + 180})
			require.InDelta(t, half, d, 1e-2, "(%g,%g)", lat, lon)
		}
	}

	d, err := HaversinePair([]float64{-86.78, -179}, []float64{86.78, 1})
	require.NoError(t, err)
	assert.False(t, math.IsNaN(d))
}

func TestHaversinePairRadius(t *testing.T) {
	d, err := HaversinePairRadius([]float64{0, 0}, []float64{0, 90}, 1)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, d, 1e-12)

	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err = HaversinePairRadius([]float64{0, 0}, []float64{0, 90}, r)
		assert.ErrorIs(t, err, ErrInvalidInput, "radius %g", r)
	}
}

func TestEastNorth(t *testing.T) {
	testCases := []struct {
		a, b     models.EastNorth
		expected float64
	}{
		{models.EastNorth{}, models.EastNorth{Easting: 3, Northing: 4}, 5},
		{models.EastNorth{Easting: 1, Northing: 1}, models.EastNorth{Easting: 1, Northing: 1}, 0},
		{models.EastNorth{Easting: 530000, Northing: 180000}, models.EastNorth{Easting: 531200, Northing: 180500}, 1300},
	}

	for _, tc := range testCases {
		assert.InDelta(t, tc.expected, EastNorth(tc.a, tc.b), 1e-9)
		assert.InDelta(t, EastNorth(tc.a, tc.b), EastNorth(tc.b, tc.a), 1e-12)
	}
}

func TestPairs(t *testing.T) {
	d, err := HaversinePair([]float64{51.5074, -0.1278}, []float64{48.8566, 2.3522})
	require.NoError(t, err)
	assert.InDelta(t, Haversine(london, paris), d, 1e-12)

	d, err = EastNorthPair([]float64{0, 0}, []float64{6, 8})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, d, 1e-12)
}

func TestPairsInvalid(t *testing.T) {
	bad := [][]float64{
		nil,
		{1},
		{1, 2, 3},
		{math.NaN(), 0},
		{0, math.Inf(1)},
	}
	for _, p := range bad {
		_, err := HaversinePair(p, []float64{0, 0})
		assert.ErrorIs(t, err, ErrInvalidInput, "haversine %v", p)
		_, err = EastNorthPair([]float64{0, 0}, p)
		assert.ErrorIs(t, err, ErrInvalidInput, "east/north %v", p)
	}

	_, err := HaversinePair([]float64{91, 0}, []float64{0, 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = HaversinePair([]float64{0, 0}, []float64{0, -181})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
