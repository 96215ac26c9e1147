package distance

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"usefulfunctions/internal/models"
)

// ErrEmptyIndex is returned when searching an index with no points
var ErrEmptyIndex = errors.New("index has no points")

// gridPoint wraps an easting/northing for use in a KD-tree
type gridPoint models.EastNorth

// Compare implements the kdtree.Comparable interface
func (p gridPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(gridPoint)
	switch d {
	case 0:
		return p.Easting - q.Easting
	case 1:
		return p.Northing - q.Northing
	default:
		panic("illegal dimension")
	}
}

func (p gridPoint) Dims() int { return 2 }

// Distance returns the squared planar distance between two points
func (p gridPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(gridPoint)
	de := p.Easting - q.Easting
	dn := p.Northing - q.Northing
	return de*de + dn*dn
}

type gridPoints []gridPoint

func (p gridPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p gridPoints) Len() int                              { return len(p) }
func (p gridPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

func (p gridPoints) Pivot(d kdtree.Dim) int {
	plane := gridPlane{gridPoints: p, Dim: d}
	return kdtree.Partition(plane, kdtree.MedianOfRandoms(plane, 100))
}

// gridPlane implements sort.Interface and kdtree.SortSlicer for gridPoints
type gridPlane struct {
	gridPoints
	kdtree.Dim
}

func (p gridPlane) Less(i, j int) bool {
	switch p.Dim {
	case 0:
		return p.gridPoints[i].Easting < p.gridPoints[j].Easting
	case 1:
		return p.gridPoints[i].Northing < p.gridPoints[j].Northing
	default:
		panic("illegal dimension")
	}
}

func (p gridPlane) Slice(start, end int) kdtree.SortSlicer {
	return gridPlane{gridPoints: p.gridPoints[start:end], Dim: p.Dim}
}

func (p gridPlane) Swap(i, j int) {
	p.gridPoints[i], p.gridPoints[j] = p.gridPoints[j], p.gridPoints[i]
}

// Index answers nearest-point queries over a fixed set of grid positions
type Index struct {
	tree *kdtree.Tree
	size int
}

// Neighbor is a point found by a search together with its planar distance
// from the query
type Neighbor struct {
	Point    models.EastNorth
	Distance float64
}

// NewIndex builds an index over a copy of points
func NewIndex(points []models.EastNorth) *Index {
	idx := &Index{size: len(points)}
	if len(points) == 0 {
		return idx
	}

	pts := make(gridPoints, len(points))
	for i, p := range points {
		pts[i] = gridPoint(p)
	}
	idx.tree = kdtree.New(pts, true)

	return idx
}

// Len returns the number of indexed points
func (idx *Index) Len() int { return idx.size }

// Nearest returns the indexed point closest to q and its distance
func (idx *Index) Nearest(q models.EastNorth) (Neighbor, error) {
	if idx.tree == nil {
		return Neighbor{}, ErrEmptyIndex
	}
	c, d := idx.tree.Nearest(gridPoint(q))
	return Neighbor{Point: models.EastNorth(c.(gridPoint)), Distance: math.Sqrt(d)}, nil
}

// NearestN returns up to n indexed points ordered from closest to farthest
func (idx *Index) NearestN(q models.EastNorth, n int) ([]Neighbor, error) {
	if idx.tree == nil {
		return nil, ErrEmptyIndex
	}
	if n < 1 {
		return nil, nil
	}

	keeper := kdtree.NewNKeeper(n)
	idx.tree.NearestSet(keeper, gridPoint(q))

	result := make([]Neighbor, 0, keeper.Len())
	for _, item := range keeper.Heap {
		// skip the sentinel
		if item.Comparable == nil {
			continue
		}
		result = append(result, Neighbor{
			Point:    models.EastNorth(item.Comparable.(gridPoint)),
			Distance: math.Sqrt(item.Dist),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Distance < result[j].Distance })

	return result, nil
}
