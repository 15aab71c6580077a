package cover

import (
	"errors"
	"fmt"
	"math"

	"github.com/spatialkit/ppa/index"
	"github.com/spatialkit/ppa/index/bruteforce"
	"github.com/spatialkit/ppa/pointset"
)

// Compile-time check that Index satisfies the index interface.
var _ index.Index = (*Index)(nil)

// SearchStrategy selects how the tree is traversed during a kNN query.
type SearchStrategy int

const (
	// SearchDepthFirst descends children in ascending center distance.
	SearchDepthFirst SearchStrategy = iota
	// SearchBestFirst expands a frontier ordered by lower-bound distance.
	SearchBestFirst
)

// Options configure cover tree construction.
type Options struct {
	// Base is the cover tree expansion base; values <= 1 fall back to 1.3.
	Base float32
	// Distance selects the metric; euclidean when empty.
	Distance DistanceFunction
	// Bound selects the pruning bound strategy.
	Bound BoundStrategy
	// Search selects the kNN traversal.
	Search SearchStrategy
}

// Index adapts the cover tree to the index.Index interface. It
// serializes using the brute-force encoding for compatibility.
type Index struct {
	points *pointset.Points[float32]
	ids    []string
	tree   *Tree
	opts   Options
}

// New returns an index with the given options.
func New(opts Options) *Index { return &Index{opts: opts} }

// Build constructs the cover tree. Points with non-finite coordinates are
// excluded from the tree: they cannot participate in metric pruning and
// must never appear as a neighbor.
func (i *Index) Build(ids []string, points *pointset.Points[float32]) error {
	if points == nil {
		return errors.New("cover: points must not be nil")
	}
	if len(ids) != points.Len() {
		return fmt.Errorf("cover: ids and points length mismatch: %d != %d", len(ids), points.Len())
	}
	distance := i.opts.Distance
	if distance == "" {
		distance = DistanceFunctionEuclidean
	}
	tree := NewTree(i.opts.Base, distance)
	tree.SetBoundStrategy(i.opts.Bound)
	for idx, row := range points.All() {
		if !finite(row) {
			continue
		}
		tree.Insert(ids[idx], NewPoint(row...))
	}
	i.points = points
	i.ids = append([]string(nil), ids...)
	i.tree = tree
	return nil
}

// Nearest returns up to k neighbors ordered by ascending distance.
func (i *Index) Nearest(query []float32, k int) ([]string, []float64, error) {
	if i.tree == nil || i.tree.Len() == 0 {
		return nil, nil, nil
	}
	if len(query) != i.points.Dim() {
		return nil, nil, fmt.Errorf("cover: query dimension %d does not match index dimension %d", len(query), i.points.Dim())
	}
	if k <= 0 {
		k = i.tree.Len()
	}
	var neighbors []Neighbor
	if i.opts.Search == SearchBestFirst {
		neighbors = i.tree.KNearestNeighborsBestFirst(NewPoint(query...), k)
	} else {
		neighbors = i.tree.KNearestNeighbors(NewPoint(query...), k)
	}
	ids := make([]string, 0, len(neighbors))
	dists := make([]float64, 0, len(neighbors))
	for _, n := range neighbors {
		ids = append(ids, i.tree.ID(n.Point))
		dists = append(dists, float64(n.Distance))
	}
	return ids, dists, nil
}

// MarshalBinary stores the index in the brute-force binary format.
func (i *Index) MarshalBinary() ([]byte, error) {
	bf := &bruteforce.Index{}
	if i.points != nil {
		if err := bf.Build(i.ids, i.points); err != nil {
			return nil, err
		}
	}
	return bf.MarshalBinary()
}

// UnmarshalBinary loads the brute-force format and rebuilds the tree.
func (i *Index) UnmarshalBinary(data []byte) error {
	bf := &bruteforce.Index{}
	if err := bf.UnmarshalBinary(data); err != nil {
		return err
	}
	if bf.Points() == nil {
		i.points, i.ids, i.tree = nil, nil, nil
		return nil
	}
	return i.Build(bf.IDs(), bf.Points())
}

func finite(row []float32) bool {
	for _, v := range row {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
