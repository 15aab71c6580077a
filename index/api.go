// Package index defines a minimal abstraction for nearest-neighbor
// indexes that can be built from a point set, queried for the k nearest
// points, and serialized for persistence. Implementations in this module
// include a brute-force baseline and a cover tree.
package index

import "github.com/spatialkit/ppa/pointset"

// Index is a nearest-neighbor index over a fixed set of points.
type Index interface {
	// Build constructs the index from the given ids and points. ids and
	// points must have the same length; points must be non-nil.
	Build(ids []string, points *pointset.Points[float32]) error

	// Nearest runs a kNN search with the provided query point and returns
	// up to k matches as parallel slices of ids and euclidean distances,
	// ordered by ascending distance.
	Nearest(query []float32, k int) (ids []string, dists []float64, err error)

	// MarshalBinary serializes the index into a byte slice.
	MarshalBinary() ([]byte, error)

	// UnmarshalBinary reconstructs the index from a serialized byte slice.
	UnmarshalBinary(data []byte) error
}
