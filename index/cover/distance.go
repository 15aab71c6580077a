package cover

import "github.com/viant/vec/search"

// DistanceFunction names a metric usable by the cover tree. Euclidean is
// the default for spatial point patterns; cosine stays available for
// directional data.
type DistanceFunction string

const (
	DistanceFunctionEuclidean DistanceFunction = "euclidean"
	DistanceFunctionCosine    DistanceFunction = "cosine"
)

// DistanceFunc computes the distance between two points.
type DistanceFunc func(a, b *Point) float32

// Function resolves the metric name to its implementation, nil when the
// name is unknown.
func (d DistanceFunction) Function() DistanceFunc {
	switch d {
	case DistanceFunctionEuclidean:
		return EuclideanDistance
	case DistanceFunctionCosine:
		return CosineDistance
	default:
		return nil
	}
}

// EuclideanDistance returns the straight-line distance between two points.
func EuclideanDistance(a, b *Point) float32 {
	return search.Float32s(a.Vector).EuclideanDistance(b.Vector)
}

// CosineDistance returns 1 minus the cosine similarity of the two points.
// Magnitudes cached at insert time are reused; query points compute theirs
// on first use.
func CosineDistance(a, b *Point) float32 {
	return search.Float32s(a.Vector).CosineDistanceWithMagnitudesNeon(b.Vector, a.magnitude(), b.magnitude())
}
