package cover

import "github.com/viant/vec/search"

// Point represents one indexed or query point in the cover tree.
type Point struct {
	index     int32
	Magnitude float32
	Vector    []float32
}

// NewPoint constructs a point for the given coordinates. The magnitude is
// computed lazily on first insertion.
func NewPoint(vector ...float32) *Point {
	return &Point{index: -1, Vector: vector}
}

// magnitude returns the cached vector magnitude, computing it on demand.
func (p *Point) magnitude() float32 {
	if p.Magnitude == 0 && len(p.Vector) > 0 {
		p.Magnitude = search.Float32s(p.Vector).Magnitude()
	}
	return p.Magnitude
}
