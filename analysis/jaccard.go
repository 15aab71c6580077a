package analysis

import (
	"encoding/binary"
	"math"

	"github.com/spatialkit/ppa/pointset"
)

// JaccardCommand computes the Jaccard similarity between each input
// collection and a fixed reference collection.
type JaccardCommand struct {
	Reference *pointset.Collection[float32]
	// ReferenceSource records where the reference points came from, for
	// logging and persistence.
	ReferenceSource string
}

// Name implements Command.
func (c *JaccardCommand) Name() string { return "jaccard" }

// Execute implements Command.
func (c *JaccardCommand) Execute(col *pointset.Collection[float32]) (*Result, error) {
	v, err := Jaccard(col, c.Reference)
	if err != nil {
		return nil, err
	}
	return &Result{Command: c.Name(), Value: v}, nil
}

// Jaccard returns |A∩B| / |A∪B| over the two collections' point sets.
// Points are compared by exact coordinate equality on their IEEE 754 bit
// patterns, so NaN coordinates match themselves and duplicate points
// collapse to one set member. Both collections must share a dimension;
// two empty collections yield 0.
func Jaccard(a, b *pointset.Collection[float32]) (float64, error) {
	pa, pb := a.Points(), b.Points()
	if pa.Dim() != pb.Dim() {
		return 0, &DimensionError{Left: pa.Dim(), Right: pb.Dim()}
	}
	setA := pointKeys(pa)
	setB := pointKeys(pb)
	intersection := 0
	for k := range setA {
		if _, ok := setB[k]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0, nil
	}
	return float64(intersection) / float64(union), nil
}

func pointKeys(p *pointset.Points[float32]) map[string]struct{} {
	keys := make(map[string]struct{}, p.Len())
	buf := make([]byte, 4*p.Dim())
	for _, row := range p.All() {
		for i, v := range row {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
		}
		keys[string(buf)] = struct{}{}
	}
	return keys
}
