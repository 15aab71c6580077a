// Package bruteforce implements an exact nearest-neighbor index that
// scans every point. It is the correctness baseline for the accelerated
// structures and the default for small collections.
package bruteforce

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/spatialkit/ppa/pointset"
)

// Index is a simple brute-force euclidean nearest-neighbor index.
type Index struct {
	ids    []string
	points *pointset.Points[float32]
}

// Build loads ids and points. Points whose coordinates are not finite are
// kept but can never appear in query results.
func (i *Index) Build(ids []string, points *pointset.Points[float32]) error {
	if points == nil {
		return errors.New("bruteforce: points must not be nil")
	}
	if len(ids) != points.Len() {
		return fmt.Errorf("bruteforce: ids and points length mismatch: %d != %d", len(ids), points.Len())
	}
	i.ids = append([]string(nil), ids...)
	i.points = points
	return nil
}

// Nearest returns up to k matches by ascending euclidean distance.
func (i *Index) Nearest(query []float32, k int) ([]string, []float64, error) {
	if i.points == nil || i.points.Len() == 0 {
		return nil, nil, nil
	}
	if len(query) != i.points.Dim() {
		return nil, nil, fmt.Errorf("bruteforce: query dimension %d does not match index dimension %d", len(query), i.points.Dim())
	}
	type scored struct {
		idx  int
		dist float64
	}
	scoreds := make([]scored, 0, i.points.Len())
	for j, row := range i.points.All() {
		d := l2(query, row)
		if math.IsNaN(d) {
			continue
		}
		scoreds = append(scoreds, scored{idx: j, dist: d})
	}
	sort.Slice(scoreds, func(a, b int) bool { return scoreds[a].dist < scoreds[b].dist })
	if k <= 0 || k > len(scoreds) {
		k = len(scoreds)
	}
	outIDs := make([]string, k)
	outDists := make([]float64, k)
	for n := 0; n < k; n++ {
		outIDs[n] = i.ids[scoreds[n].idx]
		outDists[n] = scoreds[n].dist
	}
	return outIDs, outDists, nil
}

// MarshalBinary stores: dim(uint32), n(uint32), then for each point:
// idLen(uint32), id bytes, coordinates(float32[dim]).
func (i *Index) MarshalBinary() ([]byte, error) {
	if i.points == nil || i.points.Len() == 0 {
		buf := make([]byte, 8)
		return buf, nil
	}
	dim := i.points.Dim()
	size := 8
	for _, id := range i.ids {
		size += 4 + len(id) + 4*dim
	}
	out := make([]byte, 0, size)
	putU32 := func(v uint32) { out = binary.LittleEndian.AppendUint32(out, v) }
	putU32(uint32(dim))
	putU32(uint32(i.points.Len()))
	for idx, id := range i.ids {
		putU32(uint32(len(id)))
		out = append(out, id...)
		for _, v := range i.points.At(idx) {
			putU32(math.Float32bits(v))
		}
	}
	return out, nil
}

// UnmarshalBinary restores the index from bytes.
func (i *Index) UnmarshalBinary(data []byte) error {
	ids, flat, dim, err := decode(data)
	if err != nil {
		return err
	}
	if len(flat) == 0 {
		i.ids, i.points = nil, nil
		return nil
	}
	points, err := pointset.FromFlat(flat, dim)
	if err != nil {
		return err
	}
	return i.Build(ids, points)
}

func decode(data []byte) ([]string, []float32, int, error) {
	if len(data) < 8 {
		return nil, nil, 0, errors.New("bruteforce: invalid data")
	}
	off := 0
	getU32 := func() uint32 { v := binary.LittleEndian.Uint32(data[off : off+4]); off += 4; return v }
	dim := int(getU32())
	n := int(getU32())
	// Each point carries at least an id length prefix plus dim floats.
	// Reject headers promising more than the buffer holds before any
	// allocation is sized from them.
	minPoint := 4 + 4*dim
	if minPoint < 4 || (n > 0 && (len(data)-8)/minPoint < n) {
		return nil, nil, 0, errors.New("bruteforce: header exceeds data length")
	}
	ids := make([]string, 0, n)
	flat := make([]float32, 0, n*dim)
	for idx := 0; idx < n; idx++ {
		if off+4 > len(data) {
			return nil, nil, 0, errors.New("bruteforce: truncated")
		}
		idLen := int(getU32())
		if off+idLen > len(data) {
			return nil, nil, 0, errors.New("bruteforce: truncated id")
		}
		ids = append(ids, string(data[off:off+idLen]))
		off += idLen
		for j := 0; j < dim; j++ {
			if off+4 > len(data) {
				return nil, nil, 0, errors.New("bruteforce: truncated point")
			}
			flat = append(flat, math.Float32frombits(getU32()))
		}
	}
	return ids, flat, dim, nil
}

// IDs returns the ids loaded by Build, in point order.
func (i *Index) IDs() []string { return i.ids }

// Points returns the point set loaded by Build.
func (i *Index) Points() *pointset.Points[float32] { return i.points }

func l2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
