package analysis

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/spatialkit/ppa/index"
	"github.com/spatialkit/ppa/index/bruteforce"
	"github.com/spatialkit/ppa/index/cover"
	"github.com/spatialkit/ppa/pointset"
)

// IndexKind selects the nearest-neighbor structure backing avg-nn.
type IndexKind string

const (
	// IndexKindAuto picks brute force for small collections and the cover
	// tree above autoCoverThreshold points.
	IndexKindAuto  IndexKind = "auto"
	IndexKindBrute IndexKind = "brute"
	IndexKindCover IndexKind = "cover"
)

const autoCoverThreshold = 2048

// AvgNNCommand computes the average nearest-neighbor distance of each
// input collection.
type AvgNNCommand struct {
	Index IndexKind
}

// Name implements Command.
func (c *AvgNNCommand) Name() string { return "avg-nn" }

// Execute implements Command.
func (c *AvgNNCommand) Execute(col *pointset.Collection[float32]) (*Result, error) {
	return AvgNN(col, c.Index)
}

// AvgNN returns the mean distance from every point to its nearest other
// point, with the distribution summary. The collection must contain at
// least two points; points with missing (NaN) coordinates have no defined
// distance and are left out of the distribution.
func AvgNN(col *pointset.Collection[float32], kind IndexKind) (*Result, error) {
	points := col.Points()
	if points.Len() < 2 {
		return nil, fmt.Errorf("analysis: avg-nn requires at least two points, got %d", points.Len())
	}

	// Positional labels keep self-matches identifiable even when the
	// collection's own ids repeat.
	labels := make([]string, points.Len())
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	idx, err := newIndex(kind, points.Len())
	if err != nil {
		return nil, err
	}
	if err := idx.Build(labels, points); err != nil {
		return nil, err
	}

	dists := make([]float64, 0, points.Len())
	for i, row := range points.All() {
		if !finite(row) {
			continue
		}
		matchLabels, matchDists, err := idx.Nearest(row, 2)
		if err != nil {
			return nil, err
		}
		for j, label := range matchLabels {
			if label != labels[i] {
				dists = append(dists, matchDists[j])
				break
			}
		}
	}
	if len(dists) == 0 {
		return nil, fmt.Errorf("analysis: avg-nn found no finite nearest-neighbor distances")
	}

	mean := stat.Mean(dists, nil)
	summary := &Summary{
		Mean:  mean,
		Std:   stat.StdDev(dists, nil),
		Min:   floats.Min(dists),
		Max:   floats.Max(dists),
		Count: len(dists),
	}
	return &Result{Command: "avg-nn", Value: mean, Summary: summary}, nil
}

func newIndex(kind IndexKind, n int) (index.Index, error) {
	switch kind {
	case IndexKindAuto, "":
		if n > autoCoverThreshold {
			return cover.New(cover.Options{}), nil
		}
		return &bruteforce.Index{}, nil
	case IndexKindBrute:
		return &bruteforce.Index{}, nil
	case IndexKindCover:
		return cover.New(cover.Options{}), nil
	default:
		return nil, fmt.Errorf("analysis: unknown index kind %q", kind)
	}
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
