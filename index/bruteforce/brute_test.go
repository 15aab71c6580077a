package bruteforce

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/spatialkit/ppa/pointset"
)

func buildIndex(t *testing.T, rows [][]float32, ids []string) *Index {
	t.Helper()
	points, err := pointset.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	idx := &Index{}
	if err := idx.Build(ids, points); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return idx
}

func TestNearestOrdering(t *testing.T) {
	idx := buildIndex(t,
		[][]float32{{0, 0}, {3, 4}, {1, 0}, {10, 10}},
		[]string{"origin", "far", "near", "farthest"},
	)

	ids, dists, err := idx.Nearest([]float32{0, 0}, 3)
	if err != nil {
		t.Fatalf("Nearest failed: %v", err)
	}
	want := []string{"origin", "near", "far"}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
	if dists[0] != 0 || dists[1] != 1 || dists[2] != 5 {
		t.Fatalf("dists = %v, want [0 1 5]", dists)
	}
}

func TestNearestDimensionMismatch(t *testing.T) {
	idx := buildIndex(t, [][]float32{{0, 0}}, []string{"a"})
	if _, _, err := idx.Nearest([]float32{0, 0, 0}, 1); err == nil {
		t.Fatal("Nearest accepted a query of the wrong dimension")
	}
}

func TestBuildLengthMismatch(t *testing.T) {
	points, err := pointset.FromRows([][]float32{{0, 0}, {1, 1}})
	if err != nil {
		t.Fatalf("FromRows failed: %v", err)
	}
	idx := &Index{}
	if err := idx.Build([]string{"only"}, points); err == nil {
		t.Fatal("Build accepted mismatched ids and points")
	}
}

func TestNearestSkipsNaN(t *testing.T) {
	nan := float32(math.NaN())
	idx := buildIndex(t,
		[][]float32{{0, 0}, {nan, 1}, {2, 0}},
		[]string{"a", "missing", "b"},
	)

	ids, _, err := idx.Nearest([]float32{0, 0}, 3)
	if err != nil {
		t.Fatalf("Nearest failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want 2 finite matches", ids)
	}
	for _, id := range ids {
		if id == "missing" {
			t.Fatalf("ids = %v includes the NaN point", ids)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	idx := buildIndex(t,
		[][]float32{{0, 0}, {3, 4}, {1, 0}},
		[]string{"a", "b", "c"},
	)

	data, err := idx.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	restored := &Index{}
	if err := restored.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary failed: %v", err)
	}

	ids, dists, err := restored.Nearest([]float32{0, 0}, 2)
	if err != nil {
		t.Fatalf("Nearest failed: %v", err)
	}
	if ids[0] != "a" || ids[1] != "c" {
		t.Fatalf("ids = %v, want [a c]", ids)
	}
	if dists[0] != 0 || dists[1] != 1 {
		t.Fatalf("dists = %v, want [0 1]", dists)
	}
}

func TestUnmarshalEmpty(t *testing.T) {
	empty := &Index{}
	data, err := empty.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	restored := &Index{}
	if err := restored.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary failed: %v", err)
	}
	ids, _, err := restored.Nearest([]float32{0}, 1)
	if err != nil || ids != nil {
		t.Fatalf("Nearest on empty index = %v, %v; want nil, nil", ids, err)
	}
}

func TestUnmarshalRejectsOversizedHeader(t *testing.T) {
	for name, header := range map[string][2]uint32{
		"huge count":     {2, math.MaxUint32},
		"huge dimension": {math.MaxUint32, 2},
		"both huge":      {math.MaxUint32, math.MaxUint32},
	} {
		data := make([]byte, 8)
		binary.LittleEndian.PutUint32(data[0:], header[0])
		binary.LittleEndian.PutUint32(data[4:], header[1])
		restored := &Index{}
		if err := restored.UnmarshalBinary(data); err == nil {
			t.Fatalf("%s: expected error for header dim=%d n=%d", name, header[0], header[1])
		}
	}
}

func TestUnmarshalTruncatedPayload(t *testing.T) {
	idx := buildIndex(t, [][]float32{{1, 2}, {3, 4}}, []string{"a", "b"})
	data, err := idx.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	restored := &Index{}
	if err := restored.UnmarshalBinary(data[:len(data)-3]); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}
