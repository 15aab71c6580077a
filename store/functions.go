package store

import (
	"database/sql/driver"
	"fmt"
	"math"

	sqlite "modernc.org/sqlite"
)

// RegisterPointFunctions registers point_l2 and point_cosine with the
// driver so they are available on connections opened after this call.
// Registration is idempotent; the driver rejects duplicates and we
// ignore that error.
func RegisterPointFunctions() {
	_ = sqlite.RegisterDeterministicScalarFunction("point_l2", 2, pointL2Impl)
	_ = sqlite.RegisterDeterministicScalarFunction("point_cosine", 2, pointCosineImpl)
}

func asPoint(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return DecodeFloats(v)
	default:
		return nil, fmt.Errorf("store: unsupported argument type %T for point; want BLOB", arg)
	}
}

func pointL2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("point_l2: expected 2 arguments, got %d", len(args))
	}
	a, err := asPoint(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asPoint(args[1])
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, nil
	}
	return l2(a, b)
}

func pointCosineImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("point_cosine: expected 2 arguments, got %d", len(args))
	}
	a, err := asPoint(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asPoint(args[1])
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil {
		return nil, nil
	}
	return cosine(a, b)
}

func l2(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("store: l2 dim mismatch %d vs %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

func cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("store: cosine dim mismatch %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("store: cosine on empty points")
	}
	var dot, na2, nb2 float64
	for i := range a {
		va, vb := float64(a[i]), float64(b[i])
		dot += va * vb
		na2 += va * va
		nb2 += vb * vb
	}
	if na2 == 0 || nb2 == 0 {
		return 0, fmt.Errorf("store: cosine on zero-magnitude point")
	}
	return dot / (math.Sqrt(na2) * math.Sqrt(nb2)), nil
}
