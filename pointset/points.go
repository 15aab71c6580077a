package pointset

import (
	"fmt"
	"iter"
)

// Float constrains the coordinate element types supported by a point set.
type Float interface {
	~float32 | ~float64
}

// Points holds N points of a fixed dimension as one contiguous row-major
// buffer: point i occupies data[i*dim : (i+1)*dim]. The flat layout avoids
// per-point allocations and keeps iteration cache-friendly for downstream
// distance computations.
//
// The buffer length is a multiple of dim at all times. Points grows only by
// whole rows; no single-coordinate writes are exposed beyond the row slice
// returned by At.
type Points[T Float] struct {
	data []T
	dim  int
}

// Empty returns a point set with zero points and the given dimension.
// dim must be positive; this is a caller-controlled precondition, not a
// runtime-checked error.
func Empty[T Float](dim int) *Points[T] {
	return &Points[T]{dim: dim}
}

// FromFlat builds a point set from an already flattened buffer whose length
// must be a multiple of dim; consecutive dim-sized slices become the points,
// in order. The buffer is adopted, not copied.
func FromFlat[T Float](data []T, dim int) (*Points[T], error) {
	if dim <= 0 || len(data)%dim != 0 {
		return nil, &ShapeError{Subject: "data", Length: len(data), Expected: dim}
	}
	return &Points[T]{data: data, dim: dim}, nil
}

// FromRows builds a point set from per-point coordinate slices. The
// dimension is taken from the first row; the call fails on the first row
// whose length differs, with no partial result observable.
func FromRows[T Float](rows [][]T) (*Points[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrNoRows
	}
	dim := len(rows[0])
	data := make([]T, 0, len(rows)*dim)
	for _, row := range rows {
		if len(row) != dim {
			return nil, &ShapeError{Subject: "row", Length: len(row), Expected: dim}
		}
		data = append(data, row...)
	}
	return &Points[T]{data: data, dim: dim}, nil
}

// FromColumns builds a point set from per-coordinate columns, transposing
// the column-major input into the internal row-major layout. All columns
// must have equal length; point i takes index i of each column, in column
// order, so the dimension equals the number of columns.
func FromColumns[T Float](columns [][]T) (*Points[T], error) {
	if len(columns) == 0 || len(columns[0]) == 0 {
		return nil, ErrNoColumns
	}
	dim := len(columns)
	rows := len(columns[0])
	for _, column := range columns {
		if len(column) != rows {
			return nil, &ShapeError{Subject: "column", Length: len(column), Expected: rows}
		}
	}
	data := make([]T, dim*rows)
	for i, column := range columns {
		for j, v := range column {
			data[j*dim+i] = v
		}
	}
	return &Points[T]{data: data, dim: dim}, nil
}

// Len returns the number of points.
func (p *Points[T]) Len() int { return len(p.data) / p.dim }

// Dim returns the fixed per-point dimension.
func (p *Points[T]) Dim() int { return p.dim }

// Append adds one point. The row length must equal Dim; a mismatch is a
// caller bug and panics rather than truncating or padding.
func (p *Points[T]) Append(row []T) {
	if len(row) != p.dim {
		panic(fmt.Sprintf("pointset: appended row length (%d) does not match dimension (%d)", len(row), p.dim))
	}
	p.data = append(p.data, row...)
}

// At returns the dim-length coordinate slice of point i, backed by the
// internal buffer. i must be below Len; out-of-range access panics.
func (p *Points[T]) At(i int) []T {
	start := i * p.dim
	return p.data[start : start+p.dim : start+p.dim]
}

// All iterates the points in insertion order as (index, coordinates)
// pairs. The sequence is finite and restartable; the yielded slices alias
// the internal buffer.
func (p *Points[T]) All() iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		for i := 0; i < p.Len(); i++ {
			if !yield(i, p.At(i)) {
				return
			}
		}
	}
}

// Flat returns the underlying row-major buffer.
func (p *Points[T]) Flat() []T { return p.data }
