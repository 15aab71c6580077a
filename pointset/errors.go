package pointset

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRows is returned by FromRows when no non-empty row is supplied.
	ErrNoRows = errors.New("pointset: at least one non-empty row is required")

	// ErrNoColumns is returned by FromColumns when no non-empty column is
	// supplied.
	ErrNoColumns = errors.New("pointset: at least one non-empty column is required")
)

// ShapeError reports construction input that is internally inconsistent:
// a flat buffer whose length is not a multiple of the dimension, a ragged
// row, or a ragged column. It is always raised before any data is
// committed, so a failed constructor never leaves a partially built set.
type ShapeError struct {
	Subject  string // "data", "row", or "column"
	Length   int    // offending length
	Expected int    // dimension, or row count for columns
}

func (e *ShapeError) Error() string {
	switch e.Subject {
	case "row":
		return fmt.Sprintf("pointset: row length (%d) does not match dimension (%d)", e.Length, e.Expected)
	case "column":
		return fmt.Sprintf("pointset: column length (%d) does not match row count (%d)", e.Length, e.Expected)
	default:
		return fmt.Sprintf("pointset: data length (%d) is not a multiple of dimension (%d)", e.Length, e.Expected)
	}
}

// CardinalityError reports an identifier sequence whose length disagrees
// with the number of points it should label.
type CardinalityError struct {
	Points int
	IDs    int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("pointset: number of points (%d) does not match number of ids (%d)", e.Points, e.IDs)
}
