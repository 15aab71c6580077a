package pointio

import "fmt"

// ColumnError reports a requested column name absent from the header row.
// Resolution is fail-fast, so only the first missing column is reported
// per read.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("pointio: column %q not found", e.Column)
}

// ParseError reports a coordinate cell that is neither the configured
// missing-value token nor a valid base-10 float. One bad cell invalidates
// the ingestion of the whole file.
//
// The underlying strconv error can be accessed via errors.Unwrap.
type ParseError struct {
	Value  string
	Column string
	cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pointio: unable to parse value %q in column %q as float", e.Value, e.Column)
}

func (e *ParseError) Unwrap() error { return e.cause }
