package pointio

import "github.com/spatialkit/ppa/pointset"

// Options control how a delimited text file is interpreted. Neither the
// delimiter nor the missing-value token is auto-detected.
type Options struct {
	// Delimiter separates fields within a row.
	Delimiter rune

	// NoData is the literal cell text denoting an absent measurement. It is
	// compared against the raw cell before any numeric parse is attempted
	// and maps to NaN.
	NoData string
}

// DefaultOptions returns the conventional file format: semicolon-delimited
// fields with "NA" marking missing values.
func DefaultOptions() Options {
	return Options{Delimiter: ';', NoData: "NA"}
}

// Reader turns one file into a point collection. Alternative formats can
// implement it without touching the data model.
type Reader[T pointset.Float] interface {
	Read(path string) (*pointset.Collection[T], error)
}
