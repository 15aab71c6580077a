// Package pointio reads tabular coordinate files into point collections.
// It resolves configured column names against a header row, parses cells
// into fixed-width coordinate tuples, and maps a configurable
// missing-value token to NaN. Ingestion is all-or-nothing: the first
// unresolvable column or unparsable cell aborts the read of the whole
// file.
package pointio
