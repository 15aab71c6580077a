package pointio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/spatialkit/ppa/pointset"
)

// CSVReader parses delimited text files with one header row into point
// collections. The ordered coordinate column names define the output
// dimension and coordinate order; an optional identifier column supplies
// per-point labels, read verbatim.
type CSVReader[T pointset.Float] struct {
	columns  []string
	idColumn string
	options  Options
}

var _ Reader[float32] = (*CSVReader[float32])(nil)

// NewCSVReader configures a reader for the given coordinate columns. An
// empty idColumn means the produced collections carry no identifiers.
func NewCSVReader[T pointset.Float](columns []string, idColumn string, options Options) *CSVReader[T] {
	return &CSVReader[T]{
		columns:  append([]string(nil), columns...),
		idColumn: idColumn,
		options:  options,
	}
}

// Read opens path and parses it into a collection. Files ending in ".gz"
// are transparently decompressed. File-system and decode failures are
// surfaced verbatim; schema and content failures are reported as
// *ColumnError and *ParseError, all terminal for this read.
func (r *CSVReader[T]) Read(path string) (*pointset.Collection[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		src = zr
	}
	return r.ReadFrom(src)
}

// ReadFrom parses an already opened stream. The first record is the
// header row.
func (r *CSVReader[T]) ReadFrom(src io.Reader) (*pointset.Collection[T], error) {
	if len(r.columns) == 0 {
		return nil, fmt.Errorf("pointio: at least one coordinate column is required")
	}

	cr := csv.NewReader(src)
	cr.Comma = r.options.Delimiter

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}

	idIndex := -1
	if r.idColumn != "" {
		if idIndex, err = columnIndex(header, r.idColumn); err != nil {
			return nil, err
		}
	}
	columnIndexes := make([]int, len(r.columns))
	for i, column := range r.columns {
		if columnIndexes[i], err = columnIndex(header, column); err != nil {
			return nil, err
		}
	}

	points := pointset.Empty[T](len(columnIndexes))
	var ids []string
	if idIndex >= 0 {
		ids = []string{}
	}
	row := make([]T, len(columnIndexes))
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if idIndex >= 0 {
			ids = append(ids, record[idIndex])
		}
		for i, ci := range columnIndexes {
			cell := record[ci]
			if cell == r.options.NoData {
				row[i] = T(math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, &ParseError{Value: cell, Column: r.columns[i], cause: err}
			}
			row[i] = T(v)
		}
		points.Append(row)
	}

	// Rows and ids grow in lock-step, so this cannot fail.
	return pointset.NewCollection(points, ids)
}

func columnIndex(header []string, column string) (int, error) {
	for i, name := range header {
		if name == column {
			return i, nil
		}
	}
	return -1, &ColumnError{Column: column}
}
