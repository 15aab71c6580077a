package pointio

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// testContent returns a 25-row file with header ID;X;Y;Z and ids "1".."25".
func testContent() string {
	var sb strings.Builder
	sb.WriteString("ID;X;Y;Z\n")
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&sb, "%d;%d.5;%d.25;%d\n", i, i, i*2, i*3)
	}
	return sb.String()
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "points.csv", testContent())
	reader := NewCSVReader[float32]([]string{"X", "Y", "Z"}, "ID", DefaultOptions())

	collection, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	points := collection.Points()
	if points.Len() != 25 {
		t.Fatalf("Len() = %d, want 25", points.Len())
	}
	if points.Dim() != 3 {
		t.Fatalf("Dim() = %d, want 3", points.Dim())
	}
	ids := collection.IDs()
	if len(ids) != 25 {
		t.Fatalf("len(IDs()) = %d, want 25", len(ids))
	}
	for i, id := range ids {
		if id != fmt.Sprintf("%d", i+1) {
			t.Fatalf("IDs()[%d] = %q, want %q", i, id, fmt.Sprintf("%d", i+1))
		}
	}
	first := points.At(0)
	if first[0] != 1.5 || first[1] != 2.25 || first[2] != 3 {
		t.Fatalf("At(0) = %v, want [1.5 2.25 3]", first)
	}
}

func TestReadWithoutIDColumn(t *testing.T) {
	path := writeFile(t, "points.csv", "X;Y\n1;2\n3;4\n")
	reader := NewCSVReader[float64]([]string{"X", "Y"}, "", DefaultOptions())

	collection, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if collection.IDs() != nil {
		t.Fatalf("IDs() = %v, want nil", collection.IDs())
	}
	if collection.Points().Len() != 2 {
		t.Fatalf("Len() = %d, want 2", collection.Points().Len())
	}
}

func TestMissingValueToken(t *testing.T) {
	path := writeFile(t, "points.csv", "X;Y\n1;NA\n2;3\n")
	reader := NewCSVReader[float32]([]string{"X", "Y"}, "", DefaultOptions())

	collection, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if v := collection.Points().At(0)[1]; !math.IsNaN(float64(v)) {
		t.Fatalf("At(0)[1] = %v, want NaN", v)
	}
	if v := collection.Points().At(1)[1]; v != 3 {
		t.Fatalf("At(1)[1] = %v, want 3", v)
	}
}

func TestParseError(t *testing.T) {
	path := writeFile(t, "points.csv", "X;Y\n1;2\nabc;4\n")
	reader := NewCSVReader[float32]([]string{"X", "Y"}, "", DefaultOptions())

	_, err := reader.Read(path)
	var parse *ParseError
	if !errors.As(err, &parse) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if parse.Value != "abc" || parse.Column != "X" {
		t.Fatalf("ParseError = %+v, want Value \"abc\", Column \"X\"", parse)
	}
	if !strings.Contains(err.Error(), `"abc"`) {
		t.Fatalf("error %q does not mention the offending text", err)
	}
}

func TestColumnNotFound(t *testing.T) {
	// The rows are unparsable, proving resolution fails before row parsing.
	path := writeFile(t, "points.csv", "X;Y\nbad;row\n")
	reader := NewCSVReader[float32]([]string{"X", "Z"}, "", DefaultOptions())

	_, err := reader.Read(path)
	var column *ColumnError
	if !errors.As(err, &column) {
		t.Fatalf("error = %v, want *ColumnError", err)
	}
	if column.Column != "Z" {
		t.Fatalf("ColumnError.Column = %q, want %q", column.Column, "Z")
	}
}

func TestIDColumnNotFound(t *testing.T) {
	path := writeFile(t, "points.csv", "X;Y\n1;2\n")
	reader := NewCSVReader[float32]([]string{"X", "Y"}, "Name", DefaultOptions())

	_, err := reader.Read(path)
	var column *ColumnError
	if !errors.As(err, &column) {
		t.Fatalf("error = %v, want *ColumnError", err)
	}
	if column.Column != "Name" {
		t.Fatalf("ColumnError.Column = %q, want %q", column.Column, "Name")
	}
}

func TestColumnOrderDefinesCoordinateOrder(t *testing.T) {
	path := writeFile(t, "points.csv", "A;B\n1;2\n")
	reader := NewCSVReader[float32]([]string{"B", "A"}, "", DefaultOptions())

	collection, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	p := collection.Points().At(0)
	if p[0] != 2 || p[1] != 1 {
		t.Fatalf("At(0) = %v, want [2 1]", p)
	}
}

func TestCustomDelimiterAndToken(t *testing.T) {
	path := writeFile(t, "points.csv", "X,Y\n1,-\n2,3\n")
	reader := NewCSVReader[float32]([]string{"X", "Y"}, "", Options{Delimiter: ',', NoData: "-"})

	collection, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if v := collection.Points().At(0)[1]; !math.IsNaN(float64(v)) {
		t.Fatalf("At(0)[1] = %v, want NaN", v)
	}
}

func TestReadGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.csv.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(testContent())); err != nil {
		t.Fatalf("writing gzip: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing gzip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing file: %v", err)
	}

	reader := NewCSVReader[float32]([]string{"X", "Y", "Z"}, "ID", DefaultOptions())
	collection, err := reader.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if collection.Points().Len() != 25 {
		t.Fatalf("Len() = %d, want 25", collection.Points().Len())
	}
}

func TestReadMissingFile(t *testing.T) {
	reader := NewCSVReader[float32]([]string{"X"}, "", DefaultOptions())
	_, err := reader.Read(filepath.Join(t.TempDir(), "does-not-exist.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error = %v, want fs.ErrNotExist", err)
	}
}
