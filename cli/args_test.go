package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitArgs(t *testing.T) {
	args, err := SplitArgs(`jaccard -p "data dir/*.csv" -o out --columns X,Y`)
	if err != nil {
		t.Fatalf("SplitArgs: %v", err)
	}
	want := []string{"jaccard", "-p", "data dir/*.csv", "-o", "out", "--columns", "X,Y"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("got %v, want %v", args, want)
	}
}

func TestSplitArgsTrimsQuotedTokens(t *testing.T) {
	args, err := SplitArgs(`-p " data dir/x.csv " -o out`)
	if err != nil {
		t.Fatalf("SplitArgs: %v", err)
	}
	want := []string{"-p", "data dir/x.csv", "-o", "out"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("got %v, want %v", args, want)
	}
}

func TestSplitArgsEmpty(t *testing.T) {
	args, err := SplitArgs("   ")
	if err != nil {
		t.Fatalf("SplitArgs: %v", err)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestSplitArgsUnterminatedQuote(t *testing.T) {
	if _, err := SplitArgs(`-p "unclosed`); err == nil {
		t.Fatal("expected error for unterminated quote")
	}
}

func TestLoadArgsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "args.txt")
	content := "avg-nn -p *.csv\n-o results\r\n--index cover\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	args, err := LoadArgsFile(path)
	if err != nil {
		t.Fatalf("LoadArgsFile: %v", err)
	}
	want := []string{"avg-nn", "-p", "*.csv", "-o", "results", "--index", "cover"}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("got %v, want %v", args, want)
	}
}

func TestLoadArgsFileMissing(t *testing.T) {
	if _, err := LoadArgsFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
