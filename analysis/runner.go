package analysis

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spatialkit/ppa/pointio"
	"github.com/spatialkit/ppa/pointset"
	"github.com/spatialkit/ppa/store"
)

// Runner drives one command over every file matched by a search pattern.
// It writes one result row per input file to "<Output>-<command>.csv" and,
// when a store is configured, persists the ingested collections and the
// analysis runs.
type Runner struct {
	Reader  pointio.Reader[float32]
	Command Command
	// Output is the output file name prefix.
	Output string
	// Store is optional; nil disables persistence.
	Store *store.Store
	Log   *slog.Logger
}

// Run expands pattern, processes each matched file in lexical order, and
// writes the result table. The first failing file aborts the run; there is
// no partial-success mode within a file.
func (r *Runner) Run(ctx context.Context, pattern string) error {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}

	paths, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("analysis: invalid pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("analysis: pattern %q matched no files", pattern)
	}
	sort.Strings(paths)

	referenceID, err := r.saveReference(ctx)
	if err != nil {
		return err
	}

	outPath := fmt.Sprintf("%s-%s.csv", r.Output, r.Command.Name())
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	w.Comma = ';'
	if err := w.Write([]string{"file", "points", "dim", "value", "mean", "std", "min", "max", "count"}); err != nil {
		return err
	}

	for _, path := range paths {
		collection, err := r.Reader.Read(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		log.Debug("file ingested",
			"file", path,
			"points", collection.Points().Len(),
			"dim", collection.Points().Dim(),
		)

		result, err := r.Command.Execute(collection)
		if err != nil {
			return fmt.Errorf("%s on %s: %w", r.Command.Name(), path, err)
		}
		log.Info("command executed", "command", result.Command, "file", path, "value", result.Value)

		if r.Store != nil {
			if err := r.persist(ctx, path, collection, result, referenceID); err != nil {
				return err
			}
		}
		if err := w.Write(resultRow(path, collection, result)); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	log.Info("results written", "file", outPath, "files", len(paths))
	return nil
}

// saveReference persists the reference collection of a jaccard run, when
// both a reference and a store are present.
func (r *Runner) saveReference(ctx context.Context) (string, error) {
	if r.Store == nil {
		return "", nil
	}
	jc, ok := r.Command.(*JaccardCommand)
	if !ok {
		return "", nil
	}
	id, err := r.Store.SaveCollection(ctx, jc.ReferenceSource, jc.Reference)
	if err != nil {
		return "", fmt.Errorf("persisting reference collection: %w", err)
	}
	return id, nil
}

func (r *Runner) persist(ctx context.Context, path string, collection *pointset.Collection[float32], result *Result, referenceID string) error {
	collectionID, err := r.Store.SaveCollection(ctx, path, collection)
	if err != nil {
		return fmt.Errorf("persisting collection %s: %w", path, err)
	}
	run := &store.Run{
		Command:      result.Command,
		CollectionID: collectionID,
		ReferenceID:  referenceID,
		Value:        result.Value,
	}
	if result.Summary != nil {
		summary, err := json.Marshal(result.Summary)
		if err != nil {
			return err
		}
		run.Summary = string(summary)
	}
	if _, err := r.Store.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("persisting run for %s: %w", path, err)
	}
	return nil
}

func resultRow(path string, collection *pointset.Collection[float32], result *Result) []string {
	row := []string{
		path,
		strconv.Itoa(collection.Points().Len()),
		strconv.Itoa(collection.Points().Dim()),
		formatFloat(result.Value),
	}
	if s := result.Summary; s != nil {
		row = append(row,
			formatFloat(s.Mean), formatFloat(s.Std), formatFloat(s.Min), formatFloat(s.Max),
			strconv.Itoa(s.Count),
		)
	} else {
		row = append(row, "", "", "", "", "")
	}
	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
