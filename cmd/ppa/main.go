// Command ppa runs point pattern analysis over CSV point files.
//
// Usage:
//
//	ppa jaccard -p "data/*.csv" -o results -r reference.csv
//	ppa avg-nn -p "data/*.csv" -o results --index cover
//	ppa options.txt
//
// A single non-flag argument names an options file whose content is the
// full command line, split over any number of lines.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/spatialkit/ppa/analysis"
	"github.com/spatialkit/ppa/cli"
	"github.com/spatialkit/ppa/pointio"
	"github.com/spatialkit/ppa/store"
)

var (
	pattern   string
	output    string
	columns   []string
	idColumn  string
	delimiter string
	noData    string
	dbPath    string
	indexKind string
	refPath   string
	verbose   bool
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ppa",
		Short:         "point pattern analysis over CSV point files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			if utf8.RuneCountInString(delimiter) != 1 {
				return fmt.Errorf("delimiter must be a single character, got %q", delimiter)
			}
			return nil
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&pattern, "pattern", "p", "", "glob pattern selecting input CSV files")
	flags.StringVarP(&output, "output", "o", "", "output file name prefix")
	flags.StringSliceVar(&columns, "columns", []string{"X", "Y"}, "coordinate columns, in order")
	flags.StringVar(&idColumn, "id-column", "", "optional column holding point ids")
	flags.StringVar(&delimiter, "delimiter", ";", "CSV field delimiter")
	flags.StringVar(&noData, "na", "NA", "token marking a missing coordinate")
	flags.StringVar(&dbPath, "db", "", "optional SQLite database for persisting runs")
	flags.StringVar(&indexKind, "index", "auto", "nearest-neighbor index: auto, brute or cover")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	jaccard := &cobra.Command{
		Use:   "jaccard",
		Short: "Jaccard similarity of each input against a reference file",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := newReader()
			reference, err := reader.Read(refPath)
			if err != nil {
				return fmt.Errorf("reading reference %s: %w", refPath, err)
			}
			return runCommand(cmd, &analysis.JaccardCommand{
				Reference:       reference,
				ReferenceSource: refPath,
			})
		},
	}
	jaccard.Flags().StringVarP(&refPath, "ref", "r", "", "reference CSV file")
	_ = jaccard.MarkFlagRequired("ref")
	root.AddCommand(jaccard)

	avgnn := &cobra.Command{
		Use:   "avg-nn",
		Short: "average nearest-neighbor distance of each input",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, &analysis.AvgNNCommand{Index: analysis.IndexKind(indexKind)})
		},
	}
	root.AddCommand(avgnn)

	for _, name := range []string{"pattern", "output"} {
		_ = root.MarkPersistentFlagRequired(name)
	}
	return root
}

func newReader() pointio.Reader[float32] {
	options := pointio.Options{
		Delimiter: []rune(delimiter)[0],
		NoData:    noData,
	}
	return pointio.NewCSVReader[float32](columns, idColumn, options)
}

func runCommand(cmd *cobra.Command, command analysis.Command) error {
	runner := analysis.Runner{
		Reader:  newReader(),
		Command: command,
		Output:  output,
		Log:     slog.Default(),
	}
	if dbPath != "" {
		db, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening store %s: %w", dbPath, err)
		}
		defer db.Close()
		runner.Store = db
	}
	return runner.Run(cmd.Context(), pattern)
}

func isSubcommand(root *cobra.Command, name string) bool {
	if name == "help" || name == "completion" {
		return true
	}
	for _, c := range root.Commands() {
		if c.Name() == name {
			return true
		}
	}
	return false
}

func run() error {
	root := newRootCommand()
	args := os.Args[1:]
	// A single bare argument names an options file holding the real
	// command line.
	if len(args) == 1 && !strings.HasPrefix(args[0], "-") && !isSubcommand(root, args[0]) {
		loaded, err := cli.LoadArgsFile(args[0])
		if err != nil {
			return fmt.Errorf("loading options file %s: %w", args[0], err)
		}
		args = loaded
	}
	root.SetArgs(args)
	return root.Execute()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ppa:", err)
		os.Exit(1)
	}
}
