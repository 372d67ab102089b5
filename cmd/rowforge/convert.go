// Copyright 2025 RowForge, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rowforgehq/rowforge/internal/config"
	rferrors "github.com/rowforgehq/rowforge/internal/errors"
	"github.com/rowforgehq/rowforge/internal/metadata"
	"github.com/rowforgehq/rowforge/internal/output"
	"github.com/rowforgehq/rowforge/internal/progress"
	"github.com/rowforgehq/rowforge/internal/record"
	"github.com/rowforgehq/rowforge/internal/schema"
	"github.com/rowforgehq/rowforge/internal/textio"
	"github.com/rowforgehq/rowforge/internal/transform"
	"github.com/rowforgehq/rowforge/pkg/version"
)

// newConvertCommand builds the convert command
func newConvertCommand() *cobra.Command {
	var (
		configFile    string
		outputFile    string
		flatten       bool
		explodeColumn string
		explodeAll    bool
		discoverLimit int
		progressEvery int
		schemaFile    string
		writeMetadata bool
		quiet         bool
	)

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert an NDJSON file to CSV",
		Long: `Convert an NDJSON file (one JSON value per line) into rectangular CSV.

The input may be plain text or gzip-compressed; compression is selected by
the .gz file extension on either the input or the output path. The full
input is read twice: once to discover the complete set of columns, once to
write the rows, so memory use is bounded by the largest single line.

Nested objects become dotted column names with --flatten. List values are
kept CSV-safe as compact JSON strings unless a column is exploded:
--explode-column duplicates a record into one row per list element, and
--explode-all does so for every list column at once (cartesian product, so
row counts multiply).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}

			opts := &config.Options{
				Input:         args[0],
				Output:        outputFile,
				Flatten:       flatten,
				ExplodeColumn: explodeColumn,
				ExplodeAll:    explodeAll,
				DiscoverLimit: discoverLimit,
				ProgressEvery: cfg.Defaults.ProgressEvery,
				MaxLineBytes:  cfg.MaxLineBytes(),
				SchemaFile:    schemaFile,
				WriteMetadata: writeMetadata,
				Quiet:         quiet || cfg.Defaults.NoProgress,
			}
			if cmd.Flags().Changed("progress-every") {
				opts.ProgressEvery = progressEvery
			}

			if err := opts.Validate(); err != nil {
				return err
			}
			return runConvert(opts)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Config file path (default: standard locations)")
	cmd.Flags().StringVar(&outputFile, "output", "", "Output CSV path, .gz to compress (default: stdout)")
	cmd.Flags().BoolVar(&flatten, "flatten", false, "Flatten nested objects to dotted columns")
	cmd.Flags().StringVar(&explodeColumn, "explode-column", "", "Explode a single list column (e.g. \"tags\")")
	cmd.Flags().BoolVar(&explodeAll, "explode-all", false, "Explode all list columns (cartesian product)")
	cmd.Flags().IntVar(&discoverLimit, "discover-limit", 0, "Scan only the first N lines to build the header")
	cmd.Flags().IntVar(&progressEvery, "progress-every", 0, "Log progress every N rows in non-interactive runs (0 to disable)")
	cmd.Flags().StringVar(&schemaFile, "schema-file", "", "Cache the discovered header here and reuse it on later runs")
	cmd.Flags().BoolVar(&writeMetadata, "metadata", false, "Write a <output>.meta.json record of the run")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress progress and summary output")

	return cmd
}

// runConvert executes both passes of the conversion
func runConvert(opts *config.Options) error {
	if _, err := os.Stat(opts.Input); err != nil {
		return fmt.Errorf("%w: %s", rferrors.ErrInputNotFound, opts.Input)
	}

	// The single policy both passes share. Building it once is what keeps
	// the header pass and the data pass agreeing on list retention.
	pol := record.NewPolicy(opts.Flatten, opts.ExplodeColumn, opts.ExplodeAll)

	tracker := metadata.New()

	columns, err := resolveColumns(opts, pol, tracker)
	if err != nil {
		return err
	}

	writer, err := newRowWriter(opts.Output)
	if err != nil {
		return err
	}

	if err := runTransform(opts, pol, columns, writer); err != nil {
		writer.Close()
		return err
	}
	rows := writer.Count()
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize output: %w", err)
	}
	tracker.TransformComplete(rows)

	if opts.WriteMetadata {
		meta := tracker.Generate(version.Version, metadata.ConvertParams{
			Input:         opts.Input,
			Output:        opts.Output,
			Flatten:       opts.Flatten,
			ExplodeColumn: opts.ExplodeColumn,
			ExplodeAll:    opts.ExplodeAll,
			DiscoverLimit: opts.DiscoverLimit,
		})
		if err := metadata.Save(meta, metadata.MetadataPath(opts.Output)); err != nil {
			return err
		}
	}

	if !opts.Quiet {
		dest := opts.Output
		if dest == "" {
			dest = "stdout"
		}
		fmt.Fprintf(os.Stderr, "Wrote %d rows across %d columns to %s\n", rows, len(columns), dest)
	}
	return nil
}

// resolveColumns returns the header, either from a valid schema cache or by
// running the discovery pass (and refreshing the cache afterwards).
func resolveColumns(opts *config.Options, pol record.Policy, tracker *metadata.Tracker) ([]string, error) {
	if opts.SchemaFile != "" {
		if cached, err := schema.LoadCache(opts.SchemaFile); err == nil {
			if cached.Matches(opts.Input, pol, opts.ExplodeColumn, opts.DiscoverLimit) {
				tracker.DiscoveryComplete(cached.Lines, len(cached.Columns), true)
				if !opts.Quiet {
					fmt.Fprintf(os.Stderr, "Reusing %d columns from %s\n", len(cached.Columns), opts.SchemaFile)
				}
				return cached.Columns, nil
			}
		}
		// Invalid, stale or missing cache: fall through to discovery.
	}

	in, err := textio.OpenReader(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	rep := newReporter(opts, "pass 1: scanning columns")
	result, err := schema.Discover(textio.NewScanner(in, opts.MaxLineBytes), pol, opts.DiscoverLimit, rep)
	if err != nil {
		return nil, err
	}
	tracker.DiscoveryComplete(result.Lines, len(result.Columns), false)

	if opts.SchemaFile != "" {
		cache := &schema.Cache{
			Input:         opts.Input,
			Flatten:       opts.Flatten,
			ExplodeColumn: opts.ExplodeColumn,
			ExplodeAll:    opts.ExplodeAll,
			DiscoverLimit: opts.DiscoverLimit,
			Lines:         result.Lines,
			CreatedAt:     time.Now(),
			Columns:       result.Columns,
		}
		if err := schema.SaveCache(cache, opts.SchemaFile); err != nil {
			return nil, err
		}
	}

	return result.Columns, nil
}

// runTransform re-streams the input and writes all CSV rows.
func runTransform(opts *config.Options, pol record.Policy, columns []string, writer output.RowWriter) error {
	in, err := textio.OpenReader(opts.Input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	rep := newReporter(opts, "pass 2: writing rows")
	return transform.Run(textio.NewScanner(in, opts.MaxLineBytes), writer, columns, pol, opts.ExplodeColumn, rep)
}

// newRowWriter selects stdout or a file sink for the CSV output.
func newRowWriter(outputFile string) (output.RowWriter, error) {
	if outputFile == "" {
		return output.NewWriter(os.Stdout), nil
	}
	w, err := output.NewFileWriter(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return w, nil
}

// newReporter picks the progress style for a pass: an interactive bar on a
// terminal, interval logging otherwise, nothing when quiet.
func newReporter(opts *config.Options, label string) progress.Reporter {
	if opts.Quiet {
		return progress.Nop()
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return progress.NewBar(label, -1)
	}
	if opts.ProgressEvery > 0 {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
		return progress.NewLog(log, label, opts.ProgressEvery)
	}
	return progress.Nop()
}
