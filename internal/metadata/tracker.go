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

// Package metadata provides functionality for tracking and persisting
// metadata about convert runs. It records how many lines were scanned, how
// many columns were discovered (or loaded from a schema cache), how many
// rows were written, and how long each pass took.
//
// Metadata is saved as a JSON file next to the output, allowing external
// tools to analyze conversion history and performance.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Tracker collects statistics during a convert run and generates metadata.
// Create a new tracker at the start of the run, mark each pass as it
// completes, and call Generate at the end.
type Tracker struct {
	startTime       time.Time
	discoverDone    time.Time
	linesScanned    int
	columns         int
	schemaFromCache bool
	rowsWritten     int
	transformDone   time.Time
}

// New creates a new metadata tracker and initializes it with the current
// time. Call this before the discovery pass starts.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
	}
}

// DiscoveryComplete records the outcome of the discovery pass (or of a
// schema cache hit standing in for it).
func (t *Tracker) DiscoveryComplete(linesScanned, columns int, fromCache bool) {
	t.discoverDone = time.Now()
	t.linesScanned = linesScanned
	t.columns = columns
	t.schemaFromCache = fromCache
}

// TransformComplete records the outcome of the transform pass.
func (t *Tracker) TransformComplete(rowsWritten int) {
	t.transformDone = time.Now()
	t.rowsWritten = rowsWritten
}

// Generate creates a ConvertMetadata instance capturing the complete run.
// Call this after TransformComplete.
func (t *Tracker) Generate(toolVersion string, params ConvertParams) *ConvertMetadata {
	completedAt := t.transformDone
	if completedAt.IsZero() {
		completedAt = time.Now()
	}
	discoverDone := t.discoverDone
	if discoverDone.IsZero() {
		discoverDone = t.startTime
	}

	return &ConvertMetadata{
		ToolVersion: toolVersion,
		Parameters:  params,
		Results: ConvertResults{
			LinesScanned:      t.linesScanned,
			Columns:           t.columns,
			RowsWritten:       t.rowsWritten,
			SchemaFromCache:   t.schemaFromCache,
			DiscoverDuration:  discoverDone.Sub(t.startTime).String(),
			TransformDuration: completedAt.Sub(discoverDone).String(),
			StartedAt:         t.startTime,
			CompletedAt:       completedAt,
		},
	}
}

// MetadataPath returns the conventional metadata file path for an output
// file: the output path with ".meta.json" appended.
func MetadataPath(outputPath string) string {
	return outputPath + ".meta.json"
}

// Save writes the metadata record as indented JSON.
func Save(meta *ConvertMetadata, path string) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}
