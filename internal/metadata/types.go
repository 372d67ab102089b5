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

// Package metadata types define the structures used for recording
// information about convert runs. These records capture the parameters and
// results of each conversion for audit and troubleshooting.
package metadata

import (
	"time"
)

// ConvertMetadata represents the complete metadata record for a single
// convert run. It captures what was converted, under which settings, and
// the results, so a conversion can be reproduced or investigated later.
type ConvertMetadata struct {
	ToolVersion string         `json:"tool_version"`
	Parameters  ConvertParams  `json:"parameters"`
	Results     ConvertResults `json:"results"`
}

// ConvertParams captures the input parameters used for a convert run.
type ConvertParams struct {
	Input         string `json:"input"`
	Output        string `json:"output"`
	Flatten       bool   `json:"flatten"`
	ExplodeColumn string `json:"explode_column,omitempty"`
	ExplodeAll    bool   `json:"explode_all"`
	DiscoverLimit int    `json:"discover_limit,omitempty"`
}

// ConvertResults contains the statistics of a completed convert run:
// per-pass counters and durations plus overall timing.
type ConvertResults struct {
	LinesScanned      int       `json:"lines_scanned"`
	Columns           int       `json:"columns"`
	RowsWritten       int       `json:"rows_written"`
	SchemaFromCache   bool      `json:"schema_from_cache"`
	DiscoverDuration  string    `json:"discover_duration"`
	TransformDuration string    `json:"transform_duration"`
	StartedAt         time.Time `json:"started_at"`
	CompletedAt       time.Time `json:"completed_at"`
}
