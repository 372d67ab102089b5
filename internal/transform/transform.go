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

// Package transform implements the second pass: re-streaming the input and
// emitting one CSV row per (expanded) record, projected onto the header the
// discovery pass produced. The two passes share nothing but the immutable
// column list and the flatten policy; peak memory stays at one decoded line
// plus the single expansion combination currently being written.
package transform

import (
	"fmt"
	"sort"

	rferrors "github.com/rowforgehq/rowforge/internal/errors"
	"github.com/rowforgehq/rowforge/internal/output"
	"github.com/rowforgehq/rowforge/internal/progress"
	"github.com/rowforgehq/rowforge/internal/record"
	"github.com/rowforgehq/rowforge/internal/textio"
)

// Run streams the input through flatten, explode and projection, writing
// the header and every data row to w. columns must be the discovery result
// for the same input under the same pol; explodeColumn must be the column
// NewPolicy was built with.
//
// In explode-all mode the keys to explode are chosen per record: every
// column whose value in that record is a live list, in sorted order for
// deterministic output. Records in which a list-typed column happens to
// hold a scalar are simply not exploded on that column; that is intended
// behavior, not an error.
//
// Run does not Close w; the caller owns the writer's lifecycle.
func Run(lines *textio.Scanner, w output.RowWriter, columns []string, pol record.Policy, explodeColumn string, rep progress.Reporter) error {
	if err := w.WriteHeader(columns); err != nil {
		return err
	}

	count := 0
	for lines.Scan() {
		count++
		v, err := record.DecodeLine(lines.Bytes())
		if err != nil {
			return fmt.Errorf("line %d: %w: %v", count, rferrors.ErrMalformedLine, err)
		}

		flat, err := record.Flatten(v, pol)
		if err != nil {
			return fmt.Errorf("line %d: failed to flatten record: %w", count, err)
		}

		for row := range record.Expand(flat, explodeKeysFor(flat, pol, explodeColumn)) {
			cells, cellErr := project(row, columns)
			if cellErr != nil {
				return fmt.Errorf("line %d: %w", count, cellErr)
			}
			if writeErr := w.WriteRow(cells); writeErr != nil {
				return writeErr
			}
			rep.Step(1)
		}
	}
	if err := lines.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	rep.Finish()
	return nil
}

// explodeKeysFor selects the explode keys for one record: the fixed single
// column when one was configured, or every live-list column in explode-all
// mode. The dynamic set is sorted because Go map iteration would otherwise
// make the cartesian ordering differ between runs.
func explodeKeysFor(rec record.Flat, pol record.Policy, explodeColumn string) []string {
	switch {
	case pol.ExplodeAll:
		var keys []string
		for k, v := range rec {
			if _, isList := v.([]any); isList {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		return keys
	case explodeColumn != "":
		return []string{explodeColumn}
	default:
		return nil
	}
}

// project orders a row's values by the header, filling absent columns with
// empty cells.
func project(row record.Flat, columns []string) ([]string, error) {
	cells := make([]string, len(columns))
	for i, col := range columns {
		v, ok := row[col]
		if !ok {
			continue
		}
		cell, err := record.Cell(v)
		if err != nil {
			return nil, fmt.Errorf("cannot convert column %q to string: %w", col, err)
		}
		cells[i] = cell
	}
	return cells, nil
}
