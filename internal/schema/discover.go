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

package schema

import (
	"fmt"
	"sort"

	rferrors "github.com/rowforgehq/rowforge/internal/errors"
	"github.com/rowforgehq/rowforge/internal/progress"
	"github.com/rowforgehq/rowforge/internal/record"
	"github.com/rowforgehq/rowforge/internal/textio"
)

// Result is the outcome of a discovery pass.
type Result struct {
	// Columns is the lexicographically sorted union of every column name
	// observed. Immutable once returned; it is the CSV header.
	Columns []string

	// Lines is the number of non-blank lines scanned. With a limit in
	// effect this is at most the limit.
	Lines int
}

// Discover streams the input once and returns the full column set. Each
// non-blank line is decoded and flattened under pol — the same policy the
// transform pass will use — and its keys are unioned into the result.
//
// limit > 0 stops after that many lines. Sampling trades accuracy for
// speed: a column first appearing after the limit will be missing from the
// header, and the transform pass will silently drop its data.
//
// A line that fails to decode aborts with a line-numbered error wrapping
// errors.ErrMalformedLine. An input with zero non-blank lines yields
// errors.ErrEmptyInput.
func Discover(lines *textio.Scanner, pol record.Policy, limit int, rep progress.Reporter) (*Result, error) {
	keys := make(map[string]struct{})
	count := 0

	for lines.Scan() {
		count++
		v, err := record.DecodeLine(lines.Bytes())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %v", count, rferrors.ErrMalformedLine, err)
		}

		flat, err := record.Flatten(v, pol)
		if err != nil {
			return nil, fmt.Errorf("line %d: failed to flatten record: %w", count, err)
		}
		for k := range flat {
			keys[k] = struct{}{}
		}

		rep.Step(1)
		if limit > 0 && count >= limit {
			break
		}
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if count == 0 {
		return nil, rferrors.ErrEmptyInput
	}

	columns := make([]string, 0, len(keys))
	for k := range keys {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	rep.Finish()
	return &Result{Columns: columns, Lines: count}, nil
}
