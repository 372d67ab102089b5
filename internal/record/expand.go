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

package record

import (
	"iter"
	"slices"
	"strings"
)

// Expand yields one row per combination of the explode keys' values: the
// cartesian product across all explode keys, in the given key order, with
// the last key's values varying fastest. Each yielded row is the record's
// non-exploded keys merged with one combination.
//
// With no explode keys the record itself is yielded once, unchanged.
//
// The sequence is lazy and single-use: combinations are built one at a time,
// so a record with N explode keys of lengths L1..Ln produces exactly
// L1*...*Ln rows without ever materializing them together. That product is
// also the capacity hazard of exploding many long lists at once; callers
// stream rows out as they are produced for exactly this reason.
func Expand(rec Flat, explodeKeys []string) iter.Seq[Flat] {
	return func(yield func(Flat) bool) {
		if len(explodeKeys) == 0 {
			yield(rec)
			return
		}

		base := make(Flat, len(rec))
		for k, v := range rec {
			if !slices.Contains(explodeKeys, k) {
				base[k] = v
			}
		}

		values := make([][]any, len(explodeKeys))
		for i, k := range explodeKeys {
			values[i] = valueList(rec, k)
			if len(values[i]) == 0 {
				// A JSON-string "[]" explodes to zero combinations,
				// so the record yields no rows at all.
				return
			}
		}

		idx := make([]int, len(explodeKeys))
		for {
			row := make(Flat, len(base)+len(explodeKeys))
			for k, v := range base {
				row[k] = v
			}
			for i, k := range explodeKeys {
				row[k] = values[i][idx[i]]
			}
			if !yield(row) {
				return
			}

			// Advance the odometer, rightmost position first.
			i := len(idx) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(values[i]) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

// valueList derives the list of values an explode key contributes to the
// cartesian product:
//
//  1. key absent or null: a single empty placeholder, so the record is not
//     dropped from the output
//  2. a string shaped like a JSON array: parsed if possible; a non-list
//     parse result is wrapped, a parse failure keeps the raw string
//  3. a live list: used as-is, except an empty list becomes the same
//     single placeholder as case 1
//  4. any other scalar: a single-element list
func valueList(rec Flat, key string) []any {
	v, ok := rec[key]
	if !ok || v == nil {
		return []any{""}
	}

	switch tv := v.(type) {
	case string:
		if strings.HasPrefix(tv, "[") && strings.HasSuffix(tv, "]") {
			var parsed any
			if err := decodeJSON.UnmarshalFromString(tv, &parsed); err == nil {
				if list, isList := parsed.([]any); isList {
					return list
				}
				return []any{parsed}
			}
		}
		return []any{tv}
	case []any:
		if len(tv) == 0 {
			return []any{""}
		}
		return tv
	default:
		return []any{v}
	}
}
