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
	"reflect"
	"testing"
)

func collect(rec Flat, keys []string) []Flat {
	var rows []Flat
	for row := range Expand(rec, keys) {
		rows = append(rows, row)
	}
	return rows
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		rec  Flat
		keys []string
		want []Flat
	}{
		{
			name: "no explode keys yields the record once",
			rec:  Flat{"a": 1, "b": "x"},
			keys: nil,
			want: []Flat{{"a": 1, "b": "x"}},
		},
		{
			name: "single list column",
			rec:  Flat{"artist": "Coldplay", "tags": []any{"alt", "britpop"}},
			keys: []string{"tags"},
			want: []Flat{
				{"artist": "Coldplay", "tags": "alt"},
				{"artist": "Coldplay", "tags": "britpop"},
			},
		},
		{
			name: "missing key produces one placeholder row",
			rec:  Flat{"a": 1},
			keys: []string{"tags"},
			want: []Flat{{"a": 1, "tags": ""}},
		},
		{
			name: "null value produces one placeholder row",
			rec:  Flat{"a": 1, "tags": nil},
			keys: []string{"tags"},
			want: []Flat{{"a": 1, "tags": ""}},
		},
		{
			name: "empty list produces one placeholder row",
			rec:  Flat{"a": 1, "tags": []any{}},
			keys: []string{"tags"},
			want: []Flat{{"a": 1, "tags": ""}},
		},
		{
			name: "scalar value becomes a single-element list",
			rec:  Flat{"tags": "solo"},
			keys: []string{"tags"},
			want: []Flat{{"tags": "solo"}},
		},
		{
			name: "json array string is parsed",
			rec:  Flat{"tags": `["a","b"]`},
			keys: []string{"tags"},
			want: []Flat{{"tags": "a"}, {"tags": "b"}},
		},
		{
			name: "bracketed non-json string kept raw",
			rec:  Flat{"tags": "[not json]"},
			keys: []string{"tags"},
			want: []Flat{{"tags": "[not json]"}},
		},
		{
			name: "cartesian product over two keys, last varies fastest",
			rec:  Flat{"id": 7, "a": []any{"a1", "a2"}, "b": []any{"b1", "b2", "b3"}},
			keys: []string{"a", "b"},
			want: []Flat{
				{"id": 7, "a": "a1", "b": "b1"},
				{"id": 7, "a": "a1", "b": "b2"},
				{"id": 7, "a": "a1", "b": "b3"},
				{"id": 7, "a": "a2", "b": "b1"},
				{"id": 7, "a": "a2", "b": "b2"},
				{"id": 7, "a": "a2", "b": "b3"},
			},
		},
		{
			name: "product with a missing key keeps other lists intact",
			rec:  Flat{"a": []any{"a1", "a2"}},
			keys: []string{"a", "b"},
			want: []Flat{
				{"a": "a1", "b": ""},
				{"a": "a2", "b": ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(tt.rec, tt.keys)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expand() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestExpand_RowCountIsProductOfLengths(t *testing.T) {
	rec := Flat{
		"a": []any{1, 2, 3},
		"b": []any{1, 2},
		"c": []any{1, 2, 3, 4},
	}
	rows := collect(rec, []string{"a", "b", "c"})
	if len(rows) != 3*2*4 {
		t.Fatalf("expected %d rows, got %d", 3*2*4, len(rows))
	}

	// Every combination must be distinct.
	seen := make(map[[3]any]bool)
	for _, row := range rows {
		key := [3]any{row["a"], row["b"], row["c"]}
		if seen[key] {
			t.Fatalf("duplicate combination %v", key)
		}
		seen[key] = true
	}
}

func TestExpand_IsLazy(t *testing.T) {
	rec := Flat{"a": []any{1, 2, 3, 4, 5}}
	count := 0
	for range Expand(rec, []string{"a"}) {
		count++
		if count == 2 {
			break // consumers may stop early without draining
		}
	}
	if count != 2 {
		t.Fatalf("expected early stop after 2 rows, got %d", count)
	}
}

func TestExpand_DoesNotMutateInput(t *testing.T) {
	rec := Flat{"id": 1, "tags": []any{"a", "b"}}
	collect(rec, []string{"tags"})

	if _, ok := rec["tags"].([]any); !ok {
		t.Fatal("input record was mutated by Expand")
	}
}
