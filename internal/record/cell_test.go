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
	"encoding/json"
	"testing"
)

func TestCell(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil becomes empty cell", nil, ""},
		{"string passes through", "hello", "hello"},
		{"json number keeps source digits", json.Number("9007199254740993"), "9007199254740993"},
		{"decimal number keeps source digits", json.Number("0.1"), "0.1"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"list serialized compact", []any{"a", json.Number("1")}, `["a",1]`},
		{"map serialized with sorted keys", map[string]any{"b": json.Number("2"), "a": json.Number("1")}, `{"a":1,"b":2}`},
		{"empty list", []any{}, "[]"},
		{"non-ascii preserved", "żółć", "żółć"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cell(tt.in)
			if err != nil {
				t.Fatalf("Cell(%v) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Cell(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCell_RejectsUnknownTypes(t *testing.T) {
	if _, err := Cell(struct{}{}); err == nil {
		t.Fatal("expected an error for a non-JSON value")
	}
}
