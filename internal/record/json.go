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
	jsoniter "github.com/json-iterator/go"
)

var (
	// decodeJSON decodes input lines. UseNumber keeps numbers as json.Number
	// so large ids and precise decimals survive the round trip to CSV.
	decodeJSON = jsoniter.Config{UseNumber: true}.Froze()

	// encodeJSON serializes residual lists and objects into cells. Map keys
	// are sorted so the same value always produces the same cell string, and
	// HTML escaping is off so non-ASCII and markup pass through verbatim.
	encodeJSON = jsoniter.Config{SortMapKeys: true, EscapeHTML: false, UseNumber: true}.Froze()
)

// DecodeLine decodes a single NDJSON line into an arbitrary JSON value.
// Numbers are decoded as json.Number.
func DecodeLine(line []byte) (any, error) {
	var v any
	if err := decodeJSON.Unmarshal(line, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// MarshalCompact serializes a value to its compact JSON form, with map keys
// sorted and non-ASCII preserved.
func MarshalCompact(v any) (string, error) {
	return encodeJSON.MarshalToString(v)
}
