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

// Flat is one input record reduced to a single level of dotted-path keys.
// Values are scalars (string, json.Number, bool, nil), live lists ([]any)
// for columns designated for exploding, or JSON strings for lists that must
// stay rectangular. When flattening is disabled, nested objects may also
// appear as values; they are serialized at cell-write time.
type Flat map[string]any

// RootKey is the column name assigned to a non-object root value, e.g. the
// line `42` becomes the record {"value": 42}.
const RootKey = "value"

// Policy controls how records are flattened and which list-valued paths stay
// live lists instead of being serialized to JSON strings. The discovery pass
// and the transform pass must be handed the same Policy value; if the two
// passes decided list retention independently, the header and the data rows
// could disagree on whether a column is a list or a string.
type Policy struct {
	// Flatten enables recursive flattening of nested objects into
	// dotted-path columns.
	Flatten bool

	// ExplodeAll keeps every list value live so the transform pass can
	// explode all of them per record.
	ExplodeAll bool

	keepLists map[string]struct{}
}

// NewPolicy builds the single flatten/retention policy for a run.
// explodeColumn, when non-empty, is the one dotted path whose list values
// stay live for single-column exploding.
func NewPolicy(flatten bool, explodeColumn string, explodeAll bool) Policy {
	p := Policy{Flatten: flatten, ExplodeAll: explodeAll}
	if explodeColumn != "" {
		p.keepLists = map[string]struct{}{explodeColumn: {}}
	}
	return p
}

// KeepList reports whether a list value at the given dotted path survives
// flattening as a live list.
func (p Policy) KeepList(path string) bool {
	if p.ExplodeAll {
		return true
	}
	_, ok := p.keepLists[path]
	return ok
}

// Flatten reduces an arbitrary decoded JSON value to a Flat record under the
// given policy. Non-object roots are wrapped under RootKey first. With
// pol.Flatten disabled the (wrapped) object is returned shallow-copied and
// otherwise untouched. With it enabled, nested objects recurse into dotted
// paths, list values either stay live or become compact JSON strings per
// pol.KeepList, and scalars pass through. An empty object contributes no
// keys for its branch.
//
// The output is identical for identical input and policy; any map-order
// sensitivity is confined to downstream steps, which sort.
func Flatten(v any, pol Policy) (Flat, error) {
	root, ok := v.(map[string]any)
	if !ok {
		root = map[string]any{RootKey: v}
	}

	out := make(Flat, len(root))
	if !pol.Flatten {
		for k, val := range root {
			out[k] = val
		}
		return out, nil
	}

	if err := flattenInto(out, root, "", pol); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(out Flat, obj map[string]any, prefix string, pol Policy) error {
	for k, v := range obj {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}

		switch tv := v.(type) {
		case map[string]any:
			if err := flattenInto(out, tv, path, pol); err != nil {
				return err
			}
		case []any:
			if pol.KeepList(path) {
				out[path] = tv
				continue
			}
			// Serialize so the column stays rectangular.
			s, err := MarshalCompact(tv)
			if err != nil {
				return err
			}
			out[path] = s
		default:
			out[path] = v
		}
	}
	return nil
}
