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
	"github.com/spf13/cast"
)

// Cell converts a projected value to its CSV cell string: nil becomes the
// empty cell, residual lists and objects become compact JSON, and scalars
// take their native string form (json.Number keeps its source digits).
func Cell(v any) (string, error) {
	switch tv := v.(type) {
	case nil:
		return "", nil
	case string:
		return tv, nil
	case map[string]any, []any:
		return MarshalCompact(tv)
	default:
		return cast.ToStringE(v)
	}
}
