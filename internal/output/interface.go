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

package output

// RowWriter defines the interface the transform pass writes through. The
// abstraction keeps the engine independent of the concrete sink so tests
// can capture rows and other formats can be added without touching the
// core logic.
type RowWriter interface {
	// WriteHeader writes the header row. Call it once, before any rows.
	WriteHeader(columns []string) error

	// WriteRow writes a single data row. The row should be flushed
	// promptly to avoid memory accumulation.
	WriteRow(cells []string) error

	// Count returns the number of data rows written, excluding the header.
	Count() int

	// Close flushes buffered output and releases underlying resources.
	// The output file is only complete once Close returns nil.
	Close() error
}
