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

// Package output provides streaming CSV writing with standard RFC 4180
// quoting. Rows are handed off one at a time and never accumulated, so
// output size does not affect memory use. Writing to a path ending in .gz
// compresses transparently.
//
// The primary type is Writer. Use NewWriter for an existing io.Writer
// (typically stdout) and NewFileWriter for a path:
//
//	w, err := output.NewFileWriter("out/data.csv.gz")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	if err := w.WriteHeader(columns); err != nil {
//	    return err
//	}
//	for _, row := range rows {
//	    if err := w.WriteRow(row); err != nil {
//	        return err
//	    }
//	}
package output
