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

// Package record implements the per-record core of rowforge: decoding one
// NDJSON line into a JSON value, flattening nested objects into dotted-path
// columns, exploding list-valued columns into multiple rows, and converting
// projected values into CSV cell strings.
//
// A record moves through the pipeline as:
//
//	line []byte -> DecodeLine -> any -> Flatten -> Flat -> Expand -> Flat... -> Cell -> string
//
// Every function here is pure with respect to its inputs; records are never
// retained between calls. Both the discovery pass and the transform pass
// must share a single Policy value so that list retention is decided the
// same way in both passes.
package record
