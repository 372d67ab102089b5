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

// Package main implements the rowforge command-line interface.
// The tool converts NDJSON files (plain or gzip-compressed) into
// rectangular CSV output using a two-pass streaming engine.
//
// The CLI supports:
//   - Flattening nested objects into dotted column names (--flatten)
//   - Exploding one list column into multiple rows (--explode-column)
//   - Exploding every list column as a cartesian product (--explode-all)
//   - Sampling the header from a prefix of the input (--discover-limit)
//   - Reusing a previously discovered header (--schema-file)
//   - Gzip on either side, selected by the .gz file extension
//
// Usage:
//
//	rowforge convert <input> [flags]
//
// Example:
//
//	rowforge convert events.ndjson.gz --output events.csv.gz --flatten --explode-column tags
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Usage or malformed-input error
//   - 3: Filesystem error
package main
