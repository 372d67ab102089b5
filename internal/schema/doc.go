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

// Package schema implements the discovery pass: a full streaming read of
// the input that unions every dotted-path column any record can produce
// into one sorted, stable header. Discovery flattens records under the same
// policy as the transform pass but never explodes them; exploding cannot
// introduce new column names.
//
// The package also persists discovered headers to checksummed cache files
// so repeated conversions of the same large input can skip the first pass.
package schema
