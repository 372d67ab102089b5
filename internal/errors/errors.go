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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrMalformedLine indicates a non-blank input line failed JSON decoding.
	// The wrapping error carries the 1-based line number. Maps to exit code 2.
	ErrMalformedLine = errors.New("malformed json line")

	// ErrEmptyInput indicates the discovery pass found zero non-blank lines.
	// Maps to exit code 2.
	ErrEmptyInput = errors.New("no json lines found in input")

	// ErrExplodeConflict indicates both --explode-column and --explode-all were requested.
	// Maps to exit code 2.
	ErrExplodeConflict = errors.New("choose either --explode-column or --explode-all, not both")

	// ErrInputNotFound indicates the input path does not exist or is not readable.
	// Maps to exit code 3.
	ErrInputNotFound = errors.New("input file not found")
)
