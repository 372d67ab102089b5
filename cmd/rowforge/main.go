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

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	rferrors "github.com/rowforgehq/rowforge/internal/errors"
	"github.com/rowforgehq/rowforge/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rowforge",
		Short: "Convert NDJSON streams into rectangular CSV files",
		Long: `rowforge converts newline-delimited JSON (plain or gzip-compressed) into
rectangular CSV. It handles arbitrarily nested objects and lists while
streaming, so inputs of any size are processed with bounded memory: one
pass to discover the complete column set, one pass to write the rows.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newConvertCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Usage and data errors
	if errors.Is(err, rferrors.ErrExplodeConflict) ||
		errors.Is(err, rferrors.ErrMalformedLine) ||
		errors.Is(err, rferrors.ErrEmptyInput) {
		return 2
	}

	// Filesystem errors
	if errors.Is(err, rferrors.ErrInputNotFound) {
		return 3
	}

	return 1 // General error
}
