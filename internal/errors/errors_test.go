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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{
			name:     "direct malformed line error",
			err:      ErrMalformedLine,
			sentinel: ErrMalformedLine,
			want:     true,
		},
		{
			name:     "wrapped malformed line error",
			err:      fmt.Errorf("line 42: %w: unexpected end of input", ErrMalformedLine),
			sentinel: ErrMalformedLine,
			want:     true,
		},
		{
			name:     "wrapped empty input error",
			err:      fmt.Errorf("discovery failed: %w", ErrEmptyInput),
			sentinel: ErrEmptyInput,
			want:     true,
		},
		{
			name:     "different error type",
			err:      ErrExplodeConflict,
			sentinel: ErrEmptyInput,
			want:     false,
		},
		{
			name:     "nil error",
			err:      nil,
			sentinel: ErrInputNotFound,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.sentinel)
			if got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.sentinel, got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrMalformedLine, "malformed json line"},
		{ErrEmptyInput, "no json lines found in input"},
		{ErrExplodeConflict, "choose either --explode-column or --explode-all, not both"},
		{ErrInputNotFound, "input file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
