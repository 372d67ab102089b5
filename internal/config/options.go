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

package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	rferrors "github.com/rowforgehq/rowforge/internal/errors"
)

var validate = validator.New()

// Options are the fully resolved settings for one convert run, after flag,
// environment and config-file precedence has been applied.
type Options struct {
	// Input is the NDJSON source path (.json, .ndjson, optionally .gz).
	Input string `validate:"required"`

	// Output is the CSV destination path (.csv, optionally .gz). Empty
	// means stdout.
	Output string

	// Flatten enables dotted-path flattening of nested objects.
	Flatten bool

	// ExplodeColumn explodes a single list column into one row per element.
	ExplodeColumn string `validate:"excluded_with=ExplodeAll"`

	// ExplodeAll explodes every list column (cartesian product).
	ExplodeAll bool

	// DiscoverLimit caps the discovery pass at N lines, 0 for a full scan.
	DiscoverLimit int `validate:"gte=0"`

	// ProgressEvery is the non-interactive progress interval, 0 to disable.
	ProgressEvery int `validate:"gte=0"`

	// MaxLineBytes caps the size of one input line.
	MaxLineBytes int `validate:"gt=0"`

	// SchemaFile, when set, is consulted before discovery and written
	// after it, letting repeated runs over the same input skip pass 1.
	SchemaFile string

	// WriteMetadata writes a <output>.meta.json audit record. Requires
	// Output to be a file path.
	WriteMetadata bool `validate:"excluded_without=Output"`

	// Quiet disables progress reporting and summary output.
	Quiet bool
}

// Validate checks the options for internal consistency and maps known
// violations onto their sentinel errors so the CLI can exit with the right
// code.
func (o *Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch {
			case fe.Field() == "ExplodeColumn" && fe.Tag() == "excluded_with":
				return rferrors.ErrExplodeConflict
			case fe.Field() == "WriteMetadata":
				return fmt.Errorf("--metadata requires --output to be a file path")
			}
		}
	}
	return fmt.Errorf("invalid options: %w", err)
}
