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

// Config holds the file-level configuration for rowforge. It only carries
// operational defaults; per-run behavior (flatten, explode) is decided by
// flags because it depends on the data, not the environment.
type Config struct {
	Defaults Defaults `yaml:"defaults"`
}

// Defaults are the tunables a config file or environment variable may
// override.
type Defaults struct {
	// ProgressEvery is the structured-log progress interval in rows/lines.
	// 0 disables interval logging.
	ProgressEvery int `yaml:"progress_every" validate:"gte=0"`

	// MaxLineMB caps the size of a single input line, in megabytes. One
	// line is the pipeline's unit of memory.
	MaxLineMB int `yaml:"max_line_mb" validate:"gte=1"`

	// NoProgress disables progress reporting entirely, as if --quiet were
	// always passed.
	NoProgress bool `yaml:"no_progress"`
}

// DefaultConfig returns the built-in defaults used when no config file is
// found.
func DefaultConfig() *Config {
	return &Config{
		Defaults: Defaults{
			ProgressEvery: 200000,
			MaxLineMB:     1024,
		},
	}
}

// MaxLineBytes returns the configured line cap in bytes.
func (c *Config) MaxLineBytes() int {
	return c.Defaults.MaxLineMB << 20
}
