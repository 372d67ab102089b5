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
	"os"
	"path/filepath"
	"testing"

	rferrors "github.com/rowforgehq/rowforge/internal/errors"
)

func TestLoadConfig_Defaults(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "noexist.yaml")); err == nil {
		t.Fatal("expected error for explicitly missing config file")
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Defaults.ProgressEvery != 200000 {
		t.Errorf("ProgressEvery = %d, want 200000", cfg.Defaults.ProgressEvery)
	}
	if cfg.Defaults.MaxLineMB != 1024 {
		t.Errorf("MaxLineMB = %d, want 1024", cfg.Defaults.MaxLineMB)
	}
	if cfg.Defaults.NoProgress {
		t.Error("NoProgress should default to false")
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
defaults:
  progress_every: 5000
  max_line_mb: 16
  no_progress: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Defaults.ProgressEvery != 5000 {
		t.Errorf("ProgressEvery = %d, want 5000", cfg.Defaults.ProgressEvery)
	}
	if cfg.Defaults.MaxLineMB != 16 {
		t.Errorf("MaxLineMB = %d, want 16", cfg.Defaults.MaxLineMB)
	}
	if !cfg.Defaults.NoProgress {
		t.Error("NoProgress should be true")
	}
	if got := cfg.MaxLineBytes(); got != 16<<20 {
		t.Errorf("MaxLineBytes() = %d, want %d", got, 16<<20)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("defaults:\n  progress_every: 10\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Defaults.ProgressEvery != 10 {
		t.Errorf("ProgressEvery = %d, want 10", cfg.Defaults.ProgressEvery)
	}
	if cfg.Defaults.MaxLineMB != 1024 {
		t.Errorf("MaxLineMB = %d, want default 1024", cfg.Defaults.MaxLineMB)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ROWFORGE_PROGRESS_EVERY", "777")
	t.Setenv("ROWFORGE_MAX_LINE_MB", "8")
	t.Setenv("ROWFORGE_NO_PROGRESS", "yes")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Defaults.ProgressEvery != 777 {
		t.Errorf("ProgressEvery = %d, want 777", cfg.Defaults.ProgressEvery)
	}
	if cfg.Defaults.MaxLineMB != 8 {
		t.Errorf("MaxLineMB = %d, want 8", cfg.Defaults.MaxLineMB)
	}
	if !cfg.Defaults.NoProgress {
		t.Error("NoProgress should be true")
	}
}

func TestLoadConfig_InvalidEnvIgnored(t *testing.T) {
	t.Setenv("ROWFORGE_PROGRESS_EVERY", "not-a-number")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Defaults.ProgressEvery != 200000 {
		t.Errorf("ProgressEvery = %d, want default 200000", cfg.Defaults.ProgressEvery)
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n  - ["), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func validOptions() *Options {
	return &Options{
		Input:         "in.ndjson",
		Output:        "out.csv",
		Flatten:       true,
		MaxLineBytes:  1 << 20,
		ProgressEvery: 100,
	}
}

func TestOptions_Validate(t *testing.T) {
	if err := validOptions().Validate(); err != nil {
		t.Fatalf("valid options rejected: %v", err)
	}
}

func TestOptions_ExplodeConflict(t *testing.T) {
	opts := validOptions()
	opts.ExplodeColumn = "tags"
	opts.ExplodeAll = true

	err := opts.Validate()
	if !errors.Is(err, rferrors.ErrExplodeConflict) {
		t.Fatalf("expected ErrExplodeConflict, got %v", err)
	}
}

func TestOptions_ExplodeModesAloneAreValid(t *testing.T) {
	opts := validOptions()
	opts.ExplodeColumn = "tags"
	if err := opts.Validate(); err != nil {
		t.Errorf("explode-column alone rejected: %v", err)
	}

	opts = validOptions()
	opts.ExplodeAll = true
	if err := opts.Validate(); err != nil {
		t.Errorf("explode-all alone rejected: %v", err)
	}
}

func TestOptions_MissingInput(t *testing.T) {
	opts := validOptions()
	opts.Input = ""
	if err := opts.Validate(); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestOptions_MetadataRequiresOutput(t *testing.T) {
	opts := validOptions()
	opts.Output = ""
	opts.WriteMetadata = true
	if err := opts.Validate(); err == nil {
		t.Fatal("expected error for --metadata without --output")
	}
}

func TestOptions_NegativeLimits(t *testing.T) {
	opts := validOptions()
	opts.DiscoverLimit = -1
	if err := opts.Validate(); err == nil {
		t.Fatal("expected error for negative discover limit")
	}
}
