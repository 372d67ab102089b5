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

package testutil

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/pgzip"
)

// WriteNDJSON writes one JSON line per element and returns the file path.
func WriteNDJSON(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}

	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		file, err := os.Create(path)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", path, err)
		}
		zw := pgzip.NewWriter(file)
		if _, err := io.WriteString(zw, content); err != nil {
			t.Fatalf("Failed to write gzip content: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("Failed to close gzip writer: %v", err)
		}
		if err := file.Close(); err != nil {
			t.Fatalf("Failed to close file: %v", err)
		}
		return path
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// ReadCSV parses a CSV file (gunzipping .gz paths) into records.
func ReadCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		zr, err := pgzip.NewReader(file)
		if err != nil {
			t.Fatalf("Expected gzip content in %s: %v", path, err)
		}
		defer zr.Close()
		r = zr
	}

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV from %s: %v", path, err)
	}
	return records
}

// ReadJSON reads and unmarshals a JSON file into v.
func ReadJSON(t *testing.T, path string, v interface{}) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read JSON file: %v", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}
}

// AssertFileExists checks that a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks that a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}
