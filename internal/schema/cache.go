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

package schema

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rowforgehq/rowforge/internal/record"
)

// CacheVersion is the current cache file schema version.
// Increment this when making breaking changes to the Cache structure.
const CacheVersion = 1

// Cache is a persisted discovery result. Reusing it skips the first full
// read of the input, which is worth minutes on multi-gigabyte dumps. The
// flatten/explode policy it was built under is recorded because a header
// discovered under one policy is not valid under another (the same column
// can be a live list in one and a JSON string in the other).
type Cache struct {
	// Version indicates the schema version of this cache file.
	Version int `json:"version"`

	// Checksum is the SHA256 hash of the cache content (excluding this field).
	// Used to detect corruption or manual edits.
	Checksum string `json:"checksum"`

	// Input is the path of the NDJSON file the header was discovered from.
	Input string `json:"input"`

	// Flatten, ExplodeColumn and ExplodeAll record the policy in effect
	// during discovery.
	Flatten       bool   `json:"flatten"`
	ExplodeColumn string `json:"explode_column,omitempty"`
	ExplodeAll    bool   `json:"explode_all"`

	// DiscoverLimit is the sampling limit used, 0 for a full scan.
	DiscoverLimit int `json:"discover_limit,omitempty"`

	// Lines is the number of non-blank lines scanned during discovery.
	Lines int `json:"lines"`

	// CreatedAt records when discovery completed.
	CreatedAt time.Time `json:"created_at"`

	// Columns is the sorted header.
	Columns []string `json:"columns"`
}

// Matches reports whether the cache was built from the same input under the
// same policy and limit, i.e. whether its header is valid for this run.
func (c *Cache) Matches(input string, pol record.Policy, explodeColumn string, limit int) bool {
	return c.Input == input &&
		c.Flatten == pol.Flatten &&
		c.ExplodeAll == pol.ExplodeAll &&
		c.ExplodeColumn == explodeColumn &&
		c.DiscoverLimit == limit
}

// SaveCache atomically writes the cache to disk with integrity validation.
// It uses a write-to-temp-and-rename pattern to ensure a reader never sees
// a partial file.
func SaveCache(c *Cache, path string) error {
	c.Version = CacheVersion

	checksum, err := calculateChecksum(c)
	if err != nil {
		return fmt.Errorf("failed to calculate checksum: %w", err)
	}
	c.Checksum = checksum

	if dir := filepath.Dir(path); dir != "" {
		if mkdirErr := os.MkdirAll(dir, 0o755); mkdirErr != nil {
			return fmt.Errorf("failed to create schema cache directory: %w", mkdirErr)
		}
	}

	tempFile := path + ".tmp"

	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal schema cache: %w", err)
	}

	if writeErr := os.WriteFile(tempFile, data, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write temporary schema cache: %w", writeErr)
	}

	// Sync to ensure data is flushed to disk before the rename.
	file, err := os.Open(tempFile)
	if err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to open temp file for sync: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// LoadCache reads and validates a schema cache from disk. It verifies the
// checksum and version compatibility. A missing file is reported with
// os.IsNotExist semantics via the wrapped error.
func LoadCache(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema cache %s: %w", path, err)
	}

	var c Cache
	if unmarshalErr := json.Unmarshal(data, &c); unmarshalErr != nil {
		return nil, fmt.Errorf("schema cache is corrupted (invalid JSON): %w", unmarshalErr)
	}

	if c.Version != CacheVersion {
		return nil, fmt.Errorf("schema cache version (%d) is incompatible with current version (%d)",
			c.Version, CacheVersion)
	}

	savedChecksum := c.Checksum
	c.Checksum = ""

	calculatedChecksum, err := calculateChecksum(&c)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum for validation: %w", err)
	}
	if savedChecksum != calculatedChecksum {
		return nil, fmt.Errorf("schema cache is corrupted (checksum mismatch)")
	}

	c.Checksum = savedChecksum
	return &c, nil
}

// calculateChecksum computes the SHA256 hash of the cache content.
// The checksum field itself is excluded from the calculation.
func calculateChecksum(c *Cache) (string, error) {
	cacheCopy := *c
	cacheCopy.Checksum = ""

	data, err := json.Marshal(cacheCopy)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
