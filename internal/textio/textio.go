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

// Package textio hides the gzip-or-plain distinction behind plain readers
// and writers. A path ending in .gz (case-insensitive) is transparently
// decompressed on read and compressed on write; anything else is passed
// through. Output directories are created on demand.
package textio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"
)

// IsGzipPath reports whether a path names a gzip-compressed file.
func IsGzipPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// OpenReader opens path for reading, transparently decompressing .gz files.
// The returned closer closes both the decompressor and the file.
func OpenReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if !IsGzipPath(path) {
		return f, nil
	}

	zr, err := pgzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
	}
	return &gzipReadCloser{zr: zr, file: f}, nil
}

// OpenWriter creates path for writing, transparently compressing .gz files.
// Parent directories are created if missing. The returned closer flushes the
// compressor before closing the file; callers must Close to get a complete
// output file.
func OpenWriter(path string) (io.WriteCloser, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(abs); dir != "" {
		if mkdirErr := os.MkdirAll(dir, 0o755); mkdirErr != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", mkdirErr)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	if !IsGzipPath(path) {
		return f, nil
	}
	return &gzipWriteCloser{zw: pgzip.NewWriter(f), file: f}, nil
}

type gzipReadCloser struct {
	zr   *pgzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipReadCloser) Close() error {
	zerr := g.zr.Close()
	ferr := g.file.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

type gzipWriteCloser struct {
	zw   *pgzip.Writer
	file *os.File
}

func (g *gzipWriteCloser) Write(p []byte) (int, error) { return g.zw.Write(p) }

func (g *gzipWriteCloser) Close() error {
	if err := g.zw.Close(); err != nil {
		g.file.Close()
		return err
	}
	return g.file.Close()
}
