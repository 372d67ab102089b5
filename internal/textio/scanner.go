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

package textio

import (
	"bufio"
	"bytes"
	"io"
)

// DefaultMaxLineBytes caps how large a single NDJSON line may grow before
// scanning fails with bufio.ErrTooLong. One line is the unit of memory for
// the whole pipeline, so this is also the peak per-record buffer size.
const DefaultMaxLineBytes = 1 << 30 // 1 GiB

const initialLineBytes = 64 * 1024

// Scanner iterates the non-blank lines of an NDJSON stream. Blank
// (whitespace-only) lines are skipped and not counted; Line reports the
// 1-based index of the current line among the non-blank lines, which is the
// line number used in malformed-input errors.
type Scanner struct {
	s    *bufio.Scanner
	line int
	text []byte
}

// NewScanner wraps r with a line scanner. maxLineBytes bounds the longest
// accepted line; values <= 0 select DefaultMaxLineBytes.
func NewScanner(r io.Reader, maxLineBytes int) *Scanner {
	if maxLineBytes <= 0 {
		maxLineBytes = DefaultMaxLineBytes
	}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, initialLineBytes), maxLineBytes)
	return &Scanner{s: s}
}

// Scan advances to the next non-blank line. It returns false at end of
// input or on error; check Err afterwards.
func (sc *Scanner) Scan() bool {
	for sc.s.Scan() {
		trimmed := bytes.TrimSpace(sc.s.Bytes())
		if len(trimmed) == 0 {
			continue
		}
		sc.line++
		sc.text = trimmed
		return true
	}
	return false
}

// Bytes returns the current line with surrounding whitespace trimmed. The
// buffer is only valid until the next call to Scan.
func (sc *Scanner) Bytes() []byte { return sc.text }

// Line returns the 1-based number of the current non-blank line.
func (sc *Scanner) Line() int { return sc.line }

// Err returns the first error encountered while scanning, excluding io.EOF.
func (sc *Scanner) Err() error { return sc.s.Err() }
