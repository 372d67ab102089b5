package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/klauspost/pgzip"
)

func TestWriter_HeaderAndRows(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		rows   [][]string
		want   string
	}{
		{
			name:   "plain cells",
			header: []string{"a", "b"},
			rows:   [][]string{{"1", "x"}, {"2", "y"}},
			want:   "a,b\n1,x\n2,y\n",
		},
		{
			name:   "cells with commas are quoted",
			header: []string{"v"},
			rows:   [][]string{{"a,b"}},
			want:   "v\n\"a,b\"\n",
		},
		{
			name:   "cells with quotes are escaped",
			header: []string{"v"},
			rows:   [][]string{{`say "hi"`}},
			want:   "v\n\"say \"\"hi\"\"\"\n",
		},
		{
			name:   "cells with newlines are quoted",
			header: []string{"v"},
			rows:   [][]string{{"line1\nline2"}},
			want:   "v\n\"line1\nline2\"\n",
		},
		{
			name:   "empty cells stay empty",
			header: []string{"a", "b", "c"},
			rows:   [][]string{{"", "x", ""}},
			want:   "a,b,c\n,x,\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)

			if err := w.WriteHeader(tt.header); err != nil {
				t.Fatalf("WriteHeader failed: %v", err)
			}
			for _, row := range tt.rows {
				if err := w.WriteRow(row); err != nil {
					t.Fatalf("WriteRow failed: %v", err)
				}
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
			if w.Count() != len(tt.rows) {
				t.Errorf("Count() = %d, want %d", w.Count(), len(tt.rows))
			}
		})
	}
}

func TestWriter_CountExcludesHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteHeader([]string{"a"}); err != nil {
		t.Fatalf("WriteHeader failed: %v", err)
	}
	if w.Count() != 0 {
		t.Errorf("Count() after header = %d, want 0", w.Count())
	}
}

func TestNewFileWriter_GzipOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "data.csv.gz")

	w, err := NewFileWriter(path)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	if err := w.WriteHeader([]string{"a", "b"}); err != nil {
		t.Fatalf("WriteHeader failed: %v", err)
	}
	if err := w.WriteRow([]string{"1", "2"}); err != nil {
		t.Fatalf("WriteRow failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	zr, err := pgzip.NewReader(f)
	if err != nil {
		t.Fatalf("expected gzip output: %v", err)
	}
	defer zr.Close()

	records, err := csv.NewReader(zr).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	want := [][]string{{"a", "b"}, {"1", "2"}}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %v, want %v", records, want)
	}
}
