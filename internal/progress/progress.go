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

// Package progress defines the observer both passes report their counters
// through. The engine packages depend only on the Reporter interface, which
// keeps them free of terminal side effects; the CLI decides whether progress
// is drawn as an interactive bar, logged at intervals, or discarded.
package progress

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

// Reporter receives pass progress. Step is called once per unit of work
// (one scanned line or one written row); Finish is called exactly once when
// the pass completes successfully.
type Reporter interface {
	Step(n int)
	Finish()
}

type nop struct{}

func (nop) Step(int) {}
func (nop) Finish()  {}

// Nop returns a Reporter that discards all progress.
func Nop() Reporter { return nop{} }

type bar struct {
	b *progressbar.ProgressBar
}

// NewBar returns a Reporter that draws an interactive progress display on
// stderr. total may be -1 when the amount of work is unknown, which renders
// a spinner with a running count.
func NewBar(label string, total int64) Reporter {
	b := progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	return &bar{b: b}
}

func (r *bar) Step(n int) { _ = r.b.Add(n) }

func (r *bar) Finish() { _ = r.b.Finish() }

type logReporter struct {
	log   zerolog.Logger
	label string
	every int64
	count int64
}

// NewLog returns a Reporter that emits a structured log line every `every`
// steps, plus a final line with the total. Suited to non-interactive runs
// where a redrawn bar would garbage up captured stderr.
func NewLog(log zerolog.Logger, label string, every int) Reporter {
	return &logReporter{log: log, label: label, every: int64(every)}
}

func (r *logReporter) Step(n int) {
	r.count += int64(n)
	if r.every > 0 && r.count%r.every == 0 {
		r.log.Info().Int64("count", r.count).Msg(r.label)
	}
}

func (r *logReporter) Finish() {
	r.log.Info().Int64("total", r.count).Msg(r.label + " done")
}
