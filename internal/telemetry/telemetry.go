// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry records how long each stage of the analysis pipeline
// spends per document, exporting both a running in-process tally a CLI can
// print and Prometheus histograms/counters for anything that scrapes the
// analyzer as a long-lived process.
package telemetry

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	stageDuration *prometheus.HistogramVec
	stageTotal    *prometheus.CounterVec
	stageErrors   *prometheus.CounterVec
)

func registerMetrics() {
	registerOnce.Do(func() {
		buckets := []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
		stageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fea_stage_seconds",
			Help:    "Duración de cada etapa del pipeline de análisis (parse, scan, analyze)",
			Buckets: buckets,
		}, []string{"stage"})
		stageTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fea_stage_total",
			Help: "Número de veces que se ejecutó cada etapa del pipeline",
		}, []string{"stage"})
		stageErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fea_stage_errors_total",
			Help: "Número de errores por etapa del pipeline",
		}, []string{"stage"})
		prometheus.MustRegister(stageDuration, stageTotal, stageErrors)
	})
}

// Measurement is one completed stage timing, kept around for the
// in-process summary a CLI run can print at the end.
type Measurement struct {
	Stage    string
	URL      string
	Start    time.Time
	Duration time.Duration
	Err      error
}

// Telemetry accumulates Measurements for the lifetime of one Analyzer and
// mirrors them into the package's Prometheus vectors.
type Telemetry struct {
	mu           sync.Mutex
	measurements []Measurement
}

// New builds a Telemetry and registers its Prometheus collectors exactly
// once per process, regardless of how many Telemetry values are created.
func New() *Telemetry {
	registerMetrics()
	return &Telemetry{}
}

// Stopwatch times a single stage invocation; call Stop when it finishes.
// Stop records the elapsed duration against both the in-process log and
// the Prometheus vectors, tagging it as an error if Stop is passed a non-nil error.
type Stopwatch struct {
	t       *Telemetry
	stage   string
	url     string
	start   time.Time
	stopped bool
}

// Start begins timing stage for url. The caller is expected to `defer
// sw.Stop()` immediately.
func (t *Telemetry) Start(stage, url string) *Stopwatch {
	return &Stopwatch{t: t, stage: stage, url: url, start: time.Now()}
}

// Stop records the elapsed time. Safe to call multiple times; only the
// first call after Start has effect. Pass the stage's resulting error (nil
// on success) so failures are tallied separately from successes.
func (sw *Stopwatch) Stop(errs ...error) {
	if sw.stopped {
		return
	}
	sw.stopped = true
	d := time.Since(sw.start)
	var err error
	if len(errs) > 0 {
		err = errs[0]
	}

	sw.t.mu.Lock()
	sw.t.measurements = append(sw.t.measurements, Measurement{Stage: sw.stage, URL: sw.url, Start: sw.start, Duration: d, Err: err})
	sw.t.mu.Unlock()

	stageDuration.WithLabelValues(sw.stage).Observe(d.Seconds())
	stageTotal.WithLabelValues(sw.stage).Inc()
	if err != nil {
		stageErrors.WithLabelValues(sw.stage).Inc()
	}
}

// Measurements returns a copy of every recorded measurement, in completion
// order, for a CLI to summarize.
func (t *Telemetry) Measurements() []Measurement {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Measurement, len(t.measurements))
	copy(out, t.measurements)
	return out
}

// TotalByStage sums recorded durations per stage name, for a quick
// "analysis took Xms total, Yms in scan" breakdown.
func (t *Telemetry) TotalByStage() map[string]time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]time.Duration)
	for _, m := range t.measurements {
		out[m.Stage] += m.Duration
	}
	return out
}
