/*
Copyright 2025 The SeqLink Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	compbasemetrics "k8s.io/component-base/metrics"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	metricsutil "github.com/transitionnets/seqlink/pkg/util/metrics"
)

const (
	// --- Subsystems ---
	SequenceLinking = "sequence_linking"
)

var (
	// --- Common Label Sets ---
	LinkerLabels = []string{"linker_type", "linker_name"}

	// --- Common Buckets ---

	// LinkerLatencyBuckets for in-process link computation from 100us to 100ms
	LinkerLatencyBuckets = []float64{
		0.0001, 0.0002, 0.0005, 0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1,
	}
)

// --- Linker Selection Metrics ---
var (
	linkerSelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: SequenceLinking,
			Name:      "selections_total",
			Help:      metricsutil.HelpMsgWithStability("Counter of linker selections broken out for each transition system and selected linker.", compbasemetrics.ALPHA),
		},
		[]string{"transition_system", "linker_name"},
	)

	linkerSelectionErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: SequenceLinking,
			Name:      "selection_errors_total",
			Help:      metricsutil.HelpMsgWithStability("Counter of channels no registered linker supports, broken out for each transition system.", compbasemetrics.ALPHA),
		},
		[]string{"transition_system"},
	)
)

// --- Linker Execution Metrics ---
var (
	LinkerExecutionLatencies = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Subsystem: SequenceLinking,
			Name:      "linker_duration_seconds",
			Help:      metricsutil.HelpMsgWithStability("Link computation latency distribution in seconds for each linker type and linker name.", compbasemetrics.ALPHA),
			Buckets:   LinkerLatencyBuckets,
		},
		LinkerLabels,
	)

	linksComputedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: SequenceLinking,
			Name:      "links_total",
			Help:      metricsutil.HelpMsgWithStability("Counter of link indices produced, broken out for each linker type and linker name.", compbasemetrics.ALPHA),
		},
		LinkerLabels,
	)
)

// --- Batch Store Metrics ---
var (
	batchStoreSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Subsystem: SequenceLinking,
			Name:      "batch_store_size",
			Help:      metricsutil.HelpMsgWithStability("Number of batches currently held by the batch store.", compbasemetrics.ALPHA),
		},
		[]string{},
	)

	batchStoreEvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: SequenceLinking,
			Name:      "batch_store_evictions_total",
			Help:      metricsutil.HelpMsgWithStability("Counter of batches evicted from the batch store after TTL expiry.", compbasemetrics.ALPHA),
		},
		[]string{},
	)
)

// --- Info Metrics ---
var BuildInfo = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Subsystem: SequenceLinking,
		Name:      "info",
		Help:      metricsutil.HelpMsgWithStability("General information of the current build of SeqLink.", compbasemetrics.ALPHA),
	},
	[]string{"commit", "build_ref"},
)

var registerMetrics sync.Once

// Register all metrics.
func Register(customCollectors ...prometheus.Collector) {
	registerMetrics.Do(func() {
		metrics.Registry.MustRegister(linkerSelectionsTotal)
		metrics.Registry.MustRegister(linkerSelectionErrorsTotal)
		metrics.Registry.MustRegister(LinkerExecutionLatencies)
		metrics.Registry.MustRegister(linksComputedTotal)
		metrics.Registry.MustRegister(batchStoreSize)
		metrics.Registry.MustRegister(batchStoreEvictionsTotal)
		metrics.Registry.MustRegister(BuildInfo)
		for _, collector := range customCollectors {
			metrics.Registry.MustRegister(collector)
		}
	})
}

// Just for integration test
func Reset() {
	linkerSelectionsTotal.Reset()
	linkerSelectionErrorsTotal.Reset()
	LinkerExecutionLatencies.Reset()
	linksComputedTotal.Reset()
	batchStoreSize.Reset()
	batchStoreEvictionsTotal.Reset()
	BuildInfo.Reset()
}

// RecordLinkerSelection records a successful linker selection for a channel.
func RecordLinkerSelection(transitionSystem, linkerName string) {
	linkerSelectionsTotal.WithLabelValues(transitionSystem, linkerName).Inc()
}

// RecordLinkerSelectionError records a channel no registered linker supports.
func RecordLinkerSelectionError(transitionSystem string) {
	linkerSelectionErrorsTotal.WithLabelValues(transitionSystem).Inc()
}

// RecordLinkerExecutionLatency records the link computation latency for a linker.
func RecordLinkerExecutionLatency(linkerType, linkerName string, duration time.Duration) {
	LinkerExecutionLatencies.WithLabelValues(linkerType, linkerName).Observe(duration.Seconds())
}

// RecordLinksComputed records the number of link indices produced by a linker.
func RecordLinksComputed(linkerType, linkerName string, count int) {
	linksComputedTotal.WithLabelValues(linkerType, linkerName).Add(float64(count))
}

// RecordBatchStoreSize records the number of batches held by the batch store.
func RecordBatchStoreSize(size int) {
	batchStoreSize.WithLabelValues().Set(float64(size))
}

// RecordBatchStoreEviction records a batch expiring out of the batch store.
func RecordBatchStoreEviction() {
	batchStoreEvictionsTotal.WithLabelValues().Inc()
}

func RecordBuildInfo(commitSha, buildRef string) {
	BuildInfo.WithLabelValues(commitSha, buildRef).Set(1)
}
