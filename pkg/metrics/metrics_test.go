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
	"os"
	"testing"
	"time"

	"k8s.io/component-base/metrics/testutil"
	crmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	LinkerSelectionsMetric      = SequenceLinking + "_selections_total"
	LinkerSelectionErrorsMetric = SequenceLinking + "_selection_errors_total"
	LinkerLatenciesMetric       = SequenceLinking + "_linker_duration_seconds"
	LinksTotalMetric            = SequenceLinking + "_links_total"
	BatchStoreSizeMetric        = SequenceLinking + "_batch_store_size"
	BatchStoreEvictionsMetric   = SequenceLinking + "_batch_store_evictions_total"
	BuildInfoMetric             = SequenceLinking + "_info"
)

func TestRecordLinkerSelections(t *testing.T) {
	type selection struct {
		transitionSystem string
		linkerName       string
		miss             bool
	}
	scenarios := []struct {
		name       string
		selections []selection
	}{{
		name: "hits and misses",
		selections: []selection{
			{
				transitionSystem: "shift-only",
				linkerName:       "identity-linker",
			},
			{
				transitionSystem: "shift-only",
				linkerName:       "identity-linker",
			},
			{
				transitionSystem: "char-shift-only",
				linkerName:       "identity-linker",
			},
			{
				transitionSystem: "arc-eager",
				miss:             true,
			},
			{
				transitionSystem: "arc-eager",
				miss:             true,
			},
			{
				transitionSystem: "arc-standard",
				miss:             true,
			},
		},
	}}
	Register()
	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			for _, sel := range scenario.selections {
				if sel.miss {
					RecordLinkerSelectionError(sel.transitionSystem)
					continue
				}
				RecordLinkerSelection(sel.transitionSystem, sel.linkerName)
			}
			wantSelections, err := os.Open("testdata/selections_total_metric")
			defer func() {
				if err := wantSelections.Close(); err != nil {
					t.Error(err)
				}
			}()
			if err != nil {
				t.Fatal(err)
			}
			if err := testutil.GatherAndCompare(crmetrics.Registry, wantSelections, LinkerSelectionsMetric); err != nil {
				t.Error(err)
			}
			wantSelectionErrors, err := os.Open("testdata/selection_errors_total_metric")
			defer func() {
				if err := wantSelectionErrors.Close(); err != nil {
					t.Error(err)
				}
			}()
			if err != nil {
				t.Fatal(err)
			}
			if err := testutil.GatherAndCompare(crmetrics.Registry, wantSelectionErrors, LinkerSelectionErrorsMetric); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestRecordLinkerExecutionLatency(t *testing.T) {
	Register()
	RecordLinkerExecutionLatency("identity-linker", "tokens", 3*time.Millisecond)

	wantLatencies, err := os.Open("testdata/linker_duration_seconds_metric")
	defer func() {
		if err := wantLatencies.Close(); err != nil {
			t.Error(err)
		}
	}()
	if err != nil {
		t.Fatal(err)
	}
	if err := testutil.GatherAndCompare(crmetrics.Registry, wantLatencies, LinkerLatenciesMetric); err != nil {
		t.Error(err)
	}
}

func TestRecordLinksComputed(t *testing.T) {
	Register()
	RecordLinksComputed("identity-linker", "tokens", 10)
	RecordLinksComputed("identity-linker", "tokens", 0)
	RecordLinksComputed("identity-linker", "chars", 32)

	wantLinks, err := os.Open("testdata/links_total_metric")
	defer func() {
		if err := wantLinks.Close(); err != nil {
			t.Error(err)
		}
	}()
	if err != nil {
		t.Fatal(err)
	}
	if err := testutil.GatherAndCompare(crmetrics.Registry, wantLinks, LinksTotalMetric); err != nil {
		t.Error(err)
	}
}

func TestRecordBatchStore(t *testing.T) {
	Register()
	RecordBatchStoreSize(5)
	RecordBatchStoreSize(3)
	RecordBatchStoreEviction()
	RecordBatchStoreEviction()

	wantSize, err := os.Open("testdata/batch_store_size_metric")
	defer func() {
		if err := wantSize.Close(); err != nil {
			t.Error(err)
		}
	}()
	if err != nil {
		t.Fatal(err)
	}
	if err := testutil.GatherAndCompare(crmetrics.Registry, wantSize, BatchStoreSizeMetric); err != nil {
		t.Error(err)
	}
	wantEvictions, err := os.Open("testdata/batch_store_evictions_total_metric")
	defer func() {
		if err := wantEvictions.Close(); err != nil {
			t.Error(err)
		}
	}()
	if err != nil {
		t.Fatal(err)
	}
	if err := testutil.GatherAndCompare(crmetrics.Registry, wantEvictions, BatchStoreEvictionsMetric); err != nil {
		t.Error(err)
	}
}

func TestRecordBuildInfo(t *testing.T) {
	Register()
	RecordBuildInfo("deadbeef", "v0.1.0")

	wantBuildInfo, err := os.Open("testdata/info_metric")
	defer func() {
		if err := wantBuildInfo.Close(); err != nil {
			t.Error(err)
		}
	}()
	if err != nil {
		t.Fatal(err)
	}
	if err := testutil.GatherAndCompare(crmetrics.Registry, wantBuildInfo, BuildInfoMetric); err != nil {
		t.Error(err)
	}
}
