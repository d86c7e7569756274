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

package linking

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/transitionnets/seqlink/pkg/batch"
	"github.com/transitionnets/seqlink/pkg/plugin"
	errutil "github.com/transitionnets/seqlink/pkg/util/error"
)

func TestRegistrySelect(t *testing.T) {
	channel := Channel{FeatureFormula: "input.focus", SourceTranslator: "identity", TransitionSystem: "shift-only"}

	tests := []struct {
		name     string
		linkers  []*testLinker
		wantName string
		wantErr  string // expected canonical error code, empty on success
	}{
		{
			name: "first supporting registration wins",
			linkers: []*testLinker{
				newTestLinker("alpha", false),
				newTestLinker("beta", true),
				newTestLinker("gamma", true),
			},
			wantName: "beta",
		},
		{
			name: "no supporting registration",
			linkers: []*testLinker{
				newTestLinker("alpha", false),
				newTestLinker("beta", false),
			},
			wantErr: errutil.NotFound,
		},
		{
			name:    "empty registry",
			linkers: []*testLinker{},
			wantErr: errutil.NotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			registry := NewRegistry()
			for _, linker := range test.linkers {
				registry.Register(linker.registration())
			}

			// Selection must be deterministic, so exercise it repeatedly.
			for i := 0; i < 10; i++ {
				got, err := registry.Select(channel)
				if test.wantErr != "" {
					if err == nil {
						t.Fatalf("Select() returned %q, expected %s error", got, test.wantErr)
					}
					if code := errutil.CanonicalCode(err); code != test.wantErr {
						t.Fatalf("Select() error code %s, expected %s", code, test.wantErr)
					}
					return
				}
				if err != nil {
					t.Fatalf("Select() returned unexpected error: %v", err)
				}
				if got != test.wantName {
					t.Fatalf("Select() on attempt %d returned %q, expected %q", i, got, test.wantName)
				}
			}
		})
	}
}

func TestRegistrySelectErrorNamesChannel(t *testing.T) {
	registry := NewRegistry()
	channel := Channel{FeatureFormula: "tagger.focus", SourceTranslator: "history", TransitionSystem: "arc-standard"}

	_, err := registry.Select(channel)
	if err == nil {
		t.Fatal("Select() on empty registry succeeded, expected NotFound error")
	}
	for _, field := range []string{"tagger.focus", "history", "arc-standard"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Select() error %q does not name channel field %q", err.Error(), field)
		}
	}
}

func TestRegistryNew(t *testing.T) {
	supported := newTestLinker("supported", true)
	failing := newTestLinker("failing", true)
	failing.factoryErr = errutil.Error{Code: errutil.BadConfiguration, Msg: "translator mismatch"}

	registry := NewRegistry()
	registry.Register(supported.registration())
	registry.Register(failing.registration())

	tests := []struct {
		name     string
		linker   string
		wantErr  string
		wantSame *testLinker
	}{
		{
			name:     "known name constructs",
			linker:   "supported",
			wantSame: supported,
		},
		{
			name:    "unknown name",
			linker:  "bogus",
			wantErr: errutil.UnknownLinker,
		},
		{
			name:    "factory failure passes through",
			linker:  "failing",
			wantErr: errutil.BadConfiguration,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := registry.New(test.linker, Channel{})
			if test.wantErr != "" {
				if err == nil {
					t.Fatalf("New(%q) succeeded, expected %s error", test.linker, test.wantErr)
				}
				if code := errutil.CanonicalCode(err); code != test.wantErr {
					t.Fatalf("New(%q) error code %s, expected %s", test.linker, code, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) returned unexpected error: %v", test.linker, err)
			}
			if got != test.wantSame {
				t.Errorf("New(%q) returned %v, expected the registered test linker", test.linker, got)
			}
		})
	}
}

// Every name Select returns must be constructible through New on the same
// registry.
func TestSelectedNameAlwaysConstructs(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"first", "second", "third"} {
		registry.Register(newTestLinker(name, name == "second").registration())
	}
	channel := Channel{FeatureFormula: "input.focus", SourceTranslator: "identity", TransitionSystem: "shift-only"}

	name, err := registry.Select(channel)
	if err != nil {
		t.Fatalf("Select() returned unexpected error: %v", err)
	}
	if _, err := registry.New(name, channel); err != nil {
		t.Errorf("New(%q) failed for a name produced by Select: %v", name, err)
	}
}

func TestRegistryNames(t *testing.T) {
	registry := NewRegistry()
	want := []string{"zeta", "alpha", "mid", "omega"}
	for _, name := range want {
		registry.Register(newTestLinker(name, false).registration())
	}

	if diff := cmp.Diff(want, registry.Names()); diff != "" {
		t.Errorf("Names() does not preserve registration order (-want +got): %v", diff)
	}
}

func TestRegisterPanics(t *testing.T) {
	valid := newTestLinker("valid", true)

	tests := []struct {
		name         string
		registration Registration
	}{
		{
			name:         "empty name",
			registration: Registration{Name: "", Supports: valid.Supports, Factory: valid.factory},
		},
		{
			name:         "nil supports predicate",
			registration: Registration{Name: "no-predicate", Factory: valid.factory},
		},
		{
			name:         "nil factory",
			registration: Registration{Name: "no-factory", Supports: valid.Supports},
		},
		{
			name:         "duplicate name",
			registration: valid.registration(),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			registry := NewRegistry()
			registry.Register(valid.registration())

			defer func() {
				if recover() == nil {
					t.Errorf("Register(%q) did not panic", test.registration.Name)
				}
			}()
			registry.Register(test.registration)
		})
	}
}

// compile-time type assertion
var _ SequenceLinker = &testLinker{}

// testLinker is an implementation useful in unit tests.
type testLinker struct {
	typedName   plugin.TypedName
	supportsRes bool
	supportsFn  func(Channel) bool
	factoryErr  error
	getLinksRes []int32
	getLinksErr error
	getLinksCnt int
}

func newTestLinker(name string, supports bool) *testLinker {
	return &testLinker{
		typedName:   plugin.TypedName{Type: "test-linker", Name: name},
		supportsRes: supports,
	}
}

func (tl *testLinker) registration() Registration {
	return Registration{Name: tl.typedName.Name, Supports: tl.Supports, Factory: tl.factory}
}

func (tl *testLinker) factory(_ string, _ Channel) (SequenceLinker, error) {
	if tl.factoryErr != nil {
		return nil, tl.factoryErr
	}
	return tl, nil
}

func (tl *testLinker) TypedName() plugin.TypedName {
	return tl.typedName
}

func (tl *testLinker) Supports(channel Channel) bool {
	if tl.supportsFn != nil {
		return tl.supportsFn(channel)
	}
	return tl.supportsRes
}

func (tl *testLinker) GetLinks(_ context.Context, _ int, _ *batch.Batch) ([]int32, error) {
	tl.getLinksCnt++
	if tl.getLinksErr != nil {
		return nil, tl.getLinksErr
	}
	return tl.getLinksRes, nil
}
