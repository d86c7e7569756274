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

package linkers

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/transitionnets/seqlink/pkg/batch"
	"github.com/transitionnets/seqlink/pkg/linking"
	"github.com/transitionnets/seqlink/pkg/plugin"
	errutil "github.com/transitionnets/seqlink/pkg/util/error"
	logutil "github.com/transitionnets/seqlink/pkg/util/logging"
)

const (
	IdentityLinkerType = "identity-linker"

	identityTranslator = "identity"
)

// Transition systems and feature formulas the identity linker serves. The
// identity mapping only holds for systems that consume exactly one input
// element per step, tracked by a focus feature.
var (
	identityTransitionSystems = sets.New("shift-only", "char-shift-only")
	identityFormulas          = sets.New("input.focus", "char-input.focus")
)

// compile-time type validation
var _ linking.SequenceLinker = &IdentityLinker{}

// IdentityLinkerFactory defines the factory function for IdentityLinker.
func IdentityLinkerFactory(name string, channel linking.Channel) (linking.SequenceLinker, error) {
	if !SupportsIdentity(channel) {
		return nil, errutil.Error{Code: errutil.BadConfiguration, Msg: fmt.Sprintf("channel not supported by the %q linker (%s)", IdentityLinkerType, channel)}
	}
	return NewIdentityLinker().WithName(name), nil
}

// NewIdentityLinker initializes a new IdentityLinker and returns its pointer.
func NewIdentityLinker() *IdentityLinker {
	return &IdentityLinker{
		typedName: plugin.TypedName{Type: IdentityLinkerType, Name: IdentityLinkerType},
	}
}

// IdentityLinker links every step to the input position with the same
// index. It is stateless and ignores batch content beyond the handle check.
type IdentityLinker struct {
	typedName plugin.TypedName
}

// WithName sets the linker's name.
func (l *IdentityLinker) WithName(name string) *IdentityLinker {
	l.typedName.Name = name
	return l
}

// TypedName returns the type and name tuple of this plugin instance.
func (l *IdentityLinker) TypedName() plugin.TypedName {
	return l.typedName
}

// SupportsIdentity reports whether the channel reads a focus feature of a
// sequential transition system with the identity translation.
func SupportsIdentity(channel linking.Channel) bool {
	return identityTransitionSystems.Has(channel.TransitionSystem) &&
		identityFormulas.Has(channel.FeatureFormula) &&
		channel.SourceTranslator == identityTranslator
}

// GetLinks links step i to position i for every step.
func (l *IdentityLinker) GetLinks(ctx context.Context, stepCount int, input *batch.Batch) ([]int32, error) {
	if err := linking.ValidateRequest(stepCount, input); err != nil {
		return nil, err
	}
	log.FromContext(ctx).V(logutil.TRACE).Info("Computing identity links", "steps", stepCount)

	links := make([]int32, stepCount)
	for i := range links {
		links[i] = int32(i)
	}
	return links, nil
}
