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
	"fmt"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/transitionnets/seqlink/pkg/batch"
	"github.com/transitionnets/seqlink/pkg/metrics"
	logutil "github.com/transitionnets/seqlink/pkg/util/logging"
)

// NamedChannel pairs a channel descriptor with its name in the component
// spec.
type NamedChannel struct {
	Name    string
	Channel Channel
}

// ChannelLinks carries the computed link indices of one channel.
type ChannelLinks struct {
	// Channel is the channel name from the component spec.
	Channel string
	// Links has one entry per step.
	Links []int32
}

// ChannelSet holds the constructed linkers for the linked channels of one
// pipeline component, in declaration order.
type ChannelSet struct {
	component string
	channels  []boundChannel
}

type boundChannel struct {
	name    string
	channel Channel
	linker  SequenceLinker
}

// NewChannelSet selects and constructs one linker per channel using the
// given registry. Channels keep their declaration order. The first channel
// that cannot be served aborts the build.
func NewChannelSet(registry *Registry, component string, channels []NamedChannel) (*ChannelSet, error) {
	set := &ChannelSet{
		component: component,
		channels:  make([]boundChannel, 0, len(channels)),
	}
	for _, named := range channels {
		name, err := registry.Select(named.Channel)
		if err != nil {
			metrics.RecordLinkerSelectionError(named.Channel.TransitionSystem)
			return nil, fmt.Errorf("failed to bind channel %q of component %q: %w", named.Name, component, err)
		}
		metrics.RecordLinkerSelection(named.Channel.TransitionSystem, name)

		linker, err := registry.New(name, named.Channel)
		if err != nil {
			return nil, fmt.Errorf("failed to bind channel %q of component %q: %w", named.Name, component, err)
		}
		set.channels = append(set.channels, boundChannel{name: named.Name, channel: named.Channel, linker: linker})
	}
	return set, nil
}

// Component returns the name of the component this set was built for.
func (s *ChannelSet) Component() string {
	return s.component
}

// Linkers returns the typed names of the constructed linkers in channel
// declaration order.
func (s *ChannelSet) Linkers() []string {
	linkers := make([]string, len(s.channels))
	for i, bound := range s.channels {
		linkers[i] = bound.linker.TypedName().String()
	}
	return linkers
}

// GetLinks runs every channel's linker against the batch, in declaration
// order, and returns one index slice per channel. The first failing linker
// aborts the run.
func (s *ChannelSet) GetLinks(ctx context.Context, stepCount int, input *batch.Batch) ([]ChannelLinks, error) {
	loggerDebug := log.FromContext(ctx).V(logutil.DEBUG)

	results := make([]ChannelLinks, 0, len(s.channels))
	for _, bound := range s.channels {
		loggerDebug.Info("Running sequence linker", "component", s.component, "channel", bound.name, "linker", bound.linker.TypedName())
		before := time.Now()
		links, err := bound.linker.GetLinks(ctx, stepCount, input)
		typedName := bound.linker.TypedName()
		metrics.RecordLinkerExecutionLatency(typedName.Type, typedName.Name, time.Since(before))
		if err != nil {
			return nil, fmt.Errorf("failed to compute links for channel %q of component %q: %w", bound.name, s.component, err)
		}
		metrics.RecordLinksComputed(typedName.Type, typedName.Name, len(links))
		loggerDebug.Info("Sequence linker produced links", "component", s.component, "channel", bound.name, "links", len(links))

		results = append(results, ChannelLinks{Channel: bound.name, Links: links})
	}
	return results, nil
}
