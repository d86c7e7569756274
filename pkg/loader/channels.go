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

package loader

import (
	configapi "github.com/transitionnets/seqlink/apix/pipeline/v1alpha1"
	"github.com/transitionnets/seqlink/pkg/linking"
)

// Channels derives the linking descriptors for one component of a loaded
// pipeline. Every channel is stamped with the transition system of the
// component that owns it, which is what linkers match against, not the
// transition system of the source component.
func Channels(component configapi.ComponentSpec) []linking.NamedChannel {
	channels := make([]linking.NamedChannel, 0, len(component.LinkedChannels))
	for _, spec := range component.LinkedChannels {
		channels = append(channels, linking.NamedChannel{
			Name: spec.Name,
			Channel: linking.Channel{
				FeatureFormula:   spec.FeatureFormula,
				SourceTranslator: spec.SourceTranslator,
				TransitionSystem: component.TransitionSystem.RegisteredName,
			},
		})
	}
	return channels
}
