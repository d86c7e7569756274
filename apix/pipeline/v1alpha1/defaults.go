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

package v1alpha1

// DefaultSourceTranslator is applied to channels that do not name a
// translator.
const DefaultSourceTranslator = "identity"

// SetDefaults_PipelineConfig sets default values in a PipelineConfig
// struct.
//
// This naming convention is required by the defaulter-gen code.
func SetDefaults_PipelineConfig(cfg *PipelineConfig) {
	for i := range cfg.Components {
		component := &cfg.Components[i]
		for j := range component.LinkedChannels {
			channel := &component.LinkedChannels[j]

			// If no name was given for the channel, use its formula as the name
			if channel.Name == "" {
				channel.Name = channel.FeatureFormula
			}
			if channel.SourceTranslator == "" {
				channel.SourceTranslator = DefaultSourceTranslator
			}
			// A channel without a source is recurrent, it links back into
			// the component that owns it.
			if channel.SourceComponent == "" {
				channel.SourceComponent = component.Name
			}
		}
	}
}
