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

import (
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// +kubebuilder:object:root=true

// PipelineConfig is the Schema for the pipelineconfigs API
type PipelineConfig struct {
	metav1.TypeMeta `json:",inline"`

	// +required
	// +kubebuilder:validation:Required
	// Components is the ordered list of pipeline components. Order is
	// significant: a component may only link to components declared before
	// it.
	Components []ComponentSpec `json:"components"`
}

func (cfg PipelineConfig) String() string {
	return fmt.Sprintf("{Components: %v}", cfg.Components)
}

// ComponentSpec describes one component of the pipeline: the transition
// system it runs and the linked feature channels it reads.
type ComponentSpec struct {
	// +required
	// +kubebuilder:validation:Required
	// Name identifies the component within the pipeline.
	Name string `json:"name"`

	// +required
	// +kubebuilder:validation:Required
	// TransitionSystem describes the transition system the component runs.
	TransitionSystem TransitionSystemSpec `json:"transitionSystem"`

	// +optional
	// LinkedChannels is the list of linked feature channels of the
	// component. A component without linked channels reads fixed features
	// only.
	LinkedChannels []LinkedChannelSpec `json:"linkedChannels,omitempty"`
}

func (cs ComponentSpec) String() string {
	return fmt.Sprintf("{Name: %s, TransitionSystem: %v, LinkedChannels: %v}",
		cs.Name, cs.TransitionSystem, cs.LinkedChannels)
}

// TransitionSystemSpec identifies the transition system of a component.
type TransitionSystemSpec struct {
	// +required
	// +kubebuilder:validation:Required
	// RegisteredName is the name the transition system is registered under.
	RegisteredName string `json:"registeredName"`
}

func (ts TransitionSystemSpec) String() string {
	return fmt.Sprintf("{RegisteredName: %s}", ts.RegisteredName)
}

// LinkedChannelSpec describes one linked feature channel of a component.
type LinkedChannelSpec struct {
	// +optional
	// Name provides a name for channel entries to reference. If omitted,
	// the value of the channel's FeatureFormula field will be used.
	Name string `json:"name,omitempty"`

	// +required
	// +kubebuilder:validation:Required
	// FeatureFormula is the feature formula the channel evaluates.
	FeatureFormula string `json:"featureFormula"`

	// +optional
	// SourceTranslator names the index translation applied at the source.
	// If omitted, the identity translation is used.
	SourceTranslator string `json:"sourceTranslator,omitempty"`

	// +optional
	// SourceComponent names the upstream component the channel links to.
	// If omitted, the channel links to the component's own input sequence.
	SourceComponent string `json:"sourceComponent,omitempty"`
}

func (lc LinkedChannelSpec) String() string {
	var source string
	if lc.SourceComponent != "" {
		source = fmt.Sprintf(", SourceComponent: %s", lc.SourceComponent)
	}
	return fmt.Sprintf("{Name: %s, FeatureFormula: %s, SourceTranslator: %s%s}",
		lc.Name, lc.FeatureFormula, lc.SourceTranslator, source)
}

func init() {
	SchemeBuilder.Register(&PipelineConfig{})
}
