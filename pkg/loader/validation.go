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
	"fmt"

	"go.uber.org/multierr"
	"k8s.io/apimachinery/pkg/util/sets"

	configapi "github.com/transitionnets/seqlink/apix/pipeline/v1alpha1"
)

// validateConfig performs a deep validation of the configuration integrity.
// Violations are aggregated so a broken pipeline spec reports all of its
// problems in one pass.
func validateConfig(cfg *configapi.PipelineConfig) error {
	var errs error

	componentNames := sets.New[string]()
	for i, component := range cfg.Components {
		if component.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("components[%d] is missing a name", i))
			continue
		}
		if componentNames.Has(component.Name) {
			errs = multierr.Append(errs, fmt.Errorf("components[%d] has duplicate name '%s'", i, component.Name))
		}
		componentNames.Insert(component.Name)

		if component.TransitionSystem.RegisteredName == "" {
			errs = multierr.Append(errs, fmt.Errorf("component '%s' is missing a transition system", component.Name))
		}

		errs = multierr.Append(errs, validateLinkedChannels(component, componentNames))
	}

	return errs
}

// validateLinkedChannels checks the channels of a single component. The
// definedComponents set holds the components declared so far, including the
// owner itself; a channel may only draw activations from those.
func validateLinkedChannels(component configapi.ComponentSpec, definedComponents sets.Set[string]) error {
	var errs error

	channelNames := sets.New[string]()
	for j, channel := range component.LinkedChannels {
		if channel.FeatureFormula == "" {
			errs = multierr.Append(errs,
				fmt.Errorf("component '%s' channels[%d] is missing a feature formula", component.Name, j))
		}
		if channel.Name == "" {
			// Only reachable when the formula was empty too, defaulting
			// names every channel with a formula.
			errs = multierr.Append(errs, fmt.Errorf("component '%s' channels[%d] is missing a name", component.Name, j))
			continue
		}
		if channelNames.Has(channel.Name) {
			errs = multierr.Append(errs,
				fmt.Errorf("component '%s' has duplicate channel name '%s'", component.Name, channel.Name))
		}
		channelNames.Insert(channel.Name)

		if !definedComponents.Has(channel.SourceComponent) {
			errs = multierr.Append(errs,
				fmt.Errorf("channel '%s' of component '%s' links to undeclared component '%s'",
					channel.Name, component.Name, channel.SourceComponent))
		}
	}

	return errs
}
