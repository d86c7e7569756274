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
	"fmt"
)

// Channel describes one linked channel of a pipeline component: which
// feature formula the channel evaluates, how source indices translate into
// positions of the linked sequence, and which transition system the
// component runs. Channels are immutable values; two channels with equal
// fields describe the same channel.
type Channel struct {
	// FeatureFormula is the feature formula the channel evaluates,
	// e.g. "input.focus".
	FeatureFormula string
	// SourceTranslator names the index translation applied at the source.
	SourceTranslator string
	// TransitionSystem is the registered name of the component's
	// transition system.
	TransitionSystem string
}

// String renders the channel for logs and error messages.
func (c Channel) String() string {
	return fmt.Sprintf("formula=%q translator=%q transitionSystem=%q",
		c.FeatureFormula, c.SourceTranslator, c.TransitionSystem)
}
