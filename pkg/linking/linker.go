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

	"github.com/transitionnets/seqlink/pkg/batch"
	"github.com/transitionnets/seqlink/pkg/plugin"
	errutil "github.com/transitionnets/seqlink/pkg/util/error"
)

// NoLink marks a step that has no corresponding position in the linked
// sequence.
const NoLink int32 = -1

// SequenceLinker computes, for each step of a transition sequence, the
// position in the linked input sequence the step draws from.
//
// Implementations must be safe for concurrent use once constructed.
type SequenceLinker interface {
	plugin.Plugin

	// GetLinks returns exactly stepCount link indices for the given batch.
	// Entry i is a position in the linked sequence, or NoLink when step i
	// has none. The batch must not be modified.
	GetLinks(ctx context.Context, stepCount int, input *batch.Batch) ([]int32, error)
}

// ValidateRequest checks the arguments every linker receives. A nil batch
// handle or a negative step count cannot be served by any linker. An empty
// batch is a usable handle.
func ValidateRequest(stepCount int, input *batch.Batch) error {
	if stepCount < 0 {
		return errutil.Error{Code: errutil.BadInput, Msg: fmt.Sprintf("negative step count %d", stepCount)}
	}
	if input == nil {
		return errutil.Error{Code: errutil.BadInput, Msg: "nil input batch"}
	}
	return nil
}
