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
	"github.com/transitionnets/seqlink/pkg/linking"
)

// RegisterAll adds every in-tree linker to the registry. Registration order
// fixes selection precedence, so entries with narrower predicates must come
// before broader ones.
func RegisterAll(registry *linking.Registry) {
	registry.Register(linking.Registration{
		Name:     IdentityLinkerType,
		Supports: SupportsIdentity,
		Factory:  IdentityLinkerFactory,
	})
}
