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

// --- Valid Configurations ---

// successConfigText is a fully populated two component pipeline. It mixes
// explicit channel names and translators with omitted ones that defaulting
// must fill in.
const successConfigText = `
apiVersion: pipeline.seqlink.dev/v1alpha1
kind: PipelineConfig
components:
- name: tagger
  transitionSystem:
    registeredName: shift-only
  linkedChannels:
  - name: tokens
    featureFormula: input.focus
    sourceTranslator: identity
- name: parser
  transitionSystem:
    registeredName: arc-standard
  linkedChannels:
  - featureFormula: input.focus
    sourceComponent: tagger
  - name: state
    featureFormula: last-action
    sourceTranslator: shift-reduce-step
`

// successNoChannelsText is a valid pipeline whose single component has no
// linked channels at all.
const successNoChannelsText = `
apiVersion: pipeline.seqlink.dev/v1alpha1
kind: PipelineConfig
components:
- name: segmenter
  transitionSystem:
    registeredName: char-shift-only
`

// --- Invalid Configurations ---

// errorBadYamlText is not parseable YAML.
const errorBadYamlText = `
apiVersion: pipeline.seqlink.dev/v1alpha1
kind: PipelineConfig
components: [ {name: "broken"
`

// errorUnknownFieldText carries a field the API does not define; strict
// decoding must reject it.
const errorUnknownFieldText = `
apiVersion: pipeline.seqlink.dev/v1alpha1
kind: PipelineConfig
components:
- name: tagger
  transitionSystem:
    registeredName: shift-only
  unexpectedField: true
`

// errorWrongKindText names a kind the scheme does not know.
const errorWrongKindText = `
apiVersion: pipeline.seqlink.dev/v1alpha1
kind: SomethingElse
components: []
`

// errorForwardLinkText links a channel to a component declared later in the
// pipeline.
const errorForwardLinkText = `
apiVersion: pipeline.seqlink.dev/v1alpha1
kind: PipelineConfig
components:
- name: tagger
  transitionSystem:
    registeredName: shift-only
  linkedChannels:
  - featureFormula: input.focus
    sourceComponent: parser
- name: parser
  transitionSystem:
    registeredName: arc-standard
`

// errorManyProblemsText violates several rules at once: a duplicate
// component name, a channel without a formula, and a missing transition
// system. Validation must report all of them.
const errorManyProblemsText = `
apiVersion: pipeline.seqlink.dev/v1alpha1
kind: PipelineConfig
components:
- name: tagger
  transitionSystem:
    registeredName: shift-only
- name: tagger
  linkedChannels:
  - name: tokens
`

// errorDuplicateChannelText declares two channels of one component with the
// same name.
const errorDuplicateChannelText = `
apiVersion: pipeline.seqlink.dev/v1alpha1
kind: PipelineConfig
components:
- name: tagger
  transitionSystem:
    registeredName: shift-only
  linkedChannels:
  - name: tokens
    featureFormula: input.focus
  - name: tokens
    featureFormula: char-input.focus
`
