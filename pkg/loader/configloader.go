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

// Package loader turns serialized pipeline specs into validated, defaulted
// configuration objects and derives the per-component linking descriptors.
package loader

import (
	"fmt"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/serializer"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"

	configapi "github.com/transitionnets/seqlink/apix/pipeline/v1alpha1"
)

var scheme = runtime.NewScheme()

func init() {
	utilruntime.Must(configapi.Install(scheme))
}

// Load config from supplied text that was converted to []byte
func LoadConfig(configBytes []byte, logger logr.Logger) (*configapi.PipelineConfig, error) {
	rawConfig, err := loadRawConfig(configBytes)
	if err != nil {
		return nil, err
	}

	logger.Info("Loaded configuration", "config", rawConfig)

	configapi.SetDefaults_PipelineConfig(rawConfig)

	logger.Info("Configuration with defaults set", "config", rawConfig)

	if err = validateConfig(rawConfig); err != nil {
		return nil, fmt.Errorf("failed to validate pipeline configuration - %w", err)
	}

	return rawConfig, nil
}

func loadRawConfig(configBytes []byte) (*configapi.PipelineConfig, error) {
	rawConfig := &configapi.PipelineConfig{}

	codecs := serializer.NewCodecFactory(scheme, serializer.EnableStrict)
	err := runtime.DecodeInto(codecs.UniversalDecoder(), configBytes, rawConfig)
	if err != nil {
		return nil, fmt.Errorf("the configuration is invalid - %w", err)
	}
	return rawConfig, nil
}
