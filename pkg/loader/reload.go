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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"sigs.k8s.io/controller-runtime/pkg/log"

	configapi "github.com/transitionnets/seqlink/apix/pipeline/v1alpha1"
	logutil "github.com/transitionnets/seqlink/pkg/util/logging"
)

// debounceDelay wait for events to settle before reloading
const debounceDelay = 250 * time.Millisecond

// ConfigReloader holds the most recently loaded pipeline configuration and
// swaps it whenever the spec file settles after a change. A reload that
// fails to parse or validate keeps the previous configuration in place.
type ConfigReloader struct {
	config *atomic.Pointer[configapi.PipelineConfig]
}

// NewConfigReloader starts watching the pipeline spec at path. Editors and
// config mounts replace the file rather than write it in place, so the
// watch goes on the parent directory and events are filtered by file name.
// onReload, when non-nil, runs after every successful swap.
func NewConfigReloader(ctx context.Context, path string, init *configapi.PipelineConfig, onReload func(*configapi.PipelineConfig)) (*ConfigReloader, error) {
	configPtr := &atomic.Pointer[configapi.PipelineConfig]{}
	configPtr.Store(init)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	logger := log.FromContext(ctx).
		WithName("config-reloader").
		WithValues("path", path)
	traceLogger := logger.V(logutil.TRACE)

	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close() // Clean up watcher before returning
		return nil, fmt.Errorf("failed to watch %q: %w", path, err)
	}

	go func() {
		defer w.Close()

		var debounceTimer *time.Timer

		for {
			select {
			case ev := <-w.Events:
				traceLogger.Info("Config changed", "event", ev)

				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if filepath.Base(ev.Name) != filepath.Base(path) {
					continue
				}

				// Debounce: reset the timer if we get another event
				if debounceTimer != nil {
					debounceTimer.Stop()
				}

				debounceTimer = time.AfterFunc(debounceDelay, func() {
					// This runs after the delay with no new events
					configBytes, err := os.ReadFile(path)
					if err != nil {
						logger.Error(err, "Failed to read pipeline configuration")
						return
					}
					cfg, err := LoadConfig(configBytes, logger)
					if err != nil {
						logger.Error(err, "Failed to reload pipeline configuration")
						return
					}
					configPtr.Store(cfg)
					traceLogger.Info("Reloaded pipeline configuration")
					if onReload != nil {
						onReload(cfg)
					}
				})

			case err := <-w.Errors:
				if err != nil {
					logger.Error(err, "config watcher failed")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return &ConfigReloader{config: configPtr}, nil
}

func (r *ConfigReloader) Get() *configapi.PipelineConfig {
	return r.config.Load()
}
