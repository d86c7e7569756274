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

// Package runner drives the linkcheck harness: it loads a pipeline spec,
// binds every linked channel to a registered sequence linker, and can trace
// link indices for sample input, watch the spec for changes, and serve
// metrics while doing so.
package runner

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	uberzap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	crmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"
	"sigs.k8s.io/yaml"

	configapi "github.com/transitionnets/seqlink/apix/pipeline/v1alpha1"
	"github.com/transitionnets/seqlink/pkg/batch"
	"github.com/transitionnets/seqlink/pkg/linking"
	"github.com/transitionnets/seqlink/pkg/linking/linkers"
	"github.com/transitionnets/seqlink/pkg/loader"
	"github.com/transitionnets/seqlink/pkg/metrics"
	"github.com/transitionnets/seqlink/pkg/util/env"
	logutil "github.com/transitionnets/seqlink/pkg/util/logging"
	"github.com/transitionnets/seqlink/version"
)

var (
	// configuration flags
	configFile = flag.String(
		"config-file",
		"",
		"The path to the pipeline configuration file")
	configText = flag.String(
		"config-text",
		"",
		"The pipeline configuration specified as text, in lieu of a file")
	// trace flags
	traceInput = flag.String(
		"trace-input",
		"",
		"A sample input record; when set, the link indices every channel produces for it are printed as YAML")
	traceSteps = flag.Int(
		"trace-steps",
		0,
		"The number of transition steps to trace; defaults to the token count of the trace input")
	watchSpec = flag.Bool(
		"watch",
		false,
		"Re-validates the configuration file whenever it changes; requires config-file")
	metricsPort = flag.Int(
		"metrics-port",
		0,
		"The metrics port; set to 0 to disable metrics serving")
	logVerbosity = flag.Int(
		"v",
		logutil.DEFAULT,
		"number for the log level verbosity")

	setupLog = ctrl.Log.WithName("setup")
)

// NewRunner initializes a new linkcheck Runner and returns its pointer.
func NewRunner() *Runner {
	return &Runner{
		registry: linking.DefaultRegistry(),
	}
}

// Runner is used to run linkcheck against a sequence linker registry.
type Runner struct {
	registry *linking.Registry
}

func (r *Runner) WithRegistry(registry *linking.Registry) *Runner {
	r.registry = registry
	return r
}

func bindEnvToFlags() {
	// map[ENV_VAR]flagName   – add more as needed
	for env, flg := range map[string]string{
		"CONFIG_FILE":  "config-file",
		"TRACE_INPUT":  "trace-input",
		"TRACE_STEPS":  "trace-steps",
		"METRICS_PORT": "metrics-port",
		// bools work too; flag.Set expects the *string* form
		"WATCH": "watch",
	} {
		if v := os.Getenv(env); v != "" {
			// ignore error; Parse() will catch invalid values later
			_ = flag.Set(flg, v)
		}
	}
}

func (r *Runner) Run(ctx context.Context) error {
	// Defaults already baked into flag declarations
	// Load env vars as "soft" overrides
	bindEnvToFlags()

	opts := zap.Options{
		Development: true,
	}
	opts.BindFlags(flag.CommandLine)
	flag.Parse()
	initLogging(&opts)

	setupLog.Info("SeqLink build", "commit-sha", version.CommitSHA, "build-ref", version.BuildRef)

	// Validate flags
	if err := validateFlags(); err != nil {
		setupLog.Error(err, "Failed to validate flags")
		return err
	}

	// Print all flag values
	flags := make(map[string]any)
	flag.VisitAll(func(f *flag.Flag) {
		flags[f.Name] = f.Value
	})
	setupLog.Info("Flags processed", "flags", flags)

	linkers.RegisterAll(r.registry)
	setupLog.Info("Sequence linkers registered", "linkers", r.registry.Names())

	if *metricsPort > 0 {
		metrics.Register()
		metrics.RecordBuildInfo(version.CommitSHA, version.BuildRef)
		serveMetrics(ctx, *metricsPort)
	}

	cfg, err := r.loadPipeline(ctx)
	if err != nil {
		setupLog.Error(err, "Failed to load the pipeline configuration")
		return err
	}

	sets, err := r.bindPipeline(ctx, cfg)
	if err != nil {
		setupLog.Error(err, "Pipeline validation failed")
		return err
	}

	if *traceInput != "" {
		if err := r.trace(ctx, sets); err != nil {
			setupLog.Error(err, "Failed to trace link indices")
			return err
		}
	}

	if *watchSpec {
		return r.watch(ctx, cfg)
	}
	return nil
}

// loadPipeline reads the pipeline spec from the file or text flag.
func (r *Runner) loadPipeline(ctx context.Context) (*configapi.PipelineConfig, error) {
	var configBytes []byte
	if *configText != "" {
		configBytes = []byte(*configText)
	} else { // config was specified through a file
		var err error
		configBytes, err = os.ReadFile(*configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from a file '%s' - %w", *configFile, err)
		}
	}

	cfg, err := loader.LoadConfig(configBytes, log.FromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to load the configuration - %w", err)
	}
	return cfg, nil
}

// bindPipeline selects and constructs a linker for every linked channel of
// every component, all components concurrently.
func (r *Runner) bindPipeline(ctx context.Context, cfg *configapi.PipelineConfig) ([]*linking.ChannelSet, error) {
	logger := log.FromContext(ctx)

	sets := make([]*linking.ChannelSet, len(cfg.Components))
	var g errgroup.Group
	for i, component := range cfg.Components {
		g.Go(func() error {
			set, err := linking.NewChannelSet(r.registry, component.Name, loader.Channels(component))
			if err != nil {
				return err
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, set := range sets {
		logger.Info("Component channels bound", "component", set.Component(), "linkers", set.Linkers())
	}
	return sets, nil
}

// traceReport is the YAML document trace mode prints.
type traceReport struct {
	RequestID  string           `json:"requestID"`
	Input      string           `json:"input"`
	Steps      int              `json:"steps"`
	Components []componentTrace `json:"components"`
}

type componentTrace struct {
	Component string         `json:"component"`
	Channels  []channelTrace `json:"channels"`
}

type channelTrace struct {
	Channel string  `json:"channel"`
	Links   []int32 `json:"links"`
}

// trace runs every bound channel against the sample input and prints the
// produced link indices as YAML.
func (r *Runner) trace(ctx context.Context, sets []*linking.ChannelSet) error {
	logger := log.FromContext(ctx)
	store := batch.NewStore(batch.StoreConfig{
		TTL:      env.GetEnvDuration("BATCH_STORE_TTL", batch.DefaultStoreTTL, logger),
		Capacity: uint64(env.GetEnvInt("BATCH_STORE_CAPACITY", batch.DefaultStoreCapacity, logger)),
	})
	defer store.Stop()

	key := store.Put(batch.New(*traceInput))
	input, ok := store.Get(key)
	if !ok {
		return fmt.Errorf("trace input missing from the batch store under key %d", key)
	}

	steps := *traceSteps
	if steps == 0 {
		steps = len(input.Tokens(0))
	}

	requestID := uuid.New().String()
	traceCtx := log.IntoContext(ctx, log.FromContext(ctx).WithValues("x-request-id", requestID))

	report := traceReport{RequestID: requestID, Input: *traceInput, Steps: steps}
	for _, set := range sets {
		links, err := set.GetLinks(traceCtx, steps, input)
		if err != nil {
			return err
		}
		component := componentTrace{Component: set.Component()}
		for _, channelLinks := range links {
			component.Channels = append(component.Channels, channelTrace{
				Channel: channelLinks.Channel,
				Links:   channelLinks.Links,
			})
		}
		report.Components = append(report.Components, component)
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to render the trace report - %w", err)
	}
	fmt.Print(string(out))
	return nil
}

// watch blocks until ctx is done, rebinding the pipeline every time the
// spec file settles after a change.
func (r *Runner) watch(ctx context.Context, cfg *configapi.PipelineConfig) error {
	logger := log.FromContext(ctx)

	_, err := loader.NewConfigReloader(ctx, *configFile, cfg, func(next *configapi.PipelineConfig) {
		if _, err := r.bindPipeline(ctx, next); err != nil {
			logger.Error(err, "Pipeline validation failed", "file", *configFile)
			return
		}
		logger.Info("Pipeline validated", "file", *configFile)
	})
	if err != nil {
		return fmt.Errorf("failed to watch '%s' - %w", *configFile, err)
	}

	setupLog.Info("Watching pipeline configuration", "file", *configFile)
	<-ctx.Done()
	return nil
}

// serveMetrics exposes the metrics registry over plain HTTP. The harness
// runs outside any cluster, so the authenticated manager metrics server
// stays out of the picture.
func serveMetrics(ctx context.Context, port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		crmetrics.Registry,
		promhttp.HandlerOpts{EnableOpenMetrics: true},
	))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()
	go func() {
		setupLog.Info("Metrics server listening", "port", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			setupLog.Error(err, "Metrics server failed")
		}
	}()
}

func initLogging(opts *zap.Options) {
	// Unless -zap-log-level is explicitly set, use -v
	useV := true
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "zap-log-level" {
			useV = false
		}
	})
	if useV {
		// See https://pkg.go.dev/sigs.k8s.io/controller-runtime/pkg/log/zap#Options.Level
		lvl := -1 * (*logVerbosity)
		opts.Level = uberzap.NewAtomicLevelAt(zapcore.Level(int8(lvl)))
	}

	logger := zap.New(zap.UseFlagOptions(opts), zap.RawZapOpts(uberzap.AddCaller()))
	ctrl.SetLogger(logger)
}

func validateFlags() error {
	if *configText == "" && *configFile == "" {
		return fmt.Errorf("one of the %q and %q flags must be set", "configText", "configFile")
	}
	if *configText != "" && *configFile != "" {
		return fmt.Errorf("both the %q and %q flags can not be set at the same time", "configText", "configFile")
	}
	if *watchSpec && *configFile == "" {
		return fmt.Errorf("the %q flag requires the %q flag", "watch", "configFile")
	}
	if *traceSteps < 0 {
		return fmt.Errorf("the %q flag can not be negative", "traceSteps")
	}
	return nil
}
