// Package app wires priors, likelihood providers, samplers, and sinks into
// complete inference runs.
package app

import (
	"context"

	"gwinfer/domain/core"
	"gwinfer/domain/posterior"
	"gwinfer/domain/prior"
	"gwinfer/domain/run"
	"gwinfer/domain/sample"
	"gwinfer/internal"
	"gwinfer/internal/errors"
	"gwinfer/ports"
)

// codeVersion tags manifests; bump when sampling semantics change.
const codeVersion = "0.2.0"

// InferenceService runs Bayesian parameter estimation for one event: it
// builds the posterior from a prior and a likelihood provider, samples it,
// and fans the weighted results out to the configured sinks.
type InferenceService struct {
	prior      prior.Prior
	likelihood ports.LikelihoodProvider
	sampler    ports.PosteriorSampler
	sinks      []ports.ResultSink
	logger     *internal.Logger
}

// NewInferenceService assembles a service. At least a prior, likelihood
// provider, and sampler are required; sinks are optional.
func NewInferenceService(p prior.Prior, lk ports.LikelihoodProvider, s ports.PosteriorSampler, logger *internal.Logger, sinks ...ports.ResultSink) (*InferenceService, error) {
	if p == nil {
		return nil, errors.ConfigInvalid("inference service requires a prior")
	}
	if lk == nil {
		return nil, errors.ConfigInvalid("inference service requires a likelihood provider")
	}
	if s == nil {
		return nil, errors.ConfigInvalid("inference service requires a sampler")
	}
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &InferenceService{prior: p, likelihood: lk, sampler: s, sinks: sinks, logger: logger}, nil
}

// Run samples the posterior with the given determinism parameters and
// writes results to every sink. Returns the result alongside the manifest
// so callers can inspect evidence and marginals directly.
func (s *InferenceService) Run(ctx context.Context, eventID core.EventID, seed uint64, sampleCount, workers int) (*run.Manifest, *sample.Result, error) {
	post, err := posterior.New(s.prior, s.likelihood.LogLikelihood)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to build posterior")
	}

	manifest := run.NewManifest(eventID, s.prior.Space(), seed, sampleCount, workers, codeVersion)
	if err := manifest.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid run manifest")
	}
	s.logger.Info("starting run %s for event %s (seed=%d, samples=%d)",
		manifest.RunID, eventID, seed, sampleCount)

	result, err := s.sampler.Run(ctx, post, s.prior, manifest)
	if err != nil {
		return nil, nil, errors.Wrap(err, "sampling failed")
	}

	for _, sink := range s.sinks {
		if err := sink.WriteResult(ctx, manifest, result); err != nil {
			return nil, nil, errors.Wrap(err, "failed to write results")
		}
	}
	return manifest, result, nil
}
