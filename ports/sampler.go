package ports

import (
	"context"

	"gwinfer/domain/posterior"
	"gwinfer/domain/prior"
	"gwinfer/domain/run"
	"gwinfer/domain/sample"
)

// PosteriorSampler is a stochastic search/integration algorithm that calls
// the posterior repeatedly and returns weighted samples plus an estimate of
// the marginal evidence.
type PosteriorSampler interface {
	// Run draws manifest.SampleCount samples. The proposal prior supplies
	// the draws; determinism is required given manifest.Seed.
	Run(ctx context.Context, post *posterior.Posterior, proposal prior.Prior, manifest *run.Manifest) (*sample.Result, error)
}
