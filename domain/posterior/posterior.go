// Package posterior combines a prior with an externally supplied
// log-likelihood into a single log-posterior function of sampled
// parameters, the scalar an external stochastic sampler maximizes or
// integrates.
package posterior

import (
	"math"

	"gwinfer/domain/core"
	"gwinfer/domain/prior"
)

// LogLikelihood evaluates the log likelihood of a standard parameter point.
// Supplied by an external waveform/likelihood provider and treated as
// opaque; any error it returns propagates to the caller unchanged.
type LogLikelihood func(params prior.StandardDict) (float64, error)

// Posterior owns one prior (shared, immutable) and one likelihood callable.
// It carries no mutable state: LogPosterior is a pure function of its
// arguments and may be called from many parallel workers.
type Posterior struct {
	prior  prior.Prior
	loglik LogLikelihood
}

// New creates a posterior over the prior's sampled coordinates.
func New(p prior.Prior, loglik LogLikelihood) (*Posterior, error) {
	if p == nil {
		return nil, core.NewConfigurationError("posterior requires a prior")
	}
	if loglik == nil {
		return nil, core.NewConfigurationError("posterior requires a log-likelihood")
	}
	return &Posterior{prior: p, loglik: loglik}, nil
}

// Prior returns the owned prior.
func (p *Posterior) Prior() prior.Prior {
	return p.prior
}

// LogPosterior returns logPrior(sampled) + logLikelihood(transform(sampled)).
// When the prior density is zero the likelihood is never invoked: likelihood
// evaluation is the expensive operation and points outside the prior's
// support short-circuit to -Inf.
func (p *Posterior) LogPosterior(sampled []float64) (float64, error) {
	lp := p.prior.LogDensity(sampled)
	if math.IsInf(lp, -1) {
		return math.Inf(-1), nil
	}
	params, err := p.prior.Transform(sampled)
	if err != nil {
		return 0, err
	}
	ll, err := p.loglik(params)
	if err != nil {
		return 0, err
	}
	return lp + ll, nil
}
