// Package likelihood provides a stand-in likelihood provider for tests and
// demos. A production deployment replaces this adapter with a binding to an
// external waveform library (e.g. a relative-binning strain likelihood).
package likelihood

import (
	"gwinfer/domain/core"
	"gwinfer/domain/prior"
	"gwinfer/ports"

	"gonum.org/v1/gonum/stat/distuv"
)

// Gaussian scores standard parameter points by independent normal
// log-probabilities around a reference (best-fit) point. Parameters absent
// from the reference are ignored, mirroring likelihoods that are
// insensitive to pinned extrinsic parameters.
type Gaussian struct {
	reference prior.StandardDict
	sigma     map[string]float64
}

var _ ports.LikelihoodProvider = (*Gaussian)(nil)

// NewGaussian creates a provider centered on reference with per-parameter
// standard deviations. Every sigma key must appear in the reference.
func NewGaussian(reference prior.StandardDict, sigma map[string]float64) (*Gaussian, error) {
	if len(reference) == 0 {
		return nil, core.NewConfigurationError("gaussian likelihood requires a reference point")
	}
	for name, s := range sigma {
		if _, ok := reference[name]; !ok {
			return nil, core.NewMissingParameterError(name)
		}
		if s <= 0 {
			return nil, core.NewConfigurationError("sigma must be > 0 for " + name)
		}
	}
	return &Gaussian{reference: reference.Clone(), sigma: sigma}, nil
}

// LogLikelihood sums normal log-densities over the parameters with declared
// sigmas.
func (g *Gaussian) LogLikelihood(params prior.StandardDict) (float64, error) {
	total := 0.0
	for name, s := range g.sigma {
		x, ok := params[name]
		if !ok {
			return 0, core.NewMissingParameterError(name)
		}
		total += distuv.Normal{Mu: g.reference[name], Sigma: s}.LogProb(x)
	}
	return total, nil
}

// ReferenceParameters returns the best-fit point.
func (g *Gaussian) ReferenceParameters() prior.StandardDict {
	return g.reference.Clone()
}
