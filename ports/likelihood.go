package ports

import (
	"gwinfer/domain/prior"
)

// LikelihoodProvider abstracts the external waveform/likelihood library
// (e.g. a relative-binning likelihood over detector strain). Its internals
// are opaque to this module.
type LikelihoodProvider interface {
	// LogLikelihood evaluates the log likelihood at a standard parameter
	// point. Errors propagate to the caller unchanged.
	LogLikelihood(params prior.StandardDict) (float64, error)

	// ReferenceParameters returns the provider's best-fit standard point,
	// used to initialize sampling.
	ReferenceParameters() prior.StandardDict
}
