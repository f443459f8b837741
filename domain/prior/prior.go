// Package prior implements a composable prior-distribution framework for
// Bayesian parameter inference. A Prior maps a vector of sampled-parameter
// values to a log-density and a dict of standard (physical) parameters, and
// exposes the inverse mapping. Independent priors over disjoint parameter
// subsets compose into a joint prior with Combine.
package prior

import (
	"math"

	"golang.org/x/exp/rand"
)

// boundsTol is the relative tolerance applied by Transform/InverseTransform
// before a non-periodic coordinate is rejected as out of domain.
const boundsTol = 1e-9

// Prior is the full capability set shared by every variant (Fixed, Uniform,
// Combined, and any future reparametrization).
//
// Priors are immutable after construction and safe for concurrent use: no
// method mutates receiver state, and Sample draws only from the rand.Rand
// handed to it.
type Prior interface {
	// Space returns the prior's declared sampled and standard parameters.
	Space() ParameterSpace

	// Transform maps a sampled vector (in Space().Sampled order) to the
	// standard parameter dict. The returned dict's keys exactly equal
	// Space().Standard. Returns a dimension error for wrong-length input
	// and a domain error for coordinates outside declared non-periodic
	// bounds beyond tolerance; periodic coordinates are wrapped.
	Transform(sampled []float64) (StandardDict, error)

	// InverseTransform projects a standard parameter point back to sampled
	// coordinates. The dict may contain parameters outside this prior's
	// declared standard set (a combined parent passes the full point so
	// non-local transforms can read their context); extra keys are ignored,
	// missing declared keys are an error.
	InverseTransform(standard StandardDict) ([]float64, error)

	// LogDensity returns the log prior density with respect to the sampled
	// coordinates: finite inside the declared support, -Inf outside.
	// Panics on dimension mismatch (programmer error on a hot path).
	LogDensity(sampled []float64) float64

	// Sample draws one sampled vector from the prior using the supplied
	// generator. Reproducible given an explicitly seeded rand.Rand; there
	// is no hidden global random state.
	Sample(rng *rand.Rand) []float64

	// ConstructorFields declares the construction-time values this variant
	// requires beyond its statistical shape.
	ConstructorFields() []ConstructorField
}

// RoundTrip checks the transform round-trip law for a sampled vector within
// the prior's domain: InverseTransform(Transform(v)) must reproduce v to
// relative tolerance tol. Intended for tests and prior validation tooling.
func RoundTrip(p Prior, sampled []float64, tol float64) (bool, error) {
	dict, err := p.Transform(sampled)
	if err != nil {
		return false, err
	}
	back, err := p.InverseTransform(dict)
	if err != nil {
		return false, err
	}
	if len(back) != len(sampled) {
		return false, nil
	}
	for i := range sampled {
		scale := math.Max(1, math.Abs(sampled[i]))
		if math.Abs(back[i]-sampled[i]) > tol*scale {
			return false, nil
		}
	}
	return true, nil
}
