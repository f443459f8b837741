package prior

import (
	"fmt"
	"math"
	"sort"

	"gwinfer/domain/core"
)

// ParameterSpec describes a single named parameter and its domain.
// INVARIANTS:
// - Name is non-empty and unique within its owning ParameterSpace
// - Lower < Upper when both are finite
// - Periodic parameters always carry finite bounds (the wrap interval)
// Immutable once constructed.
type ParameterSpec struct {
	Name     string  `json:"name"`
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	Periodic bool    `json:"periodic"`
}

// NewBoundedSpec creates a spec over the half-open interval [lower, upper).
func NewBoundedSpec(name string, lower, upper float64) (ParameterSpec, error) {
	return newSpec(name, lower, upper, false)
}

// NewPeriodicSpec creates a spec over [lower, upper) with wrap-around
// semantics, e.g. an orbital phase on [0, 2pi).
func NewPeriodicSpec(name string, lower, upper float64) (ParameterSpec, error) {
	if math.IsInf(lower, 0) || math.IsInf(upper, 0) {
		return ParameterSpec{}, core.NewConfigurationError(
			fmt.Sprintf("periodic parameter %q requires finite bounds", name))
	}
	return newSpec(name, lower, upper, true)
}

// NewUnboundedSpec creates a spec with no domain restriction.
func NewUnboundedSpec(name string) (ParameterSpec, error) {
	return newSpec(name, math.Inf(-1), math.Inf(1), false)
}

func newSpec(name string, lower, upper float64, periodic bool) (ParameterSpec, error) {
	if name == "" {
		return ParameterSpec{}, core.NewConfigurationError("parameter name cannot be empty")
	}
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return ParameterSpec{}, core.NewConfigurationError(
			fmt.Sprintf("parameter %q has NaN bounds", name))
	}
	if lower >= upper {
		return ParameterSpec{}, core.NewConfigurationError(
			fmt.Sprintf("parameter %q requires lower < upper, got [%g, %g)", name, lower, upper))
	}
	return ParameterSpec{Name: name, Lower: lower, Upper: upper, Periodic: periodic}, nil
}

// MustBoundedSpec creates a bounded spec (panics on invalid input).
// Use only in tests and fixture construction.
func MustBoundedSpec(name string, lower, upper float64) ParameterSpec {
	s, err := NewBoundedSpec(name, lower, upper)
	if err != nil {
		panic(err)
	}
	return s
}

// Range returns the width of the declared domain.
func (s ParameterSpec) Range() float64 {
	return s.Upper - s.Lower
}

// Finite reports whether both bounds are finite.
func (s ParameterSpec) Finite() bool {
	return !math.IsInf(s.Lower, 0) && !math.IsInf(s.Upper, 0)
}

// Contains reports whether x lies in the half-open support [Lower, Upper).
// Periodic parameters contain every finite value (it wraps).
func (s ParameterSpec) Contains(x float64) bool {
	if math.IsNaN(x) {
		return false
	}
	if s.Periodic {
		return !math.IsInf(x, 0)
	}
	return x >= s.Lower && x < s.Upper
}

// Wrap maps x into [Lower, Upper) for periodic parameters; identity otherwise.
func (s ParameterSpec) Wrap(x float64) float64 {
	if !s.Periodic {
		return x
	}
	r := s.Range()
	w := math.Mod(x-s.Lower, r)
	if w < 0 {
		w += r
	}
	return s.Lower + w
}

// StandardDict maps standard (physical) parameter names to values.
// Unordered; after a Transform call its keys exactly equal the producing
// prior's declared standard parameter set.
type StandardDict map[string]float64

// Clone returns a copy of the dict.
func (d StandardDict) Clone() StandardDict {
	out := make(StandardDict, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Names returns the sorted key set.
func (d StandardDict) Names() []string {
	names := make([]string, 0, len(d))
	for k := range d {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Merge copies all entries of other into d, failing on key collision.
func (d StandardDict) Merge(other StandardDict) error {
	for k, v := range other {
		if _, exists := d[k]; exists {
			return core.NewDuplicateParameterError(k, "merged dict", "receiver dict")
		}
		d[k] = v
	}
	return nil
}

// ParameterSpace describes the two coordinate systems a prior operates in:
// the ordered sampled parameters a stochastic sampler explores, and the
// standard parameter names consumed by the likelihood. The sampled order is
// fixed at prior construction and defines the sampler's coordinate system.
type ParameterSpace struct {
	Sampled  []ParameterSpec `json:"sampled"`
	Standard []string        `json:"standard"`
}

// NSampled returns the sampled dimensionality.
func (s ParameterSpace) NSampled() int { return len(s.Sampled) }

// SampledNames returns sampled parameter names in declaration order.
func (s ParameterSpace) SampledNames() []string {
	names := make([]string, len(s.Sampled))
	for i, spec := range s.Sampled {
		names[i] = spec.Name
	}
	return names
}

// HasStandard reports whether name is in the standard set.
func (s ParameterSpace) HasStandard(name string) bool {
	for _, n := range s.Standard {
		if n == name {
			return true
		}
	}
	return false
}

// Hash fingerprints the space for run manifests.
func (s ParameterSpace) Hash() core.PriorHash {
	bounds := make(map[string][2]float64, len(s.Sampled))
	for _, spec := range s.Sampled {
		bounds[spec.Name] = [2]float64{spec.Lower, spec.Upper}
	}
	return core.ComputePriorHash(s.SampledNames(), bounds, s.Standard)
}

// ConstructorField declares one construction-time value a prior variant
// requires beyond its statistical shape. This is the explicit, static
// replacement for runtime constructor reflection: tooling reads these to
// know what extra arguments must be supplied when instantiating a prior
// for a new event.
type ConstructorField struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Required bool   `json:"required"`
}
