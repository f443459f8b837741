package prior

import (
	"fmt"
	"math"

	"gwinfer/domain/core"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform represents N sampled parameters drawn from independent uniform
// distributions over declared finite (or periodic) ranges. Sampled
// parameters equal standard parameters identically: the transform is the
// identity up to domain clamping and periodic wrapping.
type Uniform struct {
	specs   []ParameterSpec
	logNorm float64 // -sum log(upper-lower), the in-support log density
}

var _ Prior = (*Uniform)(nil)

// NewUniform creates a bounded-uniform prior over the given parameter
// specs. Every spec must carry finite bounds; names must be unique.
func NewUniform(specs ...ParameterSpec) (*Uniform, error) {
	if len(specs) == 0 {
		return nil, core.NewConfigurationError("uniform prior requires at least one parameter")
	}
	seen := make(map[string]bool, len(specs))
	logNorm := 0.0
	owned := make([]ParameterSpec, len(specs))
	for i, s := range specs {
		if s.Name == "" {
			return nil, core.NewConfigurationError("uniform parameter name cannot be empty")
		}
		if seen[s.Name] {
			return nil, core.NewDuplicateParameterError(s.Name,
				"uniform prior", "uniform prior")
		}
		seen[s.Name] = true
		if !s.Finite() {
			return nil, core.NewConfigurationError(
				fmt.Sprintf("uniform parameter %q requires finite bounds", s.Name))
		}
		if s.Lower >= s.Upper {
			return nil, core.NewConfigurationError(
				fmt.Sprintf("uniform parameter %q requires lower < upper", s.Name))
		}
		owned[i] = s
		logNorm -= math.Log(s.Range())
	}
	return &Uniform{specs: owned, logNorm: logNorm}, nil
}

// Space declares N sampled parameters with identical standard names.
func (u *Uniform) Space() ParameterSpace {
	sampled := make([]ParameterSpec, len(u.specs))
	copy(sampled, u.specs)
	std := make([]string, len(u.specs))
	for i, s := range u.specs {
		std[i] = s.Name
	}
	return ParameterSpace{Sampled: sampled, Standard: std}
}

// Transform is the identity, after wrapping periodic coordinates into their
// interval and clamping non-periodic coordinates that overshoot bounds
// within tolerance. Coordinates strictly outside a non-periodic domain
// beyond tolerance are a domain error.
func (u *Uniform) Transform(sampled []float64) (StandardDict, error) {
	if len(sampled) != len(u.specs) {
		return nil, core.NewDimensionError(len(sampled), len(u.specs))
	}
	dict := make(StandardDict, len(u.specs))
	for i, s := range u.specs {
		x, err := u.normalize(s, sampled[i])
		if err != nil {
			return nil, err
		}
		dict[s.Name] = x
	}
	return dict, nil
}

// InverseTransform is the identity in the other direction, with the same
// domain checks. Extra keys in the dict are ignored; missing declared keys
// are an error.
func (u *Uniform) InverseTransform(standard StandardDict) ([]float64, error) {
	out := make([]float64, len(u.specs))
	for i, s := range u.specs {
		x, ok := standard[s.Name]
		if !ok {
			return nil, core.NewMissingParameterError(s.Name)
		}
		v, err := u.normalize(s, x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// normalize wraps/clamps x into spec's domain or reports a domain error.
func (u *Uniform) normalize(s ParameterSpec, x float64) (float64, error) {
	if s.Periodic {
		return s.Wrap(x), nil
	}
	tol := boundsTol * math.Max(1, math.Abs(s.Range()))
	if x < s.Lower-tol || x > s.Upper+tol {
		return 0, core.NewDomainError(s.Name, x, s.Lower, s.Upper)
	}
	// Clamp tolerated overshoot back into the half-open support.
	if x < s.Lower {
		x = s.Lower
	}
	if x >= s.Upper {
		x = math.Nextafter(s.Upper, s.Lower)
	}
	return x, nil
}

// LogDensity returns -sum(log(upper_i - lower_i)) for in-bounds vectors and
// -Inf for vectors with any non-periodic coordinate outside its strict
// half-open support. Bounds violations are density-zero here, not errors;
// the sampler is expected to treat -Inf as zero probability.
func (u *Uniform) LogDensity(sampled []float64) float64 {
	if len(sampled) != len(u.specs) {
		panic(core.NewDimensionError(len(sampled), len(u.specs)))
	}
	for i, s := range u.specs {
		if !s.Contains(sampled[i]) {
			return math.Inf(-1)
		}
	}
	return u.logNorm
}

// Sample draws one vector of independent uniform values using the supplied
// generator.
func (u *Uniform) Sample(rng *rand.Rand) []float64 {
	out := make([]float64, len(u.specs))
	for i, s := range u.specs {
		out[i] = distuv.Uniform{Min: s.Lower, Max: s.Upper, Src: rng}.Rand()
	}
	return out
}

// ConstructorFields is empty: the bounds are the uniform variant's
// statistical shape, not extra construction-time values.
func (u *Uniform) ConstructorFields() []ConstructorField {
	return nil
}
