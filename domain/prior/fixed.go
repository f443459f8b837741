package prior

import (
	"sort"

	"gwinfer/domain/core"

	"golang.org/x/exp/rand"
)

// Fixed represents standard parameters whose values are known a priori and
// supplied at construction, never sampled. Conceptually a Dirac delta: it
// declares zero sampled dimensions and contributes no density term.
type Fixed struct {
	names  []string // sorted standard names
	values StandardDict
}

var _ Prior = (*Fixed)(nil)

// NewFixed creates a fixed-value prior over the given standard parameters,
// e.g. a pinned sky position {"ra": 0.0, "dec": 1.0}.
func NewFixed(values map[string]float64) (*Fixed, error) {
	if len(values) == 0 {
		return nil, core.NewConfigurationError("fixed prior requires at least one value")
	}
	owned := make(StandardDict, len(values))
	names := make([]string, 0, len(values))
	for name, v := range values {
		if name == "" {
			return nil, core.NewConfigurationError("fixed parameter name cannot be empty")
		}
		owned[name] = v
		names = append(names, name)
	}
	sort.Strings(names)
	return &Fixed{names: names, values: owned}, nil
}

// Space declares zero sampled parameters and the fixed standard names.
func (f *Fixed) Space() ParameterSpace {
	std := make([]string, len(f.names))
	copy(std, f.names)
	return ParameterSpace{Sampled: nil, Standard: std}
}

// Transform returns the fixed values. The input must be an empty vector;
// non-empty input is a usage error reported at call time, never silently
// ignored.
func (f *Fixed) Transform(sampled []float64) (StandardDict, error) {
	if len(sampled) != 0 {
		return nil, core.NewDimensionError(len(sampled), 0)
	}
	return f.values.Clone(), nil
}

// InverseTransform returns the empty sampled vector. It does not validate
// that supplied standard values match the fixed ones: this direction
// projects a full standard point back to sampled coordinates, it does not
// reconstruct from arbitrary points.
func (f *Fixed) InverseTransform(standard StandardDict) ([]float64, error) {
	return []float64{}, nil
}

// LogDensity is identically zero: a fixed value has no sampled dimension
// and a trivial normalizing prefactor of 1 under the change of variables.
func (f *Fixed) LogDensity(sampled []float64) float64 {
	if len(sampled) != 0 {
		panic(core.NewDimensionError(len(sampled), 0))
	}
	return 0
}

// Sample draws nothing; the sampled vector is empty.
func (f *Fixed) Sample(rng *rand.Rand) []float64 {
	return []float64{}
}

// ConstructorFields lists one required float per fixed parameter: the
// literal value a caller must supply when instantiating this prior for a
// new event.
func (f *Fixed) ConstructorFields() []ConstructorField {
	fields := make([]ConstructorField, len(f.names))
	for i, name := range f.names {
		fields[i] = ConstructorField{Name: name, Kind: "float64", Required: true}
	}
	return fields
}

// Values returns a copy of the fixed standard values.
func (f *Fixed) Values() StandardDict {
	return f.values.Clone()
}
