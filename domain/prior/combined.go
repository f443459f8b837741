package prior

import (
	"fmt"
	"math"
	"sort"

	"gwinfer/domain/core"

	"golang.org/x/exp/rand"
)

// Combined composes K independent child priors over disjoint sampled
// subsets into one joint prior over the concatenated sampled vector.
// INVARIANTS (validated once, eagerly, at construction):
// - no two children declare the same sampled parameter name
// - the union of children's standard names equals the required target set
//   exactly, with no duplicates
// Children are statistically independent in the sampled coordinates by
// construction; dependent parameters must be encoded inside a single child.
type Combined struct {
	children []Prior
	offsets  []int // start index of each child's slice in the joint vector
	space    ParameterSpace
}

var _ Prior = (*Combined)(nil)

// Combine builds a joint prior from child priors in order, verifying their
// standard parameter outputs jointly and exactly cover the required set.
func Combine(required []string, children ...Prior) (*Combined, error) {
	if len(children) == 0 {
		return nil, core.NewConfigurationError("combined prior requires at least one child")
	}
	if len(required) == 0 {
		return nil, core.NewConfigurationError("combined prior requires a target standard parameter set")
	}

	sampledOwner := make(map[string]int)
	standardOwner := make(map[string]int)
	var sampled []ParameterSpec
	offsets := make([]int, len(children))

	for i, child := range children {
		if child == nil {
			return nil, core.NewConfigurationError(fmt.Sprintf("child %d is nil", i))
		}
		space := child.Space()
		offsets[i] = len(sampled)
		for _, spec := range space.Sampled {
			if j, dup := sampledOwner[spec.Name]; dup {
				return nil, core.NewDuplicateParameterError(spec.Name,
					describeChild(children[j], j), describeChild(child, i))
			}
			sampledOwner[spec.Name] = i
			sampled = append(sampled, spec)
		}
		for _, name := range space.Standard {
			if j, dup := standardOwner[name]; dup {
				return nil, core.NewDuplicateParameterError(name,
					describeChild(children[j], j), describeChild(child, i))
			}
			standardOwner[name] = i
		}
	}

	requiredSet := make(map[string]bool, len(required))
	for _, name := range required {
		if requiredSet[name] {
			return nil, core.NewConfigurationError(
				fmt.Sprintf("target set lists %q twice", name))
		}
		requiredSet[name] = true
	}
	var missing, extra []string
	for name := range requiredSet {
		if _, ok := standardOwner[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range standardOwner {
		if !requiredSet[name] {
			extra = append(extra, name)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(missing)
		sort.Strings(extra)
		return nil, core.NewCoverageError(missing, extra)
	}

	std := make([]string, 0, len(required))
	std = append(std, required...)
	sort.Strings(std)

	owned := make([]Prior, len(children))
	copy(owned, children)
	return &Combined{
		children: owned,
		offsets:  offsets,
		space:    ParameterSpace{Sampled: sampled, Standard: std},
	}, nil
}

func describeChild(p Prior, index int) string {
	return fmt.Sprintf("child %d (%T)", index, p)
}

// Space returns the concatenated sampled specs (in child order) and the
// sorted target standard set.
func (c *Combined) Space() ParameterSpace {
	sampled := make([]ParameterSpec, len(c.space.Sampled))
	copy(sampled, c.space.Sampled)
	std := make([]string, len(c.space.Standard))
	copy(std, c.space.Standard)
	return ParameterSpace{Sampled: sampled, Standard: std}
}

// Children returns the child priors in composition order.
func (c *Combined) Children() []Prior {
	out := make([]Prior, len(c.children))
	copy(out, c.children)
	return out
}

// slice returns child i's sub-vector of the joint sampled vector.
func (c *Combined) slice(sampled []float64, i int) []float64 {
	end := len(sampled)
	if i+1 < len(c.offsets) {
		end = c.offsets[i+1]
	}
	return sampled[c.offsets[i]:end]
}

// Transform slices the joint vector into per-child sub-vectors, transforms
// each, and merges the resulting standard dicts. The merge cannot collide:
// construction guarantees disjoint standard sets.
func (c *Combined) Transform(sampled []float64) (StandardDict, error) {
	if len(sampled) != c.space.NSampled() {
		return nil, core.NewDimensionError(len(sampled), c.space.NSampled())
	}
	dict := make(StandardDict, len(c.space.Standard))
	for i, child := range c.children {
		sub, err := child.Transform(c.slice(sampled, i))
		if err != nil {
			return nil, err
		}
		if err := dict.Merge(sub); err != nil {
			return nil, err
		}
	}
	return dict, nil
}

// InverseTransform hands the FULL standard dict to every child (a child's
// inverse may read standard parameters outside its own declared set, e.g.
// a reparametrized mass ratio needing both component masses) and
// concatenates the returned sub-vectors in child order.
func (c *Combined) InverseTransform(standard StandardDict) ([]float64, error) {
	out := make([]float64, 0, c.space.NSampled())
	for _, child := range c.children {
		sub, err := child.InverseTransform(standard)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// LogDensity sums each child's log density over its own sub-vector slice.
func (c *Combined) LogDensity(sampled []float64) float64 {
	if len(sampled) != c.space.NSampled() {
		panic(core.NewDimensionError(len(sampled), c.space.NSampled()))
	}
	total := 0.0
	for i, child := range c.children {
		ld := child.LogDensity(c.slice(sampled, i))
		if math.IsInf(ld, -1) {
			return math.Inf(-1)
		}
		total += ld
	}
	return total
}

// Sample draws each child's sub-vector in order and concatenates.
func (c *Combined) Sample(rng *rand.Rand) []float64 {
	out := make([]float64, 0, c.space.NSampled())
	for _, child := range c.children {
		out = append(out, child.Sample(rng)...)
	}
	return out
}

// ConstructorFields flattens and de-duplicates the construction-time
// schema of every child, so calling code knows what extra values must be
// supplied when instantiating this composition for a new event.
func (c *Combined) ConstructorFields() []ConstructorField {
	seen := make(map[string]bool)
	var fields []ConstructorField
	for _, child := range c.children {
		for _, f := range child.ConstructorFields() {
			if seen[f.Name] {
				continue
			}
			seen[f.Name] = true
			fields = append(fields, f)
		}
	}
	return fields
}
