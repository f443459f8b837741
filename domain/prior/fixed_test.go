package prior

import (
	"errors"
	"testing"

	"gwinfer/domain/core"

	"golang.org/x/exp/rand"
)

func TestFixed_TransformReturnsFixedValues(t *testing.T) {
	f, err := NewFixed(map[string]float64{"ra": 0.0, "dec": 1.0})
	if err != nil {
		t.Fatalf("NewFixed failed: %v", err)
	}

	dict, err := f.Transform([]float64{})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if dict["ra"] != 0.0 || dict["dec"] != 1.0 {
		t.Errorf("Transform returned %v, want ra=0 dec=1", dict)
	}
	if len(dict) != 2 {
		t.Errorf("Transform returned %d keys, want 2", len(dict))
	}
}

func TestFixed_TransformRejectsNonEmptyInput(t *testing.T) {
	f, err := NewFixed(map[string]float64{"d_l": 410.0})
	if err != nil {
		t.Fatalf("NewFixed failed: %v", err)
	}

	_, err = f.Transform([]float64{1.0})
	if !errors.Is(err, core.ErrDimension) {
		t.Errorf("Transform on non-empty input: got %v, want ErrDimension", err)
	}
}

func TestFixed_InverseTransformIgnoresValues(t *testing.T) {
	f, err := NewFixed(map[string]float64{"ra": 0.5})
	if err != nil {
		t.Fatalf("NewFixed failed: %v", err)
	}

	// Values that disagree with the fixed ones are not validated: this
	// direction projects, it does not reconstruct.
	v, err := f.InverseTransform(StandardDict{"ra": 99.0, "unrelated": 3.0})
	if err != nil {
		t.Fatalf("InverseTransform failed: %v", err)
	}
	if len(v) != 0 {
		t.Errorf("InverseTransform returned %d values, want empty vector", len(v))
	}
}

func TestFixed_LogDensityIsZero(t *testing.T) {
	f, err := NewFixed(map[string]float64{"ra": 0.0})
	if err != nil {
		t.Fatalf("NewFixed failed: %v", err)
	}
	if ld := f.LogDensity([]float64{}); ld != 0 {
		t.Errorf("LogDensity = %v, want 0", ld)
	}
}

func TestFixed_ConstructionErrors(t *testing.T) {
	testCases := []struct {
		name   string
		values map[string]float64
	}{
		{"empty values", map[string]float64{}},
		{"nil values", nil},
		{"empty name", map[string]float64{"": 1.0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFixed(tc.values)
			if !errors.Is(err, core.ErrConfiguration) {
				t.Errorf("NewFixed(%v): got %v, want ErrConfiguration", tc.values, err)
			}
		})
	}
}

func TestFixed_SpaceAndSchema(t *testing.T) {
	f, err := NewFixed(map[string]float64{"dec": 1.0, "ra": 0.0})
	if err != nil {
		t.Fatalf("NewFixed failed: %v", err)
	}

	space := f.Space()
	if space.NSampled() != 0 {
		t.Errorf("NSampled = %d, want 0", space.NSampled())
	}
	if len(space.Standard) != 2 || space.Standard[0] != "dec" || space.Standard[1] != "ra" {
		t.Errorf("Standard = %v, want sorted [dec ra]", space.Standard)
	}

	fields := f.ConstructorFields()
	if len(fields) != 2 {
		t.Fatalf("ConstructorFields returned %d entries, want 2", len(fields))
	}
	for _, field := range fields {
		if field.Kind != "float64" || !field.Required {
			t.Errorf("field %v: want required float64", field)
		}
	}

	if s := f.Sample(rand.New(rand.NewSource(1))); len(s) != 0 {
		t.Errorf("Sample returned %d values, want empty vector", len(s))
	}
}
