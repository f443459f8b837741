package run

import (
	"testing"

	"gwinfer/domain/core"
	"gwinfer/domain/prior"
)

func testSpace(t *testing.T) prior.ParameterSpace {
	t.Helper()
	u, err := prior.NewUniform(prior.MustBoundedSpec("mchirp", 25.0, 35.0))
	if err != nil {
		t.Fatalf("NewUniform failed: %v", err)
	}
	return u.Space()
}

func TestFingerprint_Deterministic(t *testing.T) {
	space := testSpace(t)
	eventID := core.EventID("GW150914")

	fp1 := Fingerprint(eventID, space.Hash(), 42, 1000, "0.2.0")
	fp2 := Fingerprint(eventID, space.Hash(), 42, 1000, "0.2.0")
	if fp1 != fp2 {
		t.Errorf("fingerprints not identical: %s vs %s", fp1, fp2)
	}
}

func TestFingerprint_Unique(t *testing.T) {
	space := testSpace(t)
	base := Fingerprint(core.EventID("GW150914"), space.Hash(), 42, 1000, "0.2.0")

	testCases := []struct {
		name string
		fp   core.Hash
	}{
		{"different event", Fingerprint(core.EventID("GW170817"), space.Hash(), 42, 1000, "0.2.0")},
		{"different seed", Fingerprint(core.EventID("GW150914"), space.Hash(), 43, 1000, "0.2.0")},
		{"different sample count", Fingerprint(core.EventID("GW150914"), space.Hash(), 42, 2000, "0.2.0")},
		{"different code version", Fingerprint(core.EventID("GW150914"), space.Hash(), 42, 1000, "0.3.0")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.fp == base {
				t.Errorf("fingerprint should differ for %s", tc.name)
			}
		})
	}
}

func TestNewManifest_CompleteAndValid(t *testing.T) {
	space := testSpace(t)
	m := NewManifest(core.EventID("GW150914"), space, 42, 1000, 4, "0.2.0")

	if err := m.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if core.ID(m.RunID).IsEmpty() {
		t.Error("RunID not assigned")
	}
	if m.PriorHash != space.Hash() {
		t.Error("PriorHash does not match the sampled space")
	}
	if m.Fingerprint.IsEmpty() {
		t.Error("Fingerprint not computed")
	}

	// Worker count must not enter the determinism tuple.
	other := NewManifest(core.EventID("GW150914"), space, 42, 1000, 16, "0.2.0")
	if m.Fingerprint != other.Fingerprint {
		t.Error("fingerprint changed with worker count")
	}
}

func TestManifest_ValidateErrors(t *testing.T) {
	space := testSpace(t)

	m := NewManifest(core.EventID("GW150914"), space, 42, 0, 4, "0.2.0")
	if err := m.Validate(); err == nil {
		t.Error("Validate accepted sample_count=0")
	}

	m = NewManifest(core.EventID(""), space, 42, 1000, 4, "0.2.0")
	if err := m.Validate(); err == nil {
		t.Error("Validate accepted empty event_id")
	}
}
