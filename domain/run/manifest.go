package run

import (
	"fmt"

	"gwinfer/domain/core"
	"gwinfer/domain/prior"
)

// Manifest captures everything needed to reproduce a sampling run.
// This is the truth source for replay: identical manifests must reproduce
// identical weighted sample sets.
type Manifest struct {
	RunID       core.RunID       `json:"run_id"`
	EventID     core.EventID     `json:"event_id"`
	Seed        uint64           `json:"seed"`
	SampleCount int              `json:"sample_count"`
	Workers     int              `json:"workers"`
	PriorHash   core.PriorHash   `json:"prior_hash"`
	CodeVersion string           `json:"code_version"`
	Fingerprint core.Hash        `json:"fingerprint"`
	CreatedAt   core.Timestamp   `json:"created_at"`
}

// NewManifest creates a run manifest for sampling the given prior space.
func NewManifest(eventID core.EventID, space prior.ParameterSpace, seed uint64, sampleCount, workers int, codeVersion string) *Manifest {
	priorHash := space.Hash()
	return &Manifest{
		RunID:       core.RunID(core.NewID()),
		EventID:     eventID,
		Seed:        seed,
		SampleCount: sampleCount,
		Workers:     workers,
		PriorHash:   priorHash,
		CodeVersion: codeVersion,
		Fingerprint: Fingerprint(eventID, priorHash, seed, sampleCount, codeVersion),
		CreatedAt:   core.Now(),
	}
}

// Fingerprint hashes the determinism tuple: same inputs, same fingerprint.
// Workers is deliberately excluded - parallelism must not change results.
func Fingerprint(eventID core.EventID, priorHash core.PriorHash, seed uint64, sampleCount int, codeVersion string) core.Hash {
	data := fmt.Sprintf("%s|%s|%d|%d|%s", eventID, priorHash, seed, sampleCount, codeVersion)
	return core.NewHash([]byte(data))
}

// Validate checks if the manifest is complete.
func (m *Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewConfigurationError("run_id cannot be empty")
	}
	if core.ID(m.EventID).IsEmpty() {
		return core.NewConfigurationError("event_id cannot be empty")
	}
	if m.SampleCount <= 0 {
		return core.NewConfigurationError("sample_count must be > 0")
	}
	if m.PriorHash == "" {
		return core.NewConfigurationError("prior_hash cannot be empty")
	}
	return nil
}
