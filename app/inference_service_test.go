package app

import (
	"context"
	"math"
	"sync"
	"testing"

	"gwinfer/adapters/likelihood"
	"gwinfer/domain/core"
	"gwinfer/domain/prior"
	"gwinfer/domain/run"
	"gwinfer/domain/sample"
	"gwinfer/internal/sampler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySink records writes for inspection.
type memorySink struct {
	mu       sync.Mutex
	manifest *run.Manifest
	result   *sample.Result
	writes   int
}

func (m *memorySink) WriteResult(ctx context.Context, manifest *run.Manifest, result *sample.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.manifest = manifest
	m.result = result
	m.writes++
	return nil
}

func eventPrior(t *testing.T) prior.Prior {
	t.Helper()
	fixed, err := prior.NewFixed(map[string]float64{"ra": 1.95, "dec": -1.27})
	require.NoError(t, err)
	uniform, err := prior.NewUniform(
		prior.MustBoundedSpec("mchirp", 25.0, 35.0),
		prior.MustBoundedSpec("q", 0.5, 1.0),
	)
	require.NoError(t, err)
	p, err := prior.Combine([]string{"ra", "dec", "mchirp", "q"}, fixed, uniform)
	require.NoError(t, err)
	return p
}

func TestInferenceService_EndToEnd(t *testing.T) {
	p := eventPrior(t)
	lk, err := likelihood.NewGaussian(
		prior.StandardDict{"mchirp": 30.2, "q": 0.82},
		map[string]float64{"mchirp": 0.5, "q": 0.1},
	)
	require.NoError(t, err)

	sink := &memorySink{}
	svc, err := NewInferenceService(p, lk, sampler.NewImportance(4, nil), nil, sink)
	require.NoError(t, err)

	manifest, result, err := svc.Run(context.Background(), core.EventID("GW150914"), 42, 2000, 4)
	require.NoError(t, err)

	assert.Equal(t, 1, sink.writes)
	assert.Equal(t, manifest, sink.manifest)
	assert.Equal(t, result, sink.result)
	assert.Len(t, result.Samples, 2000)
	assert.False(t, math.IsNaN(result.LogEvidence))
	assert.Greater(t, result.ESS, 1.0)

	// The posterior marginal should concentrate near the injected values.
	mc := result.Summaries["mchirp"]
	assert.InDelta(t, 30.2, mc.Mean, 0.5)
	q := result.Summaries["q"]
	assert.InDelta(t, 0.82, q.Mean, 0.1)

	// Pinned extrinsic parameters pass through unchanged.
	ra := result.Summaries["ra"]
	assert.InDelta(t, 1.95, ra.Mean, 1e-9)
	assert.InDelta(t, 0.0, ra.StdDev, 1e-9)
}

func TestInferenceService_Reproducible(t *testing.T) {
	p := eventPrior(t)
	lk, err := likelihood.NewGaussian(
		prior.StandardDict{"mchirp": 30.2},
		map[string]float64{"mchirp": 0.5},
	)
	require.NoError(t, err)

	svc, err := NewInferenceService(p, lk, sampler.NewImportance(2, nil), nil)
	require.NoError(t, err)

	_, a, err := svc.Run(context.Background(), core.EventID("GW150914"), 11, 300, 2)
	require.NoError(t, err)
	_, b, err := svc.Run(context.Background(), core.EventID("GW150914"), 11, 300, 2)
	require.NoError(t, err)

	assert.Equal(t, a.LogEvidence, b.LogEvidence)
	assert.Equal(t, a.Samples[0].Sampled, b.Samples[0].Sampled)
}

func TestNewInferenceService_RequiresComponents(t *testing.T) {
	p := eventPrior(t)
	lk, err := likelihood.NewGaussian(prior.StandardDict{"mchirp": 30.0}, nil)
	require.NoError(t, err)
	s := sampler.NewImportance(1, nil)

	_, err = NewInferenceService(nil, lk, s, nil)
	assert.Error(t, err)
	_, err = NewInferenceService(p, nil, s, nil)
	assert.Error(t, err)
	_, err = NewInferenceService(p, lk, nil, nil)
	assert.Error(t, err)
}
