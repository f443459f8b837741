package posterior

import (
	"errors"
	"math"
	"testing"

	"gwinfer/domain/core"
	"gwinfer/domain/prior"
)

func boundedUniform(t *testing.T) prior.Prior {
	t.Helper()
	u, err := prior.NewUniform(prior.MustBoundedSpec("mchirp", 1.0, 2.0))
	if err != nil {
		t.Fatalf("NewUniform failed: %v", err)
	}
	return u
}

// countingLikelihood counts invocations so tests can verify the
// short-circuit contract.
type countingLikelihood struct {
	calls int
	value float64
	err   error
}

func (c *countingLikelihood) eval(params prior.StandardDict) (float64, error) {
	c.calls++
	return c.value, c.err
}

func TestPosterior_AddsPriorAndLikelihood(t *testing.T) {
	lk := &countingLikelihood{value: -3.5}
	p, err := New(boundedUniform(t), lk.eval)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := p.LogPosterior([]float64{1.5})
	if err != nil {
		t.Fatalf("LogPosterior failed: %v", err)
	}
	// log prior = -log(1.0) = 0
	if math.Abs(got-(-3.5)) > 1e-12 {
		t.Errorf("LogPosterior = %v, want -3.5", got)
	}
	if lk.calls != 1 {
		t.Errorf("likelihood called %d times, want 1", lk.calls)
	}
}

func TestPosterior_ShortCircuitsOutsideSupport(t *testing.T) {
	lk := &countingLikelihood{value: -3.5}
	p, err := New(boundedUniform(t), lk.eval)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := p.LogPosterior([]float64{5.0})
	if err != nil {
		t.Fatalf("LogPosterior failed: %v", err)
	}
	if !math.IsInf(got, -1) {
		t.Errorf("LogPosterior = %v, want -Inf", got)
	}
	if lk.calls != 0 {
		t.Errorf("likelihood called %d times outside support, want 0", lk.calls)
	}
}

func TestPosterior_PropagatesLikelihoodErrors(t *testing.T) {
	wantErr := errors.New("strain data unavailable")
	lk := &countingLikelihood{err: wantErr}
	p, err := New(boundedUniform(t), lk.eval)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = p.LogPosterior([]float64{1.5})
	if !errors.Is(err, wantErr) {
		t.Errorf("LogPosterior error = %v, want the likelihood's own error unchanged", err)
	}
}

func TestPosterior_ConstructionErrors(t *testing.T) {
	lk := &countingLikelihood{}
	if _, err := New(nil, lk.eval); !errors.Is(err, core.ErrConfiguration) {
		t.Errorf("New(nil prior): got %v, want ErrConfiguration", err)
	}
	if _, err := New(boundedUniform(t), nil); !errors.Is(err, core.ErrConfiguration) {
		t.Errorf("New(nil likelihood): got %v, want ErrConfiguration", err)
	}
}
