package likelihood

import (
	"errors"
	"math"
	"testing"

	"gwinfer/domain/core"
	"gwinfer/domain/prior"
)

func TestGaussian_LogLikelihoodAtReference(t *testing.T) {
	ref := prior.StandardDict{"mchirp": 30.2, "q": 0.82}
	g, err := NewGaussian(ref, map[string]float64{"mchirp": 0.5, "q": 0.1})
	if err != nil {
		t.Fatalf("NewGaussian failed: %v", err)
	}

	atRef, err := g.LogLikelihood(ref)
	if err != nil {
		t.Fatalf("LogLikelihood failed: %v", err)
	}
	// Peak of two normals: -log(0.5*sqrt(2pi)) - log(0.1*sqrt(2pi))
	want := -math.Log(0.5*math.Sqrt(2*math.Pi)) - math.Log(0.1*math.Sqrt(2*math.Pi))
	if math.Abs(atRef-want) > 1e-9 {
		t.Errorf("LogLikelihood at reference = %v, want %v", atRef, want)
	}

	off, err := g.LogLikelihood(prior.StandardDict{"mchirp": 31.2, "q": 0.82})
	if err != nil {
		t.Fatalf("LogLikelihood failed: %v", err)
	}
	if off >= atRef {
		t.Errorf("off-peak %v should score below peak %v", off, atRef)
	}
}

func TestGaussian_IgnoresUnscoredParameters(t *testing.T) {
	g, err := NewGaussian(
		prior.StandardDict{"mchirp": 30.0, "ra": 1.95},
		map[string]float64{"mchirp": 0.5},
	)
	if err != nil {
		t.Fatalf("NewGaussian failed: %v", err)
	}

	a, err := g.LogLikelihood(prior.StandardDict{"mchirp": 30.0, "ra": 0.0})
	if err != nil {
		t.Fatalf("LogLikelihood failed: %v", err)
	}
	b, err := g.LogLikelihood(prior.StandardDict{"mchirp": 30.0, "ra": 3.0})
	if err != nil {
		t.Fatalf("LogLikelihood failed: %v", err)
	}
	if a != b {
		t.Errorf("unscored parameter changed the likelihood: %v vs %v", a, b)
	}
}

func TestGaussian_Errors(t *testing.T) {
	if _, err := NewGaussian(nil, nil); !errors.Is(err, core.ErrConfiguration) {
		t.Errorf("empty reference: got %v, want ErrConfiguration", err)
	}
	if _, err := NewGaussian(prior.StandardDict{"mchirp": 30.0}, map[string]float64{"q": 0.1}); !errors.Is(err, core.ErrMissingParameter) {
		t.Errorf("sigma without reference: got %v, want ErrMissingParameter", err)
	}
	if _, err := NewGaussian(prior.StandardDict{"mchirp": 30.0}, map[string]float64{"mchirp": 0}); !errors.Is(err, core.ErrConfiguration) {
		t.Errorf("zero sigma: got %v, want ErrConfiguration", err)
	}

	g, err := NewGaussian(prior.StandardDict{"mchirp": 30.0}, map[string]float64{"mchirp": 0.5})
	if err != nil {
		t.Fatalf("NewGaussian failed: %v", err)
	}
	if _, err := g.LogLikelihood(prior.StandardDict{"q": 0.8}); !errors.Is(err, core.ErrMissingParameter) {
		t.Errorf("missing scored parameter: got %v, want ErrMissingParameter", err)
	}
}

func TestGaussian_ReferenceParametersCopied(t *testing.T) {
	ref := prior.StandardDict{"mchirp": 30.0}
	g, err := NewGaussian(ref, nil)
	if err != nil {
		t.Fatalf("NewGaussian failed: %v", err)
	}
	got := g.ReferenceParameters()
	got["mchirp"] = 99.0
	if again := g.ReferenceParameters(); again["mchirp"] != 30.0 {
		t.Error("ReferenceParameters exposed internal state")
	}
}
