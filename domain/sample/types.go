// Package sample defines the tabular output of a sampling run: one row per
// accepted sample carrying standard parameter values and an importance
// weight, consumed downstream for visualization and summary statistics.
package sample

import (
	"gwinfer/domain/core"
	"gwinfer/domain/prior"
)

// WeightedSample is one accepted draw from the posterior.
type WeightedSample struct {
	Sampled      []float64          `json:"sampled"`       // sampler coordinates
	Params       prior.StandardDict `json:"params"`        // standard coordinates
	LogPosterior float64            `json:"log_posterior"` // -Inf for zero-density draws
	LogWeight    float64            `json:"log_weight"`    // unnormalized importance log-weight
	Weight       float64            `json:"weight"`        // normalized: sums to 1 over a run
}

// Summary describes one standard parameter's marginal posterior.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	Q05    float64 `json:"q05"`
	Q95    float64 `json:"q95"`
}

// Result is the complete output of one sampling run.
type Result struct {
	RunID       core.RunID         `json:"run_id"`
	Samples     []WeightedSample   `json:"samples"`
	LogEvidence float64            `json:"log_evidence"` // estimated log marginal likelihood
	ESS         float64            `json:"ess"`          // Kish effective sample size
	Summaries   map[string]Summary `json:"summaries"`    // per standard parameter
}
