package sampler

import (
	"math"

	"gwinfer/domain/sample"

	"github.com/montanaflynn/stats"
	"golang.org/x/exp/rand"
)

// KishESS returns the Kish effective sample size 1 / sum(w^2) of normalized
// importance weights. Equals N for flat weights, 1 when a single sample
// dominates.
func KishESS(weights []float64) float64 {
	sumSq := 0.0
	for _, w := range weights {
		sumSq += w * w
	}
	if sumSq == 0 {
		return 0
	}
	return 1 / sumSq
}

// Resample converts weighted samples to an equal-weight set of the same size
// via systematic resampling. Deterministic given the generator state.
func Resample(rng *rand.Rand, samples []sample.WeightedSample) []sample.WeightedSample {
	n := len(samples)
	if n == 0 {
		return nil
	}
	out := make([]sample.WeightedSample, 0, n)
	step := 1.0 / float64(n)
	u := rng.Float64() * step
	cum := 0.0
	i := -1
	for k := 0; k < n; k++ {
		target := u + float64(k)*step
		for cum < target && i < n-1 {
			i++
			cum += samples[i].Weight
		}
		out = append(out, samples[i])
	}
	return out
}

// Summaries computes marginal posterior summaries for each named standard
// parameter by resampling to equal weights and summarizing the columns.
func Summaries(rng *rand.Rand, samples []sample.WeightedSample, names []string) (map[string]sample.Summary, error) {
	resampled := Resample(rng, samples)
	out := make(map[string]sample.Summary, len(names))
	for _, name := range names {
		values := make([]float64, 0, len(resampled))
		for _, s := range resampled {
			if s.Params == nil {
				continue
			}
			if v, ok := s.Params[name]; ok && !math.IsNaN(v) {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		mean, err := stats.Mean(values)
		if err != nil {
			return nil, err
		}
		stdDev, err := stats.StandardDeviation(values)
		if err != nil {
			return nil, err
		}
		median, err := stats.Median(values)
		if err != nil {
			return nil, err
		}
		q05, err := stats.Percentile(values, 5)
		if err != nil {
			return nil, err
		}
		q95, err := stats.Percentile(values, 95)
		if err != nil {
			return nil, err
		}
		out[name] = sample.Summary{Mean: mean, StdDev: stdDev, Median: median, Q05: q05, Q95: q95}
	}
	return out, nil
}
