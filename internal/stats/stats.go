// Package stats aggregates per-dataset percentage errors into descriptive
// statistics. Dispersion uses sample formulas (denominator n-1).
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"
)

// Quartile positions used for Q1 and Q3.
const (
	Q1Percentile = 25
	Q3Percentile = 75
)

// ErrInsufficientSamples is returned when fewer than two values are supplied,
// leaving the sample variance undefined.
var ErrInsufficientSamples = errors.New("insufficient samples: need at least 2 values")

// ErrorStatistics is a read-only snapshot over a set of percentage errors.
type ErrorStatistics struct {
	Count    int     `json:"count" yaml:"count"`
	Mean     float64 `json:"mean" yaml:"mean"`
	Median   float64 `json:"median" yaml:"median"`
	StdDev   float64 `json:"std_dev" yaml:"std_dev"`
	Variance float64 `json:"variance" yaml:"variance"`
	Min      float64 `json:"min" yaml:"min"`
	Max      float64 `json:"max" yaml:"max"`
	Range    float64 `json:"range" yaml:"range"`
	Q1       float64 `json:"q1" yaml:"q1"`
	Q3       float64 `json:"q3" yaml:"q3"`
	IQR      float64 `json:"iqr" yaml:"iqr"`
}

// Compute returns the statistics for values. values is not modified.
func Compute(values []float64) (ErrorStatistics, error) {
	if len(values) < 2 {
		return ErrorStatistics{}, fmt.Errorf("%w (got %d)", ErrInsufficientSamples, len(values))
	}
	data := mstats.Float64Data(values)

	var (
		out ErrorStatistics
		err error
	)
	out.Count = len(values)
	if out.Mean, err = data.Mean(); err != nil {
		return ErrorStatistics{}, fmt.Errorf("mean: %w", err)
	}
	if out.Median, err = data.Median(); err != nil {
		return ErrorStatistics{}, fmt.Errorf("median: %w", err)
	}
	if out.Variance, err = mstats.SampleVariance(data); err != nil {
		return ErrorStatistics{}, fmt.Errorf("variance: %w", err)
	}
	if out.StdDev, err = mstats.StandardDeviationSample(data); err != nil {
		return ErrorStatistics{}, fmt.Errorf("std dev: %w", err)
	}
	if out.Min, err = data.Min(); err != nil {
		return ErrorStatistics{}, fmt.Errorf("min: %w", err)
	}
	if out.Max, err = data.Max(); err != nil {
		return ErrorStatistics{}, fmt.Errorf("max: %w", err)
	}
	out.Range = out.Max - out.Min

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	out.Q1 = Quantile(sorted, Q1Percentile/100.0)
	out.Q3 = Quantile(sorted, Q3Percentile/100.0)
	out.IQR = out.Q3 - out.Q1
	return out, nil
}

// Quantile interpolates linearly between the closest ranks of an ascending
// slice at position q*(n-1). q is clamped to [0, 1]; an empty slice yields NaN.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
