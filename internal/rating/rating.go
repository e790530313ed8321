// Package rating classifies overall run accuracy from the worst per-dataset
// error and counts datasets under each precision threshold.
package rating

import (
	"fmt"
	"math"
)

// Rating is a coarse reliability classification.
type Rating int

const (
	Exceptional Rating = iota
	Superior
	Satisfactory
	Limited
)

func (r Rating) String() string {
	switch r {
	case Exceptional:
		return "Exceptional"
	case Superior:
		return "Superior"
	case Satisfactory:
		return "Satisfactory"
	case Limited:
		return "Limited"
	default:
		return fmt.Sprintf("Rating(%d)", int(r))
	}
}

// Assessment is the one-line verdict printed next to the rating.
func (r Rating) Assessment() string {
	switch r {
	case Exceptional:
		return "Demonstrates remarkable precision across all datasets"
	case Superior:
		return "Exhibits excellent consistency across datasets"
	case Satisfactory:
		return "Meets all specified precision requirements"
	default:
		return "Further optimization recommended"
	}
}

// MarshalText encodes the rating by name for JSON and YAML reports.
func (r Rating) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Thresholds holds the ascending percentage-error limits, exclusive upper bounds.
type Thresholds struct {
	Exceptional  float64 `mapstructure:"exceptional" json:"exceptional" yaml:"exceptional"`
	Superior     float64 `mapstructure:"superior" json:"superior" yaml:"superior"`
	Satisfactory float64 `mapstructure:"satisfactory" json:"satisfactory" yaml:"satisfactory"`
}

// DefaultThresholds returns 1%, 5% and 10%.
func DefaultThresholds() Thresholds {
	return Thresholds{Exceptional: 1.0, Superior: 5.0, Satisfactory: 10.0}
}

// Validate reports whether the thresholds are positive and strictly ascending.
func (t Thresholds) Validate() error {
	if !(t.Exceptional > 0) {
		return fmt.Errorf("invalid thresholds: exceptional must be > 0, got %v", t.Exceptional)
	}
	if !(t.Superior > t.Exceptional) || !(t.Satisfactory > t.Superior) {
		return fmt.Errorf("invalid thresholds: must be strictly ascending, got %v < %v < %v",
			t.Exceptional, t.Superior, t.Satisfactory)
	}
	return nil
}

// Values returns the thresholds in ascending order.
func (t Thresholds) Values() []float64 {
	return []float64{t.Exceptional, t.Superior, t.Satisfactory}
}

// Classify maps maxError to a Rating. Bounds are exclusive, so a value equal
// to a threshold falls into the next band. NaN is Limited.
func (t Thresholds) Classify(maxError float64) Rating {
	switch {
	case math.IsNaN(maxError):
		return Limited
	case maxError < t.Exceptional:
		return Exceptional
	case maxError < t.Superior:
		return Superior
	case maxError < t.Satisfactory:
		return Satisfactory
	default:
		return Limited
	}
}

// Classify uses DefaultThresholds.
func Classify(maxError float64) Rating {
	return DefaultThresholds().Classify(maxError)
}

// ThresholdCount is the number of errors strictly below Threshold.
type ThresholdCount struct {
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Count     int     `json:"count" yaml:"count"`
	Total     int     `json:"total" yaml:"total"`
	Fraction  float64 `json:"fraction" yaml:"fraction"`
}

// Percent returns Fraction as a percentage.
func (c ThresholdCount) Percent() float64 { return c.Fraction * 100 }

// Count tallies errors strictly below each threshold, ascending.
func (t Thresholds) Count(errors []float64) []ThresholdCount {
	limits := t.Values()
	out := make([]ThresholdCount, len(limits))
	for i, lim := range limits {
		n := 0
		for _, e := range errors {
			if e < lim {
				n++
			}
		}
		out[i] = ThresholdCount{Threshold: lim, Count: n, Total: len(errors)}
		if len(errors) > 0 {
			out[i].Fraction = float64(n) / float64(len(errors))
		}
	}
	return out
}
