// Package search finds the ordered triple (n1, n2, n3) drawn with repetition
// from a pool whose value (n1*n2)/n3 lies closest to a target.
package search

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

var (
	// ErrInvalidPool is returned when the pool of numbers is empty.
	ErrInvalidPool = errors.New("invalid pool: no numbers to search")
	// ErrDegenerateTarget is returned when the target is zero or not finite,
	// which leaves the percentage error undefined.
	ErrDegenerateTarget = errors.New("degenerate target: percentage error undefined")
	// ErrNoValidCombination is returned when every candidate divisor is zero.
	ErrNoValidCombination = errors.New("no valid combination: every divisor is zero")
)

// Combination is an ordered triple evaluated as (N1*N2)/N3.
type Combination struct {
	N1 float64 `json:"n1" yaml:"n1"`
	N2 float64 `json:"n2" yaml:"n2"`
	N3 float64 `json:"n3" yaml:"n3"`
}

// Value returns (N1*N2)/N3. The caller guarantees N3 != 0.
func (c Combination) Value() float64 { return (c.N1 * c.N2) / c.N3 }

func (c Combination) String() string {
	return fmt.Sprintf("(%g × %g) / %g", c.N1, c.N2, c.N3)
}

// Match is the best combination found for one target.
type Match struct {
	Result      float64     `json:"result" yaml:"result"`
	Error       float64     `json:"error_pct" yaml:"error_pct"`
	Combination Combination `json:"combination" yaml:"combination"`
	// Evaluated counts the scored triples (those with a non-zero divisor).
	Evaluated int `json:"evaluated" yaml:"evaluated"`
}

// PercentError returns |result-target| / |target| * 100.
func PercentError(result, target float64) float64 {
	return math.Abs(result-target) / math.Abs(target) * 100
}

// FindBest exhaustively scores numbers × numbers × numbers in product order
// (n1 outer, n2 middle, n3 inner) and returns the first triple with the
// smallest percentage error. Triples whose divisor is zero are not scored.
func FindBest(numbers []float64, target float64) (Match, error) {
	if len(numbers) == 0 {
		return Match{}, ErrInvalidPool
	}
	if target == 0 || math.IsNaN(target) || math.IsInf(target, 0) {
		return Match{}, fmt.Errorf("%w: target=%v", ErrDegenerateTarget, target)
	}

	best := Match{Error: math.Inf(1)}
	found := false
	for _, n1 := range numbers {
		for _, n2 := range numbers {
			for _, n3 := range numbers {
				if n3 == 0 {
					continue
				}
				best.Evaluated++
				result := (n1 * n2) / n3
				e := PercentError(result, target)
				// strict: first minimum wins on ties
				if e < best.Error {
					best.Error = e
					best.Result = result
					best.Combination = Combination{N1: n1, N2: n2, N3: n3}
					found = true
				}
			}
		}
	}
	if !found {
		if best.Evaluated == 0 {
			return Match{}, ErrNoValidCombination
		}
		// every scored triple overflowed to an infinite or NaN error
		return Match{}, fmt.Errorf("%w: %d triples scored without a finite error", ErrNoValidCombination, best.Evaluated)
	}
	return best, nil
}

// Searcher wraps FindBest with debug tracing.
type Searcher struct {
	logger *slog.Logger
}

// New returns a Searcher logging to logger, or to slog.Default() when nil.
func New(logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{logger: logger}
}

// Find runs FindBest for the pool labelled label.
func (s *Searcher) Find(label string, numbers []float64, target float64) (Match, error) {
	s.logger.Debug("searching combinations", "dataset", label, "pool", len(numbers), "target", target)
	m, err := FindBest(numbers, target)
	if err != nil {
		return Match{}, err
	}
	s.logger.Debug("best combination",
		"dataset", label,
		"combination", m.Combination.String(),
		"result", m.Result,
		"error_pct", m.Error,
		"evaluated", m.Evaluated,
	)
	return m, nil
}
