// Package analysis runs the per-dataset combination search and aggregates the
// resulting errors into a Report.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/KaramelBytes/triplefit/internal/dataset"
	"github.com/KaramelBytes/triplefit/internal/rating"
	"github.com/KaramelBytes/triplefit/internal/search"
	"github.com/KaramelBytes/triplefit/internal/stats"
)

// Options controls a run.
type Options struct {
	Thresholds rating.Thresholds
	// Workers bounds concurrent searches; values <= 1 run sequentially.
	Workers int
	Logger  *slog.Logger
}

// DefaultOptions returns sequential execution with the default thresholds.
func DefaultOptions() Options {
	return Options{Thresholds: rating.DefaultThresholds(), Workers: 1}
}

// Outcome is the best match for one dataset.
type Outcome struct {
	Label  string       `json:"label" yaml:"label"`
	Target float64      `json:"target" yaml:"target"`
	Match  search.Match `json:"match" yaml:"match"`
}

// Delta returns |result - target|.
func (o Outcome) Delta() float64 { return math.Abs(o.Match.Result - o.Target) }

// Report is the plain-data result of a run.
type Report struct {
	RunID       string                  `json:"run_id" yaml:"run_id"`
	Source      string                  `json:"source" yaml:"source"`
	GeneratedAt time.Time               `json:"generated_at" yaml:"generated_at"`
	Outcomes    []Outcome               `json:"outcomes" yaml:"outcomes"`
	Statistics  stats.ErrorStatistics   `json:"statistics" yaml:"statistics"`
	Thresholds  rating.Thresholds       `json:"thresholds" yaml:"thresholds"`
	Tolerance   []rating.ThresholdCount `json:"tolerance" yaml:"tolerance"`
	Rating      rating.Rating           `json:"rating" yaml:"rating"`
	Assessment  string                  `json:"assessment" yaml:"assessment"`
}

// Errors returns the per-dataset errors in label order.
func (r *Report) Errors() []float64 {
	out := make([]float64, len(r.Outcomes))
	for i, o := range r.Outcomes {
		out[i] = o.Match.Error
	}
	return out
}

// DatasetError identifies the dataset whose search aborted the run.
type DatasetError struct {
	Label string
	Err   error
}

func (e *DatasetError) Error() string { return fmt.Sprintf("dataset %s: %v", e.Label, e.Err) }

func (e *DatasetError) Unwrap() error { return e.Err }

// Analyzer runs the search and aggregation pipeline.
type Analyzer struct {
	opt      Options
	searcher *search.Searcher
	logger   *slog.Logger
}

// New validates opt and returns an Analyzer.
func New(opt Options) (*Analyzer, error) {
	if err := opt.Thresholds.Validate(); err != nil {
		return nil, err
	}
	logger := opt.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{opt: opt, searcher: search.New(logger), logger: logger}, nil
}

// Run searches every dataset in label order, then computes statistics,
// tolerance counts and the rating. Any failure aborts the whole run.
func (a *Analyzer) Run(ctx context.Context, c *dataset.Collection) (*Report, error) {
	sets := c.Datasets()
	start := time.Now()
	outcomes, err := a.searchAll(ctx, sets)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("search complete", "datasets", len(sets), "workers", a.workers(), "elapsed", time.Since(start))

	rep := &Report{
		RunID:       uuid.NewString(),
		Source:      c.Source,
		GeneratedAt: time.Now().UTC(),
		Outcomes:    outcomes,
		Thresholds:  a.opt.Thresholds,
	}
	errs := rep.Errors()
	rep.Statistics, err = stats.Compute(errs)
	if err != nil {
		return nil, fmt.Errorf("error statistics: %w", err)
	}
	rep.Tolerance = a.opt.Thresholds.Count(errs)
	rep.Rating = a.opt.Thresholds.Classify(rep.Statistics.Max)
	rep.Assessment = rep.Rating.Assessment()
	a.logger.Debug("analysis complete",
		"run_id", rep.RunID,
		"datasets", len(outcomes),
		"max_error_pct", rep.Statistics.Max,
		"rating", rep.Rating.String(),
	)
	return rep, nil
}

func (a *Analyzer) workers() int {
	if a.opt.Workers < 1 {
		return 1
	}
	return a.opt.Workers
}

func (a *Analyzer) searchAll(ctx context.Context, sets []dataset.Dataset) ([]Outcome, error) {
	outcomes := make([]Outcome, len(sets))
	if a.workers() == 1 {
		for i, d := range sets {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			o, err := a.searchOne(d)
			if err != nil {
				return nil, err
			}
			outcomes[i] = o
		}
		return outcomes, nil
	}

	// Siblings are not cancelled on failure, so every dataset below the first
	// failing label is searched and the reported error matches a sequential run.
	failures := make([]error, len(sets))
	var g errgroup.Group
	g.SetLimit(a.workers())
	for i, d := range sets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				failures[i] = err
				return err
			}
			o, err := a.searchOne(d)
			if err != nil {
				failures[i] = err
				return err
			}
			outcomes[i] = o
			return nil
		})
	}
	waitErr := g.Wait()
	for _, err := range failures {
		if err != nil {
			return nil, err
		}
	}
	if waitErr != nil {
		return nil, waitErr
	}
	return outcomes, nil
}

func (a *Analyzer) searchOne(d dataset.Dataset) (Outcome, error) {
	m, err := a.searcher.Find(d.Label, d.Numbers, d.Target)
	if err != nil {
		return Outcome{}, &DatasetError{Label: d.Label, Err: err}
	}
	return Outcome{Label: d.Label, Target: d.Target, Match: m}, nil
}
