package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestCompute_KnownValues(t *testing.T) {
	in := []float64{1.2, 2.3, 0.8, 1.5}
	s, err := Compute(in)
	require.NoError(t, err)

	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 1.45, s.Mean, 1e-12)
	assert.InDelta(t, 1.35, s.Median, 1e-12)
	assert.Equal(t, 0.8, s.Min)
	assert.Equal(t, 2.3, s.Max)
	assert.InDelta(t, 1.5, s.Range, 1e-12)
	assert.InDelta(t, 1.21/3, s.Variance, 1e-12)
	assert.InDelta(t, math.Sqrt(1.21/3), s.StdDev, 1e-12)
	assert.InDelta(t, 1.1, s.Q1, 1e-12)
	assert.InDelta(t, 1.7, s.Q3, 1e-12)
	assert.InDelta(t, 0.6, s.IQR, 1e-12)

	// input order is preserved
	assert.Equal(t, []float64{1.2, 2.3, 0.8, 1.5}, in)
}

func TestCompute_AgreesWithGonum(t *testing.T) {
	in := []float64{0.0012, 4.85, 0.37, 2.2, 9.1, 0.004, 1.75, 3.3}
	s, err := Compute(in)
	require.NoError(t, err)

	assert.InDelta(t, stat.Mean(in, nil), s.Mean, 1e-12)
	assert.InDelta(t, stat.Variance(in, nil), s.Variance, 1e-12)
	assert.InDelta(t, stat.StdDev(in, nil), s.StdDev, 1e-12)
}

func TestCompute_OddCountMedian(t *testing.T) {
	s, err := Compute([]float64{5, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 2.0, s.Q1)
	assert.Equal(t, 4.0, s.Q3)
}

func TestCompute_TwoValues(t *testing.T) {
	s, err := Compute([]float64{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Variance)
	assert.InDelta(t, math.Sqrt2, s.StdDev, 1e-12)
	assert.Equal(t, 1.5, s.Q1)
	assert.Equal(t, 2.5, s.Q3)
}

func TestCompute_InsufficientSamples(t *testing.T) {
	_, err := Compute([]float64{1.5})
	assert.ErrorIs(t, err, ErrInsufficientSamples)

	_, err = Compute(nil)
	assert.ErrorIs(t, err, ErrInsufficientSamples)
}

func TestQuantile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}
	cases := []struct {
		q    float64
		want float64
	}{
		{-1, 10},
		{0, 10},
		{0.25, 20},
		{0.1, 14},
		{0.5, 30},
		{0.9, 46},
		{1, 50},
		{2, 50},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, Quantile(sorted, c.q), 1e-9, "q=%v", c.q)
	}
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}
