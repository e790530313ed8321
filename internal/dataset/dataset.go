// Package dataset loads labeled (target, numbers) pools from a spreadsheet
// where each set occupies one column and sets sit side by side.
package dataset

import (
	"fmt"
	"sort"
)

// Dataset is one labeled target with its pool of candidate numbers.
type Dataset struct {
	Label   string    `json:"label" yaml:"label"`
	Target  float64   `json:"target" yaml:"target"`
	Numbers []float64 `json:"numbers" yaml:"numbers"`
}

// Collection holds datasets ordered by label.
type Collection struct {
	Source string
	sets   []Dataset
	index  map[string]int
}

// NewCollection sorts sets by label and rejects duplicate labels. Number
// slices are copied so later changes by the caller are not observed.
func NewCollection(source string, sets []Dataset) (*Collection, error) {
	c := &Collection{Source: source, sets: make([]Dataset, len(sets)), index: make(map[string]int, len(sets))}
	for i, d := range sets {
		nums := make([]float64, len(d.Numbers))
		copy(nums, d.Numbers)
		c.sets[i] = Dataset{Label: d.Label, Target: d.Target, Numbers: nums}
	}
	sort.SliceStable(c.sets, func(i, j int) bool { return c.sets[i].Label < c.sets[j].Label })
	for i, d := range c.sets {
		if _, dup := c.index[d.Label]; dup {
			return nil, fmt.Errorf("duplicate dataset label %q", d.Label)
		}
		c.index[d.Label] = i
	}
	return c, nil
}

// Len returns the number of datasets.
func (c *Collection) Len() int { return len(c.sets) }

// Datasets returns the datasets in label order. The slice is a copy.
func (c *Collection) Datasets() []Dataset {
	out := make([]Dataset, len(c.sets))
	copy(out, c.sets)
	return out
}

// Get returns the dataset with the given label.
func (c *Collection) Get(label string) (Dataset, bool) {
	i, ok := c.index[label]
	if !ok {
		return Dataset{}, false
	}
	return c.sets[i], true
}

// Summary describes the shape of a collection.
type Summary struct {
	Sets       int `json:"sets" yaml:"sets"`
	MaxNumbers int `json:"max_numbers" yaml:"max_numbers"`
	DataPoints int `json:"data_points" yaml:"data_points"`
}

// Summary counts sets, the longest pool and the total number of values.
func (c *Collection) Summary() Summary {
	s := Summary{Sets: len(c.sets)}
	for _, d := range c.sets {
		s.DataPoints += len(d.Numbers)
		if len(d.Numbers) > s.MaxNumbers {
			s.MaxNumbers = len(d.Numbers)
		}
	}
	return s
}
