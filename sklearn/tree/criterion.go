package tree

import (
	"math"

	"github.com/YuminosukeSato/dtforest/core/dataset"
	"github.com/YuminosukeSato/dtforest/pkg/errors"
)

// Frequencies counts the values of one column. Values are kept in the order
// they were first seen, which fixes every tie-break that depends on it.
type Frequencies struct {
	order  []dataset.Value
	counts map[dataset.Value]int
	total  int
}

func countValues(examples dataset.Examples, column int) *Frequencies {
	f := &Frequencies{counts: make(map[dataset.Value]int)}
	for _, ex := range examples {
		v := ex[column]
		if _, seen := f.counts[v]; !seen {
			f.order = append(f.order, v)
		}
		f.counts[v]++
	}
	f.total = len(examples)
	return f
}

func labelCounts(examples dataset.Examples) *Frequencies {
	return countValues(examples, len(examples[0])-1)
}

// LabelFrequencies counts the values of column over examples. A negative
// column selects the label column.
func LabelFrequencies(examples dataset.Examples, column int) (*Frequencies, error) {
	if len(examples) == 0 {
		return nil, errors.NewModelError("LabelFrequencies", "empty data", errors.ErrEmptyData)
	}
	width := len(examples[0])
	if column < 0 {
		column = width - 1
	}
	if column >= width {
		return nil, errors.NewValueError("LabelFrequencies",
			"column index out of range for examples of this width")
	}
	for _, ex := range examples {
		if len(ex) != width {
			return nil, errors.NewDimensionError("LabelFrequencies", width, len(ex), 1)
		}
	}
	return countValues(examples, column), nil
}

// Values returns the distinct values in first-seen order.
func (f *Frequencies) Values() []dataset.Value {
	out := make([]dataset.Value, len(f.order))
	copy(out, f.order)
	return out
}

// Count returns how many times v occurred.
func (f *Frequencies) Count(v dataset.Value) int { return f.counts[v] }

// Total returns the number of counted examples.
func (f *Frequencies) Total() int { return f.total }

// Len returns the number of distinct values.
func (f *Frequencies) Len() int { return len(f.order) }

// Majority returns the most frequent value. On a tie the value seen first
// wins.
func (f *Frequencies) Majority() dataset.Value {
	var best dataset.Value
	bestCount := -1
	for _, v := range f.order {
		if c := f.counts[v]; c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}

// Entropy returns the Shannon entropy in bits of the counted values.
func (f *Frequencies) Entropy() float64 {
	if f.total == 0 {
		return 0
	}
	n := float64(f.total)
	h := 0.0
	for _, v := range f.order {
		p := float64(f.counts[v]) / n
		h -= p * math.Log2(p)
	}
	return h
}

// MajorityLabel returns the most frequent label of examples, breaking ties
// by first appearance.
func MajorityLabel(examples dataset.Examples) (dataset.Value, error) {
	f, err := LabelFrequencies(examples, -1)
	if err != nil {
		return dataset.Missing(), err
	}
	return f.Majority(), nil
}

// Entropy returns the entropy in bits of the label column of examples.
// It is zero when every example has the same label.
func Entropy(examples dataset.Examples) (float64, error) {
	f, err := LabelFrequencies(examples, -1)
	if err != nil {
		return 0, err
	}
	return f.Entropy(), nil
}
