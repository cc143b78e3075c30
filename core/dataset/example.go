package dataset

import (
	"fmt"

	"github.com/YuminosukeSato/dtforest/pkg/errors"
)

// Example is one row: attribute values followed by the label.
type Example []Value

// Examples is an ordered example set. The estimators never modify it.
type Examples []Example

// Attributes names the columns of an example set. The last name is the label.
type Attributes []string

// NewExample converts Go values with Of.
func NewExample(values ...interface{}) (Example, error) {
	ex := make(Example, len(values))
	for i, v := range values {
		val, err := Of(v)
		if err != nil {
			return nil, errors.NewValueError("NewExample", fmt.Sprintf("column %d: %v", i, err))
		}
		ex[i] = val
	}
	return ex, nil
}

// MustExample is like NewExample but panics on unsupported values.
// It is meant for literals in tests and examples.
func MustExample(values ...interface{}) Example {
	ex, err := NewExample(values...)
	if err != nil {
		panic(err)
	}
	return ex
}

// FromStrings builds examples whose cells are all string Values, the usual
// shape of Y/N tables.
func FromStrings(rows [][]string) Examples {
	out := make(Examples, len(rows))
	for i, row := range rows {
		ex := make(Example, len(row))
		for j, cell := range row {
			ex[j] = String(cell)
		}
		out[i] = ex
	}
	return out
}

// Label returns the last value of ex.
func (ex Example) Label() Value {
	if len(ex) == 0 {
		return Missing()
	}
	return ex[len(ex)-1]
}

// Features returns ex without its label. The result shares storage with ex.
func (ex Example) Features() Example {
	if len(ex) == 0 {
		return ex
	}
	return ex[:len(ex)-1]
}

// Len returns the number of examples.
func (es Examples) Len() int { return len(es) }

// Column returns the values of column i in row order.
func (es Examples) Column(i int) []Value {
	col := make([]Value, len(es))
	for r, ex := range es {
		col[r] = ex[i]
	}
	return col
}

// Labels returns the label column.
func (es Examples) Labels() []Value {
	labels := make([]Value, len(es))
	for r, ex := range es {
		labels[r] = ex.Label()
	}
	return labels
}

// Validate checks that the set is non-empty and that every row has width
// columns.
func (es Examples) Validate(op string, width int) error {
	if len(es) == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	for _, ex := range es {
		if len(ex) != width {
			return errors.NewDimensionError(op, width, len(ex), 1)
		}
	}
	return nil
}

// LabelIndex returns the index of the label column.
func (a Attributes) LabelIndex() int { return len(a) - 1 }

// Label returns the label attribute name.
func (a Attributes) Label() string {
	if len(a) == 0 {
		return ""
	}
	return a[len(a)-1]
}

// NumFeatures returns the number of non-label attributes.
func (a Attributes) NumFeatures() int {
	if len(a) == 0 {
		return 0
	}
	return len(a) - 1
}

// Index returns the position of name, or -1.
func (a Attributes) Index(name string) int {
	for i, n := range a {
		if n == name {
			return i
		}
	}
	return -1
}

// Validate requires at least one attribute besides the label and unique names.
func (a Attributes) Validate(op string) error {
	if len(a) < 2 {
		return errors.NewValidationError("attributes", "need at least one attribute and a label", len(a))
	}
	seen := make(map[string]struct{}, len(a))
	for _, n := range a {
		if _, dup := seen[n]; dup {
			return errors.NewValidationError("attributes", op+": duplicate attribute name", n)
		}
		seen[n] = struct{}{}
	}
	return nil
}
