package model

import (
	"github.com/YuminosukeSato/dtforest/core/dataset"
)

// UnknownSymbol is how an Unknown prediction is printed.
const UnknownSymbol = "<unknown>"

// Prediction is either a label value or Unknown. Unknown is distinct from
// every label value, including the missing value. The zero Prediction is
// Unknown.
type Prediction struct {
	label dataset.Value
	known bool
}

// Unknown returns the prediction for an example the model cannot classify.
func Unknown() Prediction { return Prediction{} }

// Known returns a prediction of label.
func Known(label dataset.Value) Prediction {
	return Prediction{label: label, known: true}
}

// IsUnknown reports whether p is Unknown.
func (p Prediction) IsUnknown() bool { return !p.known }

// Label returns the predicted label and whether p is known.
func (p Prediction) Label() (dataset.Value, bool) {
	return p.label, p.known
}

// Matches reports whether p is known and equal to label.
func (p Prediction) Matches(label dataset.Value) bool {
	return p.known && p.label == label
}

func (p Prediction) String() string {
	if !p.known {
		return UnknownSymbol
	}
	return p.label.String()
}
