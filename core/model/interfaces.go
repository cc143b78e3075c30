package model

import (
	"github.com/YuminosukeSato/dtforest/core/dataset"
)

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the accuracy of the predictions against the labels of
	// examples. Unknown predictions count as misses.
	Score(examples dataset.Examples) (float64, error)
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	// GetParams returns the model's hyperparameters.
	GetParams() map[string]interface{}
}

// Classifier combines interfaces for classification models.
type Classifier interface {
	Fitter
	Predictor
	BatchPredictor
	Scorer
	ParameterGetter

	// IsFitted reports whether Fit has completed successfully.
	IsFitted() bool

	// GetState reports the fitted state and training shape along with the
	// hyperparameters.
	GetState() ModelState
}
