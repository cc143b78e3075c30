// Package model provides the shared estimator interfaces, the Prediction
// result type and fitted-state management for the tree and forest models.
package model

import (
	"sync"

	"github.com/YuminosukeSato/dtforest/pkg/errors"
)

// StateManager manages the fitted state of a model in a thread-safe manner.
// Estimators embed it by composition.
type StateManager struct {
	fitted bool
	mu     sync.RWMutex

	// Shape of the training set seen by the last successful Fit.
	nAttributes int
	nExamples   int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
}

// Reset resets the fitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nAttributes = 0
	s.nExamples = 0
}

// SetDimensions records the number of attributes (label included) and
// examples seen during fitting.
func (s *StateManager) SetDimensions(nAttributes, nExamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nAttributes = nAttributes
	s.nExamples = nExamples
}

// GetDimensions returns the number of attributes and examples seen during fitting.
func (s *StateManager) GetDimensions() (nAttributes, nExamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nAttributes, s.nExamples
}

// RequireFitted returns a NotFittedError if the model has not been fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}

// ModelState represents the complete state of a model for debugging and
// reporting.
type ModelState struct {
	Fitted      bool                   `json:"fitted" yaml:"fitted"`
	NAttributes int                    `json:"n_attributes,omitempty" yaml:"n_attributes,omitempty"`
	NExamples   int                    `json:"n_examples,omitempty" yaml:"n_examples,omitempty"`
	Params      map[string]interface{} `json:"params,omitempty" yaml:"params,omitempty"`
}

// GetState returns the current state as a ModelState struct.
func (s *StateManager) GetState() ModelState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return ModelState{
		Fitted:      s.fitted,
		NAttributes: s.nAttributes,
		NExamples:   s.nExamples,
	}
}
