// Package tree implements an ID3 decision tree classifier over categorical
// attributes: entropy and information gain select one attribute per node and
// every observed value of that attribute gets its own child.
package tree

import (
	"fmt"
	"time"

	"github.com/YuminosukeSato/dtforest/core/dataset"
	"github.com/YuminosukeSato/dtforest/core/model"
	"github.com/YuminosukeSato/dtforest/core/parallel"
	"github.com/YuminosukeSato/dtforest/metrics"
	"github.com/YuminosukeSato/dtforest/pkg/errors"
	"github.com/YuminosukeSato/dtforest/pkg/log"
)

const modelName = "DecisionTreeClassifier"

// batchThreshold is the batch size above which PredictBatch walks the tree
// from several goroutines.
const batchThreshold = 512

var _ model.Classifier = (*DecisionTreeClassifier)(nil)

// DecisionTreeClassifier is an ID3 decision tree.
type DecisionTreeClassifier struct {
	state *model.StateManager // State management (composition)

	// Hyperparameters
	maxDepth        int     // -1 for unlimited
	threshold       float64 // entropy below which a node becomes a leaf
	attributeSubset []int   // eligible split columns, nil for all

	// Model
	root       *Node
	attributes dataset.Attributes
}

// NewDecisionTreeClassifier creates a new DecisionTreeClassifier.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	dt := &DecisionTreeClassifier{
		state:     model.NewStateManager(),
		maxDepth:  -1,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(dt)
	}
	return dt
}

func (dt *DecisionTreeClassifier) validateParams() error {
	if dt.maxDepth < -1 {
		return errors.NewValidationError("max_depth", "must be -1 (unlimited) or >= 0", dt.maxDepth)
	}
	if dt.threshold < 0 {
		return errors.NewValidationError("threshold", "must be >= 0", dt.threshold)
	}
	return nil
}

// eligibleMask marks the non-label columns that may be split on.
func (dt *DecisionTreeClassifier) eligibleMask(width int) ([]bool, error) {
	mask := make([]bool, width)
	label := width - 1
	if dt.attributeSubset == nil {
		for i := 0; i < label; i++ {
			mask[i] = true
		}
		return mask, nil
	}
	for _, idx := range dt.attributeSubset {
		if idx < 0 || idx >= width {
			return nil, errors.NewValidationError("attribute_subset", "index out of range", idx)
		}
		if idx != label {
			mask[idx] = true
		}
	}
	return mask, nil
}

// Fit grows the tree from examples. attributes names every column; the last
// one is the label and is never split on. Fitting again replaces the tree.
func (dt *DecisionTreeClassifier) Fit(examples dataset.Examples, attributes dataset.Attributes) (err error) {
	defer errors.Recover(&err, modelName+".Fit")

	dt.state.Reset()
	dt.root = nil

	if err := dt.validateParams(); err != nil {
		return err
	}
	if err := attributes.Validate(modelName + ".Fit"); err != nil {
		return err
	}
	if err := examples.Validate(modelName+".Fit", len(attributes)); err != nil {
		return err
	}
	eligible, err := dt.eligibleMask(len(attributes))
	if err != nil {
		return err
	}

	logger := log.GetLoggerWithName("tree.classifier").With(log.ModelNameKey, modelName)
	logger.Debug("Fitting DecisionTreeClassifier",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(examples),
		log.FeaturesKey, attributes.NumFeatures(),
		log.LabelKey, attributes.Label(),
		log.MaxDepthKey, dt.maxDepth)
	start := time.Now()

	attrs := append(dataset.Attributes(nil), attributes...)
	root := newBuilder(attrs, dt.threshold, logger).build(examples, examples, eligible, dt.maxDepth)

	dt.root = root
	dt.attributes = attrs
	dt.state.SetDimensions(len(attrs), len(examples))
	dt.state.SetFitted()

	rootName := ""
	if !root.IsLeaf() {
		rootName = root.Name
	}
	logger.Debug("DecisionTreeClassifier fitted",
		log.TreeDepthKey, root.Depth(),
		log.TreeLeavesKey, root.NumLeaves(),
		log.TreeNodesKey, root.NumNodes(),
		log.RootAttributeKey, rootName,
		log.DurationMsKey, time.Since(start).Milliseconds())
	return nil
}

func (dt *DecisionTreeClassifier) checkWidth(op string, example dataset.Example) error {
	n := len(dt.attributes)
	if len(example) != n && len(example) != n-1 {
		return errors.NewDimensionError(op, n-1, len(example), 1)
	}
	return nil
}

// Predict returns the label for example, or Unknown when the example reaches
// a node that never saw its value. example holds every attribute value, with
// or without the trailing label.
func (dt *DecisionTreeClassifier) Predict(example dataset.Example) (model.Prediction, error) {
	if err := dt.state.RequireFitted(modelName, "Predict"); err != nil {
		return model.Unknown(), err
	}
	if err := dt.checkWidth("Predict", example); err != nil {
		return model.Unknown(), err
	}
	return dt.root.Predict(example), nil
}

// PredictBatch predicts every example in order.
func (dt *DecisionTreeClassifier) PredictBatch(examples dataset.Examples) ([]model.Prediction, error) {
	if err := dt.state.RequireFitted(modelName, "PredictBatch"); err != nil {
		return nil, err
	}
	for _, ex := range examples {
		if err := dt.checkWidth("PredictBatch", ex); err != nil {
			return nil, err
		}
	}
	preds := make([]model.Prediction, len(examples))
	parallel.ParallelizeWithThreshold(len(examples), batchThreshold, 0, func(start, end int) {
		for i := start; i < end; i++ {
			preds[i] = dt.root.Predict(examples[i])
		}
	})
	return preds, nil
}

// Score returns the accuracy on labelled examples. Unknown predictions count
// as misses.
func (dt *DecisionTreeClassifier) Score(examples dataset.Examples) (float64, error) {
	if err := dt.state.RequireFitted(modelName, "Score"); err != nil {
		return 0, err
	}
	if err := examples.Validate("Score", len(dt.attributes)); err != nil {
		return 0, err
	}
	preds, err := dt.PredictBatch(examples)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(examples.Labels(), preds)
}

// IsFitted reports whether Fit has completed successfully.
func (dt *DecisionTreeClassifier) IsFitted() bool { return dt.state.IsFitted() }

// Root returns the root node, or nil before Fit. The tree must not be modified.
func (dt *DecisionTreeClassifier) Root() *Node { return dt.root }

// Attributes returns the attribute names seen during Fit.
func (dt *DecisionTreeClassifier) Attributes() dataset.Attributes {
	return append(dataset.Attributes(nil), dt.attributes...)
}

// GetDepth returns the depth of the fitted tree.
func (dt *DecisionTreeClassifier) GetDepth() int {
	if dt.root == nil {
		return 0
	}
	return dt.root.Depth()
}

// GetNLeaves returns the number of leaves of the fitted tree.
func (dt *DecisionTreeClassifier) GetNLeaves() int {
	if dt.root == nil {
		return 0
	}
	return dt.root.NumLeaves()
}

// GetParams returns the hyperparameters.
func (dt *DecisionTreeClassifier) GetParams() map[string]interface{} {
	params := map[string]interface{}{
		"max_depth": dt.maxDepth,
		"threshold": dt.threshold,
	}
	if dt.attributeSubset != nil {
		params["attribute_subset"] = append([]int(nil), dt.attributeSubset...)
	}
	return params
}

// GetState returns the fitted state with the hyperparameters filled in.
func (dt *DecisionTreeClassifier) GetState() model.ModelState {
	s := dt.state.GetState()
	s.Params = dt.GetParams()
	return s
}

func (dt *DecisionTreeClassifier) String() string {
	if dt.root == nil {
		return fmt.Sprintf("%s(max_depth=%d, unfitted)", modelName, dt.maxDepth)
	}
	return fmt.Sprintf("%s(max_depth=%d)\n%s", modelName, dt.maxDepth, dt.root)
}
