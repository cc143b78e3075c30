// Package ensemble implements a random forest of ID3 decision trees. Each
// tree is grown on every example but may only split on its own random subset
// of attributes; predictions are decided by vote.
package ensemble

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/YuminosukeSato/dtforest/core/dataset"
	"github.com/YuminosukeSato/dtforest/core/model"
	"github.com/YuminosukeSato/dtforest/core/parallel"
	"github.com/YuminosukeSato/dtforest/metrics"
	"github.com/YuminosukeSato/dtforest/pkg/errors"
	"github.com/YuminosukeSato/dtforest/pkg/log"
	"github.com/YuminosukeSato/dtforest/sklearn/tree"
)

const modelName = "RandomForestClassifier"

const batchThreshold = 256

var _ model.Classifier = (*RandomForestClassifier)(nil)

// RandomForestClassifier is an ensemble of decision trees built on random
// attribute subsets.
type RandomForestClassifier struct {
	state *model.StateManager // State management (composition)

	// Hyperparameters
	nEstimators     int     // number of trees
	maxAttributes   int     // non-label attributes per tree
	maxDepth        int     // per-tree depth limit, -1 for unlimited
	threshold       float64 // per-tree entropy threshold
	randomState     int64   // subset sampling seed, negative for random
	nJobs           int     // concurrent tree builds, <= 0 for one per CPU
	distinctSubsets bool    // no two trees share a subset

	// Model
	trees      []*tree.DecisionTreeClassifier
	subsets    [][]int
	attributes dataset.Attributes
}

// NewRandomForestClassifier creates a new RandomForestClassifier.
func NewRandomForestClassifier(opts ...Option) *RandomForestClassifier {
	rf := &RandomForestClassifier{
		state:         model.NewStateManager(),
		nEstimators:   DefaultNEstimators,
		maxAttributes: DefaultMaxAttributes,
		maxDepth:      DefaultMaxDepth,
		threshold:     tree.DefaultThreshold,
		randomState:   -1,
		nJobs:         -1,
	}
	for _, opt := range opts {
		opt(rf)
	}
	return rf
}

func (rf *RandomForestClassifier) validateParams(attributes dataset.Attributes) error {
	if rf.nEstimators < 1 {
		return errors.NewValidationError("n_estimators", "must be >= 1", rf.nEstimators)
	}
	if rf.maxAttributes < 1 {
		return errors.NewValidationError("max_attributes", "must be >= 1", rf.maxAttributes)
	}
	if rf.maxDepth < -1 {
		return errors.NewValidationError("max_depth", "must be -1 (unlimited) or >= 0", rf.maxDepth)
	}
	if rf.threshold < 0 {
		return errors.NewValidationError("threshold", "must be >= 0", rf.threshold)
	}

	nonLabel := attributes.NumFeatures()
	if rf.maxAttributes > nonLabel {
		return errors.NewValidationError("max_attributes",
			fmt.Sprintf("must not exceed the %d non-label attributes", nonLabel), rf.maxAttributes)
	}
	if rf.distinctSubsets {
		if available := subsetCount(nonLabel, rf.maxAttributes); float64(rf.nEstimators) > available {
			return errors.NewValidationError("n_estimators",
				fmt.Sprintf("only %.0f distinct attribute subsets of size %d exist", available, rf.maxAttributes),
				rf.nEstimators)
		}
	}
	return nil
}

func (rf *RandomForestClassifier) source() rand.Source {
	seed := uint64(rf.randomState)
	if rf.randomState < 0 {
		seed = rand.Uint64()
	}
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// drawSubsets draws one attribute subset per tree from a single source so a
// fixed seed gives the same subsets regardless of how trees are scheduled.
func (rf *RandomForestClassifier) drawSubsets(nAttributes int) [][]int {
	src := rf.source()
	subsets := make([][]int, 0, rf.nEstimators)
	seen := make(map[string]struct{}, rf.nEstimators)
	for len(subsets) < rf.nEstimators {
		subset := AttributeSubset(src, nAttributes, rf.maxAttributes)
		if rf.distinctSubsets {
			key := subsetKey(subset)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		subsets = append(subsets, subset)
	}
	return subsets
}

// Fit grows the forest. See FitContext.
func (rf *RandomForestClassifier) Fit(examples dataset.Examples, attributes dataset.Attributes) error {
	return rf.FitContext(context.Background(), examples, attributes)
}

// FitContext grows nEstimators trees on the full example set, each limited to
// a fresh random attribute subset. The configuration is validated before any
// tree is built. Cancelling ctx stops scheduling further trees and returns
// the context error.
func (rf *RandomForestClassifier) FitContext(ctx context.Context, examples dataset.Examples, attributes dataset.Attributes) (err error) {
	defer errors.Recover(&err, modelName+".Fit")

	rf.state.Reset()
	rf.trees, rf.subsets = nil, nil

	if err := attributes.Validate(modelName + ".Fit"); err != nil {
		return err
	}
	if err := rf.validateParams(attributes); err != nil {
		return err
	}
	if err := examples.Validate(modelName+".Fit", len(attributes)); err != nil {
		return err
	}

	logger := log.GetLoggerWithName("ensemble.forest").With(log.ModelNameKey, modelName)
	workers := parallel.Workers(rf.nJobs, rf.nEstimators)
	logger.Debug("Fitting RandomForestClassifier",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(examples),
		log.FeaturesKey, attributes.NumFeatures(),
		log.TreesKey, rf.nEstimators,
		log.WorkersKey, workers,
		log.MaxDepthKey, rf.maxDepth,
		log.RandomSeedKey, rf.randomState)
	start := time.Now()

	attrs := append(dataset.Attributes(nil), attributes...)
	subsets := rf.drawSubsets(len(attrs))
	trees := make([]*tree.DecisionTreeClassifier, len(subsets))

	err = parallel.ForEach(ctx, len(subsets), rf.nJobs, func(_ context.Context, i int) error {
		dt := tree.NewDecisionTreeClassifier(
			tree.WithMaxDepth(rf.maxDepth),
			tree.WithThreshold(rf.threshold),
			tree.WithAttributeSubset(subsets[i]),
		)
		if err := dt.Fit(examples, attrs); err != nil {
			return errors.Wrapf(err, "growing tree %d", i)
		}
		trees[i] = dt
		logger.Debug("tree grown",
			log.TreeIndexKey, i,
			log.SubsetKey, subsetNames(attrs, subsets[i]),
			log.TreeDepthKey, dt.GetDepth(),
			log.TreeLeavesKey, dt.GetNLeaves())
		return nil
	})
	if err != nil {
		return err
	}

	rf.trees = trees
	rf.subsets = subsets
	rf.attributes = attrs
	rf.state.SetDimensions(len(attrs), len(examples))
	rf.state.SetFitted()

	logger.Info("RandomForestClassifier fitted",
		log.TreesKey, len(trees),
		log.DurationMsKey, time.Since(start).Milliseconds())
	return nil
}

func subsetNames(attrs dataset.Attributes, subset []int) []string {
	names := make([]string, len(subset))
	for i, idx := range subset {
		names[i] = attrs[idx]
	}
	return names
}

// vote tallies predictions in order and returns the first one to reach the
// highest count. unanimousUnknown reports whether every vote was Unknown.
func vote(preds []model.Prediction) (winner model.Prediction, unanimousUnknown bool) {
	counts := make(map[model.Prediction]int, len(preds))
	best := 0
	for _, p := range preds {
		counts[p]++
		if counts[p] > best {
			winner, best = p, counts[p]
		}
	}
	return winner, len(preds) > 0 && counts[model.Unknown()] == len(preds)
}

func (rf *RandomForestClassifier) checkWidth(op string, example dataset.Example) error {
	n := len(rf.attributes)
	if len(example) != n && len(example) != n-1 {
		return errors.NewDimensionError(op, n-1, len(example), 1)
	}
	return nil
}

func (rf *RandomForestClassifier) predictOne(example dataset.Example) (model.Prediction, bool) {
	preds := make([]model.Prediction, len(rf.trees))
	for i, dt := range rf.trees {
		preds[i] = dt.Root().Predict(example)
	}
	return vote(preds)
}

// Predict asks every tree in order and returns the label with the most votes.
// An Unknown answer is a vote like any other; on a tie the prediction that
// reached the top count first wins.
func (rf *RandomForestClassifier) Predict(example dataset.Example) (model.Prediction, error) {
	if err := rf.state.RequireFitted(modelName, "Predict"); err != nil {
		return model.Unknown(), err
	}
	if err := rf.checkWidth("Predict", example); err != nil {
		return model.Unknown(), err
	}
	p, allUnknown := rf.predictOne(example)
	if allUnknown {
		errors.Warn(errors.NewUnknownVoteWarning(len(rf.trees)))
	}
	return p, nil
}

// PredictBatch predicts every example in order. At most one
// UnknownVoteWarning is emitted per call.
func (rf *RandomForestClassifier) PredictBatch(examples dataset.Examples) ([]model.Prediction, error) {
	if err := rf.state.RequireFitted(modelName, "PredictBatch"); err != nil {
		return nil, err
	}
	for _, ex := range examples {
		if err := rf.checkWidth("PredictBatch", ex); err != nil {
			return nil, err
		}
	}

	preds := make([]model.Prediction, len(examples))
	allUnknown := make([]bool, len(examples))
	parallel.ParallelizeWithThreshold(len(examples), batchThreshold, rf.nJobs, func(start, end int) {
		for i := start; i < end; i++ {
			preds[i], allUnknown[i] = rf.predictOne(examples[i])
		}
	})
	for _, u := range allUnknown {
		if u {
			errors.Warn(errors.NewUnknownVoteWarning(len(rf.trees)))
			break
		}
	}
	return preds, nil
}

// Score returns the accuracy on labelled examples. Unknown predictions count
// as misses.
func (rf *RandomForestClassifier) Score(examples dataset.Examples) (float64, error) {
	if err := rf.state.RequireFitted(modelName, "Score"); err != nil {
		return 0, err
	}
	if err := examples.Validate("Score", len(rf.attributes)); err != nil {
		return 0, err
	}
	preds, err := rf.PredictBatch(examples)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(examples.Labels(), preds)
}

// IsFitted reports whether Fit has completed successfully.
func (rf *RandomForestClassifier) IsFitted() bool { return rf.state.IsFitted() }

// Estimators returns the fitted trees in build order.
func (rf *RandomForestClassifier) Estimators() []*tree.DecisionTreeClassifier {
	return append([]*tree.DecisionTreeClassifier(nil), rf.trees...)
}

// Subsets returns the attribute subset of each tree, label index included.
func (rf *RandomForestClassifier) Subsets() [][]int {
	out := make([][]int, len(rf.subsets))
	for i, s := range rf.subsets {
		out[i] = append([]int(nil), s...)
	}
	return out
}

// GetParams returns the hyperparameters.
func (rf *RandomForestClassifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_estimators":     rf.nEstimators,
		"max_attributes":   rf.maxAttributes,
		"max_depth":        rf.maxDepth,
		"threshold":        rf.threshold,
		"random_state":     rf.randomState,
		"n_jobs":           rf.nJobs,
		"distinct_subsets": rf.distinctSubsets,
	}
}

// GetState returns the fitted state with the hyperparameters filled in.
func (rf *RandomForestClassifier) GetState() model.ModelState {
	s := rf.state.GetState()
	s.Params = rf.GetParams()
	return s
}

func (rf *RandomForestClassifier) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s(n_estimators=%d, max_attributes=%d, max_depth=%d)",
		modelName, rf.nEstimators, rf.maxAttributes, rf.maxDepth)
	if !rf.IsFitted() {
		sb.WriteString(" unfitted")
		return sb.String()
	}
	for i, dt := range rf.trees {
		fmt.Fprintf(&sb, "\ntree %d %v\n%s", i, subsetNames(rf.attributes, rf.subsets[i]), dt.Root())
	}
	return sb.String()
}
