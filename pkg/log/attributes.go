// Package log defines standard attribute keys for tree and forest operations.
//
// Keys follow a hierarchical naming convention ("model.name", "data.samples",
// "tree.depth") so records from the tree builder and the ensemble can be
// filtered together.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "DecisionTreeClassifier", "RandomForestClassifier"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies the package emitting the record.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	PhaseKey = "ml.phase"

	// RunIDKey correlates the records of one command line invocation.
	RunIDKey = "run.id"
)

// Data Shape
const (
	// SamplesKey is the number of examples (rows).
	SamplesKey = "data.samples"

	// FeaturesKey is the number of non-label attributes.
	FeaturesKey = "data.features"

	// LabelKey names the label attribute.
	LabelKey = "data.label"

	// PathKey is the file a data set was read from.
	PathKey = "data.path"
)

// Tree and Ensemble Structure
const (
	// TreeDepthKey is the depth of a grown tree (root = 0).
	TreeDepthKey = "tree.depth"

	// TreeLeavesKey is the number of leaves of a grown tree.
	TreeLeavesKey = "tree.leaves"

	// TreeNodesKey is the total number of nodes of a grown tree.
	TreeNodesKey = "tree.nodes"

	// RootAttributeKey is the attribute chosen at the root.
	RootAttributeKey = "tree.root_attribute"

	// SplitAttributeKey is the attribute chosen at an internal node.
	SplitAttributeKey = "tree.split_attribute"

	// GainKey is the information gain of a split, in bits.
	GainKey = "tree.gain"

	// EntropyKey is the label entropy of a node before splitting, in bits.
	EntropyKey = "tree.entropy"

	// TreeIndexKey is the position of a tree inside a forest.
	TreeIndexKey = "forest.tree_index"

	// TreesKey is the number of trees in a forest.
	TreesKey = "forest.trees"

	// SubsetKey lists the attribute indices a forest tree was allowed to use.
	SubsetKey = "forest.attribute_subset"

	// WorkersKey is the number of parallel builders.
	WorkersKey = "forest.workers"
)

// Metrics and Timing
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records accuracy; unknown predictions count as misses.
	AccuracyKey = "metrics.accuracy"

	// UnknownRateKey records the share of unknown predictions.
	UnknownRateKey = "metrics.unknown_rate"

	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"
)

// Error Context
const (
	// ErrorCodeKey provides a structured error code.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the error or warning type.
	ErrorTypeKey = "error.type"
)

// Hyperparameters and Configuration
const (
	// HyperParamsKey contains estimator hyperparameters.
	HyperParamsKey = "model.hyperparams"

	// MaxDepthKey records the configured depth limit (-1 = unlimited).
	MaxDepthKey = "hyperparams.max_depth"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationLoad    = "load"

	PhaseTraining  = "training"
	PhaseTesting   = "testing"
	PhaseInference = "inference"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
)
