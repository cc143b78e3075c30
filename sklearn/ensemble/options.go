package ensemble

// Defaults for RandomForestClassifier.
const (
	DefaultNEstimators   = 4
	DefaultMaxAttributes = 5
	DefaultMaxDepth      = 5
)

// Option is a functional option for RandomForestClassifier.
type Option func(*RandomForestClassifier)

// WithNEstimators sets the number of trees.
func WithNEstimators(n int) Option {
	return func(rf *RandomForestClassifier) {
		rf.nEstimators = n
	}
}

// WithMaxAttributes sets how many non-label attributes each tree may split on.
func WithMaxAttributes(n int) Option {
	return func(rf *RandomForestClassifier) {
		rf.maxAttributes = n
	}
}

// WithMaxDepth sets the depth limit of every tree. -1 means no limit.
func WithMaxDepth(depth int) Option {
	return func(rf *RandomForestClassifier) {
		rf.maxDepth = depth
	}
}

// WithThreshold sets the entropy below which a tree node becomes a leaf.
func WithThreshold(threshold float64) Option {
	return func(rf *RandomForestClassifier) {
		rf.threshold = threshold
	}
}

// WithRandomState seeds attribute subset sampling. A negative seed draws a
// new seed on every Fit.
func WithRandomState(seed int64) Option {
	return func(rf *RandomForestClassifier) {
		rf.randomState = seed
	}
}

// WithNJobs sets how many trees are grown concurrently. Values <= 0 use one
// worker per CPU.
func WithNJobs(n int) Option {
	return func(rf *RandomForestClassifier) {
		rf.nJobs = n
	}
}

// WithDistinctSubsets makes every tree use a different attribute subset.
func WithDistinctSubsets(distinct bool) Option {
	return func(rf *RandomForestClassifier) {
		rf.distinctSubsets = distinct
	}
}
