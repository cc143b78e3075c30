package tree

// DefaultThreshold is the entropy below which a node becomes a leaf.
const DefaultThreshold = 1e-5

// Option is a functional option for DecisionTreeClassifier.
type Option func(*DecisionTreeClassifier)

// WithMaxDepth limits the number of splits on any root-to-leaf path.
// -1 (the default) means no limit.
func WithMaxDepth(depth int) Option {
	return func(dt *DecisionTreeClassifier) {
		dt.maxDepth = depth
	}
}

// WithThreshold sets the entropy below which a node becomes a leaf.
func WithThreshold(threshold float64) Option {
	return func(dt *DecisionTreeClassifier) {
		dt.threshold = threshold
	}
}

// WithAttributeSubset restricts the split candidates to the given column
// indices. The label index may be included and is ignored. Examples keep
// their full width.
func WithAttributeSubset(indices []int) Option {
	return func(dt *DecisionTreeClassifier) {
		dt.attributeSubset = append([]int(nil), indices...)
	}
}
