package tree

import (
	"context"

	"github.com/YuminosukeSato/dtforest/core/dataset"
	"github.com/YuminosukeSato/dtforest/pkg/errors"
	"github.com/YuminosukeSato/dtforest/pkg/log"
)

// builder grows one tree. It only reads the examples and attribute names.
type builder struct {
	attributes dataset.Attributes
	threshold  float64
	logger     log.Logger
	debug      bool
}

func newBuilder(attributes dataset.Attributes, threshold float64, logger log.Logger) *builder {
	return &builder{
		attributes: attributes,
		threshold:  threshold,
		logger:     logger,
		debug:      logger.Enabled(context.Background(), log.LevelDebug),
	}
}

// build returns the subtree for examples. parent is the example set of the
// calling node and is only used when examples is empty. eligible is owned by
// the caller and never written; remaining < 0 means no depth limit.
func (b *builder) build(examples, parent dataset.Examples, eligible []bool, remaining int) *Node {
	if len(examples) == 0 {
		return newLeaf(labelCounts(parent).Majority(), 0)
	}

	counts := labelCounts(examples)
	entropy := counts.Entropy()
	switch {
	case entropy == 0, entropy < b.threshold:
		return newLeaf(counts.Majority(), len(examples))
	case !anyEligible(eligible, b.attributes.LabelIndex()):
		return newLeaf(counts.Majority(), len(examples))
	case remaining == 0:
		return newLeaf(counts.Majority(), len(examples))
	}

	q, ok := BestQuestion(examples, eligible, entropy)
	if !ok {
		return newLeaf(counts.Majority(), len(examples))
	}

	name := b.attributes[q.Attribute]
	if q.Gain <= 0 {
		errors.Warn(errors.NewDegenerateSplitWarning(name, q.Attribute, len(examples), q.Gain))
	}
	if b.debug {
		b.logger.Debug("split chosen",
			log.SplitAttributeKey, name,
			log.SamplesKey, len(examples),
			log.GainKey, q.Gain,
			log.EntropyKey, entropy)
	}

	childEligible := make([]bool, len(eligible))
	copy(childEligible, eligible)
	childEligible[q.Attribute] = false

	next := remaining
	if next > 0 {
		next--
	}

	node := &Node{
		Attribute: q.Attribute,
		Name:      name,
		Children:  make(map[dataset.Value]*Node, len(q.Values)),
		Values:    q.Values,
		Samples:   len(examples),
		Gain:      q.Gain,
	}
	for _, v := range q.Values {
		node.Children[v] = b.build(q.Groups[v], examples, childEligible, next)
	}
	return node
}

func anyEligible(eligible []bool, label int) bool {
	for i, e := range eligible {
		if e && i != label {
			return true
		}
	}
	return false
}
