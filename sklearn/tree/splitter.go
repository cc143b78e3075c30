package tree

import (
	"github.com/YuminosukeSato/dtforest/core/dataset"
)

// Question is a split: the attribute to ask about and the examples behind
// each observed answer.
type Question struct {
	Attribute int
	Gain      float64
	Values    []dataset.Value // answers in first-seen order
	Groups    map[dataset.Value]dataset.Examples
}

// InformationGain returns parentEntropy minus the size-weighted entropy of
// the groups, subtracting in the order of values.
func InformationGain(parentEntropy float64, total int, values []dataset.Value, groups map[dataset.Value]dataset.Examples) float64 {
	gain := parentEntropy
	n := float64(total)
	for _, v := range values {
		g := groups[v]
		gain -= labelCounts(g).Entropy() * float64(len(g)) / n
	}
	return gain
}

// BestQuestion picks the eligible non-label attribute with the highest
// information gain. The first eligible attribute is taken even when its gain
// is zero; a later attribute replaces it only with a strictly larger gain.
// ok is false when no attribute is eligible.
func BestQuestion(examples dataset.Examples, eligible []bool, parentEntropy float64) (q Question, ok bool) {
	if len(examples) == 0 {
		return Question{}, false
	}
	label := len(examples[0]) - 1
	for attr := 0; attr < label && attr < len(eligible); attr++ {
		if !eligible[attr] {
			continue
		}
		values, groups := PartitionBy(examples, attr)
		gain := InformationGain(parentEntropy, len(examples), values, groups)
		if !ok || q.Gain < gain {
			q = Question{Attribute: attr, Gain: gain, Values: values, Groups: groups}
			ok = true
		}
	}
	return q, ok
}
