package tree

import (
	"github.com/YuminosukeSato/dtforest/core/dataset"
)

// Partition returns the examples whose value at attr equals value, in input
// order. The examples themselves are shared, not copied.
func Partition(examples dataset.Examples, attr int, value dataset.Value) dataset.Examples {
	var out dataset.Examples
	for _, ex := range examples {
		if ex[attr] == value {
			out = append(out, ex)
		}
	}
	return out
}

// PartitionBy groups examples by their value at attr in one pass. The
// returned values list the group keys in first-seen order.
func PartitionBy(examples dataset.Examples, attr int) ([]dataset.Value, map[dataset.Value]dataset.Examples) {
	var values []dataset.Value
	groups := make(map[dataset.Value]dataset.Examples)
	for _, ex := range examples {
		v := ex[attr]
		g, seen := groups[v]
		if !seen {
			values = append(values, v)
		}
		groups[v] = append(g, ex)
	}
	return values, groups
}
