package tree

import (
	"strings"

	"github.com/YuminosukeSato/dtforest/core/dataset"
)

func rows(table string) dataset.Examples {
	var out [][]string
	for _, line := range strings.Split(strings.TrimSpace(table), "\n") {
		out = append(out, strings.Fields(line))
	}
	return dataset.FromStrings(out)
}

// coffeeAttributes and coffeeExamples: does a student drink coffee?
var coffeeAttributes = dataset.Attributes{"veg", "iphone", "student", "american", "coffee"}

var coffeeExamples = rows(`
N Y N Y Y
N N N N Y
Y Y Y Y Y
Y N Y N N
N N Y Y N
N Y N N Y
Y Y N Y Y
N Y Y N N
Y N N Y Y
Y N N N N
Y Y Y Y N
N Y N N Y
N N Y Y Y
Y N Y N N
Y N N Y Y
N N Y N Y
Y Y Y Y N
N Y N N Y
Y N Y N Y
Y Y N N N
`)

// restaurantAttributes and restaurantExamples: will the customer wait?
var restaurantAttributes = dataset.Attributes{"reservation", "long_wait", "weekend", "rain", "will_wait"}

var restaurantExamples = rows(`
N Y Y Y Y
N N N Y N
N N Y N N
N Y N Y Y
Y Y Y N Y
N N Y N N
N Y Y N Y
N N N Y N
N N Y N Y
N Y N N N
`)

const (
	veg = iota
	iphone
	student
	american
)

const (
	reservation = iota
	longWait
	weekend
	rain
)

func leaf(label string) *Node {
	return newLeaf(dataset.String(label), 0)
}

func split(attr int, children map[string]*Node) *Node {
	n := &Node{Attribute: attr, Children: make(map[dataset.Value]*Node, len(children))}
	for v, c := range children {
		n.Children[dataset.String(v)] = c
		n.Values = append(n.Values, dataset.String(v))
	}
	return n
}

// coffeeDepth3 is the tree grown from coffeeExamples with max depth 3.
func coffeeDepth3() *Node {
	return split(student, map[string]*Node{
		"N": split(veg, map[string]*Node{
			"N": leaf("Y"),
			"Y": split(american, map[string]*Node{"Y": leaf("Y"), "N": leaf("N")}),
		}),
		"Y": split(iphone, map[string]*Node{
			"Y": split(veg, map[string]*Node{"Y": leaf("N"), "N": leaf("N")}),
			"N": split(veg, map[string]*Node{"Y": leaf("N"), "N": leaf("Y")}),
		}),
	})
}

// coffeeUnlimited is the tree grown from coffeeExamples with no depth limit.
func coffeeUnlimited() *Node {
	return split(student, map[string]*Node{
		"N": split(veg, map[string]*Node{
			"N": leaf("Y"),
			"Y": split(american, map[string]*Node{"Y": leaf("Y"), "N": leaf("N")}),
		}),
		"Y": split(iphone, map[string]*Node{
			"Y": split(veg, map[string]*Node{
				"Y": split(american, map[string]*Node{"Y": leaf("N")}),
				"N": leaf("N"),
			}),
			"N": split(veg, map[string]*Node{
				"Y": split(american, map[string]*Node{"N": leaf("N")}),
				"N": split(american, map[string]*Node{"Y": leaf("N"), "N": leaf("Y")}),
			}),
		}),
	})
}

// restaurantTree is the tree grown from restaurantExamples with no depth
// limit. Under long_wait=N, weekend=Y every remaining attribute has zero gain,
// so the first one evaluated (reservation) is chosen.
func restaurantTree() *Node {
	return split(longWait, map[string]*Node{
		"Y": split(weekend, map[string]*Node{
			"Y": leaf("Y"),
			"N": split(rain, map[string]*Node{"Y": leaf("Y"), "N": leaf("N")}),
		}),
		"N": split(weekend, map[string]*Node{
			"N": leaf("N"),
			"Y": split(reservation, map[string]*Node{
				"N": split(rain, map[string]*Node{"N": leaf("N")}),
			}),
		}),
	})
}
