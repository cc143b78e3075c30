package tree

import (
	"fmt"
	"strings"

	"github.com/YuminosukeSato/dtforest/core/dataset"
	"github.com/YuminosukeSato/dtforest/core/model"
)

// Node is a decision tree node. A node is a leaf iff Children is nil.
type Node struct {
	// Label is the prediction of a leaf.
	Label dataset.Value

	// Attribute is the index of the split attribute of an internal node,
	// -1 for leaves. Name is its attribute name.
	Attribute int
	Name      string

	// Children maps every value observed at this node to its subtree.
	// Values lists the same keys in first-seen order.
	Children map[dataset.Value]*Node
	Values   []dataset.Value

	Samples int
	Gain    float64
}

func newLeaf(label dataset.Value, samples int) *Node {
	return &Node{Label: label, Attribute: -1, Samples: samples}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return n.Children == nil }

// Predict walks from n to a leaf following example. A value with no child at
// a reached node yields Unknown.
func (n *Node) Predict(example dataset.Example) model.Prediction {
	cur := n
	for !cur.IsLeaf() {
		next, ok := cur.Children[example[cur.Attribute]]
		if !ok {
			return model.Unknown()
		}
		cur = next
	}
	return model.Known(cur.Label)
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (n *Node) Depth() int {
	if n.IsLeaf() {
		return 0
	}
	d := 0
	for _, c := range n.Children {
		d = max(d, c.Depth())
	}
	return d + 1
}

// NumLeaves returns the number of leaves under n, n included.
func (n *Node) NumLeaves() int {
	if n.IsLeaf() {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.NumLeaves()
	}
	return total
}

// NumNodes returns the number of nodes under n, n included.
func (n *Node) NumNodes() int {
	total := 1
	for _, c := range n.Children {
		total += c.NumNodes()
	}
	return total
}

// Equal reports whether a and b describe the same tree: leaves by label,
// internal nodes by split attribute, child key set and children.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.IsLeaf() != b.IsLeaf() {
		return false
	}
	if a.IsLeaf() {
		return a.Label == b.Label
	}
	if a.Attribute != b.Attribute || len(a.Children) != len(b.Children) {
		return false
	}
	for v, ca := range a.Children {
		cb, ok := b.Children[v]
		if !ok || !Equal(ca, cb) {
			return false
		}
	}
	return true
}

// String renders the subtree, one question or answer per line.
//
//	student?
//	  "N" -> veg?
//	    "N" -> Y
func (n *Node) String() string {
	var sb strings.Builder
	n.render(&sb, 0)
	return strings.TrimRight(sb.String(), "\n")
}

func (n *Node) render(sb *strings.Builder, indent int) {
	if n.IsLeaf() {
		sb.WriteString(n.Label.String())
		sb.WriteByte('\n')
		return
	}
	name := n.Name
	if name == "" {
		name = fmt.Sprintf("attribute[%d]", n.Attribute)
	}
	sb.WriteString(name)
	sb.WriteString("?\n")
	pad := strings.Repeat("  ", indent+1)
	for _, v := range n.Values {
		sb.WriteString(pad)
		sb.WriteString(v.GoString())
		sb.WriteString(" -> ")
		n.Children[v].render(sb, indent+1)
	}
}
