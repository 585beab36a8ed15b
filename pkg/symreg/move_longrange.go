package symreg

import "math/rand"

// allNodes returns every live node in the tree, for uniform node
// selection. The long-range move is the only one that needs to pick
// from the full node set rather than an ET bucket.
func (t *Tree) allNodes() []*Node {
	out := make([]*Node, 0, len(t.Nodes))
	for n := range t.Nodes {
		out = append(out, n)
	}
	return out
}

// PickLongRangeTarget selects a node uniformly at random from the whole
// tree.
func (t *Tree) PickLongRangeTarget(r *rand.Rand) *Node {
	return choiceNode(r, t.allNodes())
}

// PickLongRangeValue chooses a replacement value for target: a leaf
// picks uniformly from variables∪parameters, an operator picks
// uniformly among operators sharing its current arity (the catalog is
// filtered by arity first, so a single draw suffices).
func (t *Tree) PickLongRangeValue(r *rand.Rand, target *Node) string {
	if target.IsLeaf() {
		leaves := make([]string, 0, len(t.Variables)+len(t.Parameters))
		leaves = append(leaves, t.Variables...)
		leaves = append(leaves, t.Parameters...)
		return choiceString(r, leaves)
	}
	arity := target.Arity(t.Ops)
	sameArity := OperatorsOfArity(t.Ops, arity)
	return choiceString(r, sameArity)
}

// SetNodeValue mutates target.Value to newValue, updating NOps if
// target is an operator (leaves are never relabeled across the
// variable/parameter boundary in a way that changes NOps). Returns the
// old value so the caller can revert.
func (t *Tree) SetNodeValue(target *Node, newValue string) (oldValue string) {
	oldValue = target.Value
	if !target.IsLeaf() {
		t.NOps[oldValue]--
		t.NOps[newValue]++
	}
	target.Value = newValue
	return oldValue
}
