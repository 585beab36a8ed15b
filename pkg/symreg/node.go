package symreg

import "strings"

// Node is one vertex of an expression tree: either an operator (with
// Offspring of length arity(Value)) or a leaf (a variable or parameter
// name, with no offspring). Parent is nil only at the tree's root.
type Node struct {
	Value     string
	Offspring []*Node
	Parent    *Node
}

// NewNode constructs a node and wires the back-references of its
// offspring to point at it.
func NewNode(value string, parent *Node, offspring []*Node) *Node {
	n := &Node{Value: value, Parent: parent, Offspring: offspring}
	for _, c := range offspring {
		c.Parent = n
	}
	return n
}

// IsLeaf reports whether n has no offspring.
func (n *Node) IsLeaf() bool {
	return len(n.Offspring) == 0
}

// IsElementary reports whether every offspring of n is itself a leaf
// (arity 0 counts n as elementary iff n is a leaf).
func (n *Node) IsElementary() bool {
	if n.IsLeaf() {
		return true
	}
	for _, c := range n.Offspring {
		if !c.IsLeaf() {
			return false
		}
	}
	return true
}

// Arity looks up n's operator arity in ops, returning 0 for leaves (which
// are not present in ops).
func (n *Node) Arity(ops map[string]int) int {
	if a, ok := ops[n.Value]; ok {
		return a
	}
	return 0
}

// Pretty renders the subtree rooted at n following the printed-tree
// format: binary operators as "(L op R)", pow2/pow3 as "(L**2)"/"(L**3)",
// and other unary operators as "op(L)".
//
// The printer intentionally checks for a "fact" operator name that never
// occurs in the catalog (which spells factorial "fac"); a fac node falls
// through to the generic unary form and prints as "fac(child)" rather
// than "((child)!)". This mismatch is preserved rather than harmonized —
// see DESIGN.md's Open Question decisions.
func (n *Node) Pretty(ops map[string]int) string {
	if n.IsLeaf() {
		return n.Value
	}
	switch len(n.Offspring) {
	case 1:
		switch n.Value {
		case "pow2":
			return "(" + n.Offspring[0].Pretty(ops) + "**2)"
		case "pow3":
			return "(" + n.Offspring[0].Pretty(ops) + "**3)"
		case "fact":
			return "((" + n.Offspring[0].Pretty(ops) + ")!)"
		default:
			return n.Value + "(" + n.Offspring[0].Pretty(ops) + ")"
		}
	case 2:
		return "(" + n.Offspring[0].Pretty(ops) + " " + n.Value + " " + n.Offspring[1].Pretty(ops) + ")"
	default:
		parts := make([]string, len(n.Offspring))
		for i, c := range n.Offspring {
			parts[i] = c.Pretty(ops)
		}
		return n.Value + "(" + strings.Join(parts, ", ") + ")"
	}
}

// leafValues returns the Value of every offspring of n, in order. Used
// by moves that need to reconstruct an ET candidate from a live node.
func (n *Node) leafValues() []string {
	out := make([]string, len(n.Offspring))
	for i, c := range n.Offspring {
		out[i] = c.Value
	}
	return out
}
