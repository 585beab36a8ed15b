package symreg

// IsRootPrunable reports whether the root can be pruned: the tree must
// have at least 2 nodes, and every offspring after the first must be a
// leaf (so pruning can discard them without orphaning a subtree).
func (t *Tree) IsRootPrunable() bool {
	if t.Size < 2 {
		return false
	}
	for _, c := range t.Root.Offspring[1:] {
		if !c.IsLeaf() {
			return false
		}
	}
	return true
}

// ReplaceRoot installs a new root above the current one: value=cand.Op,
// offspring = [old root] + fresh leaves for cand.ExtraLeaves. Returns
// false without mutating state if the result would exceed MaxSize.
func (t *Tree) ReplaceRoot(cand RRCandidate) bool {
	arity := len(cand.ExtraLeaves) + 1
	if t.Size+arity > t.MaxSize {
		return false
	}

	oldRoot := t.Root
	wasLeaf := oldRoot.IsLeaf()

	extraLeaves := make([]*Node, len(cand.ExtraLeaves))
	for i, v := range cand.ExtraLeaves {
		extraLeaves[i] = NewNode(v, nil, nil)
	}
	offspring := append([]*Node{oldRoot}, extraLeaves...)
	newRoot := NewNode(cand.Op, nil, offspring)

	t.addNode(newRoot)
	for _, l := range extraLeaves {
		t.addNode(l)
		t.etBucketFor(0).add(l)
	}

	if wasLeaf {
		t.etBucketFor(0).remove(oldRoot)
	}
	t.refreshETMembership(oldRoot)
	if wasLeaf {
		t.etBucketFor(arity).add(newRoot)
	}

	t.Root = newRoot
	return true
}

// PruneRoot removes the root (requires IsRootPrunable) and promotes its
// first offspring to root. Returns the RRCandidate that would undo this
// (for use as the inverse proposal in dE_rr) and true on success.
func (t *Tree) PruneRoot() (RRCandidate, bool) {
	if !t.IsRootPrunable() {
		return RRCandidate{}, false
	}

	root := t.Root
	extraLeaves := root.Offspring[1:]
	cand := RRCandidate{Op: root.Value, ExtraLeaves: make([]string, len(extraLeaves))}
	for i, l := range extraLeaves {
		cand.ExtraLeaves[i] = l.Value
	}

	newRoot := root.Offspring[0]
	for _, l := range extraLeaves {
		t.removeNode(l)
	}
	t.removeNode(root)

	newRoot.Parent = nil
	t.Root = newRoot
	t.refreshETMembership(newRoot)

	return cand, true
}
