package symreg

// currentETCandidate captures target's current value/offspring as an
// ETCandidate, so it can be handed back to EtReplace to undo a swap.
func currentETCandidate(n *Node) ETCandidate {
	if n.IsLeaf() {
		return ETCandidate{Leaves: []string{n.Value}}
	}
	return ETCandidate{Op: n.Value, Leaves: n.leafValues()}
}

// candidateArity returns the arity implied by an ETCandidate: 0 for a
// bare leaf candidate (Op == ""), else the operator's arity.
func (t *Tree) candidateArity(cand ETCandidate) int {
	if cand.Op == "" {
		return 0
	}
	return t.Ops[cand.Op]
}

// EtReplace swaps target's value/offspring for cand in place: if target
// is currently a leaf and cand is an operator this is the _add_et case,
// if target is currently an operator and cand is a leaf this is the
// _del_et case, and otherwise it is a direct operator-for-operator
// swap. Returns an ETCandidate that undoes the swap (pass it straight
// back to EtReplace to restore the prior state).
func (t *Tree) EtReplace(target *Node, cand ETCandidate) ETCandidate {
	undo := currentETCandidate(target)
	oldArity := target.Arity(t.Ops)
	newArity := t.candidateArity(cand)
	parent := target.Parent

	if oldArity > 0 {
		for _, c := range target.Offspring {
			t.removeNode(c)
		}
		t.NOps[target.Value]--
	}
	t.etBucketFor(oldArity).remove(target)

	if newArity == 0 {
		target.Value = cand.Leaves[0]
		target.Offspring = nil
	} else {
		target.Value = cand.Op
		newLeaves := make([]*Node, newArity)
		for i, v := range cand.Leaves {
			newLeaves[i] = NewNode(v, target, nil)
		}
		target.Offspring = newLeaves
		for _, l := range newLeaves {
			t.addNode(l)
			t.etBucketFor(0).add(l)
		}
		t.NOps[target.Value]++
	}
	t.etBucketFor(newArity).add(target)

	if parent != nil {
		t.refreshETMembership(parent)
	}
	return undo
}

// AddET is the o_i==0 special case of EtReplace: target is currently a
// leaf, cand installs an operator above it.
func (t *Tree) AddET(target *Node, cand ETCandidate) ETCandidate {
	return t.EtReplace(target, cand)
}

// DelET is the o_f==0 special case of EtReplace: target is currently an
// elementary operator node, it is collapsed to a single leaf.
func (t *Tree) DelET(target *Node, leaf string) ETCandidate {
	return t.EtReplace(target, ETCandidate{Leaves: []string{leaf}})
}
