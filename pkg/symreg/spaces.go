package symreg

// ETCandidate is one entry of et_space[o]: for o==0 it is a bare leaf
// symbol (Op is empty, Leaves has the one leaf name in Leaves[0]); for
// o>0 it names an operator of arity o plus its o leaf choices.
type ETCandidate struct {
	Op     string
	Leaves []string
}

// RRCandidate is one entry of rr_space: an operator to install above the
// current root, plus the k-1 extra leaves that fill its remaining
// offspring slots (empty for arity-1 operators).
type RRCandidate struct {
	Op          string
	ExtraLeaves []string
}

// cartesianProduct enumerates every k-tuple of leaves, with repetition,
// in deterministic odometer order: the last position advances fastest.
// This mirrors itertools.product's iteration order, which the original
// source relies on for a stable et_space enumeration.
func cartesianProduct(leaves []string, k int) [][]string {
	if k == 0 {
		return [][]string{{}}
	}
	n := len(leaves)
	total := 1
	for i := 0; i < k; i++ {
		total *= n
	}
	out := make([][]string, 0, total)
	idx := make([]int, k)
	for {
		tuple := make([]string, k)
		for i, j := range idx {
			tuple[i] = leaves[j]
		}
		out = append(out, tuple)

		pos := k - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < n {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}
	return out
}

// buildETSpace builds et_space[0] (one entry per leaf symbol) and, for
// every operator of arity k>=1, one entry per k-tuple of leaf choices
// drawn from et_space[0], per component D.
func buildETSpace(ops map[string]int, leaves []string) map[int][]ETCandidate {
	space := make(map[int][]ETCandidate)

	leafCandidates := make([]ETCandidate, len(leaves))
	for i, l := range leaves {
		leafCandidates[i] = ETCandidate{Leaves: []string{l}}
	}
	space[0] = leafCandidates

	for _, k := range Arities(ops) {
		if k == 0 {
			continue
		}
		var bucket []ETCandidate
		for _, op := range OperatorsOfArity(ops, k) {
			for _, tuple := range cartesianProduct(leaves, k) {
				bucket = append(bucket, ETCandidate{Op: op, Leaves: tuple})
			}
		}
		space[k] = bucket
	}
	return space
}

// buildRRSpace enumerates every possible root-replacement: one entry per
// arity-1 operator (no extra leaves needed), and for each operator of
// arity k>1, one entry per (k-1)-tuple of leaf choices (the first
// offspring slot is always filled by the current root).
func buildRRSpace(ops map[string]int, leaves []string) []RRCandidate {
	var space []RRCandidate
	for _, k := range Arities(ops) {
		if k == 0 {
			continue
		}
		for _, op := range OperatorsOfArity(ops, k) {
			if k == 1 {
				space = append(space, RRCandidate{Op: op})
				continue
			}
			for _, tuple := range cartesianProduct(leaves, k-1) {
				space = append(space, RRCandidate{Op: op, ExtraLeaves: tuple})
			}
		}
	}
	return space
}
