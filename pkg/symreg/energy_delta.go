package symreg

import "math"

// priorWeight looks up the Nopi_<op> prior weight for an ETCandidate's
// operator, returning 0 for a leaf candidate or a missing catalog entry.
func (t *Tree) priorWeight(cand ETCandidate) float64 {
	if cand.Op == "" {
		return 0
	}
	w, ok := t.PriorPar["Nopi_"+cand.Op]
	if !ok {
		return 0
	}
	return w
}

func (t *Tree) priorWeightOf(op string) float64 {
	w, ok := t.PriorPar["Nopi_"+op]
	if !ok {
		return 0
	}
	return w
}

// DeltaET computes the energy change of replacing target with cand,
// using the temporary-apply-then-undo pattern: apply the swap, run the
// full (fit-including) recomputation, capture the resulting par_values,
// then undo the swap and restore the prior bic/sse/par_values exactly.
func (t *Tree) DeltaET(target *Node, cand ETCandidate) (dE float64, newParValues map[string]float64) {
	current := currentETCandidate(target)
	dEPrior := (t.priorWeight(cand) - t.priorWeight(current)) / t.PT

	if len(t.Y) == 0 {
		return dEPrior, t.parValuesSnapshot()
	}

	bicOld := t.BIC
	parSnapshot := t.parValuesSnapshot()

	undo := t.EtReplace(target, cand)
	_, bicNew, _ := t.Recompute()
	newParValues = t.parValuesSnapshot()

	t.EtReplace(target, undo)
	t.restoreParValues(parSnapshot)
	t.BIC = bicOld

	dE = dEPrior + (bicNew-bicOld)/(2*t.BT)
	if math.IsNaN(dE) {
		dE = math.Inf(1)
	}
	return dE, newParValues
}

// DeltaLongRange computes the energy change of relabeling target from
// its current value to newValue, arity held constant.
func (t *Tree) DeltaLongRange(target *Node, newValue string) (dE float64, newParValues map[string]float64) {
	dEPrior := 0.0
	if !target.IsLeaf() {
		dEPrior = (t.priorWeightOf(newValue) - t.priorWeightOf(target.Value)) / t.PT
	}

	if len(t.Y) == 0 {
		return dEPrior, t.parValuesSnapshot()
	}

	bicOld := t.BIC
	parSnapshot := t.parValuesSnapshot()

	oldValue := t.SetNodeValue(target, newValue)
	_, bicNew, _ := t.Recompute()
	newParValues = t.parValuesSnapshot()

	t.SetNodeValue(target, oldValue)
	t.restoreParValues(parSnapshot)
	t.BIC = bicOld

	dE = dEPrior + (bicNew-bicOld)/(2*t.BT)
	if math.IsNaN(dE) {
		dE = math.Inf(1)
	}
	return dE, newParValues
}

// DeltaRoot computes the energy change of a root move: cand == nil
// proposes a prune, cand != nil proposes installing cand above the
// current root. ok is false when the move is infeasible (non-prunable
// root, or a replacement that would exceed MaxSize) — the caller must
// treat that as ΔE = +Inf and reject.
func (t *Tree) DeltaRoot(cand *RRCandidate) (dE float64, newParValues map[string]float64, ok bool) {
	if cand == nil {
		if !t.IsRootPrunable() {
			return 0, nil, false
		}
		dEPrior := -t.priorWeightOf(t.Root.Value) / t.PT

		if len(t.Y) == 0 {
			return dEPrior, t.parValuesSnapshot(), true
		}
		bicOld := t.BIC
		parSnapshot := t.parValuesSnapshot()

		undo, _ := t.PruneRoot()
		_, bicNew, _ := t.Recompute()
		newParValues = t.parValuesSnapshot()

		t.ReplaceRoot(undo)
		t.restoreParValues(parSnapshot)
		t.BIC = bicOld

		dE = dEPrior + (bicNew-bicOld)/(2*t.BT)
		if math.IsNaN(dE) {
			dE = math.Inf(1)
		}
		return dE, newParValues, true
	}

	dEPrior := t.priorWeightOf(cand.Op) / t.PT
	arity := len(cand.ExtraLeaves) + 1
	if t.Size+arity > t.MaxSize {
		return 0, nil, false
	}

	if len(t.Y) == 0 {
		return dEPrior, t.parValuesSnapshot(), true
	}
	bicOld := t.BIC
	parSnapshot := t.parValuesSnapshot()

	t.ReplaceRoot(*cand)
	_, bicNew, _ := t.Recompute()
	newParValues = t.parValuesSnapshot()

	t.PruneRoot()
	t.restoreParValues(parSnapshot)
	t.BIC = bicOld

	dE = dEPrior + (bicNew-bicOld)/(2*t.BT)
	if math.IsNaN(dE) {
		dE = math.Inf(1)
	}
	return dE, newParValues, true
}
