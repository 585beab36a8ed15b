package symreg

import (
	"math"

	"github.com/wayneeseguin/symreg/internal/symlog"
	"github.com/wayneeseguin/symreg/pkg/symreg/fit"
)

// appearingLeaves returns the distinct leaf values currently present in
// the tree, partitioned into variables and parameters actually used —
// this drives both the fitter's parameter vector and the BIC's k count.
func (t *Tree) appearingLeaves() (variables, parameters []string) {
	isVar := make(map[string]bool, len(t.Variables))
	for _, v := range t.Variables {
		isVar[v] = true
	}
	seenVar := make(map[string]bool)
	seenPar := make(map[string]bool)
	b, ok := t.ETs[0]
	if !ok {
		return nil, nil
	}
	for _, n := range b.items {
		if isVar[n.Value] {
			if !seenVar[n.Value] {
				seenVar[n.Value] = true
				variables = append(variables, n.Value)
			}
		} else {
			if !seenPar[n.Value] {
				seenPar[n.Value] = true
				parameters = append(parameters, n.Value)
			}
		}
	}
	return variables, parameters
}

// evaluateSSE computes the sum of squared errors for the current tree
// against t.X/t.Y. If useFit is true and parameters appear in the tree,
// it invokes the injected Fitter first and updates t.ParValues with the
// fitted result; otherwise it evaluates with the current t.ParValues
// as-is ("recompute BIC without refitting", used after a move commits).
// Parameters not appearing in the tree are reset to 1.0 either way.
func (t *Tree) evaluateSSE(useFit bool) float64 {
	if len(t.Y) == 0 {
		return 0
	}

	appearVars, appearPars := t.appearingLeaves()
	appearSet := make(map[string]bool, len(appearPars))
	for _, p := range appearPars {
		appearSet[p] = true
	}
	for _, p := range t.Parameters {
		if !appearSet[p] {
			t.ParValues[p] = 1.0
		}
	}

	printed := t.Pretty()
	compiled, err := t.Eval(printed, t.Variables, t.Parameters)
	if err != nil {
		symlog.WARN("tree evaluation failed to compile: %v", err)
		return math.Inf(1)
	}

	if useFit && len(appearPars) > 0 {
		theta0 := make([]float64, len(appearPars))
		for i, p := range appearPars {
			if v, ok := t.ParValues[p]; ok {
				theta0[i] = v
			} else {
				theta0[i] = 1.0
			}
		}
		residual := t.residualFunc(compiled, appearVars, appearPars)
		theta, err := t.Fit(fit.ResidualFunc(residual), theta0, t.MaxFitIter)
		if err != nil {
			symlog.WARN("fit failed: %v", err)
			return math.Inf(1)
		}
		for i, p := range appearPars {
			t.ParValues[p] = theta[i]
		}
	}

	sse := t.sumSquaredErrors(compiled, appearVars)
	if math.IsNaN(sse) {
		symlog.WARN("evaluation produced NaN for %q", printed)
		return math.Inf(1)
	}
	return sse
}

func (t *Tree) residualFunc(compiled interface {
	Eval(map[string]float64) (float64, error)
}, variables, parameters []string) func(theta []float64) float64 {
	return func(theta []float64) float64 {
		sse := 0.0
		n := t.X.Len()
		row := make(map[string]float64, len(variables)+len(parameters))
		for i, p := range parameters {
			row[p] = theta[i]
		}
		for i := 0; i < n; i++ {
			for _, v := range variables {
				col, _ := t.X.Column(v)
				row[v] = col[i]
			}
			yhat, err := compiled.Eval(row)
			if err != nil || math.IsNaN(yhat) {
				return math.Inf(1)
			}
			d := t.Y[i] - yhat
			sse += d * d
		}
		return sse
	}
}

func (t *Tree) sumSquaredErrors(compiled interface {
	Eval(map[string]float64) (float64, error)
}, variables []string) float64 {
	n := t.X.Len()
	row := make(map[string]float64, len(variables)+len(t.Parameters))
	for p, v := range t.ParValues {
		row[p] = v
	}
	sse := 0.0
	for i := 0; i < n; i++ {
		for _, v := range variables {
			col, _ := t.X.Column(v)
			row[v] = col[i]
		}
		yhat, err := compiled.Eval(row)
		if err != nil {
			return math.Inf(1)
		}
		d := t.Y[i] - yhat
		sse += d * d
	}
	return sse
}

// computeBIC implements (k-n)*ln(n) + n*(ln(2pi)+ln(sse)+1), k = 1 +
// distinct appearing parameters, n = len(Y). Returns 0 when there is no
// data.
func (t *Tree) computeBIC(sse float64) float64 {
	n := len(t.Y)
	if n == 0 {
		return 0
	}
	_, appearPars := t.appearingLeaves()
	k := float64(1 + len(appearPars))
	nf := float64(n)
	return (k-nf)*math.Log(nf) + nf*(math.Log(2*math.Pi)+math.Log(sse)+1)
}

// priorEnergy implements Σ prior_par["Nopi_<op>"]*nops[op]/PT, treating a
// missing prior_par entry as a 0 contribution.
func (t *Tree) priorEnergy() float64 {
	e := 0.0
	for op, count := range t.NOps {
		if count == 0 {
			continue
		}
		w, ok := t.PriorPar["Nopi_"+op]
		if !ok {
			continue
		}
		e += w * float64(count) / t.PT
	}
	return e
}

// Recompute runs the full energy computation from scratch: fit (if
// parameters appear), SSE, BIC, and E. Used at construction and to
// validate incremental energy bookkeeping against a batch recomputation
// (testable property 11).
func (t *Tree) Recompute() (sse, bic, E float64) {
	sse = t.evaluateSSE(true)
	bic = t.computeBIC(sse)
	E = bic/(2*t.BT) + t.priorEnergy()
	return sse, bic, E
}

// recomputeNoFit mirrors Recompute but evaluates with the current
// par_values instead of invoking the fitter — "recompute BIC without
// refitting", used immediately after a move has already captured fitted
// par_values during its ΔE computation.
func (t *Tree) recomputeNoFit() (sse, bic, E float64) {
	sse = t.evaluateSSE(false)
	bic = t.computeBIC(sse)
	E = bic/(2*t.BT) + t.priorEnergy()
	return sse, bic, E
}

// parValuesSnapshot copies the current parameter values so a move can
// restore them exactly after a temporary apply.
func (t *Tree) parValuesSnapshot() map[string]float64 {
	snap := make(map[string]float64, len(t.ParValues))
	for k, v := range t.ParValues {
		snap[k] = v
	}
	return snap
}

func (t *Tree) restoreParValues(snap map[string]float64) {
	for k := range t.ParValues {
		delete(t.ParValues, k)
	}
	for k, v := range snap {
		t.ParValues[k] = v
	}
}
