package symreg

import (
	"context"
	"math"

	"github.com/wayneeseguin/symreg/internal/tracewriter"
)

// DriverConfig collects the channel probabilities and loop lengths for
// one MCMC run, corresponding to the Recognized Options in spec §6.
type DriverConfig struct {
	PRR, PLong   float64
	Burnin, Thin int
	Samples      int
	Trace        *tracewriter.Writer
}

// Driver walks one MCMC chain against a single Tree.
type Driver struct {
	Tree *Tree
	Cfg  DriverConfig
}

// NewDriver wires default channel probabilities (p_rr=0.05, p_long=0.5)
// when the config leaves them at zero.
func NewDriver(t *Tree, cfg DriverConfig) *Driver {
	if cfg.PRR == 0 {
		cfg.PRR = 0.05
	}
	if cfg.PLong == 0 {
		cfg.PLong = 0.5
	}
	return &Driver{Tree: t, Cfg: cfg}
}

// Step performs one MCMC step: draw the channel, compute ΔE for the
// proposed move in that channel, and accept or reject via
// Metropolis-Hastings. Returns true iff the move was accepted.
func (d *Driver) Step() bool {
	t := d.Tree
	u := randomFloat(t.RNG)

	switch {
	case u < d.Cfg.PRR:
		return d.stepRoot()
	case u < d.Cfg.PRR+d.Cfg.PLong:
		return d.stepLongRange()
	default:
		return d.stepET()
	}
}

func (d *Driver) stepRoot() bool {
	t := d.Tree
	prune := t.RNG.Intn(2) == 0

	var cand *RRCandidate
	if !prune {
		c := choiceRRCandidate(t.RNG, t.RRSpace)
		cand = &c
	}

	dE, newPar, ok := t.DeltaRoot(cand)
	if !ok {
		return false
	}

	var accept float64
	if prune {
		accept = math.Min(1, math.Exp(-dE)/float64(t.NumRR))
	} else {
		accept = math.Min(1, float64(t.NumRR)*math.Exp(-dE))
	}

	if randomFloat(t.RNG) >= accept {
		return false
	}

	if prune {
		t.PruneRoot()
	} else {
		t.ReplaceRoot(*cand)
	}
	t.restoreParValues(newPar)
	t.SSE, t.BIC, _ = t.recomputeNoFit()
	t.E += dE
	return true
}

func (d *Driver) stepLongRange() bool {
	t := d.Tree
	target := t.PickLongRangeTarget(t.RNG)
	newValue := t.PickLongRangeValue(t.RNG, target)

	dE, newPar := t.DeltaLongRange(target, newValue)
	accept := math.Min(1, math.Exp(-dE))
	if randomFloat(t.RNG) >= accept {
		return false
	}

	t.SetNodeValue(target, newValue)
	t.restoreParValues(newPar)
	t.SSE, t.BIC, _ = t.recomputeNoFit()
	t.E += dE
	return true
}

// etMoveType is one (o_i, o_f) ordered pair with o_i != o_f.
type etMoveType struct {
	oi, of int
}

func (t *Tree) moveTypes() []etMoveType {
	arities := Arities(t.Ops)
	var types []etMoveType
	for _, oi := range arities {
		for _, of := range arities {
			if oi != of {
				types = append(types, etMoveType{oi, of})
			}
		}
	}
	return types
}

// feasibleNow reports whether (oi,of) is feasible in the current tree
// state: ets[oi] non-empty and the resulting size stays within MaxSize.
func (t *Tree) feasibleNow(m etMoveType) bool {
	return t.etBucketLen(m.oi) > 0 && t.Size-m.oi+m.of <= t.MaxSize
}

// feasibleAfter reports whether move-type m' is feasible in the
// hypothetical state after applying swap (oi,of) to target (not yet
// applied), following the three-branch accounting in 4.H.
func (t *Tree) feasibleAfter(mPrime, applied etMoveType) bool {
	sizeAfter := t.Size - applied.oi + applied.of
	switch {
	case mPrime.oi != applied.oi && mPrime.oi != applied.of:
		return t.etBucketLen(mPrime.oi) > 0 && sizeAfter-mPrime.oi+mPrime.of <= t.MaxSize
	case mPrime.oi == applied.oi:
		feasible := applied.oi == 0 || t.etBucketLen(applied.oi) > 1
		return feasible && sizeAfter-mPrime.oi+mPrime.of <= t.MaxSize
	default: // mPrime.oi == applied.of
		return sizeAfter-mPrime.oi+mPrime.of <= t.MaxSize
	}
}

func (d *Driver) stepET() bool {
	t := d.Tree
	types := t.moveTypes()

	var feasible []etMoveType
	for _, m := range types {
		if t.feasibleNow(m) {
			feasible = append(feasible, m)
		}
	}
	if len(feasible) == 0 {
		return false
	}
	nIf := len(feasible)
	chosen := feasible[t.RNG.Intn(len(feasible))]

	targetBucket := t.ETs[chosen.oi]
	target := targetBucket.sample(t.RNG)
	cand := choiceETCandidate(t.RNG, t.ETSpace[chosen.of])

	nFi := 0
	for _, m := range types {
		if t.feasibleAfter(m, chosen) {
			nFi++
		}
	}
	if nFi == 0 {
		return false
	}

	omegaI := float64(t.etBucketLen(chosen.oi))
	omegaF := float64(t.etBucketLen(chosen.of) + 1)
	if chosen.of == 0 {
		omegaF -= float64(chosen.oi)
	}
	if chosen.oi == 0 && target.Parent != nil && t.etBucketFor(chosen.of).contains(target.Parent) {
		omegaF--
	}

	sI := float64(len(t.ETSpace[chosen.oi]))
	sF := float64(len(t.ETSpace[chosen.of]))

	qIf := 1 / float64(nIf)
	qFi := 1 / float64(nFi)

	dE, newPar := t.DeltaET(target, cand)
	accept := math.Min(1, (qFi*omegaI*sF*math.Exp(-dE))/(qIf*omegaF*sI))

	if randomFloat(t.RNG) >= accept {
		return false
	}

	t.EtReplace(target, cand)
	t.restoreParValues(newPar)
	t.SSE, t.BIC, _ = t.recomputeNoFit()
	t.E += dE
	return true
}

// Run performs Cfg.Burnin steps without emission, then Cfg.Samples
// blocks of Cfg.Thin steps each, writing one trace record per block. If
// onTick is non-nil it is called with ("burnin"|"sampling", fraction)
// roughly 50 times per phase, for progress-bar rendering.
func (d *Driver) Run(ctx context.Context, onTick func(phase string, frac float64)) error {
	tick := func(phase string, i, n int) {
		if onTick == nil || n == 0 {
			return
		}
		step := n / 50
		if step == 0 || i%step == 0 {
			onTick(phase, float64(i)/float64(n))
		}
	}

	for i := 0; i < d.Cfg.Burnin; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.Step()
		tick("burnin", i, d.Cfg.Burnin)
	}

	for s := 0; s < d.Cfg.Samples; s++ {
		for i := 0; i < d.Cfg.Thin; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			d.Step()
		}
		tick("sampling", s, d.Cfg.Samples)

		if d.Cfg.Trace != nil {
			t := d.Tree
			_, _, eRecompute := t.recomputeNoFit()
			rec := tracewriter.Record{
				Sample:     s,
				BIC:        t.BIC,
				E:          t.E,
				ERecompute: eRecompute,
				Printed:    t.Pretty(),
				ParValues:  t.parValuesSnapshot(),
			}
			if err := d.Cfg.Trace.WriteTrace(rec); err != nil {
				return err
			}
			if err := d.Cfg.Trace.WriteProgress(s, t.E, t.BIC); err != nil {
				return err
			}
		}
	}
	return nil
}

// TracePredict implements the BT-inflation predictive-sampling variant
// from the original source: before each block, BT is inflated to a huge
// value and thin/4 steps run (decoupling BIC from selection so the prior
// dominates and the chain can escape local minima), then BT is restored
// to 1 and a normal thin-step block runs; afterward the current tree is
// passed to evalRow. Returns one evalRow result per sample.
func (d *Driver) TracePredict(ctx context.Context, evalRow func(t *Tree) (float64, error)) ([]float64, error) {
	t := d.Tree
	originalBT := t.BT
	preds := make([]float64, 0, d.Cfg.Samples)

	for i := 0; i < d.Cfg.Burnin; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d.Step()
	}

	for s := 0; s < d.Cfg.Samples; s++ {
		t.BT = 1e100
		for i := 0; i < d.Cfg.Thin/4; i++ {
			d.Step()
		}
		t.BT = 1
		for i := 0; i < d.Cfg.Thin; i++ {
			d.Step()
		}
		v, err := evalRow(t)
		if err != nil {
			return nil, err
		}
		preds = append(preds, v)
	}

	t.BT = originalBT
	return preds, nil
}
