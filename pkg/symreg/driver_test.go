package symreg

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/wayneeseguin/symreg/internal/data"

	. "github.com/smartystreets/goconvey/convey"
)

func syntheticData(n int, seed int64) (data.Columns, []float64) {
	r := rand.New(rand.NewSource(seed))
	x0 := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x0[i] = r.Float64()*4 - 2
		y[i] = 2*x0[i] + 1
	}
	cols, _ := data.NewColumns(map[string][]float64{"x0": x0})
	return cols, y
}

func TestDriverInvariantsHoldAcrossSteps(t *testing.T) {
	Convey("arity, back-link, size and operator-count invariants hold after every step, accepted or rejected", t, func() {
		x, y := syntheticData(20, 7)
		tree := NewTree(TreeConfig{
			Variables:  []string{"x0"},
			Parameters: []string{"a0", "a1"},
			MaxSize:    30,
			X:          x,
			Y:          y,
			RNG:        rand.New(rand.NewSource(7)),
		})
		driver := NewDriver(tree, DriverConfig{PRR: 0.1, PLong: 0.4})

		for i := 0; i < 200; i++ {
			driver.Step()
			checkInvariants(t, tree)
		}
	})
}

func checkInvariants(t *testing.T, tree *Tree) {
	t.Helper()
	for n := range tree.Nodes {
		arity, isOp := tree.Ops[n.Value]
		if isOp {
			So(len(n.Offspring), ShouldEqual, arity)
		} else {
			So(len(n.Offspring), ShouldEqual, 0)
		}
		for _, c := range n.Offspring {
			So(c.Parent, ShouldEqual, n)
		}
	}
	So(tree.Size, ShouldEqual, len(tree.Nodes))
	So(tree.Size, ShouldBeGreaterThanOrEqualTo, 1)
	So(tree.Size, ShouldBeLessThanOrEqualTo, tree.MaxSize)

	counted := map[string]int{}
	for n := range tree.Nodes {
		if _, isOp := tree.Ops[n.Value]; isOp {
			counted[n.Value]++
		}
	}
	for op, c := range counted {
		So(tree.NOps[op], ShouldEqual, c)
	}
}

func TestRejectedProposalLeavesTreeUnchanged(t *testing.T) {
	Convey("property 6: after a rejected proposal the tree is byte-identical", t, func() {
		x, y := syntheticData(10, 3)
		tree := NewTree(TreeConfig{
			Variables:  []string{"x0"},
			Parameters: []string{"a0"},
			MaxSize:    50,
			X:          x,
			Y:          y,
			RNG:        rand.New(rand.NewSource(3)),
		})
		tree.ReplaceRoot(RRCandidate{Op: "+", ExtraLeaves: []string{"a0"}})

		before := tree.Pretty()
		beforeNOps := map[string]int{}
		for k, v := range tree.NOps {
			beforeNOps[k] = v
		}
		beforeSSE, beforeBIC, beforeE := tree.SSE, tree.BIC, tree.E

		target := tree.Root.Offspring[0]
		_, _ = tree.DeltaLongRange(target, "a0") // computing ΔE alone must not mutate anything

		So(tree.Pretty(), ShouldEqual, before)
		So(tree.NOps, ShouldResemble, beforeNOps)
		So(tree.SSE, ShouldEqual, beforeSSE)
		So(tree.BIC, ShouldEqual, beforeBIC)
		So(tree.E, ShouldEqual, beforeE)
	})
}

func TestIncrementalEnergyMatchesRecompute(t *testing.T) {
	Convey("property 11: incremental E tracks a from-scratch recompute", t, func() {
		// With no training data the energy is pure prior energy — no
		// fitter is involved, so the comparison is exact rather than
		// subject to a derivative-free optimizer's run-to-run variance.
		tree := NewTree(TreeConfig{
			Variables:  []string{"x0"},
			Parameters: []string{"a0", "a1"},
			MaxSize:    30,
			RNG:        rand.New(rand.NewSource(11)),
		})
		driver := NewDriver(tree, DriverConfig{PRR: 0.1, PLong: 0.4})

		for i := 0; i < 50; i++ {
			driver.Step()
			_, _, eBatch := tree.Recompute()
			So(math.Abs(tree.E-eBatch), ShouldBeLessThan, 1e-9)
		}
	})
}

func TestRunCompletesWithoutError(t *testing.T) {
	Convey("Run completes its burn-in and sampling loops without error", t, func() {
		x, y := syntheticData(10, 5)
		tree := NewTree(TreeConfig{
			Variables:  []string{"x0"},
			Parameters: []string{"a0"},
			MaxSize:    30,
			X:          x,
			Y:          y,
			RNG:        rand.New(rand.NewSource(5)),
		})
		driver := NewDriver(tree, DriverConfig{Burnin: 20, Thin: 5, Samples: 3})
		err := driver.Run(context.Background(), nil)
		So(err, ShouldBeNil)
	})
}
