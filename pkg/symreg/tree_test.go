package symreg

import (
	"math/rand"
	"testing"

	"github.com/wayneeseguin/symreg/internal/data"

	. "github.com/smartystreets/goconvey/convey"
)

func newTestTree(seed int64) *Tree {
	return NewTree(TreeConfig{
		Variables:  []string{"x"},
		Parameters: []string{"a"},
		MaxSize:    50,
		RNG:        rand.New(rand.NewSource(seed)),
	})
}

func TestConstruction(t *testing.T) {
	Convey("A freshly constructed tree", t, func() {
		tree := newTestTree(1)

		Convey("has a single leaf root drawn from variables∪parameters", func() {
			So(tree.Size, ShouldEqual, 1)
			So(tree.Root.IsLeaf(), ShouldBeTrue)
			leaf := tree.Root.Value
			So(leaf == "x" || leaf == "a", ShouldBeTrue)
			So(tree.Pretty(), ShouldEqual, leaf)
		})

		Convey("seeds ets[0] with exactly the root", func() {
			So(tree.etBucketLen(0), ShouldEqual, 1)
			So(tree.ETs[0].contains(tree.Root), ShouldBeTrue)
		})

		Convey("starts every operator count at zero", func() {
			for _, count := range tree.NOps {
				So(count, ShouldEqual, 0)
			}
		})
	})
}

func TestRootReplaceAndPrune(t *testing.T) {
	Convey("S2: root replace then prune round-trips", t, func() {
		tree := newTestTree(1)
		tree.Root.Value = "x" // pin the leaf for a deterministic assertion
		cand := RRCandidate{Op: "*", ExtraLeaves: []string{"a"}}

		ok := tree.ReplaceRoot(cand)
		So(ok, ShouldBeTrue)
		So(tree.Pretty(), ShouldEqual, "(x * a)")
		So(tree.Size, ShouldEqual, 3)
		So(tree.NOps["*"], ShouldEqual, 1)
		So(tree.etBucketLen(0), ShouldEqual, 2)
		So(tree.etBucketLen(2), ShouldEqual, 1)

		undo, ok := tree.PruneRoot()
		So(ok, ShouldBeTrue)
		So(undo.Op, ShouldEqual, "*")
		So(undo.ExtraLeaves, ShouldResemble, []string{"a"})
		So(tree.Pretty(), ShouldEqual, "x")
		So(tree.Size, ShouldEqual, 1)
		So(tree.NOps["*"], ShouldEqual, 0)
	})
}

func TestSizeCap(t *testing.T) {
	Convey("S3: a replacement that would exceed max_size is rejected", t, func() {
		tree := NewTree(TreeConfig{
			Variables:  []string{"x"},
			Parameters: []string{"a"},
			MaxSize:    2,
			RNG:        rand.New(rand.NewSource(1)),
		})
		before := tree.Pretty()
		ok := tree.ReplaceRoot(RRCandidate{Op: "+", ExtraLeaves: []string{"a"}})
		So(ok, ShouldBeFalse)
		So(tree.Pretty(), ShouldEqual, before)
		So(tree.Size, ShouldEqual, 1)
	})
}

func TestEmptyDataEnergy(t *testing.T) {
	Convey("property 10: a tree with no data has sse=0, bic=0, E=prior energy", t, func() {
		tree := newTestTree(1)
		So(tree.SSE, ShouldEqual, 0)
		So(tree.BIC, ShouldEqual, 0)
		So(tree.E, ShouldAlmostEqual, tree.priorEnergy(), 1e-12)
	})
}

func TestPrettyPrintMismatch(t *testing.T) {
	Convey("the fac/fact print mismatch is preserved", t, func() {
		leaf := NewNode("x", nil, nil)
		node := NewNode("fac", nil, []*Node{leaf})
		So(node.Pretty(DefaultCatalog()), ShouldEqual, "fac(x)")
	})

	Convey("pow2 and pow3 still render their special forms", t, func() {
		leaf := NewNode("x", nil, nil)
		So(NewNode("pow2", nil, []*Node{leaf}).Pretty(DefaultCatalog()), ShouldEqual, "(x**2)")

		leaf2 := NewNode("x", nil, nil)
		So(NewNode("pow3", nil, []*Node{leaf2}).Pretty(DefaultCatalog()), ShouldEqual, "(x**3)")
	})
}

func TestFitConvergesOnLinearData(t *testing.T) {
	Convey("S4: fitting a0+a1*x0 against y=2x+1 drives sse to ~0", t, func() {
		tree := NewTree(TreeConfig{
			Variables:  []string{"x0"},
			Parameters: []string{"a0", "a1"},
			MaxSize:    50,
			RNG:        rand.New(rand.NewSource(4)),
		})

		// Rebuild the root as the fixed a0+a1*x0 structure named by the
		// scenario, then re-seed the tree's bookkeeping around it.
		x0 := NewNode("x0", nil, nil)
		a1 := NewNode("a1", nil, nil)
		mul := NewNode("*", nil, []*Node{a1, x0})
		a0 := NewNode("a0", nil, nil)
		root := NewNode("+", nil, []*Node{a0, mul})

		tree.Nodes = make(map[*Node]struct{})
		tree.ETs = make(map[int]*etBucket)
		tree.NOps = make(map[string]int)
		tree.Size = 0
		for _, n := range []*Node{x0, a1, mul, a0, root} {
			tree.addNode(n)
		}
		for _, n := range []*Node{x0, a1, mul, a0, root} {
			tree.refreshETMembership(n)
		}
		tree.Root = root

		cols, err := data.NewColumns(map[string][]float64{"x0": {1, 2, 3, 4}})
		So(err, ShouldBeNil)
		tree.X = cols
		tree.Y = []float64{3, 5, 7, 9} // y = 2*x0 + 1

		sse, bic, e := tree.Recompute()
		tree.SSE, tree.BIC, tree.E = sse, bic, e

		So(tree.SSE, ShouldBeLessThan, 1e-9)
		So(tree.ParValues["a0"], ShouldAlmostEqual, 1.0, 1e-4)
		So(tree.ParValues["a1"], ShouldAlmostEqual, 2.0, 1e-4)
		So(tree.BIC, ShouldAlmostEqual, tree.computeBIC(tree.SSE), 1e-9)
	})
}

func TestETSpaceCardinality(t *testing.T) {
	Convey("et_space[0] preserves duplicate-cardinality leaf choices", t, func() {
		tree := NewTree(TreeConfig{
			Variables:  []string{"x0", "x1"},
			Parameters: []string{"a0"},
			RNG:        rand.New(rand.NewSource(1)),
		})
		So(len(tree.ETSpace[0]), ShouldEqual, 3)
		for arity, bucket := range tree.ETSpace {
			if arity == 2 {
				So(len(bucket), ShouldEqual, len(OperatorsOfArity(tree.Ops, 2))*3*3)
			}
		}
	})
}

func TestLongRangeMoveKeepsArity(t *testing.T) {
	Convey("a long-range relabel on an operator node preserves arity", t, func() {
		tree := newTestTree(1)
		tree.ReplaceRoot(RRCandidate{Op: "+", ExtraLeaves: []string{"a"}})

		target := tree.Root
		oldArity := target.Arity(tree.Ops)
		newVal := tree.PickLongRangeValue(tree.RNG, target)
		So(tree.Ops[newVal], ShouldEqual, oldArity)
	})
}

func TestAddDelETRoundTrip(t *testing.T) {
	Convey("property 8: _add_et then _del_et restores the original structure", t, func() {
		tree := newTestTree(1)
		tree.Root.Value = "x"
		leafValue := tree.Root.Value

		undo := tree.AddET(tree.Root, ETCandidate{Op: "sin", Leaves: []string{"a"}})
		So(tree.Pretty(), ShouldEqual, "sin(a)")

		tree.DelET(tree.Root, undo.Leaves[0])
		So(tree.Pretty(), ShouldEqual, leafValue)
		So(tree.Size, ShouldEqual, 1)
	})
}
