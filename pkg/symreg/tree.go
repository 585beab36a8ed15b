package symreg

import (
	"math/rand"

	"github.com/wayneeseguin/symreg/internal/data"
	"github.com/wayneeseguin/symreg/pkg/symreg/eval"
	"github.com/wayneeseguin/symreg/pkg/symreg/fit"
)

// Evaluator compiles a printed tree into a numeric function; the default
// is eval.Compile, injectable so tests can substitute a stub.
type Evaluator func(printed string, variables, parameters []string) (eval.Compiled, error)

// Fitter runs nonlinear least squares against a residual function; the
// default is fit.Fit, injectable for the same reason.
type Fitter func(f fit.ResidualFunc, theta0 []float64, maxIter int) ([]float64, error)

// Tree is a mutable expression tree together with everything the MCMC
// engine needs to propose and score moves against it: the operator
// catalog, the ET index, the pre-enumerated move spaces, and the current
// goodness-of-fit state.
type Tree struct {
	Root *Node

	Ops        map[string]int
	Variables  []string
	Parameters []string
	ParValues  map[string]float64

	ETs   map[int]*etBucket
	Nodes map[*Node]struct{}

	Size    int
	MaxSize int
	NOps    map[string]int

	ETSpace map[int][]ETCandidate
	RRSpace []RRCandidate
	NumRR   int

	PriorPar map[string]float64
	BT, PT   float64

	SSE, BIC, E float64

	X data.Columns
	Y []float64

	RNG *rand.Rand

	Eval Evaluator
	Fit  Fitter

	MaxFitIter int
}

// TreeConfig collects NewTree's inputs. Zero-valued PriorPar, BT, PT,
// MaxSize, MaxFitIter fall back to the Recognized Options defaults.
type TreeConfig struct {
	Ops        map[string]int
	Variables  []string
	Parameters []string
	PriorPar   map[string]float64
	BT, PT     float64
	MaxSize    int
	MaxFitIter int
	X          data.Columns
	Y          []float64
	RNG        *rand.Rand
}

// NewTree constructs a tree with an initial single-leaf root drawn
// uniformly from variables∪parameters, builds the ET/RR spaces once
// (immutable thereafter), and seeds the ET index with that one leaf.
func NewTree(cfg TreeConfig) *Tree {
	if cfg.Ops == nil {
		cfg.Ops = DefaultCatalog()
	}
	if cfg.PriorPar == nil {
		cfg.PriorPar = DefaultPriorPar(cfg.Ops)
	}
	if cfg.BT == 0 {
		cfg.BT = 1
	}
	if cfg.PT == 0 {
		cfg.PT = 1
	}
	if cfg.MaxSize == 0 {
		cfg.MaxSize = 50
	}
	if cfg.MaxFitIter == 0 {
		cfg.MaxFitIter = 10000
	}
	if cfg.RNG == nil {
		cfg.RNG = rand.New(rand.NewSource(1))
	}

	leaves := make([]string, 0, len(cfg.Variables)+len(cfg.Parameters))
	leaves = append(leaves, cfg.Variables...)
	leaves = append(leaves, cfg.Parameters...)

	parValues := make(map[string]float64, len(cfg.Parameters))
	for _, p := range cfg.Parameters {
		parValues[p] = 1.0
	}

	t := &Tree{
		Ops:        cfg.Ops,
		Variables:  cfg.Variables,
		Parameters: cfg.Parameters,
		ParValues:  parValues,
		ETs:        make(map[int]*etBucket),
		Nodes:      make(map[*Node]struct{}),
		MaxSize:    cfg.MaxSize,
		NOps:       make(map[string]int),
		ETSpace:    buildETSpace(cfg.Ops, leaves),
		PriorPar:   cfg.PriorPar,
		BT:         cfg.BT,
		PT:         cfg.PT,
		X:          cfg.X,
		Y:          cfg.Y,
		RNG:        cfg.RNG,
		Eval:       eval.Compile,
		Fit:        fit.Fit,
		MaxFitIter: cfg.MaxFitIter,
	}
	t.RRSpace = buildRRSpace(cfg.Ops, leaves)
	t.NumRR = len(t.RRSpace)

	root := NewNode(choiceString(t.RNG, leaves), nil, nil)
	t.Root = root
	t.addNode(root)
	t.refreshETMembership(root)

	t.SSE, t.BIC, t.E = t.Recompute()
	return t
}

// addNode registers n in Nodes and bumps Size and, if n is an operator,
// NOps.
func (t *Tree) addNode(n *Node) {
	t.Nodes[n] = struct{}{}
	t.Size++
	if !n.IsLeaf() {
		t.NOps[n.Value]++
	}
}

// removeNode unregisters n from Nodes, its ET bucket, and decrements
// Size and, if n is an operator, NOps.
func (t *Tree) removeNode(n *Node) {
	delete(t.Nodes, n)
	t.Size--
	if !n.IsLeaf() {
		t.NOps[n.Value]--
	}
	o := n.Arity(t.Ops)
	if b, ok := t.ETs[o]; ok {
		b.remove(n)
	}
}

// Pretty renders the current tree using the printed-tree format.
func (t *Tree) Pretty() string {
	return t.Root.Pretty(t.Ops)
}
