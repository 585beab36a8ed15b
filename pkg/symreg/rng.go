package symreg

import "math/rand"

// Every random choice the package makes — uniform floats and uniform
// picks from a slice — reads from a single injected *rand.Rand so tests
// can pin a seed and reproduce a run exactly. No function in this
// package calls the global math/rand functions directly.

func randomFloat(r *rand.Rand) float64 {
	return r.Float64()
}

func choiceString(r *rand.Rand, items []string) string {
	return items[r.Intn(len(items))]
}

func choiceNode(r *rand.Rand, items []*Node) *Node {
	return items[r.Intn(len(items))]
}

func choiceInt(r *rand.Rand, items []int) int {
	return items[r.Intn(len(items))]
}

func choiceETCandidate(r *rand.Rand, items []ETCandidate) ETCandidate {
	return items[r.Intn(len(items))]
}

func choiceRRCandidate(r *rand.Rand, items []RRCandidate) RRCandidate {
	return items[r.Intn(len(items))]
}
