// Package symreg implements Bayesian symbolic regression over expression
// trees via reversible-jump Markov-chain Monte Carlo (RJ-MCMC).
//
// # Overview
//
// Given a tabular dataset of input columns X and a scalar target y, the
// package samples closed-form expressions from a posterior that trades off
// data fit (measured via the Bayesian Information Criterion) against a
// prior that penalizes operator usage. A Tree holds the current candidate
// expression; a Driver walks the chain by proposing one of three move
// types — root replacement/pruning, long-range relabeling, and elementary
// tree (ET) replacement — computing the resulting energy change, and
// accepting or rejecting via Metropolis-Hastings.
//
// # Quick start
//
//	cat := symreg.DefaultCatalog()
//	tree := symreg.NewTree(symreg.TreeConfig{
//	    Ops:        cat,
//	    Variables:  []string{"x0", "x1"},
//	    Parameters: []string{"a0", "a1"},
//	    MaxSize:    50,
//	    BT:         1, PT: 1,
//	    RNG:        rand.New(rand.NewSource(1)),
//	})
//	driver := symreg.NewDriver(tree, symreg.DriverConfig{Burnin: 2000, Thin: 10, Samples: 1000})
//	driver.Run(context.Background(), nil)
//
// # Moves
//
// Every move is computed by a temporary-apply-then-undo cycle: the move
// is applied in place, the resulting energy is measured, and the move is
// reverted before the driver decides whether to commit it for real. This
// keeps the tree, its ET index, and its operator counts byte-identical to
// their pre-proposal state whenever a proposal is rejected.
//
// # Error handling
//
// Infeasible moves (oversized trees, a non-prunable root) are reported by
// returning ok=false rather than an error; the driver treats the implied
// energy delta as +Inf and rejects. Fit and evaluation failures are not
// propagated as Go errors either — per the energy model's contract they
// collapse SSE to +Inf and the caller logs one diagnostic line through
// internal/symlog. The package makes no explicit invariant checks:
// NewNode does not compare a node's offspring count with its operator's
// arity, the ET moves do not verify that their target is elementary, and
// no function panics on such a violation.
package symreg
