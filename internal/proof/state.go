package proof

import "github.com/orizon-lang/holcore/internal/term"

// Assumptions is the multiset of undischarged hypothesis formulas tracked at
// each proof node. It's keyed by term.ID, so structurally equal formulas
// (already hash-consed) always share one slot.
type Assumptions struct {
	counts map[term.ID]int
	terms  map[term.ID]term.Term
}

func newAssumptions() Assumptions {
	return Assumptions{counts: map[term.ID]int{}, terms: map[term.ID]term.Term{}}
}

func (a Assumptions) add(t term.Term) {
	a.counts[t.ID()]++
	a.terms[t.ID()] = t
}

func (a Assumptions) contains(t term.Term) bool { return a.counts[t.ID()] > 0 }

// removeAll discharges every outstanding copy of t, per the natural
// deduction convention that a discharge rule closes off the hypothesis
// entirely along this path, not just one bookkeeping copy of it.
func (a Assumptions) removeAll(t term.Term) {
	delete(a.counts, t.ID())
	delete(a.terms, t.ID())
}

func (a Assumptions) clone() Assumptions {
	out := newAssumptions()
	for id, c := range a.counts {
		out.counts[id] = c
	}
	for id, t := range a.terms {
		out.terms[id] = t
	}
	return out
}

func unionAssumptions(a, b Assumptions) Assumptions {
	out := a.clone()
	for id, c := range b.counts {
		out.counts[id] += c
		out.terms[id] = b.terms[id]
	}
	return out
}

// Len returns the total number of outstanding hypothesis instances,
// counting duplicates.
func (a Assumptions) Len() int {
	total := 0
	for _, c := range a.counts {
		total += c
	}
	return total
}

// List returns the distinct undischarged formulas, one entry per formula
// regardless of multiplicity.
func (a Assumptions) List() []term.Term {
	out := make([]term.Term, 0, len(a.terms))
	for _, t := range a.terms {
		out = append(out, t)
	}
	return out
}

// State is the (assumptions, conclusion) pair reconstructed at a proof node.
type State struct {
	Assumptions Assumptions
	Conclusion  term.Term
}
