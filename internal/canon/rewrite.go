package canon

import (
	"sort"

	"github.com/orizon-lang/holcore/internal/term"
)

// mkAnd builds the canonical conjunction of elems: nested And is flattened,
// ⊤ operands are dropped (the And identity), a ⊥ operand or a complementary
// pair (A and ¬A) collapses the whole thing to ⊥, duplicates are removed,
// and the survivors are sorted under term.Compare.
func (c *canonicalizer) mkAnd(elems []term.Term) term.Term {
	return c.mkCommutative(elems, term.KindAnd, c.store.True(), c.store.False())
}

// mkOr is mkAnd's dual: ⊥ is the identity, ⊤ (or a complementary pair) is
// absorbing.
func (c *canonicalizer) mkOr(elems []term.Term) term.Term {
	return c.mkCommutative(elems, term.KindOr, c.store.False(), c.store.True())
}

func (c *canonicalizer) mkCommutative(elems []term.Term, kind term.Kind, identity, absorbing term.Term) term.Term {
	flat := flattenList(elems, kind)

	seen := make(map[term.ID]bool, len(flat))
	out := make([]term.Term, 0, len(flat))
	for _, e := range flat {
		if e.ID() == absorbing.ID() {
			return absorbing
		}
		if e.ID() == identity.ID() {
			continue
		}
		if seen[e.ID()] {
			continue
		}
		seen[e.ID()] = true
		out = append(out, e)
	}

	positive := make(map[term.ID]bool, len(out))
	for _, e := range out {
		if e.Kind() != term.KindNot {
			positive[e.ID()] = true
		}
	}
	for _, e := range out {
		if e.Kind() == term.KindNot && positive[e.Not().ID()] {
			return absorbing
		}
	}

	switch len(out) {
	case 0:
		return identity
	case 1:
		return out[0]
	}

	sort.Slice(out, func(i, j int) bool { return term.Less(out[i], out[j]) })

	if kind == term.KindAnd {
		return c.store.NewAnd(out...)
	}
	return c.store.NewOr(out...)
}

func flattenList(elems []term.Term, kind term.Kind) []term.Term {
	out := make([]term.Term, 0, len(elems))
	for _, e := range elems {
		if e.Kind() == kind {
			out = append(out, flattenList(e.Args(), kind)...)
		} else {
			out = append(out, e)
		}
	}
	return out
}

// mkIff builds the canonical n-ary biconditional of elems: nested Iff
// flattens, ⊤ operands are dropped (they never affect the parity of how
// many operands are false), ⊥ operands are counted and removed, and any
// operand occurring an even number of times cancels out entirely (Iff is its
// own inverse). An odd count of removed ⊥ operands negates the remaining
// biconditional.
func (c *canonicalizer) mkIff(elems []term.Term) term.Term {
	flat := flattenList(elems, term.KindIff)

	falseCount := 0
	remaining := make([]term.Term, 0, len(flat))
	for _, e := range flat {
		switch e.ID() {
		case c.store.True().ID():
			continue
		case c.store.False().ID():
			falseCount++
		default:
			remaining = append(remaining, e)
		}
	}

	order := make([]term.ID, 0, len(remaining))
	counts := make(map[term.ID]int, len(remaining))
	byID := make(map[term.ID]term.Term, len(remaining))
	for _, e := range remaining {
		if counts[e.ID()] == 0 {
			order = append(order, e.ID())
			byID[e.ID()] = e
		}
		counts[e.ID()]++
	}

	deduped := make([]term.Term, 0, len(order))
	for _, id := range order {
		if counts[id]%2 == 1 {
			deduped = append(deduped, byID[id])
		}
	}

	sort.Slice(deduped, func(i, j int) bool { return term.Less(deduped[i], deduped[j]) })

	var body term.Term
	switch len(deduped) {
	case 0:
		body = c.store.True()
	case 1:
		body = deduped[0]
	default:
		body = c.store.NewIff(deduped...)
	}

	if falseCount%2 == 1 {
		return c.negate(body)
	}
	return body
}

// negate pushes negation through And/Or one level (De Morgan) and cancels
// double negation; every other connective (Iff, IfThen, quantifiers, atoms)
// is simply wrapped in Not, which is kept unary.
func (c *canonicalizer) negate(t term.Term) term.Term {
	switch t.Kind() {
	case term.KindNot:
		return t.Not()
	case term.KindTrue:
		return c.store.False()
	case term.KindFalse:
		return c.store.True()
	case term.KindAnd:
		return c.mkOr(negateEach(c, t.Args()))
	case term.KindOr:
		return c.mkAnd(negateEach(c, t.Args()))
	default:
		return c.store.NewNot(t)
	}
}

func negateEach(c *canonicalizer, ts []term.Term) []term.Term {
	out := make([]term.Term, len(ts))
	for i, t := range ts {
		out[i] = c.negate(t)
	}
	return out
}

// cond builds the canonical IfThen(a, b), where a and b are already
// canonical. It applies the constant shortcuts (⊥⇒X = ⊤, ⊤⇒X = X, X⇒⊥ = ¬X,
// X⇒⊤ = ⊤) and then a tautology check: if a literal required by the
// (conjunctive) antecedent also appears as a literal offered by the
// (disjunctive) consequent, the implication holds unconditionally.
func (c *canonicalizer) cond(a, b term.Term) term.Term {
	switch {
	case a.ID() == c.store.False().ID():
		return c.store.True()
	case a.ID() == c.store.True().ID():
		return b
	case b.ID() == c.store.False().ID():
		return c.negate(a)
	case b.ID() == c.store.True().ID():
		return c.store.True()
	}

	leftPos, leftNeg := decompose(a, term.KindAnd)
	rightPos, rightNeg := decompose(b, term.KindOr)

	if overlaps(leftPos, rightPos) || overlaps(leftNeg, rightNeg) {
		return c.store.True()
	}

	return c.store.NewIfThen(a, b)
}

// decompose splits t's top-level list (if t.Kind() == listKind) into the ids
// of its unnegated and negated literals; a non-matching t is treated as a
// singleton list containing itself.
func decompose(t term.Term, listKind term.Kind) (pos, neg map[term.ID]bool) {
	var members []term.Term
	if t.Kind() == listKind {
		members = t.Args()
	} else {
		members = []term.Term{t}
	}

	pos = make(map[term.ID]bool, len(members))
	neg = make(map[term.ID]bool, len(members))
	for _, m := range members {
		if m.Kind() == term.KindNot {
			neg[m.Not().ID()] = true
		} else {
			pos[m.ID()] = true
		}
	}
	return pos, neg
}

func overlaps(a, b map[term.ID]bool) bool {
	small, big := a, b
	if len(big) < len(small) {
		small, big = big, small
	}
	for id := range small {
		if big[id] {
			return true
		}
	}
	return false
}

// quant builds the canonical ForAll/Exists over v with the given (already
// canonical) body, hoisting any And/Or operand that does not mention v out
// past the quantifier: !x.(P & Q(x)) becomes P & !x.Q(x), and dually for Or.
// A quantifier whose entire body is hoisted away vanishes, since a formula
// not mentioning v is unaffected by quantifying over v.
func (c *canonicalizer) quant(isForAll bool, v uint32, body term.Term) term.Term {
	listKind := term.KindAnd
	if !isForAll {
		listKind = term.KindOr
	}
	if _, free := term.FreeVariables(body)[v]; !free {
		return body
	}
	if body.Kind() != term.KindAnd && body.Kind() != term.KindOr {
		return c.rebuildQuant(isForAll, v, body)
	}
	if body.Kind() != listKind {
		return c.rebuildQuant(isForAll, v, body)
	}

	var hoist, retain []term.Term
	for _, e := range body.Args() {
		if _, free := term.FreeVariables(e)[v]; free {
			retain = append(retain, e)
		} else {
			hoist = append(hoist, e)
		}
	}

	if len(hoist) == 0 {
		return c.rebuildQuant(isForAll, v, body)
	}

	var qterm term.Term
	if len(retain) == 0 {
		if listKind == term.KindAnd {
			qterm = c.store.True()
		} else {
			qterm = c.store.False()
		}
	} else {
		var inner term.Term
		if listKind == term.KindAnd {
			inner = c.mkAnd(retain)
		} else {
			inner = c.mkOr(retain)
		}
		qterm = c.rebuildQuant(isForAll, v, inner)
	}

	merged := append(hoist, qterm)
	if listKind == term.KindAnd {
		return c.mkAnd(merged)
	}
	return c.mkOr(merged)
}

func (c *canonicalizer) rebuildQuant(isForAll bool, v uint32, body term.Term) term.Term {
	if isForAll {
		return c.store.NewForAll(v, body)
	}
	return c.store.NewExists(v, body)
}
