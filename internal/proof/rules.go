package proof

import "github.com/orizon-lang/holcore/internal/term"

// maxSymbol returns the largest Variable/Parameter/binder id occurring
// anywhere in t, or 0 if none. ∀-Intro and ∃-Intro use max+1 as a fresh
// bound-variable id that cannot capture anything already present in t.
func maxSymbol(t term.Term) uint32 {
	var max uint32
	var walk func(term.Term)
	walk = func(t term.Term) {
		switch t.Kind() {
		case term.KindVariable, term.KindConstant, term.KindParameter:
			if t.Symbol() > max {
				max = t.Symbol()
			}
		case term.KindInteger, term.KindTrue, term.KindFalse:
		case term.KindNot:
			walk(t.Not())
		case term.KindIfThen:
			walk(t.Antecedent())
			walk(t.Consequent())
		case term.KindEquals:
			walk(t.Left())
			walk(t.Right())
		case term.KindApp1:
			walk(t.Function())
			walk(t.Arg(0))
		case term.KindApp2:
			walk(t.Function())
			walk(t.Arg(0))
			walk(t.Arg(1))
		case term.KindForAll, term.KindExists, term.KindLambda:
			if t.Symbol() > max {
				max = t.Symbol()
			}
			walk(t.Body())
		case term.KindAnd, term.KindOr, term.KindIff:
			for _, m := range t.Args() {
				walk(m)
			}
		}
	}
	walk(t)
	return max
}

// matchWitness reports whether candidate could have been produced from
// body by substituting every free occurrence of the bound variable v with
// some single Parameter, returning that parameter's id. This is ∃-Elim's
// witness-schema test: the eliminated existential's body, opened with an
// arbitrary fresh parameter, must match one of the surviving assumptions
// structurally.
func matchWitness(body, candidate term.Term, v uint32) (uint32, bool) {
	var found uint32
	hasFound := false

	var rec func(b, c term.Term) bool
	rec = func(b, c term.Term) bool {
		if b.Kind() == term.KindVariable && b.Symbol() == v {
			if c.Kind() != term.KindParameter {
				return false
			}
			k := c.Symbol()
			if hasFound {
				return k == found
			}
			found, hasFound = k, true
			return true
		}

		if b.Kind() != c.Kind() {
			return false
		}

		switch b.Kind() {
		case term.KindVariable, term.KindConstant, term.KindParameter:
			return b.Symbol() == c.Symbol()
		case term.KindInteger:
			return b.Int() == c.Int()
		case term.KindTrue, term.KindFalse:
			return true
		case term.KindNot:
			return rec(b.Not(), c.Not())
		case term.KindIfThen:
			return rec(b.Antecedent(), c.Antecedent()) && rec(b.Consequent(), c.Consequent())
		case term.KindEquals:
			return rec(b.Left(), c.Left()) && rec(b.Right(), c.Right())
		case term.KindApp1:
			return rec(b.Function(), c.Function()) && rec(b.Arg(0), c.Arg(0))
		case term.KindApp2:
			return rec(b.Function(), c.Function()) && rec(b.Arg(0), c.Arg(0)) && rec(b.Arg(1), c.Arg(1))
		case term.KindForAll, term.KindExists, term.KindLambda:
			return b.Symbol() == c.Symbol() && rec(b.Body(), c.Body())
		case term.KindAnd, term.KindOr, term.KindIff:
			ba, ca := b.Args(), c.Args()
			if len(ba) != len(ca) {
				return false
			}
			for i := range ba {
				if !rec(ba[i], ca[i]) {
					return false
				}
			}
			return true
		default:
			return false
		}
	}

	if !rec(body, candidate) {
		return 0, false
	}
	return found, hasFound
}
