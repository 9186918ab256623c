package term

// Compare imposes a total order over terms: first by variant tag, then
// lexicographically by components. It is used by canonicalization to sort
// commutative operand lists and by the proof package's canonical step
// order. a and b must belong to the same Store.
func Compare(a, b Term) int {
	if a.id == b.id {
		return 0
	}

	ka, kb := a.Kind(), b.Kind()
	if ka != kb {
		return int(ka) - int(kb)
	}

	switch ka {
	case KindVariable, KindConstant, KindParameter:
		return cmpUint32(a.Symbol(), b.Symbol())
	case KindInteger:
		return cmpInt64(a.Int(), b.Int())
	case KindTrue, KindFalse:
		return 0
	case KindNot:
		return Compare(a.Not(), b.Not())
	case KindIfThen:
		if c := Compare(a.Antecedent(), b.Antecedent()); c != 0 {
			return c
		}

		return Compare(a.Consequent(), b.Consequent())
	case KindEquals:
		if c := Compare(a.Left(), b.Left()); c != 0 {
			return c
		}

		return Compare(a.Right(), b.Right())
	case KindApp1:
		if c := Compare(a.Function(), b.Function()); c != 0 {
			return c
		}

		return Compare(a.Arg(0), b.Arg(0))
	case KindApp2:
		if c := Compare(a.Function(), b.Function()); c != 0 {
			return c
		}
		if c := Compare(a.Arg(0), b.Arg(0)); c != 0 {
			return c
		}

		return Compare(a.Arg(1), b.Arg(1))
	case KindForAll, KindExists, KindLambda:
		if c := cmpUint32(a.Symbol(), b.Symbol()); c != 0 {
			return c
		}

		return Compare(a.Body(), b.Body())
	case KindAnd, KindOr, KindIff:
		return compareList(a.Args(), b.Args())
	default:
		return 0
	}
}

func compareList(as, bs []Term) int {
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}

	return len(as) - len(bs)
}

func cmpUint32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether a sorts strictly before b under Compare.
func Less(a, b Term) bool { return Compare(a, b) < 0 }

// FreeVariables returns the set of Variable symbol ids occurring free in t,
// i.e. not bound by an enclosing ForAll/Exists/Lambda over the same id.
// The canonicalizer calls it directly for its hoisting decisions; the result
// is not cached, so each call walks t afresh.
func FreeVariables(t Term) map[uint32]struct{} {
	free := make(map[uint32]struct{})
	collectFree(t, nil, free)

	return free
}

func collectFree(t Term, bound []uint32, free map[uint32]struct{}) {
	switch t.Kind() {
	case KindVariable:
		v := t.Symbol()
		for _, b := range bound {
			if b == v {
				return
			}
		}

		free[v] = struct{}{}
	case KindConstant, KindParameter, KindInteger, KindTrue, KindFalse:
		return
	case KindNot:
		collectFree(t.Not(), bound, free)
	case KindIfThen:
		collectFree(t.Antecedent(), bound, free)
		collectFree(t.Consequent(), bound, free)
	case KindEquals:
		collectFree(t.Left(), bound, free)
		collectFree(t.Right(), bound, free)
	case KindApp1:
		collectFree(t.Function(), bound, free)
		collectFree(t.Arg(0), bound, free)
	case KindApp2:
		collectFree(t.Function(), bound, free)
		collectFree(t.Arg(0), bound, free)
		collectFree(t.Arg(1), bound, free)
	case KindForAll, KindExists, KindLambda:
		collectFree(t.Body(), append(bound, t.Symbol()), free)
	case KindAnd, KindOr, KindIff:
		for _, m := range t.Args() {
			collectFree(m, bound, free)
		}
	}
}
