package term

// Substitute replaces every free occurrence of Variable(v) in t with repl,
// respecting shadowing: a nested ForAll/Exists/Lambda that rebinds v stops
// the substitution from reaching its body, since that occurrence names a
// different logical variable despite sharing v's numeric id.
//
// The module assumes bound-variable ids are minted fresh per binder (the
// proof checker's ∀-Elim and ∃-Elim callers are responsible for this), so no
// capture-avoiding renaming of repl's free variables is performed.
func Substitute(t Term, v uint32, repl Term) Term {
	switch t.Kind() {
	case KindVariable:
		if t.Symbol() == v {
			return repl
		}

		return t
	case KindConstant, KindParameter, KindInteger, KindTrue, KindFalse:
		return t
	case KindNot:
		return t.store.NewNot(Substitute(t.Not(), v, repl))
	case KindIfThen:
		return t.store.NewIfThen(Substitute(t.Antecedent(), v, repl), Substitute(t.Consequent(), v, repl))
	case KindEquals:
		return t.store.NewEquals(Substitute(t.Left(), v, repl), Substitute(t.Right(), v, repl))
	case KindApp1:
		return t.store.NewApp1(Substitute(t.Function(), v, repl), Substitute(t.Arg(0), v, repl))
	case KindApp2:
		return t.store.NewApp2(Substitute(t.Function(), v, repl), Substitute(t.Arg(0), v, repl), Substitute(t.Arg(1), v, repl))
	case KindForAll:
		if t.Symbol() == v {
			return t
		}

		return t.store.NewForAll(t.Symbol(), Substitute(t.Body(), v, repl))
	case KindExists:
		if t.Symbol() == v {
			return t
		}

		return t.store.NewExists(t.Symbol(), Substitute(t.Body(), v, repl))
	case KindLambda:
		if t.Symbol() == v {
			return t
		}

		return t.store.NewLambda(t.Symbol(), Substitute(t.Body(), v, repl))
	case KindAnd:
		return t.store.NewAnd(substituteList(t.Args(), v, repl)...)
	case KindOr:
		return t.store.NewOr(substituteList(t.Args(), v, repl)...)
	case KindIff:
		return t.store.NewIff(substituteList(t.Args(), v, repl)...)
	default:
		return t
	}
}

func substituteList(ms []Term, v uint32, repl Term) []Term {
	out := make([]Term, len(ms))
	for i, m := range ms {
		out[i] = Substitute(m, v, repl)
	}

	return out
}

// ReplaceParameter rewrites every occurrence of Parameter(id) in t to
// Variable(v). Parameters have no binder, so there is no shadowing case to
// consider; this is used by ∀-Introduction to turn an eigenparameter back
// into a bound variable.
func ReplaceParameter(t Term, id, v uint32) Term {
	switch t.Kind() {
	case KindParameter:
		if t.Symbol() == id {
			return t.store.NewVariable(v)
		}

		return t
	case KindVariable, KindConstant, KindInteger, KindTrue, KindFalse:
		return t
	case KindNot:
		return t.store.NewNot(ReplaceParameter(t.Not(), id, v))
	case KindIfThen:
		return t.store.NewIfThen(ReplaceParameter(t.Antecedent(), id, v), ReplaceParameter(t.Consequent(), id, v))
	case KindEquals:
		return t.store.NewEquals(ReplaceParameter(t.Left(), id, v), ReplaceParameter(t.Right(), id, v))
	case KindApp1:
		return t.store.NewApp1(ReplaceParameter(t.Function(), id, v), ReplaceParameter(t.Arg(0), id, v))
	case KindApp2:
		return t.store.NewApp2(ReplaceParameter(t.Function(), id, v), ReplaceParameter(t.Arg(0), id, v), ReplaceParameter(t.Arg(1), id, v))
	case KindForAll:
		return t.store.NewForAll(t.Symbol(), ReplaceParameter(t.Body(), id, v))
	case KindExists:
		return t.store.NewExists(t.Symbol(), ReplaceParameter(t.Body(), id, v))
	case KindLambda:
		return t.store.NewLambda(t.Symbol(), ReplaceParameter(t.Body(), id, v))
	case KindAnd:
		return t.store.NewAnd(replaceParamList(t.Args(), id, v)...)
	case KindOr:
		return t.store.NewOr(replaceParamList(t.Args(), id, v)...)
	case KindIff:
		return t.store.NewIff(replaceParamList(t.Args(), id, v)...)
	default:
		return t
	}
}

func replaceParamList(ms []Term, id, v uint32) []Term {
	out := make([]Term, len(ms))
	for i, m := range ms {
		out[i] = ReplaceParameter(m, id, v)
	}

	return out
}

// OccursParameter reports whether Parameter(id) occurs anywhere in t.
func OccursParameter(t Term, id uint32) bool {
	switch t.Kind() {
	case KindParameter:
		return t.Symbol() == id
	case KindVariable, KindConstant, KindInteger, KindTrue, KindFalse:
		return false
	case KindNot:
		return OccursParameter(t.Not(), id)
	case KindIfThen:
		return OccursParameter(t.Antecedent(), id) || OccursParameter(t.Consequent(), id)
	case KindEquals:
		return OccursParameter(t.Left(), id) || OccursParameter(t.Right(), id)
	case KindApp1:
		return OccursParameter(t.Function(), id) || OccursParameter(t.Arg(0), id)
	case KindApp2:
		return OccursParameter(t.Function(), id) || OccursParameter(t.Arg(0), id) || OccursParameter(t.Arg(1), id)
	case KindForAll, KindExists, KindLambda:
		return OccursParameter(t.Body(), id)
	case KindAnd, KindOr, KindIff:
		for _, m := range t.Args() {
			if OccursParameter(m, id) {
				return true
			}
		}

		return false
	default:
		return false
	}
}

// preorderIDs lists the arena handle of every subterm of t in a fixed,
// deterministic pre-order: a node, then its operands left to right.
func preorderIDs(t Term) []ID {
	var out []ID

	var walk func(Term)

	walk = func(t Term) {
		out = append(out, t.id)

		switch t.Kind() {
		case KindNot:
			walk(t.Not())
		case KindIfThen:
			walk(t.Antecedent())
			walk(t.Consequent())
		case KindEquals:
			walk(t.Left())
			walk(t.Right())
		case KindApp1:
			walk(t.Function())
			walk(t.Arg(0))
		case KindApp2:
			walk(t.Function())
			walk(t.Arg(0))
			walk(t.Arg(1))
		case KindForAll, KindExists, KindLambda:
			walk(t.Body())
		case KindAnd, KindOr, KindIff:
			for _, m := range t.Args() {
				walk(m)
			}
		}
	}

	walk(t)

	return out
}

// AbstractOccurrences abstracts the subterms of body at the given pre-order
// occurrence indices into Variable(v), used by ∃-Introduction. It fails
// (ok=false) if any index is out of range or the indices do not all denote
// the same subterm.
func AbstractOccurrences(body Term, indices []uint32, v uint32) (result Term, ok bool) {
	ids := preorderIDs(body)
	if len(indices) == 0 {
		return Term{}, false
	}

	chosen := make(map[int]bool, len(indices))

	var want ID

	for i, idx := range indices {
		if int(idx) >= len(ids) {
			return Term{}, false
		}

		if i == 0 {
			want = ids[idx]
		} else if ids[idx] != want {
			return Term{}, false
		}

		chosen[int(idx)] = true
	}

	counter := 0

	return abstractRebuild(body, chosen, &counter, v), true
}

func abstractRebuild(t Term, chosen map[int]bool, counter *int, v uint32) Term {
	pos := *counter
	*counter++

	if chosen[pos] {
		// Skip the replaced subterm's own pre-order positions so later
		// indices still line up with preorderIDs.
		*counter += len(preorderIDs(t)) - 1

		return t.store.NewVariable(v)
	}

	switch t.Kind() {
	case KindNot:
		return t.store.NewNot(abstractRebuild(t.Not(), chosen, counter, v))
	case KindIfThen:
		a := abstractRebuild(t.Antecedent(), chosen, counter, v)
		b := abstractRebuild(t.Consequent(), chosen, counter, v)

		return t.store.NewIfThen(a, b)
	case KindEquals:
		a := abstractRebuild(t.Left(), chosen, counter, v)
		b := abstractRebuild(t.Right(), chosen, counter, v)

		return t.store.NewEquals(a, b)
	case KindApp1:
		f := abstractRebuild(t.Function(), chosen, counter, v)
		x := abstractRebuild(t.Arg(0), chosen, counter, v)

		return t.store.NewApp1(f, x)
	case KindApp2:
		f := abstractRebuild(t.Function(), chosen, counter, v)
		x := abstractRebuild(t.Arg(0), chosen, counter, v)
		y := abstractRebuild(t.Arg(1), chosen, counter, v)

		return t.store.NewApp2(f, x, y)
	case KindForAll:
		return t.store.NewForAll(t.Symbol(), abstractRebuild(t.Body(), chosen, counter, v))
	case KindExists:
		return t.store.NewExists(t.Symbol(), abstractRebuild(t.Body(), chosen, counter, v))
	case KindLambda:
		return t.store.NewLambda(t.Symbol(), abstractRebuild(t.Body(), chosen, counter, v))
	case KindAnd:
		args := t.Args()
		out := make([]Term, len(args))

		for i, m := range args {
			out[i] = abstractRebuild(m, chosen, counter, v)
		}

		return t.store.NewAnd(out...)
	case KindOr:
		args := t.Args()
		out := make([]Term, len(args))

		for i, m := range args {
			out[i] = abstractRebuild(m, chosen, counter, v)
		}

		return t.store.NewOr(out...)
	case KindIff:
		args := t.Args()
		out := make([]Term, len(args))

		for i, m := range args {
			out[i] = abstractRebuild(m, chosen, counter, v)
		}

		return t.store.NewIff(out...)
	default:
		return t
	}
}
