package canon

import (
	"github.com/orizon-lang/holcore/internal/hol"
	"github.com/orizon-lang/holcore/internal/term"
)

type canonicalizer struct {
	store   *term.Store
	cfg     Config
	types   map[term.ID]hol.Type
	env     *hol.Env
	memo    map[term.ID]term.Term
}

// Canonicalize rewrites t to the unique normal form of its equivalence
// class. It runs its own type inference pass first (needed to decide
// whether an Equals node denotes boolean equality, which becomes Iff) and
// returns the inference error, if any, unchanged.
func Canonicalize(store *term.Store, t term.Term, cfg Config) (term.Term, error) {
	engine := hol.NewEngine(hol.Config{PolymorphicEquality: cfg.PolymorphicEquality})
	if _, err := engine.Infer(t); err != nil {
		return term.Term{}, err
	}

	c := &canonicalizer{
		store: store,
		cfg:   cfg,
		types: engine.Types,
		env:   engine.Env(),
		memo:  make(map[term.ID]term.Term),
	}

	return c.run(t), nil
}

func (c *canonicalizer) run(t term.Term) term.Term {
	if cached, ok := c.memo[t.ID()]; ok {
		return cached
	}

	var result term.Term
	switch t.Kind() {
	case term.KindVariable, term.KindConstant, term.KindParameter, term.KindInteger,
		term.KindTrue, term.KindFalse:
		result = t
	case term.KindNot:
		result = c.negate(c.run(t.Not()))
	case term.KindIfThen:
		result = c.cond(c.run(t.Antecedent()), c.run(t.Consequent()))
	case term.KindEquals:
		result = c.equals(t)
	case term.KindAnd:
		result = c.mkAnd(c.runEach(t.Args()))
	case term.KindOr:
		result = c.mkOr(c.runEach(t.Args()))
	case term.KindIff:
		result = c.mkIff(c.runEach(t.Args()))
	case term.KindApp1:
		result = c.store.NewApp1(c.run(t.Function()), c.run(t.Arg(0)))
	case term.KindApp2:
		result = c.store.NewApp2(c.run(t.Function()), c.run(t.Arg(0)), c.run(t.Arg(1)))
	case term.KindForAll:
		result = c.quant(true, t.Symbol(), c.run(t.Body()))
	case term.KindExists:
		result = c.quant(false, t.Symbol(), c.run(t.Body()))
	case term.KindLambda:
		// Lambda constructs a function value, not an assertion: hoisting
		// And/Or out of its body would change the value it denotes, so
		// Lambda's body is canonicalized structurally without hoisting.
		result = c.store.NewLambda(t.Symbol(), c.run(t.Body()))
	default:
		result = t
	}

	c.memo[t.ID()] = result
	return result
}

func (c *canonicalizer) runEach(ts []term.Term) []term.Term {
	out := make([]term.Term, len(ts))
	for i, t := range ts {
		out[i] = c.run(t)
	}
	return out
}

// equals canonicalizes an Equals node: boolean equality becomes Iff,
// identical operands collapse to ⊤, (when Config.AllConstantsDistinct is
// set) equality between two distinct constants collapses to ⊥, and any
// surviving Equals has its operands ordered by term.Compare so a = b and
// b = a canonicalize identically.
func (c *canonicalizer) equals(t term.Term) term.Term {
	if c.isBoolean(t.Left()) && c.isBoolean(t.Right()) {
		return c.mkIff([]term.Term{c.run(t.Left()), c.run(t.Right())})
	}

	l, r := c.run(t.Left()), c.run(t.Right())
	if l.ID() == r.ID() {
		return c.store.True()
	}

	if c.cfg.AllConstantsDistinct && l.Kind() == term.KindConstant && r.Kind() == term.KindConstant &&
		l.Symbol() != r.Symbol() {
		return c.store.False()
	}

	if term.Compare(l, r) > 0 {
		l, r = r, l
	}

	return c.store.NewEquals(l, r)
}

func (c *canonicalizer) isBoolean(t term.Term) bool {
	ty, ok := c.types[t.ID()]
	if !ok {
		return false
	}

	flat, ok := c.env.Flatten(ty)
	if !ok {
		return false
	}

	return flat.Kind == hol.KindConst && flat.Sort == hol.SortBool
}
