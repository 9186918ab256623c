package hol

import (
	"github.com/orizon-lang/holcore/internal/reasonerr"
	"github.com/orizon-lang/holcore/internal/term"
)

// Config controls the one inference toggle a caller may need to relax.
type Config struct {
	// PolymorphicEquality, when true, allows Equals's two operands to carry
	// independent types instead of being unified against each other.
	PolymorphicEquality bool
}

// Engine performs Hindley-Milner inference (Algorithm W's traversal, without
// let-generalization: the term algebra has no let-binding construct) over a
// term.Term tree.
type Engine struct {
	env    *Env
	config Config

	constTypes map[uint32]Type
	paramTypes map[uint32]Type

	// Types is the per-subterm result populated by Infer, keyed by arena
	// handle since equal subterms are hash-consed to one handle and thus one
	// entry; this doubles as the canonicalizer's Equals/Iff type oracle.
	Types map[term.ID]Type
}

type varBinding struct {
	id  uint32
	typ Type
}

// NewEngine creates a fresh inference engine with an empty environment.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		env:        NewEnv(),
		config:     cfg,
		constTypes: make(map[uint32]Type),
		paramTypes: make(map[uint32]Type),
		Types:      make(map[term.ID]Type),
	}
}

// Env exposes the underlying union-find environment, e.g. for flattening a
// type returned by Infer.
func (e *Engine) Env() *Env { return e.env }

// Infer assigns a type to t and every one of its subterms, returning t's own
// (unflattened) type. Callers that need a fully resolved type should pass
// the result through Env().Flatten.
func (e *Engine) Infer(t term.Term) (Type, error) {
	return e.infer(t, nil)
}

func (e *Engine) infer(t term.Term, scope []varBinding) (Type, error) {
	var (
		result Type
		err    error
	)

	switch t.Kind() {
	case term.KindVariable:
		result, err = e.inferVariable(t, scope)
	case term.KindConstant:
		result = e.symbolType(e.constTypes, t.Symbol())
	case term.KindParameter:
		result = e.symbolType(e.paramTypes, t.Symbol())
	case term.KindInteger:
		result = Individual()
	case term.KindTrue, term.KindFalse:
		result = Bool()
	case term.KindNot:
		result, err = e.inferBooleanUnary(t.Not(), scope)
	case term.KindIfThen:
		result, err = e.inferBooleanBinary(t.Antecedent(), t.Consequent(), scope)
	case term.KindEquals:
		result, err = e.inferEquals(t, scope)
	case term.KindAnd, term.KindOr, term.KindIff:
		result, err = e.inferBooleanList(t.Args(), scope)
	case term.KindApp1:
		result, err = e.inferApp1(t, scope)
	case term.KindApp2:
		result, err = e.inferApp2(t, scope)
	case term.KindForAll, term.KindExists:
		result, err = e.inferBoundQuantifier(t, scope)
	case term.KindLambda:
		result, err = e.inferLambda(t, scope)
	default:
		err = reasonerr.UnknownSymbol(0)
	}

	if err != nil {
		return Type{}, err
	}

	e.Types[t.ID()] = result

	return result, nil
}

func (e *Engine) symbolType(table map[uint32]Type, id uint32) Type {
	if t, ok := table[id]; ok {
		return t
	}

	fresh := e.env.Fresh()
	table[id] = fresh

	return fresh
}

func (e *Engine) inferVariable(t term.Term, scope []varBinding) (Type, error) {
	id := t.Symbol()
	for i := len(scope) - 1; i >= 0; i-- {
		if scope[i].id == id {
			return scope[i].typ, nil
		}
	}

	return Type{}, reasonerr.UnknownSymbol(id)
}

func (e *Engine) inferBooleanUnary(operand term.Term, scope []varBinding) (Type, error) {
	ty, err := e.infer(operand, scope)
	if err != nil {
		return Type{}, err
	}

	if err := e.env.Unify(ty, Bool()); err != nil {
		return Type{}, err
	}

	return Bool(), nil
}

func (e *Engine) inferBooleanBinary(a, b term.Term, scope []varBinding) (Type, error) {
	ta, err := e.infer(a, scope)
	if err != nil {
		return Type{}, err
	}

	tb, err := e.infer(b, scope)
	if err != nil {
		return Type{}, err
	}

	if err := e.env.Unify(ta, Bool()); err != nil {
		return Type{}, err
	}

	if err := e.env.Unify(tb, Bool()); err != nil {
		return Type{}, err
	}

	return Bool(), nil
}

func (e *Engine) inferBooleanList(ms []term.Term, scope []varBinding) (Type, error) {
	for _, m := range ms {
		ty, err := e.infer(m, scope)
		if err != nil {
			return Type{}, err
		}

		if err := e.env.Unify(ty, Bool()); err != nil {
			return Type{}, err
		}
	}

	return Bool(), nil
}

func (e *Engine) inferEquals(t term.Term, scope []varBinding) (Type, error) {
	tl, err := e.infer(t.Left(), scope)
	if err != nil {
		return Type{}, err
	}

	tr, err := e.infer(t.Right(), scope)
	if err != nil {
		return Type{}, err
	}

	if !e.config.PolymorphicEquality {
		if err := e.env.Unify(tl, tr); err != nil {
			return Type{}, err
		}
	}

	return Bool(), nil
}

func (e *Engine) inferApp1(t term.Term, scope []varBinding) (Type, error) {
	tf, err := e.infer(t.Function(), scope)
	if err != nil {
		return Type{}, err
	}

	tx, err := e.infer(t.Arg(0), scope)
	if err != nil {
		return Type{}, err
	}

	result := e.env.Fresh()
	if err := e.env.Unify(tf, Fun(tx, result)); err != nil {
		return Type{}, err
	}

	return result, nil
}

func (e *Engine) inferApp2(t term.Term, scope []varBinding) (Type, error) {
	tf, err := e.infer(t.Function(), scope)
	if err != nil {
		return Type{}, err
	}

	tx, err := e.infer(t.Arg(0), scope)
	if err != nil {
		return Type{}, err
	}

	ty, err := e.infer(t.Arg(1), scope)
	if err != nil {
		return Type{}, err
	}

	result := e.env.Fresh()
	if err := e.env.Unify(tf, Fun(tx, Fun(ty, result))); err != nil {
		return Type{}, err
	}

	return result, nil
}

// inferBoundQuantifier handles ForAll and Exists identically: both
// introduce a fresh type variable for the bound variable and require a
// boolean body.
func (e *Engine) inferBoundQuantifier(t term.Term, scope []varBinding) (Type, error) {
	vt := e.env.Fresh()
	inner := append(append([]varBinding{}, scope...), varBinding{id: t.Symbol(), typ: vt})

	bt, err := e.infer(t.Body(), inner)
	if err != nil {
		return Type{}, err
	}

	if err := e.env.Unify(bt, Bool()); err != nil {
		return Type{}, err
	}

	return Bool(), nil
}

func (e *Engine) inferLambda(t term.Term, scope []varBinding) (Type, error) {
	vt := e.env.Fresh()
	inner := append(append([]varBinding{}, scope...), varBinding{id: t.Symbol(), typ: vt})

	bt, err := e.infer(t.Body(), inner)
	if err != nil {
		return Type{}, err
	}

	return Fun(vt, bt), nil
}
