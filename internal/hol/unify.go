package hol

import "github.com/orizon-lang/holcore/internal/reasonerr"

// Unify implements the standard closed unification algorithm over Env's
// union-find. Occurs-checking is intentionally not performed here; it is
// delayed to Env.Flatten's final pass, so a chain of aliases can still
// resolve before a genuine cycle is reported.
func (e *Env) Unify(a, b Type) error {
	a = e.Resolve(a)
	b = e.Resolve(b)

	if a.Kind == KindNone || b.Kind == KindNone {
		return reasonerr.IllTyped(a.String(), a.String(), b.String())
	}

	if a.Kind == KindAny || b.Kind == KindAny {
		return nil
	}

	if a.Kind == KindVar {
		return e.unifyVar(a, b)
	}

	if b.Kind == KindVar {
		return e.unifyVar(b, a)
	}

	if a.Kind != b.Kind {
		return reasonerr.IllTyped("", a.String(), b.String())
	}

	switch a.Kind {
	case KindConst:
		if a.Sort != b.Sort {
			return reasonerr.IllTyped("", a.String(), b.String())
		}

		return nil
	case KindFun:
		if err := e.Unify(*a.Dom, *b.Dom); err != nil {
			return err
		}

		return e.Unify(*a.Cod, *b.Cod)
	default:
		return nil
	}
}

func (e *Env) unifyVar(v, other Type) error {
	if other.Kind == KindVar && other.Var == v.Var {
		return nil
	}

	e.Bind(v.Var, other)

	return nil
}
