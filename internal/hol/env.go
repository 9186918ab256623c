package hol

// Env is the mutable, union-find-style environment of type variables:
// Var(i) indexes bindings, each itself a Type. An unbound Var(i) is
// represented by bindings[i] == VarType(i) (self-bound).
type Env struct {
	bindings []Type
}

// NewEnv creates an empty type-variable environment.
func NewEnv() *Env { return &Env{} }

// Fresh allocates and returns a new, unbound type variable.
func (e *Env) Fresh() Type {
	i := uint32(len(e.bindings))
	v := VarType(i)
	e.bindings = append(e.bindings, v)

	return v
}

// Resolve follows Var bindings to a fixpoint: either a non-Var type, or an
// unbound Var. It does not recurse into Fun's Dom/Cod.
func (e *Env) Resolve(t Type) Type {
	for t.Kind == KindVar {
		b := e.bindings[t.Var]
		if b.Kind == KindVar && b.Var == t.Var {
			return t
		}

		t = b
	}

	return t
}

// Bind records that Var(v) resolves to t. Callers are responsible for
// having already resolved v to an unbound variable.
func (e *Env) Bind(v uint32, t Type) {
	e.bindings[v] = t
}

// Flatten fully resolves t, recursing into Fun's Dom/Cod, and detects two
// cycle shapes: a pure chain of variable aliases collapses to Any; a cycle
// that passes through a Fun constructor is an infinite type.
func (e *Env) Flatten(t Type) (Type, bool) {
	return e.flatten(t, map[uint32]bool{}, false)
}

func (e *Env) flatten(t Type, path map[uint32]bool, throughFun bool) (Type, bool) {
	switch t.Kind {
	case KindVar:
		v := t.Var
		if path[v] {
			if throughFun {
				return Type{}, false
			}

			return Any(), true
		}

		b := e.bindings[v]
		if b.Kind == KindVar && b.Var == v {
			return t, true
		}

		path[v] = true

		result, ok := e.flatten(b, path, throughFun)

		delete(path, v)

		return result, ok
	case KindFun:
		dom, ok := e.flatten(*t.Dom, path, true)
		if !ok {
			return Type{}, false
		}

		cod, ok := e.flatten(*t.Cod, path, true)
		if !ok {
			return Type{}, false
		}

		return Fun(dom, cod), true
	default:
		return t, true
	}
}
