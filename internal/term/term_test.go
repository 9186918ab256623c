package term

import "testing"

func TestHashConsSharesStructurallyEqualTerms(t *testing.T) {
	s := NewStore()

	a1 := s.NewVariable(1)
	a2 := s.NewVariable(1)

	if a1.ID() != a2.ID() {
		t.Fatalf("expected NewVariable(1) to be hash-consed to a single node, got ids %d and %d", a1.ID(), a2.ID())
	}

	c := s.NewConstant(1)
	if a1.ID() == c.ID() {
		t.Fatalf("Variable(1) and Constant(1) must not collapse to the same node")
	}

	and1 := s.NewAnd(a1, c)
	and2 := s.NewAnd(a2, c)

	if and1.ID() != and2.ID() {
		t.Fatalf("expected structurally identical And nodes to share a handle")
	}
}

func TestTrueFalseAreSingletonsPerStore(t *testing.T) {
	s := NewStore()
	if s.True().ID() == s.False().ID() {
		t.Fatalf("True and False must be distinct")
	}

	if s.True().ID() != s.True().ID() {
		t.Fatalf("True must be stable across calls")
	}
}

func TestCompareTotalOrderIsAntisymmetric(t *testing.T) {
	s := NewStore()
	a := s.NewVariable(1)
	b := s.NewVariable(2)

	if Compare(a, b) >= 0 {
		t.Fatalf("expected Variable(1) < Variable(2)")
	}

	if Compare(b, a) <= 0 {
		t.Fatalf("expected Variable(2) > Variable(1)")
	}

	if Compare(a, a) != 0 {
		t.Fatalf("expected Compare(a, a) == 0")
	}
}

func TestFreeVariablesRespectsBinders(t *testing.T) {
	s := NewStore()
	x := s.NewVariable(0)
	p := s.NewConstant(7)
	body := s.NewApp1(p, x)
	forall := s.NewForAll(0, body)

	free := FreeVariables(forall)
	if len(free) != 0 {
		t.Fatalf("expected no free variables under a binder capturing all uses, got %v", free)
	}

	free = FreeVariables(body)
	if _, ok := free[0]; !ok || len(free) != 1 {
		t.Fatalf("expected {0} free in the unquantified body, got %v", free)
	}
}

func TestSubstituteRespectsShadowing(t *testing.T) {
	s := NewStore()
	x := s.NewVariable(0)
	c := s.NewConstant(1)
	repl := s.NewConstant(9)

	// forall x0. Equals(x0, c1) -- substituting x0 must not touch the bound occurrence.
	body := s.NewEquals(x, c)
	shadowed := s.NewForAll(0, body)

	result := Substitute(shadowed, 0, repl)
	if result.ID() != shadowed.ID() {
		t.Fatalf("expected substitution under a shadowing binder to be a no-op")
	}

	free := s.NewEquals(x, c)
	result2 := Substitute(free, 0, repl)

	want := s.NewEquals(repl, c)
	if result2.ID() != want.ID() {
		t.Fatalf("expected free variable substitution to rewrite the term")
	}
}

func TestAbstractOccurrencesRequiresIdenticalSubterms(t *testing.T) {
	s := NewStore()
	c1 := s.NewConstant(1)
	c2 := s.NewConstant(2)
	p := s.NewConstant(3)

	body := s.NewAnd(s.NewApp1(p, c1), s.NewApp1(p, c2))

	// indices: 0=And, 1=App1(p,c1), 2=p, 3=c1, 4=App1(p,c2), 5=p, 6=c2
	if _, ok := AbstractOccurrences(body, []uint32{3, 6}, 0); ok {
		t.Fatalf("expected abstraction over distinct subterms (c1, c2) to fail")
	}

	result, ok := AbstractOccurrences(body, []uint32{3}, 0)
	if !ok {
		t.Fatalf("expected abstraction over a single occurrence to succeed")
	}

	want := s.NewAnd(s.NewApp1(p, s.NewVariable(0)), s.NewApp1(p, c2))
	if result.ID() != want.ID() {
		t.Fatalf("abstracted term mismatch: got %s want %s", result, want)
	}
}
