package session

import (
	"testing"

	"github.com/orizon-lang/holcore/internal/proof"
)

func TestNewSessionHasEmptySetVertex(t *testing.T) {
	s := New()
	defer s.Close()

	info, err := s.Lattice.Info(s.Lattice.EmptySet())
	if err != nil {
		t.Fatal(err)
	}
	if !info.Fixed || info.Size != 0 {
		t.Fatalf("empty-set vertex = %+v, want fixed size-0", info)
	}
}

func TestSessionCanonicalizeFlattensConjunction(t *testing.T) {
	s := New()
	defer s.Close()

	a, b := s.Store.NewVariable(1), s.Store.NewVariable(2)
	nested := s.Store.NewAnd(a, s.Store.NewAnd(b, a))

	got, err := s.Canonicalize(nested)
	if err != nil {
		t.Fatal(err)
	}
	want := s.Store.NewAnd(b, a)
	if got.ID() != want.ID() {
		t.Fatalf("canonical = %v, want %v", got, want)
	}
}

func TestSessionTypeOfPersistsSymbolTypeAcrossCalls(t *testing.T) {
	s := New()
	defer s.Close()

	c := s.Store.NewConstant(1)
	p := s.Store.NewVariable(1)
	applied := s.Store.NewApp1(c, p)

	if _, err := s.TypeOf(applied); err != nil {
		t.Fatal(err)
	}

	// A second, independent use of the same constant symbol must unify
	// against the scheme fixed by the first, since s.Engine is persistent
	// across TypeOf calls rather than rebuilt fresh each time.
	again := s.Store.NewApp1(c, p)
	if _, err := s.TypeOf(again); err != nil {
		t.Fatalf("second inference against the persisted symbol environment failed: %v", err)
	}
}

func TestSessionAdoptAndForgetProof(t *testing.T) {
	s := New()
	defer s.Close()

	axiom := proof.NewAxiom(s.Store.True())
	s.Adopt(axiom)
	if axiom.RefCount() != 1 {
		t.Fatalf("refcount after Adopt = %d, want 1", axiom.RefCount())
	}

	s.Forget(axiom)
	if axiom.RefCount() != 0 {
		t.Fatalf("refcount after Forget = %d, want 0", axiom.RefCount())
	}
}

func TestSessionCloseReleasesAdoptedProofs(t *testing.T) {
	s := New()

	axiom := proof.NewAxiom(s.Store.True())
	s.Adopt(axiom)

	s.Close()

	if axiom.RefCount() != 0 {
		t.Fatalf("refcount after Close = %d, want 0", axiom.RefCount())
	}
}

func TestSessionCheckerRoundTrip(t *testing.T) {
	s := New()
	defer s.Close()

	p := s.Store.NewVariable(1)
	axiom := proof.NewAxiom(p)
	self, err := proof.NewImplIntro(axiom, axiom)
	if err != nil {
		t.Fatal(err)
	}

	checker := s.NewChecker()
	st, err := checker.Check(self)
	if err != nil {
		t.Fatal(err)
	}
	if st.Assumptions.Len() != 0 {
		t.Fatalf("assumptions = %d, want 0 (discharged)", st.Assumptions.Len())
	}
}
