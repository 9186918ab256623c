package term

import "testing"

func TestStringRendersInfixConnectivesWithParenthesizedOperands(t *testing.T) {
	s := NewStore()

	p := s.NewVariable(1)
	q := s.NewVariable(2)
	impl := s.NewIfThen(s.NewAnd(p, q), s.NewNot(p))

	got := impl.String()
	want := "(x₁ ∧ x₂) → (¬x₁)"
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStringRendersQuantifiersAndEmptyJoins(t *testing.T) {
	s := NewStore()

	body := s.NewExists(2, s.NewApp1(s.NewConstant(1), s.NewVariable(2)))
	forall := s.NewForAll(1, body)

	got := forall.String()
	want := "∀x₁. ∃x₂. c₁(x₂)"
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	if got := s.NewAnd().String(); got != "∅" {
		t.Fatalf("String() of an empty And = %q, want the empty-join marker", got)
	}
}

func TestTPTPRendersFunctionApplicationAndQuantifiers(t *testing.T) {
	s := NewStore()

	body := s.NewEquals(s.NewApp2(s.NewConstant(3), s.NewVariable(1), s.NewVariable(2)), s.True())
	term := s.NewForAll(1, s.NewExists(2, body))

	got := term.TPTP()
	want := "![X1]:?[X2]:c3(X1, X2) = T"
	if got != want {
		t.Fatalf("TPTP() = %q, want %q", got, want)
	}
}

func TestTPTPRendersDisjunctionWithParentheses(t *testing.T) {
	s := NewStore()

	p, q, r := s.NewVariable(1), s.NewVariable(2), s.NewVariable(3)
	got := s.NewOr(p, q, r).TPTP()
	want := "(X1 | X2 | X3)"
	if got != want {
		t.Fatalf("TPTP() = %q, want %q", got, want)
	}
}
