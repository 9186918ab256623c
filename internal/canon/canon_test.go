package canon

import (
	"testing"

	"github.com/orizon-lang/holcore/internal/term"
)

func mustCanon(t *testing.T, s *term.Store, in term.Term, cfg Config) term.Term {
	t.Helper()
	out, err := Canonicalize(s, in, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func TestCanonicalizeFlattensAndDedupesConjunction(t *testing.T) {
	s := term.NewStore()
	a := s.NewConstant(1)
	b := s.NewConstant(2)

	in := s.NewAnd(a, s.NewAnd(b, a))
	got := mustCanon(t, s, in, Config{})

	want := s.NewAnd(a, b)
	if got.ID() != want.ID() {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestCanonicalizeComplementaryDisjunctsAreTrue(t *testing.T) {
	s := term.NewStore()
	a := s.NewConstant(1)

	in := s.NewOr(a, s.NewNot(a))
	got := mustCanon(t, s, in, Config{})

	if got.ID() != s.True().ID() {
		t.Fatalf("got %s, want True", got)
	}
}

func TestCanonicalizeDoubleNegationCancels(t *testing.T) {
	s := term.NewStore()
	a := s.NewConstant(1)

	in := s.NewNot(s.NewNot(a))
	got := mustCanon(t, s, in, Config{})

	if got.ID() != a.ID() {
		t.Fatalf("got %s, want %s", got, a)
	}
}

func TestCanonicalizeHoistsQuantifierIndependentConjunct(t *testing.T) {
	s := term.NewStore()
	p := s.NewConstant(10)
	q := s.NewConstant(11)
	x := s.NewVariable(0)

	qx := s.NewApp1(q, x)
	in := s.NewForAll(0, s.NewAnd(p, qx))

	got := mustCanon(t, s, in, Config{})

	want := s.NewAnd(p, s.NewForAll(0, qx))
	if got.ID() != want.ID() {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestCanonicalizeVanishesQuantifierWhenBodyFullyHoisted(t *testing.T) {
	s := term.NewStore()
	p := s.NewConstant(10)

	in := s.NewForAll(0, s.NewAnd(p, p))
	got := mustCanon(t, s, in, Config{})

	if got.ID() != p.ID() {
		t.Fatalf("got %s, want %s", got, p)
	}
}

func TestCanonicalizeBooleanEqualsBecomesIff(t *testing.T) {
	s := term.NewStore()
	p := s.NewConstant(20)
	q := s.NewConstant(21)

	in := s.NewAnd(p, s.NewEquals(p, q))
	got := mustCanon(t, s, in, Config{})

	want := s.NewAnd(p, s.NewIff(p, q))
	if got.ID() != want.ID() {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestCanonicalizeDistinctConstantsUnderAllConstantsDistinct(t *testing.T) {
	s := term.NewStore()
	a := s.NewConstant(1)
	b := s.NewConstant(2)

	in := s.NewEquals(a, b)
	got := mustCanon(t, s, in, Config{AllConstantsDistinct: true})
	if got.ID() != s.False().ID() {
		t.Fatalf("got %s, want False", got)
	}
}

func TestCanonicalizeIffSelfCancels(t *testing.T) {
	s := term.NewStore()
	p := s.NewConstant(30)
	q := s.NewConstant(31)

	in := s.NewNot(s.NewIff(p, s.NewIff(p, q)))
	got := mustCanon(t, s, in, Config{})

	want := s.NewNot(q)
	if got.ID() != want.ID() {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestCanonicalizeConditionalConstantShortcuts(t *testing.T) {
	s := term.NewStore()
	p := s.NewConstant(1)

	if got := mustCanon(t, s, s.NewIfThen(s.False(), p), Config{}); got.ID() != s.True().ID() {
		t.Fatalf("False=>P: got %s, want True", got)
	}
	if got := mustCanon(t, s, s.NewIfThen(s.True(), p), Config{}); got.ID() != p.ID() {
		t.Fatalf("True=>P: got %s, want P", got)
	}
	if got := mustCanon(t, s, s.NewIfThen(p, s.False()), Config{}); got.ID() != s.NewNot(p).ID() {
		t.Fatalf("P=>False: got %s, want Not(P)", got)
	}
}

func TestCanonicalizeConditionalTautologyWhenAntecedentLiteralEntailsConsequent(t *testing.T) {
	s := term.NewStore()
	a := s.NewConstant(1)
	b := s.NewConstant(2)

	// (A & B) => (B | C): B is a conjunct of the antecedent and a disjunct
	// of the consequent, so the implication holds unconditionally.
	c := s.NewConstant(3)
	in := s.NewIfThen(s.NewAnd(a, b), s.NewOr(b, c))
	got := mustCanon(t, s, in, Config{})

	if got.ID() != s.True().ID() {
		t.Fatalf("got %s, want True", got)
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	s := term.NewStore()
	a := s.NewConstant(1)
	b := s.NewConstant(2)
	x := s.NewVariable(0)
	q := s.NewConstant(9)

	in := s.NewOr(
		s.NewAnd(b, a, a),
		s.NewNot(s.NewNot(s.NewForAll(0, s.NewAnd(a, s.NewApp1(q, x))))),
	)

	first := mustCanon(t, s, in, Config{})
	second := mustCanon(t, s, first, Config{})

	if first.ID() != second.ID() {
		t.Fatalf("not idempotent: %s != %s", first, second)
	}
}
