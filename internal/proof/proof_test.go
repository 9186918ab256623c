package proof

import (
	"errors"
	"testing"

	"github.com/orizon-lang/holcore/internal/reasonerr"
	"github.com/orizon-lang/holcore/internal/term"
)

func errCode(t *testing.T, err error) string {
	t.Helper()
	var re *reasonerr.Error
	if !errors.As(err, &re) {
		t.Fatalf("expected *reasonerr.Error, got %T: %v", err, err)
	}
	return re.Code
}

func TestNewAndIntroRejectsNilOperand(t *testing.T) {
	if _, err := NewAndIntro(nil, NewAxiom(term.NewStore().True())); err == nil {
		t.Fatal("expected error for nil first operand")
	} else if errCode(t, err) != "OPERAND_KIND_MISMATCH" {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestNewOrIntroLRejectsNonFormulaParameterOperand(t *testing.T) {
	s := term.NewStore()
	p := NewAxiom(s.True())
	wrongKind := NewAxiom(s.False())

	if _, err := NewOrIntroL(p, wrongKind); err == nil {
		t.Fatal("expected error for non-FormulaParameter second operand")
	} else if errCode(t, err) != "OPERAND_KIND_MISMATCH" {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestNewImplIntroRequiresAxiomOperand(t *testing.T) {
	s := term.NewStore()
	p := NewAxiom(s.True())
	notAxiom := NewParameter(0)

	if _, err := NewImplIntro(p, notAxiom); err == nil {
		t.Fatal("expected error")
	} else if errCode(t, err) != "OPERAND_KIND_MISMATCH" {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestRetainReleaseSharesOperandAcrossParents(t *testing.T) {
	s := term.NewStore()
	shared := NewAxiom(s.True())
	shared.Retain()

	left, err := NewAndElimL(shared)
	if err != nil {
		t.Fatal(err)
	}
	right, err := NewAndElimR(shared)
	if err != nil {
		t.Fatal(err)
	}

	if shared.RefCount() != 3 { // Retain + two operand slots
		t.Fatalf("refcount = %d, want 3", shared.RefCount())
	}

	left.Release()
	if shared.RefCount() != 2 {
		t.Fatalf("refcount after one release = %d, want 2", shared.RefCount())
	}
	right.Release()
	shared.Release()
	if shared.RefCount() != 0 {
		t.Fatalf("refcount after final release = %d, want 0", shared.RefCount())
	}
}

func TestCheckAndIntroElim(t *testing.T) {
	s := term.NewStore()
	p, q := s.NewVariable(1), s.NewVariable(2)

	pa := NewAxiom(p)
	qa := NewAxiom(q)
	conj, err := NewAndIntro(pa, qa)
	if err != nil {
		t.Fatal(err)
	}
	left, err := NewAndElimL(conj)
	if err != nil {
		t.Fatal(err)
	}

	checker := NewChecker(s, CheckerConfig{})
	st, err := checker.Check(left)
	if err != nil {
		t.Fatal(err)
	}
	if st.Conclusion.ID() != p.ID() {
		t.Fatalf("conclusion = %v, want %v", st.Conclusion, p)
	}
	if st.Assumptions.Len() != 2 {
		t.Fatalf("assumption count = %d, want 2", st.Assumptions.Len())
	}
}

func TestCheckAndElimLRejectsNonConjunction(t *testing.T) {
	s := term.NewStore()
	pa := NewAxiom(s.NewVariable(1))
	left, err := NewAndElimL(pa)
	if err != nil {
		t.Fatal(err)
	}

	checker := NewChecker(s, CheckerConfig{})
	if _, err := checker.Check(left); err == nil {
		t.Fatal("expected structural mismatch")
	} else if errCode(t, err) != "STRUCTURAL_MISMATCH" {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestCheckImplIntroDischargesAssumption(t *testing.T) {
	s := term.NewStore()
	p := s.NewVariable(1)

	pa := NewAxiom(p)
	implIntro, err := NewImplIntro(pa, NewAxiom(p))
	if err != nil {
		t.Fatal(err)
	}

	checker := NewChecker(s, CheckerConfig{})
	st, err := checker.Check(implIntro)
	if err != nil {
		t.Fatal(err)
	}
	if st.Conclusion.Kind() != term.KindIfThen {
		t.Fatalf("conclusion kind = %v, want IfThen", st.Conclusion.Kind())
	}
	if st.Assumptions.Len() != 0 {
		t.Fatalf("assumptions = %d, want 0 (discharged)", st.Assumptions.Len())
	}
}

func TestCheckImplElimRequiresMatchingAntecedent(t *testing.T) {
	s := term.NewStore()
	p, q, r := s.NewVariable(1), s.NewVariable(2), s.NewVariable(3)

	implication := NewAxiom(s.NewIfThen(p, q))
	wrongAntecedent := NewAxiom(r)

	elim, err := NewImplElim(implication, wrongAntecedent)
	if err != nil {
		t.Fatal(err)
	}

	checker := NewChecker(s, CheckerConfig{})
	if _, err := checker.Check(elim); err == nil {
		t.Fatal("expected structural mismatch")
	} else if errCode(t, err) != "STRUCTURAL_MISMATCH" {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestCheckForAllIntroRejectsEscapingParameter(t *testing.T) {
	s := term.NewStore()
	k := NewParameter(7)
	// Axiom P(k) depends on the eigenparameter, so it must survive
	// undischarged into the ForAllIntro — a ParameterEscapes failure.
	body := NewAxiom(s.NewParameter(7))

	fa, err := NewForAllIntro(body, k)
	if err != nil {
		t.Fatal(err)
	}

	checker := NewChecker(s, CheckerConfig{})
	if _, err := checker.Check(fa); err == nil {
		t.Fatal("expected ParameterEscapes error")
	} else if errCode(t, err) != "PARAMETER_ESCAPES" {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestCheckForAllIntroElimRoundTrip(t *testing.T) {
	s := term.NewStore()
	k := NewParameter(7)
	// A raw Axiom(P(k)) is its own undischarged hypothesis, so ForAllIntro
	// over it directly would trip ParameterEscapes (see the test above).
	// Discharging it against itself via ImplIntro yields P(k) ⇒ P(k) with
	// no outstanding assumptions, which is a legal ForAllIntro operand.
	axiom := NewAxiom(s.NewParameter(7))
	body, err := NewImplIntro(axiom, axiom)
	if err != nil {
		t.Fatal(err)
	}

	fa, err := NewForAllIntro(body, k)
	if err != nil {
		t.Fatal(err)
	}

	checker := NewChecker(s, CheckerConfig{})
	st, err := checker.Check(fa)
	if err != nil {
		t.Fatal(err)
	}
	if st.Conclusion.Kind() != term.KindForAll {
		t.Fatalf("conclusion kind = %v, want ForAll", st.Conclusion.Kind())
	}
	if st.Assumptions.Len() != 0 {
		t.Fatalf("assumptions leaked past ForAllIntro: %d", st.Assumptions.Len())
	}

	c := s.NewVariable(99)
	elim, err := NewForAllElim(fa, NewTermParameter(c))
	if err != nil {
		t.Fatal(err)
	}
	st2, err := checker.Check(elim)
	if err != nil {
		t.Fatal(err)
	}
	if st2.Conclusion.Kind() != term.KindIfThen {
		t.Fatalf("conclusion kind = %v, want IfThen", st2.Conclusion.Kind())
	}
	if st2.Conclusion.Antecedent().ID() != c.ID() || st2.Conclusion.Consequent().ID() != c.ID() {
		t.Fatalf("conclusion = %v, want IfThen(%v, %v)", st2.Conclusion, c, c)
	}
}

func TestCheckExistsIntroElimRoundTrip(t *testing.T) {
	s := term.NewStore()
	c := s.NewVariable(42)
	pc := NewAxiom(s.NewApp1(s.NewConstant(1), c))

	// Pre-order occurrence index 2 is c itself (0 is the App1 node, 1 is
	// the function Const(1)); abstracting it yields ∃x. Const(1)(x).
	intro, err := NewExistsIntro(pc, NewArrayParameter([]uint32{2}))
	if err != nil {
		t.Fatal(err)
	}

	checker := NewChecker(s, CheckerConfig{})
	st, err := checker.Check(intro)
	if err != nil {
		t.Fatal(err)
	}
	if st.Conclusion.Kind() != term.KindExists {
		t.Fatalf("conclusion kind = %v, want Exists", st.Conclusion.Kind())
	}

	// ∃-Elim: discharge an assumption that unifies with the witness schema
	// under a single fresh parameter.
	k := uint32(500)
	witnessAssumption := NewAxiom(s.NewApp1(s.NewConstant(1), s.NewParameter(k)))

	elim, err := NewExistsElim(intro, witnessAssumption)
	if err != nil {
		t.Fatal(err)
	}
	st2, err := checker.Check(elim)
	if err != nil {
		t.Fatal(err)
	}
	if st2.Conclusion.Kind() != term.KindApp1 {
		t.Fatalf("conclusion kind = %v, want App1", st2.Conclusion.Kind())
	}
	// The witness assumption is discharged; only the ∃-Intro premise
	// Const(1)(c) survives from the first operand.
	witness := s.NewApp1(s.NewConstant(1), s.NewParameter(k))
	if st2.Assumptions.Len() != 1 || st2.Assumptions.contains(witness) {
		t.Fatalf("witness assumption should be discharged leaving only the ∃-Intro premise, got %d", st2.Assumptions.Len())
	}
}

func TestCheckExistsElimFailsWithoutMatchingAssumption(t *testing.T) {
	s := term.NewStore()
	c := s.NewVariable(42)
	pc := NewAxiom(s.NewApp1(s.NewConstant(1), c))

	intro, err := NewExistsIntro(pc, NewArrayParameter([]uint32{2}))
	if err != nil {
		t.Fatal(err)
	}

	unrelated := NewAxiom(s.NewVariable(9))
	elim, err := NewExistsElim(intro, unrelated)
	if err != nil {
		t.Fatal(err)
	}

	checker := NewChecker(s, CheckerConfig{})
	if _, err := checker.Check(elim); err == nil {
		t.Fatal("expected AssumptionNotDischarged")
	} else if errCode(t, err) != "ASSUMPTION_NOT_DISCHARGED" {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestCanonicalOrderIsDeterministicAcrossRuns(t *testing.T) {
	s := term.NewStore()
	p, q := s.NewVariable(1), s.NewVariable(2)
	conj, err := NewAndIntro(NewAxiom(p), NewAxiom(q))
	if err != nil {
		t.Fatal(err)
	}
	left, err := NewAndElimL(conj)
	if err != nil {
		t.Fatal(err)
	}

	first := CanonicalOrder(left)
	second := CanonicalOrder(left)

	if len(first) != len(second) {
		t.Fatalf("length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order diverged at index %d", i)
		}
	}
}

func TestCanonicalOrderRespectsTopologicalDependency(t *testing.T) {
	s := term.NewStore()
	p, q := s.NewVariable(1), s.NewVariable(2)
	pa, qa := NewAxiom(p), NewAxiom(q)
	conj, err := NewAndIntro(pa, qa)
	if err != nil {
		t.Fatal(err)
	}

	order := CanonicalOrder(conj)
	pos := map[*Step]int{}
	for i, n := range order {
		pos[n] = i
	}
	if pos[pa] > pos[conj] || pos[qa] > pos[conj] {
		t.Fatal("operand ordered after its parent")
	}
}

func TestLogProbabilityGrowsWithProofLength(t *testing.T) {
	s := term.NewStore()
	p, q := s.NewVariable(1), s.NewVariable(2)
	pa := NewAxiom(p)

	short := LogProbability(pa)

	conj, err := NewAndIntro(pa, NewAxiom(q))
	if err != nil {
		t.Fatal(err)
	}
	left, err := NewAndElimL(conj)
	if err != nil {
		t.Fatal(err)
	}
	long := LogProbability(left)

	// Every additional step contributes another negative rule-selection and
	// length term, so a longer proof is always strictly less probable.
	if long >= short {
		t.Fatalf("long proof log-probability %v should be less than short proof %v", long, short)
	}
}

func TestLogProbabilityDiscountsForAllElimByAvailableParameters(t *testing.T) {
	s := term.NewStore()
	k1, k2 := NewParameter(1), NewParameter(2)
	body := NewAxiom(s.True())

	fa1, err := NewForAllIntro(body, k1)
	if err != nil {
		t.Fatal(err)
	}
	elimOne := LogProbability(mustForAllElim(t, fa1, s.NewVariable(1)))

	fa2, err := NewForAllIntro(fa1, k2)
	if err != nil {
		t.Fatal(err)
	}
	// Two nested ForAllIntro steps means two available parameters by the
	// time an eliminating step could reference them.
	elimTwo := LogProbability(mustForAllElim(t, fa2, s.NewVariable(1)))

	if elimTwo >= elimOne {
		t.Fatalf("more available parameters should not increase log-probability: %v vs %v", elimTwo, elimOne)
	}
}

func mustForAllElim(t *testing.T, p *Step, witness term.Term) *Step {
	t.Helper()
	s, err := NewForAllElim(p, NewTermParameter(witness))
	if err != nil {
		t.Fatal(err)
	}
	return s
}
