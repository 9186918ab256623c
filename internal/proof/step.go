// Package proof implements the natural-deduction proof DAG and checker: a
// fixed inference-rule alphabet dispatched by an exhaustive switch over a
// closed Kind, reference-counted nodes with back-reference child lists for
// invalidation propagation, and a checker that reconstructs (assumptions,
// conclusion) state bottom-up over a topological order.
package proof

import (
	"fmt"

	"github.com/orizon-lang/holcore/internal/reasonerr"
	"github.com/orizon-lang/holcore/internal/term"
)

// Kind tags the closed set of proof-step variants.
type Kind uint8

const (
	KindAxiom Kind = iota
	KindParameter
	KindArrayParameter
	KindTermParameter
	KindFormulaParameter
	KindAndIntro
	KindAndElimL
	KindAndElimR
	KindOrIntroL
	KindOrIntroR
	KindOrElim
	KindImplIntro
	KindImplElim
	KindIffIntro
	KindIffElimL
	KindIffElimR
	KindContradiction
	KindNotElim
	KindForAllIntro
	KindForAllElim
	KindExistsIntro
	KindExistsElim
)

func (k Kind) String() string {
	switch k {
	case KindAxiom:
		return "Axiom"
	case KindParameter:
		return "Parameter"
	case KindArrayParameter:
		return "ArrayParameter"
	case KindTermParameter:
		return "TermParameter"
	case KindFormulaParameter:
		return "FormulaParameter"
	case KindAndIntro:
		return "AndIntro"
	case KindAndElimL:
		return "AndElimL"
	case KindAndElimR:
		return "AndElimR"
	case KindOrIntroL:
		return "OrIntroL"
	case KindOrIntroR:
		return "OrIntroR"
	case KindOrElim:
		return "OrElim"
	case KindImplIntro:
		return "ImplIntro"
	case KindImplElim:
		return "ImplElim"
	case KindIffIntro:
		return "IffIntro"
	case KindIffElimL:
		return "IffElimL"
	case KindIffElimR:
		return "IffElimR"
	case KindContradiction:
		return "Contradiction"
	case KindNotElim:
		return "NotElim"
	case KindForAllIntro:
		return "ForAllIntro"
	case KindForAllElim:
		return "ForAllElim"
	case KindExistsIntro:
		return "ExistsIntro"
	case KindExistsElim:
		return "ExistsElim"
	default:
		return "Unknown"
	}
}

// IsLeaf reports whether k carries no sub-proof operands.
func (k Kind) IsLeaf() bool {
	switch k {
	case KindAxiom, KindParameter, KindArrayParameter, KindTermParameter, KindFormulaParameter:
		return true
	default:
		return false
	}
}

// Step is one node of the proof DAG. Sub-proof sharing is first-class: any
// Step may be an operand of more than one parent, so lifetime is managed by
// explicit reference counting rather than ownership (Go's garbage collector
// still reclaims the memory once nothing, including this package's own
// bookkeeping, points at it; RefCount governs the child-list invariant, not
// allocation itself).
type Step struct {
	kind Kind

	op0, op1, op2 *Step
	children      []*Step
	refCount      int

	formula   term.Term // Axiom, FormulaParameter payload
	param     uint32    // Parameter payload
	params    []uint32  // ArrayParameter payload
	termParam term.Term // TermParameter payload
}

// Kind returns s's variant tag.
func (s *Step) Kind() Kind { return s.kind }

// RefCount returns s's current reference count.
func (s *Step) RefCount() int { return s.refCount }

// Retain increments s's reference count. Callers that hold onto a Step
// outside of another Step's operand slots (e.g. a checker root) should call
// this so Release's bookkeeping stays balanced.
func (s *Step) Retain() {
	if s != nil {
		s.refCount++
	}
}

// Release decrements s's reference count; at zero, it releases s's own
// operands (recursively) and unregisters itself from their child lists.
func (s *Step) Release() {
	if s == nil {
		return
	}

	s.refCount--
	if s.refCount > 0 {
		return
	}

	for _, op := range []*Step{s.op0, s.op1, s.op2} {
		if op == nil {
			continue
		}

		op.unregisterChild(s)
		op.Release()
	}
}

func (s *Step) unregisterChild(child *Step) {
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}

func newStep(kind Kind, op0, op1, op2 *Step) *Step {
	s := &Step{kind: kind, op0: op0, op1: op1, op2: op2}
	for _, op := range []*Step{op0, op1, op2} {
		if op != nil {
			op.refCount++
			op.children = append(op.children, s)
		}
	}
	return s
}

func requireOperand(rule string, op *Step) error {
	if op == nil {
		return reasonerr.OperandKindMismatch(rule, "operand is none")
	}
	return nil
}

func requireKind(rule string, op *Step, want Kind) error {
	if op == nil {
		return reasonerr.OperandKindMismatch(rule, "operand is none")
	}
	if op.Kind() != want {
		return reasonerr.OperandKindMismatch(rule, fmt.Sprintf("expected %s operand, got %s", want, op.Kind()))
	}
	return nil
}

// ---- Leaf constructors ---------------------------------------------------

// NewAxiom returns a leaf Axiom(formula) step.
func NewAxiom(formula term.Term) *Step {
	return &Step{kind: KindAxiom, formula: formula}
}

// NewParameter returns a leaf Parameter(id) step.
func NewParameter(id uint32) *Step {
	return &Step{kind: KindParameter, param: id}
}

// NewArrayParameter returns a leaf ArrayParameter(ids) step.
func NewArrayParameter(ids []uint32) *Step {
	cp := append([]uint32(nil), ids...)
	return &Step{kind: KindArrayParameter, params: cp}
}

// NewTermParameter returns a leaf TermParameter(t) step.
func NewTermParameter(t term.Term) *Step {
	return &Step{kind: KindTermParameter, termParam: t}
}

// NewFormulaParameter returns a leaf FormulaParameter(formula) step.
func NewFormulaParameter(formula term.Term) *Step {
	return &Step{kind: KindFormulaParameter, formula: formula}
}

// ---- Inference constructors ----------------------------------------------
//
// Each constructor validates which sub-proof shapes a slot accepts before
// linking the new node in; semantic constraints on the operands'
// reconstructed conclusions (e.g. "F0 must be And") are the checker's job,
// since they aren't visible until the DAG is walked.

// NewAndIntro builds ∧-Intro(p, q).
func NewAndIntro(p, q *Step) (*Step, error) {
	if err := requireOperand("AndIntro", p); err != nil {
		return nil, err
	}
	if err := requireOperand("AndIntro", q); err != nil {
		return nil, err
	}
	return newStep(KindAndIntro, p, q, nil), nil
}

// NewAndElimL builds ∧-Elim-L(p).
func NewAndElimL(p *Step) (*Step, error) {
	if err := requireOperand("AndElimL", p); err != nil {
		return nil, err
	}
	return newStep(KindAndElimL, p, nil, nil), nil
}

// NewAndElimR builds ∧-Elim-R(p).
func NewAndElimR(p *Step) (*Step, error) {
	if err := requireOperand("AndElimR", p); err != nil {
		return nil, err
	}
	return newStep(KindAndElimR, p, nil, nil), nil
}

// NewOrIntroL builds ∨-Intro-L(p, psi); psi must be a FormulaParameter.
func NewOrIntroL(p, psi *Step) (*Step, error) {
	if err := requireOperand("OrIntroL", p); err != nil {
		return nil, err
	}
	if err := requireKind("OrIntroL", psi, KindFormulaParameter); err != nil {
		return nil, err
	}
	return newStep(KindOrIntroL, p, psi, nil), nil
}

// NewOrIntroR builds ∨-Intro-R(p, psi); psi must be a FormulaParameter.
func NewOrIntroR(p, psi *Step) (*Step, error) {
	if err := requireOperand("OrIntroR", p); err != nil {
		return nil, err
	}
	if err := requireKind("OrIntroR", psi, KindFormulaParameter); err != nil {
		return nil, err
	}
	return newStep(KindOrIntroR, p, psi, nil), nil
}

// NewOrElim builds ∨-Elim(p, q, r).
func NewOrElim(p, q, r *Step) (*Step, error) {
	if err := requireOperand("OrElim", p); err != nil {
		return nil, err
	}
	if err := requireOperand("OrElim", q); err != nil {
		return nil, err
	}
	if err := requireOperand("OrElim", r); err != nil {
		return nil, err
	}
	return newStep(KindOrElim, p, q, r), nil
}

// NewImplIntro builds ⇒-Intro(p, a); a must be an Axiom.
func NewImplIntro(p, a *Step) (*Step, error) {
	if err := requireOperand("ImplIntro", p); err != nil {
		return nil, err
	}
	if err := requireKind("ImplIntro", a, KindAxiom); err != nil {
		return nil, err
	}
	return newStep(KindImplIntro, p, a, nil), nil
}

// NewImplElim builds ⇒-Elim(p, q).
func NewImplElim(p, q *Step) (*Step, error) {
	if err := requireOperand("ImplElim", p); err != nil {
		return nil, err
	}
	if err := requireOperand("ImplElim", q); err != nil {
		return nil, err
	}
	return newStep(KindImplElim, p, q, nil), nil
}

// NewIffIntro builds ⇔-Intro(p, q).
func NewIffIntro(p, q *Step) (*Step, error) {
	if err := requireOperand("IffIntro", p); err != nil {
		return nil, err
	}
	if err := requireOperand("IffIntro", q); err != nil {
		return nil, err
	}
	return newStep(KindIffIntro, p, q, nil), nil
}

// NewIffElimL builds ⇔-Elim-L(p, q).
func NewIffElimL(p, q *Step) (*Step, error) {
	if err := requireOperand("IffElimL", p); err != nil {
		return nil, err
	}
	if err := requireOperand("IffElimL", q); err != nil {
		return nil, err
	}
	return newStep(KindIffElimL, p, q, nil), nil
}

// NewIffElimR builds ⇔-Elim-R(p, q).
func NewIffElimR(p, q *Step) (*Step, error) {
	if err := requireOperand("IffElimR", p); err != nil {
		return nil, err
	}
	if err := requireOperand("IffElimR", q); err != nil {
		return nil, err
	}
	return newStep(KindIffElimR, p, q, nil), nil
}

// NewContradiction builds the proof-by-contradiction step (p, a); a must be
// an Axiom.
func NewContradiction(p, a *Step) (*Step, error) {
	if err := requireOperand("Contradiction", p); err != nil {
		return nil, err
	}
	if err := requireKind("Contradiction", a, KindAxiom); err != nil {
		return nil, err
	}
	return newStep(KindContradiction, p, a, nil), nil
}

// NewNotElim builds ¬-Elim(p, q).
func NewNotElim(p, q *Step) (*Step, error) {
	if err := requireOperand("NotElim", p); err != nil {
		return nil, err
	}
	if err := requireOperand("NotElim", q); err != nil {
		return nil, err
	}
	return newStep(KindNotElim, p, q, nil), nil
}

// NewForAllIntro builds ∀-Intro(p, k); k must be a Parameter.
func NewForAllIntro(p, k *Step) (*Step, error) {
	if err := requireOperand("ForAllIntro", p); err != nil {
		return nil, err
	}
	if err := requireKind("ForAllIntro", k, KindParameter); err != nil {
		return nil, err
	}
	return newStep(KindForAllIntro, p, k, nil), nil
}

// NewForAllElim builds ∀-Elim(p, t); t must be a TermParameter.
func NewForAllElim(p, t *Step) (*Step, error) {
	if err := requireOperand("ForAllElim", p); err != nil {
		return nil, err
	}
	if err := requireKind("ForAllElim", t, KindTermParameter); err != nil {
		return nil, err
	}
	return newStep(KindForAllElim, p, t, nil), nil
}

// NewExistsIntro builds ∃-Intro(p, idx); idx must be an ArrayParameter.
func NewExistsIntro(p, idx *Step) (*Step, error) {
	if err := requireOperand("ExistsIntro", p); err != nil {
		return nil, err
	}
	if err := requireKind("ExistsIntro", idx, KindArrayParameter); err != nil {
		return nil, err
	}
	return newStep(KindExistsIntro, p, idx, nil), nil
}

// NewExistsElim builds ∃-Elim(p, q).
func NewExistsElim(p, q *Step) (*Step, error) {
	if err := requireOperand("ExistsElim", p); err != nil {
		return nil, err
	}
	if err := requireOperand("ExistsElim", q); err != nil {
		return nil, err
	}
	return newStep(KindExistsElim, p, q, nil), nil
}
