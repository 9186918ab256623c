package proof

import (
	"github.com/orizon-lang/holcore/internal/canon"
	"github.com/orizon-lang/holcore/internal/reasonerr"
	"github.com/orizon-lang/holcore/internal/term"
)

// CheckerConfig controls the checker's one behavioral toggle.
type CheckerConfig struct {
	// CanonicalizeConclusions, when true, passes every reconstructed
	// conclusion through internal/canon before storing it in the node's
	// state.
	CanonicalizeConclusions bool
	Canon                   canon.Config
}

// Checker rebuilds proof state bottom-up over a DAG's topological order and
// validates every rule application.
type Checker struct {
	store *term.Store
	cfg   CheckerConfig
}

// NewChecker creates a checker bound to store (needed to rebuild
// conclusions) and cfg.
func NewChecker(store *term.Store, cfg CheckerConfig) *Checker {
	return &Checker{store: store, cfg: cfg}
}

// Check validates root's entire proof DAG and returns the state computed at
// root, or the first rule failure encountered during the bottom-up pass.
func (c *Checker) Check(root *Step) (State, error) {
	nodes, reachable := collectReachable(root)

	inDegree := make(map[*Step]int, len(nodes))
	queue := make([]*Step, 0, len(nodes))
	for _, n := range nodes {
		inDegree[n] = operandCount(n)
		if inDegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	states := make(map[*Step]State, len(nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		st, err := c.evaluate(n, states)
		if err != nil {
			return State{}, err
		}
		states[n] = st

		for _, child := range n.children {
			if !reachable[child] {
				continue
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	final, ok := states[root]
	if !ok {
		return State{}, reasonerr.Cycle("proof checker")
	}
	return final, nil
}

func operandCount(s *Step) int {
	n := 0
	for _, op := range []*Step{s.op0, s.op1, s.op2} {
		if op != nil {
			n++
		}
	}
	return n
}

func collectReachable(root *Step) ([]*Step, map[*Step]bool) {
	seen := map[*Step]bool{}
	var order []*Step

	var visit func(*Step)
	visit = func(s *Step) {
		if s == nil || seen[s] {
			return
		}
		seen[s] = true
		visit(s.op0)
		visit(s.op1)
		visit(s.op2)
		order = append(order, s)
	}
	visit(root)

	return order, seen
}

func (c *Checker) finish(a Assumptions, concl term.Term) (State, error) {
	if c.cfg.CanonicalizeConclusions {
		canonical, err := canon.Canonicalize(c.store, concl, c.cfg.Canon)
		if err != nil {
			return State{}, err
		}
		concl = canonical
	}
	return State{Assumptions: a, Conclusion: concl}, nil
}

func (c *Checker) evaluate(n *Step, states map[*Step]State) (State, error) {
	switch n.kind {
	case KindAxiom:
		a := newAssumptions()
		a.add(n.formula)
		return State{Assumptions: a, Conclusion: n.formula}, nil

	case KindParameter, KindArrayParameter, KindTermParameter, KindFormulaParameter:
		return State{Assumptions: newAssumptions()}, nil

	case KindAndIntro:
		s0, s1 := states[n.op0], states[n.op1]
		return c.finish(unionAssumptions(s0.Assumptions, s1.Assumptions), c.store.NewAnd(s0.Conclusion, s1.Conclusion))

	case KindAndElimL:
		s0 := states[n.op0]
		if s0.Conclusion.Kind() != term.KindAnd || s0.Conclusion.Len() < 2 {
			return State{}, reasonerr.StructuralMismatch("AndElimL", "operand conclusion is not a conjunction")
		}
		return c.finish(s0.Assumptions, s0.Conclusion.Args()[0])

	case KindAndElimR:
		s0 := states[n.op0]
		if s0.Conclusion.Kind() != term.KindAnd || s0.Conclusion.Len() < 2 {
			return State{}, reasonerr.StructuralMismatch("AndElimR", "operand conclusion is not a conjunction")
		}
		args := s0.Conclusion.Args()
		return c.finish(s0.Assumptions, args[len(args)-1])

	case KindOrIntroL:
		s0 := states[n.op0]
		psi := n.op1.formula
		return c.finish(s0.Assumptions, c.store.NewOr(psi, s0.Conclusion))

	case KindOrIntroR:
		s0 := states[n.op0]
		psi := n.op1.formula
		return c.finish(s0.Assumptions, c.store.NewOr(s0.Conclusion, psi))

	case KindOrElim:
		return c.evaluateOrElim(n, states)

	case KindImplIntro:
		s0, sa := states[n.op0], states[n.op1]
		a := s0.Assumptions.clone()
		a.removeAll(sa.Conclusion)
		return c.finish(a, c.store.NewIfThen(sa.Conclusion, s0.Conclusion))

	case KindImplElim:
		s0, s1 := states[n.op0], states[n.op1]
		if s0.Conclusion.Kind() != term.KindIfThen {
			return State{}, reasonerr.StructuralMismatch("ImplElim", "first operand's conclusion is not an implication")
		}
		if s0.Conclusion.Antecedent().ID() != s1.Conclusion.ID() {
			return State{}, reasonerr.StructuralMismatch("ImplElim", "antecedent does not match second operand's conclusion")
		}
		return c.finish(unionAssumptions(s0.Assumptions, s1.Assumptions), s0.Conclusion.Consequent())

	case KindIffIntro:
		return c.evaluateIffIntro(n, states)

	case KindIffElimL:
		return c.evaluateIffElim(n, states, true)

	case KindIffElimR:
		return c.evaluateIffElim(n, states, false)

	case KindContradiction:
		s0, sa := states[n.op0], states[n.op1]
		if s0.Conclusion.Kind() != term.KindFalse {
			return State{}, reasonerr.StructuralMismatch("Contradiction", "operand conclusion is not False")
		}
		if sa.Conclusion.Kind() != term.KindNot {
			return State{}, reasonerr.OperandKindMismatch("Contradiction", "axiom operand is not a negation")
		}
		a := s0.Assumptions.clone()
		a.removeAll(sa.Conclusion)
		return c.finish(a, sa.Conclusion.Not())

	case KindNotElim:
		s0, s1 := states[n.op0], states[n.op1]
		if s1.Conclusion.Kind() != term.KindNot || s1.Conclusion.Not().ID() != s0.Conclusion.ID() {
			return State{}, reasonerr.StructuralMismatch("NotElim", "second operand does not negate the first")
		}
		return c.finish(unionAssumptions(s0.Assumptions, s1.Assumptions), c.store.False())

	case KindForAllIntro:
		return c.evaluateForAllIntro(n, states)

	case KindForAllElim:
		s0 := states[n.op0]
		if s0.Conclusion.Kind() != term.KindForAll {
			return State{}, reasonerr.StructuralMismatch("ForAllElim", "operand conclusion is not universally quantified")
		}
		body := term.Substitute(s0.Conclusion.Body(), s0.Conclusion.Symbol(), n.op1.termParam)
		return c.finish(s0.Assumptions, body)

	case KindExistsIntro:
		s0 := states[n.op0]
		fresh := maxSymbol(s0.Conclusion) + 1
		abstracted, ok := term.AbstractOccurrences(s0.Conclusion, n.op1.params, fresh)
		if !ok {
			return State{}, reasonerr.StructuralMismatch("ExistsIntro", "indices do not denote identical subterms")
		}
		return c.finish(s0.Assumptions, c.store.NewExists(fresh, abstracted))

	case KindExistsElim:
		return c.evaluateExistsElim(n, states)

	default:
		return State{}, reasonerr.StructuralMismatch("Check", "unknown step kind")
	}
}

func (c *Checker) evaluateOrElim(n *Step, states map[*Step]State) (State, error) {
	s0, s1, s2 := states[n.op0], states[n.op1], states[n.op2]
	if s0.Conclusion.Kind() != term.KindOr || s0.Conclusion.Len() != 2 {
		return State{}, reasonerr.StructuralMismatch("OrElim", "first operand's conclusion is not a binary disjunction")
	}
	if s1.Conclusion.ID() != s2.Conclusion.ID() {
		return State{}, reasonerr.StructuralMismatch("OrElim", "case branches reach different conclusions")
	}

	left, right := s0.Conclusion.Args()[0], s0.Conclusion.Args()[1]

	a1 := s1.Assumptions.clone()
	a1.removeAll(left)
	a2 := s2.Assumptions.clone()
	a2.removeAll(right)

	return c.finish(unionAssumptions(unionAssumptions(s0.Assumptions, a1), a2), s1.Conclusion)
}

func (c *Checker) evaluateIffIntro(n *Step, states map[*Step]State) (State, error) {
	s0, s1 := states[n.op0], states[n.op1]
	if s0.Conclusion.Kind() != term.KindIfThen || s1.Conclusion.Kind() != term.KindIfThen {
		return State{}, reasonerr.StructuralMismatch("IffIntro", "both operands must conclude an implication")
	}
	if s0.Conclusion.Antecedent().ID() != s1.Conclusion.Consequent().ID() ||
		s0.Conclusion.Consequent().ID() != s1.Conclusion.Antecedent().ID() {
		return State{}, reasonerr.StructuralMismatch("IffIntro", "implications are not cross-matched")
	}
	return c.finish(unionAssumptions(s0.Assumptions, s1.Assumptions),
		c.store.NewIff(s0.Conclusion.Antecedent(), s0.Conclusion.Consequent()))
}

func (c *Checker) evaluateIffElim(n *Step, states map[*Step]State, left bool) (State, error) {
	s0, s1 := states[n.op0], states[n.op1]
	if s0.Conclusion.Kind() != term.KindIff || s0.Conclusion.Len() != 2 {
		return State{}, reasonerr.StructuralMismatch("IffElim", "first operand's conclusion is not a binary biconditional")
	}

	args := s0.Conclusion.Args()
	given, other := args[0], args[1]
	if !left {
		given, other = args[1], args[0]
	}

	if s1.Conclusion.ID() != given.ID() {
		return State{}, reasonerr.StructuralMismatch("IffElim", "second operand does not match the expected side")
	}

	return c.finish(unionAssumptions(s0.Assumptions, s1.Assumptions), other)
}

func (c *Checker) evaluateForAllIntro(n *Step, states map[*Step]State) (State, error) {
	s0 := states[n.op0]
	k := n.op1.param

	for _, a := range s0.Assumptions.List() {
		if term.OccursParameter(a, k) {
			return State{}, reasonerr.ParameterEscapes(k)
		}
	}

	fresh := maxSymbol(s0.Conclusion) + 1
	body := term.ReplaceParameter(s0.Conclusion, k, fresh)
	return c.finish(s0.Assumptions, c.store.NewForAll(fresh, body))
}

func (c *Checker) evaluateExistsElim(n *Step, states map[*Step]State) (State, error) {
	s0, s1 := states[n.op0], states[n.op1]
	if s0.Conclusion.Kind() != term.KindExists {
		return State{}, reasonerr.StructuralMismatch("ExistsElim", "first operand's conclusion is not existentially quantified")
	}

	body, v := s0.Conclusion.Body(), s0.Conclusion.Symbol()

	a1 := s1.Assumptions.clone()
	matched := false
	for _, candidate := range s1.Assumptions.List() {
		if _, ok := matchWitness(body, candidate, v); ok {
			a1.removeAll(candidate)
			matched = true
		}
	}
	if !matched {
		return State{}, reasonerr.AssumptionNotDischarged("ExistsElim")
	}

	return c.finish(unionAssumptions(s0.Assumptions, a1), s1.Conclusion)
}
