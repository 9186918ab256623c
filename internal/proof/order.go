package proof

import (
	"github.com/orizon-lang/holcore/internal/collections"
	"github.com/orizon-lang/holcore/internal/term"
)

// CanonicalOrder returns root's DAG in canonical topological order: a
// priority-queue-driven Kahn's traversal that, among all currently
// available (in-degree zero) nodes, always picks the least under
// compareStep. Determinism here is what makes CanonicalOrder and
// LogProbability reproducible across runs on the same proof.
func CanonicalOrder(root *Step) []*Step {
	nodes, reachable := collectReachable(root)

	inDegree := make(map[*Step]int, len(nodes))
	pq := collections.NewPriorityQueue(func(a, b *Step) bool { return compareStep(a, b) < 0 })

	for _, n := range nodes {
		inDegree[n] = operandCount(n)
		if inDegree[n] == 0 {
			pq.Push(n)
		}
	}

	order := make([]*Step, 0, len(nodes))
	for pq.Len() > 0 {
		n := pq.Pop()
		order = append(order, n)

		for _, child := range n.children {
			if !reachable[child] {
				continue
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				pq.Push(child)
			}
		}
	}

	return order
}

// compareStep imposes a total order over proof steps, the same shape as
// term.Compare's order over terms: first by variant tag, then
// lexicographically by literal payload or operands. nil operands sort
// before any real step.
func compareStep(a, b *Step) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if a.kind != b.kind {
		return int(a.kind) - int(b.kind)
	}

	switch a.kind {
	case KindAxiom, KindFormulaParameter:
		return term.Compare(a.formula, b.formula)
	case KindParameter:
		return cmpU32(a.param, b.param)
	case KindArrayParameter:
		return cmpU32Slice(a.params, b.params)
	case KindTermParameter:
		return term.Compare(a.termParam, b.termParam)
	default:
		if c := compareStep(a.op0, b.op0); c != 0 {
			return c
		}
		if c := compareStep(a.op1, b.op1); c != 0 {
			return c
		}
		return compareStep(a.op2, b.op2)
	}
}

func cmpU32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpU32Slice(a, b []uint32) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := cmpU32(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}
