package proof

import "math"

// numRuleKinds is the size of the fixed inference-rule alphabet a step is
// drawn from, leaves included.
const numRuleKinds = int(KindExistsElim) + 1

// LogProbability computes a proof's log-probability under an exchangeable
// prior: for every step, in canonical order, a fixed log(1/N_rules)
// rule-selection term, a log(step_counter) length term penalizing longer
// proofs, and a rule-specific prior described below.
//
// Introduced parameters (∀-Intro's fresh k) and eliminated terms
// (∀-Elim's witness term, ∃-Elim's matched witness parameter) are priced
// uniform over the parameters available at that point in the canonical
// order — the ones already bound by an earlier ∀-Intro or referenced by an
// earlier Parameter leaf. Axioms carry no further term beyond the fixed
// rule-selection cost: nothing here tracks a corpus of candidate
// hypotheses to be uniform over.
func LogProbability(root *Step) float64 {
	order := CanonicalOrder(root)

	available := map[uint32]bool{}
	total := 0.0

	for i, s := range order {
		stepNumber := i + 1
		total += math.Log(1.0 / float64(numRuleKinds))
		total += math.Log(float64(stepNumber))
		total += rulePrior(s, available)

		switch s.kind {
		case KindParameter:
			available[s.param] = true
		case KindForAllIntro:
			available[s.op1.param] = true
		}
	}

	return total
}

// rulePrior returns the rule-specific prior contribution for s, given the
// set of parameters introduced so far in canonical order.
func rulePrior(s *Step, available map[uint32]bool) float64 {
	switch s.kind {
	case KindForAllIntro:
		return uniformOverAvailable(available)
	case KindForAllElim:
		return uniformOverAvailable(available)
	case KindExistsElim:
		return uniformOverAvailable(available)
	default:
		return 0
	}
}

func uniformOverAvailable(available map[uint32]bool) float64 {
	n := len(available)
	if n == 0 {
		// No parameter has been introduced yet; fall back to a unit prior
		// rather than dividing by zero.
		return 0
	}
	return math.Log(1.0 / float64(n))
}
