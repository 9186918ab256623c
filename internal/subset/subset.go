// Package subset implements is_subset: a sound but incomplete syntactic
// decision procedure over canonical terms, used by the set lattice
// (internal/lattice) to add intensional edges. It is deliberately narrow:
// only And/Or/Not/atom shapes are handled, matching the forms a
// canonicalized formula naming a set can actually take among the ones this
// decider recognizes. Other connectives and quantifiers report Unknown.
package subset

import "github.com/orizon-lang/holcore/internal/term"

// Result is the three-valued outcome is_subset can report: the decider is
// sound (True/False are trustworthy) but incomplete (Unknown means "could
// not tell", not "false").
type Result uint8

const (
	Unknown Result = iota
	True
	False
)

func (r Result) String() string {
	switch r {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// IsSubset decides whether {x | a(x)} ⊆ {x | b(x)} for canonical terms a, b.
func IsSubset(a, b term.Term) Result {
	switch {
	case isTrue(a):
		return boolResult(isTrue(b))
	case isTrue(b):
		return True
	case isFalse(a):
		return True
	case isFalse(b):
		return boolResult(isFalse(a))
	}

	if a.Kind() == term.KindNot && b.Kind() == term.KindNot {
		return IsSubset(b.Not(), a.Not())
	}

	if a.Kind() == term.KindAnd || b.Kind() == term.KindAnd {
		return subsetOfConjunction(a, b)
	}

	if a.Kind() == term.KindOr || b.Kind() == term.KindOr {
		return subsetOfDisjunction(a, b)
	}

	return structuralEqual(a, b)
}

func isTrue(t term.Term) bool  { return t.Kind() == term.KindTrue }
func isFalse(t term.Term) bool { return t.Kind() == term.KindFalse }

func boolResult(b bool) Result {
	if b {
		return True
	}
	return False
}

// literalsOf returns t's operand list if t.Kind() == kind, or a singleton
// list containing t itself if t is not that connective (a bare literal is
// treated as a one-element conjunction or disjunction of itself).
func literalsOf(t term.Term, kind term.Kind) []term.Term {
	if t.Kind() == kind {
		return t.Args()
	}
	return []term.Term{t}
}

// subsetOfConjunction handles the And case: {x|A} ⊆ {x|B} when every
// literal of B is either present in A or implied by some literal of A.
func subsetOfConjunction(a, b term.Term) Result {
	as := literalsOf(a, term.KindAnd)
	bs := literalsOf(b, term.KindAnd)

	for _, bl := range bs {
		if !impliedByAny(as, bl) {
			return Unknown
		}
	}
	return True
}

// subsetOfDisjunction is And's dual: {x|A} ⊆ {x|B} when every literal of A
// is either present in B or implies some literal of B.
func subsetOfDisjunction(a, b term.Term) Result {
	as := literalsOf(a, term.KindOr)
	bs := literalsOf(b, term.KindOr)

	for _, al := range as {
		if !impliesAny(al, bs) {
			return Unknown
		}
	}
	return True
}

func impliedByAny(as []term.Term, target term.Term) bool {
	for _, al := range as {
		if IsSubset(al, target) == True {
			return true
		}
	}
	return false
}

func impliesAny(al term.Term, bs []term.Term) bool {
	for _, bl := range bs {
		if IsSubset(al, bl) == True {
			return true
		}
	}
	return false
}

// structuralEqual is the fallback for atoms, applications, and any other
// connective this decider doesn't specialize: identical canonical terms
// name the same set and are trivially subsets of each other; anything else
// is Unknown, since is_subset is sound but not complete.
func structuralEqual(a, b term.Term) Result {
	if a.ID() == b.ID() {
		return True
	}
	return Unknown
}
