// Package reasonerr implements the error taxonomy of the reasoning core:
// every error returned by hol, canon, proof, and lattice is one of these
// typed errors rather than a bare errors.New. Package term reports failure
// with an ok flag, and package subset with its three-valued Result.
package reasonerr

import "fmt"

// Category is the top-level classification of a reasoning-core error.
type Category string

const (
	CategoryParse            Category = "PARSE"
	CategoryType             Category = "TYPE"
	CategoryCanonicalization Category = "CANONICALIZATION"
	CategoryProof            Category = "PROOF"
	CategoryLattice          Category = "LATTICE"
	CategoryMemory           Category = "MEMORY"
)

// Error is the concrete type behind every error this module returns.
type Error struct {
	Category Category
	Code     string
	Message  string
	Context  map[string]any
}

func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
	}

	return fmt.Sprintf("[%s:%s] %s %v", e.Category, e.Code, e.Message, e.Context)
}

func new(cat Category, code, msg string, ctx map[string]any) *Error {
	return &Error{Category: cat, Code: code, Message: msg, Context: ctx}
}

// ---- TypeError -----------------------------------------------------------

// IllTyped reports a subterm whose expected and actual types disagree.
func IllTyped(subterm, expected, actual string) *Error {
	return new(CategoryType, "ILL_TYPED", "subterm is ill-typed", map[string]any{
		"subterm": subterm, "expected": expected, "actual": actual,
	})
}

// InfiniteType reports a type variable cycle through a function constructor.
func InfiniteType(subterm string) *Error {
	return new(CategoryType, "INFINITE_TYPE", "infinite type detected", map[string]any{
		"subterm": subterm,
	})
}

// UnknownSymbol reports a reference to an unbound variable or symbol.
func UnknownSymbol(id uint32) *Error {
	return new(CategoryType, "UNKNOWN_SYMBOL", "unknown symbol", map[string]any{"id": id})
}

// ---- CanonicalizationError -------------------------------------------------

// Cycle reports a cycle encountered where none is expected, indicating a
// caller invariant violation (terms are acyclic by construction).
func Cycle(where string) *Error {
	return new(CategoryCanonicalization, "CYCLE", "unexpected cycle in term graph", map[string]any{"where": where})
}

// ---- ProofError ------------------------------------------------------------

// StructuralMismatch reports that an operand's conclusion did not have the
// expected top-level connective.
func StructuralMismatch(rule, detail string) *Error {
	return new(CategoryProof, "STRUCTURAL_MISMATCH", "structural mismatch", map[string]any{
		"rule": rule, "detail": detail,
	})
}

// AssumptionNotDischarged reports that a discharge rule's target hypothesis
// was not present in the assumption multiset it claims to discharge.
func AssumptionNotDischarged(rule string) *Error {
	return new(CategoryProof, "ASSUMPTION_NOT_DISCHARGED", "assumption not discharged", map[string]any{"rule": rule})
}

// ParameterEscapes reports that ∀-Introduction's eigenparameter is still
// free in the surviving assumptions.
func ParameterEscapes(param uint32) *Error {
	return new(CategoryProof, "PARAMETER_ESCAPES", "parameter escapes into assumptions", map[string]any{"parameter": param})
}

// OperandKindMismatch reports a constructor or rule invoked with an operand
// of the wrong kind (e.g. ⇒-Introduction's second operand not an Axiom).
func OperandKindMismatch(rule, detail string) *Error {
	return new(CategoryProof, "OPERAND_KIND_MISMATCH", "operand kind mismatch", map[string]any{
		"rule": rule, "detail": detail,
	})
}

// ---- LatticeError ----------------------------------------------------------

// BoundViolation reports a set_size outside its currently computable
// [lower, upper] bound.
func BoundViolation(id uint32, size, lower, upper uint64) *Error {
	return new(CategoryLattice, "BOUND_VIOLATION", "size outside computed bounds", map[string]any{
		"id": id, "size": size, "lower": lower, "upper": upper,
	})
}

// Inconsistent reports a forced upper bound below a forced lower bound after
// a subset edge insertion.
func Inconsistent(detail string) *Error {
	return new(CategoryLattice, "INCONSISTENT", "lattice inconsistency", map[string]any{"detail": detail})
}

// UnknownVertex reports a VertexID that does not (or no longer) name a live
// vertex.
func UnknownVertex(id uint32) *Error {
	return new(CategoryLattice, "UNKNOWN_VERTEX", "unknown or freed vertex", map[string]any{"id": id})
}

// ---- MemoryError -----------------------------------------------------------

// AllocationFailed reports an arena or refcount-path allocation failure.
func AllocationFailed(where string) *Error {
	return new(CategoryMemory, "ALLOCATION_FAILED", "allocation failed", map[string]any{"where": where})
}
