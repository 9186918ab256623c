package lattice

import (
	"github.com/orizon-lang/holcore/internal/canon"
	"github.com/orizon-lang/holcore/internal/reasonerr"
	"github.com/orizon-lang/holcore/internal/term"
)

// SetSize sets id's size, failing with BoundViolation if n falls outside
// id's currently computable [lower, upper] bound.
func (g *Graph) SetSize(id VertexID, n uint32) error {
	if err := g.checkLive(id); err != nil {
		return err
	}

	lower, upper := g.Bounds(id)
	if uint64(n) < lower || (upper != Unbounded && uint64(n) > upper) {
		return reasonerr.BoundViolation(uint32(id), uint64(n), lower, upper)
	}

	g.vertices[id].size = n
	return nil
}

// ForceSetSize sets id's size unconditionally, even outside its computed
// bounds. It does not attempt to reconcile the sizes of surrounding sets —
// the caller is expected to re-derive consistency itself (e.g. by
// re-running AddSubset checks) if a forced size leaves the graph
// inconsistent.
func (g *Graph) ForceSetSize(id VertexID, n uint32) error {
	if err := g.checkLive(id); err != nil {
		return err
	}
	g.vertices[id].size = n
	return nil
}

// AreDisjoint reports whether u and v denote disjoint sets: their canonical
// conjunction is False, or names the empty-set vertex.
func (g *Graph) AreDisjoint(u, v VertexID) (bool, error) {
	if err := g.checkLive(u); err != nil {
		return false, err
	}
	if err := g.checkLive(v); err != nil {
		return false, err
	}

	intersection := g.store.NewAnd(g.vertices[u].formula, g.vertices[v].formula)
	canonical, err := canon.Canonicalize(g.store, intersection, g.cfg.Canon)
	if err != nil {
		return false, err
	}

	if canonical.Kind() == term.KindFalse {
		return true, nil
	}
	if id, ok := g.byFormula[canonical.ID()]; ok {
		return id == g.emptySet, nil
	}
	return false, nil
}

// Bounds computes id's current [lower, upper] size bound via a
// maximal-disjoint-clique search over the combined extensional and
// intensional graph.
func (g *Graph) Bounds(id VertexID) (lower, upper uint64) {
	descendants := g.transitiveChildren(id)
	lower, _ = g.maxWeightDisjointClique(descendants)

	ancestors := g.transitiveParents(id)
	if len(ancestors) == 0 {
		return lower, Unbounded
	}

	upper = Unbounded
	for _, a := range ancestors {
		candidates := g.transitiveChildren(a)

		var filtered []VertexID
		for _, x := range candidates {
			if x == id || g.reaches(x, id) {
				continue
			}
			filtered = append(filtered, x)
		}

		weight, _ := g.maxWeightDisjointClique(filtered)
		aSize := uint64(g.vertices[a].size)

		var candidateUpper uint64
		if weight < aSize {
			candidateUpper = aSize - weight
		}

		if candidateUpper < upper {
			upper = candidateUpper
		}
	}

	return lower, upper
}

func (g *Graph) allChildren(id VertexID) []VertexID {
	v := g.vertices[id]
	return dedupeVertices(v.extChildren, v.intChildren)
}

func (g *Graph) allParents(id VertexID) []VertexID {
	v := g.vertices[id]
	return dedupeVertices(v.extParents, v.intParents)
}

func dedupeVertices(a, b []VertexID) []VertexID {
	seen := make(map[VertexID]bool, len(a)+len(b))
	var out []VertexID
	for _, id := range a {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range b {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// transitiveChildren returns every vertex reachable from id via child edges
// in E ∪ I, excluding id itself.
func (g *Graph) transitiveChildren(id VertexID) []VertexID {
	return g.reachable(id, g.allChildren)
}

// transitiveParents is transitiveChildren's dual over parent edges.
func (g *Graph) transitiveParents(id VertexID) []VertexID {
	return g.reachable(id, g.allParents)
}

func (g *Graph) reachable(id VertexID, next func(VertexID) []VertexID) []VertexID {
	seen := map[VertexID]bool{id: true}
	queue := next(id)
	var out []VertexID

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
		queue = append(queue, next(n)...)
	}

	return out
}

// reaches reports whether target is reachable from start via child edges,
// i.e. start is one of target's ancestors (start "contains" target).
func (g *Graph) reaches(start, target VertexID) bool {
	for _, id := range g.transitiveChildren(start) {
		if id == target {
			return true
		}
	}
	return false
}
