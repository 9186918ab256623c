package lattice

import (
	"github.com/orizon-lang/holcore/internal/reasonerr"
	"github.com/orizon-lang/holcore/internal/term"
)

// AddSubset asserts antecedent ⊆ consequent extensionally: an E edge from
// consequent (the superset) to antecedent (the subset). Consistency is
// verified afterward by recomputing consequent's bounds; a forced upper
// bound below the forced lower bound is an inconsistency.
func (g *Graph) AddSubset(antecedent, consequent VertexID) error {
	if err := g.checkLive(antecedent); err != nil {
		return err
	}
	if err := g.checkLive(consequent); err != nil {
		return err
	}

	g.addEdge(Extensional, consequent, antecedent)

	lower, upper := g.Bounds(consequent)
	g.cfg.Observer.OnBoundsRecomputed(consequent, lower, upper)

	if upper != Unbounded && upper < lower {
		return reasonerr.Inconsistent("forced upper bound below forced lower bound after add_subset")
	}
	return nil
}

// RemoveSubset retracts a previously asserted extensional subset edge, then
// garbage-collects either endpoint if it becomes freeable.
func (g *Graph) RemoveSubset(antecedent, consequent VertexID) error {
	if err := g.checkLive(antecedent); err != nil {
		return err
	}
	if err := g.checkLive(consequent); err != nil {
		return err
	}

	g.removeEdgeIfPresent(Extensional, consequent, antecedent)

	g.maybeFree(antecedent)
	g.maybeFree(consequent)
	return nil
}

func (g *Graph) addEdge(kind EdgeKind, parent, child VertexID) {
	p, c := g.vertices[parent], g.vertices[child]

	switch kind {
	case Extensional:
		if containsVertex(p.extChildren, child) {
			return
		}
		p.extChildren = append(p.extChildren, child)
		c.extParents = append(c.extParents, parent)
	case Intensional:
		if containsVertex(p.intChildren, child) {
			return
		}
		p.intChildren = append(p.intChildren, child)
		c.intParents = append(c.intParents, parent)
	}

	g.cfg.Observer.OnEdgeAdded(kind, parent, child)
}

func (g *Graph) removeEdgeIfPresent(kind EdgeKind, parent, child VertexID) {
	p, c := g.vertices[parent], g.vertices[child]

	switch kind {
	case Extensional:
		if !removeVertex(&p.extChildren, child) {
			return
		}
		removeVertex(&c.extParents, parent)
	case Intensional:
		if !removeVertex(&p.intChildren, child) {
			return
		}
		removeVertex(&c.intParents, parent)
	}

	g.cfg.Observer.OnEdgeRemoved(kind, parent, child)
}

// maybeFree frees id when it carries no incident edge in either the
// extensional or intensional relation and is not fixed-size. No per-vertex
// reference count is kept, so a caller holding a stale VertexID after this
// point gets UnknownVertex on next use.
func (g *Graph) maybeFree(id VertexID) {
	if id == NoVertex || int(id) >= len(g.vertices) {
		return
	}

	v := g.vertices[id]
	if !v.live || v.fixed {
		return
	}
	if len(v.extParents)+len(v.extChildren)+len(v.intParents)+len(v.intChildren) > 0 {
		return
	}

	delete(g.byFormula, v.formula.ID())
	v.live = false
	v.formula = term.Term{} // no live vertex may report a formula once freed

	g.cfg.Observer.OnVertexFreed(id)
}

func containsVertex(ids []VertexID, id VertexID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// removeVertex deletes the first occurrence of id from *ids, reporting
// whether it was present.
func removeVertex(ids *[]VertexID, id VertexID) bool {
	for i, x := range *ids {
		if x == id {
			*ids = append((*ids)[:i], (*ids)[i+1:]...)
			return true
		}
	}
	return false
}
