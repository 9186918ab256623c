package lattice

import "github.com/orizon-lang/holcore/internal/term"

// Observer is an optional hook a caller attaches to a Graph to be notified
// of vertex and edge mutations. It changes no invariant of the graph itself;
// a Graph with no Observer configured behaves exactly as one with noopObserver.
type Observer interface {
	OnVertexCreated(id VertexID, formula term.Term)
	OnVertexFreed(id VertexID)
	OnEdgeAdded(kind EdgeKind, from, to VertexID)
	OnEdgeRemoved(kind EdgeKind, from, to VertexID)
	OnBoundsRecomputed(id VertexID, lower, upper uint64)
}

type noopObserver struct{}

func (noopObserver) OnVertexCreated(VertexID, term.Term)         {}
func (noopObserver) OnVertexFreed(VertexID)                      {}
func (noopObserver) OnEdgeAdded(EdgeKind, VertexID, VertexID)    {}
func (noopObserver) OnEdgeRemoved(EdgeKind, VertexID, VertexID)  {}
func (noopObserver) OnBoundsRecomputed(VertexID, uint64, uint64) {}
