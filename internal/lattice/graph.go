// Package lattice implements the set-lattice reasoner: a graph of named
// sets, keyed by canonicalized HOL formulas, carrying size attributes
// and two parallel edge relations — intensional (discovered by
// formula-subsumption) and extensional (asserted by proofs) — plus
// propagation of lower/upper size bounds via maximal-disjoint-clique search.
//
// Vertices live in an append-only arena indexed by VertexID, mirroring
// term.Store's u32-handle arena: a session's lattice is private to it, and a
// VertexID from one Graph is never comparable to one from another.
package lattice

import (
	"github.com/orizon-lang/holcore/internal/canon"
	"github.com/orizon-lang/holcore/internal/reasonerr"
	"github.com/orizon-lang/holcore/internal/subset"
	"github.com/orizon-lang/holcore/internal/term"
)

// VertexID is an arena handle into a Graph. The zero value, NoVertex, never
// denotes a live vertex.
type VertexID uint32

// NoVertex is the reserved "no vertex" handle.
const NoVertex VertexID = 0

// Unbounded represents an infinite upper bound.
const Unbounded uint64 = ^uint64(0)

// EdgeKind distinguishes the graph's two parallel ⊆ relations.
type EdgeKind uint8

const (
	Extensional EdgeKind = iota
	Intensional
)

func (k EdgeKind) String() string {
	if k == Extensional {
		return "extensional"
	}
	return "intensional"
}

// vertex is one arena slot. Both edge relations are directed from a
// superset (parent) to a subset (child), so "children" always means
// "immediate known subsets" and "parents" always means "immediate known
// supersets" regardless of which relation the edge belongs to.
type vertex struct {
	formula term.Term
	size    uint32
	fixed   bool
	live    bool

	extParents, extChildren []VertexID
	intParents, intChildren []VertexID
}

// Config controls a Graph's canonicalization and clique-search behavior.
type Config struct {
	Canon canon.Config
	// MinPriority prunes clique-search branches whose remaining potential
	// falls below this weight.
	MinPriority uint64
	Observer    Observer
}

// Graph is a set-lattice: named sets over canonical HOL formulas, with
// extensional and intensional subset edges and computed size bounds.
type Graph struct {
	store *term.Store
	cfg   Config

	vertices  []*vertex // index 0 reserved
	byFormula map[term.ID]VertexID

	emptySet VertexID
}

// NewGraph creates an empty lattice with its singleton empty-set vertex
// (formula False, size 0, fixed) already interned.
func NewGraph(store *term.Store, cfg Config) *Graph {
	if cfg.Observer == nil {
		cfg.Observer = noopObserver{}
	}

	g := &Graph{
		store:     store,
		cfg:       cfg,
		vertices:  make([]*vertex, 1, 64),
		byFormula: make(map[term.ID]VertexID, 64),
	}

	falseFormula := store.False()
	g.emptySet = g.allocate(falseFormula)
	v := g.vertices[g.emptySet]
	v.size = 0
	v.fixed = true

	g.cfg.Observer.OnVertexCreated(g.emptySet, falseFormula)

	return g
}

// EmptySet returns the id of the singleton empty-set vertex.
func (g *Graph) EmptySet() VertexID { return g.emptySet }

// Info returns the current SetInfo for id, or an error if id does not name
// a live vertex.
func (g *Graph) Info(id VertexID) (SetInfo, error) {
	if err := g.checkLive(id); err != nil {
		return SetInfo{}, err
	}
	v := g.vertices[id]
	return SetInfo{Formula: v.formula, Size: v.size, Fixed: v.fixed}, nil
}

// Children returns id's direct children (immediate known subsets) in the
// given relation.
func (g *Graph) Children(kind EdgeKind, id VertexID) ([]VertexID, error) {
	if err := g.checkLive(id); err != nil {
		return nil, err
	}
	if kind == Extensional {
		return append([]VertexID(nil), g.vertices[id].extChildren...), nil
	}
	return append([]VertexID(nil), g.vertices[id].intChildren...), nil
}

// Parents returns id's direct parents (immediate known supersets) in the
// given relation.
func (g *Graph) Parents(kind EdgeKind, id VertexID) ([]VertexID, error) {
	if err := g.checkLive(id); err != nil {
		return nil, err
	}
	if kind == Extensional {
		return append([]VertexID(nil), g.vertices[id].extParents...), nil
	}
	return append([]VertexID(nil), g.vertices[id].intParents...), nil
}

// SetInfo is a snapshot of a vertex's externally visible attributes.
type SetInfo struct {
	Formula term.Term
	Size    uint32
	Fixed   bool
}

func (g *Graph) allocate(formula term.Term) VertexID {
	v := &vertex{formula: formula, live: true}
	g.vertices = append(g.vertices, v)
	id := VertexID(len(g.vertices) - 1)
	g.byFormula[formula.ID()] = id
	return id
}

func (g *Graph) checkLive(id VertexID) error {
	if id == NoVertex || int(id) >= len(g.vertices) || !g.vertices[id].live {
		return reasonerr.UnknownVertex(uint32(id))
	}
	return nil
}

// GetOrCreate canonicalizes formula and returns its vertex, inserting a new
// one when no vertex yet names that canonical formula. A newly inserted
// vertex is wired into the intensional graph against every existing vertex
// and given an initial size at the midpoint of its computed bounds.
func (g *Graph) GetOrCreate(formula term.Term) (VertexID, error) {
	canonical, err := canon.Canonicalize(g.store, formula, g.cfg.Canon)
	if err != nil {
		return NoVertex, err
	}

	if id, ok := g.byFormula[canonical.ID()]; ok {
		return id, nil
	}

	id := g.allocate(canonical)
	g.wireIntensional(id)
	g.initializeSize(id)
	g.cfg.Observer.OnVertexCreated(id, canonical)

	return id, nil
}

// wireIntensional links a freshly allocated vertex into I against every
// other live vertex, keeping I a transitive reduction: only minimal
// supersets become direct parents, only maximal subsets become direct
// children, and any old parent→child edge now shortcutting through id is
// removed.
func (g *Graph) wireIntensional(id VertexID) {
	self := g.vertices[id].formula

	var parents, children []VertexID
	for other := VertexID(1); int(other) < len(g.vertices); other++ {
		if other == id || !g.vertices[other].live {
			continue
		}
		o := g.vertices[other].formula

		if subset.IsSubset(self, o) == subset.True {
			parents = append(parents, other)
		}
		if subset.IsSubset(o, self) == subset.True {
			children = append(children, other)
		}
	}

	parents = g.minimalSupersets(parents)
	children = g.maximalSubsets(children)

	for _, p := range parents {
		g.addEdge(Intensional, p, id)
	}
	for _, c := range children {
		g.addEdge(Intensional, id, c)
	}

	for _, p := range parents {
		for _, c := range children {
			g.removeEdgeIfPresent(Intensional, p, c)
		}
	}
}

func (g *Graph) minimalSupersets(candidates []VertexID) []VertexID {
	var out []VertexID
	for _, p := range candidates {
		minimal := true
		for _, q := range candidates {
			if p == q {
				continue
			}
			if subset.IsSubset(g.vertices[q].formula, g.vertices[p].formula) == subset.True {
				minimal = false
				break
			}
		}
		if minimal {
			out = append(out, p)
		}
	}
	return out
}

func (g *Graph) maximalSubsets(candidates []VertexID) []VertexID {
	var out []VertexID
	for _, c := range candidates {
		maximal := true
		for _, d := range candidates {
			if c == d {
				continue
			}
			if subset.IsSubset(g.vertices[c].formula, g.vertices[d].formula) == subset.True {
				maximal = false
				break
			}
		}
		if maximal {
			out = append(out, c)
		}
	}
	return out
}

func (g *Graph) initializeSize(id VertexID) {
	lower, upper := g.Bounds(id)

	var size uint64
	if upper == Unbounded {
		size = lower + 10
	} else {
		size = lower + (upper-lower)/2
	}

	g.vertices[id].size = uint32(size)
	g.cfg.Observer.OnBoundsRecomputed(id, lower, upper)
}
