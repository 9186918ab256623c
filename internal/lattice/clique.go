package lattice

import "github.com/orizon-lang/holcore/internal/collections"

// cliqueState is one node of the branch-and-bound search tree: a partial
// disjoint clique (members, weight) plus the remaining candidates that
// could still extend it, and potential — weight plus every remaining
// candidate's size, an upper bound on any clique this state could grow
// into. The search always expands the highest-potential state first.
type cliqueState struct {
	members    []VertexID
	weight     uint64
	candidates []VertexID
	potential  uint64
}

// maxWeightDisjointClique finds a maximum-weight set of pairwise-disjoint
// vertices among candidates via Bron–Kerbosch-style branch and bound: a
// priority queue ordered by potential, pruned whenever a state's potential
// cannot beat the best clique found so far or falls below cfg.MinPriority.
// A state is a completed clique when it has no remaining candidates left to
// consider.
func (g *Graph) maxWeightDisjointClique(candidates []VertexID) (uint64, []VertexID) {
	if len(candidates) == 0 {
		return 0, nil
	}

	pq := collections.NewPriorityQueue(func(a, b cliqueState) bool { return a.potential > b.potential })
	pq.Push(cliqueState{candidates: candidates, potential: g.sumSizes(candidates)})

	var bestWeight uint64
	var bestMembers []VertexID

	for pq.Len() > 0 {
		st := pq.Pop()

		if st.potential < bestWeight || st.potential < g.cfg.MinPriority {
			continue
		}

		if len(st.candidates) == 0 {
			if st.weight > bestWeight {
				bestWeight = st.weight
				bestMembers = st.members
			}
			continue
		}

		pick := st.candidates[0]
		rest := st.candidates[1:]

		excludePotential := st.weight + g.sumSizes(rest)
		if excludePotential > bestWeight {
			pq.Push(cliqueState{members: st.members, weight: st.weight, candidates: rest, potential: excludePotential})
		}

		compatible := g.filterDisjointFrom(pick, rest)
		includeWeight := st.weight + uint64(g.vertices[pick].size)
		includePotential := includeWeight + g.sumSizes(compatible)
		if includePotential >= bestWeight {
			members := append(append([]VertexID{}, st.members...), pick)
			pq.Push(cliqueState{members: members, weight: includeWeight, candidates: compatible, potential: includePotential})
		}
	}

	return bestWeight, bestMembers
}

func (g *Graph) sumSizes(ids []VertexID) uint64 {
	var total uint64
	for _, id := range ids {
		total += uint64(g.vertices[id].size)
	}
	return total
}

func (g *Graph) filterDisjointFrom(pick VertexID, candidates []VertexID) []VertexID {
	var out []VertexID
	for _, c := range candidates {
		if disjoint, err := g.AreDisjoint(pick, c); err == nil && disjoint {
			out = append(out, c)
		}
	}
	return out
}
