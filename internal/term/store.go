package term

// ID is an arena handle into a Store. The zero value, NoID, never denotes a
// live term; real terms start at index 1 (index 0 is reserved so a zeroed ID
// field can never be mistaken for a real handle).
type ID uint32

// NoID is the reserved "no term" handle.
const NoID ID = 0

// node is the arena-resident representation of one hash-consed term. Only
// the fields relevant to a node's Kind are populated; the rest are zero.
type node struct {
	kind Kind
	sym  uint32 // Variable/Constant/Parameter symbol id, or the bound-variable id for a quantifier
	ival int64  // Integer literal payload

	// Operand slots. Meaning depends on kind:
	//   Not:            a = body
	//   IfThen, Equals: a, b = operands
	//   App1:           a = function, b = argument
	//   App2:           a = function, b, c = arguments
	//   ForAll/Exists/Lambda: a = body (sym is the bound variable)
	a, b, c ID

	list []ID // operand list for And / Or / Iff

	hash uint64
}

func (n *node) equalContent(o node) bool {
	if n.kind != o.kind || n.sym != o.sym || n.ival != o.ival {
		return false
	}
	if n.a != o.a || n.b != o.b || n.c != o.c {
		return false
	}
	if len(n.list) != len(o.list) {
		return false
	}
	for i, id := range n.list {
		if o.list[i] != id {
			return false
		}
	}
	return true
}

// Store is a session-private arena of hash-consed terms. Two IDs from
// different Stores are never comparable; a session never hands its term
// handles to another session.
type Store struct {
	nodes   []node
	buckets map[uint64][]ID

	trueID  ID
	falseID ID
}

// NewStore creates an empty arena with its True/False singletons already
// interned at fixed handles, matching the "shared process-wide, immutable
// after initialization" atoms of the term algebra: every Store constructs
// them identically, so they behave as the same logical singleton no matter
// which session created them.
func NewStore() *Store {
	s := &Store{
		nodes:   make([]node, 1, 128), // index 0 reserved
		buckets: make(map[uint64][]ID, 128),
	}
	s.trueID = s.intern(node{kind: KindTrue})
	s.falseID = s.intern(node{kind: KindFalse})
	return s
}

// Len returns the number of live nodes in the arena, including the True and
// False singletons.
func (s *Store) Len() int { return len(s.nodes) - 1 }

func (s *Store) intern(n node) ID {
	n.hash = hashNode(n)
	for _, id := range s.buckets[n.hash] {
		if s.nodes[id].equalContent(n) {
			return id
		}
	}
	id := ID(len(s.nodes))
	s.nodes = append(s.nodes, n)
	s.buckets[n.hash] = append(s.buckets[n.hash], id)

	return id
}

func (s *Store) node(id ID) *node { return &s.nodes[id] }

// True returns the process-shared truth constant of this arena.
func (s *Store) True() Term { return Term{s, s.trueID} }

// False returns the process-shared falsity constant of this arena.
func (s *Store) False() Term { return Term{s, s.falseID} }

// hashNode computes a total, structural hash for a candidate node. It never
// depends on where operand IDs happen to live in the arena beyond their
// numeric value, which is stable once interned (nodes are append-only).
func hashNode(n node) uint64 {
	h := fnvOffset
	h = hashCombine(h, uint64(n.kind))
	h = hashCombine(h, uint64(n.sym))
	h = hashCombine(h, uint64(n.ival))
	h = hashCombine(h, uint64(n.a))
	h = hashCombine(h, uint64(n.b))
	h = hashCombine(h, uint64(n.c))
	h = hashCombine(h, uint64(len(n.list)))

	for _, id := range n.list {
		h = hashCombine(h, uint64(id))
	}

	return h
}

const (
	fnvOffset = uint64(14695981039346656037)
	fnvPrime  = uint64(1099511628211)
)

func hashCombine(h, x uint64) uint64 {
	h ^= x
	h *= fnvPrime

	return h
}
