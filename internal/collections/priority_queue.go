// Package collections holds small generic data structures shared across the
// reasoning core: a binary-heap priority queue, used here by the proof
// package's canonical ordering and the lattice package's clique search.
package collections

// PriorityQueue is a binary min-heap over items of type T, ordered by a
// caller-supplied less function. Ties are broken by insertion order, making
// iteration deterministic given a deterministic less.
type PriorityQueue[T any] struct {
	items []T
	seq   []uint64
	next  uint64
	less  func(a, b T) bool
}

// NewPriorityQueue creates an empty queue ordered by less.
func NewPriorityQueue[T any](less func(a, b T) bool) *PriorityQueue[T] {
	return &PriorityQueue[T]{less: less}
}

// Len reports the number of items currently queued.
func (q *PriorityQueue[T]) Len() int { return len(q.items) }

// Push inserts an item, restoring the heap invariant.
func (q *PriorityQueue[T]) Push(item T) {
	q.items = append(q.items, item)
	q.seq = append(q.seq, q.next)
	q.next++
	q.siftUp(len(q.items) - 1)
}

// Pop removes and returns the least item under less. It panics if the queue
// is empty; callers should check Len() first.
func (q *PriorityQueue[T]) Pop() T {
	if len(q.items) == 0 {
		panic("collections: Pop on empty PriorityQueue")
	}

	top := q.items[0]
	last := len(q.items) - 1

	q.items[0] = q.items[last]
	q.seq[0] = q.seq[last]
	q.items = q.items[:last]
	q.seq = q.seq[:last]

	if len(q.items) > 0 {
		q.siftDown(0)
	}

	return top
}

// Peek returns the least item without removing it.
func (q *PriorityQueue[T]) Peek() T {
	if len(q.items) == 0 {
		panic("collections: Peek on empty PriorityQueue")
	}
	return q.items[0]
}

func (q *PriorityQueue[T]) before(i, j int) bool {
	if q.less(q.items[i], q.items[j]) {
		return true
	}
	if q.less(q.items[j], q.items[i]) {
		return false
	}
	return q.seq[i] < q.seq[j]
}

func (q *PriorityQueue[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !q.before(i, parent) {
			return
		}
		q.swap(i, parent)
		i = parent
	}
}

func (q *PriorityQueue[T]) siftDown(i int) {
	n := len(q.items)
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i

		if left < n && q.before(left, smallest) {
			smallest = left
		}
		if right < n && q.before(right, smallest) {
			smallest = right
		}
		if smallest == i {
			return
		}

		q.swap(i, smallest)
		i = smallest
	}
}

func (q *PriorityQueue[T]) swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.seq[i], q.seq[j] = q.seq[j], q.seq[i]
}
