package planner

import (
	"container/heap"

	"gridquest/internal/domain/plan"
)

// node is owned exclusively by the active search; nothing escapes a planning
// call except the reconstructed plan.
type node struct {
	snap   plan.Snapshot
	action plan.Action
	parent *node
	g      int
	f      int
	depth  int
	seq    int
}

// frontier orders candidates by f, then fewer actions, then the lowest id of
// the action that produced the node, then insertion order. The full ordering
// makes planner output deterministic for identical inputs.
type frontier []*node

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.depth != b.depth {
		return a.depth < b.depth
	}
	if a.action.ID != b.action.ID {
		return a.action.ID < b.action.ID
	}
	return a.seq < b.seq
}

func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x any) { *q = append(*q, x.(*node)) }

func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

func newFrontier() *frontier {
	q := make(frontier, 0, 64)
	heap.Init(&q)
	return &q
}

func (q *frontier) push(n *node) {
	heap.Push(q, n)
}

func (q *frontier) pop() *node {
	return heap.Pop(q).(*node)
}
