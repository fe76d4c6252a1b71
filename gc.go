// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

import "log"

// gcstat records garbage-collection and unique-table statistics, grounded on
// the teacher's gc.go gcstat/gcpoint.
type gcstat struct {
	produced     int
	uniqueAccess int
	uniqueHit    int
	uniqueMiss   int
	history      []gcpoint
}

type gcpoint struct {
	nodes     int
	freenodes int
	keys      int
	dead      int
}

// gc sweeps every subtable for nodes whose ref has dropped to zero (spec.md
// §4.6 "Reference Counting, GC, Projections"). Because ref here counts every
// internal and external edge explicitly (I5), dead nodes are recognized
// directly (ref == 0) rather than discovered by a mark pass from a root set,
// unlike the teacher's gc.go (which marks reachability from a refstack of
// external handles because its ref only counts external references). Dying
// nodes cascade: removing a node decrements its children, which may die in
// turn.
func (m *Manager) gc() {
	if _LOGLEVEL > 0 {
		log.Println("starting GC")
	}
	m.history = append(m.history, gcpoint{nodes: len(m.arena), freenodes: m.freenum, keys: m.keys, dead: m.dead})

	// Nodes on the refstack are mid-construction intermediates that have not
	// yet been wired as anyone's child (spec.md §4.6): a recursive operator
	// like ite/xor builds one branch's result before the other, and that
	// first result legitimately has ref == 0 until the parent node is
	// assembled. A GC triggered by the second branch's own node allocation
	// must not mistake it for garbage.
	protected := make(map[int32]bool, len(m.refstack))
	for _, r := range m.refstack {
		protected[r] = true
	}

	var worklist []int32
	for lvl, st := range m.subtables {
		for _, head := range st.nodelist {
			for cur := head; cur != sentinel; cur = m.arena[cur].next {
				if m.arena[cur].dead() && !protected[cur] {
					worklist = append(worklist, cur)
				}
			}
		}
		_ = lvl
	}
	seen := make(map[int32]bool)
	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if seen[id] || !m.arena[id].dead() || protected[id] {
			continue
		}
		seen[id] = true
		n := m.arena[id]
		level := int(m.perm[n.index])
		m.subtables[level].remove(m.arena, id, n.low, n.high)
		m.keys--
		if !n.low.isConst() {
			m.arena[n.low.node()].decref()
			if m.arena[n.low.node()].dead() && !protected[n.low.node()] {
				worklist = append(worklist, n.low.node())
			}
		}
		if !n.high.isConst() {
			m.arena[n.high.node()].decref()
			if m.arena[n.high.node()].dead() && !protected[n.high.node()] {
				worklist = append(worklist, n.high.node())
			}
		}
		m.arena[id].low = 0
		m.arena[id].high = 0
		m.arena[id].next = m.freepos
		m.freepos = id
		m.freenum++
	}
	m.recountIsolated()
	m.cachereset()
	if _LOGLEVEL > 0 {
		log.Printf("end GC; freenum: %d\n", m.freenum)
	}
}

// initref clears the protection stack, grounded on the teacher's
// gc.go:initref; called once at the entry of a public recursive operator so
// a previous call's stack cannot leak into this one.
func (m *Manager) initref() {
	m.refstack = m.refstack[:0]
}

// pushref protects e's underlying node from being swept by a GC triggered
// while a sibling branch is still under construction, grounded on the
// teacher's gc.go:pushref (used around every pair of recursive calls in
// operations.go, e.g. "low := b.pushref(b.apply(...))").
func (m *Manager) pushref(e edge) edge {
	if !e.isConst() {
		m.refstack = append(m.refstack, e.node())
	}
	return e
}

// popref removes the last n entries pushed by pushref, grounded on the
// teacher's gc.go:popref.
func (m *Manager) popref(n int) {
	if n > len(m.refstack) {
		n = len(m.refstack)
	}
	m.refstack = m.refstack[:len(m.refstack)-n]
}

// recountIsolated recomputes m.isolated, the number of projection variables
// whose sole reference is the manager's own vars[] slot (P7).
func (m *Manager) recountIsolated() {
	count := 0
	for i := 0; i < int(m.varnum); i++ {
		if !m.vars[i][0].isConst() && m.arena[m.vars[i][0].node()].refcount() == 1 {
			count++
		}
	}
	m.isolated = count
}
