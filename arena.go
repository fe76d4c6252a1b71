// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

// findOrInsert is the outer unique-table operation of C1/C2 (spec.md §4.1).
// Precondition: low is uncomplemented and both low/high target strictly
// lower levels than `level` (caller's responsibility, per spec). On a hit it
// returns the existing node's edge unchanged; on a miss it allocates a fresh
// node, links it into the level's subtable, and increments the reference
// count of each child (spec.md §4.1: "increment the ref of each child").
// Grounded on hkernel.go's makenode, generalized from one global table to
// per-level subtables.
func (m *Manager) findOrInsert(level int, index int32, low, high edge) (edge, error) {
	if _DEBUG {
		m.uniqueAccess++
	}
	st := m.subtables[level]
	if id, ok := st.find(m.arena, low, high); ok {
		if _DEBUG {
			m.uniqueHit++
		}
		return newedge(id, false), nil
	}
	if _DEBUG {
		m.uniqueMiss++
	}
	id, err := m.alloc()
	if err != nil {
		return 0, err
	}
	m.arena[id].index = index
	m.arena[id].low = low
	m.arena[id].high = high
	m.arena[id].ref = 0
	st.insert(m.arena, id, low, high)
	m.keys++
	m.arena[low.node()].incref()
	m.arena[high.node()].incref()
	m.maybeResize(st)
	return newedge(id, false), nil
}

// maybeResize applies the spec.md §4.1 resize policy: a subtable whose key
// count has outgrown its load factor rehashes to double the bucket count; one
// that has shrunk well below its current size (and is still above the floor)
// rehashes down, so a level that loses most of its nodes (e.g. after a
// reorder or GC sweep) doesn't keep paying for an oversized bucket array.
func (m *Manager) maybeResize(st *subtable) {
	if st.keys > st.maxKeys() {
		st.resize(m.arena, st.slots*2)
		return
	}
	if st.slots > _INIT_SLOTS && st.keys < st.slots/4 {
		newSlots := st.slots / 2
		if newSlots < _INIT_SLOTS {
			newSlots = _INIT_SLOTS
		}
		st.resize(m.arena, newSlots)
	}
}

// findOrInsertInner is the C1 "inner" variant used by expansion-change
// rewrites and swap (C6/C7): it never triggers GC or grows the arena because
// it is called mid-rewrite, when canonicity invariants are transiently broken
// and a GC sweep (which walks the arena assuming well-formed nodes) would be
// unsafe. It fails outright instead of reclaiming space (it may still
// rehash the level's subtable through maybeResize); spec.md §4.1: "The
// inner variant used inside expansion-change code does not trigger GC or
// dynamic reordering."
func (m *Manager) findOrInsertInner(level int, index int32, low, high edge) (edge, error) {
	st := m.subtables[level]
	if id, ok := st.find(m.arena, low, high); ok {
		return newedge(id, false), nil
	}
	if m.freepos == sentinel {
		return 0, errMemory
	}
	id := m.freepos
	m.freepos = m.arena[id].next
	m.freenum--
	m.arena[id] = node{index: index, low: low, high: high, ref: 0}
	st.insert(m.arena, id, low, high)
	m.keys++
	m.arena[low.node()].incref()
	m.arena[high.node()].incref()
	m.maybeResize(st)
	return newedge(id, false), nil
}

// alloc returns a fresh arena slot, running GC and, if still short, resizing
// the arena, exactly as hkernel.go's makenode does when b.freepos == 0.
func (m *Manager) alloc() (int32, error) {
	if m.freepos == sentinel {
		if !m.gbcDisabled {
			m.gc()
		}
		if (m.freenum*100)/len(m.arena) <= m.minfreenodes {
			if err := m.resizeArena(); err != nil {
				return 0, err
			}
		}
		if m.freepos == sentinel {
			return 0, m.errMemoryOut()
		}
	}
	id := m.freepos
	m.freepos = m.arena[id].next
	m.freenum--
	return id, nil
}

func (m *Manager) errMemoryOut() error {
	m.seterror(ErrMemoryOut, "unable to allocate a new node")
	return errMemory
}

// resizeArena grows the shared arena, grounded on hkernel.go's noderesize.
func (m *Manager) resizeArena() error {
	old := len(m.arena)
	if m.maxnodesize > 0 && old >= m.maxnodesize {
		return errMemory
	}
	newsize := old * 2
	if m.maxnodeincrease > 0 && newsize > old+m.maxnodeincrease {
		newsize = old + m.maxnodeincrease
	}
	if m.maxnodesize > 0 && newsize > m.maxnodesize {
		newsize = m.maxnodesize
	}
	if newsize <= old {
		return errMemory
	}
	grown := make([]node, newsize)
	copy(grown, m.arena)
	for k := old; k < newsize; k++ {
		grown[k].next = int32(k + 1)
	}
	grown[newsize-1].next = m.freepos
	m.arena = grown
	m.freepos = int32(old)
	m.freenum += newsize - old
	return nil
}
