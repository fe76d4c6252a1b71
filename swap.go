// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

import "fmt"

// swap exchanges the variables at levels x and y=x+1, returning the new
// live node count (spec.md §4.5). Both levels must already be classical;
// callers (the reordering engine, §4.7) are responsible for converting a
// biconditional level via changeExpn first.
//
// Nodes at level x that do not reach level y are independent of y's
// variable, so after the swap they can simply move down to level y
// unchanged (spec.md: "Nodes at level x that do not reach level y are
// simply re-keyed to the new index"). Nodes at level x that do reach level
// y are rebuilt from their four grandchildren and reinstalled at level x
// testing the old y variable, with two children at level y testing the old
// x variable (shared with the moved-down nodes through find_or_insert). The
// original level-y nodes are detached first and reinserted at level x once
// the rebuild is done, since they keep testing the old y variable; those no
// longer referenced are swept by the final gc.
func (m *Manager) swap(x int) (int, error) {
	y := x + 1
	if m.expansion[x].Biconditional() || m.expansion[y].Biconditional() {
		return 0, fmt.Errorf("bkfdd: swap requires classical expansions at levels %d and %d", x, y)
	}

	savedGC, savedReorder := m.gbcDisabled, m.reorderPaused
	m.gbcDisabled, m.reorderPaused = true, true
	defer func() { m.gbcDisabled, m.reorderPaused = savedGC, savedReorder }()

	xIndex, yIndex := m.invperm[x], m.invperm[y]
	xExpn, yExpn := m.expansion[x], m.expansion[y]

	yst := m.subtables[y]
	yIds := yst.detachAll(m.arena)

	xst := m.subtables[x]
	ids := xst.detachAll(m.arena)

	var deferredDecref []int32
	var reaching []int32
	for _, id := range ids {
		n := &m.arena[id]
		if m.level(n.low) != int32(y) && m.level(n.high) != int32(y) {
			yst.insert(m.arena, id, n.low, n.high)
		} else {
			reaching = append(reaching, id)
		}
	}
	for _, id := range reaching {
		n := &m.arena[id]
		oldLow, oldHigh := n.low, n.high
		// oldLow and oldHigh are n's own cofactor pair at level x. Push each
		// one down through level y to get n's four grandchildren, then
		// recombine same-position components across the two children (the
		// same pairing ite/xor use for their own recursion) so the new
		// top-level node tests y's variable and the two fresh children
		// below it test x's variable.
		lowLo, lowHi := m.cofactor(oldLow, int32(y), yExpn)
		highLo, highHi := m.cofactor(oldHigh, int32(y), yExpn)

		newLow, err := m.reduceInsert(xExpn, y, xIndex, lowLo, highLo, m.findOrInsertInner)
		if err != nil {
			return 0, err
		}
		newHigh, err := m.reduceInsert(xExpn, y, xIndex, lowHi, highHi, m.findOrInsertInner)
		if err != nil {
			return 0, err
		}
		if !newLow.isConst() {
			m.arena[newLow.node()].incref()
		}
		if !newHigh.isConst() {
			m.arena[newHigh.node()].incref()
		}
		if !oldLow.isConst() {
			deferredDecref = append(deferredDecref, oldLow.node())
		}
		if !oldHigh.isConst() {
			deferredDecref = append(deferredDecref, oldHigh.node())
		}
		n.index = yIndex
		n.low, n.high = newLow, newHigh
		xst.insert(m.arena, id, newLow, newHigh)
	}
	for _, id := range yIds {
		xst.insert(m.arena, id, m.arena[id].low, m.arena[id].high)
	}
	for _, id := range deferredDecref {
		m.arena[id].decref()
	}

	m.perm[xIndex], m.perm[yIndex] = int32(y), int32(x)
	m.invperm[x], m.invperm[y] = yIndex, xIndex
	m.expansion[x], m.expansion[y] = yExpn, xExpn

	m.cachereset()
	m.gc()

	return m.keys - m.isolated, nil
}
