// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRefCountingBasics checks the saturating ref-count primitives of gc.go:
// Ref/Deref increment and decrement the arena slot's ref field, a fresh
// internal node returned to a caller starts at ref==0 until explicitly
// Ref'd (spec.md §5's external-holder discipline), and repeated Ref/Deref
// calls are cumulative.
func TestRefCountingBasics(t *testing.T) {
	m, err := New(3)
	require.NoError(t, err)

	f := m.And(m.Ithvar(0), m.Ithvar(1))
	e := edge(f)
	require.False(t, e.isConst())
	require.Equal(t, int32(0), m.arena[e.node()].refcount(), "a freshly built node starts unreferenced until its caller Refs it, per spec.md's explicit ref discipline")

	m.Ref(f)
	require.Equal(t, int32(1), m.arena[e.node()].refcount(), "Ref increments the saturating count")

	m.Ref(f)
	require.Equal(t, int32(2), m.arena[e.node()].refcount(), "Ref is cumulative")

	m.Deref(f)
	require.Equal(t, int32(1), m.arena[e.node()].refcount(), "Deref decrements it back")

	m.Deref(f)
	require.Equal(t, int32(0), m.arena[e.node()].refcount(), "dropping the last reference makes the node dead")
	require.True(t, m.arena[e.node()].dead())
}

// TestLiveNodeAccountingP6 checks spec.md §8's P6: after a GC sweep, keys
// equals the sum of live chain lengths over every level's subtable, and no
// remaining chain entry has ref == 0.
func TestLiveNodeAccountingP6(t *testing.T) {
	m, err := New(4)
	require.NoError(t, err)

	kept := m.And(m.Ithvar(0), m.Ithvar(1))
	m.Ref(kept)
	discarded := m.And(m.Ithvar(2), m.Ithvar(3))
	m.Deref(discarded) // discarded was never Ref'd, so it stays unreferenced

	m.gc()

	sum := 0
	for lvl, st := range m.subtables {
		count := 0
		for _, head := range st.nodelist {
			for cur := head; cur != sentinel; cur = m.arena[cur].next {
				require.False(t, m.arena[cur].dead(), "no dead node survives a GC sweep (level %d)", lvl)
				count++
			}
		}
		require.Equal(t, st.keys, count, "subtable.keys at level %d matches its chain length", lvl)
		sum += count
	}
	require.Equal(t, m.keys, sum, "P6: m.keys equals the sum of per-level live chain lengths")
	require.False(t, m.arena[edge(kept).node()].dead(), "sanity: the Ref'd node survives the sweep")
}

// TestIsolatedCountP7 checks spec.md §8's P7: isolated equals the number of
// projection variables whose sole reference is the manager's own vars[]
// slot, i.e. whose projection node is no built node's child.
func TestIsolatedCountP7(t *testing.T) {
	m, err := New(5)
	require.NoError(t, err)

	// x0 & x2 is one level-0 node whose children are the constant and
	// variable 2's projection node; variable 0's projection node is not a
	// child, so variables 0, 1, 3 and 4 stay isolated.
	m.Ref(m.And(m.Ithvar(0), m.Ithvar(2)))
	m.gc()

	manual := 0
	for i := 0; i < m.Varnum(); i++ {
		if m.arena[m.vars[i][0].node()].refcount() == 1 {
			manual++
		}
	}
	require.Equal(t, manual, m.isolated, "P7: isolated matches a direct count of singly-referenced projections")
	require.Equal(t, 4, m.isolated, "only variable 2's projection node is a child of the built node")
}

// TestIsolatedCountDropsOnUse checks that a previously-isolated variable
// whose projection node becomes a child of a new function's node leaves the
// isolated count on the next GC pass, since its vars[] slot is no longer its
// sole reference.
func TestIsolatedCountDropsOnUse(t *testing.T) {
	m, err := New(3)
	require.NoError(t, err)
	m.gc()
	require.Equal(t, 3, m.isolated)

	m.Ref(m.And(m.Ithvar(1), m.Ithvar(0)))
	m.gc()
	require.Equal(t, 2, m.isolated, "variable 1 now has a second reference from And's built node")
}
