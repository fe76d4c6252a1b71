// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestChangeExpnPreservesFunctionAndI3 exercises the CS<->CND<->CPD chain of
// spec.md §4.4 on a level whose rewrite can introduce a complemented low
// edge (CPD), and checks both that the represented function is unchanged
// (P5) and that canonicityFixup has restored I3 (no live node has a
// complemented low edge) and I1 (no Davio node has high == false).
func TestChangeExpnPreservesFunctionAndI3(t *testing.T) {
	m, err := New(3)
	require.NoError(t, err)

	ab := m.Ref(m.And(m.Ithvar(0), m.Ithvar(1)))
	f := m.Xor(ab, m.Ithvar(2))
	m.Ref(f)
	m.Deref(ab)
	before := m.SatCount(f)

	require.NoError(t, m.changeExpn(0, CND))
	require.Equal(t, before, m.SatCount(f), "CS->CND preserves the function")
	require.NoError(t, m.checkBkfddVar())

	require.NoError(t, m.changeExpn(0, CPD))
	require.Equal(t, before, m.SatCount(f), "CND->CPD preserves the function")
	require.NoError(t, m.checkBkfddVar())
	require.Equal(t, CPD, m.ExpansionAt(0))

	require.NoError(t, m.changeExpn(0, CS))
	require.Equal(t, before, m.SatCount(f), "CPD->CS preserves the function")
	require.NoError(t, m.checkBkfddVar())
	require.Equal(t, CS, m.ExpansionAt(0))
}

// TestChangeExpnBiconditionalRoundTrip exercises the CS<->BS transition and
// its inverse, checking the function is unchanged and that the bottom-level
// edge case (spec.md §4.4: biconditional requested at the last level is a
// no-op) is honored.
func TestChangeExpnBiconditionalRoundTrip(t *testing.T) {
	m, err := New(2)
	require.NoError(t, err)

	h := m.Equiv(m.Ithvar(0), m.Ithvar(1))
	m.Ref(h)
	before := m.SatCount(h)

	require.NoError(t, m.changeExpn(0, BS))
	require.Equal(t, before, m.SatCount(h))
	require.NoError(t, m.checkBkfddVar())

	require.NoError(t, m.changeExpn(0, CS))
	require.Equal(t, before, m.SatCount(h))
	require.Equal(t, CS, m.ExpansionAt(0))

	// the bottom level has no variable below it to pair with; requesting a
	// biconditional expansion there is a silent no-op.
	require.NoError(t, m.changeExpn(1, BS))
	require.Equal(t, CS, m.ExpansionAt(1))
}

// TestChangeExpnRejectsNonAdjacentTransition checks that requesting a
// transition with no direct rewrite rule (spec.md §4.4 only lists the six
// adjacent transitions) returns an error instead of silently doing nothing.
func TestChangeExpnRejectsNonAdjacentTransition(t *testing.T) {
	m, err := New(2)
	require.NoError(t, err)

	err = m.changeExpn(0, BPD)
	require.Error(t, err, "CS->BPD has no direct rewrite rule")
}
