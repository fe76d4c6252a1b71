// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestReorderPreservesSemanticsP4 builds a handful of random cube-sum
// functions over 6 variables, runs a plain sift pass, and checks spec.md
// §8's P4: for every input assignment, evaluating the function after
// reordering agrees with evaluating it before. It also checks that the
// live node count at most doubles.
func TestReorderPreservesSemanticsP4(t *testing.T) {
	const varnum = 6
	m, err := New(varnum)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	f := m.False()
	for i := 0; i < 5; i++ {
		cube := m.True()
		for v := 0; v < varnum; v++ {
			if rng.Intn(2) == 0 {
				continue
			}
			lit := m.Ithvar(v)
			if rng.Intn(2) == 0 {
				lit = m.NIthvar(v)
			}
			next := m.Ref(m.And(cube, lit))
			m.Deref(cube)
			cube = next
		}
		next := m.Ref(m.Or(f, cube))
		m.Deref(f)
		m.Deref(cube)
		f = next
	}

	assignments := make([][]bool, 0, 64)
	for mask := 0; mask < (1 << varnum); mask++ {
		a := make([]bool, varnum)
		for v := 0; v < varnum; v++ {
			a[v] = mask&(1<<v) != 0
		}
		assignments = append(assignments, a)
	}
	before := make([]bool, len(assignments))
	for i, a := range assignments {
		before[i] = m.Eval(f, a)
	}
	m.gc() // refresh m.isolated before the snapshot; Reorder's own internal
	// gc() would otherwise change the live count on its own, independent of
	// any actual swap.
	beforeLive := m.LiveCount()

	_, err = m.Reorder(ReorderSift, ReorderLimits{})
	require.NoError(t, err)

	for i, a := range assignments {
		require.Equal(t, before[i], m.Eval(f, a), "assignment %v", a)
	}
	m.gc() // sweep the cubes Eval built, as before the beforeLive snapshot
	require.LessOrEqual(t, m.LiveCount(), beforeLive*2, "S5-style bound: sifting should not blow up the diagram")
}

// TestReorderGroupSiftPreservesSemantics exercises ReorderGroupSift (and,
// separately, ReorderSymmSift), the two group-aware strategies whose
// aggregateAround-formed groups must move as rigid blocks (spec.md §4.7).
// It checks the same P4 semantics-preservation property as plain sifting,
// plus, in builds with _DEBUG set, that the post-reorder group/OET
// invariant (canonicity.go's checkBiGroup) holds, which only a real
// (non-dead) group-sift implementation can guarantee across more than one
// sift call.
func TestReorderGroupSiftPreservesSemantics(t *testing.T) {
	for _, method := range []ReorderMethod{ReorderGroupSift, ReorderSymmSift} {
		const varnum = 6
		m, err := New(varnum)
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(2))
		f := m.False()
		for i := 0; i < 5; i++ {
			cube := m.True()
			for v := 0; v < varnum; v++ {
				if rng.Intn(2) == 0 {
					continue
				}
				lit := m.Ithvar(v)
				if rng.Intn(2) == 0 {
					lit = m.NIthvar(v)
				}
				next := m.Ref(m.And(cube, lit))
				m.Deref(cube)
				cube = next
			}
			next := m.Ref(m.Or(f, cube))
			m.Deref(f)
			m.Deref(cube)
			f = next
		}

		assignments := make([][]bool, 0, 64)
		for mask := 0; mask < (1 << varnum); mask++ {
			a := make([]bool, varnum)
			for v := 0; v < varnum; v++ {
				a[v] = mask&(1<<v) != 0
			}
			assignments = append(assignments, a)
		}
		before := make([]bool, len(assignments))
		for i, a := range assignments {
			before[i] = m.Eval(f, a)
		}

		// Two passes: the first lets aggregateAround form groups, the second
		// exercises moving an already-formed group as a rigid block.
		_, err = m.Reorder(method, ReorderLimits{})
		require.NoError(t, err)
		_, err = m.Reorder(method, ReorderLimits{})
		require.NoError(t, err)

		for i, a := range assignments {
			require.Equal(t, before[i], m.Eval(f, a), "assignment %v", a)
		}
		if _DEBUG {
			require.NoError(t, m.checkBiGroup())
		}
	}
}

// TestReorderRespectsTerminationCallback checks the cancellation model of
// spec.md §5: with a Terminate callback that fires immediately, Reorder must
// return successfully (not an error) having performed no swaps, per
// "Timeout / callback cancellation during reorder: not an error".
func TestReorderRespectsTerminationCallback(t *testing.T) {
	m, err := New(5)
	require.NoError(t, err)
	m.Ref(m.Or(m.And(m.Ithvar(0), m.Ithvar(1)), m.And(m.Ithvar(2), m.Ithvar(3))))
	m.gc()
	before := m.LiveCount()

	_, err = m.Reorder(ReorderSift, ReorderLimits{Terminate: func() bool { return true }})
	require.NoError(t, err)
	require.Equal(t, before, m.LiveCount(), "a termination callback that fires immediately performs no swaps")
}
