// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestChooseSD6CollapsesXorSpineS2 implements spec.md §8 scenario S2:
// starting from the S1 diagram (x1^x2^x3 over three Shannon variables),
// calling chooseSD6 at level 0 should switch that level to a Davio
// expansion and collapse the XOR spine from 3 nodes to 2, while the
// function represented by the root handle is unchanged (P5) and has the same
// satisfying count as an XOR of the same three variables built
// independently in a fresh manager.
func TestChooseSD6CollapsesXorSpineS2(t *testing.T) {
	m, err := New(3)
	require.NoError(t, err)

	f := m.Ref(m.Xor(m.Xor(m.Ithvar(0), m.Ithvar(1)), m.Ithvar(2)))
	m.gc()
	require.Equal(t, 3, m.LiveCount())
	before := m.SatCount(f)

	won, err := m.chooseSD6(0)
	require.NoError(t, err)
	require.True(t, won == CND || won == CPD, "S2: level 0 should settle on a Davio expansion, got %s", won)

	m.gc()
	require.Equal(t, 2, m.LiveCount(), "S2: the Davio chain has 2 nodes")
	require.Equal(t, before, m.SatCount(f), "S2: expansion choice preserves the function (P5)")

	m2, err := New(3)
	require.NoError(t, err)
	g := m2.Ref(m2.Xor(m2.Xor(m2.Ithvar(0), m2.Ithvar(1)), m2.Ithvar(2)))
	_ = g // independently built, in a fresh manager; compared only by satisfying count here
	require.Equal(t, m.SatCount(f), m2.SatCount(g), "P1: both constructions denote the same function")
}

// TestChooseSD3RestrictedCapsNonShannonLevels exercises the _restricted
// variant's davio_exist_factor cap (spec.md §4.9): with the cap set to 0,
// no non-Shannon expansion may be introduced, so the level may only stay CS
// or move within the Shannon family to BS.
func TestChooseSD3RestrictedCapsNonShannonLevels(t *testing.T) {
	m, err := New(3, DavioExistFactor(0))
	require.NoError(t, err)
	m.Xor(m.Xor(m.Ithvar(0), m.Ithvar(1)), m.Ithvar(2))

	won, err := m.chooseSD3Restricted(0)
	require.NoError(t, err)
	require.True(t, won == CS || won == BS, "restricted choice must not introduce a Davio level when the cap is 0, got %s", won)
}
