// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCacheLookupAfterSet checks the computed-table cache's basic contract
// (spec.md §4.2): a value stored under (op, f, g, h) is found by a
// subsequent lookup with the same key, and a differing key misses.
func TestCacheLookupAfterSet(t *testing.T) {
	m, err := New(3)
	require.NoError(t, err)

	f, g, h := edge(m.Ithvar(0)), edge(m.Ithvar(1)), edge(m.False())
	m.cache.set(opITE, f, g, h, edge(m.True()))

	res, ok := m.cache.lookup(opITE, f, g, h)
	require.True(t, ok)
	require.Equal(t, edge(m.True()), res)

	_, ok = m.cache.lookup(opAND, f, g, h)
	require.False(t, ok, "a different op tag is a different key even with identical operands")

	_, ok = m.cache.lookup(opITE, g, f, h)
	require.False(t, ok, "swapped operands are a different key")
}

// TestCacheResetClearsEntries checks that cachereset invalidates every
// entry without changing the table size (spec.md §4.2: called whenever
// variable order changes or nodes are freed).
func TestCacheResetClearsEntries(t *testing.T) {
	m, err := New(3)
	require.NoError(t, err)

	f, g, h := edge(m.Ithvar(0)), edge(m.Ithvar(1)), edge(m.False())
	m.cache.set(opITE, f, g, h, edge(m.True()))
	sizeBefore := len(m.cache.table)

	m.cachereset()

	_, ok := m.cache.lookup(opITE, f, g, h)
	require.False(t, ok, "cachereset invalidates every entry")
	require.Equal(t, sizeBefore, len(m.cache.table), "cachereset does not resize")
}

// TestCacheIsLossyOverwrite checks that a second distinct key mapping to the
// same slot simply overwrites the first (spec.md §4.2 "a miss simply
// overwrites whatever was in the slot"), by forcing two keys into slot 0 of
// a single-entry table.
func TestCacheIsLossyOverwrite(t *testing.T) {
	c := &computedCache{table: make([]cacheEntry, 1)}

	c.set(opITE, 2, 4, 6, 100)
	res, ok := c.lookup(opITE, 2, 4, 6)
	require.True(t, ok)
	require.Equal(t, edge(100), res)

	c.set(opAND, 8, 10, 12, 200)
	_, ok = c.lookup(opITE, 2, 4, 6)
	require.False(t, ok, "the second set evicted the first entry from the only slot")

	res, ok = c.lookup(opAND, 8, 10, 12)
	require.True(t, ok)
	require.Equal(t, edge(200), res)
}
