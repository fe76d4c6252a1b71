// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

// cacheOp tags which operator a computed-table entry belongs to, so one
// table can serve ITE, AND, and XOR at once (spec.md §4.2), unlike the
// teacher's cache.go, which gives each operator its own typed cache
// (itecache, applycache, ...). A single tagged table is simpler to keep
// coherent across six expansion types without one struct per op x expansion
// combination.
type cacheOp int8

const (
	opITE cacheOp = iota
	opAND
	opXOR
)

type cacheEntry struct {
	valid  bool
	op     cacheOp
	f, g, h edge
	res    edge
}

// computedCache is a direct-mapped, lossy memo table (spec.md §4.2): a miss
// simply overwrites whatever was in the slot. Grounded on the teacher's
// itecache (data4ncache), generalized to carry an operator tag instead of
// living in its own typed struct.
type computedCache struct {
	table   []cacheEntry
	ratio   int // cache-to-arena growth ratio (%), 0 means fixed size
	minHit  int // resize upward only if hits > misses*minHit and there's room
	hits    int
	misses  int
}

const defaultCacheSize = 10000
const defaultMinHit = 2

func (m *Manager) cacheinit(c *configs) {
	size := c.cachesize
	if size <= 0 {
		size = defaultCacheSize
	}
	m.cache = &computedCache{table: make([]cacheEntry, size), ratio: c.cacheratio, minHit: defaultMinHit}
}

// cachereset invalidates every entry, without resizing; called whenever
// variable order changes or nodes are freed that might be referenced as
// cache keys or values (spec.md §4.2).
func (m *Manager) cachereset() {
	for i := range m.cache.table {
		m.cache.table[i] = cacheEntry{}
	}
}

// cacheresize grows the cache to track arena growth, when a cache ratio was
// configured (spec.md §4.2 "the cache is resized upward if hits > misses x
// minHit and there is room").
func (m *Manager) cacheresize(arenaSize int) {
	if m.cache.ratio <= 0 {
		return
	}
	target := (arenaSize * m.cache.ratio) / 100
	if target <= len(m.cache.table) {
		return
	}
	if m.cache.hits <= m.cache.misses*m.cache.minHit {
		return
	}
	grown := make([]cacheEntry, target)
	m.cache = &computedCache{table: grown, ratio: m.cache.ratio, minHit: m.cache.minHit}
}

func (c *computedCache) slot(op cacheOp, f, g, h edge) int {
	key := _TRIPLE(int(f), int(g), int(h)<<2|int(op))
	if key < 0 {
		key = -key
	}
	return key % len(c.table)
}

// lookup probes the cache for (op, f, g, h). A single variant serves every
// caller, public operators and the C6/C7 inner rewrites alike, and it does
// not check whether a stored result still refers to a live node.
func (c *computedCache) lookup(op cacheOp, f, g, h edge) (edge, bool) {
	e := &c.table[c.slot(op, f, g, h)]
	if e.valid && e.op == op && e.f == f && e.g == g && e.h == h {
		c.hits++
		return e.res, true
	}
	c.misses++
	return 0, false
}

func (c *computedCache) set(op cacheOp, f, g, h, res edge) {
	c.table[c.slot(op, f, g, h)] = cacheEntry{valid: true, op: op, f: f, g: g, h: h, res: res}
}
