// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

import "fmt"

// Node is an external reference to a BKFDD: a node id paired with a
// complement mark (spec.md §3 "Edge"). It is the exported counterpart of the
// internal edge type, kept distinct so that external callers never see raw
// arena indices reused across a GC sweep without going through Ref/Deref.
type Node int32

// Manager owns every node, subtable, and cache entry for one BKFDD (spec.md
// §3 "Manager"). Unlike the teacher's package-level BDD singleton idiom
// (bdd.go), every public operation here is a method on an explicit *Manager
// value threaded by the caller, per DESIGN NOTES "Global mutable state:
// model it as an explicit context value... no globals".
type Manager struct {
	varnum int32

	arena   []node
	freepos int32
	freenum int

	subtables []*subtable // indexed by level
	perm      []int32     // index -> level
	invperm   []int32     // level -> index
	expansion []Expn      // indexed by level

	vars [][2]edge // vars[index] = {positive projection edge, negative projection edge}

	cache *computedCache

	keys     int // live node count across all subtables
	dead     int // dead-node counter shown by Stats; no operation updates it, so it stays 0
	isolated int // count of projection variables whose sole external ref is vars[]

	interact [][]bool // interact[i][j]: conservative co-occurrence bitmap

	oet1, oet2 []oetRecord // pre-/post-reorder group snapshots (spec.md §3, GLOSSARY "OET")

	refstack []int32 // protects nodes mid-construction from GC (spec.md §4.6)

	gbcDisabled   bool // set during C6/C7 inner rewrites (spec.md §4.4 step 1)
	reorderPaused bool

	errorCode ErrorCode
	err       error

	configs
	gcstat
}

// New returns a freshly initialized Manager with varnum variables, all at
// Shannon expansion and in their natural order, mirroring the teacher's
// New(varnum, options...) in hudd.go but producing a BKFDD manager instead of
// a plain BDD.
func New(varnum int, options ...func(*configs)) (*Manager, error) {
	if varnum < 1 || varnum > int(_MAXVAR) {
		return nil, fmt.Errorf("bad number of variables (%d)", varnum)
	}
	cfg := makeconfigs(varnum)
	for _, f := range options {
		f(cfg)
	}
	m := &Manager{varnum: int32(varnum), configs: *cfg}
	m.arena = make([]node, cfg.nodesize)
	for k := range m.arena {
		m.arena[k].next = int32(k + 1)
	}
	m.arena[len(m.arena)-1].next = sentinel
	m.arena[0] = node{ref: _MAXREFCOUNT} // ONE, never stored in a subtable
	m.freepos = 1
	m.freenum = len(m.arena) - 1

	m.perm = make([]int32, varnum)
	m.invperm = make([]int32, varnum)
	m.expansion = make([]Expn, varnum)
	m.subtables = make([]*subtable, varnum)
	m.vars = make([][2]edge, varnum)
	m.interact = make([][]bool, varnum)
	for i := range m.interact {
		m.interact[i] = make([]bool, varnum)
	}
	for lvl := 0; lvl < varnum; lvl++ {
		m.perm[lvl] = int32(lvl)
		m.invperm[lvl] = int32(lvl)
		m.expansion[lvl] = CS
		m.subtables[lvl] = newsubtable(lvl, _INIT_SLOTS)
	}
	m.cacheinit(cfg)
	for idx := 0; idx < varnum; idx++ {
		lvl := int(m.perm[idx])
		// One node (low=true, high=false) denotes the negative literal; the
		// positive literal is its complemented edge, so no low edge is ever
		// complemented (I3) and both literals share a single node.
		v0, err := m.findOrInsert(lvl, int32(idx), one, zero)
		if err != nil {
			return nil, err
		}
		// The vars[] array slot itself counts as one permanent reference, so
		// a freshly created variable starts isolated (P7: ref(vars[i])==1)
		// rather than frozen, unlike the teacher's pinned _MAXREFCOUNT
		// variables (hudd.go) — spec.md's isolated-projection accounting
		// requires ordinary, observable refcounts on projection nodes.
		m.arena[v0.node()].incref()
		m.vars[idx] = [2]edge{v0.negate(), v0}
	}
	m.isolated = varnum
	return m, nil
}

// Varnum returns the (fixed) number of variables of the manager.
func (m *Manager) Varnum() int { return int(m.varnum) }

// LiveCount returns the number of internal nodes that are not mere isolated
// projections (spec.md §4.5/§4.7: swap and Reorder both report "the new
// live node count (keys - isolated)"); exposed here so callers outside the
// package can observe the same figure the reordering engine minimizes.
func (m *Manager) LiveCount() int { return m.keys - m.isolated }

// True returns the constant function true.
func (m *Manager) True() Node { return Node(one) }

// False returns the constant function false.
func (m *Manager) False() Node { return Node(zero) }

// From returns a constant Node from a boolean value, grounded on set.go's
// From.
func (m *Manager) From(v bool) Node {
	if v {
		return m.True()
	}
	return m.False()
}

// Ithvar returns the projection function for variable index i (spec.md §3
// "vars[index]").
func (m *Manager) Ithvar(i int) Node {
	if i < 0 || i >= int(m.varnum) {
		return Node(m.seterror(ErrInternal, "variable index out of range: %d", i))
	}
	return Node(m.vars[i][0])
}

// NIthvar returns the negation of the projection function for variable index
// i.
func (m *Manager) NIthvar(i int) Node {
	if i < 0 || i >= int(m.varnum) {
		return Node(m.seterror(ErrInternal, "variable index out of range: %d", i))
	}
	return Node(m.vars[i][1])
}

// Level returns the current level of variable index i.
func (m *Manager) Level(i int) int { return int(m.perm[i]) }

// IndexAt returns the variable index currently sitting at level l.
func (m *Manager) IndexAt(l int) int { return int(m.invperm[l]) }

// ExpansionAt returns the expansion type currently in effect at level l.
func (m *Manager) ExpansionAt(l int) Expn { return m.expansion[l] }

// Low returns the false/else branch of n.
func (m *Manager) Low(n Node) Node {
	e := edge(n)
	if e.isConst() {
		return n
	}
	child := m.arena[e.node()].low
	if e.compl() {
		return Node(child.negate())
	}
	return Node(child)
}

// High returns the true/then branch of n.
func (m *Manager) High(n Node) Node {
	e := edge(n)
	if e.isConst() {
		return n
	}
	child := m.arena[e.node()].high
	if e.compl() {
		return Node(child.negate())
	}
	return Node(child)
}

// level returns the level of the node targeted by e (ignoring complement),
// treating the constant as sitting one level below the bottom, exactly like
// min3's use of b.level(f) in the teacher's operations.go.
func (m *Manager) level(e edge) int32 {
	if e.isConst() {
		return m.varnum
	}
	return m.perm[m.arena[e.node()].index]
}

// Ref increases the saturating reference count on n and returns n, so calls
// can be chained, grounded on gc.go's AddRef.
func (m *Manager) Ref(n Node) Node {
	e := edge(n)
	if !e.isConst() {
		m.arena[e.node()].incref()
	}
	return n
}

// Deref decreases the saturating reference count on n and returns n,
// grounded on gc.go's DelRef.
func (m *Manager) Deref(n Node) Node {
	e := edge(n)
	if !e.isConst() {
		m.arena[e.node()].decref()
	}
	return n
}
