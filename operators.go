// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

// ITE computes if-then-else(f,g,h) = f*g + !f*h, the fundamental operator
// that every other Boolean operator is built from (spec.md §4.3 "ITE as the
// Fundamental Recursive Operator"), grounded on the teacher's Ite/ite in
// operations.go, generalized to cofactor per the level's current expansion
// type instead of always assuming Shannon.
func (m *Manager) ITE(f, g, h Node) Node {
	m.initref()
	res, err := m.ite(edge(f), edge(g), edge(h))
	if err != nil {
		return Node(m.seterror(ErrInternal, "%s", err))
	}
	return Node(res)
}

// And computes f*g as ITE(f,g,false).
func (m *Manager) And(f, g Node) Node { return m.ITE(f, g, m.False()) }

// Or computes f+g as ITE(f,true,g).
func (m *Manager) Or(f, g Node) Node { return m.ITE(f, m.True(), g) }

// Not computes !f as ITE(f,false,true).
func (m *Manager) Not(f Node) Node { return m.ITE(f, m.False(), m.True()) }

// Xor computes f (+) g through its own recursive worker xor.
func (m *Manager) Xor(f, g Node) Node {
	m.initref()
	res, err := m.xor(edge(f), edge(g))
	if err != nil {
		return Node(m.seterror(ErrInternal, "%s", err))
	}
	return Node(res)
}

// Imp computes f => g as ITE(f,g,true).
func (m *Manager) Imp(f, g Node) Node { return m.ITE(f, g, m.True()) }

// Equiv computes f <=> g as ITE(f,g,!g).
func (m *Manager) Equiv(f, g Node) Node { return m.ITE(f, g, m.Not(g)) }

// ite is the internal recursive worker behind ITE, with And, Or, Not, Imp
// and Equiv being thin wrappers over it; Xor uses xor instead (spec.md §4.3
// step 3 "canonicalize the ITE triple").
func (m *Manager) ite(f, g, h edge) (edge, error) {
	switch {
	case f == one:
		return g, nil
	case f == zero:
		return h, nil
	case g == h:
		return g, nil
	case g == one && h == zero:
		return f, nil
	case g == zero && h == one:
		return f.negate(), nil
	}
	if res, ok := m.cache.lookup(opITE, f, g, h); ok {
		return res, nil
	}
	top := min3level(m.level(f), m.level(g), m.level(h))
	expn := m.expansion[top]
	fLo, fHi := m.cofactor(f, top, expn)
	gLo, gHi := m.cofactor(g, top, expn)
	hLo, hHi := m.cofactor(h, top, expn)
	rLo, err := m.ite(fLo, gLo, hLo)
	if err != nil {
		return 0, err
	}
	m.pushref(rLo)
	rHi, err := m.ite(fHi, gHi, hHi)
	if err != nil {
		m.popref(1)
		return 0, err
	}
	m.pushref(rHi)
	index := m.invperm[top]
	res, err := m.reduceInsert(expn, int(top), index, rLo, rHi, m.findOrInsert)
	m.popref(2)
	if err != nil {
		return 0, err
	}
	m.cache.set(opITE, f, g, h, res)
	m.cacheresize(len(m.arena))
	return res, nil
}

// xor computes f (+) g directly (instead of through three ITE terminal
// checks) so the computed-table cache can hold a dedicated XOR entry,
// grounded on the teacher's apply(opxor,...) path in operations.go.
func (m *Manager) xor(f, g edge) (edge, error) {
	switch {
	case f == zero:
		return g, nil
	case g == zero:
		return f, nil
	case f == one:
		return g.negate(), nil
	case g == one:
		return f.negate(), nil
	case f == g:
		return zero, nil
	case f == g.negate():
		return one, nil
	}
	if f > g {
		f, g = g, f
	}
	if res, ok := m.cache.lookup(opXOR, f, g, 0); ok {
		return res, nil
	}
	top := min3level(m.level(f), m.level(g), m.varnum)
	expn := m.expansion[top]
	fLo, fHi := m.cofactor(f, top, expn)
	gLo, gHi := m.cofactor(g, top, expn)
	rLo, err := m.xor(fLo, gLo)
	if err != nil {
		return 0, err
	}
	m.pushref(rLo)
	rHi, err := m.xor(fHi, gHi)
	if err != nil {
		m.popref(1)
		return 0, err
	}
	m.pushref(rHi)
	index := m.invperm[top]
	res, err := m.reduceInsert(expn, int(top), index, rLo, rHi, m.findOrInsert)
	m.popref(2)
	if err != nil {
		return 0, err
	}
	m.cache.set(opXOR, f, g, 0, res)
	m.cacheresize(len(m.arena))
	return res, nil
}

// iteInner and xorInner are the C6/C7 counterparts of ite/xor: they skip the
// computed-table cache (which may hold stale entries mid-rewrite) and use
// the inner, non-GC-triggering unique-table insert, per spec.md §4.4 step 5
// "recompute via the inner operators". They don't need the pushref/popref
// protection ite/xor use: findOrInsertInner never calls alloc/gc (arena.go),
// so a sibling recursive call here can never collect an already-built,
// not-yet-wired branch out from under them.
func (m *Manager) iteInner(f, g, h edge) (edge, error) {
	switch {
	case f == one:
		return g, nil
	case f == zero:
		return h, nil
	case g == h:
		return g, nil
	case g == one && h == zero:
		return f, nil
	case g == zero && h == one:
		return f.negate(), nil
	}
	top := min3level(m.level(f), m.level(g), m.level(h))
	expn := m.expansion[top]
	fLo, fHi := m.cofactor(f, top, expn)
	gLo, gHi := m.cofactor(g, top, expn)
	hLo, hHi := m.cofactor(h, top, expn)
	rLo, err := m.iteInner(fLo, gLo, hLo)
	if err != nil {
		return 0, err
	}
	rHi, err := m.iteInner(fHi, gHi, hHi)
	if err != nil {
		return 0, err
	}
	index := m.invperm[top]
	return m.reduceInsert(expn, int(top), index, rLo, rHi, m.findOrInsertInner)
}

func (m *Manager) xorInner(f, g edge) (edge, error) {
	switch {
	case f == zero:
		return g, nil
	case g == zero:
		return f, nil
	case f == one:
		return g.negate(), nil
	case g == one:
		return f.negate(), nil
	case f == g:
		return zero, nil
	case f == g.negate():
		return one, nil
	}
	top := min3level(m.level(f), m.level(g), m.varnum)
	expn := m.expansion[top]
	fLo, fHi := m.cofactor(f, top, expn)
	gLo, gHi := m.cofactor(g, top, expn)
	rLo, err := m.xorInner(fLo, gLo)
	if err != nil {
		return 0, err
	}
	rHi, err := m.xorInner(fHi, gHi)
	if err != nil {
		return 0, err
	}
	index := m.invperm[top]
	return m.reduceInsert(expn, int(top), index, rLo, rHi, m.findOrInsertInner)
}
