// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

import "math/big"

// Eval reports whether the function denoted by n is true under a complete
// assignment (one entry per variable index). It is grounded on the cube
// idiom the teacher's own tests use to check properties of a BDD (building
// a single minterm out of Ithvar/NIthvar and And-ing it against the
// function under test, e.g. operations_test.go's test1_check), rather than
// decoding each expansion type's algebraic formula directly: restricting f
// to one complete minterm through the already-canonical And operator is
// correct regardless of which low/high field a given expansion type treats
// as the base term versus the Davio difference term, an internal choice
// this port does not need Eval to know about (see DESIGN.md's note on
// low/high field naming).
func (m *Manager) Eval(n Node, assign []bool) bool {
	cube := m.buildCube(assign)
	res := m.And(n, cube)
	m.Deref(cube)
	return res == cube
}

// buildCube conjoins one literal per variable index into a single minterm,
// grounded on the teacher's Makeset/Allsat-callback pattern of conjoining
// Ithvar/NIthvar literals (operations_test.go, hoperations.go's allsat).
// The partial cube is referenced between And calls so a GC cannot sweep it;
// the returned cube carries one reference the caller must drop.
func (m *Manager) buildCube(assign []bool) Node {
	cube := m.True()
	for i, v := range assign {
		lit := m.NIthvar(i)
		if v {
			lit = m.Ithvar(i)
		}
		next := m.Ref(m.And(cube, lit))
		m.Deref(cube)
		cube = next
	}
	return cube
}

// SatCount returns the number of complete assignments over every variable of
// m that satisfy the function denoted by n, grounded on the teacher's
// Satcount (operations.go) but computed by brute-force enumeration of the
// 2^Varnum assignments through Eval rather than the teacher's level-skip
// weighting: the level-skip shortcut only holds for a pure Shannon BDD,
// where a node missing from a path is a true don't-care, but under Davio and
// biconditional expansions a "missing" variable can still influence the
// result through the XOR term, so the safe general count is the explicit
// sum over assignments. This makes SatCount a testing/diagnostic utility
// rather than an operation meant to scale to large Varnum.
func (m *Manager) SatCount(n Node) *big.Int {
	res := big.NewInt(0)
	varnum := int(m.varnum)
	assign := make([]bool, varnum)
	var rec func(i int)
	rec = func(i int) {
		if i == varnum {
			if m.Eval(n, assign) {
				res.Add(res, big.NewInt(1))
			}
			return
		}
		assign[i] = false
		rec(i + 1)
		assign[i] = true
		rec(i + 1)
	}
	rec(0)
	return res
}
