// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

// cofactor extracts the pair of sub-functions an operand contributes to a
// recursive step at level `top` under expansion `expn` (spec.md §4.3 step 5:
// "extract its two expansion-specific cofactors"). For an operand whose own
// node sits exactly at level top, the pair is simply its (low, high) fields
// (with the complement mark pushed down if the edge itself is complemented);
// this is exact because, by construction, a node's own fields already are
// its cofactor pair under whichever expansion its level currently holds. For
// an operand that does not reach level top (it is independent of the
// decomposition variable there), the pair defaults to the identity for the
// expansion family: Shannon cofactors both equal the function itself; Davio
// cofactors are (f, false), since both Davio types keep the base term in
// "low" and the difference in "high", so that the Davio reduction rule
// (high == false) fires correctly on recombination.
//
// Biconditional levels cofactor on (x ≡ y) where y is the variable at
// top+1 (spec.md §3's expansion table). Every operand whose node is not at
// level top, including one at level top+1, gets the same family defaults.
func (m *Manager) cofactor(e edge, top int32, expn Expn) (lo, hi edge) {
	lvl := m.level(e)
	switch expn {
	case CS:
		if lvl != top {
			return e, e
		}
	case CND:
		if lvl != top {
			return e, zero
		}
	case CPD:
		if lvl != top {
			return e, zero
		}
	case BS:
		if lvl != top {
			return e, e
		}
	case BND:
		if lvl != top {
			return e, zero
		}
	case BPD:
		if lvl != top {
			return e, zero
		}
	}
	if e.isConst() {
		return e, e
	}
	n := m.arena[e.node()]
	lo, hi = n.low, n.high
	if e.compl() {
		lo, hi = lo.negate(), hi.negate()
	}
	return lo, hi
}

// min3level returns the smallest of three levels, used to pick the top
// decomposition level of a ternary recursive call (spec.md §4.3 step 4),
// grounded on the teacher's min3 in operations.go.
func min3level(p, q, r int32) int32 {
	if p <= q {
		if p <= r {
			return p
		}
		return r
	}
	if q <= r {
		return q
	}
	return r
}

// reduceInsert applies the expansion-specific reduction test and, failing
// that, installs the node via find_or_insert, pushing any low-edge
// complement mark up into the returned edge to preserve I3 (spec.md §4.3
// step 7). insertFn lets callers choose the outer or inner find_or_insert
// variant (spec.md §4.1/§4.4).
func (m *Manager) reduceInsert(expn Expn, top int, index int32, rLo, rHi edge,
	insertFn func(level int, index int32, low, high edge) (edge, error)) (edge, error) {
	compl := false
	if rLo.compl() {
		rLo = rLo.negate()
		rHi = rHi.negate()
		compl = true
	}
	if expn == CS || expn == BS {
		if rLo == rHi {
			if compl {
				return rLo.negate(), nil
			}
			return rLo, nil
		}
	} else {
		// Davio family (classical or biconditional): the reduction rule is
		// "no node has high == false" (I1).
		if rHi == zero {
			if compl {
				return rLo.negate(), nil
			}
			return rLo, nil
		}
	}
	res, err := insertFn(top, index, rLo, rHi)
	if err != nil {
		return 0, err
	}
	if compl {
		return res.negate(), nil
	}
	return res, nil
}
