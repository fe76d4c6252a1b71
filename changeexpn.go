// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

import "fmt"

// changeExpn rewrites every node at level to a new expansion type, following
// the rewrite-rule table of spec.md §4.4. Supported are the transitions
// within a family (CS<->CND, CND<->CPD, CPD->CS, CS->CPD, and the same four
// among BS, BND and BPD) and the three classical<->biconditional pairs
// sharing a second letter; any other pair returns an error. The choice
// heuristics (chooseAmong) call it directly for each candidate and skip a
// candidate whose transition fails.
func (m *Manager) changeExpn(level int, target Expn) error {
	from := m.expansion[level]
	if from == target {
		return nil
	}
	if target.Biconditional() && level == int(m.varnum)-1 {
		// Edge case (spec.md §4.4): the bottom level has no variable below
		// it to pair with, so a classical<->biconditional request there is
		// a silent no-op success.
		return nil
	}
	rule, needsFixup, ok := m.transitionRule(from, target, level)
	if !ok {
		return fmt.Errorf("bkfdd: no direct rewrite rule from %s to %s", from, target)
	}

	savedGC, savedReorder := m.gbcDisabled, m.reorderPaused
	m.gbcDisabled, m.reorderPaused = true, true
	defer func() { m.gbcDisabled, m.reorderPaused = savedGC, savedReorder }()

	st := m.subtables[level]
	ids := st.detachAll(m.arena)

	var deferredDecref []int32
	for _, id := range ids {
		n := &m.arena[id]
		oldLow, oldHigh := n.low, n.high
		newLow, newHigh, err := rule(oldLow, oldHigh)
		if err != nil {
			return err
		}
		if !newLow.isConst() {
			m.arena[newLow.node()].incref()
		}
		if !newHigh.isConst() {
			m.arena[newHigh.node()].incref()
		}
		if !oldLow.isConst() {
			deferredDecref = append(deferredDecref, oldLow.node())
		}
		if !oldHigh.isConst() {
			deferredDecref = append(deferredDecref, oldHigh.node())
		}
		n.low, n.high = newLow, newHigh
		st.insert(m.arena, id, newLow, newHigh)
	}
	m.maybeResize(st)
	for _, id := range deferredDecref {
		m.arena[id].decref()
	}

	m.expansion[level] = target

	m.cachereset()
	m.gc()

	if needsFixup {
		m.canonicityFixup()
	}
	return nil
}

// rewriteRule computes a new (low, high) pair for one detached node, using
// only the inner operators (spec.md §4.4 step 4: "compute the new child
// edges using the inner XOR/ITE/AND").
type rewriteRule func(low, high edge) (edge, edge, error)

// transitionRule looks up the rewrite rule for from->target at the given
// level, along with whether the transition can introduce an I3 violation
// (any rule that may complement a low edge) and therefore needs a
// canonicity fixup pass afterward (spec.md §4.4 step 7).
func (m *Manager) transitionRule(from, target Expn, level int) (rewriteRule, bool, bool) {
	switch {
	case (from == CS && target == CND) || (from == CND && target == CS),
		(from == BS && target == BND) || (from == BND && target == BS):
		return m.ruleShannonNegDavio, false, true
	case (from == CND && target == CPD) || (from == CPD && target == CND),
		(from == BND && target == BPD) || (from == BPD && target == BND):
		return m.ruleNegPosDavio, true, true
	case (from == CPD && target == CS) || (from == BPD && target == BS):
		return m.rulePosDavioToShannon, true, true
	case (from == CS && target == CPD) || (from == BS && target == BPD):
		return m.ruleShannonToPosDavio, true, true
	case (from == CS && target == BS) || (from == BS && target == CS):
		return m.ruleClassicalShannonBiconditional(level), true, true
	case (from == CND && target == BND) || (from == BND && target == CND):
		return m.ruleClassicalDavioBiconditional(level), true, true
	case (from == CPD && target == BPD) || (from == BPD && target == CPD):
		return m.ruleClassicalDavioBiconditional(level), true, true
	}
	return nil, false, false
}

// ruleShannonNegDavio implements "*S <-> *ND": L' = L, H' = L xor H. It is
// its own inverse, so the same rule serves both directions.
func (m *Manager) ruleShannonNegDavio(low, high edge) (edge, edge, error) {
	h, err := m.xorInner(low, high)
	if err != nil {
		return 0, 0, err
	}
	return low, h, nil
}

// ruleNegPosDavio implements "*ND <-> *PD": L' = L xor H, H' = H.
func (m *Manager) ruleNegPosDavio(low, high edge) (edge, edge, error) {
	l, err := m.xorInner(low, high)
	if err != nil {
		return 0, 0, err
	}
	return l, high, nil
}

// rulePosDavioToShannon implements "*PD -> *S": L' = L xor H, H' = L.
func (m *Manager) rulePosDavioToShannon(low, high edge) (edge, edge, error) {
	l, err := m.xorInner(low, high)
	if err != nil {
		return 0, 0, err
	}
	return l, low, nil
}

// ruleShannonToPosDavio implements "*S -> *PD" (the inverse of the rule
// above): L' = H, H' = L xor H.
func (m *Manager) ruleShannonToPosDavio(low, high edge) (edge, edge, error) {
	h, err := m.xorInner(low, high)
	if err != nil {
		return 0, 0, err
	}
	return high, h, nil
}

// ruleClassicalShannonBiconditional implements the Shannon row of the
// classical<->biconditional transition: L' = ITE(y, L, H), H' = ITE(y, H, L),
// where y is the variable at level+1.
func (m *Manager) ruleClassicalShannonBiconditional(level int) rewriteRule {
	y := m.vars[m.invperm[level+1]][0]
	return func(low, high edge) (edge, edge, error) {
		l, err := m.iteInner(y, low, high)
		if err != nil {
			return 0, 0, err
		}
		h, err := m.iteInner(y, high, low)
		if err != nil {
			return 0, 0, err
		}
		return l, h, nil
	}
}

// ruleClassicalDavioBiconditional implements the Davio row of the
// classical<->biconditional transition: L' = L xor (not(y) and H), H' = H.
func (m *Manager) ruleClassicalDavioBiconditional(level int) rewriteRule {
	notY := m.vars[m.invperm[level+1]][1]
	return func(low, high edge) (edge, edge, error) {
		term, err := m.iteInner(notY, high, zero)
		if err != nil {
			return 0, 0, err
		}
		l, err := m.xorInner(low, term)
		if err != nil {
			return 0, 0, err
		}
		return l, high, nil
	}
}
