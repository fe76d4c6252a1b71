// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

// chooseSD3 tries the three classical expansions (or, if level is already
// biconditional, the three biconditional ones) at level cyclically,
// measuring the live-node count after each, and adopts the smallest
// (spec.md §4.9). It returns the expansion finally in effect at level.
func (m *Manager) chooseSD3(level int) (Expn, error) {
	var candidates [3]Expn
	if m.expansion[level].Biconditional() {
		candidates = [3]Expn{BS, BND, BPD}
	} else {
		candidates = [3]Expn{CS, CND, CPD}
	}
	return m.chooseAmong(level, candidates[:])
}

// chooseSD6 tries all six expansions at level (spec.md §4.9).
func (m *Manager) chooseSD6(level int) (Expn, error) {
	return m.chooseAmong(level, []Expn{CS, CND, CPD, BS, BND, BPD})
}

// chooseAmong is the shared trial loop behind chooseSD3/chooseSD6: every
// trial invokes changeExpn directly; a trial whose transition fails is
// skipped, and after each successful trial the level is switched back to the
// expansion it had before it. The best accepted candidate is adopted at the
// end.
func (m *Manager) chooseAmong(level int, candidates []Expn) (Expn, error) {
	if !m.gcDisabledForChoice() {
		m.gc()
	}
	start := m.expansion[level]
	startSize := m.subtables[level].keys
	best := start
	bestSize := startSize

	for _, target := range candidates {
		if target == start {
			continue
		}
		if !modeAllows(m.mode, target) {
			continue
		}
		cur := m.expansion[level]
		if err := m.changeExpn(level, target); err != nil {
			continue // allocation failure on a trial is not fatal, just skip it
		}
		size := m.subtables[level].keys
		accept := float64(size) < float64(bestSize)*m.chooseNewBoundFactor
		if target.davio() != best.davio() && target.davio() {
			accept = accept && float64(size) < float64(bestSize)*m.chooseDavBoundFactor
		}
		if accept {
			best, bestSize = target, size
		}
		if err := m.changeExpn(level, cur); err != nil {
			return m.expansion[level], err
		}
	}
	if best != start {
		if err := m.changeExpn(level, best); err != nil {
			return m.expansion[level], err
		}
	}
	return m.expansion[level], nil
}

// gcDisabledForChoice reports whether GC is currently suppressed (spec.md
// §4.6: GC is invoked "before expansion-choice heuristics" unless already
// inside a rewrite that disabled it).
func (m *Manager) gcDisabledForChoice() bool { return m.gbcDisabled }

// chooseSD3Restricted and chooseSD6Restricted additionally cap the total
// number of non-Shannon levels at min(_DAVIO_EXIST_BOUND, davioExistFactor *
// nvars) (spec.md §4.9 "_restricted variants"). Once the cap is hit, a
// level that is currently Shannon may only move within the Shannon family
// (classical-Shannon <-> biconditional-Shannon).
func (m *Manager) chooseSD3Restricted(level int) (Expn, error) {
	return m.chooseRestricted(level, m.chooseSD3)
}

func (m *Manager) chooseSD6Restricted(level int) (Expn, error) {
	return m.chooseRestricted(level, m.chooseSD6)
}

func (m *Manager) chooseRestricted(level int, inner func(int) (Expn, error)) (Expn, error) {
	bound := int(_DAVIO_EXIST_BOUND)
	if factorCap := int(m.davioExistFactor * float64(m.varnum)); factorCap < bound {
		bound = factorCap
	}
	if m.countNonShannon() < bound {
		return inner(level)
	}
	if m.expansion[level] != CS && m.expansion[level] != BS {
		return m.expansion[level], nil
	}
	var target Expn
	if m.expansion[level] == CS {
		target = BS
	} else {
		target = CS
	}
	trialStart := m.expansion[level]
	before := m.subtables[level].keys
	if err := m.changeExpn(level, target); err != nil {
		return m.expansion[level], nil
	}
	after := m.subtables[level].keys
	if float64(after) >= float64(before)*m.chooseNewBoundFactor {
		if err := m.changeExpn(level, trialStart); err != nil {
			return m.expansion[level], err
		}
	}
	return m.expansion[level], nil
}

func (m *Manager) countNonShannon() int {
	n := 0
	for _, e := range m.expansion {
		if e != CS && e != BS {
			n++
		}
	}
	return n
}
