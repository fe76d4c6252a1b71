// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
)

// Stats returns a human-readable summary of arena, unique-table, cache, and
// GC activity, grounded on the teacher's stdio.go Stats/gcstats. Unlike the
// teacher, which tracks external references via runtime finalizers, this
// report uses the explicit incremental ref/isolated accounting required by
// spec.md §5/§6.
func (m *Manager) Stats() string {
	res := fmt.Sprintf("Varnum:     %d\n", m.varnum)
	res += fmt.Sprintf("Allocated:  %d\n", len(m.arena))
	res += fmt.Sprintf("Free:       %d\n", m.freenum)
	res += fmt.Sprintf("Keys:       %d\n", m.keys)
	res += fmt.Sprintf("Dead:       %d\n", m.dead)
	res += fmt.Sprintf("Isolated:   %d\n", m.isolated)
	res += "==============\n"
	res += m.gcstats()
	res += "==============\n"
	res += m.cachestats()
	res += "==============\n"
	res += m.levelstats()
	return res
}

func (m *Manager) gcstats() string {
	res := fmt.Sprintf("# of GC:    %d\n", len(m.history))
	res += fmt.Sprintf("Unique acc: %d\n", m.uniqueAccess)
	res += fmt.Sprintf("Unique hit: %d\n", m.uniqueHit)
	res += fmt.Sprintf("Unique mis: %d\n", m.uniqueMiss)
	return res
}

func (m *Manager) cachestats() string {
	total := m.cache.hits + m.cache.misses
	ratio := 0.0
	if total > 0 {
		ratio = 100 * float64(m.cache.hits) / float64(total)
	}
	res := fmt.Sprintf("Cache size: %d\n", len(m.cache.table))
	res += fmt.Sprintf("Cache hit:  %d  (%.3g %%)\n", m.cache.hits, ratio)
	res += fmt.Sprintf("Cache miss: %d\n", m.cache.misses)
	return res
}

// levelstats reports, per level, the currently installed expansion type and
// live node count, which spec.md §3/§4.7 treat as the quantity every
// reordering pass is trying to minimize.
func (m *Manager) levelstats() string {
	res := "Level  Expn  Keys\n"
	for lvl := 0; lvl < int(m.varnum); lvl++ {
		res += fmt.Sprintf("%-6d %-5s %d\n", lvl, m.expansion[lvl], m.subtables[lvl].keys)
	}
	return res
}

// DebugPrint writes an id-sorted, tabular listing of every live
// node reachable from n (or every live node in the manager if n is omitted)
// to w: id, level, expansion, low child, high child. Grounded on the
// teacher's stdio.go print_set, adapted to also show each node's expansion
// type (there is no such notion in a plain Shannon BDD) and to walk the
// per-level subtables directly instead of a single global node array.
func (m *Manager) DebugPrint(w io.Writer, n ...Node) {
	if m.Errored() {
		fmt.Fprintf(w, "Error: %s\n", m.Error())
		return
	}
	type row struct {
		id, level      int32
		expn           Expn
		low, high      edge
	}
	var rows []row
	seen := make(map[int32]bool)
	var visit func(e edge)
	visit = func(e edge) {
		if e.isConst() || seen[e.node()] {
			return
		}
		seen[e.node()] = true
		nd := m.arena[e.node()]
		level := m.perm[nd.index]
		rows = append(rows, row{id: e.node(), level: level, expn: m.expansion[level], low: nd.low, high: nd.high})
		visit(nd.low)
		visit(nd.high)
	}
	if len(n) == 0 {
		for lvl := 0; lvl < int(m.varnum); lvl++ {
			st := m.subtables[lvl]
			for _, head := range st.nodelist {
				for cur := head; cur != sentinel; cur = m.arena[cur].next {
					if !m.arena[cur].dead() {
						visit(newedge(cur, false))
					}
				}
			}
		}
	} else {
		for _, root := range n {
			visit(edge(root))
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].id < rows[j].id })
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "id\tlevel\texpn\tlow\thigh")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", r.id, r.level, r.expn, edgestring(r.low), edgestring(r.high))
	}
	tw.Flush()
}

func edgestring(e edge) string {
	switch e {
	case zero:
		return "0"
	case one:
		return "1"
	}
	if e.compl() {
		return fmt.Sprintf("!%d", e.node())
	}
	return fmt.Sprintf("%d", e.node())
}

// debugDump is a convenience wrapper for ad-hoc debugging that writes to
// stderr, grounded on the teacher's pattern of a bare os.Stdout print.
func (m *Manager) debugDump(n ...Node) { m.DebugPrint(os.Stderr, n...) }
