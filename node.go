// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

// edge is the internal representation of a directed reference to a node: the
// low bit carries the complement mark (spec.md §3 "Node"/"Edge"), the
// remaining bits are the index of the target node in the shared arena
// (Manager.arena). This mirrors the teacher's convention of folding the
// constant/complement information into the integer identity of a Node
// (bdd.go: "type Node *int ... 1 (resp. 0) is the address of True (resp.
// False)"), generalized here so any node, not only the constant, can be
// reached through a complemented edge.
type edge int32

// arenaIdx 0 is reserved for the unique constant node ONE; it is never
// installed in any subtable. one is the uncomplemented edge to ONE (True);
// zero is its complement, i.e. the canonical False.
const (
	zero edge = 1 // complemented edge to the constant: False
	one  edge = 0 // uncomplemented edge to the constant: True
)

// sentinel terminates every free list and hash-chain; arena slot 0 is never a
// member of any subtable chain (it is the constant), so it doubles safely as
// the chain terminator (spec.md GLOSSARY "Sentinel").
const sentinel int32 = 0

func newedge(n int32, compl bool) edge {
	if compl {
		return edge(n<<1) | 1
	}
	return edge(n << 1)
}

func (e edge) node() int32   { return int32(e) >> 1 }
func (e edge) compl() bool   { return e&1 != 0 }
func (e edge) negate() edge  { return e ^ 1 }
func (e edge) isConst() bool { return e.node() == 0 }

// uncompl returns e with its complement mark cleared, i.e. the edge reached
// by following e's target node directly.
func (e edge) uncompl() edge { return e &^ 1 }

// node is one vertex of the shared arena (C1). Its low child edge is always
// uncomplemented (I3); any complement that would otherwise be needed on the
// low branch is pushed up into the edge returned by find_or_insert instead.
// next is the intrusive collision-chain link used by the owning level's
// subtable (spec.md GLOSSARY distinguishes this node-level collision link
// from the subtable-level group-chain link, which lives in the subtable
// record, not here — see DESIGN.md's "Intrusive chain links" note).
type node struct {
	index int32 // stable variable name, see Manager.invperm
	low   edge  // false/else branch; always uncomplemented
	high  edge  // true/then branch; may be complemented
	ref   int32 // saturating external+internal reference count; 0 == dead
	next  int32 // next arena slot in this level's collision chain, or free list
}

// markBit reuses a high bit of ref for GC marking, exactly as the teacher
// steals a high bit of level for the same purpose in nodes.go/hkernel.go
// (`ismarked`/`marknode`); we steal it from ref instead of index because our
// index must stay a clean, stable variable name across reorders (spec.md §3:
// "stable across reorders").
const markBit int32 = 1 << 30

func (n *node) refcount() int32 { return n.ref &^ markBit }
func (n *node) dead() bool      { return n.refcount() == 0 }

func (n *node) marked() bool { return n.ref&markBit != 0 }
func (n *node) mark()        { n.ref |= markBit }
func (n *node) unmark()      { n.ref &^= markBit }

// incref saturates at _MAXREFCOUNT (I5); a frozen node's increment is a no-op.
func (n *node) incref() {
	if n.refcount() < _MAXREFCOUNT {
		n.ref++
	}
}

// decref is a no-op on a frozen or already-dead node.
func (n *node) decref() {
	c := n.refcount()
	if c > 0 && c < _MAXREFCOUNT {
		n.ref--
	}
}
