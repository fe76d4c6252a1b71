// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bkfdd

// number of bytes used to compute a node's cache key (adapted from huddsize in
// the teacher's hkernel.go): four 4-byte edges (three operands and the
// result) and one operator tag byte.
const cachekeysize = 4*4 + 1

// _MINFREENODES is the minimal number of nodes (%) that has to be left after a
// garbage collect unless a resize should be done.
const _MINFREENODES int = 20

// _MAXVAR is the maximal number of levels in a BKFDD. We use only the first 21
// bits of a node's index for encoding levels (so also the max number of
// variables); the GC mark bit is kept in the node's ref field, not here.
const _MAXVAR int32 = 0x1FFFFF

// _MAXREFCOUNT is the maximal value of the reference counter (ref). Once a
// node's ref reaches this value it is frozen, exactly as the constant node is
// frozen from its creation (I5); projection nodes start with an ordinary
// count.
const _MAXREFCOUNT int32 = 0x3FF

// _DEFAULTMAXNODEINC is the default value for the maximal increase in the
// number of nodes during a resize (same default as the teacher: ~1M nodes).
const _DEFAULTMAXNODEINC int = 1 << 20

// _DENSITY is the load factor (keys/slots) above which a subtable resizes, per
// spec §3's "maxKeys = slots x DENSITY".
const _DENSITY = 0.7

// _INIT_SLOTS is the smallest a per-level subtable is ever allowed to shrink
// to (spec §3: "when slots > INIT_SLOTS it may shrink").
const _INIT_SLOTS = 8

// _DAVIO_EXIST_BOUND is the absolute cap on the number of non-Shannon levels
// that the `_restricted` expansion-choice variants will ever allow (spec
// §4.9), independent of davio_exist_factor.
const _DAVIO_EXIST_BOUND = 1 << 20
