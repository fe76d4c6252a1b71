// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package bkfdd defines a concrete type for Bi-Kronecker Functional Decision
Diagrams (BKFDD), a canonical, reduced, directed-acyclic-graph representation
of Boolean functions that generalizes Binary Decision Diagrams by admitting
six per-level expansion types: three classical (Shannon, positive Davio,
negative Davio) and their three biconditional counterparts.

Basics

A Manager owns a fixed number of variables, declared when it is initialized
with New, each named by a stable index in the interval [0..Varnum) and
currently sitting at some level (0 at the top). The level of a variable
changes as the engine reorders variables to minimize diagram size; two
mutually-inverse permutations (perm, invperm) relate the two.

Most operations return a Node, a reference to a node together with a
complement mark: the low-order bit of a Node is set when the represented
function is the negation of the function reached by the node it otherwise
designates. There is a single representative of the constant true
(Manager.True); false is its complement.

Every level has an associated expansion type (one of CS, CND, CPD, BS, BND,
BPD) recording which local decomposition rule nodes at that level denote.
Expansion types can be changed, one level at a time, without changing the
function represented by any external handle (internally, changeExpn and the
chooseSD3/chooseSD6 heuristics), and adjacent levels can be swapped; together
these let the engine search the product space of variable order and per-level
expansion type for a smaller diagram (odt-sifting).

Use of build tags

Like its teacher, this package adapts its own verbosity through package
variables gated by build tags rather than a logging dependency: build with
tag `debug` to enable invariant assertions and richer Stats() counters.

Automatic memory management

The Manager owns every node, subtable, and cache entry. External code holds
only Nodes; their lifetime is governed by an explicit, caller-managed
saturating reference count (Manager.Ref / Manager.Deref), not by the Go
garbage collector, because expansion changes and reordering transiently
violate structural invariants mid-rewrite and the manager must know exactly
which edges are alive throughout that window.
*/
package bkfdd
