// Package predicate implements the predicate algebra (spec.md §4.2) that
// parameterises every spatial query: Intersects, Within, Disjoint,
// Nearest-k, and Satisfies, plus the compression and ordering rules that
// let a single tree-traversal engine service any combination of them.
//
// Each predicate exposes two probes:
//
//   - Pass(value) reports whether a concrete key/value satisfies it.
//   - MightPass(box) reports whether any descendant inside box could
//     possibly satisfy it; it must be monotone — false on a box implies
//     false on every sub-box (spec.md invariant P2).
//
// A List is a canonically ordered, redundancy-compressed sequence of
// predicates built by Compile, which applies the compression table of
// spec.md §4.2 until no rule applies, then sorts the survivors so the
// most restrictive predicate (smallest effective volume) is evaluated
// first, with Satisfies and Nearest always last.
package predicate
