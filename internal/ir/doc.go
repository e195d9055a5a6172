// Package ir provides the canonical intermediate representation for PAMELA
// compilation units.
//
// This package contains the IR type definitions — pclass records, the
// Condition and Stmt sealed interfaces, and the lvar table — plus their
// canonical JSON encoding and content hash. All other internal packages
// import ir; ir imports nothing internal. This keeps IR the foundational
// layer with no circular dependencies.
//
// Key design constraints:
//   - The IR is a mapping from pclass symbol to pclass record, plus the
//     distinguished "pamela/lvars" entry and one entry per hoisted state
//     variable (spec §3).
//   - Condition and Stmt are modeled as sealed interfaces (an unexported
//     marker method per type) rather than a tagged map, so the validator's
//     dispatch is an exhaustive type switch instead of a string-keyed lookup.
//   - The grammar never produces the disambiguated Condition reference
//     variants directly; only the validator does (spec §4.4.4).
package ir
