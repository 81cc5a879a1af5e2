// Package bitset provides a growable bit collection over dense indices.
//
// Architecture:
//   - Roaring-backed storage: sparse and dense index ranges stay compact
//   - Logical length: every set bit is below Len(); Insert grows it
//   - Nil-safe zero value: a zero BitSet is empty and usable
//
// Used internally for:
//   - Component and resource read/write sets
//   - "All except" exception sets (see ToggleAll)
//   - With/Without filter clauses and conflict results
package bitset
