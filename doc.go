// Package access decides ahead of time whether two units of work may run
// concurrently without breaking read/write exclusivity.
//
// Every unit of work declares which components and resources it reads and
// writes. Two declarations are compatible when neither can write something
// the other reads or writes.
//
// # Access
//
// Access is the raw record of reads and writes. Component sets support an
// "all except" form so that a unit of work touching almost everything stays
// cheap to describe:
//
//	a := access.NewAccess[access.ComponentID]()
//	a.AddComponentRead(velocity)
//	a.AddComponentWrite(position)
//
//	b := access.NewAccess[access.ComponentID]()
//	b.ReadAllComponents()
//	b.RemoveComponentRead(position)
//
//	a.IsCompatible(b) // true: b reads everything except position
//
// # Filters
//
// Filtered adds With/Without filters in disjunctive normal form. Two
// filtered accesses whose raw accesses conflict are still compatible when
// their filters can never match the same shape:
//
//	players := access.NewFiltered[access.ComponentID]()
//	players.AddComponentWrite(position)
//	players.AndWith(player)
//
//	others := access.NewFiltered[access.ComponentID]()
//	others.AddComponentWrite(position)
//	others.AndWithout(player)
//
//	players.IsCompatible(others) // true
//
// # Groups
//
// Group aggregates every filtered access of one unit of work. It answers
// from the union of its members when it can, and falls back to checking
// members pairwise otherwise.
//
// # Conflicts
//
// Conflicts lists the dense indices two declarations fight over, or reports
// that the conflict covers everything. Components and resources share one
// index space in the result.
//
// # Identifiers
//
// Any type implementing Index can be used as an identifier. ComponentID is
// the stock implementation. Identifiers from different index spaces must not
// be mixed.
//
// # Concurrency
//
// Values are built by a single goroutine and are read-only afterwards.
// Queries never mutate their receivers, so frozen values may be queried from
// many goroutines at once. The schedule package relies on this for its
// parallel ambiguity scan.
package access
