package access

import (
	"fmt"
	"iter"

	"github.com/hupe1980/access/internal/bitset"
)

// Clause is one conjunction of With/Without constraints: every index in
// with must be present and every index in without must be absent.
//
// A clause that contradicts itself (the same index in both sets) is not
// detected. It is treated as satisfiable, so it is never ruled out by its
// own contents and only by other clauses.
type Clause[T Index[T]] struct {
	with    bitset.BitSet
	without bitset.BitSet
}

// NewClause creates a clause from explicit With and Without identifiers.
func NewClause[T Index[T]](with, without []T) Clause[T] {
	var c Clause[T]
	for _, id := range with {
		c.with.Insert(id.SparseIndex())
	}
	for _, id := range without {
		c.without.Insert(id.SparseIndex())
	}
	return c
}

// IsRuledOutBy reports whether c and other can never match the same shape:
// one requires an index the other excludes.
func (c *Clause[T]) IsRuledOutBy(other *Clause[T]) bool {
	return !c.with.IsDisjoint(&other.without) || !c.without.IsDisjoint(&other.with)
}

// With iterates over the identifiers this clause requires.
func (c *Clause[T]) With() iter.Seq[T] {
	return ids[T](&c.with)
}

// Without iterates over the identifiers this clause excludes.
func (c *Clause[T]) Without() iter.Seq[T] {
	return ids[T](&c.without)
}

func (c *Clause[T]) union(other *Clause[T]) {
	c.with.UnionWith(&other.with)
	c.without.UnionWith(&other.without)
}

// Clone returns a deep copy of c.
func (c *Clause[T]) Clone() Clause[T] {
	return Clause[T]{with: c.with.Clone(), without: c.without.Clone()}
}

// Equal reports whether c and other hold the same constraints.
func (c *Clause[T]) Equal(other *Clause[T]) bool {
	return c.with.Equal(&other.with) && c.without.Equal(&other.without)
}

func (c *Clause[T]) String() string {
	return fmt.Sprintf("Clause{with: %s, without: %s}", formatIDs[T](&c.with), formatIDs[T](&c.without))
}
