package access

import (
	"iter"

	"github.com/hupe1980/access/internal/bitset"
)

// Conflicts records how two accesses conflict with each other.
//
// It is either "all indices" or an explicit set of conflicting dense
// indices. The zero value is the empty conflict set. Conflicts is a value:
// copies are independent, and Add never writes through to another copy.
type Conflicts struct {
	all     bool
	indices bitset.BitSet
}

// AllConflicts returns a conflict on every possible index.
func AllConflicts() Conflicts {
	return Conflicts{all: true}
}

// NoConflicts returns the empty conflict set.
func NoConflicts() Conflicts {
	return Conflicts{}
}

// ConflictsOf returns an explicit conflict set over the given identifiers.
func ConflictsOf[T Index[T]](ids ...T) Conflicts {
	var c Conflicts
	for _, id := range ids {
		c.indices.Insert(id.SparseIndex())
	}
	return c
}

func individual(indices bitset.BitSet) Conflicts {
	return Conflicts{indices: indices}
}

// Add merges other into c. All is absorbing: once either side is All the
// result is All.
func (c *Conflicts) Add(other Conflicts) {
	if c.all {
		return
	}
	if other.all {
		c.all = true
		c.indices = bitset.BitSet{}
		return
	}
	if other.indices.IsClear() {
		return
	}
	merged := c.indices.Clone()
	merged.UnionWith(&other.indices)
	c.indices = merged
}

// IsEmpty reports whether there is no conflict at all.
func (c Conflicts) IsEmpty() bool {
	return !c.all && c.indices.IsClear()
}

// IsAll reports whether the conflict covers every index.
func (c Conflicts) IsAll() bool {
	return c.all
}

// Len returns the number of explicit conflicting indices, or -1 for All.
func (c Conflicts) Len() int {
	if c.all {
		return -1
	}
	return c.indices.Count()
}

// Indices iterates over the explicit conflicting indices. It yields nothing
// for All.
func (c Conflicts) Indices() iter.Seq[uint32] {
	if c.all {
		return func(func(uint32) bool) {}
	}
	return c.indices.Ones()
}

// Without returns c with the given indices removed. All stays All since an
// unbounded set cannot be narrowed by a finite one.
func (c Conflicts) Without(indices ...uint32) Conflicts {
	if c.all {
		return c
	}
	out := individual(c.indices.Clone())
	for _, i := range indices {
		out.indices.Remove(i)
	}
	return out
}

// Equal reports whether c and other describe the same conflicts.
func (c Conflicts) Equal(other Conflicts) bool {
	if c.all || other.all {
		return c.all == other.all
	}
	return c.indices.Equal(&other.indices)
}

func (c Conflicts) String() string {
	if c.all {
		return "all"
	}
	return c.indices.String()
}

// ResolveConflicts maps the explicit conflicting indices back to
// identifiers. all is true when the conflict covers every index, in which
// case ids is nil.
func ResolveConflicts[T Index[T]](c Conflicts) (ids []T, all bool) {
	if c.all {
		return nil, true
	}
	for i := range c.indices.Ones() {
		ids = append(ids, fromIndex[T](i))
	}
	return ids, false
}
