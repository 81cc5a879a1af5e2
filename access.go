package access

import (
	"fmt"
	"iter"
	"strings"

	"github.com/hupe1980/access/internal/bitset"
)

// Access tracks read and write access to components and resources.
//
// Component sets support an inverted ("all except") form: when a
// component set is inverted, its bits list the indices that are NOT
// accessed. Resources only know the all-or-nothing flags.
//
// Two accesses are incompatible if one can write an element that the other
// can read or write. See IsCompatible and Conflicts.
//
// The zero value is an empty access. Access is built by a single writer and
// is safe for concurrent queries once construction has finished. Copying an
// Access by value shares its storage; use Clone for an independent copy.
type Access[T Index[T]] struct {
	// Accessed components, or the components NOT accessed if
	// componentReadsWritesInverted is set.
	componentReadsWrites bitset.BitSet
	// Exclusively accessed components, or the components that may NOT be
	// written if componentWritesInverted is set.
	componentWrites     bitset.BitSet
	resourceReadsWrites bitset.BitSet
	resourceWrites      bitset.BitSet
	// Components whose presence affects results without being accessed.
	archetypal bitset.BitSet

	componentReadsWritesInverted bool
	componentWritesInverted      bool
	readsAllResources            bool
	// Implies readsAllResources.
	writesAllResources bool
}

// NewAccess creates an empty Access.
func NewAccess[T Index[T]]() *Access[T] {
	return &Access[T]{}
}

func (a *Access[T]) addComponentReadIndex(i uint32) {
	if !a.componentReadsWritesInverted {
		a.componentReadsWrites.Insert(i)
	} else {
		a.componentReadsWrites.Remove(i)
	}
}

func (a *Access[T]) addComponentWriteIndex(i uint32) {
	if !a.componentWritesInverted {
		a.componentWrites.Insert(i)
	} else {
		a.componentWrites.Remove(i)
	}
}

// AddComponentRead adds read access to the component id.
func (a *Access[T]) AddComponentRead(id T) {
	a.addComponentReadIndex(id.SparseIndex())
}

// AddComponentWrite adds exclusive access to the component id. Writing
// implies reading.
func (a *Access[T]) AddComponentWrite(id T) {
	i := id.SparseIndex()
	a.addComponentReadIndex(i)
	a.addComponentWriteIndex(i)
}

// AddResourceRead adds read access to the resource id.
func (a *Access[T]) AddResourceRead(id T) {
	a.resourceReadsWrites.Insert(id.SparseIndex())
}

// AddResourceWrite adds exclusive access to the resource id.
func (a *Access[T]) AddResourceWrite(id T) {
	i := id.SparseIndex()
	a.resourceReadsWrites.Insert(i)
	a.resourceWrites.Insert(i)
}

func (a *Access[T]) removeComponentReadIndex(i uint32) {
	if a.componentReadsWritesInverted {
		a.componentReadsWrites.Insert(i)
	} else {
		a.componentReadsWrites.Remove(i)
	}
}

func (a *Access[T]) removeComponentWriteIndex(i uint32) {
	if a.componentWritesInverted {
		a.componentWrites.Insert(i)
	} else {
		a.componentWrites.Remove(i)
	}
}

// RemoveComponentRead removes both read and write access to the component id.
//
// This is the set difference operator, and it does not commute with Extend:
// A ∪ (B ∖ A) is not (A ∪ B) ∖ A. A removal followed by Extend cannot be
// replaced by Extend followed by the removal.
func (a *Access[T]) RemoveComponentRead(id T) {
	i := id.SparseIndex()
	a.removeComponentWriteIndex(i)
	a.removeComponentReadIndex(i)
}

// RemoveComponentWrite removes write access to the component id and keeps
// the read. The same ordering caveat as RemoveComponentRead applies.
func (a *Access[T]) RemoveComponentWrite(id T) {
	a.removeComponentWriteIndex(id.SparseIndex())
}

// AddArchetypal records that results depend on the presence of the
// component id without accessing its value. Archetypal access never
// conflicts.
func (a *Access[T]) AddArchetypal(id T) {
	a.archetypal.Insert(id.SparseIndex())
}

// HasComponentRead reports whether the component id can be read.
func (a *Access[T]) HasComponentRead(id T) bool {
	return a.componentReadsWritesInverted != a.componentReadsWrites.Contains(id.SparseIndex())
}

// HasAnyComponentRead reports whether any component can be read.
func (a *Access[T]) HasAnyComponentRead() bool {
	return a.componentReadsWritesInverted || !a.componentReadsWrites.IsClear()
}

// HasComponentWrite reports whether the component id can be written.
func (a *Access[T]) HasComponentWrite(id T) bool {
	return a.componentWritesInverted != a.componentWrites.Contains(id.SparseIndex())
}

// HasAnyComponentWrite reports whether any component can be written.
func (a *Access[T]) HasAnyComponentWrite() bool {
	return a.componentWritesInverted || !a.componentWrites.IsClear()
}

// HasResourceRead reports whether the resource id can be read.
func (a *Access[T]) HasResourceRead(id T) bool {
	return a.readsAllResources || a.resourceReadsWrites.Contains(id.SparseIndex())
}

// HasAnyResourceRead reports whether any resource can be read.
func (a *Access[T]) HasAnyResourceRead() bool {
	return a.readsAllResources || !a.resourceReadsWrites.IsClear()
}

// HasResourceWrite reports whether the resource id can be written.
func (a *Access[T]) HasResourceWrite(id T) bool {
	return a.writesAllResources || a.resourceWrites.Contains(id.SparseIndex())
}

// HasAnyResourceWrite reports whether any resource can be written.
func (a *Access[T]) HasAnyResourceWrite() bool {
	return a.writesAllResources || !a.resourceWrites.IsClear()
}

// HasArchetypal reports whether the component id is accessed archetypally.
func (a *Access[T]) HasArchetypal(id T) bool {
	return a.archetypal.Contains(id.SparseIndex())
}

// ReadAllComponents grants read access to every component.
func (a *Access[T]) ReadAllComponents() {
	a.componentReadsWritesInverted = true
	a.componentReadsWrites.Clear()
}

// WriteAllComponents grants write access to every component.
func (a *Access[T]) WriteAllComponents() {
	a.ReadAllComponents()
	a.componentWritesInverted = true
	a.componentWrites.Clear()
}

// ReadAllResources grants read access to every resource.
func (a *Access[T]) ReadAllResources() {
	a.readsAllResources = true
}

// WriteAllResources grants write access to every resource.
func (a *Access[T]) WriteAllResources() {
	a.readsAllResources = true
	a.writesAllResources = true
}

// ReadAll grants read access to every component and resource.
func (a *Access[T]) ReadAll() {
	a.ReadAllComponents()
	a.ReadAllResources()
}

// WriteAll grants write access to every component and resource.
func (a *Access[T]) WriteAll() {
	a.WriteAllComponents()
	a.WriteAllResources()
}

// HasReadAllComponents reports whether every component can be read.
func (a *Access[T]) HasReadAllComponents() bool {
	return a.componentReadsWritesInverted && a.componentReadsWrites.IsClear()
}

// HasWriteAllComponents reports whether every component can be written.
func (a *Access[T]) HasWriteAllComponents() bool {
	return a.componentWritesInverted && a.componentWrites.IsClear()
}

// HasReadAllResources reports whether every resource can be read.
func (a *Access[T]) HasReadAllResources() bool {
	return a.readsAllResources
}

// HasWriteAllResources reports whether every resource can be written.
func (a *Access[T]) HasWriteAllResources() bool {
	return a.writesAllResources
}

// HasReadAll reports whether everything can be read.
func (a *Access[T]) HasReadAll() bool {
	return a.HasReadAllComponents() && a.HasReadAllResources()
}

// HasWriteAll reports whether everything can be written.
func (a *Access[T]) HasWriteAll() bool {
	return a.HasWriteAllComponents() && a.HasWriteAllResources()
}

// ClearWrites removes all writes and keeps the reads.
func (a *Access[T]) ClearWrites() {
	a.writesAllResources = false
	a.componentWritesInverted = false
	a.componentWrites.Clear()
	a.resourceWrites.Clear()
}

// Clear removes all accesses.
func (a *Access[T]) Clear() {
	a.readsAllResources = false
	a.writesAllResources = false
	a.componentReadsWritesInverted = false
	a.componentWritesInverted = false
	a.componentReadsWrites.Clear()
	a.componentWrites.Clear()
	a.resourceReadsWrites.Clear()
	a.resourceWrites.Clear()
}

// extendComponents unions src into dst where either side may be inverted.
func extendComponents(dst *bitset.BitSet, dstInverted bool, src *bitset.BitSet, srcInverted bool) {
	switch {
	case dstInverted && srcInverted:
		dst.IntersectWith(src)
	case dstInverted:
		dst.DifferenceWith(src)
	case srcInverted:
		// Grow first: the new bits are about to be flipped on.
		dst.Grow(max(dst.Len(), src.Len()))
		dst.ToggleAll()
		dst.IntersectWith(src)
	default:
		dst.UnionWith(src)
	}
}

// Extend adds all access from other to a.
func (a *Access[T]) Extend(other *Access[T]) {
	extendComponents(&a.componentReadsWrites, a.componentReadsWritesInverted,
		&other.componentReadsWrites, other.componentReadsWritesInverted)
	extendComponents(&a.componentWrites, a.componentWritesInverted,
		&other.componentWrites, other.componentWritesInverted)

	a.componentReadsWritesInverted = a.componentReadsWritesInverted || other.componentReadsWritesInverted
	a.componentWritesInverted = a.componentWritesInverted || other.componentWritesInverted
	a.readsAllResources = a.readsAllResources || other.readsAllResources
	a.writesAllResources = a.writesAllResources || other.writesAllResources
	a.resourceReadsWrites.UnionWith(&other.resourceReadsWrites)
	a.resourceWrites.UnionWith(&other.resourceWrites)
}

// componentPair is one direction of the write vs. read/write comparison.
type componentPair struct {
	writes              *bitset.BitSet
	readsWrites         *bitset.BitSet
	writesInverted      bool
	readsWritesInverted bool
}

// componentPairs returns both directions: our writes against their
// reads/writes, and theirs against ours.
func (a *Access[T]) componentPairs(other *Access[T]) [2]componentPair {
	return [2]componentPair{
		{&a.componentWrites, &other.componentReadsWrites, a.componentWritesInverted, other.componentReadsWritesInverted},
		{&other.componentWrites, &a.componentReadsWrites, other.componentWritesInverted, a.componentReadsWritesInverted},
	}
}

// IsComponentsCompatible reports whether a and other can be active at the
// same time, looking only at component access.
func (a *Access[T]) IsComponentsCompatible(other *Access[T]) bool {
	for _, p := range a.componentPairs(other) {
		switch {
		case p.writesInverted && p.readsWritesInverted:
			return false
		case p.readsWritesInverted:
			if !p.writes.IsSubset(p.readsWrites) {
				return false
			}
		case p.writesInverted:
			if !p.readsWrites.IsSubset(p.writes) {
				return false
			}
		default:
			if !p.writes.IsDisjoint(p.readsWrites) {
				return false
			}
		}
	}
	return true
}

// IsResourcesCompatible reports whether a and other can be active at the
// same time, looking only at resource access.
func (a *Access[T]) IsResourcesCompatible(other *Access[T]) bool {
	if a.writesAllResources {
		return !other.HasAnyResourceRead()
	}
	if other.writesAllResources {
		return !a.HasAnyResourceRead()
	}
	// A reader of everything also conflicts with explicit writes on the
	// other side, so the flags only decide the negative case.
	if a.readsAllResources && other.HasAnyResourceWrite() {
		return false
	}
	if other.readsAllResources && a.HasAnyResourceWrite() {
		return false
	}
	return a.resourceWrites.IsDisjoint(&other.resourceReadsWrites) &&
		other.resourceWrites.IsDisjoint(&a.resourceReadsWrites)
}

// IsCompatible reports whether a and other can be active at the same time.
func (a *Access[T]) IsCompatible(other *Access[T]) bool {
	return a.IsComponentsCompatible(other) && a.IsResourcesCompatible(other)
}

// IsSubsetComponents reports whether other's component access contains at
// least everything in a's.
func (a *Access[T]) IsSubsetComponents(other *Access[T]) bool {
	pairs := [2]struct {
		ours, theirs                 *bitset.BitSet
		oursInverted, theirsInverted bool
	}{
		{&a.componentReadsWrites, &other.componentReadsWrites, a.componentReadsWritesInverted, other.componentReadsWritesInverted},
		{&a.componentWrites, &other.componentWrites, a.componentWritesInverted, other.componentWritesInverted},
	}
	for _, p := range pairs {
		switch {
		case p.oursInverted && p.theirsInverted:
			// Fewer exceptions means more access.
			if !p.theirs.IsSubset(p.ours) {
				return false
			}
		case p.oursInverted:
			return false
		case p.theirsInverted:
			if !p.ours.IsDisjoint(p.theirs) {
				return false
			}
		default:
			if !p.ours.IsSubset(p.theirs) {
				return false
			}
		}
	}
	return true
}

// IsSubsetResources reports whether other's resource access contains at
// least everything in a's.
func (a *Access[T]) IsSubsetResources(other *Access[T]) bool {
	if a.writesAllResources {
		return other.writesAllResources
	}
	if other.writesAllResources {
		return true
	}
	if a.readsAllResources {
		return other.readsAllResources && a.resourceWrites.IsSubset(&other.resourceWrites)
	}
	if other.readsAllResources {
		return a.resourceWrites.IsSubset(&other.resourceWrites)
	}
	return a.resourceReadsWrites.IsSubset(&other.resourceReadsWrites) &&
		a.resourceWrites.IsSubset(&other.resourceWrites)
}

// IsSubset reports whether other contains at least all access in a.
func (a *Access[T]) IsSubset(other *Access[T]) bool {
	return a.IsSubsetComponents(other) && a.IsSubsetResources(other)
}

func (a *Access[T]) componentConflicts(other *Access[T]) Conflicts {
	var conflicts bitset.BitSet
	for _, p := range a.componentPairs(other) {
		var found bitset.BitSet
		switch {
		case p.writesInverted && p.readsWritesInverted:
			return AllConflicts()
		case p.readsWritesInverted:
			found = bitset.Difference(p.writes, p.readsWrites)
		case p.writesInverted:
			found = bitset.Difference(p.readsWrites, p.writes)
		default:
			found = bitset.Intersection(p.writes, p.readsWrites)
		}
		conflicts.UnionWith(&found)
	}
	return individual(conflicts)
}

// Conflicts returns the elements that a and other cannot access at the same
// time. It returns AllConflicts when the conflict cannot be enumerated, for
// example when both sides write everything except a few components.
func (a *Access[T]) Conflicts(other *Access[T]) Conflicts {
	c := a.componentConflicts(other)
	if c.all {
		return c
	}
	conflicts := &c.indices

	if a.readsAllResources {
		if other.writesAllResources {
			return AllConflicts()
		}
		conflicts.UnionWith(&other.resourceWrites)
	}
	if other.readsAllResources {
		if a.writesAllResources {
			return AllConflicts()
		}
		conflicts.UnionWith(&a.resourceWrites)
	}
	if a.writesAllResources {
		conflicts.UnionWith(&other.resourceReadsWrites)
	}
	if other.writesAllResources {
		conflicts.UnionWith(&a.resourceReadsWrites)
	}

	ours := bitset.Intersection(&a.resourceWrites, &other.resourceReadsWrites)
	conflicts.UnionWith(&ours)
	theirs := bitset.Intersection(&a.resourceReadsWrites, &other.resourceWrites)
	conflicts.UnionWith(&theirs)
	return c
}

// Archetypal iterates over the components accessed archetypally.
func (a *Access[T]) Archetypal() iter.Seq[T] {
	return ids[T](&a.archetypal)
}

// ComponentReadsWrites iterates over the components that a reads or writes,
// or, when inverted is true, the components it can NOT read or write.
func (a *Access[T]) ComponentReadsWrites() (components iter.Seq[T], inverted bool) {
	return ids[T](&a.componentReadsWrites), a.componentReadsWritesInverted
}

// ComponentWrites iterates over the components that a writes, or, when
// inverted is true, the components it can NOT write.
func (a *Access[T]) ComponentWrites() (components iter.Seq[T], inverted bool) {
	return ids[T](&a.componentWrites), a.componentWritesInverted
}

// Clone returns a deep copy of a.
func (a *Access[T]) Clone() *Access[T] {
	c := *a
	c.componentReadsWrites = a.componentReadsWrites.Clone()
	c.componentWrites = a.componentWrites.Clone()
	c.resourceReadsWrites = a.resourceReadsWrites.Clone()
	c.resourceWrites = a.resourceWrites.Clone()
	c.archetypal = a.archetypal.Clone()
	return &c
}

// Equal reports whether a and other record exactly the same access.
func (a *Access[T]) Equal(other *Access[T]) bool {
	return a.componentReadsWritesInverted == other.componentReadsWritesInverted &&
		a.componentWritesInverted == other.componentWritesInverted &&
		a.readsAllResources == other.readsAllResources &&
		a.writesAllResources == other.writesAllResources &&
		a.componentReadsWrites.Equal(&other.componentReadsWrites) &&
		a.componentWrites.Equal(&other.componentWrites) &&
		a.resourceReadsWrites.Equal(&other.resourceReadsWrites) &&
		a.resourceWrites.Equal(&other.resourceWrites) &&
		a.archetypal.Equal(&other.archetypal)
}

func (a *Access[T]) String() string {
	var sb strings.Builder
	sb.WriteString("Access{")
	fmt.Fprintf(&sb, "componentReadsWrites: %s, ", formatIDs[T](&a.componentReadsWrites))
	fmt.Fprintf(&sb, "componentWrites: %s, ", formatIDs[T](&a.componentWrites))
	fmt.Fprintf(&sb, "resourceReadsWrites: %s, ", formatIDs[T](&a.resourceReadsWrites))
	fmt.Fprintf(&sb, "resourceWrites: %s, ", formatIDs[T](&a.resourceWrites))
	fmt.Fprintf(&sb, "componentReadsWritesInverted: %t, ", a.componentReadsWritesInverted)
	fmt.Fprintf(&sb, "componentWritesInverted: %t, ", a.componentWritesInverted)
	fmt.Fprintf(&sb, "readsAllResources: %t, ", a.readsAllResources)
	fmt.Fprintf(&sb, "writesAllResources: %t, ", a.writesAllResources)
	fmt.Fprintf(&sb, "archetypal: %s}", formatIDs[T](&a.archetypal))
	return sb.String()
}

func ids[T Index[T]](b *bitset.BitSet) iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range b.Ones() {
			if !yield(fromIndex[T](i)) {
				return
			}
		}
	}
}

// formatIDs renders the identifiers in b rather than its raw bits.
func formatIDs[T Index[T]](b *bitset.BitSet) string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for id := range ids[T](b) {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprint(&sb, id)
	}
	sb.WriteByte(']')
	return sb.String()
}
