package bitset

import (
	"iter"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// BitSet is a growable set of dense uint32 indices.
//
// BitSet is not safe for concurrent mutation. Concurrent reads are safe as
// long as no goroutine mutates the set at the same time.
//
// Copying a BitSet by value shares the underlying storage; use Clone for an
// independent copy.
type BitSet struct {
	rb     *roaring.Bitmap
	length uint64
}

// New creates an empty BitSet.
func New() *BitSet {
	return &BitSet{}
}

// Of creates a BitSet containing the given indices.
func Of(indices ...uint32) *BitSet {
	b := &BitSet{}
	for _, i := range indices {
		b.Insert(i)
	}
	return b
}

func (b *BitSet) bitmap() *roaring.Bitmap {
	if b.rb == nil {
		b.rb = roaring.New()
	}
	return b.rb
}

// Len returns the logical length in bits. All set bits are below Len.
func (b *BitSet) Len() uint64 {
	return b.length
}

// Grow ensures Len is at least n. Newly covered bits are unset.
func (b *BitSet) Grow(n uint64) {
	if n > b.length {
		b.length = n
	}
}

// Insert sets bit i, growing the set if needed.
func (b *BitSet) Insert(i uint32) {
	b.Grow(uint64(i) + 1)
	b.bitmap().Add(i)
}

// Remove clears bit i. Removing an index beyond Len is a no-op.
func (b *BitSet) Remove(i uint32) {
	if b.rb == nil {
		return
	}
	b.rb.Remove(i)
}

// Contains reports whether bit i is set.
func (b *BitSet) Contains(i uint32) bool {
	return b.rb != nil && b.rb.Contains(i)
}

// IsClear reports whether no bit is set.
func (b *BitSet) IsClear() bool {
	return b.rb == nil || b.rb.IsEmpty()
}

// Count returns the number of set bits.
func (b *BitSet) Count() int {
	if b.rb == nil {
		return 0
	}
	return int(b.rb.GetCardinality())
}

// Clear unsets every bit. The length is kept.
func (b *BitSet) Clear() {
	if b.rb != nil {
		b.rb.Clear()
	}
}

// UnionWith sets b to b ∪ other. The length grows to the larger of the two.
func (b *BitSet) UnionWith(other *BitSet) {
	b.Grow(other.length)
	if other.IsClear() {
		return
	}
	b.bitmap().Or(other.rb)
}

// IntersectWith sets b to b ∩ other.
func (b *BitSet) IntersectWith(other *BitSet) {
	if b.IsClear() {
		return
	}
	if other.IsClear() {
		b.rb.Clear()
		return
	}
	b.rb.And(other.rb)
}

// DifferenceWith sets b to b ∖ other.
func (b *BitSet) DifferenceWith(other *BitSet) {
	if b.IsClear() || other.IsClear() {
		return
	}
	b.rb.AndNot(other.rb)
}

// ToggleAll flips every bit in [0, Len).
func (b *BitSet) ToggleAll() {
	if b.length == 0 {
		return
	}
	b.bitmap().Flip(0, b.length)
}

// IsSubset reports whether every bit of b is also set in other.
func (b *BitSet) IsSubset(other *BitSet) bool {
	if b.IsClear() {
		return true
	}
	if other.IsClear() {
		return false
	}
	return b.rb.AndCardinality(other.rb) == b.rb.GetCardinality()
}

// IsDisjoint reports whether b and other have no bit in common.
func (b *BitSet) IsDisjoint(other *BitSet) bool {
	if b.IsClear() || other.IsClear() {
		return true
	}
	return !b.rb.Intersects(other.rb)
}

// Intersection returns a new set a ∩ b with the length of a.
func Intersection(a, b *BitSet) BitSet {
	out := a.Clone()
	out.IntersectWith(b)
	return out
}

// Difference returns a new set a ∖ b with the length of a.
func Difference(a, b *BitSet) BitSet {
	out := a.Clone()
	out.DifferenceWith(b)
	return out
}

// Ones iterates over the set bits in ascending order.
func (b *BitSet) Ones() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		if b.rb == nil {
			return
		}
		it := b.rb.Iterator()
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}

// Clone returns a deep copy of the set.
func (b *BitSet) Clone() BitSet {
	out := BitSet{length: b.length}
	if b.rb != nil {
		out.rb = b.rb.Clone()
	}
	return out
}

// Equal reports whether b and other contain the same bits. Length is ignored.
func (b *BitSet) Equal(other *BitSet) bool {
	if b.IsClear() || other.IsClear() {
		return b.IsClear() && other.IsClear()
	}
	return b.rb.Equals(other.rb)
}

// String renders the set bits, e.g. "[1 5 9]".
func (b *BitSet) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for i := range b.Ones() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(strconv.FormatUint(uint64(i), 10))
	}
	sb.WriteByte(']')
	return sb.String()
}
