package access

import "fmt"

// Index is a domain identifier that maps to a dense, zero-based integer.
//
// The mapping is owned by the caller's index space (a component or resource
// registry). Identifiers are only comparable when they come from the same
// space; mixing spaces yields meaningless, but not failing, results.
//
// FromSparseIndex is called on the zero value of T and must not depend on
// the receiver.
type Index[T any] interface {
	SparseIndex() uint32
	FromSparseIndex(i uint32) T
}

// ComponentID is a dense identifier for a component or resource kind.
type ComponentID uint32

// SparseIndex implements Index.
func (id ComponentID) SparseIndex() uint32 { return uint32(id) }

// FromSparseIndex implements Index.
func (ComponentID) FromSparseIndex(i uint32) ComponentID { return ComponentID(i) }

func (id ComponentID) String() string {
	return fmt.Sprintf("ComponentID(%d)", uint32(id))
}

func fromIndex[T Index[T]](i uint32) T {
	var zero T
	return zero.FromSparseIndex(i)
}
