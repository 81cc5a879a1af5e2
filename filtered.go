package access

import (
	"fmt"
	"iter"
	"strings"

	"github.com/hupe1980/access/internal/bitset"
)

// Filtered is an Access restricted by With/Without filters in disjunctive
// normal form: an OR of Clause conjunctions.
//
// A filter like (With(A), Or(With(B), Without(C))) is stored expanded as
// Or((With(A), With(B)), (With(A), Without(C))).
//
// No clauses means the access matches nothing; a single empty clause means
// it matches everything. The zero value matches nothing; NewFiltered and
// MatchesEverything return the usual starting point.
type Filtered[T Index[T]] struct {
	access Access[T]
	// Indices that must be present for any match.
	required bitset.BitSet
	clauses  []Clause[T]
}

// NewFiltered returns a Filtered with no access that matches everything.
func NewFiltered[T Index[T]]() *Filtered[T] {
	return MatchesEverything[T]()
}

// MatchesEverything returns a Filtered with no access and a single empty
// clause. It is the TRUE atom.
func MatchesEverything[T Index[T]]() *Filtered[T] {
	return &Filtered[T]{clauses: []Clause[T]{{}}}
}

// MatchesNothing returns a Filtered with no access and no clauses. It is
// the FALSE atom.
func MatchesNothing[T Index[T]]() *Filtered[T] {
	return &Filtered[T]{}
}

// Access returns the underlying unfiltered access.
func (f *Filtered[T]) Access() *Access[T] {
	return &f.access
}

// Required iterates over the identifiers that must be present for a match.
func (f *Filtered[T]) Required() iter.Seq[T] {
	return ids[T](&f.required)
}

// Clauses returns the DNF clauses. The slice must not be modified.
func (f *Filtered[T]) Clauses() []Clause[T] {
	return f.clauses
}

// AddComponentRead adds read access to the component id. Reading a
// component implies it is present, so id is also required and added as a
// With constraint to every clause.
func (f *Filtered[T]) AddComponentRead(id T) {
	f.access.AddComponentRead(id)
	f.AddRequired(id)
	f.AndWith(id)
}

// AddComponentWrite adds exclusive access to the component id, with the
// same presence implications as AddComponentRead.
func (f *Filtered[T]) AddComponentWrite(id T) {
	f.access.AddComponentWrite(id)
	f.AddRequired(id)
	f.AndWith(id)
}

// AddResourceRead adds read access to the resource id. Resources carry no
// structural presence requirement.
func (f *Filtered[T]) AddResourceRead(id T) {
	f.access.AddResourceRead(id)
}

// AddResourceWrite adds exclusive access to the resource id.
func (f *Filtered[T]) AddResourceWrite(id T) {
	f.access.AddResourceWrite(id)
}

// AddRequired marks id as required without touching access or clauses.
func (f *Filtered[T]) AddRequired(id T) {
	f.required.Insert(id.SparseIndex())
}

// AndWith ANDs a With constraint into every clause.
//
// Or(With(A), With(B)) AND With(C) becomes
// Or((With(A), With(C)), (With(B), With(C))).
func (f *Filtered[T]) AndWith(id T) {
	i := id.SparseIndex()
	for k := range f.clauses {
		f.clauses[k].with.Insert(i)
	}
}

// AndWithout ANDs a Without constraint into every clause.
func (f *Filtered[T]) AndWithout(id T) {
	i := id.SparseIndex()
	for k := range f.clauses {
		f.clauses[k].without.Insert(i)
	}
}

// AppendOr ORs other's clauses into f. Since the clause list already is a
// disjunction this is a plain append.
func (f *Filtered[T]) AppendOr(other *Filtered[T]) {
	for k := range other.clauses {
		f.clauses = append(f.clauses, other.clauses[k].Clone())
	}
}

// ExtendAccess adds other's unfiltered access to f and leaves the filters
// untouched.
func (f *Filtered[T]) ExtendAccess(other *Filtered[T]) {
	f.access.Extend(&other.access)
}

// Extend ANDs other into f: access and required sets are unioned, and the
// clause lists are cross-multiplied.
//
// Or(With(A), Without(B)) AND Or(With(C), Without(D)) becomes
// Or((With(A), With(C)), (With(A), Without(D)), (Without(B), With(C)),
// (Without(B), Without(D))).
func (f *Filtered[T]) Extend(other *Filtered[T]) {
	f.access.Extend(&other.access)
	f.required.UnionWith(&other.required)

	// A single clause distributes over f in place.
	if len(other.clauses) == 1 {
		for k := range f.clauses {
			f.clauses[k].union(&other.clauses[0])
		}
		return
	}

	product := make([]Clause[T], 0, len(f.clauses)*len(other.clauses))
	for k := range f.clauses {
		for j := range other.clauses {
			c := f.clauses[k].Clone()
			c.union(&other.clauses[j])
			product = append(product, c)
		}
	}
	f.clauses = product
}

// IsCompatible reports whether f and other can be active at the same time.
//
// If the raw accesses are compatible the answer is yes. Otherwise the
// filters must prove the matches disjoint: every clause of f has to be
// ruled out by every clause of other.
//
// Or(With(A), Without(B)) writing C is compatible with (With(B), Without(A))
// writing C, but Or(Without(A), Without(B)) is not compatible with
// Or(With(A), With(B)).
func (f *Filtered[T]) IsCompatible(other *Filtered[T]) bool {
	if f.access.IsCompatible(&other.access) {
		return true
	}
	for k := range f.clauses {
		for j := range other.clauses {
			if !f.clauses[k].IsRuledOutBy(&other.clauses[j]) {
				return false
			}
		}
	}
	return true
}

// Conflicts returns the elements that f and other cannot access at the
// same time. When the filters keep them apart there is no conflict.
func (f *Filtered[T]) Conflicts(other *Filtered[T]) Conflicts {
	if !f.IsCompatible(other) {
		return f.access.Conflicts(&other.access)
	}
	return NoConflicts()
}

// IsSubset reports whether other requires and accesses at least everything
// f does.
func (f *Filtered[T]) IsSubset(other *Filtered[T]) bool {
	return f.required.IsSubset(&other.required) && f.access.IsSubset(&other.access)
}

// ReadAll grants read access to every component and resource.
func (f *Filtered[T]) ReadAll() {
	f.access.ReadAll()
}

// WriteAll grants write access to every component and resource.
func (f *Filtered[T]) WriteAll() {
	f.access.WriteAll()
}

// ReadAllComponents grants read access to every component.
func (f *Filtered[T]) ReadAllComponents() {
	f.access.ReadAllComponents()
}

// WriteAllComponents grants write access to every component.
func (f *Filtered[T]) WriteAllComponents() {
	f.access.WriteAllComponents()
}

// WithFilters iterates over every With identifier across all clauses.
func (f *Filtered[T]) WithFilters() iter.Seq[T] {
	return func(yield func(T) bool) {
		for k := range f.clauses {
			for id := range f.clauses[k].With() {
				if !yield(id) {
					return
				}
			}
		}
	}
}

// WithoutFilters iterates over every Without identifier across all clauses.
func (f *Filtered[T]) WithoutFilters() iter.Seq[T] {
	return func(yield func(T) bool) {
		for k := range f.clauses {
			for id := range f.clauses[k].Without() {
				if !yield(id) {
					return
				}
			}
		}
	}
}

// Clone returns a deep copy of f.
func (f *Filtered[T]) Clone() *Filtered[T] {
	c := &Filtered[T]{
		access:   *f.access.Clone(),
		required: f.required.Clone(),
	}
	if f.clauses != nil {
		c.clauses = make([]Clause[T], len(f.clauses))
		for k := range f.clauses {
			c.clauses[k] = f.clauses[k].Clone()
		}
	}
	return c
}

// Equal reports whether f and other have the same access, required set and
// clauses in the same order.
func (f *Filtered[T]) Equal(other *Filtered[T]) bool {
	if !f.access.Equal(&other.access) || !f.required.Equal(&other.required) {
		return false
	}
	if len(f.clauses) != len(other.clauses) {
		return false
	}
	for k := range f.clauses {
		if !f.clauses[k].Equal(&other.clauses[k]) {
			return false
		}
	}
	return true
}

func (f *Filtered[T]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Filtered{access: %s, required: %s, clauses: [", f.access.String(), formatIDs[T](&f.required))
	for k := range f.clauses {
		if k > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.clauses[k].String())
	}
	sb.WriteString("]}")
	return sb.String()
}
