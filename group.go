package access

// Group aggregates the filtered accesses of one unit of work, for example
// every query and resource borrowed by a system.
//
// It keeps the union of all member accesses for a cheap first check and the
// members themselves for a precise pairwise fallback.
type Group[T Index[T]] struct {
	combined Access[T]
	members  []*Filtered[T]
}

// NewGroup creates an empty Group.
func NewGroup[T Index[T]]() *Group[T] {
	return &Group[T]{}
}

// NewGroupFrom creates a Group holding the single member f.
func NewGroupFrom[T Index[T]](f *Filtered[T]) *Group[T] {
	g := &Group[T]{}
	g.Add(f)
	return g
}

// CombinedAccess returns the unfiltered union of all member accesses.
func (g *Group[T]) CombinedAccess() *Access[T] {
	return &g.combined
}

// Members returns the filtered accesses in insertion order. The slice must
// not be modified.
func (g *Group[T]) Members() []*Filtered[T] {
	return g.members
}

// Add adds f to the group. The group takes ownership of f; callers must not
// mutate it afterwards.
func (g *Group[T]) Add(f *Filtered[T]) {
	g.combined.Extend(&f.access)
	g.members = append(g.members, f)
}

// AddUnfilteredResourceRead adds a member that only reads the resource id.
func (g *Group[T]) AddUnfilteredResourceRead(id T) {
	f := MatchesEverything[T]()
	f.AddResourceRead(id)
	g.Add(f)
}

// AddUnfilteredResourceWrite adds a member that only writes the resource id.
func (g *Group[T]) AddUnfilteredResourceWrite(id T) {
	f := MatchesEverything[T]()
	f.AddResourceWrite(id)
	g.Add(f)
}

// Extend moves all members of other into g.
func (g *Group[T]) Extend(other *Group[T]) {
	g.combined.Extend(&other.combined)
	g.members = append(g.members, other.members...)
}

// IsCompatible reports whether g and other can be active at the same time.
//
// The check runs in two steps:
//  1. Coarse: if the combined accesses do not conflict, they are compatible.
//  2. Fine: otherwise every member of g must be compatible with every
//     member of other, which lets With/Without filters prove disjointness.
func (g *Group[T]) IsCompatible(other *Group[T]) bool {
	ok, _ := g.CheckCompatible(other)
	return ok
}

// CheckCompatible is IsCompatible that also reports whether the combined
// accesses alone decided the result. When coarse is false the pairwise
// member fallback ran.
func (g *Group[T]) CheckCompatible(other *Group[T]) (ok, coarse bool) {
	if g.combined.IsCompatible(&other.combined) {
		return true, true
	}
	for _, f := range g.members {
		for _, o := range other.members {
			if !f.IsCompatible(o) {
				return false, false
			}
		}
	}
	return true, false
}

// Conflicts returns the elements that g and other cannot access at the same
// time.
func (g *Group[T]) Conflicts(other *Group[T]) Conflicts {
	conflicts, _ := g.CheckConflicts(other)
	return conflicts
}

// CheckConflicts is Conflicts that also reports whether the combined
// accesses alone decided the result. See CheckCompatible.
func (g *Group[T]) CheckConflicts(other *Group[T]) (conflicts Conflicts, coarse bool) {
	if g.combined.IsCompatible(&other.combined) {
		return conflicts, true
	}
	for _, f := range g.members {
		for _, o := range other.members {
			conflicts.Add(f.Conflicts(o))
			if conflicts.IsAll() {
				return conflicts, false
			}
		}
	}
	return conflicts, false
}

// ConflictsSingle returns the elements that g and the single filtered
// access f cannot access at the same time.
func (g *Group[T]) ConflictsSingle(f *Filtered[T]) Conflicts {
	var conflicts Conflicts
	if g.combined.IsCompatible(&f.access) {
		return conflicts
	}
	for _, m := range g.members {
		conflicts.Add(m.Conflicts(f))
		if conflicts.IsAll() {
			return conflicts
		}
	}
	return conflicts
}

// ReadAll marks the group as reading everything.
//
// Only the combined access changes. The pairwise fallback looks at members,
// so a group without a member that reads everything is still vacuously
// compatible once the coarse check fails.
func (g *Group[T]) ReadAll() {
	g.combined.ReadAll()
}

// WriteAll marks the group as writing everything. See ReadAll.
func (g *Group[T]) WriteAll() {
	g.combined.WriteAll()
}

// Clear removes all accesses and members.
func (g *Group[T]) Clear() {
	g.combined.Clear()
	g.members = nil
}

// Clone returns a deep copy of g.
func (g *Group[T]) Clone() *Group[T] {
	c := &Group[T]{combined: *g.combined.Clone()}
	for _, f := range g.members {
		c.members = append(c.members, f.Clone())
	}
	return c
}
