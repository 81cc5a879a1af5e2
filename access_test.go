package access

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cid = ComponentID

func accessOf(reads, writes []cid) *Access[cid] {
	a := NewAccess[cid]()
	for _, id := range reads {
		a.AddComponentRead(id)
	}
	for _, id := range writes {
		a.AddComponentWrite(id)
	}
	return a
}

func TestAccess_ReadAllConflicts(t *testing.T) {
	// read_all / single write
	a := accessOf(nil, []cid{0})
	b := NewAccess[cid]()
	b.ReadAll()

	assert.False(t, b.IsCompatible(a))
	assert.False(t, a.IsCompatible(b))

	// read_all / read_all
	a = NewAccess[cid]()
	a.ReadAll()
	b = NewAccess[cid]()
	b.ReadAll()

	assert.True(t, b.IsCompatible(a))
	assert.True(t, b.Conflicts(a).IsEmpty())
}

func TestAccess_Conflicts(t *testing.T) {
	a := accessOf([]cid{0, 1}, nil)
	b := accessOf([]cid{0}, []cid{1})

	assert.True(t, a.Conflicts(b).Equal(ConflictsOf[cid](1)), "got %s", a.Conflicts(b))

	a12 := accessOf([]cid{1, 2}, nil)

	assert.True(t, a12.Conflicts(b).Equal(ConflictsOf[cid](1)), "got %s", a12.Conflicts(b))
	assert.True(t, b.Conflicts(a12).Equal(ConflictsOf[cid](1)), "got %s", b.Conflicts(a12))
	assert.False(t, a12.IsCompatible(b))

	c := accessOf(nil, []cid{0, 1})

	assert.True(t, a.Conflicts(c).Equal(ConflictsOf[cid](0, 1)), "got %s", a.Conflicts(c))
	assert.True(t, b.Conflicts(c).Equal(ConflictsOf[cid](0, 1)), "got %s", b.Conflicts(c))

	d := accessOf([]cid{0}, nil)

	assert.True(t, d.Conflicts(a).IsEmpty())
	assert.True(t, d.Conflicts(b).IsEmpty())
	assert.True(t, d.Conflicts(c).Equal(ConflictsOf[cid](0)), "got %s", d.Conflicts(c))
}

func TestAccess_AddAndHas(t *testing.T) {
	a := NewAccess[cid]()
	a.AddComponentRead(1)
	a.AddComponentWrite(2)
	a.AddResourceRead(3)
	a.AddResourceWrite(4)
	a.AddArchetypal(5)

	assert.True(t, a.HasComponentRead(1))
	assert.False(t, a.HasComponentWrite(1))
	assert.True(t, a.HasComponentRead(2), "write implies read")
	assert.True(t, a.HasComponentWrite(2))
	assert.True(t, a.HasResourceRead(3))
	assert.False(t, a.HasResourceWrite(3))
	assert.True(t, a.HasResourceRead(4))
	assert.True(t, a.HasResourceWrite(4))
	assert.True(t, a.HasArchetypal(5))
	assert.False(t, a.HasComponentRead(5), "archetypal is not a read")

	assert.True(t, a.HasAnyComponentRead())
	assert.True(t, a.HasAnyComponentWrite())
	assert.True(t, a.HasAnyResourceRead())
	assert.True(t, a.HasAnyResourceWrite())

	assert.False(t, a.HasReadAll())
	assert.False(t, a.HasWriteAll())

	empty := NewAccess[cid]()
	assert.False(t, empty.HasAnyComponentRead())
	assert.False(t, empty.HasAnyComponentWrite())
	assert.False(t, empty.HasAnyResourceRead())
	assert.False(t, empty.HasAnyResourceWrite())
}

func TestAccess_AllFlags(t *testing.T) {
	a := NewAccess[cid]()
	a.ReadAll()

	assert.True(t, a.HasReadAll())
	assert.True(t, a.HasReadAllComponents())
	assert.True(t, a.HasReadAllResources())
	assert.False(t, a.HasWriteAllComponents())
	assert.False(t, a.HasWriteAllResources())
	assert.True(t, a.HasComponentRead(1000))
	assert.True(t, a.HasResourceRead(1000))
	assert.False(t, a.HasComponentWrite(1000))

	a.WriteAll()
	assert.True(t, a.HasWriteAll())
	assert.True(t, a.HasComponentWrite(1000))
	assert.True(t, a.HasResourceWrite(1000))

	r := NewAccess[cid]()
	r.WriteAllResources()
	assert.True(t, r.HasReadAllResources(), "writing all resources implies reading them")
}

func TestAccess_InvertedAddAndRemove(t *testing.T) {
	a := NewAccess[cid]()
	a.WriteAllComponents()
	a.RemoveComponentRead(3)

	assert.False(t, a.HasComponentRead(3))
	assert.False(t, a.HasComponentWrite(3))
	assert.True(t, a.HasComponentRead(2))
	assert.True(t, a.HasComponentWrite(2))
	assert.False(t, a.HasReadAllComponents())

	a.AddComponentRead(3)
	assert.True(t, a.HasComponentRead(3))
	assert.False(t, a.HasComponentWrite(3))

	a.AddComponentWrite(3)
	assert.True(t, a.HasWriteAllComponents())

	a.RemoveComponentWrite(7)
	assert.True(t, a.HasComponentRead(7))
	assert.False(t, a.HasComponentWrite(7))
}

func TestAccess_RemoveNonInverted(t *testing.T) {
	a := accessOf([]cid{1}, []cid{2})

	a.RemoveComponentWrite(2)
	assert.True(t, a.HasComponentRead(2))
	assert.False(t, a.HasComponentWrite(2))

	a.RemoveComponentRead(1)
	assert.False(t, a.HasComponentRead(1))

	// Removing something never added is a no-op.
	a.RemoveComponentRead(99)
	assert.False(t, a.HasComponentRead(99))
}

func readAllExcept(except ...cid) *Access[cid] {
	a := NewAccess[cid]()
	a.ReadAllComponents()
	for _, id := range except {
		a.RemoveComponentRead(id)
	}
	return a
}

func TestAccess_Extend(t *testing.T) {
	t.Run("plain union", func(t *testing.T) {
		a := accessOf([]cid{1}, nil)
		a.Extend(accessOf([]cid{2}, []cid{3}))

		assert.True(t, a.HasComponentRead(1))
		assert.True(t, a.HasComponentRead(2))
		assert.True(t, a.HasComponentWrite(3))
		assert.False(t, a.HasComponentWrite(2))
	})

	t.Run("inverted with explicit", func(t *testing.T) {
		a := readAllExcept(3, 4)
		a.Extend(accessOf([]cid{3}, nil))

		assert.True(t, a.HasComponentRead(3))
		assert.False(t, a.HasComponentRead(4))
		assert.True(t, a.HasComponentRead(100))
	})

	t.Run("explicit with inverted", func(t *testing.T) {
		a := accessOf([]cid{1}, nil)
		a.Extend(readAllExcept(1, 2))

		assert.True(t, a.HasComponentRead(1))
		assert.False(t, a.HasComponentRead(2))
		assert.True(t, a.HasComponentRead(5))
		assert.True(t, a.HasComponentRead(0))
		assert.False(t, a.HasReadAllComponents())
	})

	t.Run("explicit wider than inverted", func(t *testing.T) {
		a := accessOf([]cid{9}, nil)
		a.Extend(readAllExcept(1))

		assert.True(t, a.HasComponentRead(9))
		assert.False(t, a.HasComponentRead(1))
		assert.True(t, a.HasComponentRead(4))
	})

	t.Run("both inverted", func(t *testing.T) {
		a := readAllExcept(1, 2)
		a.Extend(readAllExcept(2, 3))

		assert.True(t, a.HasComponentRead(1))
		assert.False(t, a.HasComponentRead(2))
		assert.True(t, a.HasComponentRead(3))
	})

	t.Run("resources", func(t *testing.T) {
		a := NewAccess[cid]()
		a.AddResourceRead(1)
		b := NewAccess[cid]()
		b.AddResourceWrite(2)
		b.WriteAllResources()

		a.Extend(b)
		assert.True(t, a.HasResourceRead(1))
		assert.True(t, a.HasResourceWrite(2))
		assert.True(t, a.HasWriteAllResources())
		assert.True(t, a.HasReadAllResources())
	})
}

func TestAccess_RemoveDoesNotCommuteWithExtend(t *testing.T) {
	// A ∪ (B ∖ A)
	a1 := accessOf([]cid{0}, nil)
	b1 := accessOf([]cid{0, 1}, nil)
	b1.RemoveComponentRead(0)
	a1.Extend(b1)

	// (A ∪ B) ∖ A
	a2 := accessOf([]cid{0}, nil)
	b2 := accessOf([]cid{0, 1}, nil)
	a2.Extend(b2)
	a2.RemoveComponentRead(0)

	assert.True(t, a1.HasComponentRead(0))
	assert.False(t, a2.HasComponentRead(0))
	assert.True(t, a1.HasComponentRead(1))
	assert.True(t, a2.HasComponentRead(1))
	assert.False(t, a1.Equal(a2))
}

func TestAccess_InvertedCompatibility(t *testing.T) {
	writeAll := func() *Access[cid] {
		a := NewAccess[cid]()
		a.WriteAllComponents()
		return a
	}

	t.Run("write all vs write all", func(t *testing.T) {
		a, b := writeAll(), writeAll()
		assert.False(t, a.IsCompatible(b))
		assert.True(t, a.Conflicts(b).IsAll())
	})

	t.Run("write all except vs read of exception", func(t *testing.T) {
		a := writeAll()
		a.RemoveComponentRead(1)
		b := accessOf([]cid{1}, nil)

		assert.True(t, a.IsCompatible(b))
		assert.True(t, b.IsCompatible(a))
		assert.True(t, a.Conflicts(b).IsEmpty())
	})

	t.Run("write all except vs read outside exceptions", func(t *testing.T) {
		a := writeAll()
		a.RemoveComponentRead(1)
		b := accessOf([]cid{1, 2}, nil)

		assert.False(t, a.IsCompatible(b))
		assert.True(t, a.Conflicts(b).Equal(ConflictsOf[cid](2)), "got %s", a.Conflicts(b))
	})

	t.Run("write vs read all except", func(t *testing.T) {
		a := accessOf(nil, []cid{1, 2})
		b := readAllExcept(1)

		assert.False(t, a.IsCompatible(b))
		assert.True(t, a.Conflicts(b).Equal(ConflictsOf[cid](2)), "got %s", a.Conflicts(b))

		a = accessOf(nil, []cid{1})
		assert.True(t, a.IsCompatible(b))
	})

	t.Run("read all vs read all except", func(t *testing.T) {
		a := NewAccess[cid]()
		a.ReadAllComponents()
		assert.True(t, a.IsCompatible(readAllExcept(4)))
	})
}

func TestAccess_ResourceCompatibility(t *testing.T) {
	tests := []struct {
		name       string
		a, b       func(*Access[cid])
		compatible bool
		conflicts  Conflicts
	}{
		{
			name:       "read vs read",
			a:          func(a *Access[cid]) { a.AddResourceRead(1) },
			b:          func(b *Access[cid]) { b.AddResourceRead(1) },
			compatible: true,
			conflicts:  NoConflicts(),
		},
		{
			name:       "write vs read",
			a:          func(a *Access[cid]) { a.AddResourceWrite(1) },
			b:          func(b *Access[cid]) { b.AddResourceRead(1) },
			compatible: false,
			conflicts:  ConflictsOf[cid](1),
		},
		{
			name:       "write vs other read",
			a:          func(a *Access[cid]) { a.AddResourceWrite(1) },
			b:          func(b *Access[cid]) { b.AddResourceRead(2) },
			compatible: true,
			conflicts:  NoConflicts(),
		},
		{
			name:       "write all vs read",
			a:          func(a *Access[cid]) { a.WriteAllResources() },
			b:          func(b *Access[cid]) { b.AddResourceRead(3) },
			compatible: false,
			conflicts:  ConflictsOf[cid](3),
		},
		{
			name:       "write all vs nothing",
			a:          func(a *Access[cid]) { a.WriteAllResources() },
			b:          func(*Access[cid]) {},
			compatible: true,
			conflicts:  NoConflicts(),
		},
		{
			name:       "read all vs write",
			a:          func(a *Access[cid]) { a.ReadAllResources() },
			b:          func(b *Access[cid]) { b.AddResourceWrite(2) },
			compatible: false,
			conflicts:  ConflictsOf[cid](2),
		},
		{
			name:       "read all vs write all",
			a:          func(a *Access[cid]) { a.ReadAllResources() },
			b:          func(b *Access[cid]) { b.WriteAllResources() },
			compatible: false,
			conflicts:  AllConflicts(),
		},
		{
			name:       "read all vs read all",
			a:          func(a *Access[cid]) { a.ReadAllResources() },
			b:          func(b *Access[cid]) { b.ReadAllResources() },
			compatible: true,
			conflicts:  NoConflicts(),
		},
		{
			name: "read all with explicit write vs read",
			a: func(a *Access[cid]) {
				a.AddResourceWrite(5)
				a.ReadAllResources()
			},
			b:          func(b *Access[cid]) { b.AddResourceRead(5) },
			compatible: false,
			conflicts:  ConflictsOf[cid](5),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, b := NewAccess[cid](), NewAccess[cid]()
			tc.a(a)
			tc.b(b)

			assert.Equal(t, tc.compatible, a.IsResourcesCompatible(b))
			assert.Equal(t, tc.compatible, b.IsResourcesCompatible(a))
			assert.True(t, tc.conflicts.Equal(a.Conflicts(b)), "got %s, want %s", a.Conflicts(b), tc.conflicts)
			assert.True(t, tc.conflicts.Equal(b.Conflicts(a)), "got %s, want %s", b.Conflicts(a), tc.conflicts)
		})
	}
}

func TestAccess_ArchetypalNeverConflicts(t *testing.T) {
	a := NewAccess[cid]()
	a.AddArchetypal(5)
	b := accessOf(nil, []cid{5})

	assert.True(t, a.IsCompatible(b))
	assert.True(t, a.Conflicts(b).IsEmpty())
	assert.Equal(t, []cid{5}, slices.Collect(a.Archetypal()))
}

func TestAccess_IsSubset(t *testing.T) {
	tests := []struct {
		name   string
		a, b   func() *Access[cid]
		subset bool
	}{
		{
			name:   "empty in anything",
			a:      NewAccess[cid],
			b:      func() *Access[cid] { return accessOf([]cid{1}, nil) },
			subset: true,
		},
		{
			name:   "reads in reads",
			a:      func() *Access[cid] { return accessOf([]cid{1}, nil) },
			b:      func() *Access[cid] { return accessOf([]cid{1, 2}, nil) },
			subset: true,
		},
		{
			name:   "write not in read",
			a:      func() *Access[cid] { return accessOf(nil, []cid{1}) },
			b:      func() *Access[cid] { return accessOf([]cid{1}, nil) },
			subset: false,
		},
		{
			name:   "explicit in inverted",
			a:      func() *Access[cid] { return accessOf([]cid{1}, nil) },
			b:      func() *Access[cid] { return readAllExcept(2) },
			subset: true,
		},
		{
			name:   "exception hit",
			a:      func() *Access[cid] { return accessOf([]cid{2}, nil) },
			b:      func() *Access[cid] { return readAllExcept(2) },
			subset: false,
		},
		{
			name:   "inverted in explicit",
			a:      func() *Access[cid] { return readAllExcept(2) },
			b:      func() *Access[cid] { return accessOf([]cid{1, 3}, nil) },
			subset: false,
		},
		{
			name:   "inverted in wider inverted",
			a:      func() *Access[cid] { return readAllExcept(1, 2) },
			b:      func() *Access[cid] { return readAllExcept(2) },
			subset: true,
		},
		{
			name:   "inverted in narrower inverted",
			a:      func() *Access[cid] { return readAllExcept(2) },
			b:      func() *Access[cid] { return readAllExcept(1, 2) },
			subset: false,
		},
		{
			name: "resource read in read all",
			a: func() *Access[cid] {
				a := NewAccess[cid]()
				a.AddResourceRead(4)
				return a
			},
			b: func() *Access[cid] {
				b := NewAccess[cid]()
				b.ReadAllResources()
				return b
			},
			subset: true,
		},
		{
			name: "resource write in read all",
			a: func() *Access[cid] {
				a := NewAccess[cid]()
				a.AddResourceWrite(4)
				return a
			},
			b: func() *Access[cid] {
				b := NewAccess[cid]()
				b.ReadAllResources()
				return b
			},
			subset: false,
		},
		{
			name: "write all resources in read all",
			a: func() *Access[cid] {
				a := NewAccess[cid]()
				a.WriteAllResources()
				return a
			},
			b: func() *Access[cid] {
				b := NewAccess[cid]()
				b.ReadAllResources()
				return b
			},
			subset: false,
		},
		{
			name: "anything in write all",
			a: func() *Access[cid] {
				a := NewAccess[cid]()
				a.AddResourceWrite(4)
				a.ReadAllResources()
				return a
			},
			b: func() *Access[cid] {
				b := NewAccess[cid]()
				b.WriteAllResources()
				return b
			},
			subset: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.subset, tc.a().IsSubset(tc.b()))
		})
	}
}

func TestAccess_ClearWritesAndClear(t *testing.T) {
	a := accessOf([]cid{1}, []cid{2})
	a.AddResourceWrite(3)
	a.WriteAllResources()

	a.ClearWrites()
	assert.False(t, a.HasAnyComponentWrite())
	assert.False(t, a.HasAnyResourceWrite())
	assert.True(t, a.HasComponentRead(2))
	assert.True(t, a.HasResourceRead(3))
	assert.True(t, a.HasReadAllResources())

	a.Clear()
	assert.True(t, a.Equal(NewAccess[cid]()))
}

func TestAccess_ComponentIterators(t *testing.T) {
	a := accessOf([]cid{4}, []cid{1, 7})

	writes, inverted := a.ComponentWrites()
	assert.False(t, inverted)
	assert.Equal(t, []cid{1, 7}, slices.Collect(writes))

	rw, inverted := a.ComponentReadsWrites()
	assert.False(t, inverted)
	assert.Equal(t, []cid{1, 4, 7}, slices.Collect(rw))

	a.WriteAllComponents()
	a.RemoveComponentWrite(3)
	writes, inverted = a.ComponentWrites()
	assert.True(t, inverted)
	assert.Equal(t, []cid{3}, slices.Collect(writes))
}

func TestAccess_CloneAndEqual(t *testing.T) {
	a := accessOf([]cid{1, 2}, []cid{3})
	a.AddArchetypal(5)
	a.ReadAll()

	c := a.Clone()
	require.True(t, a.Equal(c))

	c.AddResourceWrite(9)
	assert.False(t, a.Equal(c))
	assert.False(t, a.HasResourceWrite(9), "clone must not share storage")
}

func TestAccess_String(t *testing.T) {
	a := accessOf([]cid{1}, []cid{2})
	s := a.String()

	assert.Contains(t, s, "componentReadsWrites: [ComponentID(1), ComponentID(2)]")
	assert.Contains(t, s, "componentWrites: [ComponentID(2)]")
	assert.Contains(t, s, "readsAllResources: false")
}

func BenchmarkAccess_IsCompatible(b *testing.B) {
	x := NewAccess[cid]()
	y := NewAccess[cid]()
	for i := cid(0); i < 128; i += 2 {
		x.AddComponentWrite(i)
		y.AddComponentRead(i + 1)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = x.IsCompatible(y)
	}
}

func BenchmarkAccess_Conflicts(b *testing.B) {
	x := NewAccess[cid]()
	y := NewAccess[cid]()
	for i := cid(0); i < 128; i++ {
		x.AddComponentWrite(i)
		y.AddComponentRead(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = x.Conflicts(y)
	}
}
