package schedule

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/hupe1980/access"
	"github.com/hupe1980/access/internal/bitset"
	"golang.org/x/sync/errgroup"
)

// Ambiguity is a pair of systems that are not ordered relative to each
// other but whose access conflicts. First sorts before Second.
type Ambiguity struct {
	First     string
	Second    string
	Conflicts access.Conflicts
}

type system[T access.Index[T]] struct {
	name  string
	group *access.Group[T]
}

// Schedule holds named systems, their access and the ordering between them.
//
// Registration (Add, Order) is single-writer. Ambiguities and Stages only
// read and may run concurrently with each other once registration is done.
type Schedule[T access.Index[T]] struct {
	opts    options
	systems []system[T]
	byName  map[string]int
	// succ[i] lists the systems that run after system i.
	succ [][]int
}

// New creates an empty Schedule.
func New[T access.Index[T]](optFns ...Option) *Schedule[T] {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Schedule[T]{
		opts:   opts,
		byName: make(map[string]int),
	}
}

// Add registers a system under name with its access group. The schedule
// takes ownership of g.
func (s *Schedule[T]) Add(name string, g *access.Group[T]) error {
	if name == "" {
		return ErrEmptyName
	}
	if g == nil {
		return fmt.Errorf("%w: %q", ErrNilGroup, name)
	}
	if _, ok := s.byName[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateSystem, name)
	}
	s.byName[name] = len(s.systems)
	s.systems = append(s.systems, system[T]{name: name, group: g})
	s.succ = append(s.succ, nil)
	return nil
}

// Order declares that before runs ahead of after.
func (s *Schedule[T]) Order(before, after string) error {
	b, ok := s.byName[before]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSystem, before)
	}
	a, ok := s.byName[after]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSystem, after)
	}
	if a == b || s.reaches(a, b) {
		return &CycleError{Before: before, After: after}
	}
	if !slices.Contains(s.succ[b], a) {
		s.succ[b] = append(s.succ[b], a)
	}
	return nil
}

// Len returns the number of registered systems.
func (s *Schedule[T]) Len() int {
	return len(s.systems)
}

// Systems returns the system names in registration order.
func (s *Schedule[T]) Systems() []string {
	names := make([]string, len(s.systems))
	for i, sys := range s.systems {
		names[i] = sys.name
	}
	return names
}

// Access returns the access group registered under name.
func (s *Schedule[T]) Access(name string) (*access.Group[T], bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.systems[i].group, true
}

// reaches reports whether to is reachable from from along ordering edges.
func (s *Schedule[T]) reaches(from, to int) bool {
	var seen bitset.BitSet
	stack := []int{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == to {
			return true
		}
		if seen.Contains(uint32(n)) {
			continue
		}
		seen.Insert(uint32(n))
		stack = append(stack, s.succ[n]...)
	}
	return false
}

// descendants returns, per system, the set of systems ordered after it.
func (s *Schedule[T]) descendants() []bitset.BitSet {
	out := make([]bitset.BitSet, len(s.systems))
	for i := range s.systems {
		stack := slices.Clone(s.succ[i])
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if out[i].Contains(uint32(n)) {
				continue
			}
			out[i].Insert(uint32(n))
			stack = append(stack, s.succ[n]...)
		}
	}
	return out
}

// conflicts checks one pair and records which path decided it.
func (s *Schedule[T]) conflicts(a, b *access.Group[T]) access.Conflicts {
	start := time.Now()
	c, coarse := a.CheckConflicts(b)
	s.opts.metricsCollector.RecordCheck(coarse, c.IsEmpty(), time.Since(start))
	return c
}

func (s *Schedule[T]) compatible(a, b *access.Group[T]) bool {
	start := time.Now()
	ok, coarse := a.CheckCompatible(b)
	s.opts.metricsCollector.RecordCheck(coarse, ok, time.Since(start))
	return ok
}

// Ambiguities reports every pair of systems that are not ordered relative
// to each other and whose access conflicts, sorted by name.
//
// Pairs are checked concurrently; the registered groups are only read.
// Conflicts on indices configured with WithIgnoredIndices are dropped, and
// a pair whose conflicts are all ignored is not reported.
func (s *Schedule[T]) Ambiguities(ctx context.Context) ([]Ambiguity, error) {
	start := time.Now()
	reach := s.descendants()

	type pair struct{ i, j int }
	var pairs []pair
	for i := range s.systems {
		for j := i + 1; j < len(s.systems); j++ {
			if reach[i].Contains(uint32(j)) || reach[j].Contains(uint32(i)) {
				continue
			}
			pairs = append(pairs, pair{i, j})
		}
	}

	found := make([]access.Conflicts, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.parallelism)
	for k, p := range pairs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			found[k] = s.conflicts(s.systems[p.i].group, s.systems[p.j].group)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.opts.logger.LogAmbiguityScan(ctx, len(pairs), 0, err)
		s.opts.metricsCollector.RecordAmbiguityScan(len(pairs), 0, time.Since(start), err)
		return nil, err
	}

	var out []Ambiguity
	for k, p := range pairs {
		c := found[k]
		if len(s.opts.ignored) > 0 {
			c = c.Without(s.opts.ignored...)
		}
		if c.IsEmpty() {
			continue
		}
		first, second := s.systems[p.i].name, s.systems[p.j].name
		if second < first {
			first, second = second, first
		}
		out = append(out, Ambiguity{First: first, Second: second, Conflicts: c})
	}
	slices.SortFunc(out, func(a, b Ambiguity) int {
		return cmp.Or(cmp.Compare(a.First, b.First), cmp.Compare(a.Second, b.Second))
	})

	for _, a := range out {
		s.opts.logger.LogAmbiguity(ctx, a.First, a.Second, a.Conflicts)
	}
	s.opts.logger.LogAmbiguityScan(ctx, len(pairs), len(out), nil)
	s.opts.metricsCollector.RecordAmbiguityScan(len(pairs), len(out), time.Since(start), nil)
	return out, nil
}

// Stages groups the systems into consecutive stages. A system is placed in
// the first stage after all systems ordered before it, provided it is
// compatible with every system already in that stage. Systems are tried in
// registration order.
func (s *Schedule[T]) Stages(ctx context.Context) ([][]string, error) {
	start := time.Now()
	n := len(s.systems)

	pending := make([]int, n)
	for _, succ := range s.succ {
		for _, j := range succ {
			pending[j]++
		}
	}

	placed := make([]bool, n)
	var stages [][]string
	for remaining := n; remaining > 0; {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var stage []int
		for i := range n {
			if placed[i] || pending[i] > 0 {
				continue
			}
			if s.fits(i, stage) {
				stage = append(stage, i)
			}
		}

		// The ordering graph is acyclic, so at least one system is ready
		// and an empty stage always accepts it.
		names := make([]string, 0, len(stage))
		for _, i := range stage {
			placed[i] = true
			remaining--
			for _, j := range s.succ[i] {
				pending[j]--
			}
			names = append(names, s.systems[i].name)
		}
		stages = append(stages, names)
	}

	s.opts.logger.LogStages(ctx, len(stages), n)
	s.opts.metricsCollector.RecordStages(len(stages), n, time.Since(start))
	return stages, nil
}

func (s *Schedule[T]) fits(i int, stage []int) bool {
	for _, k := range stage {
		if !s.compatible(s.systems[i].group, s.systems[k].group) {
			return false
		}
	}
	return true
}
