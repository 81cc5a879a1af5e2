// Package schedule plans units of work ("systems") from their declared access.
//
// A Schedule never runs anything. It answers two questions a runner asks
// before execution:
//
//   - Which pairs of systems are not ordered relative to each other but
//     still conflict? (Ambiguities)
//   - In which stages can systems be grouped so that every stage only holds
//     mutually compatible systems and respects the declared order? (Stages)
//
// # Example
//
//	s := schedule.New[access.ComponentID](schedule.WithLogger(access.NewTextLogger(slog.LevelInfo)))
//	_ = s.Add("movement", movementAccess)
//	_ = s.Add("render", renderAccess)
//	_ = s.Order("movement", "render")
//
//	ambiguities, err := s.Ambiguities(ctx)
//	stages, err := s.Stages(ctx)
//
// Groups handed to Add must not be mutated afterwards; the ambiguity scan
// reads them from several goroutines.
package schedule
