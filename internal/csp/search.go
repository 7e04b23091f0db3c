package csp

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/campusforge/timetable/internal/domain"
)

// ErrCancelled is returned when the caller's context is done. It is not
// part of the core's error taxonomy (spec §7 names exactly three errors);
// it is an implementation-level allowance per spec §5's note that a
// checked cancellation flag may be consulted at the backtrack cadence.
var ErrCancelled = &cancelledError{}

type cancelledError struct{}

func (*cancelledError) Error() string { return "search cancelled" }

type searchState struct {
	ctx        context.Context
	timetable  *domain.Timetable
	domains    Domains
	staticSize map[domain.Variable]int
	cfg        Config
	log        *zap.Logger
	rng        *rand.Rand

	backtracks       int
	assignmentsTried int
}

// backtrack implements the recursion contract of spec §4.5 verbatim:
// pick the MRV variable among the unassigned set, try its domain values
// in order, recurse, and undo on failure. unassigned is consumed by
// value, not mutated in place, so sibling calls at the same depth never
// observe each other's bookkeeping.
func (s *searchState) backtrack(unassigned []domain.Variable) (bool, error) {
	if len(unassigned) == 0 {
		return true, nil
	}
	if s.backtracks > s.cfg.MaxBacktracks {
		return false, nil
	}
	select {
	case <-s.ctx.Done():
		return false, ErrCancelled
	default:
	}

	idx := s.selectMRV(unassigned)
	variable := unassigned[idx]
	rest := without(unassigned, idx)

	for _, candidate := range s.domains[variable] {
		s.assignmentsTried++
		if s.cfg.PrintInterval > 0 && s.assignmentsTried%s.cfg.PrintInterval == 0 {
			s.emitProgress(len(unassigned))
		}

		assignment := domain.Assignment{
			SectionID:  variable.SectionID,
			CourseID:   variable.CourseID,
			TimeSlot:   candidate.TimeSlot,
			Room:       candidate.Room,
			Instructor: candidate.Instructor,
		}

		if !Consistent(s.timetable, assignment, s.cfg) {
			continue
		}

		if err := s.timetable.Add(assignment); err != nil {
			return false, err
		}

		ok, err := s.backtrack(rest)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}

		if err := s.timetable.Remove(assignment); err != nil {
			return false, err
		}
		s.backtracks++

		if s.backtracks > s.cfg.MaxBacktracks {
			return false, nil
		}
	}

	return false, nil
}

// selectMRV returns the index within unassigned of the variable with the
// smallest *static* domain size, ties broken by first-encountered order
// (spec §4.5). Domain sizes are looked up from the size recorded at build
// time, never recomputed from the timetable's current state.
func (s *searchState) selectMRV(unassigned []domain.Variable) int {
	best := 0
	bestSize := s.staticSize[unassigned[0]]
	for i := 1; i < len(unassigned); i++ {
		size := s.staticSize[unassigned[i]]
		if size < bestSize {
			best = i
			bestSize = size
		}
	}
	return best
}

func (s *searchState) emitProgress(remaining int) {
	total := len(s.staticSize)
	assigned := total - remaining
	pct := 0.0
	if total > 0 {
		pct = 100 * float64(assigned) / float64(total)
	}
	s.log.Debug("search progress",
		zap.Float64("percent_assigned", pct),
		zap.Int("backtracks", s.backtracks),
		zap.Int("assignments_tried", s.assignmentsTried),
	)
}

func without(vars []domain.Variable, idx int) []domain.Variable {
	out := make([]domain.Variable, 0, len(vars)-1)
	out = append(out, vars[:idx]...)
	out = append(out, vars[idx+1:]...)
	return out
}

// Solve is the core's single exposed operation (spec §6): given the
// Domains built by BuildDomains, search for a complete Timetable using
// MRV-ordered backtracking with up to cfg.MaxAttempts restarts. It
// returns a fully populated Timetable on success, or a nil Timetable with
// an InputInfeasible/BudgetExhausted/InternalInconsistency error.
func Solve(ctx context.Context, e Entities, domains Domains, reports []EmptyDomainReport, cfg Config, log *zap.Logger) (_ *domain.Timetable, telemetry Telemetry, _ error) {
	cfg = cfg.WithDefaults()
	start := time.Now()
	defer func() { telemetry.GenerationTime = time.Since(start) }()

	if len(reports) > 0 {
		return nil, telemetry, newInputInfeasible(reports)
	}

	staticSize := make(map[domain.Variable]int, len(domains))
	for v, candidates := range domains {
		staticSize[v] = len(candidates)
	}
	variables := e.Variables()

	if len(variables) == 0 {
		return domain.NewTimetable(), telemetry, nil
	}

	maxAttempts := cfg.MaxAttempts
	if cfg.Seed == 0 {
		// A deterministic implementation produces the same search tree on
		// every attempt, so restarts beyond the first cannot help
		// (spec §4.5 design note). We still run one attempt.
		maxAttempts = 1
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		telemetry.Attempts++
		state := &searchState{
			ctx:        ctx,
			timetable:  domain.NewTimetable(),
			domains:    orderedDomains(domains, cfg, attempt),
			staticSize: staticSize,
			cfg:        cfg,
			log:        log,
			rng:        rand.New(rand.NewSource(cfg.Seed + int64(attempt))),
		}

		ok, err := state.backtrack(variables)
		telemetry.merge(Telemetry{Backtracks: state.backtracks, AssignmentsTried: state.assignmentsTried})

		if err != nil {
			if err == ErrCancelled {
				return nil, telemetry, err
			}
			return nil, telemetry, newInternalInconsistency(err)
		}
		if ok {
			return state.timetable, telemetry, nil
		}
	}

	return nil, telemetry, newBudgetExhausted(telemetry)
}

// orderedDomains returns domains unchanged on attempt 0 (the natural,
// fully deterministic order of spec §4.2). On later attempts, when
// cfg.Seed is non-zero, each variable's candidate list is independently
// shuffled to give the restart a genuinely different search order.
func orderedDomains(domains Domains, cfg Config, attempt int) Domains {
	if attempt == 0 || cfg.Seed == 0 {
		return domains
	}
	rng := rand.New(rand.NewSource(cfg.Seed + int64(attempt)))
	shuffled := make(Domains, len(domains))
	for v, candidates := range domains {
		cp := make([]Candidate, len(candidates))
		copy(cp, candidates)
		rng.Shuffle(len(cp), func(i, j int) { cp[i], cp[j] = cp[j], cp[i] })
		shuffled[v] = cp
	}
	return shuffled
}
