package csp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campusforge/timetable/internal/domain"
)

func solvableEntities() Entities {
	return Entities{
		Courses: []domain.Course{{ID: "C1", Type: "Lecture"}},
		Instructors: []*domain.Instructor{
			{ID: "I1", UnavailableDays: map[string]bool{}, QualifiedCourses: map[string]bool{"C1": true}},
		},
		Rooms: []domain.Room{{ID: "R1", Type: domain.RoomClassroom}},
		Sections: []domain.Section{
			{ID: "S1", Courses: []string{"C1"}},
			{ID: "S2", Courses: []string{"C1"}},
		},
		TimeSlots: []domain.TimeSlot{
			{ID: "T1", Day: "Monday", StartTime: "09:00", EndTime: "10:00"},
			{ID: "T2", Day: "Tuesday", StartTime: "09:00", EndTime: "10:00"},
		},
	}
}

func TestSolveFindsCompleteTimetable(t *testing.T) {
	e := solvableEntities()
	cfg := Config{}.WithDefaults()
	domains, reports := BuildDomains(e, cfg, zap.NewNop())
	require.Empty(t, reports)

	tt, telemetry, err := Solve(context.Background(), e, domains, reports, cfg, zap.NewNop())

	require.NoError(t, err)
	assert.Len(t, tt.Assignments, 2)
	assert.Equal(t, 1, telemetry.Attempts, "a deterministic (zero-seed) solve runs exactly one attempt")
}

func TestSolveIsDeterministicAcrossRuns(t *testing.T) {
	e := solvableEntities()
	cfg := Config{}.WithDefaults()
	domains, reports := BuildDomains(e, cfg, zap.NewNop())

	tt1, _, err := Solve(context.Background(), e, domains, reports, cfg, zap.NewNop())
	require.NoError(t, err)
	tt2, _, err := Solve(context.Background(), e, domains, reports, cfg, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, tt1.Assignments, len(tt2.Assignments))
	for i := range tt1.Assignments {
		assert.Equal(t, tt1.Assignments[i].Variable(), tt2.Assignments[i].Variable())
		assert.Equal(t, tt1.Assignments[i].TimeSlot.ID, tt2.Assignments[i].TimeSlot.ID)
	}
}

func TestSolveReturnsInputInfeasibleForEmptyDomain(t *testing.T) {
	e := solvableEntities()
	e.Instructors = nil
	cfg := Config{}.WithDefaults()
	domains, reports := BuildDomains(e, cfg, zap.NewNop())
	require.NotEmpty(t, reports)

	tt, _, err := Solve(context.Background(), e, domains, reports, cfg, zap.NewNop())

	require.Error(t, err)
	assert.Nil(t, tt)
}

func TestSolveReturnsBudgetExhaustedWhenNoAssignmentFits(t *testing.T) {
	e := Entities{
		Courses: []domain.Course{{ID: "C1"}},
		Instructors: []*domain.Instructor{
			{ID: "I1", UnavailableDays: map[string]bool{}, QualifiedCourses: map[string]bool{"C1": true}},
		},
		Rooms: []domain.Room{{ID: "R1", Type: domain.RoomClassroom}},
		Sections: []domain.Section{
			{ID: "S1", Courses: []string{"C1"}},
			{ID: "S2", Courses: []string{"C1"}},
		},
		TimeSlots: []domain.TimeSlot{
			{ID: "T1", Day: "Monday"},
		},
	}
	cfg := Config{}.WithDefaults()
	domains, reports := BuildDomains(e, cfg, zap.NewNop())
	require.Empty(t, reports)

	tt, _, err := Solve(context.Background(), e, domains, reports, cfg, zap.NewNop())

	require.Error(t, err)
	assert.Nil(t, tt)
}

func TestSolveWithNoVariablesReturnsEmptyTimetable(t *testing.T) {
	e := Entities{}
	cfg := Config{}.WithDefaults()
	domains, reports := BuildDomains(e, cfg, zap.NewNop())

	tt, _, err := Solve(context.Background(), e, domains, reports, cfg, zap.NewNop())

	require.NoError(t, err)
	assert.Empty(t, tt.Assignments)
}

func TestSolveRespectsCancelledContext(t *testing.T) {
	e := solvableEntities()
	cfg := Config{}.WithDefaults()
	domains, reports := BuildDomains(e, cfg, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Solve(ctx, e, domains, reports, cfg, zap.NewNop())
	assert.ErrorIs(t, err, ErrCancelled)
}
