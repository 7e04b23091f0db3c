package csp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusforge/timetable/internal/domain"
)

func TestEvaluateReportsSuccessRateAndNoViolationsOnCleanSolve(t *testing.T) {
	e := Entities{
		Sections: []domain.Section{{ID: "S1", Courses: []string{"C1"}}},
		TimeSlots: []domain.TimeSlot{
			{ID: "T1", Day: "Monday", StartTime: "09:00"},
			{ID: "T2", Day: "Tuesday", StartTime: "09:00"},
		},
	}
	tt := domain.NewTimetable()
	require.NoError(t, tt.Add(domain.Assignment{
		SectionID: "S1", CourseID: "C1",
		TimeSlot:   &domain.TimeSlot{ID: "T1", Day: "Monday", StartTime: "09:00"},
		Room:       &domain.Room{ID: "R1"},
		Instructor: &domain.Instructor{ID: "I1"},
	}))

	report := Evaluate(tt, e)

	assert.Equal(t, 1, report.TotalVariables)
	assert.Equal(t, 1, report.TotalAssignments)
	assert.Equal(t, 1.0, report.SuccessRate)
	assert.Equal(t, 0, report.HardViolations)
}

func TestEvaluateCountsHardViolationsFromDoubleBookedInstructor(t *testing.T) {
	e := Entities{Sections: []domain.Section{{ID: "S1", Courses: []string{"C1", "C2"}}}}
	tt := &domain.Timetable{
		Assignments: []domain.Assignment{
			{SectionID: "S1", CourseID: "C1", TimeSlot: &domain.TimeSlot{ID: "T1", Day: "Monday", StartTime: "09:00"}, Room: &domain.Room{ID: "R1"}, Instructor: &domain.Instructor{ID: "I1"}},
			{SectionID: "S1", CourseID: "C2", TimeSlot: &domain.TimeSlot{ID: "T1", Day: "Monday", StartTime: "09:00"}, Room: &domain.Room{ID: "R2"}, Instructor: &domain.Instructor{ID: "I1"}},
		},
	}

	report := Evaluate(tt, e)
	assert.True(t, report.HardViolations > 0, "two assignments sharing an instructor and slot must count as a hard violation")
}

func TestEvaluateCountsOffHourSoftViolation(t *testing.T) {
	e := Entities{Sections: []domain.Section{{ID: "S1", Courses: []string{"C1"}}}}
	tt := &domain.Timetable{
		Assignments: []domain.Assignment{
			{SectionID: "S1", CourseID: "C1", TimeSlot: &domain.TimeSlot{ID: "T1", Day: "Monday", StartTime: "19:00"}, Room: &domain.Room{ID: "R1"}, Instructor: &domain.Instructor{ID: "I1"}},
		},
	}

	report := Evaluate(tt, e)
	assert.Equal(t, 2, report.SoftViolations, "off-hour slot plus the section's single-day spread both count")
}

func TestEvaluateCountsSingleDaySectionSoftViolation(t *testing.T) {
	e := Entities{Sections: []domain.Section{{ID: "S1", Courses: []string{"C1", "C2"}}}}
	tt := &domain.Timetable{
		Assignments: []domain.Assignment{
			{SectionID: "S1", CourseID: "C1", TimeSlot: &domain.TimeSlot{ID: "T1", Day: "Monday", StartTime: "09:00"}, Room: &domain.Room{ID: "R1"}, Instructor: &domain.Instructor{ID: "I1"}},
			{SectionID: "S1", CourseID: "C2", TimeSlot: &domain.TimeSlot{ID: "T2", Day: "Monday", StartTime: "10:00"}, Room: &domain.Room{ID: "R1"}, Instructor: &domain.Instructor{ID: "I1"}},
		},
	}

	report := Evaluate(tt, e)
	assert.Equal(t, 1, report.SoftViolations, "a section confined to a single weekday is a soft violation")
}

func TestEvaluateSuccessRateHandlesZeroVariables(t *testing.T) {
	report := Evaluate(domain.NewTimetable(), Entities{})
	assert.Equal(t, 1.0, report.SuccessRate)
}
