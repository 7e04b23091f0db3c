package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAssignment(sectionID, courseID, slotID, day, roomID, instructorID string) Assignment {
	return Assignment{
		SectionID:  sectionID,
		CourseID:   courseID,
		TimeSlot:   &TimeSlot{ID: slotID, Day: day, StartTime: "09:00", EndTime: "10:00"},
		Room:       &Room{ID: roomID, Type: RoomClassroom},
		Instructor: &Instructor{ID: instructorID, Name: "Prof"},
	}
}

func TestTimetableAddTracksConflictIndices(t *testing.T) {
	tt := NewTimetable()
	a := sampleAssignment("S1", "C1", "T1", "Monday", "R1", "I1")

	require.NoError(t, tt.Add(a))

	assert.True(t, tt.InstructorBusy("I1", "T1"))
	assert.True(t, tt.RoomBusy("R1", "T1"))
	assert.True(t, tt.SectionBusy("S1", "T1"))
	assert.Equal(t, 1, tt.DayCount("Monday"))

	got, ok := tt.Lookup(Variable{SectionID: "S1", CourseID: "C1"})
	require.True(t, ok)
	assert.Equal(t, a, got)
}

func TestTimetableAddRejectsDuplicateVariable(t *testing.T) {
	tt := NewTimetable()
	a := sampleAssignment("S1", "C1", "T1", "Monday", "R1", "I1")
	require.NoError(t, tt.Add(a))

	err := tt.Add(sampleAssignment("S1", "C1", "T2", "Tuesday", "R2", "I2"))
	assert.Error(t, err)
}

func TestTimetableRemoveIsRoundTrip(t *testing.T) {
	tt := NewTimetable()
	a := sampleAssignment("S1", "C1", "T1", "Monday", "R1", "I1")
	require.NoError(t, tt.Add(a))

	require.NoError(t, tt.Remove(a))

	assert.False(t, tt.InstructorBusy("I1", "T1"))
	assert.False(t, tt.RoomBusy("R1", "T1"))
	assert.False(t, tt.SectionBusy("S1", "T1"))
	assert.Equal(t, 0, tt.DayCount("Monday"))
	assert.Empty(t, tt.Assignments)

	_, ok := tt.Lookup(a.Variable())
	assert.False(t, ok)
}

func TestTimetableRemoveEnforcesLIFOOrder(t *testing.T) {
	tt := NewTimetable()
	first := sampleAssignment("S1", "C1", "T1", "Monday", "R1", "I1")
	second := sampleAssignment("S2", "C2", "T2", "Tuesday", "R2", "I2")
	require.NoError(t, tt.Add(first))
	require.NoError(t, tt.Add(second))

	err := tt.Remove(first)
	assert.Error(t, err, "removing out of LIFO order must fail")

	require.NoError(t, tt.Remove(second))
	require.NoError(t, tt.Remove(first))
}

func TestTimetableRemoveUnknownVariable(t *testing.T) {
	tt := NewTimetable()
	err := tt.Remove(sampleAssignment("S1", "C1", "T1", "Monday", "R1", "I1"))
	assert.Error(t, err)
}
