package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusforge/timetable/internal/domain"
)

func writeCSVDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"courses.csv": "id,name,credits,type\n" +
			"C1,Intro to CS,3,Lecture\n" +
			"C2,Wet Lab,4,Lab\n",
		"instructors.csv": "id,name,unavailability_preference,qualified_courses\n" +
			"I1,Ada,Not on Friday,\"C1, C2\"\n",
		"rooms.csv": "id,type,capacity\n" +
			"R1,Classroom,30\n" +
			"R2,lab,20\n",
		"sections.csv": "id,student_count,courses\n" +
			"S1,25,\"C1, C2\"\n",
		"timeslots.csv": "id,day,start_time,end_time\n" +
			"T1,Monday,09:00,10:30\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestLoadCSVDirParsesAllFiles(t *testing.T) {
	dir := writeCSVDir(t)

	ds, err := LoadCSVDir(dir)
	require.NoError(t, err)

	require.Len(t, ds.Courses, 2)
	assert.Equal(t, "C1", ds.Courses[0].ID)
	assert.Equal(t, 3, ds.Courses[0].Credits)

	require.Len(t, ds.Instructors, 1)
	assert.True(t, ds.Instructors[0].UnavailableDays["Friday"])
	assert.False(t, ds.Instructors[0].UnavailableDays["Monday"])
	assert.True(t, ds.Instructors[0].QualifiedCourses["C1"])
	assert.True(t, ds.Instructors[0].QualifiedCourses["C2"])

	require.Len(t, ds.Rooms, 2)
	assert.Equal(t, domain.RoomClassroom, ds.Rooms[0].Type)
	assert.Equal(t, domain.RoomLab, ds.Rooms[1].Type, "room type match is case-insensitive")

	require.Len(t, ds.Sections, 1)
	assert.Equal(t, []string{"C1", "C2"}, ds.Sections[0].Courses)

	require.Len(t, ds.TimeSlots, 1)
	assert.Equal(t, 90, ds.TimeSlots[0].DurationMinutes)
}

func TestLoadCSVDirMissingFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadCSVDir(dir)
	assert.Error(t, err)
}

func TestParseUnavailabilityMatchesOnlyExactTokens(t *testing.T) {
	days := parseUnavailability("Not on Monday and Not on Wednesday")
	assert.True(t, days["Monday"])
	assert.True(t, days["Wednesday"])
	assert.False(t, days["Tuesday"])
}

func TestParseCommaListTrimsAndDropsEmpty(t *testing.T) {
	got := parseCommaList(" C1 ,, C2,C3 ")
	assert.Equal(t, []string{"C1", "C2", "C3"}, got)
}

func TestMinutesBetweenComputesDuration(t *testing.T) {
	assert.Equal(t, 90, minutesBetween("09:00", "10:30"))
	assert.Equal(t, 0, minutesBetween("bad", "10:30"), "malformed time yields zero rather than an error")
}
