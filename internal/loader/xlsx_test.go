package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/campusforge/timetable/internal/domain"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()

	sheets := map[string][][]interface{}{
		sheetCourses:     {{"id", "name", "credits", "type"}, {"C1", "Intro to CS", 3, "Lecture"}},
		sheetInstructors: {{"id", "name", "unavailability_preference", "qualified_courses"}, {"I1", "Ada", "Not on Friday", "C1"}},
		sheetRooms:       {{"id", "type", "capacity"}, {"R1", "Classroom", 30}},
		sheetSections:    {{"id", "student_count", "courses"}, {"S1", 25, "C1"}},
		sheetTimeSlots:   {{"id", "day", "start_time", "end_time"}, {"T1", "Monday", "09:00", "10:00"}},
	}

	for sheet, rows := range sheets {
		idx, err := f.NewSheet(sheet)
		require.NoError(t, err)
		for r, row := range rows {
			for c, cell := range row {
				coord, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(sheet, coord, cell))
			}
		}
		_ = idx
	}
	f.DeleteSheet("Sheet1")

	path := filepath.Join(t.TempDir(), "workbook.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadXLSXParsesAllSheets(t *testing.T) {
	path := writeWorkbook(t)

	ds, err := LoadXLSX(path)
	require.NoError(t, err)

	require.Len(t, ds.Courses, 1)
	assert.Equal(t, "C1", ds.Courses[0].ID)

	require.Len(t, ds.Instructors, 1)
	assert.True(t, ds.Instructors[0].UnavailableDays["Friday"])

	require.Len(t, ds.Rooms, 1)
	assert.Equal(t, domain.RoomClassroom, ds.Rooms[0].Type)

	require.Len(t, ds.Sections, 1)
	assert.Equal(t, []string{"C1"}, ds.Sections[0].Courses)

	require.Len(t, ds.TimeSlots, 1)
	assert.Equal(t, 60, ds.TimeSlots[0].DurationMinutes)
}
