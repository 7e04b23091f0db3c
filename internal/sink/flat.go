package sink

import (
	"sort"

	"github.com/campusforge/timetable/internal/domain"
	"github.com/campusforge/timetable/pkg/export"
)

var flatHeaders = []string{"section_id", "course_id", "day", "start_time", "end_time", "room_id", "instructor_id", "instructor_name"}

// FlatDataset projects a Timetable into the generic row-per-Assignment
// export.Dataset shape, one row per Assignment, sorted for reproducible
// output regardless of the order search produced them in.
func FlatDataset(tt *domain.Timetable) export.Dataset {
	rows := make([]map[string]string, 0, len(tt.Assignments))
	for _, a := range tt.Assignments {
		rows = append(rows, map[string]string{
			"section_id":      a.SectionID,
			"course_id":       a.CourseID,
			"day":             a.TimeSlot.Day,
			"start_time":      a.TimeSlot.StartTime,
			"end_time":        a.TimeSlot.EndTime,
			"room_id":         a.Room.ID,
			"instructor_id":   a.Instructor.ID,
			"instructor_name": a.Instructor.Name,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i]["section_id"] != rows[j]["section_id"] {
			return rows[i]["section_id"] < rows[j]["section_id"]
		}
		return rows[i]["course_id"] < rows[j]["course_id"]
	})

	return export.Dataset{Headers: flatHeaders, Rows: rows}
}
