package sink

import (
	"github.com/jmoiron/sqlx"

	"github.com/campusforge/timetable/internal/domain"
)

const createAssignmentsTable = `
CREATE TABLE IF NOT EXISTS assignments (
	section_id      TEXT NOT NULL,
	course_id       TEXT NOT NULL,
	day             TEXT NOT NULL,
	start_time      TEXT NOT NULL,
	end_time        TEXT NOT NULL,
	room_id         TEXT NOT NULL,
	instructor_id   TEXT NOT NULL,
	instructor_name TEXT NOT NULL,
	PRIMARY KEY (section_id, course_id)
)`

const insertAssignment = `
INSERT OR REPLACE INTO assignments
	(section_id, course_id, day, start_time, end_time, room_id, instructor_id, instructor_name)
VALUES
	(:section_id, :course_id, :day, :start_time, :end_time, :room_id, :instructor_id, :instructor_name)`

type assignmentRow struct {
	SectionID      string `db:"section_id"`
	CourseID       string `db:"course_id"`
	Day            string `db:"day"`
	StartTime      string `db:"start_time"`
	EndTime        string `db:"end_time"`
	RoomID         string `db:"room_id"`
	InstructorID   string `db:"instructor_id"`
	InstructorName string `db:"instructor_name"`
}

// PersistSQLite writes every Assignment of tt into the assignments table
// of db, creating the table if it does not already exist. Writes happen
// inside a single transaction so a partially solved export never leaves
// the table half-written.
func PersistSQLite(db *sqlx.DB, tt *domain.Timetable) error {
	if _, err := db.Exec(createAssignmentsTable); err != nil {
		return err
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}

	for _, a := range tt.Assignments {
		row := assignmentRow{
			SectionID:      a.SectionID,
			CourseID:       a.CourseID,
			Day:            a.TimeSlot.Day,
			StartTime:      a.TimeSlot.StartTime,
			EndTime:        a.TimeSlot.EndTime,
			RoomID:         a.Room.ID,
			InstructorID:   a.Instructor.ID,
			InstructorName: a.Instructor.Name,
		}
		if _, err := tx.NamedExec(insertAssignment, row); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// LoadSQLite reconstructs a Timetable from a previously persisted
// assignments table, for the report CLI command's re-evaluation pass. The
// rebuilt TimeSlot/Room/Instructor values carry only the fields the table
// stored; callers evaluating soft constraints that read Room.Capacity or
// Instructor.QualifiedCourses should re-load those entities separately.
func LoadSQLite(db *sqlx.DB) (*domain.Timetable, error) {
	var rows []assignmentRow
	if err := db.Select(&rows, "SELECT * FROM assignments"); err != nil {
		return nil, err
	}

	tt := domain.NewTimetable()
	for _, row := range rows {
		a := domain.Assignment{
			SectionID: row.SectionID,
			CourseID:  row.CourseID,
			TimeSlot: &domain.TimeSlot{
				Day:       row.Day,
				StartTime: row.StartTime,
				EndTime:   row.EndTime,
			},
			Room:       &domain.Room{ID: row.RoomID},
			Instructor: &domain.Instructor{ID: row.InstructorID, Name: row.InstructorName},
		}
		if err := tt.Add(a); err != nil {
			return nil, err
		}
	}
	return tt, nil
}
