package sink

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/campusforge/timetable/internal/domain"
)

func openMemoryDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPersistSQLiteThenLoadSQLiteRoundTrips(t *testing.T) {
	db := openMemoryDB(t)
	tt := twoAssignmentTimetable(t)

	require.NoError(t, PersistSQLite(db, tt))

	loaded, err := LoadSQLite(db)
	require.NoError(t, err)
	require.Len(t, loaded.Assignments, 2)

	byVariable := make(map[domain.Variable]domain.Assignment, len(loaded.Assignments))
	for _, a := range loaded.Assignments {
		byVariable[a.Variable()] = a
	}

	s2c1, ok := byVariable[domain.Variable{SectionID: "S2", CourseID: "C1"}]
	require.True(t, ok)
	require.Equal(t, "R1", s2c1.Room.ID)
	require.Equal(t, "I1", s2c1.Instructor.ID)
	require.Equal(t, "Monday", s2c1.TimeSlot.Day)
}

func TestPersistSQLiteIsIdempotent(t *testing.T) {
	db := openMemoryDB(t)
	tt := twoAssignmentTimetable(t)

	require.NoError(t, PersistSQLite(db, tt))
	require.NoError(t, PersistSQLite(db, tt))

	loaded, err := LoadSQLite(db)
	require.NoError(t, err)
	require.Len(t, loaded.Assignments, 2, "re-persisting the same timetable must not duplicate rows")
}
