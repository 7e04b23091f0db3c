package sink

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var errWrite = errors.New("write failed")

func newSQLiteMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlite3")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

// TestPersistSQLiteRollsBackOnWriteFailure exercises the transaction's
// error path: a failing NamedExec must not leave the rows committed.
func TestPersistSQLiteRollsBackOnWriteFailure(t *testing.T) {
	db, mock, cleanup := newSQLiteMock(t)
	defer cleanup()
	tt := twoAssignmentTimetable(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS assignments").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT OR REPLACE INTO assignments").WillReturnError(errWrite)
	mock.ExpectRollback()

	err := PersistSQLite(db, tt)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistSQLiteCommitsEachAssignmentInOneTransaction(t *testing.T) {
	db, mock, cleanup := newSQLiteMock(t)
	defer cleanup()
	tt := twoAssignmentTimetable(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS assignments").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT OR REPLACE INTO assignments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT OR REPLACE INTO assignments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := PersistSQLite(db, tt)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
