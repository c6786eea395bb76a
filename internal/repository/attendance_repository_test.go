package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srisoftware/portal-api/internal/models"
)

func TestAttendanceRepositoryListByDate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := models.MustDate("2024-01-10")
	rows := sqlmock.NewRows([]string{"id", "student_id", "date", "status", "remarks", "created_at", "updated_at", "full_name"}).
		AddRow("a1", "STU001", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "present", nil, time.Now(), time.Now(), "Asha").
		AddRow("a2", "STU002", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "late", "bus", time.Now(), time.Now(), "Arjun")
	mock.ExpectQuery(`(?s)FROM student_attendance a LEFT JOIN student_registrations s ON s.student_id = a.student_id\s+WHERE 1=1 AND a.date = \$1 ORDER BY a.date DESC, full_name ASC LIMIT 500`).
		WithArgs("2024-01-10").
		WillReturnRows(rows)

	records, err := repo.List(context.Background(), models.AttendanceFilter{Date: &day})
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, day, rec.Date)
	}
	assert.Equal(t, models.AttendanceLate, records[1].Status)
	require.NotNil(t, records[1].Remarks)
	assert.Equal(t, "bus", *records[1].Remarks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListAllForStudentHasNoLimit(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(`(?s)WHERE 1=1 AND a.student_id = \$1 ORDER BY a.date DESC, full_name ASC$`).
		WithArgs("STU001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "status"}).AddRow("a1", "STU001", "present"))

	records, err := repo.List(context.Background(), models.AttendanceFilter{StudentID: "STU001", All: true})
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCreateManySingleStatement(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := models.MustDate("2024-01-10")
	records := []models.AttendanceRecord{
		{StudentID: "STU001", Date: day, Status: models.AttendancePresent},
		{StudentID: "STU002", Date: day, Status: models.AttendancePresent},
		{StudentID: "STU003", Date: day, Status: models.AttendancePresent},
	}

	args := make([]driver.Value, 0, 21)
	for _, rec := range records {
		args = append(args, sqlmock.AnyArg(), rec.StudentID, "2024-01-10", "present", nil, sqlmock.AnyArg(), sqlmock.AnyArg())
	}
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO student_attendance (id, student_id, date, status, remarks, created_at, updated_at)") +
		`\s+VALUES \([^)]*\),\s*\([^)]*\),\s*\([^)]*\)$`).
		WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateMany(context.Background(), records))
	for _, rec := range records {
		assert.NotEmpty(t, rec.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCreateManyRollsBack(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO student_attendance").WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err := repo.CreateMany(context.Background(), []models.AttendanceRecord{{StudentID: "STU001", Date: models.MustDate("2024-01-10"), Status: models.AttendancePresent}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert attendance")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryDeleteIsIdempotent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM student_attendance WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), "missing"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
