package database

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestViolationHelpers(t *testing.T) {
	unique := fmt.Errorf("insert attendance: %w", &pq.Error{Code: "23505", Constraint: "student_attendance_student_id_date_key"})
	fk := &pq.Error{Code: "23503", Constraint: "student_tasks_student_id_fkey"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.Equal(t, "student_attendance_student_id_date_key", Constraint(unique))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsCheckViolation(fk))

	assert.False(t, IsUniqueViolation(sql.ErrNoRows))
	assert.Empty(t, Constraint(sql.ErrNoRows))
}
