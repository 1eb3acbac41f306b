package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeacherRepositoryListActiveTeachers(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewTeacherRepository(db)

	rows := sqlmock.NewRows([]string{"id", "full_name", "email", "active"}).
		AddRow("t1", "Anna Adams", "anna@example.com", true).
		AddRow("t2", "Ben Bell", "ben@example.com", true)
	mock.ExpectQuery("SELECT id, full_name, email, active FROM teachers WHERE active = TRUE ORDER BY full_name, id").
		WillReturnRows(rows)

	teachers, err := repo.ListActiveTeachers(context.Background())
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, "t1", teachers[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryListBusyProctorIDs(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewTeacherRepository(db)

	examDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"proctor_id"}).AddRow("t1").AddRow("t3")
	mock.ExpectQuery("SELECT DISTINCT proctor_id FROM exam_schedules").
		WithArgs(examDate, 1).
		WillReturnRows(rows)

	busy, err := repo.ListBusyProctorIDs(context.Background(), db, examDate, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t3"}, busy)
	assert.NoError(t, mock.ExpectationsWereMet())
}
