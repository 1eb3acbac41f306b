package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseRepositoryFindByID(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "course_name", "description", "credits"}).
		AddRow(1, "PRF192", "Programming Fundamentals", 3)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, course_name, description, credits FROM courses WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(rows)

	course, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "PRF192", course.CourseName)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, course_name, description, credits FROM courses WHERE id = $1")).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListByIDs(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "course_name", "description", "credits"}).
		AddRow(1, "PRF192", "", 3).
		AddRow(2, "MAE101", "", 3)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, course_name, description, credits FROM courses WHERE id IN ($1,$2) ORDER BY id")).
		WithArgs(2, 1).
		WillReturnRows(rows)

	courses, err := repo.ListByIDs(context.Background(), []int{2, 1})
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, 1, courses[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())

	empty, err := repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, empty)
}
