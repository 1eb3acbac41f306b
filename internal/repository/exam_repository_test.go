package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestExamRepositoryCreateExam(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewExamRepository(db)

	examDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO exams").
		WithArgs("Final [Session:0011aabb]", 1, 2, 3, examDate).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	exam := &models.Exam{ExamName: "Final [Session:0011aabb]", CourseID: 1, RoomID: 2, SlotID: 3, ExamDate: examDate}
	require.NoError(t, repo.CreateExam(context.Background(), db, exam))
	assert.Equal(t, 42, exam.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamRepositoryBulkCreateSchedules(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewExamRepository(db)

	examDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	schedules := []models.ExamSchedule{
		{ExamID: 42, StudentID: "SE001", ProctorID: "t1", RoomID: 2, SlotID: 3, ExamDate: examDate},
		{ExamID: 42, StudentID: "SE002", ProctorID: "t1", RoomID: 2, SlotID: 3, ExamDate: examDate},
	}

	mock.ExpectExec("INSERT INTO exam_schedules").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.BulkCreateSchedules(context.Background(), db, schedules))
	assert.NoError(t, mock.ExpectationsWereMet())

	// An empty batch issues no statement.
	require.NoError(t, repo.BulkCreateSchedules(context.Background(), db, nil))
}

func TestExamRepositoryListBySessionName(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewExamRepository(db)

	examDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"exam_id", "course_name", "exam_date", "slot_id", "slot_name", "start_time", "end_time", "room_id", "room_name", "student_count", "teacher_name"}).
		AddRow(1, "PRF192", examDate, 1, "Slot 1", "07:30", "09:00", 2, "EX-2", 15, "Anna Adams").
		AddRow(2, "MAE101", examDate, 2, "Slot 2", "09:30", "11:00", 2, "EX-2", 10, "Ben Bell")
	mock.ExpectQuery("SELECT e.id AS exam_id").
		WithArgs("Final [Session:0011aabb]").
		WillReturnRows(rows)

	list, err := repo.ListBySessionName(context.Background(), "Final [Session:0011aabb]")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "PRF192", list[0].CourseName)
	assert.Equal(t, 15, list[0].StudentCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamRepositoryFindDetailByID(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewExamRepository(db)

	examDate := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"exam_id", "exam_name", "course_name", "course_description", "exam_date", "slot_id", "slot_name", "start_time", "end_time", "room_id", "room_name", "proctor_id", "proctor_name"}).
		AddRow(7, "Final [Session:0011aabb]", "PRF192", "Programming Fundamentals", examDate, 1, "Slot 1", "07:30", "09:00", 2, "EX-2", "t1", "Anna Adams")
	mock.ExpectQuery("SELECT e.id AS exam_id, e.exam_name").
		WithArgs(7).
		WillReturnRows(rows)

	detail, err := repo.FindDetailByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "PRF192", detail.CourseName)
	assert.Equal(t, "t1", detail.ProctorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExamRepositoryListStudentsByExam(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewExamRepository(db)

	rows := sqlmock.NewRows([]string{"id", "full_name", "email"}).
		AddRow("SE001", "Student One", "one@example.com").
		AddRow("SE002", "Student Two", "two@example.com")
	mock.ExpectQuery("SELECT st.id, st.full_name, st.email").
		WithArgs(7).
		WillReturnRows(rows)

	students, err := repo.ListStudentsByExam(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "SE001", students[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
