package service

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/dto"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/models"
)

type stubCourseCatalogue struct {
	courses []models.Course
	err     error
}

func (s stubCourseCatalogue) ListByIDs(ctx context.Context, ids []int) ([]models.Course, error) {
	return s.courses, s.err
}

type stubEnrollmentReader struct {
	byCourse map[int][]string
	err      error
}

func (s stubEnrollmentReader) ListEnrolledStudentIDs(ctx context.Context, courseID int) ([]string, error) {
	return s.byCourse[courseID], s.err
}

type stubSlotCatalogue struct {
	slots []models.Slot
}

func (s stubSlotCatalogue) ListSlots(ctx context.Context) ([]models.Slot, error) {
	return s.slots, nil
}

type stubRoomCatalogue struct {
	rooms []models.Room
}

func (s stubRoomCatalogue) ListExamRooms(ctx context.Context) ([]models.Room, error) {
	return s.rooms, nil
}

// stubExamStore records writes in memory. BulkCreateSchedules feeds the busy
// lookup of stubProctorDirectory, mirroring in-transaction visibility.
type stubExamStore struct {
	nextID    int
	exams     []models.Exam
	schedules []models.ExamSchedule
	summaries []models.ExamSummaryRow
	detail    *models.ExamDetailRow
	detailErr error
	students  []models.Student
}

func (s *stubExamStore) CreateExam(ctx context.Context, exec sqlx.ExtContext, exam *models.Exam) error {
	s.nextID++
	exam.ID = s.nextID
	s.exams = append(s.exams, *exam)
	return nil
}

func (s *stubExamStore) BulkCreateSchedules(ctx context.Context, exec sqlx.ExtContext, schedules []models.ExamSchedule) error {
	s.schedules = append(s.schedules, schedules...)
	return nil
}

func (s *stubExamStore) ListBySessionName(ctx context.Context, sessionName string) ([]models.ExamSummaryRow, error) {
	return s.summaries, nil
}

func (s *stubExamStore) FindDetailByID(ctx context.Context, examID int) (*models.ExamDetailRow, error) {
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return s.detail, nil
}

func (s *stubExamStore) ListStudentsByExam(ctx context.Context, examID int) ([]models.Student, error) {
	return s.students, nil
}

type stubProctorDirectory struct {
	teachers []models.Teacher
	store    *stubExamStore
}

func (s stubProctorDirectory) ListActiveTeachers(ctx context.Context) ([]models.Teacher, error) {
	return s.teachers, nil
}

func (s stubProctorDirectory) ListBusyProctorIDs(ctx context.Context, exec sqlx.ExtContext, examDate time.Time, slotID int) ([]string, error) {
	seen := make(map[string]bool)
	var busy []string
	for _, row := range s.store.schedules {
		if row.ExamDate.Equal(examDate) && row.SlotID == slotID && !seen[row.ProctorID] {
			seen[row.ProctorID] = true
			busy = append(busy, row.ProctorID)
		}
	}
	return busy, nil
}

type txProviderMock struct {
	db *sqlx.DB
}

func (t *txProviderMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return t.db.BeginTxx(ctx, opts)
}

func newTxProviderMock(t *testing.T) (txProvider, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return &txProviderMock{db: sqlxdb}, mock
}

type schedulerFixture struct {
	service *ExamScheduleService
	store   *stubExamStore
	mock    sqlmock.Sqlmock
}

type schedulerFixtureConfig struct {
	courses    []models.Course
	enrollment map[int][]string
	teachers   []models.Teacher
	rooms      int
	slots      int
}

func newSchedulerFixture(t *testing.T, cfg schedulerFixtureConfig) *schedulerFixture {
	if cfg.rooms == 0 {
		cfg.rooms = 3
	}
	if cfg.slots == 0 {
		cfg.slots = 2
	}
	if cfg.teachers == nil {
		cfg.teachers = []models.Teacher{
			{ID: "t1", FullName: "Anna Adams", Active: true},
			{ID: "t2", FullName: "Ben Bell", Active: true},
			{ID: "t3", FullName: "Cara Cole", Active: true},
		}
	}

	slots := make([]models.Slot, 0, cfg.slots)
	for i := 1; i <= cfg.slots; i++ {
		slots = append(slots, models.Slot{ID: i, SlotName: fmt.Sprintf("Slot %d", i), StartTime: fmt.Sprintf("%02d:00", 7+2*i), EndTime: fmt.Sprintf("%02d:30", 8+2*i)})
	}

	store := &stubExamStore{}
	tx, mock := newTxProviderMock(t)

	svc := NewExamScheduleService(
		stubCourseCatalogue{courses: cfg.courses},
		stubEnrollmentReader{byCourse: cfg.enrollment},
		stubSlotCatalogue{slots: slots},
		stubRoomCatalogue{rooms: planRooms(cfg.rooms)},
		stubProctorDirectory{teachers: cfg.teachers, store: store},
		store,
		tx,
		nil,
		nil,
		nil,
		nil,
		zap.NewNop(),
		ExamScheduleConfig{},
	)
	return &schedulerFixture{service: svc, store: store, mock: mock}
}

func scheduleRequest(courseIDs ...int) dto.ScheduleExamsRequest {
	return dto.ScheduleExamsRequest{
		ExamName:  "Final Exam FA26",
		CourseIDs: courseIDs,
		StartDate: "2026-09-07",
		EndDate:   "2026-09-11",
	}
}

func TestExamScheduleServiceScheduleSuccess(t *testing.T) {
	fixture := newSchedulerFixture(t, schedulerFixtureConfig{
		courses: []models.Course{
			{ID: 1, CourseName: "PRF192"},
			{ID: 2, CourseName: "MAE101"},
		},
		enrollment: map[int][]string{
			1: planStudents("A", 20),
			2: planStudents("B", 10),
		},
	})
	fixture.store.summaries = []models.ExamSummaryRow{
		{ExamID: 1, CourseName: "PRF192", StudentCount: 15},
		{ExamID: 2, CourseName: "PRF192", StudentCount: 5},
		{ExamID: 3, CourseName: "MAE101", StudentCount: 10},
	}
	fixture.mock.ExpectBegin()
	fixture.mock.ExpectCommit()

	result := fixture.service.ScheduleExams(context.Background(), scheduleRequest(1, 2))

	require.True(t, result.Success, result.Message)
	require.NotNil(t, result.ScheduleID)
	assert.Equal(t, 1, *result.ScheduleID)
	assert.Len(t, result.ScheduledExams, 3)

	// 20 students need two groups, 10 need one.
	require.Len(t, fixture.store.exams, 3)
	assert.Len(t, fixture.store.schedules, 30)

	sessionName := fixture.store.exams[0].ExamName
	assert.Regexp(t, regexp.MustCompile(`^Final Exam FA26 \[Session:[0-9a-f]{8}\]$`), sessionName)
	for _, exam := range fixture.store.exams {
		assert.Equal(t, sessionName, exam.ExamName)
	}

	// Both groups of the large course sit in the same slot, so they need
	// distinct proctors.
	first, second := fixture.store.schedules[0], fixture.store.schedules[15]
	assert.Equal(t, first.SlotID, second.SlotID)
	assert.Equal(t, first.ExamDate, second.ExamDate)
	assert.NotEqual(t, first.ProctorID, second.ProctorID)

	assert.NoError(t, fixture.mock.ExpectationsWereMet())
}

func TestExamScheduleServiceRollsBackOnProctorShortage(t *testing.T) {
	fixture := newSchedulerFixture(t, schedulerFixtureConfig{
		courses: []models.Course{{ID: 1, CourseName: "PRF192"}},
		enrollment: map[int][]string{
			1: planStudents("A", 16),
		},
		teachers: []models.Teacher{{ID: "t1", FullName: "Anna Adams", Active: true}},
	})
	fixture.mock.ExpectBegin()
	fixture.mock.ExpectRollback()

	result := fixture.service.ScheduleExams(context.Background(), scheduleRequest(1))

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "no proctor available")
	assert.Contains(t, result.Message, "PRF192")
	assert.Nil(t, result.ScheduleID)
	assert.NoError(t, fixture.mock.ExpectationsWereMet())
}

func TestExamScheduleServiceRejectsInvalidRequests(t *testing.T) {
	fixture := newSchedulerFixture(t, schedulerFixtureConfig{
		courses:    []models.Course{{ID: 1, CourseName: "PRF192"}},
		enrollment: map[int][]string{1: planStudents("A", 5)},
	})

	cases := []struct {
		name    string
		mutate  func(*dto.ScheduleExamsRequest)
		message string
	}{
		{
			name:    "too many courses",
			mutate:  func(r *dto.ScheduleExamsRequest) { r.CourseIDs = []int{1, 2, 3, 4, 5} },
			message: "invalid scheduling request",
		},
		{
			name:    "malformed date",
			mutate:  func(r *dto.ScheduleExamsRequest) { r.StartDate = "07-09-2026" },
			message: "invalid scheduling request",
		},
		{
			name: "inverted window",
			mutate: func(r *dto.ScheduleExamsRequest) {
				r.StartDate = "2026-09-11"
				r.EndDate = "2026-09-07"
			},
			message: "end date must not precede start date",
		},
		{
			name: "window too wide",
			mutate: func(r *dto.ScheduleExamsRequest) {
				r.StartDate = "2026-09-01"
				r.EndDate = "2026-09-30"
			},
			message: "at most 14 allowed",
		},
		{
			name:    "duplicate courses",
			mutate:  func(r *dto.ScheduleExamsRequest) { r.CourseIDs = []int{1, 1} },
			message: "invalid scheduling request",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := scheduleRequest(1)
			tc.mutate(&req)
			result := fixture.service.ScheduleExams(context.Background(), req)
			require.False(t, result.Success)
			assert.Contains(t, result.Message, tc.message)
		})
	}

	assert.NoError(t, fixture.mock.ExpectationsWereMet())
}

func TestExamScheduleServiceUnknownCourse(t *testing.T) {
	fixture := newSchedulerFixture(t, schedulerFixtureConfig{
		courses:    []models.Course{{ID: 1, CourseName: "PRF192"}},
		enrollment: map[int][]string{1: planStudents("A", 5)},
	})

	result := fixture.service.ScheduleExams(context.Background(), scheduleRequest(1, 99))

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "course 99 not found")
	assert.Empty(t, fixture.store.exams)
}

func TestExamScheduleServiceEmptyEnrollment(t *testing.T) {
	fixture := newSchedulerFixture(t, schedulerFixtureConfig{
		courses:    []models.Course{{ID: 1, CourseName: "PRF192"}},
		enrollment: map[int][]string{},
	})

	result := fixture.service.ScheduleExams(context.Background(), scheduleRequest(1))

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "no enrolled students")
}

func TestExamScheduleServicePlanFailureSkipsPersistence(t *testing.T) {
	fixture := newSchedulerFixture(t, schedulerFixtureConfig{
		courses:    []models.Course{{ID: 1, CourseName: "PRF192"}},
		enrollment: map[int][]string{1: planStudents("A", 46)},
		rooms:      2,
	})

	result := fixture.service.ScheduleExams(context.Background(), scheduleRequest(1))

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "PRF192")
	assert.Empty(t, fixture.store.exams)
	// No transaction was opened.
	assert.NoError(t, fixture.mock.ExpectationsWereMet())
}

func TestExamScheduleServiceGetScheduleDetails(t *testing.T) {
	fixture := newSchedulerFixture(t, schedulerFixtureConfig{
		courses:    []models.Course{{ID: 1, CourseName: "PRF192"}},
		enrollment: map[int][]string{1: planStudents("A", 5)},
	})
	fixture.store.detail = &models.ExamDetailRow{
		ExamID:      7,
		ExamName:    "Final Exam FA26 [Session:0011aabb]",
		CourseName:  "PRF192",
		SlotID:      1,
		SlotName:    "Slot 1",
		RoomID:      2,
		RoomName:    "EX-2",
		ProctorID:   "t1",
		ProctorName: "Anna Adams",
		ExamDate:    time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	}
	fixture.store.students = []models.Student{
		{ID: "A001", FullName: "Student One"},
		{ID: "A002", FullName: "Student Two"},
	}

	result := fixture.service.GetScheduleDetails(context.Background(), 7)

	require.True(t, result.Success)
	require.Len(t, result.DetailedExam, 1)
	detail := result.DetailedExam[0]
	assert.Equal(t, "PRF192", detail.CourseName)
	assert.Equal(t, "t1", detail.Teacher.TeacherID)
	assert.Len(t, detail.Students, 2)
}

func TestExamScheduleServiceGetScheduleDetailsNotFound(t *testing.T) {
	fixture := newSchedulerFixture(t, schedulerFixtureConfig{})
	fixture.store.detailErr = sql.ErrNoRows

	result := fixture.service.GetScheduleDetails(context.Background(), 404)

	require.False(t, result.Success)
	assert.Equal(t, "Exam not found", result.Message)
	assert.Empty(t, result.DetailedExam)
}

func TestExamScheduleServiceGetSessionSchedule(t *testing.T) {
	fixture := newSchedulerFixture(t, schedulerFixtureConfig{})
	fixture.store.summaries = []models.ExamSummaryRow{{ExamID: 1, CourseName: "PRF192"}}

	summaries, err := fixture.service.GetSessionSchedule(context.Background(), "Final Exam FA26 [Session:0011aabb]")
	require.NoError(t, err)
	assert.Len(t, summaries, 1)

	_, err = fixture.service.GetSessionSchedule(context.Background(), "  ")
	assert.Error(t, err)
}
