package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/dto"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/models"
	appErrors "github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/errors"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/jobs"
)

type courseCatalogue interface {
	ListByIDs(ctx context.Context, ids []int) ([]models.Course, error)
}

type enrollmentReader interface {
	ListEnrolledStudentIDs(ctx context.Context, courseID int) ([]string, error)
}

type slotCatalogue interface {
	ListSlots(ctx context.Context) ([]models.Slot, error)
}

type roomCatalogue interface {
	ListExamRooms(ctx context.Context) ([]models.Room, error)
}

type proctorDirectory interface {
	ListActiveTeachers(ctx context.Context) ([]models.Teacher, error)
	ListBusyProctorIDs(ctx context.Context, exec sqlx.ExtContext, examDate time.Time, slotID int) ([]string, error)
}

type examStore interface {
	CreateExam(ctx context.Context, exec sqlx.ExtContext, exam *models.Exam) error
	BulkCreateSchedules(ctx context.Context, exec sqlx.ExtContext, schedules []models.ExamSchedule) error
	ListBySessionName(ctx context.Context, sessionName string) ([]models.ExamSummaryRow, error)
	FindDetailByID(ctx context.Context, examID int) (*models.ExamDetailRow, error)
	ListStudentsByExam(ctx context.Context, examID int) ([]models.Student, error)
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type detailCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type schedulingObserver interface {
	ObserveSchedulingRun(outcome string, duration time.Duration)
	RecordCacheOperation(hit bool, duration time.Duration)
}

type warmEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// ExamScheduleConfig bounds one scheduling request.
type ExamScheduleConfig struct {
	MaxCourses     int
	MaxWindowDays  int
	GroupSize      int
	DetailCacheTTL time.Duration
}

// ExamScheduleService plans exam sessions and persists them atomically.
type ExamScheduleService struct {
	courses     courseCatalogue
	enrollments enrollmentReader
	slots       slotCatalogue
	rooms       roomCatalogue
	proctors    proctorDirectory
	exams       examStore
	tx          txProvider
	cache       detailCache
	metrics     schedulingObserver
	warmQueue   warmEnqueuer
	validator   *validator.Validate
	logger      *zap.Logger
	cfg         ExamScheduleConfig
}

// NewExamScheduleService wires scheduling dependencies.
func NewExamScheduleService(
	courses courseCatalogue,
	enrollments enrollmentReader,
	slots slotCatalogue,
	rooms roomCatalogue,
	proctors proctorDirectory,
	exams examStore,
	tx txProvider,
	cache detailCache,
	metrics schedulingObserver,
	warmQueue warmEnqueuer,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ExamScheduleConfig,
) *ExamScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxCourses <= 0 {
		cfg.MaxCourses = 4
	}
	if cfg.MaxWindowDays <= 0 {
		cfg.MaxWindowDays = 14
	}
	if cfg.GroupSize <= 0 {
		cfg.GroupSize = DefaultExamGroupSize
	}
	if cfg.DetailCacheTTL <= 0 {
		cfg.DetailCacheTTL = 5 * time.Minute
	}
	return &ExamScheduleService{
		courses:     courses,
		enrollments: enrollments,
		slots:       slots,
		rooms:       rooms,
		proctors:    proctors,
		exams:       exams,
		tx:          tx,
		cache:       cache,
		metrics:     metrics,
		warmQueue:   warmQueue,
		validator:   validate,
		logger:      logger,
		cfg:         cfg,
	}
}

const (
	requestDateFormat  = "2006-01-02"
	detailCacheKeyTmpl = "exam:detail:%d"
)

// ScheduleExams runs the full pipeline: validate, plan, persist, report.
// Every failure is folded into the returned result; nothing is committed on
// any failure path.
func (s *ExamScheduleService) ScheduleExams(ctx context.Context, req dto.ScheduleExamsRequest) *dto.SchedulingResult {
	started := time.Now()
	result := s.scheduleExams(ctx, req)

	outcome := "success"
	if !result.Success {
		outcome = "failure"
	}
	if s.metrics != nil {
		s.metrics.ObserveSchedulingRun(outcome, time.Since(started))
	}
	s.logger.Info("exam scheduling finished",
		zap.String("exam_name", req.ExamName),
		zap.Ints("course_ids", req.CourseIDs),
		zap.String("outcome", outcome),
		zap.String("message", result.Message),
		zap.Duration("elapsed", time.Since(started)),
	)
	return result
}

func (s *ExamScheduleService) scheduleExams(ctx context.Context, req dto.ScheduleExamsRequest) *dto.SchedulingResult {
	if err := s.validator.Struct(req); err != nil {
		return failedScheduling(fmt.Sprintf("invalid scheduling request: %v", err))
	}
	if len(req.CourseIDs) > s.cfg.MaxCourses {
		return failedScheduling(fmt.Sprintf("at most %d courses can be scheduled per request", s.cfg.MaxCourses))
	}

	startDate, endDate, err := parseWindow(req.StartDate, req.EndDate, s.cfg.MaxWindowDays)
	if err != nil {
		return failedScheduling(err.Error())
	}

	courses, err := s.courses.ListByIDs(ctx, req.CourseIDs)
	if err != nil {
		return failedScheduling(fmt.Sprintf("failed to load courses: %v", err))
	}
	if missing := missingCourseIDs(req.CourseIDs, courses); len(missing) > 0 {
		return failedScheduling(fmt.Sprintf("course %d not found", missing[0]))
	}

	enrollments := make([]CourseEnrollment, 0, len(courses))
	for _, course := range courses {
		students, err := s.enrollments.ListEnrolledStudentIDs(ctx, course.ID)
		if err != nil {
			return failedScheduling(fmt.Sprintf("failed to load enrollments for course %q: %v", course.CourseName, err))
		}
		if len(students) == 0 {
			return failedScheduling(fmt.Sprintf("course %q has no enrolled students", course.CourseName))
		}
		enrollments = append(enrollments, CourseEnrollment{Course: course, Students: students})
	}

	slots, err := s.slots.ListSlots(ctx)
	if err != nil {
		return failedScheduling(fmt.Sprintf("failed to load time slots: %v", err))
	}
	grid := buildSlotGrid(startDate, endDate, slots)
	if len(grid) == 0 {
		return failedScheduling("no time slots available in the requested window")
	}

	rooms, err := s.rooms.ListExamRooms(ctx)
	if err != nil {
		return failedScheduling(fmt.Sprintf("failed to load exam rooms: %v", err))
	}
	if len(rooms) == 0 {
		return failedScheduling("no exam-capable rooms available")
	}

	conflicts := BuildCourseConflictGraph(enrollments)

	plan := GenerateSchedulingPlan(enrollments, grid, rooms, s.cfg.GroupSize)
	if !plan.Valid {
		result := failedScheduling(plan.Message)
		result.Conflicts = conflicts
		return result
	}

	sessionName := fmt.Sprintf("%s [Session:%s]", req.ExamName, newSessionTag())

	courseNames := make(map[int]string, len(courses))
	for _, course := range courses {
		courseNames[course.ID] = course.CourseName
	}

	examIDs, err := s.persistPlan(ctx, plan, sessionName, courseNames)
	if err != nil {
		s.logger.Warn("exam persistence rolled back", zap.String("session", sessionName), zap.Error(err))
		result := failedScheduling(appErrors.FromError(err).Message)
		result.Conflicts = conflicts
		return result
	}

	summaries, err := s.exams.ListBySessionName(ctx, sessionName)
	if err != nil {
		// The session is committed; reading it back failed. Report success
		// with the IDs we have rather than pretending the write failed.
		s.logger.Error("failed to read back scheduled session", zap.String("session", sessionName), zap.Error(err))
	}

	s.warmDetails(examIDs)

	scheduleID := examIDs[0]
	return &dto.SchedulingResult{
		Success:        true,
		Message:        fmt.Sprintf("scheduled %d exams across %d courses", len(examIDs), len(courses)),
		ScheduleID:     &scheduleID,
		ScheduledExams: toScheduledSummaries(summaries),
		Conflicts:      conflicts,
	}
}

// persistPlan writes every exam and exam-schedule row inside one transaction.
// Any error, including proctor exhaustion on the last group, rolls back the
// whole session.
func (s *ExamScheduleService) persistPlan(ctx context.Context, plan SchedulingPlan, sessionName string, courseNames map[int]string) (examIDs []int, err error) {
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	teachers, err := s.proctors.ListActiveTeachers(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
	}
	if len(teachers) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoProctor, "no active teachers available to proctor")
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, courseID := range plan.CourseOrder {
		assignments := plan.Assignments[courseID]
		if len(assignments) == 0 {
			continue
		}
		chunks := chunkStudents(assignments[0].Students, s.cfg.GroupSize)

		// One assignment per chunk by construction of the plan.
		for i, assignment := range assignments {
			exam := &models.Exam{
				ExamName: sessionName,
				CourseID: courseID,
				RoomID:   assignment.RoomID,
				SlotID:   assignment.Slot.SlotID,
				ExamDate: assignment.Slot.Date,
			}
			if err = s.exams.CreateExam(ctx, tx, exam); err != nil {
				err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exam")
				return nil, err
			}

			var proctor *models.Teacher
			proctor, err = s.pickProctor(ctx, tx, teachers, assignment.Slot.Date, assignment.Slot.SlotID)
			if err != nil {
				return nil, err
			}
			if proctor == nil {
				err = appErrors.Clone(appErrors.ErrNoProctor,
					fmt.Sprintf("no proctor available for course %q on %s (slot %d)",
						courseNames[courseID], assignment.Slot.Date.Format(requestDateFormat), assignment.Slot.SlotID))
				return nil, err
			}

			chunk := chunks[i]
			rows := make([]models.ExamSchedule, 0, len(chunk))
			for _, studentID := range chunk {
				rows = append(rows, models.ExamSchedule{
					ExamID:    exam.ID,
					StudentID: studentID,
					ProctorID: proctor.ID,
					RoomID:    assignment.RoomID,
					SlotID:    assignment.Slot.SlotID,
					ExamDate:  assignment.Slot.Date,
				})
			}
			if err = s.exams.BulkCreateSchedules(ctx, tx, rows); err != nil {
				err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exam schedules")
				return nil, err
			}

			examIDs = append(examIDs, exam.ID)
		}
	}

	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit scheduling transaction")
		return nil, err
	}
	return examIDs, nil
}

// pickProctor returns the first teacher with no assignment at date+slot, in
// roster order. Queries through the transaction so groups created earlier in
// this request count as busy.
func (s *ExamScheduleService) pickProctor(ctx context.Context, exec sqlx.ExtContext, teachers []models.Teacher, examDate time.Time, slotID int) (*models.Teacher, error) {
	busyIDs, err := s.proctors.ListBusyProctorIDs(ctx, exec, examDate, slotID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load busy proctors")
	}
	busy := make(map[string]bool, len(busyIDs))
	for _, id := range busyIDs {
		busy[id] = true
	}
	for i := range teachers {
		if !busy[teachers[i].ID] {
			return &teachers[i], nil
		}
	}
	return nil, nil
}

// GetScheduleDetails returns the full projection of one exam: course, slot,
// room, proctor and roster. Lookup failures are folded into the result.
func (s *ExamScheduleService) GetScheduleDetails(ctx context.Context, examID int) *dto.DetailedExamResult {
	cacheKey := fmt.Sprintf(detailCacheKeyTmpl, examID)
	if s.cache != nil {
		lookupStart := time.Now()
		var cached dto.DetailedExamResult
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			if s.metrics != nil {
				s.metrics.RecordCacheOperation(true, time.Since(lookupStart))
			}
			return &cached
		}
		if s.metrics != nil {
			s.metrics.RecordCacheOperation(false, time.Since(lookupStart))
		}
	}

	detail, err := s.exams.FindDetailByID(ctx, examID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &dto.DetailedExamResult{Success: false, Message: "Exam not found"}
		}
		s.logger.Error("exam detail lookup failed", zap.Int("exam_id", examID), zap.Error(err))
		return &dto.DetailedExamResult{Success: false, Message: fmt.Sprintf("failed to load exam details: %v", err)}
	}

	students, err := s.exams.ListStudentsByExam(ctx, examID)
	if err != nil {
		s.logger.Error("exam roster lookup failed", zap.Int("exam_id", examID), zap.Error(err))
		return &dto.DetailedExamResult{Success: false, Message: fmt.Sprintf("failed to load exam roster: %v", err)}
	}

	roster := make([]dto.StudentInfo, 0, len(students))
	for _, student := range students {
		roster = append(roster, dto.StudentInfo{StudentID: student.ID, StudentName: student.FullName})
	}

	result := &dto.DetailedExamResult{
		Success:    true,
		Message:    "ok",
		ScheduleID: &detail.ExamID,
		DetailedExam: []dto.DetailedExam{{
			ExamID:            detail.ExamID,
			ExamName:          detail.ExamName,
			CourseName:        detail.CourseName,
			CourseDescription: detail.CourseDescription,
			ExamDate:          detail.ExamDate,
			SlotID:            detail.SlotID,
			SlotName:          detail.SlotName,
			StartTime:         detail.StartTime,
			EndTime:           detail.EndTime,
			RoomID:            detail.RoomID,
			RoomName:          detail.RoomName,
			Teacher:           dto.TeacherInfo{TeacherID: detail.ProctorID, TeacherName: detail.ProctorName},
			Students:          roster,
		}},
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.cfg.DetailCacheTTL); err != nil {
			s.logger.Warn("failed to cache exam detail", zap.Int("exam_id", examID), zap.Error(err))
		}
	}
	return result
}

// GetSessionSchedule lists every exam of a session-tagged name, ordered by
// date then start time.
func (s *ExamScheduleService) GetSessionSchedule(ctx context.Context, sessionName string) ([]dto.ScheduledExamSummary, error) {
	if strings.TrimSpace(sessionName) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "session name is required")
	}
	rows, err := s.exams.ListBySessionName(ctx, sessionName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list session exams")
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no exams found for session")
	}
	return toScheduledSummaries(rows), nil
}

func (s *ExamScheduleService) warmDetails(examIDs []int) {
	if s.warmQueue == nil {
		return
	}
	for _, id := range examIDs {
		job := jobs.Job{ID: uuid.NewString(), Type: "warm_exam_detail", Payload: id}
		if err := s.warmQueue.Enqueue(job); err != nil {
			s.logger.Warn("failed to enqueue detail warm job", zap.Int("exam_id", id), zap.Error(err))
			return
		}
	}
}

func failedScheduling(message string) *dto.SchedulingResult {
	return &dto.SchedulingResult{Success: false, Message: message}
}

func parseWindow(start, end string, maxDays int) (time.Time, time.Time, error) {
	startDate, err := time.ParseInLocation(requestDateFormat, start, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q", start)
	}
	endDate, err := time.ParseInLocation(requestDateFormat, end, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q", end)
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date must not precede start date")
	}
	days := int(endDate.Sub(startDate).Hours()/24) + 1
	if days > maxDays {
		return time.Time{}, time.Time{}, fmt.Errorf("date window spans %d days, at most %d allowed", days, maxDays)
	}
	return startDate, endDate, nil
}

func missingCourseIDs(requested []int, found []models.Course) []int {
	present := make(map[int]bool, len(found))
	for _, course := range found {
		present[course.ID] = true
	}
	var missing []int
	for _, id := range requested {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func newSessionTag() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func toScheduledSummaries(rows []models.ExamSummaryRow) []dto.ScheduledExamSummary {
	summaries := make([]dto.ScheduledExamSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, dto.ScheduledExamSummary{
			ExamID:       row.ExamID,
			CourseName:   row.CourseName,
			ExamDate:     row.ExamDate,
			SlotID:       row.SlotID,
			SlotName:     row.SlotName,
			StartTime:    row.StartTime,
			EndTime:      row.EndTime,
			RoomID:       row.RoomID,
			RoomName:     row.RoomName,
			StudentCount: row.StudentCount,
			TeacherName:  row.TeacherName,
		})
	}
	return summaries
}
