package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/models"
)

// ExamRepository persists exams and exam schedules and serves read-side
// projections. All writes run on the caller's executor so a scheduling
// request can roll back as one unit.
type ExamRepository struct {
	db *sqlx.DB
}

// NewExamRepository constructs the repository.
func NewExamRepository(db *sqlx.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// CreateExam inserts one exam row and fills in its generated ID.
func (r *ExamRepository) CreateExam(ctx context.Context, exec sqlx.ExtContext, exam *models.Exam) error {
	const query = `INSERT INTO exams (exam_name, course_id, room_id, slot_id, exam_date)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := sqlx.GetContext(ctx, exec, &exam.ID, query, exam.ExamName, exam.CourseID, exam.RoomID, exam.SlotID, exam.ExamDate); err != nil {
		return fmt.Errorf("create exam: %w", err)
	}
	return nil
}

// BulkCreateSchedules inserts one exam_schedules row per student in a group.
func (r *ExamRepository) BulkCreateSchedules(ctx context.Context, exec sqlx.ExtContext, schedules []models.ExamSchedule) error {
	if len(schedules) == 0 {
		return nil
	}
	const query = `INSERT INTO exam_schedules (exam_id, student_id, proctor_id, room_id, slot_id, exam_date)
        VALUES (:exam_id, :student_id, :proctor_id, :room_id, :slot_id, :exam_date)`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, schedules); err != nil {
		return fmt.Errorf("create exam schedules: %w", err)
	}
	return nil
}

// ListBySessionName returns every exam whose session-tagged name matches,
// ordered by date then slot start time.
func (r *ExamRepository) ListBySessionName(ctx context.Context, sessionName string) ([]models.ExamSummaryRow, error) {
	const query = `SELECT e.id AS exam_id, c.course_name, e.exam_date, e.slot_id, s.slot_name, s.start_time, s.end_time,
        e.room_id, r.room_name,
        COUNT(DISTINCT es.student_id) AS student_count,
        COALESCE(MAX(t.full_name), '') AS teacher_name
        FROM exams e
        JOIN courses c ON c.id = e.course_id
        JOIN slots s ON s.id = e.slot_id
        JOIN rooms r ON r.id = e.room_id
        LEFT JOIN exam_schedules es ON es.exam_id = e.id
        LEFT JOIN teachers t ON t.id = es.proctor_id
        WHERE e.exam_name = $1
        GROUP BY e.id, c.course_name, e.exam_date, e.slot_id, s.slot_name, s.start_time, s.end_time, e.room_id, r.room_name
        ORDER BY e.exam_date, s.start_time, e.id`
	var rows []models.ExamSummaryRow
	if err := r.db.SelectContext(ctx, &rows, query, sessionName); err != nil {
		return nil, fmt.Errorf("list exams by session: %w", err)
	}
	return rows, nil
}

// FindDetailByID returns the header projection of one exam: course, slot,
// room and the proctor shared by its schedule rows.
func (r *ExamRepository) FindDetailByID(ctx context.Context, examID int) (*models.ExamDetailRow, error) {
	const query = `SELECT e.id AS exam_id, e.exam_name, c.course_name, c.description AS course_description,
        e.exam_date, e.slot_id, s.slot_name, s.start_time, s.end_time, e.room_id, r.room_name,
        COALESCE(MAX(es.proctor_id), '') AS proctor_id,
        COALESCE(MAX(t.full_name), '') AS proctor_name
        FROM exams e
        JOIN courses c ON c.id = e.course_id
        JOIN slots s ON s.id = e.slot_id
        JOIN rooms r ON r.id = e.room_id
        LEFT JOIN exam_schedules es ON es.exam_id = e.id
        LEFT JOIN teachers t ON t.id = es.proctor_id
        WHERE e.id = $1
        GROUP BY e.id, e.exam_name, c.course_name, c.description, e.exam_date, e.slot_id, s.slot_name, s.start_time, s.end_time, e.room_id, r.room_name`
	var detail models.ExamDetailRow
	if err := r.db.GetContext(ctx, &detail, query, examID); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListStudentsByExam returns the roster of one exam ordered by name.
func (r *ExamRepository) ListStudentsByExam(ctx context.Context, examID int) ([]models.Student, error) {
	const query = `SELECT st.id, st.full_name, st.email
        FROM exam_schedules es
        JOIN students st ON st.id = es.student_id
        WHERE es.exam_id = $1
        ORDER BY st.full_name, st.id`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, examID); err != nil {
		return nil, fmt.Errorf("list exam students: %w", err)
	}
	return students, nil
}
