package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/models"
)

// TeacherRepository reads teacher-role users for proctor assignment.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs the repository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// ListActiveTeachers returns every active teacher ordered by name then id.
// The ordering defines proctor pick priority: first non-busy wins.
func (r *TeacherRepository) ListActiveTeachers(ctx context.Context) ([]models.Teacher, error) {
	const query = `SELECT id, full_name, email, active FROM teachers WHERE active = TRUE ORDER BY full_name, id`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// ListBusyProctorIDs returns the IDs of teachers already proctoring at the
// given date+slot. Runs on the provided executor so rows written earlier in
// the same transaction count as busy.
func (r *TeacherRepository) ListBusyProctorIDs(ctx context.Context, exec sqlx.ExtContext, examDate time.Time, slotID int) ([]string, error) {
	const query = `SELECT DISTINCT proctor_id FROM exam_schedules WHERE exam_date = $1 AND slot_id = $2`
	var busy []string
	if err := sqlx.SelectContext(ctx, exec, &busy, query, examDate, slotID); err != nil {
		return nil, fmt.Errorf("list busy proctors: %w", err)
	}
	return busy, nil
}
