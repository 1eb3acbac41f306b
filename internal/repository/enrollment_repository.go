package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/models"
)

// EnrollmentRepository reads student enrollments for scheduling.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListEnrolledStudentIDs returns the unique student IDs actively enrolled in
// any class of the course. Ordered by student id so downstream group chunking
// is deterministic.
func (r *EnrollmentRepository) ListEnrolledStudentIDs(ctx context.Context, courseID int) ([]string, error) {
	const query = `SELECT DISTINCT e.student_id
        FROM enrollments e
        JOIN classes c ON c.id = e.class_id
        WHERE c.course_id = $1 AND e.status = $2
        ORDER BY e.student_id`
	var studentIDs []string
	if err := r.db.SelectContext(ctx, &studentIDs, query, courseID, models.EnrollmentStatusEnrolled); err != nil {
		return nil, fmt.Errorf("list enrolled students: %w", err)
	}
	return studentIDs, nil
}
