package models

// Student is the minimal projection of a student-role user.
type Student struct {
	ID       string `db:"id" json:"id"`
	FullName string `db:"full_name" json:"full_name"`
	Email    string `db:"email" json:"email"`
}

// Enrollment status values.
const (
	EnrollmentStatusEnrolled  = "ENROLLED"
	EnrollmentStatusDropped   = "DROPPED"
	EnrollmentStatusCompleted = "COMPLETED"
)
