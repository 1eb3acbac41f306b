package models

// Course represents a bookable academic course. Read-only for scheduling.
type Course struct {
	ID          int    `db:"id" json:"id"`
	CourseName  string `db:"course_name" json:"course_name"`
	Description string `db:"description" json:"description"`
	Credits     int    `db:"credits" json:"credits"`
}
