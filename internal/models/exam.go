package models

import "time"

// Exam is one persisted exam sitting: one course group in one room at one
// date+slot. A course needing several rooms produces several Exam rows that
// share the date and slot.
type Exam struct {
	ID       int       `db:"id" json:"id"`
	ExamName string    `db:"exam_name" json:"exam_name"`
	CourseID int       `db:"course_id" json:"course_id"`
	RoomID   int       `db:"room_id" json:"room_id"`
	SlotID   int       `db:"slot_id" json:"slot_id"`
	ExamDate time.Time `db:"exam_date" json:"exam_date"`
}

// ExamSchedule is one student's seat in an exam, supervised by a proctor.
type ExamSchedule struct {
	ID        int       `db:"id" json:"id"`
	ExamID    int       `db:"exam_id" json:"exam_id"`
	StudentID string    `db:"student_id" json:"student_id"`
	ProctorID string    `db:"proctor_id" json:"proctor_id"`
	RoomID    int       `db:"room_id" json:"room_id"`
	SlotID    int       `db:"slot_id" json:"slot_id"`
	ExamDate  time.Time `db:"exam_date" json:"exam_date"`
}

// ExamSummaryRow is the per-exam projection returned for a scheduling session,
// joined across course, slot, room and proctor.
type ExamSummaryRow struct {
	ExamID       int       `db:"exam_id" json:"exam_id"`
	CourseName   string    `db:"course_name" json:"course_name"`
	ExamDate     time.Time `db:"exam_date" json:"exam_date"`
	SlotID       int       `db:"slot_id" json:"slot_id"`
	SlotName     string    `db:"slot_name" json:"slot_name"`
	StartTime    string    `db:"start_time" json:"start_time"`
	EndTime      string    `db:"end_time" json:"end_time"`
	RoomID       int       `db:"room_id" json:"room_id"`
	RoomName     string    `db:"room_name" json:"room_name"`
	StudentCount int       `db:"student_count" json:"student_count"`
	TeacherName  string    `db:"teacher_name" json:"teacher_name"`
}

// ExamDetailRow carries the header portion of a single exam lookup.
type ExamDetailRow struct {
	ExamID            int       `db:"exam_id" json:"exam_id"`
	ExamName          string    `db:"exam_name" json:"exam_name"`
	CourseName        string    `db:"course_name" json:"course_name"`
	CourseDescription string    `db:"course_description" json:"course_description"`
	ExamDate          time.Time `db:"exam_date" json:"exam_date"`
	SlotID            int       `db:"slot_id" json:"slot_id"`
	SlotName          string    `db:"slot_name" json:"slot_name"`
	StartTime         string    `db:"start_time" json:"start_time"`
	EndTime           string    `db:"end_time" json:"end_time"`
	RoomID            int       `db:"room_id" json:"room_id"`
	RoomName          string    `db:"room_name" json:"room_name"`
	ProctorID         string    `db:"proctor_id" json:"proctor_id"`
	ProctorName       string    `db:"proctor_name" json:"proctor_name"`
}
