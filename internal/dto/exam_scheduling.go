package dto

import "time"

// ScheduleExamsRequest asks for one exam session covering up to four courses
// inside a date window of at most fourteen days.
type ScheduleExamsRequest struct {
	ExamName  string `json:"examName" validate:"required,min=3,max=100"`
	CourseIDs []int  `json:"courseIds" validate:"required,min=1,max=4,unique,dive,min=1"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

// ScheduledExamSummary is one created exam sitting in the scheduling response.
type ScheduledExamSummary struct {
	ExamID       int       `json:"examId"`
	CourseName   string    `json:"courseName"`
	ExamDate     time.Time `json:"examDate"`
	SlotID       int       `json:"slotId"`
	SlotName     string    `json:"slotName"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	RoomID       int       `json:"roomId"`
	RoomName     string    `json:"roomName"`
	StudentCount int       `json:"studentCount"`
	TeacherName  string    `json:"teacherName"`
}

// CourseConflictEdge reports the number of students shared by two courses.
// Informational only: the planner never consults it when placing courses.
type CourseConflictEdge struct {
	CourseA        int `json:"courseA"`
	CourseB        int `json:"courseB"`
	SharedStudents int `json:"sharedStudents"`
}

// SchedulingResult is the typed outcome of one scheduling request. Every
// failure path yields Success=false with a message; nothing is persisted then.
type SchedulingResult struct {
	Success        bool                   `json:"success"`
	Message        string                 `json:"message"`
	ScheduleID     *int                   `json:"scheduleId"`
	ScheduledExams []ScheduledExamSummary `json:"scheduledExams"`
	Conflicts      []CourseConflictEdge   `json:"conflicts,omitempty"`
}

// TeacherInfo identifies the proctor of an exam sitting.
type TeacherInfo struct {
	TeacherID   string `json:"teacherId"`
	TeacherName string `json:"teacherName"`
}

// StudentInfo identifies one rostered student.
type StudentInfo struct {
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
}

// DetailedExam is the full projection of one exam sitting.
type DetailedExam struct {
	ExamID            int           `json:"examId"`
	ExamName          string        `json:"examName"`
	CourseName        string        `json:"courseName"`
	CourseDescription string        `json:"courseDescription"`
	ExamDate          time.Time     `json:"examDate"`
	SlotID            int           `json:"slotId"`
	SlotName          string        `json:"slotName"`
	StartTime         string        `json:"startTime"`
	EndTime           string        `json:"endTime"`
	RoomID            int           `json:"roomId"`
	RoomName          string        `json:"roomName"`
	Teacher           TeacherInfo   `json:"teacher"`
	Students          []StudentInfo `json:"students"`
}

// DetailedExamResult wraps a single-exam lookup.
type DetailedExamResult struct {
	Success      bool           `json:"success"`
	Message      string         `json:"message"`
	ScheduleID   *int           `json:"scheduleId"`
	DetailedExam []DetailedExam `json:"detailedExam"`
}
