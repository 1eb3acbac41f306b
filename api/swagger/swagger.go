package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "FAPCL Exam Scheduling API",
        "description": "Exam scheduling engine: greedy timetable planning, proctor assignment and transactional persistence",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Exams", "description": "Exam scheduling and lookup"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/exams/schedule": {
            "post": {
                "tags": ["Exams"],
                "summary": "Schedule exams for a set of courses",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ScheduleExamsRequest"}}
                ],
                "responses": {
                    "200": {"description": "Session scheduled", "schema": {"$ref": "#/definitions/SchedulingResult"}},
                    "409": {"description": "Scheduling failed, nothing persisted", "schema": {"$ref": "#/definitions/SchedulingResult"}}
                }
            }
        },
        "/exams": {
            "get": {
                "tags": ["Exams"],
                "summary": "List every exam of a session-tagged name",
                "parameters": [
                    {"name": "session", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Session exams", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exams/{id}": {
            "get": {
                "tags": ["Exams"],
                "summary": "Get one exam with its roster and proctor",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Exam detail", "schema": {"$ref": "#/definitions/DetailedExamResult"}},
                    "404": {"description": "Exam not found", "schema": {"$ref": "#/definitions/DetailedExamResult"}}
                }
            }
        },
        "/exams/export": {
            "get": {
                "tags": ["Exams"],
                "summary": "Export a session timetable as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "session", "in": "query", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Timetable file"},
                    "404": {"description": "Unknown session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {"description": "Metrics exposition"}
                }
            }
        }
    },
    "definitions": {
        "ScheduleExamsRequest": {
            "type": "object",
            "required": ["examName", "courseIds", "startDate", "endDate"],
            "properties": {
                "examName": {"type": "string"},
                "courseIds": {"type": "array", "items": {"type": "integer"}, "maxItems": 4},
                "startDate": {"type": "string", "format": "date"},
                "endDate": {"type": "string", "format": "date"}
            }
        },
        "SchedulingResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "scheduleId": {"type": "integer"},
                "scheduledExams": {"type": "array", "items": {"$ref": "#/definitions/ScheduledExamSummary"}},
                "conflicts": {"type": "array", "items": {"$ref": "#/definitions/CourseConflictEdge"}}
            }
        },
        "ScheduledExamSummary": {
            "type": "object",
            "properties": {
                "examId": {"type": "integer"},
                "courseName": {"type": "string"},
                "examDate": {"type": "string", "format": "date-time"},
                "slotId": {"type": "integer"},
                "slotName": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "roomId": {"type": "integer"},
                "roomName": {"type": "string"},
                "studentCount": {"type": "integer"},
                "teacherName": {"type": "string"}
            }
        },
        "CourseConflictEdge": {
            "type": "object",
            "properties": {
                "courseA": {"type": "integer"},
                "courseB": {"type": "integer"},
                "sharedStudents": {"type": "integer"}
            }
        },
        "DetailedExamResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "scheduleId": {"type": "integer"},
                "detailedExam": {"type": "array", "items": {"$ref": "#/definitions/DetailedExam"}}
            }
        },
        "DetailedExam": {
            "type": "object",
            "properties": {
                "examId": {"type": "integer"},
                "examName": {"type": "string"},
                "courseName": {"type": "string"},
                "courseDescription": {"type": "string"},
                "examDate": {"type": "string", "format": "date-time"},
                "slotId": {"type": "integer"},
                "slotName": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"},
                "roomId": {"type": "integer"},
                "roomName": {"type": "string"},
                "teacher": {"$ref": "#/definitions/TeacherInfo"},
                "students": {"type": "array", "items": {"$ref": "#/definitions/StudentInfo"}}
            }
        },
        "TeacherInfo": {
            "type": "object",
            "properties": {
                "teacherId": {"type": "string"},
                "teacherName": {"type": "string"}
            }
        },
        "StudentInfo": {
            "type": "object",
            "properties": {
                "studentId": {"type": "string"},
                "studentName": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
