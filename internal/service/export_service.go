package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/dto"
	appErrors "github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/errors"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/export"
)

type sessionReader interface {
	GetSessionSchedule(ctx context.Context, sessionName string) ([]dto.ScheduledExamSummary, error)
}

// ExportService renders a scheduled session's timetable as CSV or PDF.
type ExportService struct {
	sessions sessionReader
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(sessions sessionReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		sessions: sessions,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// ExportResult carries rendered bytes plus HTTP delivery metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

var timetableHeaders = []string{"Exam ID", "Course", "Date", "Slot", "Start", "End", "Room", "Students", "Proctor"}

// ExportSession renders the session timetable in the requested format.
// Supported formats are "csv" and "pdf".
func (s *ExportService) ExportSession(ctx context.Context, sessionName, format string) (*ExportResult, error) {
	summaries, err := s.sessions.GetSessionSchedule(ctx, sessionName)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: timetableHeaders, Rows: make([]map[string]string, 0, len(summaries))}
	for _, exam := range summaries {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Exam ID":  strconv.Itoa(exam.ExamID),
			"Course":   exam.CourseName,
			"Date":     exam.ExamDate.Format("2006-01-02"),
			"Slot":     exam.SlotName,
			"Start":    exam.StartTime,
			"End":      exam.EndTime,
			"Room":     exam.RoomName,
			"Students": strconv.Itoa(exam.StudentCount),
			"Proctor":  exam.TeacherName,
		})
	}

	base := sanitizeFilename(sessionName)
	switch strings.ToLower(format) {
	case "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv timetable")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: base + ".csv"}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset, fmt.Sprintf("Exam Timetable: %s", sessionName))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf timetable")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: base + ".pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "[", "", "]", "")
	cleaned := replacer.Replace(strings.TrimSpace(name))
	if cleaned == "" {
		return "exam_timetable"
	}
	return cleaned
}
