package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/dto"
)

type stubSessionReader struct {
	summaries []dto.ScheduledExamSummary
	err       error
}

func (s stubSessionReader) GetSessionSchedule(ctx context.Context, sessionName string) ([]dto.ScheduledExamSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.summaries, nil
}

func exportFixtureSummaries() []dto.ScheduledExamSummary {
	return []dto.ScheduledExamSummary{
		{
			ExamID:       1,
			CourseName:   "PRF192",
			ExamDate:     time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
			SlotName:     "Slot 1",
			StartTime:    "07:30",
			EndTime:      "09:00",
			RoomName:     "EX-1",
			StudentCount: 15,
			TeacherName:  "Anna Adams",
		},
	}
}

func TestExportServiceRendersCSV(t *testing.T) {
	svc := NewExportService(stubSessionReader{summaries: exportFixtureSummaries()}, zap.NewNop())

	result, err := svc.ExportSession(context.Background(), "Final [Session:0011aabb]", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "Final_Session-0011aabb.csv", result.Filename)

	body := string(result.Content)
	assert.True(t, strings.HasPrefix(body, "Exam ID,Course,Date,Slot,Start,End,Room,Students,Proctor"))
	assert.Contains(t, body, "1,PRF192,2026-09-07,Slot 1,07:30,09:00,EX-1,15,Anna Adams")
}

func TestExportServiceRendersPDF(t *testing.T) {
	svc := NewExportService(stubSessionReader{summaries: exportFixtureSummaries()}, zap.NewNop())

	result, err := svc.ExportSession(context.Background(), "Final [Session:0011aabb]", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(stubSessionReader{summaries: exportFixtureSummaries()}, zap.NewNop())

	_, err := svc.ExportSession(context.Background(), "Final [Session:0011aabb]", "xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}
