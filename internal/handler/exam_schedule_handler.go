package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/dto"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/service"
	appErrors "github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/errors"
	"github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/response"
)

// ExamScheduleHandler manages exam scheduling endpoints.
type ExamScheduleHandler struct {
	scheduler *service.ExamScheduleService
	exporter  *service.ExportService
}

// NewExamScheduleHandler constructs the handler.
func NewExamScheduleHandler(scheduler *service.ExamScheduleService, exporter *service.ExportService) *ExamScheduleHandler {
	return &ExamScheduleHandler{scheduler: scheduler, exporter: exporter}
}

// Schedule godoc
// @Summary Schedule exams for a set of courses
// @Tags Exams
// @Accept json
// @Produce json
// @Param request body dto.ScheduleExamsRequest true "Scheduling request"
// @Success 200 {object} dto.SchedulingResult
// @Failure 400 {object} response.Envelope
// @Router /exams/schedule [post]
func (h *ExamScheduleHandler) Schedule(c *gin.Context) {
	var req dto.ScheduleExamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload"))
		return
	}

	result := h.scheduler.ScheduleExams(c.Request.Context(), req)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusConflict
	}
	c.JSON(status, result)
}

// Detail godoc
// @Summary Get one exam with its roster and proctor
// @Tags Exams
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.DetailedExamResult
// @Failure 404 {object} dto.DetailedExamResult
// @Router /exams/{id} [get]
func (h *ExamScheduleHandler) Detail(c *gin.Context) {
	examID, err := strconv.Atoi(c.Param("id"))
	if err != nil || examID <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "exam id must be a positive integer"))
		return
	}

	result := h.scheduler.GetScheduleDetails(c.Request.Context(), examID)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusNotFound
	}
	c.JSON(status, result)
}

// ListSession godoc
// @Summary List every exam of a session-tagged name
// @Tags Exams
// @Produce json
// @Param session query string true "Full session name including the tag"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exams [get]
func (h *ExamScheduleHandler) ListSession(c *gin.Context) {
	summaries, err := h.scheduler.GetSessionSchedule(c.Request.Context(), c.Query("session"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, nil)
}

// Export godoc
// @Summary Export a session timetable as CSV or PDF
// @Tags Exams
// @Produce octet-stream
// @Param session query string true "Full session name including the tag"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /exams/export [get]
func (h *ExamScheduleHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	format := c.DefaultQuery("format", "csv")
	result, err := h.exporter.ExportSession(c.Request.Context(), c.Query("session"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
