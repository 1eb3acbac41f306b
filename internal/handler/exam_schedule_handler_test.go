package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/service"
)

func buildExamRouter(exporter *service.ExportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	scheduler := service.NewExamScheduleService(nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, zap.NewNop(), service.ExamScheduleConfig{})
	h := NewExamScheduleHandler(scheduler, exporter)

	r := gin.New()
	r.POST("/exams/schedule", h.Schedule)
	r.GET("/exams", h.ListSession)
	r.GET("/exams/export", h.Export)
	r.GET("/exams/:id", h.Detail)
	return r
}

func performRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestExamScheduleHandlerRejectsMalformedPayload(t *testing.T) {
	router := buildExamRouter(nil)

	req, _ := http.NewRequest(http.MethodPost, "/exams/schedule", bytes.NewBufferString(`{"examName":`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "invalid request payload")
}

func TestExamScheduleHandlerRejectsBadExamID(t *testing.T) {
	router := buildExamRouter(nil)

	req, _ := http.NewRequest(http.MethodGet, "/exams/abc", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "positive integer")
}

func TestExamScheduleHandlerRequiresSessionName(t *testing.T) {
	router := buildExamRouter(nil)

	req, _ := http.NewRequest(http.MethodGet, "/exams", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "session name is required")
}

func TestExamScheduleHandlerExportDisabled(t *testing.T) {
	router := buildExamRouter(nil)

	req, _ := http.NewRequest(http.MethodGet, "/exams/export?session=x", nil)
	resp := performRequest(router, req)

	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Contains(t, resp.Body.String(), "exports are disabled")
}
