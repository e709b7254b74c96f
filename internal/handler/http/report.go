package http

import (
	"net/http"

	"github.com/presensia/attendance-portal-go/internal/domain/report"
	"github.com/presensia/attendance-portal-go/internal/handler/http/response"
)

// Dashboard defaults: a one-week trend and the ten most recent latecomers.
const (
	defaultTrendWindowDays = 7
	defaultMaxLateAlerts   = 10
)

type ReportHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
	DailyTrend(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// Dashboard implements ReportHandler.
func (h *reportHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	windowDays := queryInt(r, "window_days")
	if windowDays <= 0 {
		windowDays = defaultTrendWindowDays
	}
	if windowDays > 90 {
		windowDays = 90
	}

	result, err := h.reportService.Dashboard(r.Context(), windowDays, defaultMaxLateAlerts)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DailyTrend implements ReportHandler.
func (h *reportHandlerImpl) DailyTrend(w http.ResponseWriter, r *http.Request) {
	windowDays := queryInt(r, "window_days")
	if windowDays <= 0 {
		windowDays = defaultTrendWindowDays
	}
	if windowDays > 90 {
		windowDays = 90
	}

	result, err := h.reportService.DailyTrend(r.Context(), windowDays)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
