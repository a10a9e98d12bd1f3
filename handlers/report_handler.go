package handlers

import (
	"net/http"
	"strconv"

	reportSvc "grandstay/services/report"
	"grandstay/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the admin reporting endpoints.
type ReportHandler struct {
	Reports *reportSvc.ReportService
}

func NewReportHandler(reports *reportSvc.ReportService) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

// Occupancy handles GET /admin/reports/occupancy?from=...&to=...
func (h *ReportHandler) Occupancy(c *gin.Context) {
	from, to, err := dateWindow(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "dates must be YYYY-MM-DD")
		return
	}

	report, err := h.Reports.Occupancy(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Occupancy report", report)
}

// Revenue handles GET /admin/reports/revenue?from=...&to=...
func (h *ReportHandler) Revenue(c *gin.Context) {
	from, to, err := dateWindow(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "dates must be YYYY-MM-DD")
		return
	}

	report, err := h.Reports.Revenue(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Revenue report", report)
}

// TopCustomers handles GET /admin/reports/top-customers?from=...&to=...&limit=10.
func (h *ReportHandler) TopCustomers(c *gin.Context) {
	from, to, err := dateWindow(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "dates must be YYYY-MM-DD")
		return
	}
	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "limit must be a positive integer")
			return
		}
		limit = n
	}

	customers, err := h.Reports.TopCustomers(c.Request.Context(), from, to, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Top customers", customers)
}
