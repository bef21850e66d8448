package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BlizzardPurple/Backened-for-restaurant-report-tracking/internal/model"
)

// TriggerReport handles POST /api/trigger_report. It registers a Running
// report, hands it to the worker pool and returns the id for polling.
func (h *Handler) TriggerReport(c *gin.Context) {
	reportID := uuid.NewString()
	if err := h.store.CreateReport(c.Request.Context(), reportID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	h.pool.Dispatch(reportID)

	c.JSON(http.StatusOK, gin.H{"report_id": reportID})
}

// GetReport handles GET /api/get_report?report_id=X. While the report is
// pending the body is the literal string "Running"; once complete the CSV
// artifact is returned as an attachment.
func (h *Handler) GetReport(c *gin.Context) {
	reportID := c.Query("report_id")
	if reportID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "report_id is required"})
		return
	}

	report, err := h.store.GetReport(c.Request.Context(), reportID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve report"})
		return
	}

	switch report.Status {
	case model.ReportRunning:
		c.String(http.StatusOK, model.ReportRunning)
	case model.ReportComplete:
		if _, err := os.Stat(report.CSVPath); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Report file not found"})
			return
		}
		c.FileAttachment(report.CSVPath, fmt.Sprintf("report_%s.csv", report.ReportID))
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Error generating report"})
	}
}
