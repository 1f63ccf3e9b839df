package api

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// getReportRequest is the body of POST /get_report.
type getReportRequest struct {
	ReportID string `json:"report_id" binding:"required"`
}

// TriggerReport handles GET /trigger_report. It allocates a fresh job
// id, queues compilation and returns the id without waiting.
func (h *Handler) TriggerReport(c *gin.Context) {
	reportID := h.manager.Trigger()
	c.JSON(http.StatusOK, gin.H{"report_id": reportID})
}

// GetReport handles POST /get_report. A completed job's artifact is
// returned as a CSV attachment; a running or unknown job id gets the
// pending signal. The two cases are intentionally indistinguishable.
func (h *Handler) GetReport(c *gin.Context) {
	var req getReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "report_id is required"})
		return
	}

	path, ready := h.manager.Fetch(req.ReportID)
	if !ready {
		c.JSON(http.StatusOK, gin.H{"status": "Running"})
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}
