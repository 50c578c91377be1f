package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"redline/internal/service"
	"redline/internal/xlsxreport"
)

// ReportHandler serves archived audit reports.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Download handles GET /api/v1/reports/:id/download
func (h *ReportHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "report id must be a valid UUID")
		return
	}

	meta, content, err := h.reportService.Download(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, meta.FileName))
	c.Data(http.StatusOK, xlsxreport.ContentType, content)
}
