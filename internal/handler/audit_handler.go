package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"redline/internal/domain"
	"redline/internal/service"
	"redline/internal/staging"
)

// AuditHandler handles lease audit runs. It owns the interaction flow: quota
// gate, local staging, extraction pipeline, report encoding, and usage
// recording — in that order, so a failed run never consumes quota.
type AuditHandler struct {
	quotaService  service.QuotaService
	auditService  service.AuditService
	reportService service.ReportService
	maxFileSizeMB int64
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(
	quotaService service.QuotaService,
	auditService service.AuditService,
	reportService service.ReportService,
	maxFileSizeMB int64,
) *AuditHandler {
	return &AuditHandler{
		quotaService:  quotaService,
		auditService:  auditService,
		reportService: reportService,
		maxFileSizeMB: maxFileSizeMB,
	}
}

// usageInfo reflects the account state after a successful run.
type usageInfo struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

// reportInfo describes the generated artifact. Content is set (base64 in
// JSON) only when the report was not archived.
type reportInfo struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	FileName    string     `json:"file_name"`
	DownloadURL string     `json:"download_url,omitempty"`
	Content     []byte     `json:"content,omitempty"`
}

type auditRunResponse struct {
	Extraction *domain.LeaseExtraction `json:"extraction"`
	Data       json.RawMessage         `json:"data"`
	Model      string                  `json:"model"`
	Attempts   int                     `json:"attempts"`
	Usage      usageInfo               `json:"usage"`
	Report     *reportInfo             `json:"report,omitempty"`
}

// Run handles POST /api/v1/audits (multipart: access_code + file).
func (h *AuditHandler) Run(c *gin.Context) {
	ctx := c.Request.Context()

	accessCode := c.PostForm("access_code")
	if accessCode == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "access_code is required")
		return
	}

	// Admission gate before anything touches the inference service.
	acct, err := h.quotaService.Check(ctx, accessCode)
	if err != nil {
		HandleError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required")
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileHeader.Filename), "."))
	contentType, ok := domain.AllowedExtensions[ext]
	if !ok {
		HandleError(c, domain.ErrUnsupportedFileType)
		return
	}
	if fileHeader.Size > h.maxFileSizeMB*1024*1024 {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}

	staged, err := staging.Stage(content, fileHeader.Filename, contentType)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer staged.Remove()

	log.Printf("auditHandler.Run: starting audit of %s (%d bytes) for %s",
		fileHeader.Filename, fileHeader.Size, accessCode)

	output, err := h.auditService.Run(ctx, staged)
	if err != nil {
		HandleError(c, err)
		return
	}

	// Report encoding and usage recording are both best-effort once the
	// extraction succeeded: the result is always delivered.
	var report *reportInfo
	generated, err := h.reportService.Generate(ctx, accessCode, fileHeader.Filename, output.Data)
	if err != nil {
		log.Printf("auditHandler.Run: report generation failed for %s: %v", accessCode, err)
	} else {
		report = &reportInfo{
			ID:          generated.ID,
			FileName:    generated.FileName,
			DownloadURL: generated.DownloadURL,
		}
		if generated.ID == nil {
			report.Content = generated.Content
		}
	}

	used := acct.Used
	if err := h.quotaService.Increment(ctx, accessCode); err == nil {
		used++
	}

	RespondOK(c, auditRunResponse{
		Extraction: domain.DecodeLeaseExtraction(output.Data),
		Data:       output.Data,
		Model:      output.Model,
		Attempts:   output.Attempts,
		Usage:      usageInfo{Used: used, Limit: acct.UsageLimit},
		Report:     report,
	})
}
