package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"redline/internal/service"
)

// AccessHandler handles access-code verification endpoints.
type AccessHandler struct {
	quotaService service.QuotaService
}

// NewAccessHandler creates a new AccessHandler.
func NewAccessHandler(quotaService service.QuotaService) *AccessHandler {
	return &AccessHandler{quotaService: quotaService}
}

type accessCheckRequest struct {
	AccessCode string `json:"access_code" binding:"required"`
}

type accessCheckResponse struct {
	AccessCode string `json:"access_code"`
	Used       int    `json:"used"`
	Limit      int    `json:"limit"`
	Remaining  int    `json:"remaining"`
}

// Check handles POST /api/v1/access/check
func (h *AccessHandler) Check(c *gin.Context) {
	var req accessCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "access_code is required")
		return
	}

	acct, err := h.quotaService.Check(c.Request.Context(), req.AccessCode)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, accessCheckResponse{
		AccessCode: acct.AccessCode,
		Used:       acct.Used,
		Limit:      acct.UsageLimit,
		Remaining:  acct.Remaining(),
	})
}
