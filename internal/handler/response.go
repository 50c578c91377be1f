package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"redline/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrAccessCodeNotFound):
		return http.StatusUnauthorized, "ACCESS_CODE_NOT_FOUND", "invalid access code"
	case errors.Is(err, domain.ErrAccountDeactivated):
		return http.StatusForbidden, "ACCOUNT_DEACTIVATED", "account deactivated; contact support"
	case errors.Is(err, domain.ErrLimitReached):
		return http.StatusTooManyRequests, "LIMIT_REACHED", "usage limit reached; please renew your subscription"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "LEDGER_UNAVAILABLE", "client ledger is unreachable; try again shortly"
	case errors.Is(err, domain.ErrConnectivity):
		return http.StatusBadGateway, "NO_CONNECTION", "inference service is unreachable; check connectivity"
	case errors.Is(err, domain.ErrInvalidCredential):
		return http.StatusBadGateway, "INVALID_LICENSE", "inference service rejected the configured credential"
	case errors.Is(err, domain.ErrDocumentRejected):
		return http.StatusUnprocessableEntity, "DOCUMENT_REJECTED", "this document is corrupted, password protected, or unsupported"
	case errors.Is(err, domain.ErrExtractionFailed):
		return http.StatusBadGateway, "EXTRACTION_FAILED", "the model failed to structure the data; run the audit again"
	case errors.Is(err, domain.ErrExtractionExhausted):
		return http.StatusServiceUnavailable, "SERVICE_BUSY", "inference service is busy; try again later"
	case errors.Is(err, domain.ErrProcessingTimeout):
		return http.StatusGatewayTimeout, "PROCESSING_TIMEOUT", "document processing timed out"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound, "REPORT_NOT_FOUND", "report not found"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
