package domain

import "errors"

var (
	// Quota gate denials.
	ErrAccessCodeNotFound = errors.New("access code not found")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrLimitReached       = errors.New("usage limit reached")
	ErrStoreUnavailable   = errors.New("client ledger unavailable")

	// Pipeline failures.
	ErrConnectivity        = errors.New("inference service unreachable")
	ErrInvalidCredential   = errors.New("inference service rejected credential")
	ErrDocumentRejected    = errors.New("document rejected by inference service")
	ErrExtractionFailed    = errors.New("extraction failed")
	ErrExtractionExhausted = errors.New("extraction attempts exhausted")
	ErrProcessingTimeout   = errors.New("document processing timed out")

	// Upload validation.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")

	ErrReportNotFound = errors.New("report not found")
)
