package port

import (
	"context"

	"redline/internal/domain"
)

// RemoteFile is an opaque reference to a document staged inside the
// inference service. Its lifetime is bounded by one pipeline run.
type RemoteFile struct {
	Name     string
	URI      string
	MIMEType string
	State    domain.RemoteFileState
}

// InferenceClient abstracts the hosted model service used for structured
// extraction. Implementations classify failures at the point of origin:
// transport errors wrap domain.ErrConnectivity, credential rejections wrap
// domain.ErrInvalidCredential, and throttling is reported as
// *inference.RateLimitError.
type InferenceClient interface {
	Upload(ctx context.Context, content []byte, displayName, contentType string) (*RemoteFile, error)
	GetState(ctx context.Context, name string) (domain.RemoteFileState, error)
	Generate(ctx context.Context, file *RemoteFile, instruction string) (string, error)
	Delete(ctx context.Context, name string) error
}
