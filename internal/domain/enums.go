package domain

// RemoteFileState is the processing state the inference service reports for
// an uploaded document.
type RemoteFileState string

const (
	FileStatePending    RemoteFileState = "PENDING"
	FileStateProcessing RemoteFileState = "PROCESSING"
	FileStateReady      RemoteFileState = "READY"
	FileStateFailed     RemoteFileState = "FAILED"
)

// Terminal reports whether the state can no longer change.
func (s RemoteFileState) Terminal() bool {
	return s == FileStateReady || s == FileStateFailed
}

// AllowedContentTypes maps acceptable upload MIME types to their canonical form.
var AllowedContentTypes = map[string]string{
	"application/pdf": "application/pdf",
}

// AllowedExtensions maps acceptable file extensions to content types.
var AllowedExtensions = map[string]string{
	"pdf": "application/pdf",
}
