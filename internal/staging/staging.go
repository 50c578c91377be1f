// Package staging holds uploaded documents in transient local files while
// they are forwarded to the inference service.
package staging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Staged is a handle to a transiently staged document. It is owned by one
// in-flight audit run and must be removed on every exit path.
type Staged struct {
	Path         string
	OriginalName string
	ContentType  string
	Size         int64
}

// Stage writes content to a temp file and returns a handle to it.
func Stage(content []byte, originalName, contentType string) (*Staged, error) {
	f, err := os.CreateTemp("", "redline-stage-*"+filepath.Ext(originalName))
	if err != nil {
		return nil, fmt.Errorf("creating staging file: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("writing staging file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("closing staging file: %w", err)
	}
	return &Staged{
		Path:         f.Name(),
		OriginalName: originalName,
		ContentType:  contentType,
		Size:         int64(len(content)),
	}, nil
}

// Remove deletes the staged file. Safe to call more than once; failures are
// logged since they never affect the audit result.
func (s *Staged) Remove() {
	if s == nil || s.Path == "" {
		return
	}
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		log.Printf("staging.Remove: failed to remove %s: %v", s.Path, err)
	}
	s.Path = ""
}
