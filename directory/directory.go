// Package directory holds the office-management domain services: offices,
// managers, clerks, documents, and user accounts. The services are thin:
// input validation, referential existence checks, and field-by-field partial
// updates over the repositories.
package directory

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

var (
	ErrNotFound     = errors.New("directory: not found")
	ErrConflict     = errors.New("directory: conflict")
	ErrInvalidInput = errors.New("directory: invalid input")
)

// NewID generates a url-safe random identifier for new records.
func NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("directory: generate id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
