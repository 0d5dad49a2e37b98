// Package inspect implements the body inspection policies: full-body
// buffering, blocked-content filtering, and duplicate-body throttling.
package inspect

import (
	"fmt"
	"io"
)

// ReadBody drains r to completion and returns the contents as text.
// On a read error no partial body is returned.
func ReadBody(r io.Reader) (string, error) {
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read request body: %w", err)
	}
	return string(data), nil
}
