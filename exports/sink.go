// Package exports archives generated CSV exports on disk or in S3.
package exports

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// Sink stores one named export. Implementations overwrite an existing name.
type Sink interface {
	Archive(ctx context.Context, name string, body []byte) error
}

// cleanName rejects anything that is not a plain file name.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("empty export name")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid export name %q", name)
	}
	return path.Clean(name), nil
}

// Multi fans an export out to every sink and joins their errors.
type Multi []Sink

func (m Multi) Archive(ctx context.Context, name string, body []byte) error {
	var errs []error
	for _, s := range m {
		if err := s.Archive(ctx, name, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
