package exports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes exports under a local directory.
type FileSink struct {
	root string
}

func NewFileSink(root string) (*FileSink, error) {
	if root == "" {
		return nil, fmt.Errorf("export directory required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FileSink{root: root}, nil
}

// Archive writes to a temp file first so readers never see a partial export.
func (s *FileSink) Archive(ctx context.Context, name string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := cleanName(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.root, "."+clean+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.root, clean))
}
