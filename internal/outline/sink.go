package outline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink delivers finished outline text somewhere.
type Sink interface {
	Deliver(text string) error
}

// WriterSink writes the outline to an io.Writer such as os.Stdout or an
// HTTP response body.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Deliver(text string) error {
	if _, err := io.WriteString(s.W, text); err != nil {
		return fmt.Errorf("write outline: %w", err)
	}
	return nil
}

// FileSink replaces the file at Path with the outline. The file is written
// to a temp file in the same directory and renamed into place.
type FileSink struct {
	Path string
	Perm os.FileMode
}

func (s FileSink) Deliver(text string) error {
	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".docoutline-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.WriteString(tmp, text); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
