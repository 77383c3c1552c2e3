package emit

import (
	"bytes"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/logger"
)

// FileWriter writes generated documents, creating parent directories.
// Files whose content is already current are left untouched.
type FileWriter struct {
	logger *zap.SugaredLogger

	Written   int
	Unchanged int
}

// NewFileWriter creates a writer. A nil logger falls back to the global one.
func NewFileWriter(log *zap.SugaredLogger) *FileWriter {
	if log == nil {
		log = logger.ComponentLogger("emit")
	}
	return &FileWriter{logger: log}
}

// Write stores content at path. Any failure is an IO failure naming path.
func (w *FileWriter) Write(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewIOFailure(err, filepath.Dir(path))
	}

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		w.Unchanged++
		w.logger.Debugw("unchanged", logger.FieldPath, path)
		return nil
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return errors.NewIOFailure(err, path)
	}
	w.Written++
	w.logger.Infow("generate", logger.FieldPath, path)
	return nil
}
