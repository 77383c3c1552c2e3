package emit

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/logger"
)

// InitEmitter writes directory initializers that re-export every binding
// module physically present in the same directory.
type InitEmitter struct {
	writer *FileWriter
	logger *zap.SugaredLogger
}

// NewInitEmitter creates an init emitter writing through w.
func NewInitEmitter(w *FileWriter, log *zap.SugaredLogger) *InitEmitter {
	if log == nil {
		log = logger.ComponentLogger("emit.init")
	}
	return &InitEmitter{writer: w, logger: log}
}

// IsBindingModule reports whether a file name follows the binding-module
// convention: a leading underscore and the binding extension, the
// initializer itself excluded.
func IsBindingModule(name string) bool {
	return strings.HasPrefix(name, "_") &&
		strings.HasSuffix(name, BindingExt) &&
		len(name) > len("_"+BindingExt) &&
		name != InitFile
}

// RenderInit returns the initializer content for the given module files.
func RenderInit(modules []string) string {
	sorted := make([]string, len(modules))
	copy(sorted, modules)
	sort.Strings(sorted)

	var sb strings.Builder
	sb.WriteString(Banner)
	for _, m := range sorted {
		sb.WriteString("from ." + strings.TrimSuffix(m, BindingExt) + " import *\n")
	}
	return sb.String()
}

// WriteTree writes an initializer into dir and every directory beneath it,
// top down. It returns the number of initializers written or refreshed.
func (e *InitEmitter) WriteTree(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.NewIOFailure(err, dir)
	}

	var modules, subdirs []string
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case entry.IsDir():
			if strings.HasPrefix(name, ".") || name == "__pycache__" {
				continue
			}
			subdirs = append(subdirs, name)
		case IsBindingModule(name):
			modules = append(modules, name)
		}
	}

	if err := e.writer.Write(filepath.Join(dir, InitFile), []byte(RenderInit(modules))); err != nil {
		return 0, err
	}
	count := 1

	sort.Strings(subdirs)
	for _, sub := range subdirs {
		n, err := e.WriteTree(filepath.Join(dir, sub))
		count += n
		if err != nil {
			return count, err
		}
	}
	e.logger.Debugw("initializers written", logger.FieldPath, dir, logger.FieldCount, count)
	return count, nil
}
