package generate

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/matsim-eth/python-matsim/emit"
	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/logger"
)

// CheckResult holds the result of an up-to-date check. Paths are relative
// to the package directory.
type CheckResult struct {
	UpToDate bool
	Changed  []string // generated content differs
	Missing  []string // would be generated, absent on disk
	Stale    []string // generated document on disk that would not be generated
}

// Check generates into a temporary directory and compares the result with
// the tree under opts.Layout. Nothing under opts.Layout is modified.
func Check(ctx context.Context, opts Options, log *zap.SugaredLogger) (*CheckResult, error) {
	if log == nil {
		log = logger.ComponentLogger("check")
	}
	tempDir, err := os.MkdirTemp("", "pyhints-check-")
	if err != nil {
		return nil, errors.Wrap(err, "create check directory")
	}
	defer os.RemoveAll(tempDir)

	fresh := opts
	fresh.Layout = emit.Layout{Root: tempDir, Namespace: opts.Layout.Namespace}
	if _, err := Run(ctx, fresh, log); err != nil {
		return nil, err
	}

	result, err := CompareTrees(fresh.Layout.PackageDir(), opts.Layout.PackageDir())
	if err != nil {
		return nil, err
	}
	log.Infow("check complete",
		"up_to_date", result.UpToDate,
		"changed", len(result.Changed),
		"missing", len(result.Missing),
		"stale", len(result.Stale),
	)
	return result, nil
}

// CompareTrees compares the generated documents of two package directories.
// A missing existingDir reports every generated file as missing.
func CompareTrees(generatedDir, existingDir string) (*CheckResult, error) {
	generated, err := generatedFiles(generatedDir, false)
	if err != nil {
		return nil, err
	}
	existing, err := generatedFiles(existingDir, true)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{}
	for rel := range generated {
		if _, err := os.Stat(filepath.Join(existingDir, rel)); os.IsNotExist(err) {
			result.Missing = append(result.Missing, rel)
			continue
		}
		different, err := filesAreDifferent(filepath.Join(generatedDir, rel), filepath.Join(existingDir, rel))
		if err != nil {
			return nil, err
		}
		if different {
			result.Changed = append(result.Changed, rel)
		}
	}
	for rel := range existing {
		if !generated[rel] {
			result.Stale = append(result.Stale, rel)
		}
	}

	sort.Strings(result.Changed)
	sort.Strings(result.Missing)
	sort.Strings(result.Stale)
	result.UpToDate = len(result.Changed)+len(result.Missing)+len(result.Stale) == 0
	return result, nil
}

// generatedFiles lists the documents under dir named like generated ones.
// With owned set, only files that open with the banner are listed, so
// hand-written modules that follow the naming convention are left out.
func generatedFiles(dir string, owned bool) (map[string]bool, error) {
	files := make(map[string]bool)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return files, nil
	}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != dir && (strings.HasPrefix(name, ".") || name == "__pycache__") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isGenerated(name) {
			return nil
		}
		if owned {
			ok, err := hasBanner(path)
			if err != nil || !ok {
				return err
			}
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files[rel] = true
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", dir)
	}
	return files, nil
}

func isGenerated(name string) bool {
	return name == emit.InitFile ||
		emit.IsBindingModule(name) ||
		(strings.HasPrefix(name, "_") && strings.HasSuffix(name, emit.StubExt))
}

// hasBanner reports whether the file at path opens with emit.Banner.
func hasBanner(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, errors.Wrapf(err, "read %s", path)
	}
	defer f.Close()

	head := make([]byte, len(emit.Banner))
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, errors.Wrapf(err, "read %s", path)
	}
	return string(head[:n]) == emit.Banner, nil
}

func filesAreDifferent(a, b string) (bool, error) {
	content1, err := os.ReadFile(a)
	if err != nil {
		return false, errors.Wrapf(err, "read %s", a)
	}
	content2, err := os.ReadFile(b)
	if err != nil {
		return false, errors.Wrapf(err, "read %s", b)
	}
	return !bytes.Equal(content1, content2), nil
}
