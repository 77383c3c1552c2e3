// Package discovery defines the interchangeable backends that produce type
// handles, and merges what several of them report into one type set.
package discovery

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/logger"
	"github.com/matsim-eth/python-matsim/typeinfo"
)

// Source yields the handles of one loader scope.
type Source interface {
	Name() string
	Types(ctx context.Context) ([]typeinfo.Handle, error)
}

// Collect merges sources into one handle list sorted by qualified name.
// A type reported by several sources is kept once; the first source wins.
func Collect(ctx context.Context, log *zap.SugaredLogger, sources ...Source) ([]typeinfo.Handle, error) {
	if log == nil {
		log = logger.ComponentLogger("discovery")
	}

	seen := make(map[string]bool)
	var merged []typeinfo.Handle
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		types, err := src.Types(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "discover types from %s", src.Name())
		}

		added := 0
		for _, h := range types {
			if h == nil || seen[h.QualifiedName()] {
				continue
			}
			seen[h.QualifiedName()] = true
			merged = append(merged, h)
			added++
		}
		log.Infow("source loaded", logger.FieldSource, src.Name(), logger.FieldCount, len(types), "new", added)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].QualifiedName() < merged[j].QualifiedName()
	})
	return merged, nil
}

// Static is a Source over a fixed handle list.
type Static struct {
	Label   string
	Handles []typeinfo.Handle
}

// NewStatic creates a static source.
func NewStatic(label string, handles ...typeinfo.Handle) *Static {
	return &Static{Label: label, Handles: handles}
}

func (s *Static) Name() string { return s.Label }

func (s *Static) Types(context.Context) ([]typeinfo.Handle, error) {
	return s.Handles, nil
}
