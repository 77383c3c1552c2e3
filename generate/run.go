// Package generate runs the full pipeline: discover the type universe,
// register it, resolve names, and write the stub, binding and initializer
// documents.
package generate

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matsim-eth/python-matsim/catalog"
	"github.com/matsim-eth/python-matsim/discovery"
	"github.com/matsim-eth/python-matsim/emit"
	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/graph"
	"github.com/matsim-eth/python-matsim/logger"
	"github.com/matsim-eth/python-matsim/naming"
	"github.com/matsim-eth/python-matsim/typeinfo"
)

// Options configures one generation run.
type Options struct {
	Layout         emit.Layout
	RuntimeVersion string
	Sources        []discovery.Source
}

// Summary reports the outcome of a run.
type Summary struct {
	RunID      string
	Namespaces int
	Classes    int
	Bindings   int
	Written    int
	Unchanged  int
	Inits      int
	Dropped    []catalog.Dropped
	Results    []emit.NamespaceResult
	Graph      graph.Stats
	Duration   time.Duration
}

// Run collects the handles of every source and generates from them.
func Run(ctx context.Context, opts Options, log *zap.SugaredLogger) (*Summary, error) {
	if log == nil {
		log = logger.ComponentLogger("generate")
	}
	handles, err := discovery.Collect(ctx, log.Named("discovery"), opts.Sources...)
	if err != nil {
		return nil, err
	}
	return Generate(ctx, handles, opts, log)
}

// Generate writes the documents for handles. Emission stops at the first
// write failure; namespaces written before it stay on disk.
func Generate(ctx context.Context, handles []typeinfo.Handle, opts Options, log *zap.SugaredLogger) (*Summary, error) {
	if log == nil {
		log = logger.ComponentLogger("generate")
	}
	summary := &Summary{RunID: uuid.NewString()}
	log = log.With(logger.FieldRunID, summary.RunID)
	start := time.Now()

	keywords, err := naming.KeywordsFor(opts.RuntimeVersion)
	if err != nil {
		return nil, err
	}

	cat := catalog.New(log.Named("catalog"))
	g := graph.New(cat, log.Named("graph"))
	g.AddAll(handles)

	resolver := naming.NewResolver(cat, opts.Layout.Namespace,
		naming.WithMembership(g),
		naming.WithKeywords(keywords),
		naming.WithLogger(log.Named("naming")),
	)
	writer := emit.NewFileWriter(log.Named("emit"))
	emitter := emit.NewEmitter(opts.Layout, resolver, writer, log.Named("emit"))

	defer func() {
		summary.Written = writer.Written
		summary.Unchanged = writer.Unchanged
		summary.Dropped = cat.Dropped()
		summary.Graph = g.Stats()
		summary.Duration = time.Since(start)
	}()

	for _, ns := range g.Namespaces() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		result, err := emitter.EmitNamespace(ns)
		if err != nil {
			return summary, errors.Wrapf(err, "emit namespace %s", ns.Name)
		}
		if result.Classes == 0 {
			continue
		}
		summary.Namespaces++
		summary.Classes += result.Classes
		summary.Bindings += result.Bindings
		summary.Results = append(summary.Results, result)
	}

	pkgDir := opts.Layout.PackageDir()
	if _, err := os.Stat(pkgDir); err == nil {
		inits, err := emit.NewInitEmitter(writer, log.Named("emit.init")).WriteTree(pkgDir)
		summary.Inits = inits
		if err != nil {
			return summary, errors.Wrap(err, "write initializers")
		}
	}

	log.Infow("generation complete",
		logger.FieldNamespaces, summary.Namespaces,
		logger.FieldClasses, summary.Classes,
		logger.FieldDropped, len(cat.Dropped()),
		logger.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return summary, nil
}
