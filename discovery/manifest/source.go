package manifest

import (
	"context"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/logger"
	"github.com/matsim-eth/python-matsim/typeinfo"
)

// Source is a discovery source backed by one manifest location.
type Source struct {
	location string
	logger   *zap.SugaredLogger
	client   *http.Client
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithHTTPClient sets the client used for http and https downloads.
func WithHTTPClient(c *http.Client) SourceOption {
	return func(s *Source) { s.client = c }
}

// NewSource creates a source for a local path or go-getter URL.
func NewSource(location string, log *zap.SugaredLogger, opts ...SourceOption) *Source {
	if log == nil {
		log = logger.ComponentLogger("manifest")
	}
	s := &Source{location: location, logger: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Source) Name() string { return s.location }

// Types resolves, loads and links the manifest.
func (s *Source) Types(ctx context.Context) ([]typeinfo.Handle, error) {
	m, err := s.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	u, err := NewUniverse(m)
	if err != nil {
		return nil, err
	}
	return u.Handles(), nil
}

// Manifest resolves and decodes the manifest without linking it.
func (s *Source) Manifest(ctx context.Context) (*Manifest, error) {
	dir, err := os.MkdirTemp("", "pyhints-manifest-")
	if err != nil {
		return nil, errors.Wrap(err, "create download directory")
	}
	defer os.RemoveAll(dir)

	path, err := Resolve(ctx, s.location, dir, s.client)
	if err != nil {
		return nil, err
	}
	s.logger.Debugw("manifest resolved", logger.FieldSource, s.location, logger.FieldPath, path)

	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("manifest loaded", logger.FieldSource, s.location, logger.FieldCount, len(m.Types))
	return m, nil
}

// UniverseSource wraps an already decoded manifest.
type UniverseSource struct {
	label    string
	manifest *Manifest
}

// FromManifest returns a source over m.
func FromManifest(label string, m *Manifest) *UniverseSource {
	return &UniverseSource{label: label, manifest: m}
}

func (s *UniverseSource) Name() string { return s.label }

func (s *UniverseSource) Types(context.Context) ([]typeinfo.Handle, error) {
	u, err := NewUniverse(s.manifest)
	if err != nil {
		return nil, err
	}
	return u.Handles(), nil
}
