// Package errors provides error handling for pyhints.
//
// It re-exports github.com/cockroachdb/errors so callers get stack traces,
// hints and details without importing the upstream package directly, and
// defines the failure taxonomy of a generation run:
//
//	ErrDiscovery  a candidate type cannot be materialized (recovered, type dropped)
//	ErrNaming     a type has no stable name (recovered, resolves to the sentinel)
//	ErrIO         a generated file or directory cannot be written (fatal)
//
// Usage:
//
//	if err := os.WriteFile(path, data, 0o644); err != nil {
//	    return errors.NewIOFailure(err, path)
//	}
//
//	if errors.IsDiscoveryFailure(err) {
//	    // drop the type and continue
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
	Join         = crdb.Join
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Sentinels. Wrap or Mark them to add context while keeping errors.Is working.
var (
	// ErrDiscovery marks a type that could not be loaded, usually a missing transitive dependency
	ErrDiscovery = New("discovery failure")

	// ErrNaming marks a type without a stable qualified name (anonymous or local)
	ErrNaming = New("naming failure")

	// ErrIO marks a failure to create an output directory or write a generated file
	ErrIO = New("io failure")

	// ErrInvalidManifest indicates a type manifest that cannot be decoded or is inconsistent
	ErrInvalidManifest = New("invalid manifest")

	// ErrInvalidConfig indicates configuration that fails validation
	ErrInvalidConfig = New("invalid config")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")
)

// NewDiscoveryFailure marks err as a discovery failure for the named type.
func NewDiscoveryFailure(err error, typeName string) error {
	return Mark(Wrapf(err, "load %s", typeName), ErrDiscovery)
}

// NewIOFailure marks err as a fatal IO failure and records the offending path.
func NewIOFailure(err error, path string) error {
	wrapped := Mark(Wrapf(err, "write %s", path), ErrIO)
	wrapped = WithDetailf(wrapped, "path: %s", path)
	return WithHint(wrapped, "check that the output root exists and is writable; the run can be repeated safely")
}

// IsDiscoveryFailure checks if an error is or wraps ErrDiscovery
func IsDiscoveryFailure(err error) bool {
	return err != nil && Is(err, ErrDiscovery)
}

// IsNamingFailure checks if an error is or wraps ErrNaming
func IsNamingFailure(err error) bool {
	return err != nil && Is(err, ErrNaming)
}

// IsIOFailure checks if an error is or wraps ErrIO
func IsIOFailure(err error) bool {
	return err != nil && Is(err, ErrIO)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewInvalidManifestError creates an invalid-manifest error with a formatted message
func NewInvalidManifestError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidManifest)
}

// NewInvalidConfigError creates an invalid-config error with a formatted message
func NewInvalidConfigError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidConfig)
}
