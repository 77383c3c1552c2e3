package errors

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestNewDiscoveryFailure(t *testing.T) {
	err := NewDiscoveryFailure(New("class not found: dep.Missing"), "pkg.Foo")

	require.Error(t, err)
	assert.True(t, IsDiscoveryFailure(err))
	assert.False(t, IsIOFailure(err))
	assert.Contains(t, err.Error(), "load pkg.Foo")
	assert.Contains(t, err.Error(), "dep.Missing")
}

func TestNewIOFailure(t *testing.T) {
	err := NewIOFailure(os.ErrPermission, "/out/pkg/_pkg.pyi")

	assert.True(t, IsIOFailure(err))
	assert.True(t, Is(err, os.ErrPermission))
	assert.Contains(t, err.Error(), "/out/pkg/_pkg.pyi")
	assert.Contains(t, FlattenDetails(err), "path: /out/pkg/_pkg.pyi")
	assert.NotEmpty(t, GetAllHints(err))
}

func TestSentinelChecks(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"nil discovery", nil, IsDiscoveryFailure, false},
		{"nil io", nil, IsIOFailure, false},
		{"naming", Wrap(ErrNaming, "pkg.Foo$1"), IsNamingFailure, true},
		{"not found", Wrapf(ErrNotFound, "snapshot %s", "abc"), IsNotFoundError, true},
		{"manifest is not config", NewInvalidManifestError("bad format %d", 2), func(err error) bool { return Is(err, ErrInvalidConfig) }, false},
		{"manifest", NewInvalidManifestError("bad format %d", 2), func(err error) bool { return Is(err, ErrInvalidManifest) }, true},
		{"config", NewInvalidConfigError("empty root"), func(err error) bool { return Is(err, ErrInvalidConfig) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}
