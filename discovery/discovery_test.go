package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/typeinfo"
)

type failingSource struct{}

func (failingSource) Name() string { return "broken" }
func (failingSource) Types(context.Context) ([]typeinfo.Handle, error) {
	return nil, errors.New("scan failed")
}

func names(handles []typeinfo.Handle) []string {
	out := make([]string, len(handles))
	for i, h := range handles {
		out[i] = h.QualifiedName()
	}
	return out
}

func TestCollectMergesAndSorts(t *testing.T) {
	first := typeinfo.NewClass("pkg", "Foo")
	duplicate := typeinfo.NewClass("pkg", "Foo")
	duplicate.Visible = false

	app := NewStatic("app", typeinfo.NewClass("pkg", "Zed"), first)
	boot := NewStatic("boot", duplicate, typeinfo.NewClass("java.lang", "Object"), nil)

	merged, err := Collect(context.Background(), zaptest.NewLogger(t).Sugar(), app, boot)
	require.NoError(t, err)

	assert.Equal(t, []string{"java.lang.Object", "pkg.Foo", "pkg.Zed"}, names(merged))
	assert.Same(t, first, merged[1])
}

func TestCollectOrderIndependent(t *testing.T) {
	a := NewStatic("a", typeinfo.NewClass("x", "B"), typeinfo.NewClass("x", "A"))
	b := NewStatic("b", typeinfo.NewClass("y", "C"))
	log := zaptest.NewLogger(t).Sugar()

	ab, err := Collect(context.Background(), log, a, b)
	require.NoError(t, err)
	ba, err := Collect(context.Background(), log, b, a)
	require.NoError(t, err)
	assert.Equal(t, names(ab), names(ba))
}

func TestCollectSourceError(t *testing.T) {
	_, err := Collect(context.Background(), zaptest.NewLogger(t).Sugar(), NewStatic("ok"), failingSource{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestCollectCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Collect(ctx, zaptest.NewLogger(t).Sugar(), NewStatic("ok"))
	assert.ErrorIs(t, err, context.Canceled)
}
