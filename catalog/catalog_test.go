package catalog

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/typeinfo"
)

func newTestCatalog(t *testing.T) *Catalog {
	return New(zaptest.NewLogger(t).Sugar())
}

func TestClassify(t *testing.T) {
	private := typeinfo.NewClass("pkg", "Hidden")
	private.Visible = false

	anonymous := &typeinfo.Type{Name: "pkg.Foo$1", Package: "pkg", Visible: true}

	broken := typeinfo.NewClass("pkg", "Broken")
	broken.LoadErr = stderrors.New("NoClassDefFoundError: dep/Missing")

	tests := []struct {
		name  string
		h     typeinfo.Handle
		class Class
	}{
		{"reference", typeinfo.NewClass("pkg", "Foo"), Reference},
		{"primitive", typeinfo.NewPrimitive(typeinfo.Int), PrimitiveClass},
		{"void", typeinfo.NewPrimitive(typeinfo.Void), PrimitiveClass},
		{"unknown primitive", typeinfo.NewPrimitive("quad"), Skip},
		{"array of reference", typeinfo.ArrayOf(typeinfo.NewClass("pkg", "Bar")), ArrayClass},
		{"array of primitive", typeinfo.ArrayOf(typeinfo.NewPrimitive(typeinfo.Byte)), ArrayClass},
		{"not public", private, Skip},
		{"anonymous", anonymous, Skip},
		{"unloadable", broken, Skip},
		{"array of anonymous", typeinfo.ArrayOf(anonymous), Skip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCatalog(t)
			assert.Equal(t, tt.class, c.Classify(tt.h).Class)
		})
	}
}

func TestClassifySkipReasons(t *testing.T) {
	c := newTestCatalog(t)

	broken := typeinfo.NewClass("pkg", "Broken")
	broken.LoadErr = stderrors.New("missing dep.Type")
	r := c.Classify(broken)
	require.Equal(t, Skip, r.Class)
	assert.True(t, errors.IsDiscoveryFailure(r.Err))

	anonymous := &typeinfo.Type{Name: "pkg.Foo$1", Visible: true}
	r = c.Classify(anonymous)
	require.Equal(t, Skip, r.Class)
	assert.True(t, errors.IsNamingFailure(r.Err))

	dropped := c.Dropped()
	require.Len(t, dropped, 2)
	assert.Equal(t, "pkg.Broken", dropped[0].Name)
	assert.Equal(t, "pkg.Foo$1", dropped[1].Name)
}

func TestClassifyNestedInPrivate(t *testing.T) {
	outer := typeinfo.NewClass("pkg", "Outer")
	outer.Visible = false
	inner := typeinfo.NewNested(outer, "Inner")

	assert.Equal(t, Skip, newTestCatalog(t).Classify(inner).Class)
}

func TestClassifyMemoizedByQualifiedName(t *testing.T) {
	c := newTestCatalog(t)

	first := typeinfo.NewClass("pkg", "Foo")
	second := typeinfo.NewClass("pkg", "Foo")
	second.LoadErr = stderrors.New("would fail if consulted")

	assert.Equal(t, Reference, c.Classify(first).Class)
	assert.Equal(t, Reference, c.Classify(second).Class)
	assert.Empty(t, c.Dropped())
}

func TestClassifyArrayDims(t *testing.T) {
	c := newTestCatalog(t)
	r := c.Classify(typeinfo.ArrayOf(typeinfo.ArrayOf(typeinfo.NewPrimitive(typeinfo.Double))))

	require.Equal(t, ArrayClass, r.Class)
	assert.Equal(t, 2, r.Dims)
	assert.Equal(t, typeinfo.Double, r.Element.QualifiedName())
}

func TestNamespace(t *testing.T) {
	c := newTestCatalog(t)

	assert.Equal(t, "pkg", c.Namespace(typeinfo.NewClass("pkg", "Foo")))
	assert.Equal(t, "pkg", c.Namespace(typeinfo.ArrayOf(typeinfo.ArrayOf(typeinfo.NewClass("pkg", "Foo")))))
	assert.Empty(t, c.Namespace(typeinfo.NewPrimitive(typeinfo.Int)))
	assert.Empty(t, c.Namespace(typeinfo.ArrayOf(typeinfo.NewPrimitive(typeinfo.Int))))
}

func TestPrimitiveTable(t *testing.T) {
	for _, name := range typeinfo.PrimitiveNames {
		p, ok := LookupPrimitive(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, p.Annotation, name)
	}

	p, _ := LookupPrimitive(typeinfo.Int)
	assert.Equal(t, "Union[int, JInt]", p.Annotation)

	b, _ := LookupPrimitive(typeinfo.Byte)
	assert.Contains(t, b.ArrayAnnotation, "bytes")

	v, _ := LookupPrimitive(typeinfo.Void)
	assert.False(t, v.Hint)
	assert.Equal(t, "None", v.Annotation)
}
