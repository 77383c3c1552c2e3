package typeinfo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNested(t *testing.T) {
	outer := NewClass("a", "Outer")
	inner := NewNested(outer, "Inner")

	assert.Equal(t, "a.Outer$Inner", inner.QualifiedName())
	assert.Equal(t, "a.Outer.Inner", inner.CanonicalName())
	assert.Equal(t, "a", inner.Namespace())
	assert.Same(t, outer, inner.Enclosing())
	assert.Nil(t, outer.Enclosing())

	types, err := outer.InnerTypes()
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Inner", types[0].SimpleName())
}

func TestSimpleNameFallback(t *testing.T) {
	tt := &Type{Name: "pkg.Outer$1"}
	assert.Equal(t, "1", tt.SimpleName())
	assert.Equal(t, "Foo", (&Type{Name: "Foo"}).SimpleName())
}

func TestArrayOf(t *testing.T) {
	grid := ArrayOf(ArrayOf(NewPrimitive(Int)))

	assert.Equal(t, "int[][]", grid.QualifiedName())
	assert.Equal(t, KindArray, grid.Kind())
	assert.Empty(t, grid.Namespace())

	dims, elem := Dims(grid)
	assert.Equal(t, 2, dims)
	assert.Equal(t, Int, elem.QualifiedName())

	dims, elem = Dims(NewClass("pkg", "Bar"))
	assert.Zero(t, dims)
	assert.Equal(t, "pkg.Bar", elem.QualifiedName())
}

func TestLoadErrorPropagates(t *testing.T) {
	broken := NewClass("pkg", "Broken")
	broken.LoadErr = errors.New("missing dep.Type")

	assert.Error(t, broken.Load())
	_, err := broken.Methods()
	assert.Error(t, err)
	_, err = broken.Constructors()
	assert.Error(t, err)
	_, err = broken.InnerTypes()
	assert.Error(t, err)
}

func TestIsPrimitiveName(t *testing.T) {
	for _, name := range PrimitiveNames {
		assert.True(t, IsPrimitiveName(name), name)
	}
	assert.False(t, IsPrimitiveName("String"))
	assert.Equal(t, "primitive", KindPrimitive.String())
}
