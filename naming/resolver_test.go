package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/matsim-eth/python-matsim/catalog"
	"github.com/matsim-eth/python-matsim/typeinfo"
)

type memberSet map[string]typeinfo.Handle

func (m memberSet) Registered(name string) (typeinfo.Handle, bool) {
	h, ok := m[name]
	return h, ok
}

func members(handles ...typeinfo.Handle) memberSet {
	m := make(memberSet, len(handles))
	for _, h := range handles {
		m[h.QualifiedName()] = h
	}
	return m
}

func newTestResolver(t *testing.T, root string, opts ...Option) *Resolver {
	log := zaptest.NewLogger(t).Sugar()
	opts = append([]Option{WithLogger(log)}, opts...)
	return NewResolver(catalog.New(log), root, opts...)
}

func TestResolveReference(t *testing.T) {
	r := newTestResolver(t, "")

	rn := r.Resolve(typeinfo.NewClass("pkg", "Foo"))
	assert.Equal(t, ResolvedName{Namespace: "pkg", Bare: "Foo", Path: "Foo"}, rn)
	assert.True(t, rn.Resolvable())
}

func TestResolveNested(t *testing.T) {
	r := newTestResolver(t, "")

	outer := typeinfo.NewClass("a", "Outer")
	inner := typeinfo.NewNested(outer, "Inner")
	deeper := typeinfo.NewNested(inner, "Deeper")

	assert.Equal(t, ResolvedName{Namespace: "a", Bare: "Inner", Path: "Outer.Inner"}, r.Resolve(inner))
	assert.Equal(t, ResolvedName{Namespace: "a", Bare: "Deeper", Path: "Outer.Inner.Deeper"}, r.Resolve(deeper))
}

func TestResolveUnresolvable(t *testing.T) {
	anonymous := &typeinfo.Type{Name: "pkg.Foo$1", Package: "pkg", Visible: true}
	keywordClass := typeinfo.NewClass("pkg", "lambda")
	defaultPackage := typeinfo.NewClass("", "Main")
	badPackage := typeinfo.NewClass("org.is.thing", "Foo")

	privateOuter := typeinfo.NewClass("pkg", "Outer")
	privateOuter.Visible = false
	inner := typeinfo.NewNested(privateOuter, "Inner")

	for _, h := range []typeinfo.Handle{nil, anonymous, keywordClass, defaultPackage, badPackage, inner} {
		r := newTestResolver(t, "")
		rn := r.Resolve(h)
		assert.False(t, rn.Resolvable())
		assert.Equal(t, Unresolvable, rn.Bare)
	}
}

func TestResolveIsMemoized(t *testing.T) {
	r := newTestResolver(t, "root")

	foo := typeinfo.NewClass("pkg", "Foo")
	first := r.Resolve(foo)

	// a different handle for the same logical type resolves identically
	again := typeinfo.NewClass("pkg", "Foo")
	again.Canonical = "pkg.Changed"
	assert.Equal(t, first, r.Resolve(again))
	assert.Equal(t, first, r.Resolve(foo))
}

func TestResolveUsesRegisteredHandle(t *testing.T) {
	inner := typeinfo.NewNested(typeinfo.NewClass("pkg", "Outer"), "Inner")
	r := newTestResolver(t, "", WithMembership(members(inner)))

	// an unlinked reference to the same name, as left by another scope
	ref := &typeinfo.Type{Name: "pkg.Outer$Inner", Canonical: "pkg.Outer.Inner", Simple: "Inner", Package: "pkg", Visible: true}
	first := r.Resolve(ref)
	assert.Equal(t, ResolvedName{Namespace: "pkg", Bare: "Inner", Path: "Outer.Inner"}, first)
	assert.Equal(t, first, r.Resolve(inner))

	got, ok := r.Annotation(ref, "pkg")
	require.True(t, ok)
	assert.Equal(t, "Outer.Inner", got)
}

func TestResolvePrimitiveAndArrays(t *testing.T) {
	r := newTestResolver(t, "")

	assert.Equal(t, "Union[int, JInt]", r.Resolve(typeinfo.NewPrimitive(typeinfo.Int)).Bare)
	assert.Empty(t, r.Resolve(typeinfo.NewPrimitive(typeinfo.Int)).Namespace)
	assert.Equal(t, "Union[bytes, JArray(JByte, 1)]", r.Resolve(typeinfo.ArrayOf(typeinfo.NewPrimitive(typeinfo.Byte))).Path)
	assert.Equal(t, "JArray(JInt, 2)", r.Resolve(typeinfo.ArrayOf(typeinfo.ArrayOf(typeinfo.NewPrimitive(typeinfo.Int)))).Path)

	bars := r.Resolve(typeinfo.ArrayOf(typeinfo.NewClass("pkg", "Bar")))
	assert.Equal(t, "pkg", bars.Namespace)
	assert.Equal(t, "JArray(Bar, 1)", bars.Path)
}

func TestAnnotation(t *testing.T) {
	foo := typeinfo.NewClass("pkg", "Foo")
	bar := typeinfo.NewClass("pkg", "Bar")
	other := typeinfo.NewClass("other.sub", "Thing")
	inner := typeinfo.NewNested(typeinfo.NewClass("other.sub", "Outer"), "Inner")
	unregistered := typeinfo.NewClass("ghost", "Phantom")

	r := newTestResolver(t, "root", WithMembership(members(foo, bar, other, inner)))

	tests := []struct {
		name   string
		h      typeinfo.Handle
		want   string
		hinted bool
	}{
		{"same namespace", bar, "Bar", true},
		{"other namespace", other, "root.other.sub.Thing", true},
		{"nested other namespace", inner, "root.other.sub.Outer.Inner", true},
		{"unregistered", unregistered, "", false},
		{"void", typeinfo.NewPrimitive(typeinfo.Void), "None", false},
		{"nil", nil, "", false},
		{"int", typeinfo.NewPrimitive(typeinfo.Int), "Union[int, JInt]", true},
		{"array same namespace", typeinfo.ArrayOf(bar), "JArray(Bar, 1)", true},
		{"array other namespace", typeinfo.ArrayOf(typeinfo.ArrayOf(other)), "JArray(root.other.sub.Thing, 2)", true},
		{"array unregistered", typeinfo.ArrayOf(unregistered), "", false},
		{"char array", typeinfo.ArrayOf(typeinfo.NewPrimitive(typeinfo.Char)), "Union[str, JArray(JChar, 1)]", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Annotation(tt.h, "pkg")
			assert.Equal(t, tt.hinted, ok)
			if tt.hinted {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAnnotationWithoutRoot(t *testing.T) {
	r := newTestResolver(t, "")
	got, ok := r.Annotation(typeinfo.NewClass("other", "Thing"), "pkg")
	require.True(t, ok)
	assert.Equal(t, "other.Thing", got)
}

func TestReferenceable(t *testing.T) {
	r := newTestResolver(t, "", WithMembership(members(typeinfo.NewClass("pkg", "Bar"))))

	ns, ok := r.Referenceable(typeinfo.ArrayOf(typeinfo.NewClass("pkg", "Bar")))
	assert.True(t, ok)
	assert.Equal(t, "pkg", ns)

	_, ok = r.Referenceable(typeinfo.ArrayOf(typeinfo.NewPrimitive(typeinfo.Long)))
	assert.False(t, ok)
	_, ok = r.Referenceable(typeinfo.NewClass("pkg", "Baz"))
	assert.False(t, ok)
}

func TestModule(t *testing.T) {
	assert.Equal(t, "pkg.sub", newTestResolver(t, "").Module("pkg.sub"))
	assert.Equal(t, "matsim.pkg.sub", newTestResolver(t, ".matsim.").Module("pkg.sub"))
	assert.Equal(t, "matsim", newTestResolver(t, "matsim").Module(""))
}

func TestMethodName(t *testing.T) {
	r := newTestResolver(t, "")

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"wait", "wait_", true},
		{"getName", "getName", true},
		{"print", "print_", true},
		{"import", "import_", true},
		{"lambda$run$0", "", false},
		{"with", "", false},
		{"nonlocal", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := r.MethodName(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParamName(t *testing.T) {
	r := newTestResolver(t, "")

	assert.Equal(t, "count", r.ParamName("count", 0))
	assert.Equal(t, "from_", r.ParamName("from", 1))
	assert.Equal(t, "arg2", r.ParamName("", 2))
	assert.Equal(t, "arg3", r.ParamName("this$0", 3))
}
