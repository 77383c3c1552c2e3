package typeinfo

import "strings"

// Type is an in-memory Handle. Discovery backends that work from a
// serialized manifest build their universe out of these.
type Type struct {
	Name      string // binary name
	Canonical string
	Simple    string
	Package   string
	Outer     *Type
	Visible   bool
	TypeKind  Kind
	Elem      *Type

	// LoadErr is returned from Load and from every member query.
	LoadErr error

	MethodList []Method
	Ctors      []Method
	Inner      []Handle
	Constants  []string
}

var _ Handle = (*Type)(nil)

func (t *Type) QualifiedName() string { return t.Name }
func (t *Type) CanonicalName() string { return t.Canonical }
func (t *Type) Namespace() string     { return t.Package }
func (t *Type) Public() bool          { return t.Visible }
func (t *Type) Kind() Kind            { return t.TypeKind }
func (t *Type) EnumConstants() []string {
	return t.Constants
}

func (t *Type) SimpleName() string {
	if t.Simple != "" {
		return t.Simple
	}
	name := t.Name
	if i := strings.LastIndexAny(name, ".$"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func (t *Type) Enclosing() Handle {
	if t.Outer == nil {
		return nil
	}
	return t.Outer
}

func (t *Type) Element() Handle {
	if t.Elem == nil {
		return nil
	}
	return t.Elem
}

func (t *Type) Load() error { return t.LoadErr }

func (t *Type) Methods() ([]Method, error) {
	if t.LoadErr != nil {
		return nil, t.LoadErr
	}
	return t.MethodList, nil
}

func (t *Type) Constructors() ([]Method, error) {
	if t.LoadErr != nil {
		return nil, t.LoadErr
	}
	return t.Ctors, nil
}

func (t *Type) InnerTypes() ([]Handle, error) {
	if t.LoadErr != nil {
		return nil, t.LoadErr
	}
	return t.Inner, nil
}

// Primitive names understood by the pipeline.
const (
	Boolean = "boolean"
	Byte    = "byte"
	Char    = "char"
	Short   = "short"
	Int     = "int"
	Long    = "long"
	Float   = "float"
	Double  = "double"
	Void    = "void"
)

// PrimitiveNames lists every primitive in declaration order.
var PrimitiveNames = []string{Boolean, Byte, Char, Short, Int, Long, Float, Double, Void}

// IsPrimitiveName reports whether name is one of PrimitiveNames.
func IsPrimitiveName(name string) bool {
	for _, p := range PrimitiveNames {
		if p == name {
			return true
		}
	}
	return false
}

// NewPrimitive returns the handle of a primitive type.
func NewPrimitive(name string) *Type {
	return &Type{Name: name, Canonical: name, Simple: name, Visible: true, TypeKind: KindPrimitive}
}

// ArrayOf returns a one-dimensional array of elem.
func ArrayOf(elem *Type) *Type {
	canonical := ""
	if elem.Canonical != "" {
		canonical = elem.Canonical + "[]"
	}
	return &Type{
		Name:      elem.Name + "[]",
		Canonical: canonical,
		Simple:    elem.SimpleName() + "[]",
		Visible:   elem.Visible,
		TypeKind:  KindArray,
		Elem:      elem,
	}
}

// NewClass returns a public, loadable root class in pkg.
func NewClass(pkg, simple string) *Type {
	name := simple
	if pkg != "" {
		name = pkg + "." + simple
	}
	return &Type{Name: name, Canonical: name, Simple: simple, Package: pkg, Visible: true, TypeKind: KindOrdinary}
}

// NewNested returns a public class nested in outer and registers it as one
// of outer's inner types.
func NewNested(outer *Type, simple string) *Type {
	canonical := ""
	if outer.Canonical != "" {
		canonical = outer.Canonical + "." + simple
	}
	t := &Type{
		Name:      outer.Name + "$" + simple,
		Canonical: canonical,
		Simple:    simple,
		Package:   outer.Package,
		Outer:     outer,
		Visible:   true,
		TypeKind:  KindOrdinary,
	}
	outer.Inner = append(outer.Inner, t)
	return t
}

// Dims returns the array dimension count of h and its innermost element.
// A non-array handle has zero dimensions and is its own element.
func Dims(h Handle) (int, Handle) {
	dims := 0
	for h != nil && h.Kind() == KindArray && h.Element() != nil {
		dims++
		h = h.Element()
	}
	return dims, h
}
