package manifest

import (
	"strings"

	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/typeinfo"
)

// Universe is the handle graph built from one manifest. Type references
// that the manifest does not declare resolve to phantom handles that fail
// to load, the same way a missing dependency would at runtime.
type Universe struct {
	scope    string
	declared map[string]*typeinfo.Type
	order    []*typeinfo.Type
	phantoms map[string]*typeinfo.Type
	prims    map[string]*typeinfo.Type
}

// NewUniverse links every type spec of m into handles.
func NewUniverse(m *Manifest) (*Universe, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}
	u := &Universe{
		scope:    m.Scope,
		declared: make(map[string]*typeinfo.Type, len(m.Types)),
		phantoms: make(map[string]*typeinfo.Type),
		prims:    make(map[string]*typeinfo.Type),
	}

	for _, spec := range m.Types {
		t := &typeinfo.Type{
			Name:      spec.Name,
			Canonical: canonicalName(spec),
			Simple:    simpleName(spec.Name),
			Visible:   spec.IsPublic(),
			TypeKind:  typeinfo.KindOrdinary,
			Constants: spec.EnumConstants,
		}
		if spec.Kind == KindEnum {
			t.TypeKind = typeinfo.KindEnum
		}
		if len(spec.Missing) > 0 {
			t.LoadErr = errors.Newf("missing dependencies: %s", strings.Join(spec.Missing, ", "))
		}
		u.declared[spec.Name] = t
		u.order = append(u.order, t)
	}

	byName := make(map[string]TypeSpec, len(m.Types))
	for _, spec := range m.Types {
		byName[spec.Name] = spec
	}

	for _, spec := range m.Types {
		t := u.declared[spec.Name]
		if spec.Enclosing != "" {
			t.Outer = u.declared[spec.Enclosing]
		}
		for _, in := range spec.Inner {
			t.Inner = append(t.Inner, u.declared[in])
		}
		for _, ctor := range spec.Constructors {
			t.Ctors = append(t.Ctors, u.method(ctor))
		}
		for _, ms := range spec.Methods {
			t.MethodList = append(t.MethodList, u.method(ms))
		}
	}

	// namespaces last: nested types inherit the enclosing type's namespace
	for _, t := range u.order {
		t.Package = namespaceOf(byName[t.Name], byName, make(map[string]bool))
	}
	return u, nil
}

// Scope returns the label of the loader scope the manifest describes.
func (u *Universe) Scope() string { return u.scope }

// Handles returns every declared type in manifest order.
func (u *Universe) Handles() []typeinfo.Handle {
	out := make([]typeinfo.Handle, len(u.order))
	for i, t := range u.order {
		out[i] = t
	}
	return out
}

// Lookup returns a declared type.
func (u *Universe) Lookup(name string) (*typeinfo.Type, bool) {
	t, ok := u.declared[name]
	return t, ok
}

func (u *Universe) method(ms MethodSpec) typeinfo.Method {
	m := typeinfo.Method{
		Name:     ms.Name,
		Variadic: ms.Variadic,
		Static:   ms.Static,
	}
	if ms.Returns != "" && ms.Returns != typeinfo.Void {
		m.Return = u.ref(ms.Returns)
	}
	for _, p := range ms.Params {
		m.Params = append(m.Params, typeinfo.Param{Name: p.Name, Type: u.ref(p.Type)})
	}
	return m
}

// ref resolves a type reference such as "int", "pkg.Bar" or "pkg.Bar[][]".
func (u *Universe) ref(name string) *typeinfo.Type {
	name = strings.TrimSpace(name)
	if strings.HasSuffix(name, "[]") {
		return typeinfo.ArrayOf(u.ref(strings.TrimSuffix(name, "[]")))
	}
	if typeinfo.IsPrimitiveName(name) {
		if p, ok := u.prims[name]; ok {
			return p
		}
		p := typeinfo.NewPrimitive(name)
		u.prims[name] = p
		return p
	}
	if t, ok := u.declared[name]; ok {
		return t
	}
	if p, ok := u.phantoms[name]; ok {
		return p
	}
	p := &typeinfo.Type{
		Name:      name,
		Canonical: strings.ReplaceAll(name, "$", "."),
		Simple:    simpleName(name),
		Package:   packageOf(name),
		Visible:   true,
		TypeKind:  typeinfo.KindOrdinary,
		LoadErr:   errors.Newf("%s is not part of scope %s", name, u.scope),
	}
	u.phantoms[name] = p
	return p
}

func canonicalName(spec TypeSpec) string {
	if spec.Anonymous || spec.Local {
		return ""
	}
	if spec.Canonical != "" {
		return spec.Canonical
	}
	return strings.ReplaceAll(spec.Name, "$", ".")
}

func namespaceOf(spec TypeSpec, byName map[string]TypeSpec, seen map[string]bool) string {
	if spec.Namespace != "" {
		return spec.Namespace
	}
	seen[spec.Name] = true
	if spec.Enclosing != "" && !seen[spec.Enclosing] {
		if outer, ok := byName[spec.Enclosing]; ok {
			return namespaceOf(outer, byName, seen)
		}
	}
	return packageOf(spec.Name)
}

// packageOf is the part of a binary name before the last dot.
func packageOf(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return ""
}

func simpleName(name string) string {
	if i := strings.LastIndexAny(name, ".$"); i >= 0 {
		return name[i+1:]
	}
	return name
}
