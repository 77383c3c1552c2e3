// Package manifest is the discovery backend for ahead-of-time generation:
// it reads a serialized type manifest, extracted from a running type
// universe by an external tool, and exposes it as type handles.
//
// Manifests may be JSON, YAML or TOML, chosen by file extension:
//
//	format: 1
//	scope: app
//	types:
//	  - name: pkg.Outer$Inner
//	    enclosing: pkg.Outer
//	    methods:
//	      - {name: wait, returns: pkg.Bar, params: [{name: timeout, type: long}]}
package manifest

// FormatVersion is the only manifest format understood.
const FormatVersion = 1

// Manifest is one serialized loader scope.
type Manifest struct {
	Format int        `json:"format" yaml:"format" toml:"format"`
	Scope  string     `json:"scope" yaml:"scope" toml:"scope"`
	Types  []TypeSpec `json:"types" yaml:"types" toml:"types"`
}

// TypeSpec describes one type. Name is the binary name and the identity key.
type TypeSpec struct {
	Name          string       `json:"name" yaml:"name" toml:"name"`
	Canonical     string       `json:"canonical,omitempty" yaml:"canonical,omitempty" toml:"canonical,omitempty"`
	Namespace     string       `json:"namespace,omitempty" yaml:"namespace,omitempty" toml:"namespace,omitempty"`
	Enclosing     string       `json:"enclosing,omitempty" yaml:"enclosing,omitempty" toml:"enclosing,omitempty"`
	Public        *bool        `json:"public,omitempty" yaml:"public,omitempty" toml:"public,omitempty"`
	Kind          string       `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`
	Anonymous     bool         `json:"anonymous,omitempty" yaml:"anonymous,omitempty" toml:"anonymous,omitempty"`
	Local         bool         `json:"local,omitempty" yaml:"local,omitempty" toml:"local,omitempty"`
	Missing       []string     `json:"missing,omitempty" yaml:"missing,omitempty" toml:"missing,omitempty"`
	Inner         []string     `json:"inner,omitempty" yaml:"inner,omitempty" toml:"inner,omitempty"`
	EnumConstants []string     `json:"enum_constants,omitempty" yaml:"enum_constants,omitempty" toml:"enum_constants,omitempty"`
	Constructors  []MethodSpec `json:"constructors,omitempty" yaml:"constructors,omitempty" toml:"constructors,omitempty"`
	Methods       []MethodSpec `json:"methods,omitempty" yaml:"methods,omitempty" toml:"methods,omitempty"`
}

// MethodSpec describes one signature. Returns is empty or "void" for void.
type MethodSpec struct {
	Name     string      `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Returns  string      `json:"returns,omitempty" yaml:"returns,omitempty" toml:"returns,omitempty"`
	Params   []ParamSpec `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	Variadic bool        `json:"variadic,omitempty" yaml:"variadic,omitempty" toml:"variadic,omitempty"`
	Static   bool        `json:"static,omitempty" yaml:"static,omitempty" toml:"static,omitempty"`
}

// ParamSpec is a parameter; Type uses "[]" suffixes for arrays.
type ParamSpec struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Type string `json:"type" yaml:"type" toml:"type"`
}

// Kinds accepted in TypeSpec.Kind.
const (
	KindClass     = "class"
	KindInterface = "interface"
	KindEnum      = "enum"
)

// IsPublic reports the visibility of the type; absent means public.
func (s TypeSpec) IsPublic() bool {
	return s.Public == nil || *s.Public
}
