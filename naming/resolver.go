// Package naming turns type handles into target-language names.
//
// Resolution is memoized by qualified name: within one run the same handle
// always yields the same ResolvedName, whatever order it is asked in. When
// several loader scopes report handles for one name, the registered handle
// is the one resolved.
package naming

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/matsim-eth/python-matsim/catalog"
	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/logger"
	"github.com/matsim-eth/python-matsim/typeinfo"
)

// Unresolvable is the bare name of a type that cannot be named.
const Unresolvable = "Any"

// ResolvedName is how a type renders in generated output.
type ResolvedName struct {
	Namespace string
	// Bare is the last path element, e.g. "Inner".
	Bare string
	// Path is the dotted path inside the namespace module, e.g. "Outer.Inner".
	Path string
}

// Resolvable reports whether the name can be emitted.
func (r ResolvedName) Resolvable() bool {
	return r.Bare != "" && r.Bare != Unresolvable
}

// Membership reports which types are registered for emission. Annotations
// and imports only ever point at registered types, and a registered handle
// stands in for every other handle with the same qualified name.
type Membership interface {
	Registered(qualifiedName string) (typeinfo.Handle, bool)
}

// Resolver maps handles to names. It is scoped to one generation run.
type Resolver struct {
	catalog  *catalog.Catalog
	keywords *KeywordSet
	root     string
	members  Membership
	logger   *zap.SugaredLogger

	memo map[string]ResolvedName
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMembership restricts references to the registered types.
func WithMembership(m Membership) Option {
	return func(r *Resolver) { r.members = m }
}

// WithKeywords overrides the reserved-word set.
func WithKeywords(k *KeywordSet) Option {
	return func(r *Resolver) { r.keywords = k }
}

// WithLogger sets the logger used for naming failures.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(r *Resolver) { r.logger = log }
}

// NewResolver creates a resolver for output under the root namespace prefix
// (which may be empty).
func NewResolver(cat *catalog.Catalog, root string, opts ...Option) *Resolver {
	r := &Resolver{
		catalog: cat,
		root:    strings.Trim(root, "."),
		memo:    make(map[string]ResolvedName),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.keywords == nil {
		r.keywords = DefaultKeywords()
	}
	if r.logger == nil {
		r.logger = logger.ComponentLogger("naming")
	}
	return r
}

// Keywords returns the active reserved-word set.
func (r *Resolver) Keywords() *KeywordSet {
	return r.keywords
}

// Resolve returns the name of h. Primitives and arrays have no namespace and
// render through the catalog's fixed table.
func (r *Resolver) Resolve(h typeinfo.Handle) ResolvedName {
	if h == nil {
		return ResolvedName{Bare: Unresolvable}
	}
	h = r.canonical(h)
	key := h.QualifiedName()
	if rn, ok := r.memo[key]; ok {
		return rn
	}
	rn := r.resolve(h)
	r.memo[key] = rn
	return rn
}

func (r *Resolver) resolve(h typeinfo.Handle) ResolvedName {
	res := r.catalog.Classify(h)
	switch res.Class {
	case catalog.Skip:
		return ResolvedName{Bare: Unresolvable}
	case catalog.PrimitiveClass:
		return ResolvedName{Bare: res.Primitive.Annotation, Path: res.Primitive.Annotation}
	case catalog.ArrayClass:
		elem := r.Resolve(res.Element)
		if !elem.Resolvable() {
			return ResolvedName{Bare: Unresolvable}
		}
		name := arrayName(res, elem.Path)
		return ResolvedName{Namespace: elem.Namespace, Bare: name, Path: name}
	}

	ns := h.Namespace()
	if !validNamespace(ns) {
		r.namingFailure(h, "namespace %q is not importable", ns)
		return ResolvedName{Bare: Unresolvable}
	}

	path := strings.TrimPrefix(h.CanonicalName(), ns+".")
	bare := path
	if outer := h.Enclosing(); outer != nil {
		parent := r.Resolve(outer)
		if !parent.Resolvable() {
			r.namingFailure(h, "enclosing type %s is unresolvable", outer.QualifiedName())
			return ResolvedName{Bare: Unresolvable}
		}
		bare = strings.TrimPrefix(path, parent.Path+".")
	}

	if !IsIdentifier(bare) {
		r.namingFailure(h, "%q is not a legal identifier", bare)
		return ResolvedName{Bare: Unresolvable}
	}
	return ResolvedName{Namespace: ns, Bare: bare, Path: path}
}

// canonical returns the registered handle sharing h's qualified name, or h.
// A reference seen from another scope may be a phantom that lacks the
// enclosing type the declaring scope reports.
func (r *Resolver) canonical(h typeinfo.Handle) typeinfo.Handle {
	if r.members == nil || h.Kind() == typeinfo.KindPrimitive || h.Kind() == typeinfo.KindArray {
		return h
	}
	if reg, ok := r.members.Registered(h.QualifiedName()); ok && reg != nil {
		return reg
	}
	return h
}

func arrayName(res catalog.Result, elemPath string) string {
	if p, ok := catalog.LookupPrimitive(res.Element.QualifiedName()); ok && res.Element.Kind() == typeinfo.KindPrimitive {
		if res.Dims == 1 {
			return p.ArrayAnnotation
		}
		return fmt.Sprintf("JArray(%s, %d)", p.Wrapper, res.Dims)
	}
	return fmt.Sprintf("JArray(%s, %d)", elemPath, res.Dims)
}

func validNamespace(ns string) bool {
	if ns == "" {
		return false
	}
	for _, part := range strings.Split(ns, ".") {
		if !IsIdentifier(part) {
			return false
		}
	}
	return true
}

func (r *Resolver) namingFailure(h typeinfo.Handle, format string, args ...interface{}) {
	err := errors.Wrapf(errors.ErrNaming, format, args...)
	r.logger.Debugw("unresolvable type", logger.FieldType, h.QualifiedName(), logger.FieldReason, err.Error())
}

// Module returns the importable module name of a namespace, honouring the
// root namespace prefix.
func (r *Resolver) Module(ns string) string {
	if r.root == "" {
		return ns
	}
	if ns == "" {
		return r.root
	}
	return r.root + "." + ns
}

// Root returns the root namespace prefix.
func (r *Resolver) Root() string {
	return r.root
}

// Referenceable reports whether h is a registered, resolvable reference type
// and returns the namespace it lives in.
func (r *Resolver) Referenceable(h typeinfo.Handle) (string, bool) {
	if h == nil {
		return "", false
	}
	_, elem := typeinfo.Dims(h)
	if elem == nil || elem.Kind() == typeinfo.KindPrimitive {
		return "", false
	}
	if r.members != nil {
		reg, ok := r.members.Registered(elem.QualifiedName())
		if !ok {
			return "", false
		}
		elem = reg
	}
	if r.catalog.Classify(elem).Class != catalog.Reference {
		return "", false
	}
	rn := r.Resolve(elem)
	if !rn.Resolvable() {
		return "", false
	}
	return rn.Namespace, true
}

// Annotation renders h as a type hint for use inside namespace from. The
// second result is false when no useful hint exists: void, skipped or
// unresolvable types, and references to types that are not registered.
func (r *Resolver) Annotation(h typeinfo.Handle, from string) (string, bool) {
	if h == nil {
		return "", false
	}
	h = r.canonical(h)
	res := r.catalog.Classify(h)
	switch res.Class {
	case catalog.Skip:
		return "", false
	case catalog.PrimitiveClass:
		return res.Primitive.Annotation, res.Primitive.Hint
	case catalog.ArrayClass:
		if res.Element.Kind() == typeinfo.KindPrimitive {
			rn := r.Resolve(h)
			return rn.Path, rn.Resolvable()
		}
		elem, ok := r.reference(res.Element, from)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("JArray(%s, %d)", elem, res.Dims), true
	}
	return r.reference(h, from)
}

func (r *Resolver) reference(h typeinfo.Handle, from string) (string, bool) {
	ns, ok := r.Referenceable(h)
	if !ok {
		return "", false
	}
	path := r.Resolve(h).Path
	if ns == from {
		return path, true
	}
	return r.Module(ns) + "." + path, true
}

// MethodName returns the emitted name of a method. The second result is
// false when the name cannot be emitted even after escaping, e.g. synthetic
// names or hard keywords the runtime does not rename.
func (r *Resolver) MethodName(name string) (string, bool) {
	escaped := r.keywords.Escape(name)
	if !IsIdentifier(escaped) {
		return "", false
	}
	return escaped, true
}

// ParamName returns a legal parameter name, falling back to argN.
func (r *Resolver) ParamName(name string, index int) string {
	if IsHardKeyword(name) {
		name += EscapeMarker
	}
	if !IsIdentifier(name) {
		return fmt.Sprintf("arg%d", index)
	}
	return name
}
