// Package graph groups accepted types by namespace and captures, per type,
// its nested types and method inventory.
//
// A Graph is the build context of one generation run: it is filled once
// from a catalog snapshot, read by the emitters, then discarded.
package graph

import (
	"sort"

	"go.uber.org/zap"

	"github.com/matsim-eth/python-matsim/catalog"
	"github.com/matsim-eth/python-matsim/logger"
	"github.com/matsim-eth/python-matsim/typeinfo"
)

// Namespace owns the root classes declared in one dotted path.
type Namespace struct {
	Name    string
	classes []*ClassNode
}

// Classes returns the root classes in insertion order.
func (n *Namespace) Classes() []*ClassNode {
	out := make([]*ClassNode, len(n.classes))
	copy(out, n.classes)
	return out
}

// Len returns the number of root classes.
func (n *Namespace) Len() int { return len(n.classes) }

// Stats summarizes a built graph.
type Stats struct {
	Namespaces int
	Classes    int
	Nested     int
	Methods    int
	Ignored    int
}

// Graph is the namespace registry of one run.
type Graph struct {
	catalog *catalog.Catalog
	logger  *zap.SugaredLogger

	namespaces map[string]*Namespace
	index      map[string]*ClassNode
	stats      Stats
}

// New creates an empty graph classifying through cat.
func New(cat *catalog.Catalog, log *zap.SugaredLogger) *Graph {
	if log == nil {
		log = logger.ComponentLogger("graph")
	}
	return &Graph{
		catalog:    cat,
		logger:     log,
		namespaces: make(map[string]*Namespace),
		index:      make(map[string]*ClassNode),
	}
}

// AddType registers h as a root class. It reports whether a new entry was
// created. Adding a type already present, under any handle with the same
// qualified name, is a no-op. Nested types are captured through their
// enclosing root and are ignored here; primitives, arrays and skipped
// types never become entries.
func (g *Graph) AddType(h typeinfo.Handle) bool {
	if h == nil {
		return false
	}
	name := h.QualifiedName()
	if _, ok := g.index[name]; ok {
		return false
	}
	if g.catalog.Classify(h).Class != catalog.Reference {
		g.stats.Ignored++
		return false
	}
	if h.Enclosing() != nil {
		g.logger.Debugw("nested type reached through its root", logger.FieldType, name)
		g.stats.Ignored++
		return false
	}

	nsName := g.catalog.Namespace(h)
	ns, ok := g.namespaces[nsName]
	if !ok {
		ns = &Namespace{Name: nsName}
		g.namespaces[nsName] = ns
		g.stats.Namespaces++
	}

	node := g.build(h, make(map[string]bool))
	ns.classes = append(ns.classes, node)
	g.stats.Classes++
	return true
}

// AddAll registers every handle in order and returns the number of new
// root classes.
func (g *Graph) AddAll(handles []typeinfo.Handle) int {
	added := 0
	for _, h := range handles {
		if g.AddType(h) {
			added++
		}
	}
	return added
}

// build constructs the node for h, walking nested types transitively.
// visiting guards against a universe that reports a type as its own
// (indirect) inner type.
func (g *Graph) build(h typeinfo.Handle, visiting map[string]bool) *ClassNode {
	name := h.QualifiedName()
	visiting[name] = true

	node := &ClassNode{handle: h, constants: h.EnumConstants()}
	g.index[name] = node

	methods, err := h.Methods()
	if err != nil {
		g.logger.Debugw("method inventory unavailable", logger.FieldClass, name, logger.FieldError, err)
	}
	node.methods = groupMethods(methods)
	for _, overloads := range node.methods {
		g.stats.Methods += len(overloads)
	}

	ctors, err := h.Constructors()
	if err != nil {
		g.logger.Debugw("constructors unavailable", logger.FieldClass, name, logger.FieldError, err)
	}
	node.constructors = dedupeConstructors(ctors)

	inner, err := h.InnerTypes()
	if err != nil {
		g.logger.Debugw("inner types unavailable", logger.FieldClass, name, logger.FieldError, err)
		return node
	}
	for _, in := range inner {
		if in == nil {
			continue
		}
		innerName := in.QualifiedName()
		if visiting[innerName] {
			continue
		}
		if _, done := g.index[innerName]; done {
			continue
		}
		if g.catalog.Classify(in).Class != catalog.Reference {
			continue
		}
		node.inner = append(node.inner, g.build(in, visiting))
		g.stats.Nested++
	}
	return node
}

// Has reports whether a class, root or nested, with the qualified name is registered.
func (g *Graph) Has(qualifiedName string) bool {
	_, ok := g.index[qualifiedName]
	return ok
}

// Registered returns the handle registered under the qualified name.
func (g *Graph) Registered(qualifiedName string) (typeinfo.Handle, bool) {
	node, ok := g.index[qualifiedName]
	if !ok {
		return nil, false
	}
	return node.handle, true
}

// Lookup returns the node registered under the qualified name.
func (g *Graph) Lookup(qualifiedName string) (*ClassNode, bool) {
	node, ok := g.index[qualifiedName]
	return node, ok
}

// Namespace returns the namespace registered under name.
func (g *Graph) Namespace(name string) (*Namespace, bool) {
	ns, ok := g.namespaces[name]
	return ns, ok
}

// Namespaces returns every namespace sorted by name.
func (g *Graph) Namespaces() []*Namespace {
	out := make([]*Namespace, 0, len(g.namespaces))
	for _, ns := range g.namespaces {
		out = append(out, ns)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Stats returns build counters.
func (g *Graph) Stats() Stats {
	return g.stats
}
