package graph

import (
	"sort"

	"github.com/matsim-eth/python-matsim/typeinfo"
)

// ClassNode wraps one accepted type. Its inner classes and method inventory
// are captured once at construction and never re-queried.
type ClassNode struct {
	handle       typeinfo.Handle
	inner        []*ClassNode
	methods      map[string][]*MethodNode
	constructors []*MethodNode
	constants    []string
}

// Handle returns the wrapped type.
func (c *ClassNode) Handle() typeinfo.Handle { return c.handle }

// Name returns the qualified name of the wrapped type.
func (c *ClassNode) Name() string { return c.handle.QualifiedName() }

// IsEnum reports whether the wrapped type is an enum.
func (c *ClassNode) IsEnum() bool { return c.handle.Kind() == typeinfo.KindEnum }

// Inner returns the nested classes in the order the type universe reports them.
func (c *ClassNode) Inner() []*ClassNode {
	out := make([]*ClassNode, len(c.inner))
	copy(out, c.inner)
	return out
}

// MethodNames returns the distinct method names, sorted.
func (c *ClassNode) MethodNames() []string {
	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Overloads returns every signature registered under name, sorted by signature.
func (c *ClassNode) Overloads(name string) []*MethodNode {
	out := make([]*MethodNode, len(c.methods[name]))
	copy(out, c.methods[name])
	return out
}

// Constructors returns the public constructors, sorted by signature.
func (c *ClassNode) Constructors() []*MethodNode {
	out := make([]*MethodNode, len(c.constructors))
	copy(out, c.constructors)
	return out
}

// EnumConstants returns the enum members in declaration order.
func (c *ClassNode) EnumConstants() []string {
	if !c.IsEnum() {
		return nil
	}
	return c.constants
}

// Walk calls fn for c and every nested class, depth first.
func (c *ClassNode) Walk(fn func(*ClassNode)) {
	fn(c)
	for _, in := range c.inner {
		in.Walk(fn)
	}
}

// AllMethods returns constructors and methods of this class only.
func (c *ClassNode) AllMethods() []*MethodNode {
	all := c.Constructors()
	for _, name := range c.MethodNames() {
		all = append(all, c.methods[name]...)
	}
	return all
}

// groupMethods buckets methods by name, drops exact duplicates and sorts
// each bucket by signature.
func groupMethods(methods []typeinfo.Method) map[string][]*MethodNode {
	grouped := make(map[string][]*MethodNode)
	seen := make(map[string]bool)
	for _, m := range methods {
		node := newMethodNode(m)
		key := node.Name + node.Signature()
		if seen[key] {
			continue
		}
		seen[key] = true
		grouped[node.Name] = append(grouped[node.Name], node)
	}
	for _, nodes := range grouped {
		sortBySignature(nodes)
	}
	return grouped
}

func dedupeConstructors(ctors []typeinfo.Method) []*MethodNode {
	seen := make(map[string]bool)
	var out []*MethodNode
	for _, m := range ctors {
		node := newMethodNode(m)
		node.Name = ""
		node.Return = nil
		node.Static = false
		if seen[node.Signature()] {
			continue
		}
		seen[node.Signature()] = true
		out = append(out, node)
	}
	sortBySignature(out)
	return out
}

func sortBySignature(nodes []*MethodNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Signature() < nodes[j].Signature()
	})
}
