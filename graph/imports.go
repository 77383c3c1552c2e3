package graph

import (
	"sort"

	"github.com/matsim-eth/python-matsim/naming"
)

// Imports returns the other namespaces referenced by any signature declared
// in ns, nested classes included, sorted. Only types the resolver can
// reference count, so every result names a namespace with emitted classes.
func Imports(ns *Namespace, r *naming.Resolver) []string {
	set := make(map[string]struct{})
	for _, root := range ns.classes {
		root.Walk(func(c *ClassNode) {
			for _, m := range c.AllMethods() {
				for _, h := range m.Referenced() {
					target, ok := r.Referenceable(h)
					if !ok || target == ns.Name {
						continue
					}
					set[target] = struct{}{}
				}
			}
		})
	}

	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
