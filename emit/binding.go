package emit

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/matsim-eth/python-matsim/graph"
	"github.com/matsim-eth/python-matsim/logger"
	"github.com/matsim-eth/python-matsim/naming"
)

// BindingEmitter renders runtime-binding modules: one top-level name per
// class, bound to the live type through the runtime's class lookup.
type BindingEmitter struct {
	resolver *naming.Resolver
	logger   *zap.SugaredLogger
}

// NewBindingEmitter creates a binding emitter.
func NewBindingEmitter(r *naming.Resolver, log *zap.SugaredLogger) *BindingEmitter {
	if log == nil {
		log = logger.ComponentLogger("emit.binding")
	}
	return &BindingEmitter{resolver: r, logger: log}
}

type binding struct {
	name   string
	target string
}

// Render returns the binding module of ns and the number of names it binds.
// Root classes are bound first, then nested classes under their bare name;
// a nested name already taken is skipped.
func (e *BindingEmitter) Render(ns *graph.Namespace) (string, int) {
	var bindings []binding
	bound := make(map[string]bool)

	add := func(class *graph.ClassNode) bool {
		rn := e.resolver.Resolve(class.Handle())
		if !rn.Resolvable() || class.Handle().CanonicalName() == "" {
			e.logger.Debugw("skip binding", logger.FieldClass, class.Name(), logger.FieldReason, "unresolvable")
			return false
		}
		if bound[rn.Bare] {
			e.logger.Debugw("skip binding", logger.FieldClass, class.Name(), logger.FieldReason, "name already bound")
			return true
		}
		bound[rn.Bare] = true
		bindings = append(bindings, binding{name: rn.Bare, target: class.Handle().QualifiedName()})
		return true
	}

	var roots []*graph.ClassNode
	for _, class := range ns.Classes() {
		if add(class) {
			roots = append(roots, class)
		}
	}
	for _, root := range roots {
		for _, inner := range root.Inner() {
			e.addNested(inner, add)
		}
	}

	var sb strings.Builder
	sb.WriteString(Banner)
	sb.WriteString("import jpype\n\n")
	for _, b := range bindings {
		sb.WriteString(fmt.Sprintf("\n%s = jpype.JClass('%s')", b.name, b.target))
	}
	sb.WriteString("\n")
	return sb.String(), len(bindings)
}

// addNested binds class and, when it is nameable, its own nested classes.
func (e *BindingEmitter) addNested(class *graph.ClassNode, add func(*graph.ClassNode) bool) {
	if !add(class) {
		return
	}
	for _, inner := range class.Inner() {
		e.addNested(inner, add)
	}
}
