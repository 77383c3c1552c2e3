package emit

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/matsim-eth/python-matsim/graph"
	"github.com/matsim-eth/python-matsim/logger"
	"github.com/matsim-eth/python-matsim/naming"
)

// annotationImports are the runtime's foundational typing imports.
var annotationImports = []string{
	"from jpype.types import *",
	"from typing import Union",
	"from typing import overload",
}

// StubEmitter renders declaration documents: signatures with type hints
// and no bodies.
type StubEmitter struct {
	resolver *naming.Resolver
	logger   *zap.SugaredLogger
}

// NewStubEmitter creates a stub emitter.
func NewStubEmitter(r *naming.Resolver, log *zap.SugaredLogger) *StubEmitter {
	if log == nil {
		log = logger.ComponentLogger("emit.stub")
	}
	return &StubEmitter{resolver: r, logger: log}
}

// Render returns the stub of ns and the number of root classes it declares.
func (e *StubEmitter) Render(ns *graph.Namespace) (string, int) {
	var sb strings.Builder
	sb.WriteString(Banner)

	imports := graph.Imports(ns, e.resolver)
	for _, imp := range imports {
		sb.WriteString(fmt.Sprintf("import %s\n", e.resolver.Module(imp)))
	}
	if len(imports) > 0 {
		sb.WriteString("\n")
	}
	for _, imp := range annotationImports {
		sb.WriteString(imp + "\n")
	}
	sb.WriteString("\n")

	emitted := 0
	for _, class := range ns.Classes() {
		if e.writeClass(&sb, "", ns.Name, class) {
			sb.WriteString("\n")
			emitted++
		}
	}
	return sb.String(), emitted
}

// writeClass renders one class block at the given indentation. It reports
// false, writing nothing, when the class cannot be named.
func (e *StubEmitter) writeClass(sb *strings.Builder, prefix, ns string, class *graph.ClassNode) bool {
	rn := e.resolver.Resolve(class.Handle())
	if !rn.Resolvable() {
		e.logger.Debugw("skip class", logger.FieldClass, class.Name(), logger.FieldReason, "unresolvable")
		return false
	}

	sb.WriteString(fmt.Sprintf("\n%sclass %s:\n", prefix, rn.Bare))
	body := prefix + indent
	start := sb.Len()

	for _, constant := range class.EnumConstants() {
		if !naming.IsIdentifier(constant) {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s%s: %s = ...\n", body, constant, rn.Path))
	}

	for _, inner := range class.Inner() {
		e.writeClass(sb, body, ns, inner)
	}

	ctors := class.Constructors()
	for _, ctor := range ctors {
		if len(ctors) > 1 {
			sb.WriteString(body + "@overload\n")
		}
		sb.WriteString(fmt.Sprintf("%sdef __init__(%s): ...\n", body, e.params(ctor, ns, true)))
	}

	for _, name := range class.MethodNames() {
		target, ok := e.resolver.MethodName(name)
		if !ok {
			e.logger.Debugw("skip method", logger.FieldClass, class.Name(), logger.FieldMethod, name)
			continue
		}
		overloads := class.Overloads(name)
		for _, m := range overloads {
			if len(overloads) > 1 {
				sb.WriteString(body + "@overload\n")
			}
			e.writeMethod(sb, body, ns, target, m)
		}
	}

	if sb.Len() == start {
		sb.WriteString(body + "...\n")
	}
	return true
}

func (e *StubEmitter) writeMethod(sb *strings.Builder, prefix, ns, name string, m *graph.MethodNode) {
	if m.Static {
		sb.WriteString(prefix + "@staticmethod\n")
	}
	sb.WriteString(fmt.Sprintf("%sdef %s(%s)", prefix, name, e.params(m, ns, !m.Static)))
	if ann, ok := e.resolver.Annotation(m.Return, ns); ok {
		sb.WriteString(" -> " + ann)
	}
	sb.WriteString(": ...\n")
}

// params renders the parameter list. A variadic parameter renders as a
// repeated parameter of the element type.
func (e *StubEmitter) params(m *graph.MethodNode, ns string, self bool) string {
	var parts []string
	if self {
		parts = append(parts, "self")
	}
	used := map[string]bool{"self": true}
	for i, p := range m.Params {
		name := e.resolver.ParamName(p.Name, i)
		if used[name] {
			name = fmt.Sprintf("arg%d", i)
		}
		for used[name] {
			name += "_"
		}
		used[name] = true

		typ := p.Type
		if m.Variadic && i == len(m.Params)-1 {
			name = "*" + name
			typ = m.VariadicElement()
		}
		if ann, ok := e.resolver.Annotation(typ, ns); ok {
			parts = append(parts, name+": "+ann)
		} else {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ", ")
}
