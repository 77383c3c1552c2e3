package graph

import (
	"strings"

	"github.com/matsim-eth/python-matsim/typeinfo"
)

// MethodNode is one callable signature. Name is the source name; the
// emitted name is derived at render time.
type MethodNode struct {
	Name     string
	Return   typeinfo.Handle
	Params   []typeinfo.Param
	Variadic bool
	Static   bool
}

func newMethodNode(m typeinfo.Method) *MethodNode {
	params := make([]typeinfo.Param, len(m.Params))
	copy(params, m.Params)
	return &MethodNode{
		Name:     m.Name,
		Return:   m.Return,
		Params:   params,
		Variadic: m.Variadic && len(params) > 0,
		Static:   m.Static,
	}
}

// Signature identifies the node among overloads, e.g. "static (int,pkg.Bar[]) pkg.Foo".
func (m *MethodNode) Signature() string {
	var b strings.Builder
	if m.Static {
		b.WriteString("static ")
	}
	b.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(typeName(p.Type))
	}
	if m.Variadic {
		b.WriteString("...")
	}
	b.WriteString(") ")
	if m.Return == nil {
		b.WriteString(typeinfo.Void)
	} else {
		b.WriteString(m.Return.QualifiedName())
	}
	return b.String()
}

// Referenced returns the return type followed by the parameter types,
// skipping absent ones.
func (m *MethodNode) Referenced() []typeinfo.Handle {
	refs := make([]typeinfo.Handle, 0, len(m.Params)+1)
	if m.Return != nil {
		refs = append(refs, m.Return)
	}
	for _, p := range m.Params {
		if p.Type != nil {
			refs = append(refs, p.Type)
		}
	}
	return refs
}

// VariadicElement returns the element type of the trailing variadic
// parameter, or nil.
func (m *MethodNode) VariadicElement() typeinfo.Handle {
	if !m.Variadic {
		return nil
	}
	last := m.Params[len(m.Params)-1].Type
	if last == nil || last.Kind() != typeinfo.KindArray {
		return last
	}
	return last.Element()
}

func typeName(h typeinfo.Handle) string {
	if h == nil {
		return "?"
	}
	return h.QualifiedName()
}
