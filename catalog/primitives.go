package catalog

import "github.com/matsim-eth/python-matsim/typeinfo"

// Primitive is the fixed annotation of one primitive kind.
type Primitive struct {
	// Annotation is the hint for a value of this type.
	Annotation string
	// ArrayAnnotation is the hint for a one-dimensional array of it.
	ArrayAnnotation string
	// Wrapper is the runtime wrapper name used inside multi-dimensional arrays.
	Wrapper string
	// Hint is false when the annotation carries no useful information and
	// should be omitted (void).
	Hint bool
}

// primitives is the only place primitive naming is decided.
var primitives = map[string]Primitive{
	typeinfo.Boolean: {Annotation: "Union[bool, JBoolean]", ArrayAnnotation: "JArray(JBoolean, 1)", Wrapper: "JBoolean", Hint: true},
	typeinfo.Byte:    {Annotation: "Union[int, JByte]", ArrayAnnotation: "Union[bytes, JArray(JByte, 1)]", Wrapper: "JByte", Hint: true},
	typeinfo.Char:    {Annotation: "Union[str, JChar]", ArrayAnnotation: "Union[str, JArray(JChar, 1)]", Wrapper: "JChar", Hint: true},
	typeinfo.Short:   {Annotation: "Union[int, JShort]", ArrayAnnotation: "JArray(JShort, 1)", Wrapper: "JShort", Hint: true},
	typeinfo.Int:     {Annotation: "Union[int, JInt]", ArrayAnnotation: "JArray(JInt, 1)", Wrapper: "JInt", Hint: true},
	typeinfo.Long:    {Annotation: "Union[int, JLong]", ArrayAnnotation: "JArray(JLong, 1)", Wrapper: "JLong", Hint: true},
	typeinfo.Float:   {Annotation: "Union[float, JFloat]", ArrayAnnotation: "JArray(JFloat, 1)", Wrapper: "JFloat", Hint: true},
	typeinfo.Double:  {Annotation: "Union[float, JDouble]", ArrayAnnotation: "JArray(JDouble, 1)", Wrapper: "JDouble", Hint: true},
	typeinfo.Void:    {Annotation: "None", Hint: false},
}

// LookupPrimitive returns the table entry for a primitive name.
func LookupPrimitive(name string) (Primitive, bool) {
	p, ok := primitives[name]
	return p, ok
}
