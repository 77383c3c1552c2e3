// Package typeinfo defines the read-only view of a discovered type that the
// generation pipeline consumes. Discovery backends implement Handle; nothing
// downstream touches the type universe except through it.
package typeinfo

// Kind classifies the shape of a type.
type Kind int

const (
	KindOrdinary Kind = iota // classes and interfaces
	KindEnum
	KindPrimitive
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindOrdinary:
		return "ordinary"
	case KindEnum:
		return "enum"
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Handle is an opaque reference to a discovered type. Two handles with the
// same QualifiedName denote the same logical type regardless of which loader
// scope produced them.
type Handle interface {
	// QualifiedName is the runtime (binary) name, e.g. "pkg.Outer$Inner".
	// It is the identity key of the type.
	QualifiedName() string
	// CanonicalName is the dotted source name, e.g. "pkg.Outer.Inner".
	// Empty for anonymous and local types.
	CanonicalName() string
	SimpleName() string
	// Namespace is the declaring package. Empty for primitives and arrays.
	Namespace() string
	// Enclosing is the declaring type of a nested type, nil for roots.
	Enclosing() Handle
	Public() bool
	Kind() Kind
	// Element is the component type of an array, nil otherwise.
	Element() Handle

	// Load materializes the type. A non-nil error means the type depends on
	// something the universe cannot provide.
	Load() error
	// Methods lists every publicly visible method, own and inherited.
	Methods() ([]Method, error)
	Constructors() ([]Method, error)
	InnerTypes() ([]Handle, error)
	EnumConstants() []string
}

// Method is one callable signature. Name is the source name; constructors
// carry an empty name.
type Method struct {
	Name string
	// Return is nil for void.
	Return   Handle
	Params   []Param
	Variadic bool
	Static   bool
}

// Param is a positional parameter. For a variadic method the last
// parameter's Type is the array type.
type Param struct {
	Name string
	Type Handle
}
