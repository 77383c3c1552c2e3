// Package catalog classifies discovered type handles and filters out the
// ones that cannot be generation targets.
package catalog

import (
	"go.uber.org/zap"

	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/logger"
	"github.com/matsim-eth/python-matsim/typeinfo"
)

// Class is the outcome of classifying a handle.
type Class int

const (
	Skip Class = iota
	PrimitiveClass
	ArrayClass
	Reference
)

func (c Class) String() string {
	switch c {
	case Skip:
		return "skip"
	case PrimitiveClass:
		return "primitive"
	case ArrayClass:
		return "array"
	case Reference:
		return "reference"
	default:
		return "unknown"
	}
}

// Result describes one classified handle.
type Result struct {
	Class Class
	// Primitive is set for PrimitiveClass.
	Primitive Primitive
	// Element and Dims are set for ArrayClass; Element is never an array.
	Element typeinfo.Handle
	Dims    int
	// Err explains a Skip. It is marked ErrDiscovery or ErrNaming.
	Err error
}

// Dropped records a handle that was filtered out.
type Dropped struct {
	Name string
	Err  error
}

// Catalog classifies handles. Results are memoized by qualified name so a
// handle discovered through several scopes is classified once.
type Catalog struct {
	logger  *zap.SugaredLogger
	results map[string]Result
	dropped []Dropped
}

// New creates a catalog. A nil logger falls back to the global one.
func New(log *zap.SugaredLogger) *Catalog {
	if log == nil {
		log = logger.ComponentLogger("catalog")
	}
	return &Catalog{
		logger:  log,
		results: make(map[string]Result),
	}
}

// Classify returns the classification of h.
func (c *Catalog) Classify(h typeinfo.Handle) Result {
	if h == nil {
		return Result{Class: Skip, Err: errors.Wrap(errors.ErrNaming, "nil handle")}
	}
	key := h.QualifiedName()
	if r, ok := c.results[key]; ok {
		return r
	}

	r := c.classify(h)
	c.results[key] = r
	if r.Class == Skip {
		c.dropped = append(c.dropped, Dropped{Name: key, Err: r.Err})
		c.logger.Debugw("dropped type", logger.FieldType, key, logger.FieldReason, r.Err.Error())
	}
	return r
}

func (c *Catalog) classify(h typeinfo.Handle) Result {
	switch h.Kind() {
	case typeinfo.KindPrimitive:
		p, ok := LookupPrimitive(h.QualifiedName())
		if !ok {
			return Result{Class: Skip, Err: errors.Wrapf(errors.ErrNaming, "unknown primitive %q", h.QualifiedName())}
		}
		return Result{Class: PrimitiveClass, Primitive: p}

	case typeinfo.KindArray:
		dims, elem := typeinfo.Dims(h)
		if elem == nil || elem.Kind() == typeinfo.KindArray {
			return Result{Class: Skip, Err: errors.Wrapf(errors.ErrNaming, "array %s has no element type", h.QualifiedName())}
		}
		if er := c.Classify(elem); er.Class == Skip {
			return Result{Class: Skip, Err: errors.Wrapf(er.Err, "element of %s", h.QualifiedName())}
		}
		return Result{Class: ArrayClass, Element: elem, Dims: dims}
	}

	if !h.Public() {
		return Result{Class: Skip, Err: errors.Newf("%s is not public", h.QualifiedName())}
	}
	if h.CanonicalName() == "" {
		return Result{Class: Skip, Err: errors.Wrapf(errors.ErrNaming, "%s is anonymous or local", h.QualifiedName())}
	}
	if err := h.Load(); err != nil {
		return Result{Class: Skip, Err: errors.NewDiscoveryFailure(err, h.QualifiedName())}
	}
	for outer := h.Enclosing(); outer != nil; outer = outer.Enclosing() {
		if !outer.Public() {
			return Result{Class: Skip, Err: errors.Newf("%s is nested in non-public %s", h.QualifiedName(), outer.QualifiedName())}
		}
	}
	return Result{Class: Reference}
}

// Accepts reports whether h is a legal generation target.
func (c *Catalog) Accepts(h typeinfo.Handle) bool {
	return c.Classify(h).Class != Skip
}

// Namespace returns the grouping namespace of h. Arrays group under their
// element's namespace; primitives have none.
func (c *Catalog) Namespace(h typeinfo.Handle) string {
	_, elem := typeinfo.Dims(h)
	if elem == nil || elem.Kind() == typeinfo.KindPrimitive {
		return ""
	}
	return elem.Namespace()
}

// Dropped lists every handle classified as Skip, in classification order.
func (c *Catalog) Dropped() []Dropped {
	out := make([]Dropped, len(c.dropped))
	copy(out, c.dropped)
	return out
}
