package emit

import (
	"path/filepath"
	"strings"
)

// File names and extensions of generated documents.
const (
	StubExt    = ".pyi"
	BindingExt = ".py"
	InitFile   = "__init__.py"
)

// Layout maps namespaces to output paths. The target root directory and
// the root namespace prefix alone determine every path.
type Layout struct {
	Root      string
	Namespace string
}

// PackageDir is the directory of the root namespace prefix.
func (l Layout) PackageDir() string {
	return filepath.Join(l.Root, dottedPath(l.Namespace))
}

// Dir is the directory holding the modules of ns.
func (l Layout) Dir(ns string) string {
	return filepath.Join(l.PackageDir(), dottedPath(ns))
}

// StubPath is the declaration document of ns, e.g. root/pkg/sub/_sub.pyi.
func (l Layout) StubPath(ns string) string {
	return filepath.Join(l.Dir(ns), ModuleName(ns)+StubExt)
}

// BindingPath is the runtime-binding document of ns, e.g. root/pkg/sub/_sub.py.
func (l Layout) BindingPath(ns string) string {
	return filepath.Join(l.Dir(ns), ModuleName(ns)+BindingExt)
}

// ModuleName is the leaf module of ns: its last segment with a leading
// underscore so it cannot clash with the package directory.
func ModuleName(ns string) string {
	leaf := ns
	if i := strings.LastIndexByte(ns, '.'); i >= 0 {
		leaf = ns[i+1:]
	}
	return "_" + leaf
}

func dottedPath(ns string) string {
	ns = strings.Trim(ns, ".")
	if ns == "" {
		return ""
	}
	return filepath.Join(strings.Split(ns, ".")...)
}
