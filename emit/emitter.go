package emit

import (
	"go.uber.org/zap"

	"github.com/matsim-eth/python-matsim/graph"
	"github.com/matsim-eth/python-matsim/logger"
	"github.com/matsim-eth/python-matsim/naming"
)

// NamespaceResult reports what was emitted for one namespace.
type NamespaceResult struct {
	Namespace   string
	StubPath    string
	BindingPath string
	Classes     int
	Bindings    int
}

// Emitter writes the stub and binding documents of each namespace.
type Emitter struct {
	layout  Layout
	stub    *StubEmitter
	binding *BindingEmitter
	writer  *FileWriter
	logger  *zap.SugaredLogger
}

// NewEmitter wires the emitters of one run.
func NewEmitter(layout Layout, r *naming.Resolver, w *FileWriter, log *zap.SugaredLogger) *Emitter {
	if log == nil {
		log = logger.ComponentLogger("emit")
	}
	return &Emitter{
		layout:  layout,
		stub:    NewStubEmitter(r, log.Named("stub")),
		binding: NewBindingEmitter(r, log.Named("binding")),
		writer:  w,
		logger:  log,
	}
}

// Layout returns the output layout.
func (e *Emitter) Layout() Layout { return e.layout }

// Writer returns the file writer shared by the run.
func (e *Emitter) Writer() *FileWriter { return e.writer }

// EmitNamespace renders and writes both documents of ns. A namespace with
// no nameable class writes nothing and reports zero classes.
func (e *Emitter) EmitNamespace(ns *graph.Namespace) (NamespaceResult, error) {
	result := NamespaceResult{
		Namespace:   ns.Name,
		StubPath:    e.layout.StubPath(ns.Name),
		BindingPath: e.layout.BindingPath(ns.Name),
	}

	stub, classes := e.stub.Render(ns)
	if classes == 0 {
		e.logger.Debugw("skip namespace", logger.FieldNamespace, ns.Name, logger.FieldReason, "no nameable classes")
		return result, nil
	}
	bindings, bound := e.binding.Render(ns)

	if err := e.writer.Write(result.StubPath, []byte(stub)); err != nil {
		return result, err
	}
	if err := e.writer.Write(result.BindingPath, []byte(bindings)); err != nil {
		return result, err
	}

	result.Classes = classes
	result.Bindings = bound
	return result, nil
}
