package opreg

import (
	"fmt"
	"log/slog"

	"github.com/vk/prelufuse/internal/graphdef"
)

// ArgDef declares one input or output tensor of an operation.
type ArgDef struct {
	Name string
	Type graphdef.DataType
}

// AttrDef declares one attribute of an operation, optionally restricted to
// a list of allowed type tags.
type AttrDef struct {
	Name    string
	Type    string
	Allowed []graphdef.DataType
}

// OpDef is the type signature of an operation: its name, tensor arguments,
// and attributes.
type OpDef struct {
	Name    string
	Inputs  []ArgDef
	Outputs []ArgDef
	Attrs   []AttrDef
}

// Fallback is an elementwise stand-in kernel an execution environment can
// call for an op it has not implemented natively.
type Fallback func(x, alpha []float32) []float32

// Registry holds the op schemas and fallback kernels registered for a
// single application instance.
type Registry struct {
	ops       map[string]*OpDef
	fallbacks map[string]Fallback
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		ops:       make(map[string]*OpDef),
		fallbacks: make(map[string]Fallback),
	}
}

// RegisterOp registers an operation schema. Registering the same name twice
// is a programmer error.
func (r *Registry) RegisterOp(def *OpDef) {
	if _, exists := r.ops[def.Name]; exists {
		panic(fmt.Sprintf("op %q already registered", def.Name))
	}
	slog.Debug("Registering op schema.", "name", def.Name)
	r.ops[def.Name] = def
}

// Op returns the schema registered under name.
func (r *Registry) Op(name string) (*OpDef, bool) {
	def, ok := r.ops[name]
	return def, ok
}

// RegisterFallback installs a fallback kernel for the named op. Installing
// one twice is a programmer error.
func (r *Registry) RegisterFallback(name string, fn Fallback) {
	if _, exists := r.fallbacks[name]; exists {
		panic(fmt.Sprintf("fallback for op %q already registered", name))
	}
	slog.Debug("Registering fallback kernel.", "name", name)
	r.fallbacks[name] = fn
}

// Fallback returns the fallback kernel installed for the named op.
func (r *Registry) Fallback(name string) (Fallback, bool) {
	fn, ok := r.fallbacks[name]
	return fn, ok
}
