// Package loader discovers data-model definition files and evaluates them in
// a hardened JavaScript sandbox. Evaluation is deterministic: fixed random
// source, frozen prototypes, bounded call stack, and a hard execution timeout
// per file.
package loader

import (
	"math/rand"
	"time"

	"github.com/dop251/goja"

	"github.com/seqsquash/seqsquash/internal/jsutil"
	"github.com/seqsquash/seqsquash/internal/sqerr"
)

// FixedSeed is the deterministic seed for the sandbox's random source.
// Model files must not influence output through Math.random.
const FixedSeed = 12345

// DefaultTimeout bounds the evaluation of a single model file.
const DefaultTimeout = 5 * time.Second

// Property keys used to tag type descriptors produced by the bound type
// vocabulary. Double underscores keep them out of the way of user attributes.
const (
	dtypeKey     = "__dtype"
	dtypeArgsKey = "__dtypeArgs"
	markerKey    = "__marker"
)

// typeNames is the bound type vocabulary. Every member is exposed on the
// DataTypes global both as a bare value and as a callable, so model files can
// write DataTypes.STRING as well as DataTypes.STRING(100).
var typeNames = []string{
	"STRING", "CHAR", "TEXT", "CITEXT",
	"BOOLEAN", "TINYINT",
	"INTEGER", "BIGINT", "SMALLINT", "MEDIUMINT",
	"FLOAT", "REAL", "DOUBLE", "DECIMAL", "NUMERIC",
	"DATE", "DATEONLY", "TIME",
	"ENUM",
	"JSON", "JSONB",
	"BLOB",
	"UUID", "UUIDV1", "UUIDV4", "NOW",
	"VIRTUAL",
	"ARRAY", "RANGE", "GEOMETRY", "GEOGRAPHY", "HSTORE", "INET", "CIDR", "MACADDR",
}

// capturedModel is one raw model definition recorded during evaluation,
// before conversion into the core representation.
type capturedModel struct {
	Name    string
	Attrs   *goja.Object
	Options *goja.Object
	File    string
}

// Sandbox evaluates model files and collects the models they define. One
// sandbox is shared across all files of a load; each file gets a fresh
// module/exports pair.
type Sandbox struct {
	vm      *goja.Runtime
	timeout time.Duration

	dataTypes *goja.Object
	sequelize *goja.Object

	captured    []*capturedModel
	currentFile string
}

// NewSandbox creates a hardened sandbox with the model vocabulary bound.
func NewSandbox() *Sandbox {
	vm := goja.New()

	// Resource limit against runaway recursion in model files.
	vm.SetMaxCallStackSize(500)

	// Deterministic execution.
	seedRand := rand.New(rand.NewSource(FixedSeed))
	vm.SetRandSource(func() float64 { return seedRand.Float64() })

	hardenGlobals(vm)

	s := &Sandbox{
		vm:      vm,
		timeout: DefaultTimeout,
	}
	s.bindGlobals()
	return s
}

// SetTimeout overrides the per-file execution timeout.
func (s *Sandbox) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// hardenGlobals disables JS features that could break determinism or allow
// prototype pollution between model files.
func hardenGlobals(vm *goja.Runtime) {
	vm.Set("eval", goja.Undefined())

	_, _ = vm.RunString(`
		(function() {
			try {
				Object.freeze(Object.prototype);
				Object.freeze(Array.prototype);
				Object.freeze(String.prototype);
				Object.freeze(Number.prototype);
				Object.freeze(Boolean.prototype);
			} catch(e) {}
		})();
	`)
}

// bindGlobals installs the type vocabulary, the connection stand-in, and the
// module-shape helpers every model file may rely on.
func (s *Sandbox) bindGlobals() {
	s.dataTypes = s.dataTypesObject()
	s.sequelize = s.sequelizeObject()

	s.vm.Set("DataTypes", s.dataTypes)
	s.vm.Set("Sequelize", s.dataTypes)
	s.vm.Set("sequelize", s.sequelize)
	s.vm.Set("__captureModel", s.captureFunc())
	s.vm.Set("require", s.requireFunc())

	s.bindModelClass()
}

// dataTypesObject builds the DataTypes vocabulary: every entry is a function
// object tagged with its type name, so it resolves whether the model file
// calls it or passes it bare.
func (s *Sandbox) dataTypesObject() *goja.Object {
	obj := s.vm.NewObject()
	for _, name := range typeNames {
		_ = obj.Set(name, s.typeEntry(name))
	}
	return obj
}

// typeEntry builds one vocabulary member. Calling it yields a descriptor
// object carrying the type name and the call arguments.
func (s *Sandbox) typeEntry(name string) goja.Value {
	fn := s.vm.ToValue(func(call goja.FunctionCall) goja.Value {
		desc := s.vm.NewObject()
		_ = desc.Set(dtypeKey, name)
		args := make([]any, 0, len(call.Arguments))
		for _, a := range call.Arguments {
			args = append(args, jsutil.ToGoValue(a))
		}
		_ = desc.Set(dtypeArgsKey, args)
		return desc
	})
	if o, ok := fn.(*goja.Object); ok {
		_ = o.Set(dtypeKey, name)
	}
	return fn
}

// sequelizeObject builds the connection stand-in handed to model files. Only
// define() has real behavior; association and lifecycle helpers are no-ops so
// model files that call them still evaluate.
func (s *Sandbox) sequelizeObject() *goja.Object {
	obj := s.vm.NewObject()
	_ = obj.Set("define", s.captureFunc())

	// Raw-expression helpers produce opaque markers. They cannot be carried
	// into generated output, so conversion ignores them.
	marker := func(kind string) func(call goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			m := s.vm.NewObject()
			_ = m.Set(markerKey, kind)
			return m
		}
	}
	_ = obj.Set("literal", marker("literal"))
	_ = obj.Set("fn", marker("fn"))
	_ = obj.Set("col", marker("col"))

	noop := func(call goja.FunctionCall) goja.Value { return goja.Undefined() }
	for _, name := range []string{"authenticate", "sync", "addHook", "query"} {
		_ = obj.Set(name, noop)
	}
	return obj
}

// captureFunc records a model definition and returns a stub model object that
// tolerates the association and hook calls model files commonly make.
func (s *Sandbox) captureFunc() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		nameVal := call.Argument(0)
		name, _ := nameVal.Export().(string)
		if name == "" {
			panic(s.vm.ToValue("model definition requires a name as its first argument"))
		}

		attrs, _ := call.Argument(1).(*goja.Object)
		opts, _ := call.Argument(2).(*goja.Object)

		s.captured = append(s.captured, &capturedModel{
			Name:    name,
			Attrs:   attrs,
			Options: opts,
			File:    s.currentFile,
		})

		stub := s.vm.NewObject()
		_ = stub.Set("name", name)
		noop := func(call goja.FunctionCall) goja.Value { return goja.Undefined() }
		for _, m := range []string{
			"hasMany", "belongsTo", "hasOne", "belongsToMany",
			"sync", "addHook", "beforeCreate", "afterCreate", "addScope",
		} {
			_ = stub.Set(m, noop)
		}
		return stub
	}
}

// requireFunc resolves the single import shape model files use: the ORM
// package itself. Anything else resolves to an empty object rather than
// aborting the file.
func (s *Sandbox) requireFunc() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		pkg := s.vm.NewObject()
		_ = pkg.Set("DataTypes", s.dataTypes)
		_ = pkg.Set("Sequelize", s.dataTypes)
		if model := s.vm.Get("Model"); model != nil {
			_ = pkg.Set("Model", model)
		}
		_ = pkg.Set("Op", s.vm.NewObject())
		return pkg
	}
}

// bindModelClass installs a Model base class so class-based definitions
// (class User extends Model, then User.init(...)) evaluate and capture.
func (s *Sandbox) bindModelClass() {
	_, _ = s.vm.RunString(`
		class Model {
			static init(attributes, options) {
				options = options || {};
				__captureModel(options.modelName || this.name, attributes, options);
				return this;
			}
			static associate() {}
			static hasMany() {}
			static belongsTo() {}
			static hasOne() {}
			static belongsToMany() {}
			static addHook() {}
		}
		this.Model = Model;
	`)
}

// EvalFile evaluates one model file. The code is wrapped in a function scope
// so top-level const/let declarations cannot collide across files sharing
// the VM, and a fresh module/exports pair is bound so files cannot observe
// each other's exports. If the file exports a factory function it is invoked
// with the connection stand-in and the type vocabulary.
func (s *Sandbox) EvalFile(path, code string) error {
	s.currentFile = path

	module := s.vm.NewObject()
	exports := s.vm.NewObject()
	_ = module.Set("exports", exports)
	s.vm.Set("module", module)
	s.vm.Set("exports", exports)

	// ClearInterrupt is deferred after timer.Stop so a timeout firing at the
	// tail of a run cannot leak into the next file.
	defer s.vm.ClearInterrupt()
	timer := time.AfterFunc(s.timeout, func() {
		s.vm.Interrupt("execution timeout")
	})
	defer timer.Stop()

	wrapped := "(function(module, exports, require, sequelize, DataTypes) {\n" +
		code +
		"\n})(module, exports, require, sequelize, DataTypes);"
	if _, err := s.vm.RunScript(path, wrapped); err != nil {
		return s.evalError(path, err)
	}

	// Factory export: module.exports = (sequelize, DataTypes) => Model
	if fn, ok := goja.AssertFunction(module.Get("exports")); ok {
		if _, err := jsutil.Call(fn, goja.Undefined(), s.sequelize, s.dataTypes); err != nil {
			return sqerr.Wrap(sqerr.ErrJSExecution, err, "model factory failed").
				WithFile(path, 0)
		}
	}

	s.vm.ClearInterrupt()
	return nil
}

// evalError classifies a failed evaluation, distinguishing timeouts from
// plain script errors.
func (s *Sandbox) evalError(path string, err error) error {
	if interrupted, ok := err.(*goja.InterruptedError); ok {
		return sqerr.New(sqerr.ErrJSTimeout, "model file evaluation timed out").
			With("timeout", s.timeout.String()).
			With("interrupt", interrupted.String()).
			WithFile(path, 0)
	}
	return jsutil.WrapJSError(err, sqerr.ErrJSExecution).WithFile(path, 0)
}
