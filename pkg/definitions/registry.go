package definitions

import (
	"fmt"
	"reflect"
	"sort"
)

// TypeInfo contains everything the resolver knows about one registered class:
// the instance type it produces, an optional constructor function, the
// constructor's parameter descriptors and any registered method parameter
// names (needed to bind named method-call arguments, which Go reflection
// cannot recover on its own).
type TypeInfo struct {
	// Name is the class name definitions refer to
	Name string

	// Type is the instance type Resolve hands out (pointer to struct for
	// prototype registrations, the constructor's first return otherwise)
	Type reflect.Type

	ctor         reflect.Value
	hasCtor      bool
	params       []Parameter
	methodParams map[string][]string
	registry     TypeRegistry
}

// HasConstructor reports whether the class was registered with a constructor
func (ti *TypeInfo) HasConstructor() bool {
	return ti.hasCtor
}

// Parameters returns copies of the constructor's parameter descriptors
func (ti *TypeInfo) Parameters() []Parameter {
	out := make([]Parameter, len(ti.params))
	copy(out, ti.params)
	return out
}

// MethodParameters builds parameter descriptors for the named method of the
// instance type. Parameter names come from registration metadata when
// available; otherwise descriptors carry synthesized names and count as
// introspected (defaults unknown).
func (ti *TypeInfo) MethodParameters(method string) ([]Parameter, error) {
	m, ok := ti.Type.MethodByName(method)
	if !ok {
		return nil, NewNotInstantiable("method %q not found on class %q (type %s)", method, ti.Name, ti.Type).
			WithSuggestion("check the method name in the definition; method mutators must name an exported method")
	}
	// Interface method signatures carry no receiver; concrete ones do, as
	// the first input of the method's func type
	ft := m.Type
	offset := 0
	if ti.Type.Kind() != reflect.Interface {
		ft = m.Func.Type()
		offset = 1
	}
	params := make([]Parameter, 0, ft.NumIn()-offset)
	names := ti.methodParams[method]
	for i := offset; i < ft.NumIn(); i++ {
		idx := i - offset
		p := parameterFromType(ft.In(i), fmt.Sprintf("%s.%s", ti.Name, method))
		p.Name = fmt.Sprintf("arg%d", idx)
		p.Introspected = true
		if idx < len(names) {
			p.Name = names[idx]
			p.Introspected = false
		}
		if ft.IsVariadic() && i == ft.NumIn()-1 {
			p.Variadic = true
			p.Optional = true
		}
		p.registry = ti.registry
		params = append(params, p)
	}
	return params, nil
}

// TypeOption customizes a type registration
type TypeOption func(*TypeInfo) error

// WithParamNames assigns names to the constructor's parameters, in
// declaration order. Required before WithDefault can address a parameter by
// its real name, and before named constructor arguments can bind.
func WithParamNames(names ...string) TypeOption {
	return func(ti *TypeInfo) error {
		if len(names) != len(ti.params) {
			return NewInvalidConfig("class %q: %d parameter names given for %d constructor parameters",
				ti.Name, len(names), len(ti.params))
		}
		for i := range ti.params {
			ti.params[i].Name = names[i]
			ti.params[i].Introspected = false
		}
		return nil
	}
}

// WithDefault declares a default value for the named constructor parameter,
// making it optional. A nil default on a nullable parameter is valid and
// resolves to nil when the container cannot supply the type.
func WithDefault(param string, value interface{}) TypeOption {
	return func(ti *TypeInfo) error {
		for i := range ti.params {
			if ti.params[i].Name == param {
				ti.params[i].HasDefault = true
				ti.params[i].Default = value
				ti.params[i].Optional = true
				ti.params[i].Introspected = false
				return nil
			}
		}
		return NewInvalidConfig("class %q: no constructor parameter named %q", ti.Name, param)
	}
}

// WithMethodParams assigns names to a method's parameters so method-call
// mutators can be given named arguments
func WithMethodParams(method string, names ...string) TypeOption {
	return func(ti *TypeInfo) error {
		if ti.methodParams == nil {
			ti.methodParams = make(map[string][]string)
		}
		ti.methodParams[method] = names
		return nil
	}
}

// TypeRegistry maps class names to the metadata needed to instantiate them.
// Registrations happen at startup; lookups during resolution are read-only,
// so concurrent resolutions are safe as long as registration has finished.
type TypeRegistry interface {
	// Register adds a class under the given name. target is either a
	// constructor function (last return may be error) or a prototype value
	// whose type is instantiated as a zero value
	Register(name string, target interface{}, opts ...TypeOption) error

	// Lookup retrieves a class by name
	Lookup(name string) (*TypeInfo, bool)

	// LookupByType retrieves a class by the instance type it produces
	LookupByType(t reflect.Type) (*TypeInfo, bool)

	// Names returns all registered class names, sorted
	Names() []string
}

// inMemoryTypeRegistry implements TypeRegistry
type inMemoryTypeRegistry struct {
	byName map[string]*TypeInfo
	byType map[reflect.Type]*TypeInfo
}

// NewTypeRegistry creates a new in-memory type registry
func NewTypeRegistry() TypeRegistry {
	return &inMemoryTypeRegistry{
		byName: make(map[string]*TypeInfo),
		byType: make(map[reflect.Type]*TypeInfo),
	}
}

func (r *inMemoryTypeRegistry) Register(name string, target interface{}, opts ...TypeOption) error {
	if target == nil {
		return NewInvalidConfig("class %q: registration target must not be nil", name)
	}

	info := &TypeInfo{Name: name, registry: r}
	t := reflect.TypeOf(target)

	if t.Kind() == reflect.Func {
		if t.NumOut() == 0 || t.NumOut() > 2 {
			return NewInvalidConfig("class %q: constructor must return the instance and optionally an error, got %d return values", name, t.NumOut())
		}
		if t.NumOut() == 2 && t.Out(1) != reflect.TypeOf((*error)(nil)).Elem() {
			return NewInvalidConfig("class %q: constructor's second return value must be error, got %s", name, t.Out(1))
		}
		if t.Out(0) == reflect.TypeOf((*error)(nil)).Elem() {
			return NewInvalidConfig("class %q: constructor's first return value must be the instance, not error", name).
				WithSuggestion("return the instance first and the error second")
		}
		info.ctor = reflect.ValueOf(target)
		info.hasCtor = true
		info.Type = t.Out(0)
		info.params = reflectParameters(t, name, r)
	} else {
		// Prototype registration: instances are fresh pointers to a zero
		// value, so property mutators always have a settable target
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return NewInvalidConfig("class %q: prototype must be a struct or pointer to struct, got %s", name, t.Kind())
		}
		info.Type = reflect.PtrTo(t)
	}

	for _, opt := range opts {
		if err := opt(info); err != nil {
			return err
		}
	}

	r.byName[name] = info
	r.byType[info.Type] = info
	return nil
}

func (r *inMemoryTypeRegistry) Lookup(name string) (*TypeInfo, bool) {
	info, ok := r.byName[name]
	return info, ok
}

func (r *inMemoryTypeRegistry) LookupByType(t reflect.Type) (*TypeInfo, bool) {
	info, ok := r.byType[t]
	return info, ok
}

func (r *inMemoryTypeRegistry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// reflectParameters builds descriptors for a constructor function's inputs.
// Reflection cannot recover parameter names or defaults, so descriptors start
// with synthesized names and count as introspected until registration options
// fill in the metadata.
func reflectParameters(ctor reflect.Type, callable string, registry TypeRegistry) []Parameter {
	params := make([]Parameter, 0, ctor.NumIn())
	for i := 0; i < ctor.NumIn(); i++ {
		p := parameterFromType(ctor.In(i), callable)
		p.Name = fmt.Sprintf("arg%d", i)
		p.Introspected = true
		if ctor.IsVariadic() && i == ctor.NumIn()-1 {
			p.Variadic = true
			p.Optional = true
		}
		p.registry = registry
		params = append(params, p)
	}
	return params
}

// DefaultTypeRegistry is the global type registry
var DefaultTypeRegistry = NewTypeRegistry()

// RegisterType registers a class with the global registry
func RegisterType(name string, target interface{}, opts ...TypeOption) error {
	return DefaultTypeRegistry.Register(name, target, opts...)
}

// LookupType retrieves a class from the global registry
func LookupType(name string) (*TypeInfo, bool) {
	return DefaultTypeRegistry.Lookup(name)
}

// typeID derives the container lookup id for a declared parameter type: the
// registered class name when the type is known to the registry, the Go type
// string otherwise
func typeID(t reflect.Type, registry TypeRegistry) string {
	if registry != nil {
		if info, ok := registry.LookupByType(t); ok {
			return info.Name
		}
	}
	return t.String()
}
