package definitions

import (
	"reflect"
)

// Parameter describes one callable parameter: its name, declared type and the
// flags that drive resolution when no argument was supplied for it. Values
// are plain data; descriptors are built per resolution and never mutated.
type Parameter struct {
	// Name is the parameter name. Descriptors built from bare reflection
	// carry synthesized names (arg0, arg1, ...)
	Name string

	// Type is the declared type; nil means untyped
	Type reflect.Type

	// Callable names the enclosing constructor or method, for error messages
	Callable string

	// Builtin is true for scalar, string, slice, map and similar types that
	// cannot be looked up in a container
	Builtin bool

	// Nullable is true for types that can hold nil
	Nullable bool

	// Optional is true when the parameter may be omitted: it has a default,
	// is variadic, or is a nullable builtin
	Optional bool

	// HasDefault reports whether Default carries a declared default value
	HasDefault bool

	// Default is the declared default value
	Default interface{}

	// Variadic is true for a trailing variable-length parameter
	Variadic bool

	// Introspected is true when the descriptor came from bare reflection and
	// no metadata was registered, so default values cannot be recovered
	Introspected bool

	registry TypeRegistry
}

// parameterFromType builds a descriptor from a declared type alone
func parameterFromType(t reflect.Type, callable string) Parameter {
	p := Parameter{
		Type:     t,
		Callable: callable,
		Builtin:  isBuiltinType(t),
		Nullable: isNullableType(t),
	}
	if p.Builtin && p.Nullable {
		p.Optional = true
	}
	return p
}

// isBuiltinType reports whether t can never be supplied by a container
// lookup: everything except interfaces, structs and pointers to structs
func isBuiltinType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Struct:
		return false
	case reflect.Ptr:
		return t.Elem().Kind() != reflect.Struct
	default:
		return true
	}
}

// isNullableType reports whether t can hold nil
func isNullableType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	default:
		return false
	}
}

func (p Parameter) typeRegistry() TypeRegistry {
	if p.registry != nil {
		return p.registry
	}
	return DefaultTypeRegistry
}

// defaultValue returns the value an omitted optional parameter resolves to
func (p Parameter) defaultValue() interface{} {
	if p.HasDefault {
		return p.Default
	}
	if p.Variadic && p.Type != nil {
		return reflect.MakeSlice(p.Type, 0, 0).Interface()
	}
	return nil
}

// Resolve obtains a runtime value for the parameter when no argument was
// supplied. The decision order is: declared class/interface type first
// (container lookup, then default, then auto-wiring through the registry),
// untyped parameters next (default or failure), builtin types last (default
// or failure).
//
// A NotFound failure from the container is absorbed only while resolving an
// optional parameter; any other container failure, a circular reference in
// particular, propagates unchanged.
func (p Parameter) Resolve(container Container) (interface{}, error) {
	if p.Type != nil && !p.Builtin {
		id := typeID(p.Type, p.typeRegistry())
		if container != nil && container.Has(id) {
			value, err := container.Get(id)
			if err != nil {
				if p.Optional && IsNotFound(err) {
					return p.defaultValue(), nil
				}
				return nil, err
			}
			if value != nil && !reflect.TypeOf(value).AssignableTo(p.Type) {
				return nil, NewInvalidConfig(
					"container returned %T for parameter %q of %s, expected %s",
					value, p.Name, p.Callable, p.Type).
					WithContext("service", id).
					WithSuggestion("check the container binding for " + id)
			}
			return value, nil
		}
		if p.Optional {
			return p.defaultValue(), nil
		}
		if info, ok := p.typeRegistry().LookupByType(p.Type); ok {
			def := NewObjectDefinition(info.Name).WithTypeRegistry(p.typeRegistry())
			return def.Resolve(container)
		}
		return nil, NewNotInstantiable(
			"unable to resolve parameter %q of %s: type %s is not in the container and is not registered",
			p.Name, p.Callable, p.Type).
			WithContext("parameter", p.Name).
			WithSuggestion("register the type or bind " + id + " in the container")
	}

	if p.Type == nil {
		if p.HasDefault {
			return p.Default, nil
		}
		return nil, NewNotInstantiable(
			"unable to determine value of parameter %q of %s without a type",
			p.Name, p.Callable).
			WithContext("parameter", p.Name)
	}

	// Builtin type and no supplied value
	if p.HasDefault {
		return p.Default, nil
	}
	if p.Variadic {
		return p.defaultValue(), nil
	}
	if p.Nullable {
		// Nullable builtins (slices, maps) fall back to nil
		return nil, nil
	}
	if p.Introspected {
		return nil, NewNotInstantiable(
			"unable to determine default value of parameter %q of %s: parameter metadata was not registered, provide the argument explicitly",
			p.Name, p.Callable).
			WithContext("parameter", p.Name).
			WithSuggestion("pass the argument in the definition, or register the parameter with WithDefault")
	}
	return nil, NewNotInstantiable(
		"unable to resolve parameter %q of %s: built-in type %s has no default value",
		p.Name, p.Callable, p.Type).
		WithContext("parameter", p.Name)
}
