package definitions

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

// mutatorKind tags the two mutator variants
type mutatorKind int

const (
	propertyMutator mutatorKind = iota
	methodMutator
)

// Mutator is one post-construction action on an instance: a property
// assignment or a method call. Order between mutators is significant and
// preserved from the authoring source.
type Mutator struct {
	kind  mutatorKind
	name  string
	value interface{} // property value
	args  Arguments   // method arguments
}

// Property creates a property-assignment mutator. The name may be given in
// lowerCamel form as declarative sources do; it is matched against the
// exported field.
func Property(name string, value interface{}) Mutator {
	return Mutator{kind: propertyMutator, name: name, value: value}
}

// MethodCall creates a method-call mutator
func MethodCall(name string, args Arguments) Mutator {
	return Mutator{kind: methodMutator, name: name, args: args}
}

// Name returns the property or method name the mutator targets
func (m Mutator) Name() string {
	return m.name
}

// IsProperty reports whether the mutator is a property assignment
func (m Mutator) IsProperty() bool {
	return m.kind == propertyMutator
}

// Arguments returns the method-call arguments; empty for property mutators
func (m Mutator) Arguments() Arguments {
	return m.args.clone()
}

// identity keys mutators for merge: a property and a method with the same
// name must never collide
func (m Mutator) identity() string {
	if m.kind == propertyMutator {
		return "$" + m.name
	}
	return m.name + "()"
}

// mergeWith combines two mutators sharing the same identity: the later
// definition's property value wins outright, while method-call arguments are
// key-merged so that argument positions the later definition leaves out keep
// the earlier definition's values
func (m Mutator) mergeWith(other Mutator) Mutator {
	if m.kind == methodMutator && other.kind == methodMutator {
		return Mutator{kind: methodMutator, name: m.name, args: m.args.Merge(other.args)}
	}
	return other
}

// exportedName upper-cases the first rune so declarative names like
// "codeName" or "setColors" reach the exported Go member
func exportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// apply runs the mutator against the working instance and returns the
// instance all subsequent mutators should see. A method whose first return
// value is an instance of the definition's type is treated as fluent and
// replaces the working instance; any other return value is discarded.
func (m Mutator) apply(instance reflect.Value, info *TypeInfo, primary, refContainer Container) (reflect.Value, error) {
	// Constructors declared to return an interface hand back interface-kind
	// values; unwrap to the concrete instance before dispatching
	if instance.Kind() == reflect.Interface && !instance.IsNil() {
		instance = instance.Elem()
	}
	if m.kind == propertyMutator {
		return instance, m.applyProperty(instance, info, primary, refContainer)
	}
	return m.applyMethod(instance, info, primary, refContainer)
}

func (m Mutator) applyProperty(instance reflect.Value, info *TypeInfo, primary, refContainer Container) error {
	target := instance
	if target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	if target.Kind() != reflect.Struct {
		return NewInvalidConfig("cannot set property %q on non-struct instance of class %q", m.name, info.Name)
	}
	field := target.FieldByName(exportedName(m.name))
	if !field.IsValid() {
		return NewInvalidConfig("class %q (type %s) has no field %q", info.Name, info.Type, exportedName(m.name)).
			WithSuggestion("check the property name in the definition")
	}
	if !field.CanSet() {
		return NewInvalidConfig("field %q of class %q is not settable", exportedName(m.name), info.Name)
	}

	value, err := resolveValue(m.value, primary, refContainer, info.registry)
	if err != nil {
		return err
	}
	bound, err := toCallValue(value, field.Type())
	if err != nil {
		return err
	}
	field.Set(bound)
	return nil
}

func (m Mutator) applyMethod(instance reflect.Value, info *TypeInfo, primary, refContainer Container) (reflect.Value, error) {
	methodName := exportedName(m.name)
	method := instance.MethodByName(methodName)
	if !method.IsValid() {
		return reflect.Value{}, NewNotInstantiable("method %q not found on class %q (type %s)", methodName, info.Name, instance.Type()).
			WithSuggestion("check the method name in the definition; method mutators must name an exported method")
	}

	params, err := info.MethodParameters(methodName)
	if err != nil {
		return reflect.Value{}, err
	}
	callArgs, err := bindArguments(m.args, params, primary, refContainer)
	if err != nil {
		return reflect.Value{}, err
	}

	results := method.Call(callArgs)
	if len(results) > 0 {
		ret := results[0]
		if ret.IsValid() && ret.Kind() != reflect.Invalid && !isNilValue(ret) {
			if reflect.TypeOf(ret.Interface()) != nil && reflect.TypeOf(ret.Interface()).AssignableTo(info.Type) {
				return reflect.ValueOf(ret.Interface()), nil
			}
		}
	}
	return instance, nil
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}
