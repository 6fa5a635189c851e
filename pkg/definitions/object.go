package definitions

import (
	"reflect"
)

// ObjectDefinition describes how to build and mutate one object: the class to
// instantiate, its constructor arguments and an ordered list of mutators.
// Definitions are immutable; every With* call and Merge returns a new copy,
// so a definition can be shared and resolved concurrently.
type ObjectDefinition struct {
	className    string
	args         Arguments
	mutators     []Mutator
	refContainer Container
	registry     TypeRegistry
}

// NewObjectDefinition creates a definition for the given class name
func NewObjectDefinition(className string) *ObjectDefinition {
	return &ObjectDefinition{className: className}
}

func (d *ObjectDefinition) clone() *ObjectDefinition {
	out := &ObjectDefinition{
		className:    d.className,
		args:         d.args.clone(),
		refContainer: d.refContainer,
		registry:     d.registry,
	}
	out.mutators = make([]Mutator, len(d.mutators))
	copy(out.mutators, d.mutators)
	return out
}

// ClassName returns the target class name
func (d *ObjectDefinition) ClassName() string {
	return d.className
}

// Arguments returns the constructor arguments
func (d *ObjectDefinition) Arguments() Arguments {
	return d.args.clone()
}

// Mutators returns the mutators in application order
func (d *ObjectDefinition) Mutators() []Mutator {
	out := make([]Mutator, len(d.mutators))
	copy(out, d.mutators)
	return out
}

// WithArguments returns a copy of the definition with the given constructor
// arguments
func (d *ObjectDefinition) WithArguments(args Arguments) *ObjectDefinition {
	out := d.clone()
	out.args = args.clone()
	return out
}

// WithProperty returns a copy with a property-assignment mutator appended
func (d *ObjectDefinition) WithProperty(name string, value interface{}) *ObjectDefinition {
	out := d.clone()
	out.mutators = append(out.mutators, Property(name, value))
	return out
}

// WithMethodCall returns a copy with a method-call mutator appended
func (d *ObjectDefinition) WithMethodCall(name string, args Arguments) *ObjectDefinition {
	out := d.clone()
	out.mutators = append(out.mutators, MethodCall(name, args))
	return out
}

// WithReferenceContainer returns a copy whose embedded References resolve
// against the given container instead of the one passed to Resolve
func (d *ObjectDefinition) WithReferenceContainer(c Container) *ObjectDefinition {
	out := d.clone()
	out.refContainer = c
	return out
}

// WithTypeRegistry returns a copy resolving class names against the given
// registry instead of the package default
func (d *ObjectDefinition) WithTypeRegistry(r TypeRegistry) *ObjectDefinition {
	out := d.clone()
	out.registry = r
	return out
}

func (d *ObjectDefinition) typeRegistry() TypeRegistry {
	if d.registry != nil {
		return d.registry
	}
	return DefaultTypeRegistry
}

// Merge combines two definitions of the same target, the receiver being the
// earlier one. The other definition's class name wins; constructor arguments
// are key-merged with the other's values taking precedence; mutators present
// in both keep the receiver's position but take the other's value, and
// mutators unique to the other definition are appended in their relative
// order. Neither operand is mutated.
func (d *ObjectDefinition) Merge(other *ObjectDefinition) *ObjectDefinition {
	out := d.clone()
	if other == nil {
		return out
	}

	if other.className != "" {
		out.className = other.className
	}
	out.args = d.args.Merge(other.args)
	if other.refContainer != nil {
		out.refContainer = other.refContainer
	}
	if other.registry != nil {
		out.registry = other.registry
	}

	overrides := make(map[string]Mutator, len(other.mutators))
	for _, m := range other.mutators {
		overrides[m.identity()] = m
	}

	merged := make([]Mutator, 0, len(d.mutators)+len(other.mutators))
	seen := make(map[string]bool, len(d.mutators))
	for _, m := range d.mutators {
		id := m.identity()
		seen[id] = true
		if override, ok := overrides[id]; ok {
			merged = append(merged, m.mergeWith(override))
		} else {
			merged = append(merged, m)
		}
	}
	for _, m := range other.mutators {
		if !seen[m.identity()] {
			merged = append(merged, m)
		}
	}
	out.mutators = merged
	return out
}

// Resolve builds the instance: validates the class, binds constructor
// arguments, instantiates and applies the mutators in order. Every call
// produces a fresh instance.
func (d *ObjectDefinition) Resolve(container Container) (interface{}, error) {
	info, ok := d.typeRegistry().Lookup(d.className)
	if !ok {
		return nil, NewNotInstantiable("class %q is not registered and cannot be instantiated", d.className).
			WithContext("class", d.className).
			WithSuggestion("register the class with the type registry before resolving")
	}
	if info.Type.Kind() == reflect.Interface && !info.HasConstructor() {
		return nil, NewNotInstantiable("class %q denotes interface %s, which cannot be instantiated", d.className, info.Type).
			WithSuggestion("register a constructor returning a concrete implementation")
	}

	instance, err := d.instantiate(info, container)
	if err != nil {
		return nil, err
	}

	working := instance
	for _, m := range d.mutators {
		working, err = m.apply(working, info, container, d.refContainer)
		if err != nil {
			return nil, err
		}
	}
	return working.Interface(), nil
}

func (d *ObjectDefinition) instantiate(info *TypeInfo, container Container) (reflect.Value, error) {
	if !info.HasConstructor() {
		if !d.args.IsEmpty() {
			return reflect.Value{}, NewInvalidConfig(
				"class %q has no constructor but the definition supplies constructor arguments", d.className)
		}
		return reflect.New(info.Type.Elem()), nil
	}

	callArgs, err := bindArguments(d.args, info.Parameters(), container, d.refContainer)
	if err != nil {
		return reflect.Value{}, err
	}

	results := info.ctor.Call(callArgs)
	if len(results) == 2 && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}
	if isNilValue(results[0]) {
		return reflect.Value{}, NewNotInstantiable("constructor for class %q returned nil", d.className)
	}
	return results[0], nil
}
