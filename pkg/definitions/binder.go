package definitions

import (
	"reflect"
)

// bindArguments reconciles a definition's supplied arguments against the
// target callable's parameter descriptors and produces the exact positional
// value list the callable expects. Supplied entries win over descriptor
// resolution; named entries win over positional ones for the same parameter.
// A trailing variadic parameter collects every leftover entry.
func bindArguments(args Arguments, params []Parameter, primary, refContainer Container) ([]reflect.Value, error) {
	if err := args.Validate(); err != nil {
		return nil, err
	}

	var registry TypeRegistry
	if len(params) > 0 {
		registry = params[0].typeRegistry()
	}

	out := make([]reflect.Value, 0, len(params))
	for i, param := range params {
		if param.Variadic && i == len(params)-1 {
			packed, err := bindVariadic(args, param, i, primary, refContainer, registry)
			if err != nil {
				return nil, err
			}
			out = append(out, packed...)
			continue
		}

		raw, supplied := args.Named(param.Name)
		if !supplied {
			raw, supplied = args.Positional(i)
		}

		var value interface{}
		var err error
		if supplied {
			value, err = resolveValue(raw, primary, refContainer, registry)
		} else {
			value, err = param.Resolve(primary)
		}
		if err != nil {
			return nil, err
		}

		bound, err := toCallValue(value, param.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, bound)
	}
	return out, nil
}

// bindVariadic collects the values destined for a trailing variadic
// parameter. Positional leftovers come first, in key order, with slice
// entries flattened one level; a named entry matching the parameter's name
// must itself be a collection and is spread after them.
func bindVariadic(args Arguments, param Parameter, start int, primary, refContainer Container, registry TypeRegistry) ([]reflect.Value, error) {
	elem := param.Type.Elem()
	var packed []reflect.Value

	appendValue := func(v interface{}) error {
		bound, err := toCallValue(v, elem)
		if err != nil {
			return err
		}
		packed = append(packed, bound)
		return nil
	}

	spread := func(v interface{}) error {
		rv := reflect.ValueOf(v)
		for i := 0; i < rv.Len(); i++ {
			if err := appendValue(rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}

	// isCollection decides between a single variadic element and a slice to
	// flatten. A value assignable to a concrete slice-typed element is one
	// element, so variadics of slice types stay intact; an interface-typed
	// element accepts any value, so slices supplied for it always count as
	// collections.
	isCollection := func(v interface{}) bool {
		if v == nil {
			return false
		}
		t := reflect.TypeOf(v)
		if t.Kind() != reflect.Slice && t.Kind() != reflect.Array {
			return false
		}
		return elem.Kind() == reflect.Interface || !t.AssignableTo(elem)
	}

	for _, idx := range args.positionalIndexes() {
		if idx < start {
			continue
		}
		raw, _ := args.Positional(idx)
		value, err := resolveValue(raw, primary, refContainer, registry)
		if err != nil {
			return nil, err
		}
		if isCollection(value) {
			if err := spread(value); err != nil {
				return nil, err
			}
		} else if err := appendValue(value); err != nil {
			return nil, err
		}
	}

	if raw, ok := args.Named(param.Name); ok {
		value, err := resolveValue(raw, primary, refContainer, registry)
		if err != nil {
			return nil, err
		}
		if !isCollection(value) {
			return nil, NewArgumentError(
				"named argument for variadic parameter %q of %s must be a collection, got %T",
				param.Name, param.Callable, value).
				WithSuggestion("wrap the value in a slice")
		}
		if err := spread(value); err != nil {
			return nil, err
		}
	}

	return packed, nil
}

// toCallValue turns a resolved value into a reflect.Value matching the
// declared parameter type
func toCallValue(value interface{}, t reflect.Type) (reflect.Value, error) {
	if t == nil {
		if value == nil {
			return reflect.ValueOf(&value).Elem(), nil
		}
		return reflect.ValueOf(value), nil
	}
	if value == nil {
		if !isNullableType(t) {
			return reflect.Value{}, NewInvalidConfig("cannot use nil for non-nullable type %s", t)
		}
		return reflect.Zero(t), nil
	}
	return coerceToType(value, t)
}
