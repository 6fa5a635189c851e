package definitions

import (
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Declarative sources deliver scalars as strings; these coercers convert them
// when the target parameter or property declares a richer builtin type.
var builtinCoercers = map[reflect.Type]func(string) (interface{}, error){
	reflect.TypeOf(int(0)):           coerceInt,
	reflect.TypeOf(int64(0)):         coerceInt64,
	reflect.TypeOf(uint(0)):          coerceUint,
	reflect.TypeOf(float64(0)):       coerceFloat64,
	reflect.TypeOf(float32(0)):       coerceFloat32,
	reflect.TypeOf(false):            coerceBool,
	reflect.TypeOf(time.Duration(0)): coerceDuration,
	reflect.TypeOf(uuid.UUID{}):      coerceUUID,
}

func coerceInt(s string) (interface{}, error) {
	return strconv.Atoi(s)
}

func coerceInt64(s string) (interface{}, error) {
	return strconv.ParseInt(s, 10, 64)
}

func coerceUint(s string) (interface{}, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return uint(v), err
}

func coerceFloat64(s string) (interface{}, error) {
	return strconv.ParseFloat(s, 64)
}

func coerceFloat32(s string) (interface{}, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}

func coerceBool(s string) (interface{}, error) {
	return strconv.ParseBool(s)
}

func coerceDuration(s string) (interface{}, error) {
	return time.ParseDuration(s)
}

func coerceUUID(s string) (interface{}, error) {
	return uuid.Parse(s)
}

func isNumericKind(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

// coerceToType adapts a resolved value to the target type: assignable values
// pass through, strings run through the builtin coercers, numeric kinds
// convert to each other, and slices convert elementwise. Anything else is an
// InvalidConfig error naming both types.
func coerceToType(value interface{}, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		if isNullableType(t) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, NewInvalidConfig("cannot use nil for non-nullable type %s", t)
	}

	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		return v, nil
	}

	if s, ok := value.(string); ok {
		if coerce, ok := builtinCoercers[t]; ok {
			converted, err := coerce(s)
			if err != nil {
				return reflect.Value{}, NewInvalidConfig("cannot convert %q to %s: %v", s, t, err).WithCause(err)
			}
			return reflect.ValueOf(converted), nil
		}
	}

	if isNumericKind(v.Kind()) && isNumericKind(t.Kind()) && v.Type().ConvertibleTo(t) {
		return v.Convert(t), nil
	}

	if t.Kind() == reflect.Slice && v.Kind() == reflect.Slice {
		out := reflect.MakeSlice(t, v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			elem, err := coerceToType(v.Index(i).Interface(), t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(elem)
		}
		return out, nil
	}

	if t.Kind() == reflect.Map && v.Kind() == reflect.Map && t.Key().Kind() == reflect.String {
		out := reflect.MakeMapWithSize(t, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			key, err := coerceToType(iter.Key().Interface(), t.Key())
			if err != nil {
				return reflect.Value{}, err
			}
			elem, err := coerceToType(iter.Value().Interface(), t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(key, elem)
		}
		return out, nil
	}

	return reflect.Value{}, NewInvalidConfig("cannot use value of type %T where %s is expected", value, t)
}
