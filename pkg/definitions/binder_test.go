package definitions

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// carParams returns the constructor descriptors of the car fixture:
// (name string, version *string = nil, colors ...string)
func carParams(t *testing.T, registry TypeRegistry) []Parameter {
	t.Helper()
	info, ok := registry.Lookup("car")
	require.True(t, ok)
	return info.Parameters()
}

func callValues(bound []reflect.Value) []interface{} {
	out := make([]interface{}, len(bound))
	for i, v := range bound {
		out[i] = v.Interface()
	}
	return out
}

func TestBind_NamedArgument(t *testing.T) {
	registry := newTestRegistry()

	args := NamedArgs(map[string]interface{}{"name": "Kiradzu"})
	bound, err := bindArguments(args, carParams(t, registry), newFakeContainer(), nil)
	require.NoError(t, err)

	values := callValues(bound)
	require.Len(t, values, 2)
	assert.Equal(t, "Kiradzu", values[0])
	assert.Equal(t, (*string)(nil), values[1])
}

func TestBind_MixedKeysRejected(t *testing.T) {
	registry := newTestRegistry()

	args, err := ArgumentsFromMap(map[interface{}]interface{}{0: "Kiradzu", "name": "Kiradzu"})
	require.NoError(t, err)

	_, err = bindArguments(args, carParams(t, registry), newFakeContainer(), nil)
	require.Error(t, err)
	assert.Equal(t, InvalidConfigErrorCode, ErrorCodeOf(err))
}

func TestBind_VariadicCollectsTrailingPositionals(t *testing.T) {
	registry := newTestRegistry()

	args, err := ArgumentsFromMap(map[interface{}]interface{}{
		0: "Kiradzu",
		2: "red",
		3: "green",
		4: "blue",
	})
	require.NoError(t, err)

	bound, err := bindArguments(args, carParams(t, registry), newFakeContainer(), nil)
	require.NoError(t, err)

	values := callValues(bound)
	require.Len(t, values, 5)
	assert.Equal(t, []interface{}{"red", "green", "blue"}, values[2:])
}

func TestBind_VariadicFlattensSliceEntries(t *testing.T) {
	registry := newTestRegistry()

	args, err := ArgumentsFromMap(map[interface{}]interface{}{
		0: "Kiradzu",
		2: []interface{}{"red", "green"},
		3: "blue",
	})
	require.NoError(t, err)

	bound, err := bindArguments(args, carParams(t, registry), newFakeContainer(), nil)
	require.NoError(t, err)

	values := callValues(bound)
	require.Len(t, values, 5)
	assert.Equal(t, []interface{}{"red", "green", "blue"}, values[2:])
}

func TestBind_VariadicNamedCollectionSpreads(t *testing.T) {
	registry := newTestRegistry()

	args := NamedArgs(map[string]interface{}{
		"name":   "Kiradzu",
		"colors": []interface{}{"red", "green", "blue"},
	})

	bound, err := bindArguments(args, carParams(t, registry), newFakeContainer(), nil)
	require.NoError(t, err)

	values := callValues(bound)
	require.Len(t, values, 5)
	assert.Equal(t, []interface{}{"red", "green", "blue"}, values[2:])
}

func TestBind_VariadicNamedScalarIsArgumentError(t *testing.T) {
	registry := newTestRegistry()

	args := NamedArgs(map[string]interface{}{
		"name":   "Kiradzu",
		"colors": "red",
	})

	_, err := bindArguments(args, carParams(t, registry), newFakeContainer(), nil)
	require.Error(t, err)
	assert.Equal(t, ArgumentErrorCode, ErrorCodeOf(err))
	assert.Contains(t, err.Error(), "must be a collection")
	assert.Contains(t, err.Error(), "string")
}

func TestBind_VariadicInterfaceElementNamedCollectionSpreads(t *testing.T) {
	registry := newTestRegistry()

	info, ok := registry.Lookup("bag")
	require.True(t, ok)

	args := NamedArgs(map[string]interface{}{"items": []interface{}{"x", "y", "z"}})
	bound, err := bindArguments(args, info.Parameters(), newFakeContainer(), nil)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"x", "y", "z"}, callValues(bound))
}

func TestBind_VariadicInterfaceElementFlattensPositionalSlices(t *testing.T) {
	registry := newTestRegistry()

	info, ok := registry.Lookup("bag")
	require.True(t, ok)

	args, err := ArgumentsFromMap(map[interface{}]interface{}{
		0: []interface{}{"x", "y"},
		1: "z",
	})
	require.NoError(t, err)

	bound, err := bindArguments(args, info.Parameters(), newFakeContainer(), nil)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"x", "y", "z"}, callValues(bound))
}

func TestBind_VariadicSliceElementKeepsSlicesIntact(t *testing.T) {
	param := parameterFromType(reflect.TypeOf([][]string{}), "stack")
	param.Name = "rows"
	param.Variadic = true
	param.Optional = true

	args := PositionalArgs([]string{"a", "b"}, []string{"c"})
	bound, err := bindArguments(args, []Parameter{param}, newFakeContainer(), nil)
	require.NoError(t, err)

	require.Len(t, bound, 2)
	assert.Equal(t, []string{"a", "b"}, bound[0].Interface())
	assert.Equal(t, []string{"c"}, bound[1].Interface())
}

func TestBind_VariadicWithNoEntriesIsEmpty(t *testing.T) {
	registry := newTestRegistry()

	args := PositionalArgs("Kiradzu")
	bound, err := bindArguments(args, carParams(t, registry), newFakeContainer(), nil)
	require.NoError(t, err)
	assert.Len(t, bound, 2)
}

func TestBind_ResolvesReferencesAndNestedDefinitions(t *testing.T) {
	registry := newTestRegistry()
	container := newFakeContainer().set("the-engine", newEngine())

	info, ok := registry.Lookup("garage")
	require.True(t, ok)

	args := NamedArgs(map[string]interface{}{"engine": Ref("the-engine")})
	bound, err := bindArguments(args, info.Parameters(), container, nil)
	require.NoError(t, err)

	require.Len(t, bound, 1)
	assert.Equal(t, 240, bound[0].Interface().(*engine).Power)

	args = NamedArgs(map[string]interface{}{
		"engine": NewObjectDefinition("engine").WithTypeRegistry(registry),
	})
	bound, err = bindArguments(args, info.Parameters(), container, nil)
	require.NoError(t, err)
	assert.Equal(t, 240, bound[0].Interface().(*engine).Power)
}

func TestBind_UnsuppliedParameterDelegatesToDescriptor(t *testing.T) {
	registry := newTestRegistry()
	container := newFakeContainer().set("engine", newEngine())

	info, ok := registry.Lookup("garage")
	require.True(t, ok)

	bound, err := bindArguments(NewArguments(), info.Parameters(), container, nil)
	require.NoError(t, err)
	require.Len(t, bound, 1)
	assert.Equal(t, 240, bound[0].Interface().(*engine).Power)
	assert.Equal(t, []string{"engine"}, container.gets)
}
