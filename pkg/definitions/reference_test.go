package definitions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference_ResolvesLazily(t *testing.T) {
	container := newFakeContainer().set("engine", newEngine())

	ref := Ref("engine")
	assert.Empty(t, container.gets, "creating a reference must not touch the container")

	value, err := ref.Resolve(container)
	require.NoError(t, err)
	assert.Equal(t, 240, value.(*engine).Power)
	assert.Equal(t, []string{"engine"}, container.gets)
}

func TestReference_NotFoundPropagates(t *testing.T) {
	_, err := Ref("missing").Resolve(newFakeContainer())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestResolveReference_FallbackWins(t *testing.T) {
	primary := newFakeContainer().set("engine", &engine{Power: 1})
	fallback := newFakeContainer().set("engine", &engine{Power: 2})

	value, err := resolveReference(Ref("engine"), primary, fallback)
	require.NoError(t, err)
	assert.Equal(t, 2, value.(*engine).Power)

	value, err = resolveReference(Ref("engine"), primary, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, value.(*engine).Power)
}

func TestValueDefinition_PassesThrough(t *testing.T) {
	value, err := Value(42).Resolve(newFakeContainer())
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestResolveValue_WalksCollections(t *testing.T) {
	container := newFakeContainer().set("engine", newEngine())

	resolved, err := resolveValue([]interface{}{
		Ref("engine"),
		"literal",
		map[string]interface{}{"nested": Ref("engine")},
	}, container, nil, nil)
	require.NoError(t, err)

	list := resolved.([]interface{})
	assert.Equal(t, 240, list[0].(*engine).Power)
	assert.Equal(t, "literal", list[1])
	assert.Equal(t, 240, list[2].(map[string]interface{})["nested"].(*engine).Power)
}
