package definitions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgumentsFromMap(t *testing.T) {
	args, err := ArgumentsFromMap(map[interface{}]interface{}{
		0: "Kiradzu",
		2: "red",
	})
	require.NoError(t, err)

	v, ok := args.Positional(0)
	assert.True(t, ok)
	assert.Equal(t, "Kiradzu", v)
	v, ok = args.Positional(2)
	assert.True(t, ok)
	assert.Equal(t, "red", v)
	_, ok = args.Positional(1)
	assert.False(t, ok)
}

func TestArgumentsFromMap_RejectsOtherKeyTypes(t *testing.T) {
	_, err := ArgumentsFromMap(map[interface{}]interface{}{1.5: "x"})
	require.Error(t, err)
	assert.Equal(t, InvalidConfigErrorCode, ErrorCodeOf(err))
}

func TestArguments_ValidateRejectsMixedKeys(t *testing.T) {
	args, err := ArgumentsFromMap(map[interface{}]interface{}{
		0:      "Kiradzu",
		"name": "Kiradzu",
	})
	require.NoError(t, err)

	err = args.Validate()
	require.Error(t, err)
	assert.Equal(t, InvalidConfigErrorCode, ErrorCodeOf(err))
}

func TestArguments_MergeLaterWins(t *testing.T) {
	a := NamedArgs(map[string]interface{}{"name": "a", "version": "1"})
	b := NamedArgs(map[string]interface{}{"name": "b"})

	merged := a.Merge(b)

	v, _ := merged.Named("name")
	assert.Equal(t, "b", v)
	v, _ = merged.Named("version")
	assert.Equal(t, "1", v)
}

func TestArguments_MergeDoesNotMutateOperands(t *testing.T) {
	a := PositionalArgs("red")
	b := PositionalArgs("yellow", "green")

	merged := a.Merge(b)

	v, _ := a.Positional(0)
	assert.Equal(t, "red", v)
	_, ok := a.Positional(1)
	assert.False(t, ok)

	v, _ = merged.Positional(0)
	assert.Equal(t, "yellow", v)
	v, _ = merged.Positional(1)
	assert.Equal(t, "green", v)
}
