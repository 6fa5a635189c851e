package definitions

import (
	"sort"
)

// Arguments holds the constructor or method arguments of a definition, keyed
// either by position or by parameter name. Both kinds are stored so that
// merging stays a plain key-merge; carrying entries of both kinds at once is
// rejected at bind time, because the declarative source and Merge can each
// produce such a mix.
type Arguments struct {
	positional map[int]interface{}
	named      map[string]interface{}
}

// NewArguments creates an empty argument set
func NewArguments() Arguments {
	return Arguments{}
}

// PositionalArgs creates an argument set from values in declaration order
func PositionalArgs(values ...interface{}) Arguments {
	args := Arguments{positional: make(map[int]interface{}, len(values))}
	for i, v := range values {
		args.positional[i] = v
	}
	return args
}

// NamedArgs creates an argument set keyed by parameter name
func NamedArgs(values map[string]interface{}) Arguments {
	args := Arguments{named: make(map[string]interface{}, len(values))}
	for k, v := range values {
		args.named[k] = v
	}
	return args
}

// ArgumentsFromMap builds an argument set from a raw declarative map whose
// keys are positions or parameter names. Keys of any other type are rejected.
func ArgumentsFromMap(raw map[interface{}]interface{}) (Arguments, error) {
	args := Arguments{}
	for key, value := range raw {
		switch k := key.(type) {
		case int:
			args = args.withPositional(k, value)
		case string:
			args = args.withNamed(k, value)
		default:
			return Arguments{}, NewInvalidConfig("argument keys must be integers or strings, got %T", key)
		}
	}
	return args, nil
}

func (a Arguments) withPositional(index int, value interface{}) Arguments {
	out := a.clone()
	if out.positional == nil {
		out.positional = make(map[int]interface{})
	}
	out.positional[index] = value
	return out
}

func (a Arguments) withNamed(name string, value interface{}) Arguments {
	out := a.clone()
	if out.named == nil {
		out.named = make(map[string]interface{})
	}
	out.named[name] = value
	return out
}

func (a Arguments) clone() Arguments {
	out := Arguments{}
	if a.positional != nil {
		out.positional = make(map[int]interface{}, len(a.positional))
		for k, v := range a.positional {
			out.positional[k] = v
		}
	}
	if a.named != nil {
		out.named = make(map[string]interface{}, len(a.named))
		for k, v := range a.named {
			out.named[k] = v
		}
	}
	return out
}

// IsEmpty reports whether no argument was supplied
func (a Arguments) IsEmpty() bool {
	return len(a.positional) == 0 && len(a.named) == 0
}

// Positional returns the value supplied for the given position
func (a Arguments) Positional(index int) (interface{}, bool) {
	v, ok := a.positional[index]
	return v, ok
}

// Named returns the value supplied for the given parameter name
func (a Arguments) Named(name string) (interface{}, bool) {
	v, ok := a.named[name]
	return v, ok
}

// positionalIndexes returns the supplied positions in ascending order
func (a Arguments) positionalIndexes() []int {
	indexes := make([]int, 0, len(a.positional))
	for i := range a.positional {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	return indexes
}

// Validate rejects argument sets that mix positional and named keys
func (a Arguments) Validate() error {
	if len(a.positional) > 0 && len(a.named) > 0 {
		return NewInvalidConfig("arguments indexed both by name and by position are not allowed in the same definition").
			WithSuggestion("use either all-positional or all-named argument keys")
	}
	return nil
}

// Merge combines two argument sets by key: every key present in either set
// appears in the result, and b wins where both supply the same key. Neither
// operand is mutated.
func (a Arguments) Merge(b Arguments) Arguments {
	out := a.clone()
	for k, v := range b.positional {
		out = out.withPositional(k, v)
	}
	for k, v := range b.named {
		out = out.withNamed(k, v)
	}
	return out
}
