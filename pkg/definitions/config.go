package definitions

import (
	"sort"
	"strconv"

	"github.com/sankaest/yii3-definitions/internal/defkey"
)

// ConfigEntry is one key/value pair of a declarative definition. Mutator
// order is semantically significant, so order-sensitive sources should hand
// over entries rather than a Go map.
type ConfigEntry struct {
	Key   string
	Value interface{}
}

// FromConfig builds a definition from a declarative map: the reserved "class"
// key names the target, "__construct()" holds constructor arguments, "$name"
// keys assign properties and "name()" keys call methods. Go maps are
// unordered, so mutators are applied in sorted key order; use
// FromConfigEntries when authored order matters.
func FromConfig(config map[string]interface{}) (*ObjectDefinition, error) {
	entries := make([]ConfigEntry, 0, len(config))
	for key, value := range config {
		entries = append(entries, ConfigEntry{Key: key, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return FromConfigEntries(entries)
}

// FromConfigEntries builds a definition from ordered declarative entries
func FromConfigEntries(entries []ConfigEntry) (*ObjectDefinition, error) {
	def := NewObjectDefinition("")
	for _, entry := range entries {
		key, err := defkey.Parse(entry.Key)
		if err != nil {
			return nil, NewInvalidConfig("%v", err).WithCause(err)
		}

		switch key.Kind {
		case defkey.ClassKey:
			name, ok := entry.Value.(string)
			if !ok {
				return nil, NewInvalidConfig("the \"class\" key must hold a class name string, got %T", entry.Value)
			}
			clone := def.clone()
			clone.className = name
			def = clone
		case defkey.ConstructorKey:
			args, err := parseArguments(entry.Value)
			if err != nil {
				return nil, err
			}
			def = def.WithArguments(args)
		case defkey.PropertyKey:
			value, err := parseConfigValue(entry.Value)
			if err != nil {
				return nil, err
			}
			def = def.WithProperty(key.Name, value)
		case defkey.MethodKey:
			args, err := parseArguments(entry.Value)
			if err != nil {
				return nil, err
			}
			def = def.WithMethodCall(key.Name, args)
		}
	}

	if def.ClassName() == "" {
		return nil, NewInvalidConfig("definition is missing the required \"class\" key").
			WithSuggestion("add a \"class\" entry naming a registered class")
	}
	return def, nil
}

// parseArguments interprets a constructor or method argument container: a
// slice is positional; a map is positional when every key is an integer (or a
// digit string, as YAML delivers them) and named otherwise. Mixed key kinds
// survive parsing and are rejected when the definition is resolved.
func parseArguments(raw interface{}) (Arguments, error) {
	switch t := raw.(type) {
	case nil:
		return NewArguments(), nil
	case []interface{}:
		args := NewArguments()
		for i, v := range t {
			value, err := parseConfigValue(v)
			if err != nil {
				return Arguments{}, err
			}
			args = args.withPositional(i, value)
		}
		return args, nil
	case map[string]interface{}:
		args := NewArguments()
		for key, v := range t {
			value, err := parseConfigValue(v)
			if err != nil {
				return Arguments{}, err
			}
			if index, err := strconv.Atoi(key); err == nil {
				args = args.withPositional(index, value)
			} else {
				args = args.withNamed(key, value)
			}
		}
		return args, nil
	case map[interface{}]interface{}:
		args := NewArguments()
		for key, v := range t {
			value, err := parseConfigValue(v)
			if err != nil {
				return Arguments{}, err
			}
			switch k := key.(type) {
			case int:
				args = args.withPositional(k, value)
			case string:
				if index, err := strconv.Atoi(k); err == nil {
					args = args.withPositional(index, value)
				} else {
					args = args.withNamed(k, value)
				}
			default:
				return Arguments{}, NewInvalidConfig("argument keys must be integers or strings, got %T", key)
			}
		}
		return args, nil
	default:
		return Arguments{}, NewInvalidConfig("arguments must be a list or a map, got %T", raw)
	}
}

// parseConfigValue interprets one declarative value. Maps carrying a "class"
// key become nested definitions; slices and maps are walked recursively;
// everything else stays a literal.
func parseConfigValue(raw interface{}) (interface{}, error) {
	switch t := raw.(type) {
	case map[string]interface{}:
		if _, ok := t["class"]; ok {
			return FromConfig(t)
		}
		out := make(map[string]interface{}, len(t))
		for key, v := range t {
			value, err := parseConfigValue(v)
			if err != nil {
				return nil, err
			}
			out[key] = value
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, v := range t {
			value, err := parseConfigValue(v)
			if err != nil {
				return nil, err
			}
			out[i] = value
		}
		return out, nil
	default:
		return raw, nil
	}
}
