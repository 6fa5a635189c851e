package definitions

// ValueDefinition wraps a literal so that plain values can be stored wherever
// a Definition is expected. Resolution returns the value untouched.
type ValueDefinition struct {
	value interface{}
}

// Value creates a definition that resolves to v as-is
func Value(v interface{}) ValueDefinition {
	return ValueDefinition{value: v}
}

// Resolve returns the wrapped value
func (d ValueDefinition) Resolve(Container) (interface{}, error) {
	return d.value, nil
}

// resolveValue turns a supplied argument or mutator value into its runtime
// form: references are looked up (honoring the definition's reference
// container), nested definitions are resolved against the enclosing
// definition's type registry, and slices and string-keyed maps are walked
// recursively. Anything else passes through unchanged.
func resolveValue(v interface{}, primary, refContainer Container, registry TypeRegistry) (interface{}, error) {
	switch t := v.(type) {
	case Reference:
		return resolveReference(t, primary, refContainer)
	case *ObjectDefinition:
		if t.registry == nil && registry != nil {
			return t.WithTypeRegistry(registry).Resolve(primary)
		}
		return t.Resolve(primary)
	case Definition:
		return t.Resolve(primary)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, elem := range t {
			resolved, err := resolveValue(elem, primary, refContainer, registry)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for key, elem := range t {
			resolved, err := resolveValue(elem, primary, refContainer, registry)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}
