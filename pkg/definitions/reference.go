package definitions

// Reference is an opaque marker standing for "pass the value registered
// under this id". It is never resolved eagerly; resolution happens when the
// enclosing definition is resolved.
type Reference struct {
	// ID is the lookup key of the desired service
	ID string
}

// Ref creates a reference to the service registered under id
func Ref(id string) Reference {
	return Reference{ID: id}
}

// Resolve looks the reference up in the container
func (r Reference) Resolve(container Container) (interface{}, error) {
	if container == nil {
		return nil, NewInvalidConfig("cannot resolve reference %q without a container", r.ID)
	}
	return container.Get(r.ID)
}

// resolveReference resolves a reference against the definition's attached
// reference container when one is set, the primary container otherwise. This
// lets a definition pull nested values from a module-local registry while the
// outer graph is built from the application container.
func resolveReference(ref Reference, primary, fallback Container) (interface{}, error) {
	if fallback != nil {
		return ref.Resolve(fallback)
	}
	return ref.Resolve(primary)
}
