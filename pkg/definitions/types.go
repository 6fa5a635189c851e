// Package definitions implements the resolution core of a declarative
// dependency-injection layer: object definitions (class + constructor
// arguments + property/method mutators), parameter descriptors, references
// and the argument binder that turns them into live instances by consulting
// an external container.
package definitions

// Container is the lookup service consulted for dependencies. Implementations
// own lifecycle concerns (caching, singletons, cycle detection); this package
// only issues synchronous Has/Get calls and propagates whatever they return.
//
// Get must fail with an error for which IsNotFound returns true when the id
// is unregistered. Other failures (circular references, faults while building
// a registered id) propagate unchanged through resolution.
type Container interface {
	// Has reports whether the container can provide a value for id
	Has(id string) bool

	// Get returns the value registered under id
	Get(id string) (interface{}, error)
}

// Definition describes how to obtain one value through a container.
// Resolving the same definition twice yields two independent results; no
// memoization happens inside this package.
type Definition interface {
	// Resolve produces the concrete value, recursively resolving any nested
	// definitions and references through the given container
	Resolve(container Container) (interface{}, error)
}
