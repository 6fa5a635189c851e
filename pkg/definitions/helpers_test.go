package definitions

// Shared fixtures for the resolution tests.

// fakeContainer is a map-backed lookup service. Ids registered via fail
// report Has() == true but error on Get, mirroring composite containers that
// discover failures only while building.
type fakeContainer struct {
	values map[string]interface{}
	errs   map[string]error
	gets   []string
}

func newFakeContainer() *fakeContainer {
	return &fakeContainer{
		values: make(map[string]interface{}),
		errs:   make(map[string]error),
	}
}

func (c *fakeContainer) set(id string, value interface{}) *fakeContainer {
	c.values[id] = value
	return c
}

func (c *fakeContainer) fail(id string, err error) *fakeContainer {
	c.errs[id] = err
	return c
}

func (c *fakeContainer) Has(id string) bool {
	if _, ok := c.values[id]; ok {
		return true
	}
	_, ok := c.errs[id]
	return ok
}

func (c *fakeContainer) Get(id string) (interface{}, error) {
	c.gets = append(c.gets, id)
	if err, ok := c.errs[id]; ok {
		return nil, err
	}
	if value, ok := c.values[id]; ok {
		return value, nil
	}
	return nil, NewNotFound(id)
}

type engine struct {
	Power int
}

func newEngine() *engine {
	return &engine{Power: 240}
}

type car struct {
	Name     string
	Version  *string
	Colors   []string
	CodeName string
	Engine   *engine
}

func newCar(name string, version *string, colors ...string) *car {
	return &car{Name: name, Version: version, Colors: colors}
}

func (c *car) SetColors(colors ...string) {
	c.Colors = colors
}

func (c *car) SetEngine(e *engine) {
	c.Engine = e
}

// WithName is fluent: it returns a modified copy that replaces the working
// instance during resolution
func (c *car) WithName(name string) *car {
	out := *c
	out.Name = name
	return &out
}

// Describe returns a value of an unrelated type; resolution must discard it
func (c *car) Describe() string {
	return c.Name
}

type garage struct {
	Engine *engine
	Label  string
}

func newGarage(e *engine) *garage {
	return &garage{Engine: e}
}

// bag exercises variadics whose element type accepts any value
type bag struct {
	Items []interface{}
}

func newBag(items ...interface{}) *bag {
	return &bag{Items: items}
}

// vehicle is produced by a constructor declared to return an interface; the
// concrete instance behind it still takes property and method mutators
type vehicle interface {
	Describe() string
}

func newVehicle() vehicle {
	return &car{Name: "falcon"}
}

// newTestRegistry registers the shared fixtures under fresh names so tests
// never depend on the package-level default registry
func newTestRegistry() TypeRegistry {
	registry := NewTypeRegistry()
	mustRegister(registry, "engine", newEngine)
	mustRegister(registry, "car", newCar,
		WithParamNames("name", "version", "colors"),
		WithDefault("version", (*string)(nil)),
		WithMethodParams("SetColors", "colors"),
	)
	mustRegister(registry, "garage", newGarage, WithParamNames("engine"))
	mustRegister(registry, "bag", newBag, WithParamNames("items"))
	return registry
}

func mustRegister(r TypeRegistry, name string, target interface{}, opts ...TypeOption) {
	if err := r.Register(name, target, opts...); err != nil {
		panic(err)
	}
}
