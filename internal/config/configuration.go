package config

// Configuration is an ordered mapping from variable name to VariableSpec.
// Key order follows the source document; Set preserves the position of an
// existing key and appends a new one.
type Configuration struct {
	names []string
	vars  map[string]*VariableSpec
}

// New returns an empty configuration.
func New() *Configuration {
	return &Configuration{vars: make(map[string]*VariableSpec)}
}

// Len returns the number of variables.
func (c *Configuration) Len() int {
	return len(c.names)
}

// Names returns the variable names in document order. The slice is a copy.
func (c *Configuration) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Get returns the spec for name, or false if absent.
func (c *Configuration) Get(name string) (*VariableSpec, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// Has reports whether name is a key of the configuration.
func (c *Configuration) Has(name string) bool {
	_, ok := c.vars[name]
	return ok
}

// Set stores spec under name. An existing key keeps its document position;
// a new key is appended.
func (c *Configuration) Set(name string, spec *VariableSpec) {
	if _, ok := c.vars[name]; !ok {
		c.names = append(c.names, name)
	}
	c.vars[name] = spec
}

// Clone returns a deep copy: same key order, independently mutable specs.
func (c *Configuration) Clone() *Configuration {
	out := &Configuration{
		names: make([]string, len(c.names)),
		vars:  make(map[string]*VariableSpec, len(c.vars)),
	}
	copy(out.names, c.names)
	for name, spec := range c.vars {
		out.vars[name] = spec.Clone()
	}
	return out
}
