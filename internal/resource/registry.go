package resource

import "sort"

// Registry maps URL path segments to capability implementations. It is built
// once at startup and read-only afterwards; a lookup miss is an ordinary
// result the caller turns into a 404.
type Registry struct {
	capabilities map[string]Capability
}

func NewRegistry() *Registry {
	return &Registry{
		capabilities: make(map[string]Capability),
	}
}

// Register adds a capability under its own type name. Registering the same
// type twice replaces the earlier entry.
func (r *Registry) Register(c Capability) {
	r.capabilities[c.Type()] = c
}

// Resolve looks up the capability for a path segment.
func (r *Registry) Resolve(identifier string) (Capability, bool) {
	c, ok := r.capabilities[identifier]
	return c, ok
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.capabilities))
	for t := range r.capabilities {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
