package toolset

import (
	"fmt"
	"strings"
	"sync"
)

// Registered pairs a descriptor with the module it was registered under.
type Registered struct {
	Descriptor Descriptor
	ModuleName string
	Flags      ModuleFlags
}

// Registry holds all registered tool modules. Tool names must be unique
// across every module the registry sees; collisions fail at registration
// time so a misconfigured tool set never reaches the dispatch path.
type Registry struct {
	mu      sync.RWMutex
	modules []Module
	byName  map[string]Registered
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Registered),
	}
}

// Add registers a module and all of its descriptors. It fails on empty or
// duplicate tool names and on descriptors without a handler.
func (r *Registry) Add(module Module) error {
	if strings.TrimSpace(module.Name) == "" {
		return fmt.Errorf("toolset: module name is empty")
	}
	if len(module.Tools) == 0 {
		return fmt.Errorf("toolset: module %q declares no tools", module.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.modules {
		if existing.Name == module.Name {
			return fmt.Errorf("toolset: module %q is already registered", module.Name)
		}
	}

	incoming := make(map[string]struct{}, len(module.Tools))
	for _, descriptor := range module.Tools {
		name := strings.TrimSpace(descriptor.Name)
		if name == "" {
			return fmt.Errorf("toolset: module %q declares a tool with an empty name", module.Name)
		}
		if descriptor.Handler == nil {
			return fmt.Errorf("toolset: tool %q in module %q has no handler", name, module.Name)
		}
		if _, dup := incoming[name]; dup {
			return fmt.Errorf("toolset: tool name %q declared twice in module %q", name, module.Name)
		}
		incoming[name] = struct{}{}
		if existing, ok := r.byName[name]; ok {
			return fmt.Errorf("toolset: tool name %q in module %q collides with module %q",
				name, module.Name, existing.ModuleName)
		}
	}

	r.modules = append(r.modules, module)
	for _, descriptor := range module.Tools {
		r.byName[descriptor.Name] = Registered{
			Descriptor: descriptor,
			ModuleName: module.Name,
			Flags:      module.Flags,
		}
		r.order = append(r.order, descriptor.Name)
	}
	return nil
}

// Lookup returns the registered tool for name.
func (r *Registry) Lookup(name string) (Registered, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	registered, ok := r.byName[name]
	return registered, ok
}

// Modules returns registered modules in registration order.
func (r *Registry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// Descriptors returns every registered tool in registration order.
func (r *Registry) Descriptors() []Registered {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Registered, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
