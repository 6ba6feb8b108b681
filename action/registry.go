package action

import (
	"errors"
	"sort"
)

// ClusterExampleName is the name ClusterExample is registered under.
const ClusterExampleName = "win_cluster_example"

// Factory builds an action around a base executor.
type Factory func(base Executor) Executor

// Registry maps action names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry holding the built-in actions.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register(ClusterExampleName, func(base Executor) Executor {
		return ClusterExample{Base: base}
	})
	return r
}

// Register adds or replaces a factory.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Create builds the named action.
func (r *Registry) Create(name string, base Executor) (Executor, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, errors.New("unknown action: " + name)
	}
	return f(base), nil
}

// Names lists registered actions in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for k := range r.factories {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
