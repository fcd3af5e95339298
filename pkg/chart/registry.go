package chart

import (
	"fmt"
	"sort"
	"sync"
)

// IdentityName is the name under which every registry exposes the Identity action.
const IdentityName = "identity"

// Registry maps names to guards and actions so that charts can be described as data.
type Registry[D any] struct {
	mu      sync.RWMutex
	guards  map[string]Predicate[D]
	actions map[string]Action[D]
}

// NewRegistry creates a registry that already knows the identity action.
func NewRegistry[D any]() *Registry[D] {
	r := &Registry[D]{
		guards:  make(map[string]Predicate[D]),
		actions: make(map[string]Action[D]),
	}
	r.actions[IdentityName] = Identity[D]
	return r
}

// RegisterGuard adds a predicate. An existing entry with the same name is overwritten.
func (r *Registry[D]) RegisterGuard(name string, p Predicate[D]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards[name] = p
}

// RegisterAction adds an action. An existing entry with the same name is overwritten.
func (r *Registry[D]) RegisterAction(name string, a Action[D]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = a
}

// Guard looks up a predicate by name.
func (r *Registry[D]) Guard(name string) (Predicate[D], error) {
	r.mu.RLock()
	p, ok := r.guards[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("guard not found: %s", name)
	}
	return p, nil
}

// Action looks up an action by name. The empty name resolves to Identity.
func (r *Registry[D]) Action(name string) (Action[D], error) {
	if name == "" {
		name = IdentityName
	}
	r.mu.RLock()
	a, ok := r.actions[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("action not found: %s", name)
	}
	return a, nil
}

// Names lists the registered guard and action names, sorted.
func (r *Registry[D]) Names() (guards, actions []string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name := range r.guards {
		guards = append(guards, name)
	}
	for name := range r.actions {
		actions = append(actions, name)
	}
	sort.Strings(guards)
	sort.Strings(actions)
	return guards, actions
}
