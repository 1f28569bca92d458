package gamedata

// Registry holds loaded definitions and provides lookup by id.
type Registry[T any] struct {
	byID map[string]*T
	all  []T
}

// NewRegistry creates a registry from loaded definitions. Later entries with
// a duplicate id shadow earlier ones.
func NewRegistry[T any](items []T, id func(*T) string) *Registry[T] {
	registry := &Registry[T]{
		byID: make(map[string]*T, len(items)),
		all:  items,
	}
	for i := range items {
		registry.byID[id(&items[i])] = &items[i]
	}
	return registry
}

// GetByID returns the definition with the given id, or nil if not found.
func (r *Registry[T]) GetByID(id string) *T {
	if r == nil {
		return nil
	}
	return r.byID[id]
}

// All returns all definitions.
func (r *Registry[T]) All() []T {
	if r == nil {
		return nil
	}
	return r.all
}

// Count returns the number of definitions in the registry.
func (r *Registry[T]) Count() int {
	if r == nil {
		return 0
	}
	return len(r.all)
}
