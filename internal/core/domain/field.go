package domain

// FieldRegistry lists declared custom fields. Items carry their own values
// and may hold fields that were never registered.
type FieldRegistry struct {
	names []string
	index map[string]struct{}
}

func NewFieldRegistry() *FieldRegistry {
	return &FieldRegistry{index: make(map[string]struct{})}
}

// Register declares a field. Registering an existing field is a no-op
// and returns false.
func (r *FieldRegistry) Register(name string) bool {
	if _, ok := r.index[name]; ok {
		return false
	}
	r.index[name] = struct{}{}
	r.names = append(r.names, name)
	return true
}

func (r *FieldRegistry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

func (r *FieldRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
