package domain

// CategorySet keeps every category seen, in first-seen order.
// Categories are never removed, even when their last item goes away.
type CategorySet struct {
	names []string
	seen  map[string]struct{}
}

func NewCategorySet() *CategorySet {
	return &CategorySet{seen: make(map[string]struct{})}
}

// Ensure adds name if absent and reports whether it was added.
func (c *CategorySet) Ensure(name string) bool {
	if _, ok := c.seen[name]; ok {
		return false
	}
	c.seen[name] = struct{}{}
	c.names = append(c.names, name)
	return true
}

func (c *CategorySet) List() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}
