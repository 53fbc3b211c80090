package spotlight

// Metadata is an insertion-ordered attribute map produced by parsing mdls
// output. Values are one of string, int64, float64, bool, time.Time,
// []string, or nil; a failed coercion is stored as nil, never omitted.
type Metadata struct {
	names  []string
	values map[string]any
}

func newMetadata() *Metadata {
	return &Metadata{
		values: make(map[string]any),
	}
}

func (m *Metadata) set(name string, value any) {
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}

	m.values[name] = value
}

// Get returns the value for an attribute and whether it was present.
func (m *Metadata) Get(name string) (any, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Names returns the attribute names in the order mdls printed them.
func (m *Metadata) Names() []string {
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

func (m *Metadata) Len() int {
	return len(m.names)
}

// Map returns a copy of the attribute map, losing order.
func (m *Metadata) Map() map[string]any {
	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
