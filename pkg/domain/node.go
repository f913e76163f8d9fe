package domain

// Node represents a step in the flow, as produced by the editor.
// The shape of Data depends on Kind; use Decode to obtain a typed Block.
type Node struct {
	ID   string         `json:"id" yaml:"id"`
	Kind string         `json:"type" yaml:"type"` // e.g., "start", "message", "question"
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// FlowStatus is the activation state of a flow, owned by the persistence layer.
type FlowStatus string

const (
	StatusDraft    FlowStatus = "draft"
	StatusActive   FlowStatus = "active"
	StatusInactive FlowStatus = "inactive"
)

// Flow is the aggregate submitted for validation: a set of nodes and a set of edges.
// Order is irrelevant to the engine, but it is preserved in the report.
type Flow struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// CheckContract reports whether the flow honors the minimal input contract of the engine.
// A nil flow or a nil collection is a caller bug, not an authoring mistake.
func (f *Flow) CheckContract() error {
	switch {
	case f == nil:
		return ErrNilFlow
	case f.Nodes == nil:
		return ErrNilNodes
	case f.Edges == nil:
		return ErrNilEdges
	}
	return nil
}

// Normalize replaces nil collections by empty ones.
// Loaders call it so that a document omitting "edges" is still a valid input.
func (f *Flow) Normalize() {
	if f.Nodes == nil {
		f.Nodes = []Node{}
	}
	if f.Edges == nil {
		f.Edges = []Edge{}
	}
}

// Clone returns a deep copy of the flow. Nested maps and slices of Node.Data are
// copied too, so the copy shares no mutable state with f.
func (f *Flow) Clone() *Flow {
	if f == nil {
		return nil
	}
	out := &Flow{ID: f.ID, Name: f.Name}
	if f.Nodes != nil {
		out.Nodes = make([]Node, len(f.Nodes))
		for i, n := range f.Nodes {
			out.Nodes[i] = Node{ID: n.ID, Kind: n.Kind, Data: CloneData(n.Data)}
		}
	}
	if f.Edges != nil {
		out.Edges = make([]Edge, len(f.Edges))
		copy(out.Edges, f.Edges)
	}
	return out
}

// CloneData deep-copies a node payload. Nil stays nil.
func CloneData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneData(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}
