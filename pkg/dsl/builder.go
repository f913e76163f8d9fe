package dsl

import (
	"fmt"

	"github.com/aretw0/flowguard/pkg/adapters/memory"
	"github.com/aretw0/flowguard/pkg/domain"
)

// Builder manages the flow construction. Nodes keep their insertion order.
type Builder struct {
	id    string
	name  string
	order []string
	nodes map[string]*NodeBuilder
	edges []domain.Edge
}

// New creates a new flow builder.
func New(id string) *Builder {
	return &Builder{
		id:    id,
		nodes: make(map[string]*NodeBuilder),
	}
}

// Name sets the display name of the flow.
func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

// Add creates a new node in the flow.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID:   id,
			Data: make(map[string]any),
		},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Connect adds an edge without requiring the endpoints to exist.
func (b *Builder) Connect(from, to string) *Builder {
	b.edges = append(b.edges, domain.Edge{From: from, To: to})
	return b
}

// Build returns the flow. Empty payloads are left out.
func (b *Builder) Build() *domain.Flow {
	flow := &domain.Flow{
		ID:    b.id,
		Name:  b.name,
		Nodes: make([]domain.Node, 0, len(b.order)),
		Edges: make([]domain.Edge, len(b.edges)),
	}
	copy(flow.Edges, b.edges)

	for _, id := range b.order {
		n := b.nodes[id].node
		data := domain.CloneData(n.Data)
		if len(data) == 0 {
			data = nil
		}
		flow.Nodes = append(flow.Nodes, domain.Node{ID: n.ID, Kind: n.Kind, Data: data})
	}
	return flow
}

// Store builds the flow into a fresh in-memory store.
func (b *Builder) Store() (*memory.Store, error) {
	store, err := memory.NewFromFlows(b.Build())
	if err != nil {
		return nil, fmt.Errorf("failed to build memory store: %w", err)
	}
	return store, nil
}
