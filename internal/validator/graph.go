package validator

import (
	"github.com/aretw0/flowguard/pkg/domain"
)

// Graph is the read-only view of a flow shared by every pass.
// Blocks are decoded once, when the graph is built.
type Graph struct {
	flow     *domain.Flow
	limits   domain.Limits
	blocks   []domain.Block
	index    map[string]int
	outgoing map[string][]string
	starts   []string
}

// NewGraph builds the view. The flow must have passed CheckContract.
func NewGraph(flow *domain.Flow, limits domain.Limits) *Graph {
	g := &Graph{
		flow:     flow,
		limits:   limits,
		blocks:   make([]domain.Block, 0, len(flow.Nodes)),
		index:    make(map[string]int, len(flow.Nodes)),
		outgoing: make(map[string][]string),
	}

	for i, node := range flow.Nodes {
		// Malformed payload fields are treated as absent.
		block, _ := domain.Decode(node)
		g.blocks = append(g.blocks, block)

		if _, exists := g.index[node.ID]; !exists {
			g.index[node.ID] = i
		}
		if node.Kind == domain.KindStart {
			g.starts = append(g.starts, node.ID)
		}
	}

	for _, edge := range flow.Edges {
		g.outgoing[edge.From] = append(g.outgoing[edge.From], edge.To)
	}

	return g
}

// Limits returns the bounds the passes must enforce.
func (g *Graph) Limits() domain.Limits { return g.limits }

// Nodes returns the submitted nodes, in submission order.
func (g *Graph) Nodes() []domain.Node { return g.flow.Nodes }

// Edges returns the submitted edges, in submission order.
func (g *Graph) Edges() []domain.Edge { return g.flow.Edges }

// Blocks returns the decoded blocks, aligned with Nodes.
func (g *Graph) Blocks() []domain.Block { return g.blocks }

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Block returns the decoded block for a node ID.
func (g *Graph) Block(id string) (domain.Block, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.blocks[i], true
}

// Successors returns the targets of the edges leaving id, in edge order.
// Targets are not guaranteed to exist.
func (g *Graph) Successors(id string) []string {
	return g.outgoing[id]
}

// StartIDs returns the IDs of every start node, in node order.
func (g *Graph) StartIDs() []string { return g.starts }

// Entry returns the start node used for traversal: the first one in node order.
func (g *Graph) Entry() (string, bool) {
	if len(g.starts) == 0 {
		return "", false
	}
	return g.starts[0], true
}
