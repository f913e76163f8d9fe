package validator

import (
	"fmt"

	"github.com/aretw0/flowguard/pkg/domain"
)

// ConnectionPass reports connections whose endpoints do not exist, and self-loops.
// A single edge may produce several errors.
type ConnectionPass struct{}

func (ConnectionPass) Name() string { return "connection" }

func (ConnectionPass) Check(g *Graph, c *Collector) {
	for _, edge := range g.Edges() {
		if !g.Has(edge.From) {
			c.Error(domain.IssueInvalidConnection, "",
				fmt.Sprintf("connection starts at unknown block %q", edge.From),
				"remove the connection or restore the block")
		}
		if !g.Has(edge.To) {
			c.Error(domain.IssueInvalidConnection, "",
				fmt.Sprintf("connection points to unknown block %q", edge.To),
				"remove the connection or restore the block")
		}
		if edge.From == edge.To {
			c.Error(domain.IssueInvalidConnection, edge.From,
				fmt.Sprintf("block %q is connected to itself", edge.From),
				"connect the block to a different block")
		}
	}
}
