package validator

import (
	"fmt"

	"github.com/aretw0/flowguard/pkg/domain"
)

// StructuralPass checks node-count bounds and the unique start block.
// All checks are independent: an empty flow reports both the empty flow and the missing start.
type StructuralPass struct{}

func (StructuralPass) Name() string { return "structural" }

func (StructuralPass) Check(g *Graph, c *Collector) {
	count := len(g.Nodes())
	limits := g.Limits()

	if count == 0 {
		c.Error(domain.IssueMissingStartBlock, "",
			"flow needs at least one block",
			"add a start block to begin the flow")
	}

	if count > limits.MaxBlocks {
		c.Error(domain.IssueMaxBlocksExceeded, "",
			fmt.Sprintf("flow has %d blocks, the maximum is %d", count, limits.MaxBlocks),
			"divide into smaller flows")
	}

	starts := g.StartIDs()
	switch {
	case len(starts) == 0:
		c.Error(domain.IssueMissingStartBlock, "",
			"flow has no start block",
			"add a start block to define where the flow begins")
	case len(starts) > 1:
		c.Error(domain.IssueMissingStartBlock, starts[1],
			fmt.Sprintf("flow has %d start blocks, only one is allowed", len(starts)),
			"remove the duplicate start blocks")
	}
}
