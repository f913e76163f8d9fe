package validator

import (
	"fmt"

	"github.com/aretw0/flowguard/pkg/domain"
)

// ReachabilityPass warns about blocks that no connection references.
// The start block is exempt: a single-block flow is valid.
type ReachabilityPass struct{}

func (ReachabilityPass) Name() string { return "reachability" }

func (ReachabilityPass) Check(g *Graph, c *Collector) {
	connected := make(map[string]bool, len(g.Edges())*2)
	for _, edge := range g.Edges() {
		connected[edge.From] = true
		connected[edge.To] = true
	}

	for _, block := range g.Blocks() {
		info := block.Info()
		if info.Kind == domain.KindStart || connected[info.ID] {
			continue
		}
		c.Warning(domain.IssueOrphanBlock, info.ID,
			fmt.Sprintf("block %q is not connected to the flow", block.Label()),
			"connect the block or remove it")
	}
}
