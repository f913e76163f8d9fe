package validator

import "github.com/aretw0/flowguard/pkg/domain"

// CyclePass warns when a loop is reachable from the start block.
// It reports existence, not enumeration: at most one issue per run.
//
// A self-loop counts as a loop. Dangling targets are skipped.
type CyclePass struct{}

func (CyclePass) Name() string { return "cycle" }

type dfsFrame struct {
	id   string
	next int
}

func (CyclePass) Check(g *Graph, c *Collector) {
	entry, ok := g.Entry()
	if !ok {
		return
	}

	onStack := map[string]bool{entry: true}
	visited := make(map[string]bool)
	stack := []dfsFrame{{id: entry}}

	// Explicit stack: depth is bounded by memory, not by the goroutine stack.
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succ := g.Successors(top.id)

		if top.next < len(succ) {
			next := succ[top.next]
			top.next++

			if !g.Has(next) || visited[next] {
				continue
			}
			if onStack[next] {
				c.Warning(domain.IssueInfiniteLoop, "",
					"flow contains a loop that may never end",
					"make sure every loop has an exit condition")
				return
			}
			onStack[next] = true
			stack = append(stack, dfsFrame{id: next})
			continue
		}

		onStack[top.id] = false
		visited[top.id] = true
		stack = stack[:len(stack)-1]
	}
}
