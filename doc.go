/*
Package flowguard is a validation engine for chat automation flows.

Flows are directed graphs of typed steps (start, message, question, delay, webhook,
action, condition) authored in a visual editor and later executed against chat sessions.
Before a flow may be activated it must be checked for structural and semantic soundness:
flowguard runs a fixed set of independent passes over the graph and returns a report.

# Concept

Validation is a pure function from a Flow to a Result. The engine never mutates the graph,
never performs I/O and holds no state between runs, so one Validator can serve any number
of concurrent callers. Defects in the flow are reported, never returned as errors: an error
is only returned when the input itself violates the Flow contract (nil collections).

# Severities

  - error: the flow cannot be activated (Result.IsValid is false).
  - warning: suspicious but harmless (orphan blocks, loops, very long delays).
  - info: reserved for observational notes.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/flowguard"
		"github.com/aretw0/flowguard/pkg/domain"
	)

	func main() {
		flow := &domain.Flow{
			Nodes: []domain.Node{
				{ID: "start", Kind: domain.KindStart},
				{ID: "ask", Kind: domain.KindQuestion, Data: map[string]any{"question": "Your name?", "variableName": "name"}},
				{ID: "hello", Kind: domain.KindMessage, Data: map[string]any{"text": "Hello {{name}}"}},
			},
			Edges: []domain.Edge{{From: "start", To: "ask"}, {From: "ask", To: "hello"}},
		}

		v := flowguard.New()
		res, err := v.Validate(flow)
		if err != nil {
			log.Fatal(err)
		}

		for _, issue := range res.Errors {
			fmt.Println(issue.Kind, issue.NodeID, issue.Message)
		}
		fmt.Println("valid:", res.IsValid)
	}
*/
package flowguard
