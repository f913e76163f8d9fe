package validator_test

import (
	"fmt"

	"github.com/aretw0/flowguard/internal/validator"
	"github.com/aretw0/flowguard/pkg/domain"
)

func newFlow(nodes []domain.Node, edges ...domain.Edge) *domain.Flow {
	if nodes == nil {
		nodes = []domain.Node{}
	}
	if edges == nil {
		edges = []domain.Edge{}
	}
	return &domain.Flow{ID: "test", Nodes: nodes, Edges: edges}
}

func start(id string) domain.Node {
	return domain.Node{ID: id, Kind: domain.KindStart}
}

func message(id, text string) domain.Node {
	return domain.Node{ID: id, Kind: domain.KindMessage, Data: map[string]any{"text": text}}
}

func question(id, text, variable string) domain.Node {
	return domain.Node{ID: id, Kind: domain.KindQuestion, Data: map[string]any{"question": text, "variableName": variable}}
}

func edge(from, to string) domain.Edge {
	return domain.Edge{From: from, To: to}
}

// chain connects the given node IDs in sequence.
func chain(ids ...string) []domain.Edge {
	edges := make([]domain.Edge, 0, len(ids))
	for i := 1; i < len(ids); i++ {
		edges = append(edges, edge(ids[i-1], ids[i]))
	}
	return edges
}

func manyMessages(n int) []domain.Node {
	nodes := []domain.Node{start("start")}
	for i := 1; i < n; i++ {
		nodes = append(nodes, message(fmt.Sprintf("m%d", i), "hello"))
	}
	return nodes
}

func validate(flow *domain.Flow) domain.Result {
	res, err := validator.New(domain.DefaultLimits()).Validate(flow)
	if err != nil {
		panic(err)
	}
	return res
}

func kinds(issues []domain.Issue) []domain.IssueKind {
	out := make([]domain.IssueKind, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Kind)
	}
	return out
}

func ofKind(issues []domain.Issue, kind domain.IssueKind) []domain.Issue {
	var out []domain.Issue
	for _, i := range issues {
		if i.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}
