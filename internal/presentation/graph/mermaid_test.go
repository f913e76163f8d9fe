package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/flowguard/internal/presentation/graph"
	"github.com/aretw0/flowguard/pkg/domain"
)

func TestGenerateMermaid_Shapes(t *testing.T) {
	flow := &domain.Flow{
		Nodes: []domain.Node{
			{ID: "start", Kind: domain.KindStart},
			{ID: "q1", Kind: domain.KindQuestion, Data: map[string]any{"question": "Seu \"nome\"?"}},
			{ID: "hook", Kind: domain.KindWebhook},
			{ID: "if", Kind: domain.KindCondition},
			{ID: "wait", Kind: domain.KindDelay},
			{ID: "path/to-msg.md", Kind: domain.KindMessage, Data: map[string]any{"text": "Olá"}},
		},
		Edges: []domain.Edge{},
	}

	out := graph.GenerateMermaid(flow, nil)

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	for _, want := range []string{
		`start(("start"))`,
		`q1[/"Seu 'nome'? <br/> <small>q1</small>"/]`,
		`hook[["webhook <br/> <small>hook</small>"]]`,
		`if{"condition <br/> <small>if</small>"}`,
		`wait{{"delay <br/> <small>wait</small>"}}`,
		`path_to_msg_md["Olá <br/> <small>path/to-msg.md</small>"]`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_EdgesAndUnknownBlocks(t *testing.T) {
	flow := &domain.Flow{
		Nodes: []domain.Node{
			{ID: "start", Kind: domain.KindStart},
			{ID: "end", Kind: domain.KindMessage, Data: map[string]any{"text": "bye"}},
		},
		Edges: []domain.Edge{
			{From: "start", To: "end"},
			{From: "end", To: "ghost"},
		},
	}

	out := graph.GenerateMermaid(flow, nil)

	assert.Contains(t, out, "    start --> end\n")
	assert.Contains(t, out, "    end -.-> ghost\n")
	assert.Contains(t, out, "class ghost missing;")
	assert.Equal(t, 1, strings.Count(out, "class ghost missing;"))
}

func TestGenerateMermaid_Markers(t *testing.T) {
	flow := &domain.Flow{
		Nodes: []domain.Node{
			{ID: "a", Kind: domain.KindMessage},
			{ID: "b", Kind: domain.KindMessage},
			{ID: "c", Kind: domain.KindMessage},
		},
		Edges: []domain.Edge{},
	}
	markers := &domain.NodeMarkers{
		ErrorNodes:   []string{"a", "c"},
		WarningNodes: []string{"b", "c"},
	}

	out := graph.GenerateMermaid(flow, markers)

	assert.Contains(t, out, "classDef error")
	assert.Contains(t, out, "class a error;")
	assert.Contains(t, out, "class b warning;")
	assert.Contains(t, out, "class c error;")
	assert.NotContains(t, out, "class c warning;", "error marker wins")
}
