package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flowguard/pkg/domain"
)

func TestFlow_Clone(t *testing.T) {
	original := &domain.Flow{
		ID:   "f",
		Name: "Flow",
		Nodes: []domain.Node{
			{ID: "start", Kind: domain.KindStart},
			{ID: "hook", Kind: domain.KindAction, Data: map[string]any{
				"actionType": "webhook",
				"webhook":    map[string]any{"url": "https://api.example.com"},
				"headers":    []any{map[string]any{"name": "X-Token"}},
				"tags":       []string{"vip"},
			}},
		},
		Edges: []domain.Edge{{From: "start", To: "hook"}},
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Nodes[1].Data["webhook"].(map[string]any)["url"] = "http://localhost"
	clone.Nodes[1].Data["headers"].([]any)[0].(map[string]any)["name"] = "X-Other"
	clone.Nodes[1].Data["tags"].([]string)[0] = "mutated"
	clone.Edges[0].To = "start"

	assert.Equal(t, "https://api.example.com", original.Nodes[1].Data["webhook"].(map[string]any)["url"])
	assert.Equal(t, "X-Token", original.Nodes[1].Data["headers"].([]any)[0].(map[string]any)["name"])
	assert.Equal(t, []string{"vip"}, original.Nodes[1].Data["tags"])
	assert.Equal(t, "hook", original.Edges[0].To)
}

func TestFlow_CloneKeepsNilCollections(t *testing.T) {
	var nilFlow *domain.Flow
	assert.Nil(t, nilFlow.Clone())

	clone := (&domain.Flow{ID: "x"}).Clone()
	assert.Nil(t, clone.Nodes)
	assert.Nil(t, clone.Edges)
	assert.Nil(t, domain.CloneData(nil))
}
