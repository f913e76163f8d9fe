package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flowguard/pkg/domain"
)

func contractFlow(id string) *domain.Flow {
	return &domain.Flow{
		ID:   id,
		Name: "Contract " + id,
		Nodes: []domain.Node{
			{ID: "start", Kind: domain.KindStart},
			{ID: "hello", Kind: domain.KindMessage, Data: map[string]any{"text": "hello"}},
		},
		Edges: []domain.Edge{{From: "start", To: "hello"}},
	}
}

// RunFlowStoreContract runs a suite of tests to verify that a FlowStore implementation
// adheres to the defined interface contract.
func RunFlowStoreContract(t *testing.T, store FlowStore) {
	ctx := context.Background()
	flowID := "contract-flow-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, contractFlow(flowID)))

		loaded, err := store.Load(ctx, flowID)
		require.NoError(t, err)
		assert.Equal(t, flowID, loaded.ID)
		assert.Equal(t, "Contract "+flowID, loaded.Name)
		require.Len(t, loaded.Nodes, 2)
		assert.Equal(t, domain.KindMessage, loaded.Nodes[1].Kind)
		assert.Equal(t, "hello", loaded.Nodes[1].Data["text"])
		assert.Equal(t, []domain.Edge{{From: "start", To: "hello"}}, loaded.Edges)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, flowID)
		require.NoError(t, err)
		loaded.Nodes[0].Kind = "mutated"

		again, err := store.Load(ctx, flowID)
		require.NoError(t, err)
		assert.Equal(t, domain.KindStart, again.Nodes[0].Kind)
	})

	t.Run("Nested data is not shared", func(t *testing.T) {
		nestedID := flowID + "-nested"
		flow := contractFlow(nestedID)
		flow.Nodes = append(flow.Nodes, domain.Node{
			ID:   "hook",
			Kind: domain.KindAction,
			Data: map[string]any{
				"actionType": "webhook",
				"webhook":    map[string]any{"url": "https://api.example.com/hook"},
				"tags":       []any{"vip"},
			},
		})
		require.NoError(t, store.Save(ctx, flow))
		defer func() { _ = store.Delete(ctx, nestedID) }()

		flow.Nodes[2].Data["webhook"].(map[string]any)["url"] = "http://localhost"
		flow.Nodes[2].Data["tags"].([]any)[0] = "mutated"

		loaded, err := store.Load(ctx, nestedID)
		require.NoError(t, err)
		require.Len(t, loaded.Nodes, 3)
		webhook, ok := loaded.Nodes[2].Data["webhook"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "https://api.example.com/hook", webhook["url"])
		assert.Equal(t, []any{"vip"}, loaded.Nodes[2].Data["tags"])

		webhook["url"] = "http://10.0.0.1"
		again, err := store.Load(ctx, nestedID)
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/hook", again.Nodes[2].Data["webhook"].(map[string]any)["url"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+flowID)
		assert.ErrorIs(t, err, domain.ErrFlowNotFound)
	})

	t.Run("Status lifecycle", func(t *testing.T) {
		status, err := store.Status(ctx, flowID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDraft, status, "new flows start as draft")

		require.NoError(t, store.SetStatus(ctx, flowID, domain.StatusActive))
		require.NoError(t, store.Save(ctx, contractFlow(flowID)))

		status, err = store.Status(ctx, flowID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusActive, status, "re-saving keeps the status")

		err = store.SetStatus(ctx, "non-existent-"+flowID, domain.StatusActive)
		assert.ErrorIs(t, err, domain.ErrFlowNotFound)

		_, err = store.Status(ctx, "non-existent-"+flowID)
		assert.ErrorIs(t, err, domain.ErrFlowNotFound)
	})

	t.Run("List", func(t *testing.T) {
		id1 := flowID + "-1"
		id2 := flowID + "-2"
		require.NoError(t, store.Save(ctx, contractFlow(id2)))
		require.NoError(t, store.Save(ctx, contractFlow(id1)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
		assert.IsIncreasing(t, ids, "List must be sorted")
	})

	t.Run("Delete", func(t *testing.T) {
		// Stores that also keep reports must drop them with the flow.
		reports, keepsReports := store.(ReportStore)
		if keepsReports {
			require.NoError(t, reports.SaveReport(ctx, domain.Report{ID: "r-" + flowID, FlowID: flowID}))
		}

		require.NoError(t, store.Delete(ctx, flowID))

		_, err := store.Load(ctx, flowID)
		assert.ErrorIs(t, err, domain.ErrFlowNotFound, "Load after Delete should return ErrFlowNotFound")

		_, err = store.Status(ctx, flowID)
		assert.ErrorIs(t, err, domain.ErrFlowNotFound)

		if keepsReports {
			_, err = reports.LatestReport(ctx, flowID)
			assert.ErrorIs(t, err, domain.ErrReportNotFound, "Delete must drop the latest report")
		}
	})
}

// RunReportStoreContract verifies that a ReportStore keeps the latest report per flow.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	flowID := "contract-report-" + time.Now().Format("20060102150405")

	t.Run("Missing", func(t *testing.T) {
		_, err := store.LatestReport(ctx, flowID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Latest wins", func(t *testing.T) {
		checked := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		first := domain.Report{
			ID:        "r1",
			FlowID:    flowID,
			CheckedAt: checked,
			Result: domain.Result{
				Errors:   []domain.Issue{{Kind: domain.IssueEmptyMessage, Severity: domain.SeverityError, Message: "message is empty", NodeID: "m1"}},
				Warnings: []domain.Issue{},
				Infos:    []domain.Issue{},
			},
		}
		second := domain.Report{
			ID:        "r2",
			FlowID:    flowID,
			CheckedAt: checked.Add(time.Minute),
			Result:    domain.Result{IsValid: true, Errors: []domain.Issue{}, Warnings: []domain.Issue{}, Infos: []domain.Issue{}},
		}

		require.NoError(t, store.SaveReport(ctx, first))
		loaded, err := store.LatestReport(ctx, flowID)
		require.NoError(t, err)
		assert.Equal(t, "r1", loaded.ID)
		assert.False(t, loaded.Result.IsValid)
		require.Len(t, loaded.Result.Errors, 1)
		assert.Equal(t, "m1", loaded.Result.Errors[0].NodeID)
		assert.True(t, checked.Equal(loaded.CheckedAt))

		require.NoError(t, store.SaveReport(ctx, second))
		loaded, err = store.LatestReport(ctx, flowID)
		require.NoError(t, err)
		assert.Equal(t, "r2", loaded.ID)
		assert.True(t, loaded.Result.IsValid)
	})
}
