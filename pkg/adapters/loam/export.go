package loam

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aretw0/loam/pkg/core"

	"github.com/aretw0/flowguard/pkg/domain"
)

// Export writes every node of flow as one document of repo, the layout Loader reads back.
// Nodes of the root flow land at the repository root, others under a directory named after the flow.
// Edges leaving unknown nodes have no document to live in and are dropped.
func Export(ctx context.Context, repo core.Repository, flow *domain.Flow, rootFlow string) error {
	if err := flow.CheckContract(); err != nil {
		return err
	}
	if flow.ID == "" {
		return fmt.Errorf("flow missing ID")
	}
	if rootFlow == "" {
		rootFlow = DefaultRootFlow
	}

	next := make(map[string][]string)
	for _, e := range flow.Edges {
		next[e.From] = append(next[e.From], e.To)
	}

	for _, node := range flow.Nodes {
		if node.ID == "" || strings.Contains(node.ID, "/") {
			return fmt.Errorf("node id %q cannot be used as a document name", node.ID)
		}

		docID := node.ID + ".md"
		if flow.ID != rootFlow {
			docID = path.Join(flow.ID, docID)
		}

		body, data := splitBody(node)
		meta := core.Metadata{
			"id":   node.ID,
			"type": node.Kind,
		}
		if targets := next[node.ID]; len(targets) > 0 {
			meta["next"] = targets
		}
		if len(data) > 0 {
			meta["data"] = data
		}

		if err := repo.Save(ctx, core.Document{ID: docID, Content: body, Metadata: meta}); err != nil {
			return fmt.Errorf("failed to save %s: %w", docID, err)
		}
	}
	return nil
}

// splitBody moves the node text to the document body when it survives trimming unchanged.
func splitBody(node domain.Node) (string, map[string]any) {
	key := domain.KeyText
	if node.Kind == domain.KindQuestion {
		key = domain.KeyQuestion
	}

	data := make(map[string]any, len(node.Data))
	for k, v := range node.Data {
		data[k] = v
	}

	s, ok := data[key].(string)
	if !ok || s == "" || s != strings.TrimSpace(s) {
		return "", data
	}
	delete(data, key)
	return s, data
}
