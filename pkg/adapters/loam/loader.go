package loam

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"

	"github.com/aretw0/flowguard/pkg/domain"
)

// DefaultRootFlow is the flow ID of documents stored at the repository root.
const DefaultRootFlow = "main"

// Loader adapts a Loam repository to the FlowLoader interface.
//
// Each document is one node. Nodes are grouped into flows by directory:
// "support/start.md" is node "start" of flow "support". The markdown body
// becomes the node text (or the question, for question nodes).
type Loader struct {
	Repo     *loam.TypedRepository[NodeMetadata]
	RootFlow string
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[NodeMetadata]) *Loader {
	return &Loader{
		Repo:     repo,
		RootFlow: DefaultRootFlow,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Loader, error) {
	repo, err := loam.Init(dir, loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("failed to open loam repository %s: %w", dir, err)
	}
	return New(loam.NewTypedRepository[NodeMetadata](repo)), nil
}

type located struct {
	flowID string
	node   domain.Node
	next   []string
	source string
}

// Load assembles the flow from every document that belongs to it.
func (l *Loader) Load(ctx context.Context, id string) (*domain.Flow, error) {
	docs, err := l.collect(ctx)
	if err != nil {
		return nil, err
	}

	flow := &domain.Flow{ID: id, Name: id}
	flow.Normalize()

	seen := make(map[string]string)
	for _, d := range docs {
		if d.flowID != id {
			continue
		}
		// Collision Detection
		if existing, ok := seen[d.node.ID]; ok {
			return nil, fmt.Errorf("collision detected: node '%s' is defined in both '%s' and '%s'", d.node.ID, existing, d.source)
		}
		seen[d.node.ID] = d.source

		flow.Nodes = append(flow.Nodes, d.node)
		for _, to := range d.next {
			flow.Edges = append(flow.Edges, domain.Edge{From: d.node.ID, To: to})
		}
	}

	if len(flow.Nodes) == 0 {
		return nil, domain.ErrFlowNotFound
	}
	return flow, nil
}

// List returns the IDs of every flow present in the repository.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.collect(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, d := range docs {
		if !seen[d.flowID] {
			seen[d.flowID] = true
			ids = append(ids, d.flowID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (l *Loader) collect(ctx context.Context) ([]located, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	out := make([]located, 0, len(docs))
	for _, doc := range docs {
		out = append(out, l.toNode(doc.ID, doc.Data, doc.Content))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].source < out[j].source })
	return out, nil
}

func (l *Loader) toNode(docID string, meta NodeMetadata, content string) located {
	source := filepath.ToSlash(docID)
	dir := path.Dir(source)

	flowID := meta.Flow
	if flowID == "" {
		flowID = dir
		if dir == "." || dir == "" {
			flowID = l.rootFlow()
		}
	}

	rawID := meta.ID
	if rawID == "" {
		rawID = path.Base(source)
	}
	nodeID := trimExtension(path.Base(filepath.ToSlash(rawID)))

	data := make(map[string]any, len(meta.Data)+1)
	for k, v := range meta.Data {
		data[k] = v
	}
	if body := strings.TrimSpace(content); body != "" {
		key := domain.KeyText
		if meta.Type == domain.KindQuestion {
			key = domain.KeyQuestion
		}
		if _, ok := data[key]; !ok {
			data[key] = body
		}
	}

	next := make([]string, 0, len(meta.Next)+1)
	for _, n := range meta.Next {
		if n = trimExtension(strings.TrimSpace(n)); n != "" {
			next = append(next, n)
		}
	}
	if to := trimExtension(strings.TrimSpace(meta.To)); to != "" {
		next = append(next, to)
	}

	return located{
		flowID: flowID,
		node:   domain.Node{ID: nodeID, Kind: meta.Type, Data: data},
		next:   next,
		source: source,
	}
}

func (l *Loader) rootFlow() string {
	if l.RootFlow == "" {
		return DefaultRootFlow
	}
	return l.RootFlow
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch emits the ID of every changed document until ctx is canceled.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
