package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/flowguard/pkg/domain"
)

// Extensions recognized as flow documents, in lookup order.
var Extensions = []string{".json", ".yaml", ".yml"}

// Loader implements ports.FlowLoader over a directory of flow documents.
// Each file holds one flow; its ID defaults to the file name without extension.
type Loader struct {
	Dir string
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Load reads the document named after id.
func (l *Loader) Load(ctx context.Context, id string) (*domain.Flow, error) {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, domain.ErrFlowNotFound
	}
	for _, ext := range Extensions {
		path := filepath.Join(l.Dir, id+ext)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return ReadFlow(path)
	}
	return nil, domain.ErrFlowNotFound
}

// List returns the IDs of every flow document in the directory, sorted.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list flows: %w", err)
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !IsFlowDocument(entry.Name()) {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// IsFlowDocument reports whether the file name has a flow document extension.
func IsFlowDocument(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadFlow parses a single flow document (YAML or JSON, chosen by extension).
// Missing node or edge collections are normalized to empty ones.
func ReadFlow(path string) (*domain.Flow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrFlowNotFound
		}
		return nil, fmt.Errorf("failed to read flow: %w", err)
	}

	flow, err := DecodeFlow(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if flow.ID == "" {
		name := filepath.Base(path)
		flow.ID = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return flow, nil
}

// DecodeFlow parses a flow document. Anything but ".json" is read as YAML.
func DecodeFlow(data []byte, ext string) (*domain.Flow, error) {
	var flow domain.Flow
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &flow); err != nil {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(data, &flow); err != nil {
			return nil, err
		}
	}
	flow.Normalize()
	return &flow, nil
}
