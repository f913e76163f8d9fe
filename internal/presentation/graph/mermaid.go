package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/flowguard/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart syntax string from a flow.
// It applies semantic styling:
// - Start: ((Circle))
// - Question: [/Parallelogram/]
// - Webhook/Action: [[Subroutine]]
// - Condition: {Rhombus}
// - Delay: {{Hexagon}}
// - Default: [Rectangle]
// Edges pointing at unknown blocks are dotted. When markers are provided, nodes with
// errors are painted red and nodes with only warnings yellow.
func GenerateMermaid(flow *domain.Flow, markers *domain.NodeMarkers) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	known := make(map[string]bool, len(flow.Nodes))
	for _, node := range flow.Nodes {
		known[node.ID] = true
	}

	for _, node := range flow.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Kind {
		case domain.KindStart:
			opener, closer = "((", "))" // Circle
		case domain.KindQuestion:
			opener, closer = "[/", "/]" // Parallelogram (Input)
		case domain.KindWebhook, domain.KindAction:
			opener, closer = "[[", "]]" // Subroutine
		case domain.KindCondition:
			opener, closer = "{", "}" // Rhombus
		case domain.KindDelay:
			opener, closer = "{{", "}}" // Hexagon
		}

		block, _ := domain.Decode(node)
		label := escapeLabel(block.Label())
		if label != node.ID && node.ID != "" {
			label = fmt.Sprintf("%s <br/> <small>%s</small>", label, escapeLabel(node.ID))
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))
	}

	var missing []string
	for _, e := range flow.Edges {
		arrow := "-->"
		if !known[e.From] || !known[e.To] {
			arrow = "-.->"
			for _, id := range []string{e.From, e.To} {
				if !known[id] {
					missing = append(missing, id)
					known[id] = true
				}
			}
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(e.From), arrow, sanitizeMermaidID(e.To)))
	}

	if len(missing) > 0 {
		sb.WriteString("\n    %% Unknown blocks\n")
		sb.WriteString("    classDef missing fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:4,color:#000;\n")
		for _, id := range missing {
			sb.WriteString(fmt.Sprintf("    class %s missing;\n", sanitizeMermaidID(id)))
		}
	}

	if markers != nil && (len(markers.ErrorNodes) > 0 || len(markers.WarningNodes) > 0) {
		sb.WriteString("\n    %% Validation Markers\n")
		// Force black text (color:#000) for high-contrast regardless of theme (Light/Dark)
		sb.WriteString("    classDef error fill:#ffcdd2,stroke:#c62828,stroke-width:3px,color:#000;\n")
		sb.WriteString("    classDef warning fill:#fff9c4,stroke:#f9a825,stroke-width:2px,color:#000;\n")

		withError := make(map[string]bool, len(markers.ErrorNodes))
		for _, id := range markers.ErrorNodes {
			withError[id] = true
			sb.WriteString(fmt.Sprintf("    class %s error;\n", sanitizeMermaidID(id)))
		}
		for _, id := range markers.WarningNodes {
			if withError[id] {
				continue // error wins
			}
			sb.WriteString(fmt.Sprintf("    class %s warning;\n", sanitizeMermaidID(id)))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	if s == "" {
		return "_"
	}
	return s
}
