package loam

// NodeMetadata represents the frontmatter of a flow node document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type NodeMetadata struct {
	ID   string `json:"id" mapstructure:"id"`
	Type string `json:"type" mapstructure:"type"`

	// Next lists the successors of the node (one edge each).
	Next []string `json:"next" mapstructure:"next"`
	// To is shorthand for a single successor.
	To string `json:"to" mapstructure:"to"`

	// Data is the editor payload (text, variableName, duration, url...).
	Data map[string]any `json:"data" mapstructure:"data"`

	// Flow overrides the flow the node belongs to (defaults to its directory).
	Flow string `json:"flow" mapstructure:"flow"`
}
