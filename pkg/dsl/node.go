package dsl

import "github.com/aretw0/flowguard/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Start marks the node as the entry point of the flow.
func (n *NodeBuilder) Start() *NodeBuilder {
	n.node.Kind = domain.KindStart
	return n
}

// Message marks the node as a message block with the given text.
func (n *NodeBuilder) Message(text string) *NodeBuilder {
	n.node.Kind = domain.KindMessage
	n.node.Data[domain.KeyText] = text
	return n
}

// Question marks the node as a question block.
func (n *NodeBuilder) Question(text string) *NodeBuilder {
	n.node.Kind = domain.KindQuestion
	n.node.Data[domain.KeyQuestion] = text
	return n
}

// SaveTo specifies the variable the answer is saved to.
func (n *NodeBuilder) SaveTo(variable string) *NodeBuilder {
	n.node.Data[domain.KeyVariableName] = variable
	return n
}

// Delay marks the node as a delay block. Amount may be a number or a numeric string.
func (n *NodeBuilder) Delay(amount any, unit string) *NodeBuilder {
	n.node.Kind = domain.KindDelay
	n.node.Data[domain.KeyDuration] = amount
	if unit != "" {
		n.node.Data[domain.KeyUnit] = unit
	}
	return n
}

// Webhook marks the node as a webhook block calling url.
func (n *NodeBuilder) Webhook(url string) *NodeBuilder {
	n.node.Kind = domain.KindWebhook
	n.node.Data[domain.KeyURL] = url
	return n
}

// Action marks the node as an action block that declares name (e.g. a contact field).
func (n *NodeBuilder) Action(name string) *NodeBuilder {
	n.node.Kind = domain.KindAction
	if name != "" {
		n.node.Data[domain.KeyName] = name
	}
	return n
}

// Condition marks the node as a condition block comparing field with value.
func (n *NodeBuilder) Condition(field string, value any) *NodeBuilder {
	n.node.Kind = domain.KindCondition
	n.node.Data[domain.KeyField] = field
	n.node.Data[domain.KeyValue] = value
	return n
}

// Kind sets an arbitrary block type (e.g. one the engine does not know yet).
func (n *NodeBuilder) Kind(kind string) *NodeBuilder {
	n.node.Kind = kind
	return n
}

// Set writes a raw payload field.
func (n *NodeBuilder) Set(key string, value any) *NodeBuilder {
	n.node.Data[key] = value
	return n
}

// Go adds an edge from this node to each target.
func (n *NodeBuilder) Go(targets ...string) *NodeBuilder {
	for _, to := range targets {
		n.builder.Connect(n.node.ID, to)
	}
	return n
}
