package domain

import (
	"strings"
	"unicode/utf8"
)

// Block is the typed, normalized view of a Node.
// There is one implementation per node kind; use a type switch to handle them.
type Block interface {
	// Info returns the fields shared by every kind.
	Info() BlockInfo
	// Label returns a short human-readable reference to the block.
	Label() string
	// Texts returns the text-bearing fields that may contain {{variable}} references.
	Texts() []string
	// Declarations returns the variable names this block declares, in bare form.
	Declarations() []string

	isBlock()
}

// BlockInfo holds the fields every node kind may carry.
type BlockInfo struct {
	ID   string
	Kind string
	// Name is the generic variable name written by assignment-style action nodes.
	Name string
	// Field and Value are the generic text fields of action and condition nodes.
	Field      string
	Value      string
	ActionType string

	caption string
	texts   []string
}

func (b BlockInfo) Info() BlockInfo { return b }

func (BlockInfo) isBlock() {}

// Label derives the display label from the first text-bearing field
// (message text, question text or prompt), falling back to the kind tag.
func (b BlockInfo) Label() string {
	if b.caption == "" {
		return b.Kind
	}
	return Truncate(b.caption, DefaultLabelLength)
}

// Texts returns the text-bearing fields found at ingestion, in a fixed order:
// message text, question, prompt, field, value.
func (b BlockInfo) Texts() []string {
	return b.texts
}

// Declarations returns the generic Name, if any.
func (b BlockInfo) Declarations() []string {
	if name := BareVariable(b.Name); name != "" {
		return []string{name}
	}
	return nil
}

// StartBlock is the entry point of the flow. It has no required content.
type StartBlock struct {
	BlockInfo
}

// MessageBlock sends Text to the conversation.
type MessageBlock struct {
	BlockInfo
	Text string
}

// QuestionBlock asks a question and stores the answer into Variable.
type QuestionBlock struct {
	BlockInfo
	Question string
	Prompt   string
	Variable string
}

// PromptText returns the question text, falling back to the prompt.
func (q QuestionBlock) PromptText() string {
	if strings.TrimSpace(q.Question) != "" {
		return q.Question
	}
	return q.Prompt
}

// Declarations returns the answer variable plus any generic Name.
func (q QuestionBlock) Declarations() []string {
	names := q.BlockInfo.Declarations()
	if v := BareVariable(q.Variable); v != "" {
		names = append([]string{v}, names...)
	}
	return names
}

// DelayBlock pauses the flow for Amount units of Unit.
// Amount is kept raw; Seconds performs the numeric interpretation.
type DelayBlock struct {
	BlockInfo
	Amount any
	Unit   string
}

// WebhookBlock calls an external endpoint.
// It is produced for "webhook" nodes and for any node whose actionType is "webhook".
type WebhookBlock struct {
	BlockInfo
	URL    string
	Method string
}

// ActionBlock performs a generic side-effect.
type ActionBlock struct {
	BlockInfo
}

// ConditionBlock branches the flow.
type ConditionBlock struct {
	BlockInfo
}

// UnknownBlock is a node whose kind the engine does not know.
// It still takes part in the graph and dataflow checks.
type UnknownBlock struct {
	BlockInfo
}

// BareVariable strips the {{ }} delimiters and surrounding whitespace from a variable name.
func BareVariable(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "{{") && strings.HasSuffix(name, "}}") && len(name) >= 4 {
		name = strings.TrimSpace(name[2 : len(name)-2])
	}
	return name
}

// Truncate returns the first max characters of s.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
