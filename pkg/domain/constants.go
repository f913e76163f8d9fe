package domain

// Node kind constants define the behavior of a step in the flow.
const (
	// KindStart marks the single entry point of a flow.
	KindStart = "start"
	// KindMessage sends a text message to the conversation.
	KindMessage = "message"
	// KindQuestion asks a question and stores the answer in a variable.
	KindQuestion = "question"
	// KindDelay pauses the flow for a given duration.
	KindDelay = "delay"
	// KindWebhook calls an external HTTP endpoint.
	KindWebhook = "webhook"
	// KindAction performs a generic side-effect (set variable, tag contact, webhook...).
	KindAction = "action"
	// KindCondition branches the flow.
	KindCondition = "condition"
)

// ActionTypeWebhook is the actionType value that turns an action node into a webhook call.
const ActionTypeWebhook = "webhook"

// Payload keys read from Node.Data.
// Several keys are accepted for the same concept because the editor has shipped
// more than one shape over time; Decode normalizes them.
const (
	KeyText           = "text"
	KeyMessage        = "message"
	KeyContent        = "content"
	KeyQuestion       = "question"
	KeyPrompt         = "prompt"
	KeyVariableName   = "variableName"
	KeySaveToVariable = "saveToVariable"
	KeyName           = "name"
	KeyField          = "field"
	KeyValue          = "value"
	KeyDuration       = "duration"
	KeyDelay          = "delay"
	KeyUnit           = "unit"
	KeyURL            = "url"
	KeyWebhook        = "webhook"
	KeyActionType     = "actionType"
)

// DefaultLabelLength is the number of characters kept when deriving a display label.
const DefaultLabelLength = 30
