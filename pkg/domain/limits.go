package domain

import "time"

// Limits are the numeric bounds enforced by the validation passes.
// They are injected into the engine so deployments can tune them without a rebuild.
type Limits struct {
	// MaxBlocks is the node-count ceiling of a single flow.
	MaxBlocks int `json:"maxBlocks" yaml:"max_blocks"`
	// MaxMessageLength is the maximum number of characters of a message text.
	MaxMessageLength int `json:"maxMessageLength" yaml:"max_message_length"`
	// MinDelay is the shortest accepted delay. Shorter delays are errors.
	MinDelay time.Duration `json:"minDelay" yaml:"min_delay"`
	// MaxDelay is the longest delay accepted without a warning.
	MaxDelay time.Duration `json:"maxDelay" yaml:"max_delay"`
	// BuiltinVariables are always considered declared (e.g. contact fields injected by the runtime).
	BuiltinVariables []string `json:"builtinVariables,omitempty" yaml:"builtin_variables,omitempty"`
}

// DefaultLimits returns the production defaults.
func DefaultLimits() Limits {
	return Limits{
		MaxBlocks:        100,
		MaxMessageLength: 4096,
		MinDelay:         time.Second,
		MaxDelay:         24 * time.Hour,
	}
}

// WithDefaults fills zero-valued fields with the production defaults.
func (l Limits) WithDefaults() Limits {
	def := DefaultLimits()
	if l.MaxBlocks <= 0 {
		l.MaxBlocks = def.MaxBlocks
	}
	if l.MaxMessageLength <= 0 {
		l.MaxMessageLength = def.MaxMessageLength
	}
	if l.MinDelay <= 0 {
		l.MinDelay = def.MinDelay
	}
	if l.MaxDelay <= 0 {
		l.MaxDelay = def.MaxDelay
	}
	return l
}
