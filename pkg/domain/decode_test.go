package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flowguard/pkg/domain"
)

func TestDecode_Kinds(t *testing.T) {
	tests := []struct {
		name string
		node domain.Node
		want any
	}{
		{"Start", domain.Node{ID: "s", Kind: domain.KindStart}, domain.StartBlock{}},
		{"Message", domain.Node{ID: "m", Kind: domain.KindMessage, Data: map[string]any{"text": "hi"}}, domain.MessageBlock{}},
		{"Question", domain.Node{ID: "q", Kind: domain.KindQuestion}, domain.QuestionBlock{}},
		{"Delay", domain.Node{ID: "d", Kind: domain.KindDelay}, domain.DelayBlock{}},
		{"Webhook", domain.Node{ID: "w", Kind: domain.KindWebhook}, domain.WebhookBlock{}},
		{"Action Webhook", domain.Node{ID: "a", Kind: domain.KindAction, Data: map[string]any{"actionType": "webhook"}}, domain.WebhookBlock{}},
		{"Action", domain.Node{ID: "a", Kind: domain.KindAction}, domain.ActionBlock{}},
		{"Condition", domain.Node{ID: "c", Kind: domain.KindCondition}, domain.ConditionBlock{}},
		{"Unknown", domain.Node{ID: "x", Kind: "carousel"}, domain.UnknownBlock{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, err := domain.Decode(tt.node)
			require.NoError(t, err)
			assert.IsType(t, tt.want, block)
			assert.Equal(t, tt.node.ID, block.Info().ID)
			assert.Equal(t, tt.node.Kind, block.Info().Kind)
		})
	}
}

func TestDecode_AlternateFieldNames(t *testing.T) {
	t.Run("Message Content Key", func(t *testing.T) {
		block, err := domain.Decode(domain.Node{ID: "m", Kind: domain.KindMessage, Data: map[string]any{"content": "Olá"}})
		require.NoError(t, err)
		assert.Equal(t, "Olá", block.(domain.MessageBlock).Text)
	})

	t.Run("Question Prompt And SaveToVariable", func(t *testing.T) {
		block, err := domain.Decode(domain.Node{ID: "q", Kind: domain.KindQuestion, Data: map[string]any{
			"prompt":         "Qual seu nome?",
			"saveToVariable": "{{nome}}",
		}})
		require.NoError(t, err)
		q := block.(domain.QuestionBlock)
		assert.Equal(t, "Qual seu nome?", q.PromptText())
		assert.Equal(t, []string{"nome"}, q.Declarations())
	})

	t.Run("Nested Webhook URL", func(t *testing.T) {
		block, err := domain.Decode(domain.Node{ID: "a", Kind: domain.KindAction, Data: map[string]any{
			"actionType": "webhook",
			"webhook":    map[string]any{"url": "https://api.example.com/hook", "method": "POST"},
		}})
		require.NoError(t, err)
		w := block.(domain.WebhookBlock)
		assert.Equal(t, "https://api.example.com/hook", w.URL)
		assert.Equal(t, "POST", w.Method)
	})

	t.Run("Delay Amount Fallbacks", func(t *testing.T) {
		block, err := domain.Decode(domain.Node{ID: "d", Kind: domain.KindDelay, Data: map[string]any{"delay": json.Number("5"), "unit": "minutes"}})
		require.NoError(t, err)
		secs, err := block.(domain.DelayBlock).Seconds()
		require.NoError(t, err)
		assert.Equal(t, 300.0, secs)
	})
}

func TestDecode_MalformedFieldIsReportedButTolerated(t *testing.T) {
	block, err := domain.Decode(domain.Node{ID: "m", Kind: domain.KindMessage, Data: map[string]any{
		"text": map[string]any{"nested": true},
		"name": "saudacao",
	}})
	assert.Error(t, err)
	require.NotNil(t, block)
	assert.Equal(t, "", block.(domain.MessageBlock).Text)
	assert.Equal(t, []string{"saudacao"}, block.Declarations())
}

func TestBlock_Label(t *testing.T) {
	long := "Esta é uma mensagem bem longa que passa de trinta caracteres"

	tests := []struct {
		name string
		node domain.Node
		want string
	}{
		{"Message Text Truncated", domain.Node{Kind: domain.KindMessage, Data: map[string]any{"text": long}}, domain.Truncate(long, 30)},
		{"Question Text", domain.Node{Kind: domain.KindQuestion, Data: map[string]any{"question": "Idade?"}}, "Idade?"},
		{"Prompt Fallback", domain.Node{Kind: domain.KindAction, Data: map[string]any{"prompt": "Confirme"}}, "Confirme"},
		{"Kind Fallback", domain.Node{Kind: domain.KindDelay, Data: map[string]any{"duration": 5}}, "delay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, _ := domain.Decode(tt.node)
			assert.Equal(t, tt.want, block.Label())
		})
	}
	assert.Len(t, []rune(domain.Truncate(long, 30)), 30)
}

func TestBlock_Texts(t *testing.T) {
	block, err := domain.Decode(domain.Node{Kind: domain.KindAction, Data: map[string]any{
		"field": "{{email}}",
		"value": "{{nome}} <{{email}}>",
		"name":  "contato",
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"{{email}}", "{{nome}} <{{email}}>"}, block.Texts())
	assert.Equal(t, []string{"contato"}, block.Declarations())
}

func TestBareVariable(t *testing.T) {
	assert.Equal(t, "foo", domain.BareVariable("foo"))
	assert.Equal(t, "foo", domain.BareVariable("{{foo}}"))
	assert.Equal(t, "foo", domain.BareVariable("  {{ foo }} "))
	assert.Equal(t, "", domain.BareVariable("{{}}"))
	assert.Equal(t, "{{foo", domain.BareVariable("{{foo"))
}
