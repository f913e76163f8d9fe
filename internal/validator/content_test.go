package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flowguard/pkg/domain"
)

func delay(duration any, unit string) domain.Node {
	data := map[string]any{"duration": duration}
	if unit != "" {
		data["unit"] = unit
	}
	return domain.Node{ID: "d", Kind: domain.KindDelay, Data: data}
}

func TestContentPass_Message(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantErrs int
		contains string
	}{
		{"Valid", "Olá!", 0, ""},
		{"Empty", "", 1, "empty"},
		{"Whitespace", "   \n\t", 1, "empty"},
		{"At Limit", strings.Repeat("a", 4096), 0, ""},
		{"Too Long", strings.Repeat("a", 4097), 1, "4097 characters"},
		{"Multibyte At Limit", strings.Repeat("ç", 4096), 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validate(newFlow([]domain.Node{start("start"), message("m", tt.text)}, edge("start", "m")))

			issues := ofKind(res.Errors, domain.IssueEmptyMessage)
			require.Len(t, issues, tt.wantErrs)
			if tt.wantErrs > 0 {
				assert.Contains(t, issues[0].Message, tt.contains)
				assert.Equal(t, "m", issues[0].NodeID)
			}
		})
	}
}

func TestContentPass_Delay(t *testing.T) {
	tests := []struct {
		name      string
		node      domain.Node
		wantError bool
		wantWarn  bool
	}{
		{"Zero", delay(0, ""), true, false},
		{"Negative", delay(-5, "minutes"), true, false},
		{"Fraction Below One Second", delay(0.5, "seconds"), true, false},
		{"Missing", domain.Node{ID: "d", Kind: domain.KindDelay}, true, false},
		{"Not Numeric", delay("amanhã", ""), true, false},
		{"Unknown Unit", delay(3, "weeks"), true, false},
		{"Default Seconds", delay(30, ""), false, false},
		{"Exactly One Day", delay(1, "days"), false, false},
		{"Five Days", delay(5, "days"), false, true},
		{"Numeric String", delay("90", "minutes"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := validate(newFlow([]domain.Node{start("start"), tt.node}, edge("start", "d")))

			errs := ofKind(res.Errors, domain.IssueInvalidDelay)
			warns := ofKind(res.Warnings, domain.IssueInvalidDelay)
			assert.Equal(t, tt.wantError, len(errs) == 1, "errors: %v", errs)
			assert.Equal(t, tt.wantWarn, len(warns) == 1, "warnings: %v", warns)
			assert.Equal(t, !tt.wantError, res.IsValid)
		})
	}
}

func TestContentPass_Question(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		res := validate(newFlow([]domain.Node{start("start"), question("q", "Idade?", "idade")}, edge("start", "q")))
		assert.True(t, res.IsValid)
	})

	t.Run("Empty Text And Variable", func(t *testing.T) {
		res := validate(newFlow([]domain.Node{start("start"), question("q", " ", "")}, edge("start", "q")))

		assert.Len(t, ofKind(res.Errors, domain.IssueEmptyMessage), 1)
		missing := ofKind(res.Errors, domain.IssueMissingVariable)
		require.Len(t, missing, 1)
		assert.Contains(t, missing[0].Message, "does not save the answer")
	})

	t.Run("Prompt Is Accepted", func(t *testing.T) {
		node := domain.Node{ID: "q", Kind: domain.KindQuestion, Data: map[string]any{"prompt": "Cidade?", "variableName": "cidade"}}
		res := validate(newFlow([]domain.Node{start("start"), node}, edge("start", "q")))
		assert.True(t, res.IsValid)
	})
}
