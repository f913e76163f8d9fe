package domain

import (
	"strings"

	"github.com/mitchellh/mapstructure"
)

// payload is the union of every field the editor may put in Node.Data.
// It uses "mapstructure" tags to match the editor's camelCase keys.
type payload struct {
	Text           string `mapstructure:"text"`
	Message        string `mapstructure:"message"`
	Content        string `mapstructure:"content"`
	Question       string `mapstructure:"question"`
	Prompt         string `mapstructure:"prompt"`
	VariableName   string `mapstructure:"variableName"`
	SaveToVariable string `mapstructure:"saveToVariable"`
	Name           string `mapstructure:"name"`
	Field          string `mapstructure:"field"`
	Value          any    `mapstructure:"value"`
	Duration       any    `mapstructure:"duration"`
	Delay          any    `mapstructure:"delay"`
	Unit           string `mapstructure:"unit"`
	URL            string `mapstructure:"url"`
	Method         string `mapstructure:"method"`
	ActionType     string `mapstructure:"actionType"`

	Webhook *webhookPayload `mapstructure:"webhook"`
}

type webhookPayload struct {
	URL    string `mapstructure:"url"`
	Method string `mapstructure:"method"`
}

// Decode normalizes a Node into its typed Block.
//
// Alternate field names are resolved here, once:
//   - message text: text, message, content
//   - question text: question, prompt
//   - answer variable: variableName, saveToVariable
//   - delay amount: duration, delay, value
//   - webhook URL: url, webhook.url
//
// Fields whose value has an unexpected shape are treated as absent; the returned
// error describes them, but the Block is always usable.
func Decode(n Node) (Block, error) {
	var p payload
	err := decodePayload(n.Data, &p)

	info := BlockInfo{
		ID:         n.ID,
		Kind:       n.Kind,
		Name:       p.Name,
		Field:      p.Field,
		Value:      stringValue(p.Value),
		ActionType: p.ActionType,
	}

	text := firstNonBlank(p.Text, p.Message, p.Content)
	info.caption = strings.TrimSpace(firstNonBlank(text, p.Question, p.Prompt))
	info.texts = nonBlank(text, p.Question, p.Prompt, info.Field, info.Value)

	if n.Kind == KindWebhook || p.ActionType == ActionTypeWebhook {
		url, method := p.URL, p.Method
		if p.Webhook != nil {
			url = firstNonBlank(url, p.Webhook.URL)
			method = firstNonBlank(method, p.Webhook.Method)
		}
		return WebhookBlock{BlockInfo: info, URL: url, Method: method}, err
	}

	switch n.Kind {
	case KindStart:
		return StartBlock{BlockInfo: info}, err
	case KindMessage:
		return MessageBlock{BlockInfo: info, Text: text}, err
	case KindQuestion:
		return QuestionBlock{
			BlockInfo: info,
			Question:  p.Question,
			Prompt:    p.Prompt,
			Variable:  firstNonBlank(p.VariableName, p.SaveToVariable),
		}, err
	case KindDelay:
		amount := p.Duration
		if amount == nil {
			amount = p.Delay
		}
		if amount == nil {
			amount = p.Value
		}
		return DelayBlock{BlockInfo: info, Amount: amount, Unit: p.Unit}, err
	case KindAction:
		return ActionBlock{BlockInfo: info}, err
	case KindCondition:
		return ConditionBlock{BlockInfo: info}, err
	default:
		return UnknownBlock{BlockInfo: info}, err
	}
}

func decodePayload(data map[string]any, out *payload) error {
	if len(data) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func nonBlank(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
