package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aretw0/flowguard/pkg/domain"
)

// ContentPass applies the per-kind content rules.
type ContentPass struct{}

func (ContentPass) Name() string { return "content" }

func (ContentPass) Check(g *Graph, c *Collector) {
	limits := g.Limits()

	for _, block := range g.Blocks() {
		switch b := block.(type) {
		case domain.MessageBlock:
			checkMessage(b, limits, c)
		case domain.DelayBlock:
			checkDelay(b, limits, c)
		case domain.QuestionBlock:
			checkQuestion(b, c)
		case domain.StartBlock, domain.WebhookBlock, domain.ActionBlock,
			domain.ConditionBlock, domain.UnknownBlock:
			// No content rules; webhooks are covered by WebhookPass.
		}
	}
}

func checkMessage(b domain.MessageBlock, limits domain.Limits, c *Collector) {
	if strings.TrimSpace(b.Text) == "" {
		c.Error(domain.IssueEmptyMessage, b.ID,
			"message text is empty",
			"write the text that will be sent")
		return
	}

	if n := utf8.RuneCountInString(b.Text); n > limits.MaxMessageLength {
		c.Error(domain.IssueEmptyMessage, b.ID,
			fmt.Sprintf("message has %d characters, the maximum is %d", n, limits.MaxMessageLength),
			"split the text into several messages")
	}
}

func checkDelay(b domain.DelayBlock, limits domain.Limits, c *Collector) {
	secs, err := b.Seconds()
	if err != nil {
		msg := "delay duration is invalid"
		switch {
		case errors.Is(err, domain.ErrDelayMissing):
			msg = "delay duration is missing"
		case errors.Is(err, domain.ErrDelayUnit):
			msg = fmt.Sprintf("delay unit %q is not supported", b.Unit)
		}
		c.Error(domain.IssueInvalidDelay, b.ID, msg,
			"use a positive number of seconds, minutes, hours or days")
		return
	}

	if secs < limits.MinDelay.Seconds() {
		c.Error(domain.IssueInvalidDelay, b.ID,
			fmt.Sprintf("delay must be at least %s", limits.MinDelay),
			"use a positive number of seconds, minutes, hours or days")
		return
	}

	if secs > limits.MaxDelay.Seconds() {
		c.Warning(domain.IssueInvalidDelay, b.ID,
			fmt.Sprintf("delay of %s is longer than %s", time.Duration(secs*float64(time.Second)), limits.MaxDelay),
			"check if such a long pause is intended")
	}
}

func checkQuestion(b domain.QuestionBlock, c *Collector) {
	if strings.TrimSpace(b.PromptText()) == "" {
		c.Error(domain.IssueEmptyMessage, b.ID,
			"question text is empty",
			"write the question that will be asked")
	}

	if domain.BareVariable(b.Variable) == "" {
		c.Error(domain.IssueMissingVariable, b.ID,
			"question does not save the answer to a variable",
			"choose a variable name to store the answer")
	}
}
