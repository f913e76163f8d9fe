package validator

import (
	"net/url"
	"strings"

	"github.com/aretw0/flowguard/pkg/domain"
)

// WebhookPass checks the target URL of webhook blocks.
// It never resolves names nor opens connections.
type WebhookPass struct{}

func (WebhookPass) Name() string { return "webhook" }

func (WebhookPass) Check(g *Graph, c *Collector) {
	for _, block := range g.Blocks() {
		if w, ok := block.(domain.WebhookBlock); ok {
			checkWebhookURL(w.ID, w.URL, c)
		}
	}
}

func checkWebhookURL(nodeID, raw string, c *Collector) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		c.Error(domain.IssueInvalidWebhook, nodeID,
			"webhook URL is missing",
			"inform the endpoint that will receive the call")
		return
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		c.Error(domain.IssueInvalidWebhook, nodeID,
			"webhook URL is invalid",
			"check URL format")
		return
	}

	if u.Scheme != "https" {
		c.Error(domain.IssueInvalidWebhook, nodeID,
			"webhook URL must use HTTPS",
			"change the URL to start with https://")
	}

	if IsPrivateHost(u.Hostname()) {
		c.Error(domain.IssueInvalidWebhook, nodeID,
			"webhook URL points to a private or local address",
			"use a publicly reachable endpoint")
	}
}
