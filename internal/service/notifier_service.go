package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"lumensense/internal/model"
)

const transcriptExcerptLimit = 400

// NotifierService dispatches hot lead alerts to a chat-ops webhook.
// It is fire-and-forget: failures are logged and swallowed, never retried,
// and never visible to the request that triggered them.
type NotifierService struct {
	webhookURL   string
	dashboardURL string
	client       *http.Client
}

// NewNotifierService creates a new notifier service. An empty webhookURL
// disables dispatch.
func NewNotifierService(webhookURL, dashboardURL string) *NotifierService {
	return &NotifierService{
		webhookURL:   webhookURL,
		dashboardURL: dashboardURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Notify posts a hot lead alert for the given result. Void by design: nothing
// downstream consumes an outcome from this call.
func (s *NotifierService) Notify(result model.ProfileSchema, transcript string) {
	if s.webhookURL == "" {
		log.Println("notifier: webhook not configured, skipping hot lead alert")
		return
	}

	payload := s.buildAlertPayload(result, transcript)
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notifier: failed to marshal alert payload: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", s.webhookURL, bytes.NewBuffer(body))
	if err != nil {
		log.Printf("notifier: failed to build webhook request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("notifier: webhook dispatch failed: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("notifier: webhook returned status %d", resp.StatusCode)
		return
	}

	log.Printf("notifier: hot lead alert dispatched (persona=%s, intent=%d)",
		result.Profile.Persona, result.Profile.BuyingIntent)
}

// buildAlertPayload constructs the Slack block payload for a hot lead
func (s *NotifierService) buildAlertPayload(result model.ProfileSchema, transcript string) map[string]interface{} {
	excerpt := transcript
	if len(excerpt) > transcriptExcerptLimit {
		excerpt = excerpt[:transcriptExcerptLimit] + "..."
	}

	return map[string]interface{}{
		"blocks": []interface{}{
			map[string]interface{}{
				"type": "header",
				"text": map[string]string{
					"type": "plain_text",
					"text": "Hot Lead Detected",
				},
			},
			map[string]interface{}{
				"type": "section",
				"fields": []map[string]string{
					{"type": "mrkdwn", "text": "*Persona:*\n" + orNA(result.Profile.Persona)},
					{"type": "mrkdwn", "text": fmt.Sprintf("*Buying Intent:*\n%d/100", result.Profile.BuyingIntent)},
				},
			},
			map[string]interface{}{
				"type": "section",
				"text": map[string]string{
					"type": "mrkdwn",
					"text": "*Main Concern:* " + orNA(result.Insights.MainConcern),
				},
			},
			map[string]interface{}{
				"type": "section",
				"text": map[string]string{
					"type": "mrkdwn",
					"text": "> " + excerpt,
				},
			},
			map[string]interface{}{
				"type": "actions",
				"elements": []map[string]interface{}{
					{
						"type": "button",
						"text": map[string]string{
							"type": "plain_text",
							"text": "Open Dashboard",
						},
						"url": s.dashboardURL,
					},
				},
			},
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
