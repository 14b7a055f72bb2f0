package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"lumensense/internal/config"
	"lumensense/internal/model"
)

// systemPrompt is the fixed instruction for the classification model. It is
// never influenced by user input; the transcript travels as a separate turn.
const systemPrompt = `You are the core intelligence engine for LumenSense.
Analyze the provided chat transcript and extract the psychological subtext:
the speaker's sentiment, how strong their buying intent is, and what kind of
buyer they are.

OUTPUT RULES:
- Return ONLY a single valid JSON object.
- No markdown, no commentary, no conversational filler.
- If the transcript is empty or nonsensical, return a neutral profile with
  buying_intent 0, persona "Unknown" and is_hot_lead false.

JSON SCHEMA:
{
  "analysis_id": "string",
  "profile": {
    "sentiment": "string",
    "buying_intent": number (0-100),
    "persona": "string"
  },
  "insights": {
    "main_concern": "string",
    "tactical_advice": "string"
  },
  "is_hot_lead": boolean
}`

// AnalyzerService turns a flattened transcript into a ProfileSchema by
// calling the Groq chat completions API
type AnalyzerService struct {
	config *config.AIConfig
	client *http.Client
}

// NewAnalyzerService creates a new analyzer service
func NewAnalyzerService(cfg *config.AIConfig) *AnalyzerService {
	return &AnalyzerService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Analyze classifies a transcript. It never returns an error: every failure
// path resolves to the fixed error profile so callers and the notifier never
// handle an absent or partial result.
func (s *AnalyzerService) Analyze(ctx context.Context, transcript string) model.ProfileSchema {
	if strings.TrimSpace(transcript) == "" {
		return model.ErrorProfile("Empty input provided")
	}

	if !s.config.IsEnabled() {
		log.Println("analyzer: GROQ_API_KEY not set, returning error profile")
		return model.ErrorProfile("AI Processing Error")
	}

	raw, err := s.callGroq(ctx, transcript)
	if err != nil {
		log.Printf("analyzer: classification call failed: %v", err)
		return model.ErrorProfile("AI Processing Error")
	}

	var result model.ProfileSchema
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Printf("analyzer: malformed classification response: %v", err)
		return model.ErrorProfile("AI Processing Error")
	}

	return result
}

// callGroq makes a single chat completions request and returns the model's
// text output
func (s *AnalyzerService) callGroq(ctx context.Context, transcript string) (string, error) {
	reqBody := map[string]interface{}{
		"model": s.config.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": transcript},
		},
		"response_format": map[string]string{"type": "json_object"},
		"temperature":     s.config.Temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.ChatCompletionsEndpoint(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq api returned status %d", resp.StatusCode)
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &completion); err != nil {
		return "", err
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}

	return completion.Choices[0].Message.Content, nil
}
