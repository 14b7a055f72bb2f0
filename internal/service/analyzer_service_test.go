package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"lumensense/internal/config"
	"lumensense/internal/model"
)

func newTestAnalyzer(baseURL string) *AnalyzerService {
	return NewAnalyzerService(&config.AIConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Model:       "test-model",
		Temperature: 0.1,
		TimeoutMS:   5000,
	})
}

func completionResponse(content string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return body
}

func assertErrorProfile(t *testing.T, got model.ProfileSchema, reason string) {
	t.Helper()
	if got.AnalysisID != "error" {
		t.Errorf("expected analysis_id %q, got %q", "error", got.AnalysisID)
	}
	if got.Profile.Sentiment != "Error" || got.Profile.BuyingIntent != 0 || got.Profile.Persona != "Unknown" {
		t.Errorf("unexpected error profile fields: %+v", got.Profile)
	}
	if got.Insights.MainConcern != reason {
		t.Errorf("expected main_concern %q, got %q", reason, got.Insights.MainConcern)
	}
	if got.Insights.TacticalAdvice != "Retry request" {
		t.Errorf("expected tactical_advice %q, got %q", "Retry request", got.Insights.TacticalAdvice)
	}
	if got.IsHotLead {
		t.Error("error profile must not flag a hot lead")
	}
}

func TestAnalyzeReturnsProviderResult(t *testing.T) {
	var calls atomic.Int64
	var gotRequest map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		json.NewDecoder(r.Body).Decode(&gotRequest)

		w.Header().Set("Content-Type", "application/json")
		w.Write(completionResponse(`{"analysis_id":"a1","profile":{"sentiment":"positive","buying_intent":92,"persona":"CTO"},"insights":{"main_concern":"pricing","tactical_advice":"offer demo"},"is_hot_lead":true}`))
	}))
	defer srv.Close()

	result := newTestAnalyzer(srv.URL).Analyze(context.Background(), "User: I want to buy")

	if calls.Load() != 1 {
		t.Fatalf("expected exactly one provider call, got %d", calls.Load())
	}
	if result.AnalysisID != "a1" {
		t.Errorf("expected analysis_id a1, got %q", result.AnalysisID)
	}
	if result.Profile.Sentiment != "positive" || result.Profile.BuyingIntent != 92 || result.Profile.Persona != "CTO" {
		t.Errorf("unexpected profile: %+v", result.Profile)
	}
	if result.Insights.MainConcern != "pricing" || result.Insights.TacticalAdvice != "offer demo" {
		t.Errorf("unexpected insights: %+v", result.Insights)
	}
	if !result.IsHotLead {
		t.Error("expected is_hot_lead true")
	}

	// The provider request carries the fixed system turn and the transcript
	// as the user turn, constrained to JSON output.
	messages, ok := gotRequest["messages"].([]interface{})
	if !ok || len(messages) != 2 {
		t.Fatalf("expected 2 conversation turns, got %v", gotRequest["messages"])
	}
	system := messages[0].(map[string]interface{})
	user := messages[1].(map[string]interface{})
	if system["role"] != "system" {
		t.Errorf("expected first turn role system, got %v", system["role"])
	}
	if user["role"] != "user" || user["content"] != "User: I want to buy" {
		t.Errorf("unexpected user turn: %v", user)
	}
	rf, ok := gotRequest["response_format"].(map[string]interface{})
	if !ok || rf["type"] != "json_object" {
		t.Errorf("expected json_object response format, got %v", gotRequest["response_format"])
	}
	if temp, ok := gotRequest["temperature"].(float64); !ok || temp > 0.2 {
		t.Errorf("expected low temperature, got %v", gotRequest["temperature"])
	}
}

func TestAnalyzeEmptyTranscriptSkipsProvider(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	result := newTestAnalyzer(srv.URL).Analyze(context.Background(), "   \n\t ")

	if calls.Load() != 0 {
		t.Errorf("expected no provider call for empty transcript, got %d", calls.Load())
	}
	assertErrorProfile(t, result, "Empty input provided")
}

func TestAnalyzeNonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(completionResponse("Sure! Here is my analysis: the user seems happy."))
	}))
	defer srv.Close()

	result := newTestAnalyzer(srv.URL).Analyze(context.Background(), "User: hi")
	assertErrorProfile(t, result, "AI Processing Error")
}

func TestAnalyzeProviderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	result := newTestAnalyzer(srv.URL).Analyze(context.Background(), "User: hi")
	assertErrorProfile(t, result, "AI Processing Error")
}

func TestAnalyzeProviderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	result := newTestAnalyzer(srv.URL).Analyze(context.Background(), "User: hi")
	assertErrorProfile(t, result, "AI Processing Error")
}

func TestAnalyzeEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	result := newTestAnalyzer(srv.URL).Analyze(context.Background(), "User: hi")
	assertErrorProfile(t, result, "AI Processing Error")
}

func TestAnalyzeWithoutAPIKey(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	analyzer := NewAnalyzerService(&config.AIConfig{BaseURL: srv.URL, Model: "m", TimeoutMS: 1000})
	result := analyzer.Analyze(context.Background(), "User: hi")

	if calls.Load() != 0 {
		t.Errorf("expected no provider call without an API key, got %d", calls.Load())
	}
	assertErrorProfile(t, result, "AI Processing Error")
}
