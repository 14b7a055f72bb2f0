package service

import (
	"strings"
	"testing"

	"lumensense/internal/model"
)

func TestFlattenTranscriptSingleMessage(t *testing.T) {
	got := FlattenTranscript([]model.ChatMessage{{Role: "user", Content: "hi"}})
	if got != "User: hi" {
		t.Errorf("expected %q, got %q", "User: hi", got)
	}
}

func TestFlattenTranscriptPreservesOrder(t *testing.T) {
	messages := []model.ChatMessage{
		{Role: "user", Content: "I need pricing for 50 seats"},
		{Role: "system", Content: "Our team plan starts at $10/seat"},
		{Role: "user", Content: "Can we get a demo this week?"},
	}

	got := FlattenTranscript(messages)
	lines := strings.Split(got, "\n")

	if len(lines) != len(messages) {
		t.Fatalf("expected %d lines, got %d: %q", len(messages), len(lines), got)
	}

	expected := []string{
		"User: I need pricing for 50 seats",
		"System: Our team plan starts at $10/seat",
		"User: Can we get a demo this week?",
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("line %d: expected %q, got %q", i, want, lines[i])
		}
	}
}

func TestFlattenTranscriptKeepsRoleCasingAfterFirstLetter(t *testing.T) {
	got := FlattenTranscript([]model.ChatMessage{{Role: "salesBot", Content: "hello"}})
	if got != "SalesBot: hello" {
		t.Errorf("expected %q, got %q", "SalesBot: hello", got)
	}
}

func TestFlattenTranscriptIdempotent(t *testing.T) {
	messages := []model.ChatMessage{
		{Role: "user", Content: "first"},
		{Role: "user", Content: "second"},
	}

	first := FlattenTranscript(messages)
	second := FlattenTranscript(messages)
	if first != second {
		t.Errorf("expected identical output on repeated calls, got %q then %q", first, second)
	}
}

func TestFlattenTranscriptEmpty(t *testing.T) {
	if got := FlattenTranscript(nil); got != "" {
		t.Errorf("expected empty string for no messages, got %q", got)
	}
}

func TestHasContent(t *testing.T) {
	cases := []struct {
		name     string
		messages []model.ChatMessage
		want     bool
	}{
		{"nil", nil, false},
		{"empty slice", []model.ChatMessage{}, false},
		{"whitespace only", []model.ChatMessage{{Role: "user", Content: "   \n\t"}}, false},
		{"one real message", []model.ChatMessage{{Role: "user", Content: " hi "}}, true},
		{"mixed", []model.ChatMessage{{Role: "user", Content: ""}, {Role: "user", Content: "x"}}, true},
	}

	for _, tc := range cases {
		if got := HasContent(tc.messages); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
