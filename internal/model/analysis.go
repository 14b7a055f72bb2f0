package model

import "time"

// ChatMessage is a single role-tagged turn of a conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnalyzeRequest is the request body for POST /api/analyze
type AnalyzeRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// LeadProfile holds the psychological read of the conversation
type LeadProfile struct {
	Sentiment    string `json:"sentiment" bson:"sentiment"`
	BuyingIntent int    `json:"buying_intent" bson:"buyingIntent"` // 0-100
	Persona      string `json:"persona" bson:"persona"`
}

// LeadInsights holds the actionable takeaways for the operator
type LeadInsights struct {
	MainConcern    string `json:"main_concern" bson:"mainConcern"`
	TacticalAdvice string `json:"tactical_advice" bson:"tacticalAdvice"`
}

// ProfileSchema is the structured analysis result. The analyzer always
// produces one of these, substituting ErrorProfile on any failure, so
// downstream consumers never see a partial or absent result.
type ProfileSchema struct {
	AnalysisID string       `json:"analysis_id" bson:"analysisId"`
	Profile    LeadProfile  `json:"profile" bson:"profile"`
	Insights   LeadInsights `json:"insights" bson:"insights"`
	IsHotLead  bool         `json:"is_hot_lead" bson:"isHotLead"`
}

// ErrorProfile returns the fixed fallback result used whenever
// classification cannot be completed
func ErrorProfile(reason string) ProfileSchema {
	return ProfileSchema{
		AnalysisID: "error",
		Profile: LeadProfile{
			Sentiment:    "Error",
			BuyingIntent: 0,
			Persona:      "Unknown",
		},
		Insights: LeadInsights{
			MainConcern:    reason,
			TacticalAdvice: "Retry request",
		},
		IsHotLead: false,
	}
}

// AnalysisRecord is the persisted envelope around an analysis result
type AnalysisRecord struct {
	ID         string        `json:"id" bson:"_id"`
	Transcript string        `json:"transcript" bson:"transcript"`
	Result     ProfileSchema `json:"result" bson:"result"`
	IsHotLead  bool          `json:"isHotLead" bson:"isHotLead"`
	CreatedAt  time.Time     `json:"createdAt" bson:"createdAt"`
}
