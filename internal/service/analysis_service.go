package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"lumensense/internal/cache"
	"lumensense/internal/model"
	"lumensense/internal/repository"
)

// ErrEmptyTranscript is returned when a request carries no analyzable content
var ErrEmptyTranscript = errors.New("transcript is empty")

// Analyzer produces a ProfileSchema from a flattened transcript
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) model.ProfileSchema
}

// Notifier dispatches a hot lead alert
type Notifier interface {
	Notify(result model.ProfileSchema, transcript string)
}

// AnalysisService runs the request-to-result pipeline: validate, flatten,
// classify, persist, then triage hot leads
type AnalysisService struct {
	analyzer    Analyzer
	notifier    Notifier
	repo        repository.AnalysisRepo
	cache       cache.AnalysisCache
	broadcaster Broadcaster
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(analyzer Analyzer, notifier Notifier, repo repository.AnalysisRepo, analysisCache cache.AnalysisCache) *AnalysisService {
	return &AnalysisService{
		analyzer: analyzer,
		notifier: notifier,
		repo:     repo,
		cache:    analysisCache,
	}
}

// SetBroadcaster injects the live-feed broadcaster
func (s *AnalysisService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Process analyzes a conversation and schedules hot lead follow-up.
// The classification call is the only blocking step; notification runs in a
// detached goroutine after the result is formed. Persistence failures are
// logged and do not fail the request.
func (s *AnalysisService) Process(ctx context.Context, messages []model.ChatMessage) (model.ProfileSchema, error) {
	if !HasContent(messages) {
		return model.ProfileSchema{}, ErrEmptyTranscript
	}

	transcript := FlattenTranscript(messages)
	result := s.analyzer.Analyze(ctx, transcript)

	record := &model.AnalysisRecord{
		ID:         uuid.New().String(),
		Transcript: transcript,
		Result:     result,
		IsHotLead:  result.IsHotLead,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Insert(ctx, record); err != nil {
		log.Printf("analysis: failed to persist record %s: %v", record.ID, err)
	}
	if err := s.cache.SetResult(ctx, record); err != nil {
		log.Printf("analysis: failed to cache record %s: %v", record.ID, err)
	}

	if result.IsHotLead {
		if err := s.cache.PushHotLead(ctx, record); err != nil {
			log.Printf("analysis: failed to track hot lead %s: %v", record.ID, err)
		}
		if s.broadcaster != nil {
			s.broadcaster.BroadcastHotLead(record)
		}
		go s.notifier.Notify(result, transcript)
	}

	return result, nil
}

// GetAnalysis fetches a stored record, trying the cache before Mongo.
// Returns nil when no record exists.
func (s *AnalysisService) GetAnalysis(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	record, err := s.cache.GetResult(ctx, id)
	if err != nil {
		log.Printf("analysis: cache lookup failed for %s: %v", id, err)
	}
	if record != nil {
		return record, nil
	}
	return s.repo.GetByID(ctx, id)
}

// ListAnalyses returns the most recent records, newest first
func (s *AnalysisService) ListAnalyses(ctx context.Context, limit int) ([]*model.AnalysisRecord, error) {
	return s.repo.List(ctx, limit)
}

// RecentHotLeads returns the most recently flagged hot leads
func (s *AnalysisService) RecentHotLeads(ctx context.Context, limit int) ([]*model.AnalysisRecord, error) {
	return s.cache.RecentHotLeads(ctx, limit)
}
