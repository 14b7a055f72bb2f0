package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lumensense/internal/model"
)

const recentHotLeadsMax = 100

// AnalysisCache handles Redis operations for analysis results
type AnalysisCache interface {
	SetResult(ctx context.Context, record *model.AnalysisRecord) error
	GetResult(ctx context.Context, id string) (*model.AnalysisRecord, error)
	PushHotLead(ctx context.Context, record *model.AnalysisRecord) error
	RecentHotLeads(ctx context.Context, limit int) ([]*model.AnalysisRecord, error)
}

type analysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalysisCache creates a new analysis cache
func NewAnalysisCache(client *redis.Client) AnalysisCache {
	return &analysisCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *analysisCache) resultKey(id string) string {
	return fmt.Sprintf("analysis:%s", id)
}

func (c *analysisCache) hotLeadsKey() string {
	return "leads:recent"
}

func (c *analysisCache) SetResult(ctx context.Context, record *model.AnalysisRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.resultKey(record.ID), data, c.ttl).Err()
}

func (c *analysisCache) GetResult(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	data, err := c.client.Get(ctx, c.resultKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var record model.AnalysisRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *analysisCache) PushHotLead(ctx context.Context, record *model.AnalysisRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, c.hotLeadsKey(), data)
	pipe.LTrim(ctx, c.hotLeadsKey(), 0, recentHotLeadsMax-1)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *analysisCache) RecentHotLeads(ctx context.Context, limit int) ([]*model.AnalysisRecord, error) {
	if limit <= 0 || limit > recentHotLeadsMax {
		limit = recentHotLeadsMax
	}
	items, err := c.client.LRange(ctx, c.hotLeadsKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.AnalysisRecord, 0, len(items))
	for _, item := range items {
		var record model.AnalysisRecord
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			continue
		}
		records = append(records, &record)
	}
	return records, nil
}
