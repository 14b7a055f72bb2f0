package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lumensense/internal/model"
)

// AnalysisRepo persists analysis records
type AnalysisRepo interface {
	Insert(ctx context.Context, record *model.AnalysisRecord) error
	GetByID(ctx context.Context, id string) (*model.AnalysisRecord, error)
	List(ctx context.Context, limit int) ([]*model.AnalysisRecord, error)
	ListHotLeads(ctx context.Context, limit int) ([]*model.AnalysisRecord, error)
}

type analysisRepo struct {
	collection *mongo.Collection
}

// NewAnalysisRepo creates a new analysis repository
func NewAnalysisRepo(db *mongo.Database) AnalysisRepo {
	return &analysisRepo{
		collection: db.Collection("analyses"),
	}
}

func (r *analysisRepo) Insert(ctx context.Context, record *model.AnalysisRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *analysisRepo) GetByID(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	var record model.AnalysisRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *analysisRepo) List(ctx context.Context, limit int) ([]*model.AnalysisRecord, error) {
	return r.find(ctx, bson.M{}, limit)
}

func (r *analysisRepo) ListHotLeads(ctx context.Context, limit int) ([]*model.AnalysisRecord, error) {
	return r.find(ctx, bson.M{"isHotLead": true}, limit)
}

func (r *analysisRepo) find(ctx context.Context, filter bson.M, limit int) ([]*model.AnalysisRecord, error) {
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.AnalysisRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
