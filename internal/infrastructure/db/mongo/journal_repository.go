package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lapin-reform/siteops/internal/core/domain"
)

const collectionSubmissions = "submissions"

// JournalRepository persists submission records for local audit. The sheet
// endpoint stays the system of record; this collection only answers "what
// did this process accept, and when".
type JournalRepository struct {
	col *mongo.Collection
}

func NewJournalRepository(db *mongo.Database) *JournalRepository {
	return &JournalRepository{col: db.Collection(collectionSubmissions)}
}

// Record inserts one submission record.
func (r *JournalRepository) Record(ctx context.Context, rec *domain.SubmissionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, rec)
	return err
}

// Recent returns the latest records of a kind, newest first. kind "" matches
// every kind.
func (r *JournalRepository) Recent(ctx context.Context, kind string, limit int64) ([]domain.SubmissionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if kind != "" {
		filter["kind"] = kind
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []domain.SubmissionRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// EnsureIndexes creates the indexes the journal queries rely on.
func (r *JournalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// DiscardJournal satisfies the journal port without persisting anything,
// for deployments that run without MongoDB.
type DiscardJournal struct{}

func (DiscardJournal) Record(context.Context, *domain.SubmissionRecord) error { return nil }

func (DiscardJournal) Recent(context.Context, string, int64) ([]domain.SubmissionRecord, error) {
	return nil, nil
}
