package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"asdscreen/internal/model"
)

// CorpusRepo handles the training corpus rows appended from live
// submissions. The curated CSV stays untouched; appended rows carry a
// provenance tag so they never blend into curated data unseen.
type CorpusRepo interface {
	Append(ctx context.Context, row *model.CorpusRow) error
	List(ctx context.Context, limit int64) ([]*model.CorpusRow, error)
	CountByProvenance(ctx context.Context, provenance string) (int64, error)
}

type corpusRepo struct {
	collection *mongo.Collection
}

// NewCorpusRepo creates a new corpus repository
func NewCorpusRepo(db *mongo.Database) CorpusRepo {
	return &corpusRepo{
		collection: db.Collection("corpus"),
	}
}

func (r *corpusRepo) Append(ctx context.Context, row *model.CorpusRow) error {
	if row.AppendedAt.IsZero() {
		row.AppendedAt = time.Now()
	}
	if row.Provenance == "" {
		row.Provenance = model.ProvenanceUserSubmitted
	}
	_, err := r.collection.InsertOne(ctx, row)
	return err
}

func (r *corpusRepo) List(ctx context.Context, limit int64) ([]*model.CorpusRow, error) {
	opts := options.Find().SetSort(bson.M{"appendedAt": -1}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []*model.CorpusRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *corpusRepo) CountByProvenance(ctx context.Context, provenance string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"provenance": provenance})
}
