package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"asdscreen/internal/model"
)

// ScreeningRepo handles MongoDB operations for screening submissions
type ScreeningRepo interface {
	Create(ctx context.Context, screening *model.Screening) error
	GetByID(ctx context.Context, id string) (*model.Screening, error)
	List(ctx context.Context, limit int64) ([]*model.Screening, error)
}

type screeningRepo struct {
	collection *mongo.Collection
}

// NewScreeningRepo creates a new screening repository
func NewScreeningRepo(db *mongo.Database) ScreeningRepo {
	return &screeningRepo{
		collection: db.Collection("screenings"),
	}
}

func (r *screeningRepo) Create(ctx context.Context, screening *model.Screening) error {
	if screening.SubmittedAt.IsZero() {
		screening.SubmittedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, screening)
	return err
}

func (r *screeningRepo) GetByID(ctx context.Context, id string) (*model.Screening, error) {
	var screening model.Screening
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&screening)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &screening, nil
}

func (r *screeningRepo) List(ctx context.Context, limit int64) ([]*model.Screening, error) {
	opts := options.Find().SetSort(bson.M{"submittedAt": -1}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var screenings []*model.Screening
	if err := cursor.All(ctx, &screenings); err != nil {
		return nil, err
	}
	return screenings, nil
}
