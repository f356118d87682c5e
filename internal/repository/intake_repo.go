package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorsurvey/internal/model"
)

// IntakeRepo stores client intake forms.
type IntakeRepo interface {
	EnsureIndexes(ctx context.Context) error
	Insert(ctx context.Context, form *model.IntakeForm) (string, error)
	Latest(ctx context.Context, limit int) ([]*model.IntakeForm, error)
}

type intakeRepo struct {
	collection *mongo.Collection
}

func NewIntakeRepo(db *mongo.Database) IntakeRepo {
	return &intakeRepo{
		collection: db.Collection("client_intake_forms"),
	}
}

func (r *intakeRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "company_name", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create client_intake_forms indexes: %w", err)
	}
	return nil
}

func (r *intakeRepo) Insert(ctx context.Context, form *model.IntakeForm) (string, error) {
	now := time.Now().UTC()
	form.ID = ""
	form.CreatedAt = now
	form.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, form)
	if err != nil {
		return "", err
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id %v", result.InsertedID)
	}
	form.ID = oid.Hex()
	return form.ID, nil
}

// Latest returns up to limit forms, newest first.
func (r *intakeRepo) Latest(ctx context.Context, limit int) ([]*model.IntakeForm, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	forms := []*model.IntakeForm{}
	if err := cursor.All(ctx, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}
