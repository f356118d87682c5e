package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorsurvey/internal/model"
)

// TeamRepo stores roster teams keyed by their slug.
type TeamRepo interface {
	EnsureIndexes(ctx context.Context) error
	Upsert(ctx context.Context, team model.Team) error
	List(ctx context.Context) ([]model.Team, error)
}

type teamRepo struct {
	collection *mongo.Collection
}

func NewTeamRepo(db *mongo.Database) TeamRepo {
	return &teamRepo{
		collection: db.Collection("teams"),
	}
}

func (r *teamRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "team_key", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "team_name", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create teams indexes: %w", err)
	}
	return nil
}

// Upsert replaces the team stored under team.Key. Key must be set.
func (r *teamRepo) Upsert(ctx context.Context, team model.Team) error {
	if team.Key == "" {
		return fmt.Errorf("team %q has no key", team.Name)
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"team_key": team.Key}, team, opts)
	return err
}

func (r *teamRepo) List(ctx context.Context) ([]model.Team, error) {
	opts := options.Find().SetSort(bson.D{{Key: "team_name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []model.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}
