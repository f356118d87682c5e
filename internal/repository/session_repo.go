package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorsurvey/internal/model"
	"mentorsurvey/internal/persist"
)

const ttlIndexName = "ttl_in_progress_sessions"

type sessionRepo struct {
	collection *mongo.Collection
	ttl        time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// NewSessionRepo mirrors sessions into the survey_sessions collection.
// In-progress documents idle for longer than ttl are removed by a TTL index.
func NewSessionRepo(db *mongo.Database, ttl time.Duration, logger *slog.Logger) persist.SessionMirror {
	return &sessionRepo{
		collection: db.Collection("survey_sessions"),
		ttl:        ttl,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (r *sessionRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "team_key", Value: 1}, {Key: "submitted_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "updated_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create survey_sessions indexes: %w", err)
	}
	return r.ensureTTLIndex(ctx)
}

type indexSpec struct {
	Name                    string   `bson:"name"`
	ExpireAfterSeconds      *int64   `bson:"expireAfterSeconds"`
	PartialFilterExpression bson.Raw `bson:"partialFilterExpression"`
}

// ensureTTLIndex creates the TTL index, or drops and recreates it when the
// stored expiry or filter no longer match.
func (r *sessionRepo) ensureTTLIndex(ctx context.Context) error {
	want := int64(r.ttl / time.Second)

	cur, err := r.collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("list indexes: %w", err)
	}
	var specs []indexSpec
	if err := cur.All(ctx, &specs); err != nil {
		return fmt.Errorf("decode indexes: %w", err)
	}

	for _, spec := range specs {
		if spec.Name != ttlIndexName {
			continue
		}
		if spec.ExpireAfterSeconds != nil && *spec.ExpireAfterSeconds == want && inProgressFilter(spec.PartialFilterExpression) {
			return nil
		}
		r.logger.Info("replacing ttl index",
			"index", ttlIndexName,
			"expire_after_seconds", want)
		if _, err := r.collection.Indexes().DropOne(ctx, ttlIndexName); err != nil {
			return fmt.Errorf("drop ttl index: %w", err)
		}
		break
	}

	_, err = r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().
			SetName(ttlIndexName).
			SetExpireAfterSeconds(int32(want)).
			SetPartialFilterExpression(bson.M{"status": model.SessionInProgress}),
	})
	if err != nil {
		return fmt.Errorf("create ttl index: %w", err)
	}
	return nil
}

func inProgressFilter(raw bson.Raw) bool {
	if len(raw) == 0 {
		return false
	}
	elems, err := raw.Elements()
	if err != nil || len(elems) != 1 {
		return false
	}
	status, ok := raw.Lookup("status").StringValueOK()
	return ok && status == string(model.SessionInProgress)
}

func (r *sessionRepo) CreateSession(ctx context.Context, doc *model.SessionDocument) error {
	now := r.now()
	update := bson.M{"$setOnInsert": bson.M{
		"session_id":          doc.SessionID,
		"status":              model.SessionInProgress,
		"cursor":              doc.Cursor,
		"created_at":          now,
		"updated_at":          now,
		"submitted_at":        nil,
		"answers":             bson.M{},
		"plan":                doc.Plan,
		"team_key":            nil,
		"team_name":           nil,
		"mentor_name_roster":  nil,
		"mentor_name_entered": nil,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"session_id": doc.SessionID}, update, options.Update().SetUpsert(true))
	return err
}

func (r *sessionRepo) SaveIntro(ctx context.Context, rec model.IntroRecord) error {
	now := r.now()
	update := bson.M{
		"$set": bson.M{
			"team_key":           rec.TeamKey,
			"team_name":          rec.TeamName,
			"mentor_name_roster": rec.MentorNameRoster,
			"members":            rec.Members,
			"answers.intro":      rec.IntroAnswers,
			"plan":               rec.Plan,
			"cursor":             rec.Cursor,
			"updated_at":         now,
		},
		"$setOnInsert": bson.M{
			"status":     model.SessionInProgress,
			"created_at": now,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"session_id": rec.SessionID}, update, options.Update().SetUpsert(true))
	return err
}

func (r *sessionRepo) SaveAnswers(ctx context.Context, w model.AnswerWrite) error {
	now := r.now()
	field := "answers." + strings.Join(w.Path, ".")
	set := bson.M{
		field:        w.Answers,
		"cursor":     w.Cursor,
		"updated_at": now,
	}
	if w.MentorNameEntered != "" {
		set["mentor_name_entered"] = w.MentorNameEntered
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"status":     model.SessionInProgress,
			"created_at": now,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"session_id": w.SessionID}, update, options.Update().SetUpsert(true))
	return err
}

func (r *sessionRepo) MarkComplete(ctx context.Context, sessionID string, cursor int) error {
	update := bson.M{"$set": bson.M{
		"status":     model.SessionComplete,
		"cursor":     cursor,
		"updated_at": r.now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"session_id": sessionID}, update, options.Update().SetUpsert(true))
	return err
}

func (r *sessionRepo) MarkSubmitted(ctx context.Context, sessionID string) error {
	now := r.now()
	update := bson.M{"$set": bson.M{
		"status":       model.SessionSubmitted,
		"submitted_at": now,
		"updated_at":   now,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"session_id": sessionID}, update, options.Update().SetUpsert(true))
	return err
}

func (r *sessionRepo) GetByID(ctx context.Context, sessionID string) (*model.SessionDocument, error) {
	var doc model.SessionDocument
	err := r.collection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", persist.ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *sessionRepo) ListSubmittedByTeam(ctx context.Context, teamKey string, limit int) ([]model.SessionDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.collection.Find(ctx, bson.M{
		"team_key": teamKey,
		"status":   model.SessionSubmitted,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []model.SessionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
