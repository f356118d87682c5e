package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentorsurvey/internal/model"
	"mentorsurvey/internal/persist"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS survey_sessions (
	session_id          TEXT PRIMARY KEY,
	status              TEXT NOT NULL DEFAULT 'IN_PROGRESS',
	plan_cursor         INTEGER NOT NULL DEFAULT 0,
	created_at          TIMESTAMPTZ NOT NULL,
	updated_at          TIMESTAMPTZ NOT NULL,
	submitted_at        TIMESTAMPTZ,
	team_key            TEXT,
	team_name           TEXT,
	mentor_name_roster  TEXT,
	mentor_name_entered TEXT,
	members             JSONB NOT NULL DEFAULT '[]',
	plan                JSONB NOT NULL DEFAULT '[]',
	answers             JSONB NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS survey_sessions_team_submitted_idx ON survey_sessions (team_key, submitted_at DESC);
CREATE INDEX IF NOT EXISTS survey_sessions_status_updated_idx ON survey_sessions (status, updated_at DESC);
`

// ensureRow inserts an empty in-progress row unless one exists.
const ensureRow = `
INSERT INTO survey_sessions (session_id, created_at, updated_at)
VALUES ($1, $2, $2)
ON CONFLICT (session_id) DO NOTHING`

const selectSession = `
SELECT session_id, status, plan_cursor, created_at, updated_at, submitted_at,
	COALESCE(team_key, ''), COALESCE(team_name, ''),
	COALESCE(mentor_name_roster, ''), COALESCE(mentor_name_entered, ''),
	members, plan, answers
FROM survey_sessions`

// PostgresSessionRepo mirrors sessions into a relational table with JSONB
// answers. Idle in-progress rows are removed by RemoveIdleBefore.
type PostgresSessionRepo struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewPostgresSessionRepo(pool *pgxpool.Pool) *PostgresSessionRepo {
	return &PostgresSessionRepo{
		pool: pool,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

var _ persist.SessionMirror = (*PostgresSessionRepo)(nil)

func (r *PostgresSessionRepo) EnsureIndexes(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create survey_sessions schema: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepo) CreateSession(ctx context.Context, doc *model.SessionDocument) error {
	now := r.now()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO survey_sessions (session_id, status, plan_cursor, created_at, updated_at, plan)
		VALUES ($1, $2, $3, $4, $4, $5)
		ON CONFLICT (session_id) DO NOTHING`,
		doc.SessionID, string(model.SessionInProgress), doc.Cursor, now, planOrEmpty(doc.Plan))
	if err != nil {
		return fmt.Errorf("create session %s: %w", doc.SessionID, err)
	}
	return nil
}

func (r *PostgresSessionRepo) SaveIntro(ctx context.Context, rec model.IntroRecord) error {
	now := r.now()
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, ensureRow, rec.SessionID, now); err != nil {
			return err
		}
		members := rec.Members
		if members == nil {
			members = []model.Member{}
		}
		_, err := tx.Exec(ctx, `
			UPDATE survey_sessions SET
				team_key = $2,
				team_name = $3,
				mentor_name_roster = $4,
				members = $5,
				plan = $6,
				answers = jsonb_set(answers, '{intro}', $7::jsonb),
				plan_cursor = $8,
				updated_at = $9
			WHERE session_id = $1`,
			rec.SessionID, rec.TeamKey, rec.TeamName, rec.MentorNameRoster,
			members, planOrEmpty(rec.Plan), answersOrEmpty(rec.IntroAnswers), rec.Cursor, now)
		if err != nil {
			return fmt.Errorf("save intro %s: %w", rec.SessionID, err)
		}
		return nil
	})
}

// SaveAnswers writes w.Answers at w.Path inside the answers column. The
// parent object of a nested path is created when missing.
func (r *PostgresSessionRepo) SaveAnswers(ctx context.Context, w model.AnswerWrite) error {
	if len(w.Path) == 0 || len(w.Path) > 2 {
		return fmt.Errorf("unsupported answers path %v", w.Path)
	}
	now := r.now()
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, ensureRow, w.SessionID, now); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			UPDATE survey_sessions SET
				answers = jsonb_set(
					jsonb_set(answers, ARRAY[$2::text], COALESCE(answers -> $2::text, '{}'::jsonb)),
					$3::text[], $4::jsonb),
				plan_cursor = $5,
				mentor_name_entered = COALESCE(NULLIF($6, ''), mentor_name_entered),
				updated_at = $7
			WHERE session_id = $1`,
			w.SessionID, w.Path[0], w.Path, answersOrEmpty(w.Answers), w.Cursor, w.MentorNameEntered, now)
		if err != nil {
			return fmt.Errorf("save answers %s: %w", w.SessionID, err)
		}
		return nil
	})
}

func (r *PostgresSessionRepo) MarkComplete(ctx context.Context, sessionID string, cursor int) error {
	now := r.now()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO survey_sessions (session_id, status, plan_cursor, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (session_id) DO UPDATE SET
			status = EXCLUDED.status,
			plan_cursor = EXCLUDED.plan_cursor,
			updated_at = EXCLUDED.updated_at`,
		sessionID, string(model.SessionComplete), cursor, now)
	if err != nil {
		return fmt.Errorf("mark complete %s: %w", sessionID, err)
	}
	return nil
}

func (r *PostgresSessionRepo) MarkSubmitted(ctx context.Context, sessionID string) error {
	now := r.now()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO survey_sessions (session_id, status, created_at, updated_at, submitted_at)
		VALUES ($1, $2, $3, $3, $3)
		ON CONFLICT (session_id) DO UPDATE SET
			status = EXCLUDED.status,
			submitted_at = EXCLUDED.submitted_at,
			updated_at = EXCLUDED.updated_at`,
		sessionID, string(model.SessionSubmitted), now)
	if err != nil {
		return fmt.Errorf("mark submitted %s: %w", sessionID, err)
	}
	return nil
}

func (r *PostgresSessionRepo) GetByID(ctx context.Context, sessionID string) (*model.SessionDocument, error) {
	row := r.pool.QueryRow(ctx, selectSession+` WHERE session_id = $1`, sessionID)
	doc, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", persist.ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	return doc, nil
}

func (r *PostgresSessionRepo) ListSubmittedByTeam(ctx context.Context, teamKey string, limit int) ([]model.SessionDocument, error) {
	if limit <= 0 {
		limit = 1000
	}
	rows, err := r.pool.Query(ctx, selectSession+`
		WHERE team_key = $1 AND status = $2
		ORDER BY submitted_at DESC
		LIMIT $3`, teamKey, string(model.SessionSubmitted), limit)
	if err != nil {
		return nil, fmt.Errorf("list submitted sessions: %w", err)
	}
	defer rows.Close()

	var docs []model.SessionDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	return docs, rows.Err()
}

// RemoveIdleBefore deletes in-progress rows last written before cutoff and
// returns how many were removed.
func (r *PostgresSessionRepo) RemoveIdleBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM survey_sessions WHERE status = $1 AND updated_at < $2`,
		string(model.SessionInProgress), cutoff)
	if err != nil {
		return 0, fmt.Errorf("remove idle sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// StartCleanup removes idle rows every interval until ctx is cancelled. A
// failed sweep is passed to report and retried on the next tick.
func (r *PostgresSessionRepo) StartCleanup(ctx context.Context, interval, ttl time.Duration, report func(removed int64, err error)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := r.RemoveIdleBefore(ctx, r.now().Add(-ttl))
			if report != nil {
				report(n, err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func scanDocument(row pgx.Row) (*model.SessionDocument, error) {
	var (
		doc    model.SessionDocument
		status string
	)
	err := row.Scan(
		&doc.SessionID, &status, &doc.Cursor, &doc.CreatedAt, &doc.UpdatedAt, &doc.SubmittedAt,
		&doc.TeamKey, &doc.TeamName, &doc.MentorNameRoster, &doc.MentorNameEntered,
		&doc.Members, &doc.Plan, &doc.Answers,
	)
	if err != nil {
		return nil, err
	}
	doc.Status = model.SessionStatus(status)
	return &doc, nil
}

func planOrEmpty(plan []model.PlanEntry) []model.PlanEntry {
	if plan == nil {
		return []model.PlanEntry{}
	}
	return plan
}

func answersOrEmpty(a model.Answers) model.Answers {
	if a == nil {
		return model.Answers{}
	}
	return a
}
