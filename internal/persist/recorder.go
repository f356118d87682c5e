package persist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"mentorsurvey/internal/model"
)

var ErrNotFound = errors.New("session document not found")

// SessionMirror is the durable store sessions are mirrored into.
type SessionMirror interface {
	EnsureIndexes(ctx context.Context) error
	CreateSession(ctx context.Context, doc *model.SessionDocument) error
	SaveIntro(ctx context.Context, rec model.IntroRecord) error
	SaveAnswers(ctx context.Context, w model.AnswerWrite) error
	MarkComplete(ctx context.Context, sessionID string, cursor int) error
	MarkSubmitted(ctx context.Context, sessionID string) error
	GetByID(ctx context.Context, sessionID string) (*model.SessionDocument, error)
	ListSubmittedByTeam(ctx context.Context, teamKey string, limit int) ([]model.SessionDocument, error)
}

// Observer is notified of every mirror write.
type Observer interface {
	ObserveMirror(op string, elapsed time.Duration, err error)
}

type Op string

const (
	OpCreate   Op = "create"
	OpIntro    Op = "intro"
	OpAnswers  Op = "answers"
	OpComplete Op = "complete"
	OpSubmit   Op = "submit"
)

// Result describes the outcome of one mirror write.
type Result struct {
	Op        Op
	SessionID string
	Err       error
	Elapsed   time.Duration
}

func (r Result) OK() bool { return r.Err == nil }

const DefaultTimeout = 3 * time.Second

// Recorder translates session events into mirror writes. Failures are logged
// and reported in the Result, never returned to the live flow.
type Recorder struct {
	mirror   SessionMirror
	timeout  time.Duration
	logger   *slog.Logger
	observer Observer
}

type Option func(*Recorder)

func WithTimeout(d time.Duration) Option {
	return func(r *Recorder) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

func WithObserver(o Observer) Option {
	return func(r *Recorder) {
		r.observer = o
	}
}

func NewRecorder(mirror SessionMirror, opts ...Option) *Recorder {
	r := &Recorder{
		mirror:  mirror,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// run bounds write by the recorder timeout. Caller cancellation does not
// reach the write.
func (r *Recorder) run(ctx context.Context, op Op, sessionID string, write func(ctx context.Context) error) Result {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	start := time.Now()
	err := write(ctx)
	res := Result{Op: op, SessionID: sessionID, Err: err, Elapsed: time.Since(start)}

	if r.observer != nil {
		r.observer.ObserveMirror(string(op), res.Elapsed, err)
	}
	if err != nil {
		r.logger.Warn("mirror write failed",
			"op", op,
			"session_id", sessionID,
			"elapsed", res.Elapsed,
			"error", err)
	}
	return res
}

func (r *Recorder) RecordCreated(ctx context.Context, s *model.Session) Result {
	doc := &model.SessionDocument{
		SessionID: s.ID,
		Status:    s.Status,
		Cursor:    s.Cursor,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Plan:      PlanEntries(s.Plan),
	}
	return r.run(ctx, OpCreate, s.ID, func(ctx context.Context) error {
		return r.mirror.CreateSession(ctx, doc)
	})
}

func (r *Recorder) RecordIntro(ctx context.Context, rec model.IntroRecord) Result {
	return r.run(ctx, OpIntro, rec.SessionID, func(ctx context.Context) error {
		return r.mirror.SaveIntro(ctx, rec)
	})
}

// RecordAnswers writes the merged answers of inst to its document path.
func (r *Recorder) RecordAnswers(ctx context.Context, sessionID string, inst model.Instance, merged model.Answers, cursor int) Result {
	w := model.AnswerWrite{
		SessionID: sessionID,
		Path:      Segments(inst),
		Answers:   merged,
		Cursor:    cursor,
	}
	if inst.Kind == model.BlockMentorConfirmation {
		w.MentorNameEntered = EnteredMentorName(merged)
	}
	return r.run(ctx, OpAnswers, sessionID, func(ctx context.Context) error {
		return r.mirror.SaveAnswers(ctx, w)
	})
}

func (r *Recorder) RecordComplete(ctx context.Context, sessionID string, cursor int) Result {
	return r.run(ctx, OpComplete, sessionID, func(ctx context.Context) error {
		return r.mirror.MarkComplete(ctx, sessionID, cursor)
	})
}

func (r *Recorder) RecordSubmitted(ctx context.Context, sessionID string) Result {
	return r.run(ctx, OpSubmit, sessionID, func(ctx context.Context) error {
		return r.mirror.MarkSubmitted(ctx, sessionID)
	})
}

// Load fetches and restores a session from the mirror.
func (r *Recorder) Load(ctx context.Context, sessionID string) (*model.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	doc, err := r.mirror.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return Restore(doc), nil
}

// NewIntroRecord captures the state written once the intro materializes the plan.
func NewIntroRecord(s *model.Session, teamKey string) model.IntroRecord {
	return model.IntroRecord{
		SessionID:        s.ID,
		TeamKey:          teamKey,
		TeamName:         s.Meta.TeamName,
		MentorNameRoster: s.Meta.MentorName,
		Members:          append([]model.Member(nil), s.Meta.Members...),
		Plan:             PlanEntries(s.Plan),
		IntroAnswers:     s.Answers[s.Plan[0].InstanceID].Clone(),
		Cursor:           s.Cursor,
	}
}

// EnteredMentorName returns the trimmed MentorNameOverride answer, if any.
func EnteredMentorName(a model.Answers) string {
	v, _ := a["MentorNameOverride"].(string)
	return strings.TrimSpace(v)
}
