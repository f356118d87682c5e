package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"mentorsurvey/internal/cache"
	"mentorsurvey/internal/engine"
	"mentorsurvey/internal/metrics"
	"mentorsurvey/internal/model"
	"mentorsurvey/internal/persist"
	"mentorsurvey/internal/render"
	"mentorsurvey/internal/roster"
)

var (
	ErrMissingTeam      = errors.New("ProjectTeam is required")
	ErrSessionSubmitted = errors.New("session already submitted")
)

// SurveyService drives a mentor through a session: plan, render, validate,
// store and mirror.
type SurveyService struct {
	engine      *engine.Engine
	roster      roster.Provider
	store       cache.SessionStore
	recorder    *persist.Recorder
	broadcaster Broadcaster
	metrics     *metrics.Metrics
	logger      *slog.Logger
	now         func() time.Time
}

type Option func(*SurveyService)

func WithLogger(logger *slog.Logger) Option {
	return func(s *SurveyService) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *SurveyService) {
		s.metrics = m
	}
}

func WithBroadcaster(b Broadcaster) Option {
	return func(s *SurveyService) {
		if b != nil {
			s.broadcaster = b
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *SurveyService) {
		s.now = now
	}
}

// NewSurveyService creates a new survey service
func NewSurveyService(eng *engine.Engine, rp roster.Provider, store cache.SessionStore, recorder *persist.Recorder, opts ...Option) *SurveyService {
	s := &SurveyService{
		engine:      eng,
		roster:      rp,
		store:       store,
		recorder:    recorder,
		broadcaster: nopBroadcaster{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSession starts a session whose plan holds only the intro.
func (s *SurveyService) CreateSession(ctx context.Context) (*model.CreateSessionResponse, error) {
	sess := s.engine.CreateSession()
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	s.recorder.RecordCreated(ctx, sess)
	s.metrics.IncrementSessionCreated()
	s.logger.Info("session created", "session_id", sess.ID)
	s.broadcaster.Broadcast(EventSessionCreated, progress(sess, nil))

	return &model.CreateSessionResponse{
		SessionID: sess.ID,
		Teams:     s.roster.ListTeams(),
	}, nil
}

// load returns the live session, restoring it from the mirror when the live
// store no longer holds it.
func (s *SurveyService) load(ctx context.Context, id string) (*model.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, cache.ErrSessionNotFound) {
		return nil, err
	}

	restored, lerr := s.recorder.Load(ctx, id)
	if errors.Is(lerr, persist.ErrNotFound) {
		return nil, err
	}
	if lerr != nil {
		s.logger.Warn("session resume failed", "session_id", id, "error", lerr)
		return nil, err
	}
	// a concurrent request may have resumed and updated it already
	live, added, err := s.store.Add(ctx, restored)
	if err != nil {
		return nil, fmt.Errorf("store resumed session: %w", err)
	}
	if added {
		s.metrics.IncrementSessionResumed()
		s.logger.Info("session resumed", "session_id", id, "status", live.Status)
	}
	return live, nil
}

func (s *SurveyService) renderContext(sess *model.Session) render.Context {
	return render.Context{
		TeamName:   sess.Meta.TeamName,
		MentorName: sess.Meta.MentorName,
		Teams:      s.roster.ListTeams(),
	}
}

// GetSession summarises a session for resuming clients.
func (s *SurveyService) GetSession(ctx context.Context, id string) (*model.SessionView, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &model.SessionView{
		SessionID: sess.ID,
		Status:    sess.Status,
		Cursor:    sess.Cursor,
		TeamName:  sess.Meta.TeamName,
		Plan:      sess.Plan,
	}
	if next := engine.NextInstance(sess); next != nil {
		view.CurrentInstanceID = next.InstanceID
	}
	return view, nil
}

// GetInstance renders one plan instance together with its saved answers.
func (s *SurveyService) GetInstance(ctx context.Context, id, instanceID string) (*model.InstanceView, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	inst, idx, err := engine.FindInstance(sess, instanceID)
	if err != nil {
		return nil, err
	}
	form, err := render.Render(inst, s.renderContext(sess))
	if err != nil {
		return nil, err
	}

	answers := sess.Answers[instanceID]
	if answers == nil {
		answers = model.Answers{}
	}
	return &model.InstanceView{
		InstanceID: inst.InstanceID,
		Kind:       inst.Kind,
		Form:       form,
		Answers:    answers,
		Position:   idx + 1,
		Total:      len(sess.Plan),
	}, nil
}

// SubmitAnswers validates and merges answers for one instance. Answering the
// intro materializes the plan for the chosen team. The cursor only advances
// when the answered instance is the current one.
// A COMPLETE session stays COMPLETE when the intro is answered again, even
// though the new plan puts the cursor back on instance 1.
func (s *SurveyService) SubmitAnswers(ctx context.Context, id, instanceID string, answers model.Answers) (*model.AnswerResult, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	var (
		result    model.AnswerResult
		answered  model.Instance
		completed bool
	)
	sess, err := s.store.Update(ctx, id, func(sess *model.Session) error {
		result, completed = model.AnswerResult{}, false
		if sess.Status == model.SessionSubmitted {
			return fmt.Errorf("%w: %s", ErrSessionSubmitted, sess.ID)
		}
		inst, _, err := engine.FindInstance(sess, instanceID)
		if err != nil {
			return err
		}
		form, err := render.Render(inst, s.renderContext(sess))
		if err != nil {
			return err
		}
		if err := render.Validate(form, answers); err != nil {
			return err
		}
		merged := sess.Answers[instanceID].Merge(answers)

		if inst.Kind == model.BlockIntro {
			if err := s.applyIntro(ctx, sess, instanceID, merged); err != nil {
				return err
			}
		} else {
			sess.Answers[instanceID] = merged
			engine.AdvanceCursor(sess, instanceID)
			sess.UpdatedAt = s.now().UTC()
			s.recorder.RecordAnswers(ctx, sess.ID, inst, merged, sess.Cursor)
		}
		answered = inst

		next := engine.NextInstance(sess)
		if next != nil {
			result.NextInstanceID = next.InstanceID
			return nil
		}
		result.Done = true
		if sess.Status == model.SessionInProgress {
			sess.Status = model.SessionComplete
			completed = true
			s.recorder.RecordComplete(ctx, sess.ID, sess.Cursor)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementAnswers(string(answered.Kind))
	s.broadcaster.Broadcast(EventInstanceAnswered, progress(sess, &answered))
	if completed {
		s.metrics.IncrementSessionCompleted()
		s.logger.Info("session complete", "session_id", sess.ID, "team", sess.Meta.TeamName)
		s.broadcaster.Broadcast(EventSessionCompleted, progress(sess, nil))
	}
	return &result, nil
}

// applyIntro resolves the team before touching sess, so an unknown or
// missing team leaves the plan as it was.
func (s *SurveyService) applyIntro(ctx context.Context, sess *model.Session, instanceID string, merged model.Answers) error {
	team, _ := merged["ProjectTeam"].(string)
	team = strings.TrimSpace(team)
	if team == "" {
		return ErrMissingTeam
	}
	if err := s.engine.MaterializePlan(sess, team); err != nil {
		return err
	}
	sess.Answers[instanceID] = merged
	s.recorder.RecordIntro(ctx, persist.NewIntroRecord(sess, roster.Slugify(team)))
	s.logger.Info("plan materialized",
		"session_id", sess.ID,
		"team", team,
		"instances", len(sess.Plan))
	return nil
}

// Submit finalizes a session. Submitting twice is a no-op.
func (s *SurveyService) Submit(ctx context.Context, id string) (*model.StatusResponse, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	submitted := false
	sess, err := s.store.Update(ctx, id, func(sess *model.Session) error {
		submitted = false
		if sess.Status == model.SessionSubmitted {
			return nil
		}
		now := s.now().UTC()
		sess.Status = model.SessionSubmitted
		sess.SubmittedAt = &now
		sess.UpdatedAt = now
		submitted = true
		s.recorder.RecordSubmitted(ctx, sess.ID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if submitted {
		s.metrics.IncrementSessionSubmitted()
		s.logger.Info("session submitted", "session_id", sess.ID, "team", sess.Meta.TeamName)
		s.broadcaster.Broadcast(EventSessionSubmitted, progress(sess, nil))
	}
	return &model.StatusResponse{Status: sess.Status}, nil
}

func progress(sess *model.Session, inst *model.Instance) ProgressEvent {
	ev := ProgressEvent{
		SessionID: sess.ID,
		TeamName:  sess.Meta.TeamName,
		Cursor:    sess.Cursor,
		Total:     len(sess.Plan),
		Status:    string(sess.Status),
	}
	if sess.Meta.TeamName != "" {
		ev.TeamKey = roster.Slugify(sess.Meta.TeamName)
	}
	if inst != nil {
		ev.InstanceID = inst.InstanceID
		ev.Kind = string(inst.Kind)
	}
	return ev
}
