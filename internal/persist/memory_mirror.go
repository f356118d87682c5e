package persist

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"mentorsurvey/internal/model"
)

// MemoryMirror is an in-process SessionMirror with the same upsert semantics
// as the database-backed mirrors. It backs DURABLE_STORE=memory and tests.
type MemoryMirror struct {
	mu   sync.Mutex
	docs map[string]*model.SessionDocument
	now  func() time.Time
}

func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{
		docs: make(map[string]*model.SessionDocument),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// upsert returns the document for id, creating an empty one if needed.
// Callers hold m.mu.
func (m *MemoryMirror) upsert(id string) *model.SessionDocument {
	doc, ok := m.docs[id]
	if !ok {
		now := m.now()
		doc = &model.SessionDocument{
			SessionID: id,
			Status:    model.SessionInProgress,
			CreatedAt: now,
			UpdatedAt: now,
		}
		m.docs[id] = doc
	}
	return doc
}

func (m *MemoryMirror) EnsureIndexes(context.Context) error { return nil }

func (m *MemoryMirror) CreateSession(_ context.Context, doc *model.SessionDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[doc.SessionID]; ok {
		return nil
	}
	c := *doc
	c.Plan = append([]model.PlanEntry(nil), doc.Plan...)
	m.docs[doc.SessionID] = &c
	return nil
}

func (m *MemoryMirror) SaveIntro(_ context.Context, rec model.IntroRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := m.upsert(rec.SessionID)
	doc.TeamKey = rec.TeamKey
	doc.TeamName = rec.TeamName
	doc.MentorNameRoster = rec.MentorNameRoster
	doc.Members = append([]model.Member(nil), rec.Members...)
	doc.Plan = append([]model.PlanEntry(nil), rec.Plan...)
	doc.Answers.Intro = rec.IntroAnswers.Clone()
	doc.Cursor = rec.Cursor
	doc.UpdatedAt = m.now()
	return nil
}

func (m *MemoryMirror) SaveAnswers(_ context.Context, w model.AnswerWrite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := m.upsert(w.SessionID)
	Assign(&doc.Answers, w.Path, w.Answers.Clone())
	doc.Cursor = w.Cursor
	if w.MentorNameEntered != "" {
		doc.MentorNameEntered = w.MentorNameEntered
	}
	doc.UpdatedAt = m.now()
	return nil
}

func (m *MemoryMirror) MarkComplete(_ context.Context, sessionID string, cursor int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := m.upsert(sessionID)
	if doc.Status != model.SessionSubmitted {
		doc.Status = model.SessionComplete
	}
	doc.Cursor = cursor
	doc.UpdatedAt = m.now()
	return nil
}

func (m *MemoryMirror) MarkSubmitted(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc := m.upsert(sessionID)
	now := m.now()
	doc.Status = model.SessionSubmitted
	doc.SubmittedAt = &now
	doc.UpdatedAt = now
	return nil
}

func (m *MemoryMirror) GetByID(_ context.Context, sessionID string) (*model.SessionDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	return cloneDocument(doc), nil
}

func (m *MemoryMirror) ListSubmittedByTeam(_ context.Context, teamKey string, limit int) ([]model.SessionDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.SessionDocument
	for _, doc := range m.docs {
		if doc.TeamKey == teamKey && doc.Status == model.SessionSubmitted {
			out = append(out, *cloneDocument(doc))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(*out[j].SubmittedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func cloneDocument(doc *model.SessionDocument) *model.SessionDocument {
	c := *doc
	c.Members = append([]model.Member(nil), doc.Members...)
	c.Plan = append([]model.PlanEntry(nil), doc.Plan...)
	if doc.SubmittedAt != nil {
		t := *doc.SubmittedAt
		c.SubmittedAt = &t
	}
	c.Answers = model.AnswersDocument{
		Intro:               doc.Answers.Intro.Clone(),
		MentorConfirmation:  doc.Answers.MentorConfirmation.Clone(),
		OverallPerformance:  doc.Answers.OverallPerformance.Clone(),
		ClientCommunication: doc.Answers.ClientCommunication.Clone(),
		DirectorComment:     doc.Answers.DirectorComment.Clone(),
		MemberEvaluations:   cloneAnswerMap(doc.Answers.MemberEvaluations),
		Misc:                cloneAnswerMap(doc.Answers.Misc),
	}
	return &c
}

func cloneAnswerMap(m map[string]model.Answers) map[string]model.Answers {
	if m == nil {
		return nil
	}
	out := make(map[string]model.Answers, len(m))
	for k, v := range m {
		out[k] = v.Clone()
	}
	return out
}

// Nop discards every write. GetByID always reports ErrNotFound.
type Nop struct{}

func (Nop) EnsureIndexes(context.Context) error                         { return nil }
func (Nop) CreateSession(context.Context, *model.SessionDocument) error { return nil }
func (Nop) SaveIntro(context.Context, model.IntroRecord) error          { return nil }
func (Nop) SaveAnswers(context.Context, model.AnswerWrite) error        { return nil }
func (Nop) MarkComplete(context.Context, string, int) error             { return nil }
func (Nop) MarkSubmitted(context.Context, string) error                 { return nil }
func (Nop) GetByID(_ context.Context, id string) (*model.SessionDocument, error) {
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}
func (Nop) ListSubmittedByTeam(context.Context, string, int) ([]model.SessionDocument, error) {
	return nil, nil
}
