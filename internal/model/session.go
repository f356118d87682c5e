package model

import "time"

type SessionStatus string

const (
	SessionInProgress SessionStatus = "IN_PROGRESS"
	SessionComplete   SessionStatus = "COMPLETE"
	SessionSubmitted  SessionStatus = "SUBMITTED"
)

// Answers maps question ids to submitted values
type Answers map[string]any

// Merge shallow-merges incoming into a copy of a; incoming keys win.
func (a Answers) Merge(incoming Answers) Answers {
	merged := make(Answers, len(a)+len(incoming))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = v
	}
	return merged
}

// Clone returns a shallow copy of a.
func (a Answers) Clone() Answers {
	if a == nil {
		return nil
	}
	return a.Merge(nil)
}

// Instance is one concrete occurrence of a block in a session plan
type Instance struct {
	InstanceID string            `json:"instance_id" bson:"instance_id"`
	Kind       BlockKind         `json:"kind" bson:"kind"`
	Bindings   map[string]string `json:"bindings,omitempty" bson:"bindings,omitempty"`
}

// Binding keys for member evaluation instances
const (
	BindingMemberID   = "member_id"
	BindingMemberName = "member_name"
)

// SessionMeta records the team selected at intro
type SessionMeta struct {
	TeamName   string   `json:"team_name,omitempty"`
	MentorName string   `json:"mentor_name,omitempty"`
	Members    []Member `json:"members,omitempty"`
}

// Session is the live state of one mentor's survey run
type Session struct {
	ID          string             `json:"session_id"`
	Status      SessionStatus      `json:"status"`
	Plan        []Instance         `json:"plan"`
	Cursor      int                `json:"cursor"`
	Answers     map[string]Answers `json:"answers"`
	Meta        SessionMeta        `json:"meta"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	SubmittedAt *time.Time         `json:"submitted_at,omitempty"`
}

// Clone returns a deep copy so callers never share mutable state with a store.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Plan = make([]Instance, len(s.Plan))
	for i, inst := range s.Plan {
		c.Plan[i] = inst
		if inst.Bindings != nil {
			b := make(map[string]string, len(inst.Bindings))
			for k, v := range inst.Bindings {
				b[k] = v
			}
			c.Plan[i].Bindings = b
		}
	}
	c.Answers = make(map[string]Answers, len(s.Answers))
	for id, a := range s.Answers {
		c.Answers[id] = a.Clone()
	}
	c.Meta.Members = append([]Member(nil), s.Meta.Members...)
	if s.SubmittedAt != nil {
		t := *s.SubmittedAt
		c.SubmittedAt = &t
	}
	return &c
}

// CreateSessionResponse is returned by POST /sessions
type CreateSessionResponse struct {
	SessionID string   `json:"session_id"`
	Teams     []string `json:"teams"`
}

// InstanceView is a rendered instance with its saved answers
type InstanceView struct {
	InstanceID string    `json:"instance_id"`
	Kind       BlockKind `json:"kind"`
	Form
	Answers  Answers `json:"answers"`
	Position int     `json:"position"`
	Total    int     `json:"total"`
}

// AnswerResult is the outcome of posting answers to an instance
type AnswerResult struct {
	NextInstanceID string `json:"next_instance_id,omitempty"`
	Done           bool   `json:"done,omitempty"`
}

// SessionView summarises a session for resuming clients
type SessionView struct {
	SessionID         string        `json:"session_id"`
	Status            SessionStatus `json:"status"`
	Cursor            int           `json:"cursor"`
	CurrentInstanceID string        `json:"current_instance_id,omitempty"`
	TeamName          string        `json:"team_name,omitempty"`
	Plan              []Instance    `json:"plan"`
}

// StatusResponse is returned by POST /sessions/{id}/submit
type StatusResponse struct {
	Status SessionStatus `json:"status"`
}
