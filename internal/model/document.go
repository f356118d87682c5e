package model

import "time"

// PlanEntry is the serialisable form of an Instance stored with the durable record
type PlanEntry struct {
	InstanceID string    `json:"instance_id" bson:"instance_id"`
	Kind       BlockKind `json:"kind" bson:"kind"`
	MemberID   string    `json:"member_id,omitempty" bson:"member_id,omitempty"`
}

// AnswersDocument is the canonical nested answer layout keyed by block kind
type AnswersDocument struct {
	Intro               Answers            `json:"intro,omitempty" bson:"intro,omitempty"`
	MentorConfirmation  Answers            `json:"mentor_confirmation,omitempty" bson:"mentor_confirmation,omitempty"`
	OverallPerformance  Answers            `json:"overall_performance,omitempty" bson:"overall_performance,omitempty"`
	ClientCommunication Answers            `json:"client_communication,omitempty" bson:"client_communication,omitempty"`
	DirectorComment     Answers            `json:"director_comment,omitempty" bson:"director_comment,omitempty"`
	MemberEvaluations   map[string]Answers `json:"member_evaluations,omitempty" bson:"member_evaluations,omitempty"`
	Misc                map[string]Answers `json:"misc,omitempty" bson:"misc,omitempty"`
}

// SessionDocument is the durable mirror of a session in the survey_sessions collection
type SessionDocument struct {
	SessionID         string          `json:"session_id" bson:"session_id"`
	Status            SessionStatus   `json:"status" bson:"status"`
	Cursor            int             `json:"cursor" bson:"cursor"`
	CreatedAt         time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" bson:"updated_at"`
	SubmittedAt       *time.Time      `json:"submitted_at,omitempty" bson:"submitted_at"`
	TeamKey           string          `json:"team_key,omitempty" bson:"team_key"`
	TeamName          string          `json:"team_name,omitempty" bson:"team_name"`
	MentorNameRoster  string          `json:"mentor_name_roster,omitempty" bson:"mentor_name_roster"`
	MentorNameEntered string          `json:"mentor_name_entered,omitempty" bson:"mentor_name_entered"`
	Members           []Member        `json:"members,omitempty" bson:"members,omitempty"`
	Plan              []PlanEntry     `json:"plan" bson:"plan"`
	Answers           AnswersDocument `json:"answers" bson:"answers"`
}

// IntroRecord is the one-shot write performed when the intro materializes the plan
type IntroRecord struct {
	SessionID        string
	TeamKey          string
	TeamName         string
	MentorNameRoster string
	Members          []Member
	Plan             []PlanEntry
	IntroAnswers     Answers
	Cursor           int
}

// AnswerWrite is an idempotent upsert of one instance's merged answers.
// Path is relative to the answers document, e.g. ["member_evaluations", "paul_hicks"].
type AnswerWrite struct {
	SessionID         string
	Path              []string
	Answers           Answers
	Cursor            int
	MentorNameEntered string
}
