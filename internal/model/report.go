package model

import "time"

// ScoreSummary is the mean of one slider question across submitted sessions
type ScoreSummary struct {
	QuestionID string  `json:"question_id"`
	Mean       float64 `json:"mean"`
	Count      int     `json:"count"`
}

// MemberReport aggregates evaluations of one member
type MemberReport struct {
	MemberID string         `json:"member_id"`
	Scores   []ScoreSummary `json:"scores"`
	Feedback []string       `json:"feedback,omitempty"`
}

// SessionDigest is a submitted session as listed in a team report
type SessionDigest struct {
	SessionID         string     `json:"session_id"`
	MentorNameRoster  string     `json:"mentor_name_roster"`
	MentorNameEntered string     `json:"mentor_name_entered,omitempty"`
	SubmittedAt       *time.Time `json:"submitted_at,omitempty"`
	DirectorComment   string     `json:"director_comment,omitempty"`
}

// TeamReport is the director view of all submitted evaluations for a team
type TeamReport struct {
	TeamKey  string          `json:"team_key"`
	TeamName string          `json:"team_name"`
	Sessions []SessionDigest `json:"sessions"`
	Team     []ScoreSummary  `json:"team_scores"`
	Members  []MemberReport  `json:"members"`
}
