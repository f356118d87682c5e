// Package roster exposes the teams a mentor can evaluate. Providers are
// read-only once built and safe for concurrent use.
package roster

import (
	"errors"
	"fmt"
	"sort"

	"mentorsurvey/internal/model"
)

var (
	ErrUnknownTeam    = errors.New("unknown team")
	ErrMalformedEntry = errors.New("malformed roster entry")
)

// Provider lists teams and resolves a team by its display name.
type Provider interface {
	ListTeams() []string
	GetTeam(name string) (model.Team, error)
}

// Static is an immutable in-memory Provider
type Static struct {
	names []string
	teams map[string]model.Team
}

// NewStatic snapshots teams. Later duplicates of a team name replace earlier ones.
func NewStatic(teams []model.Team) *Static {
	s := &Static{teams: make(map[string]model.Team, len(teams))}
	for _, t := range teams {
		t.Key = Slugify(t.Name)
		t.Members = append([]model.Member(nil), t.Members...)
		s.teams[t.Name] = t
	}
	s.names = make([]string, 0, len(s.teams))
	for name := range s.teams {
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)
	return s
}

func (s *Static) ListTeams() []string {
	return append([]string(nil), s.names...)
}

func (s *Static) GetTeam(name string) (model.Team, error) {
	t, ok := s.teams[name]
	if !ok {
		return model.Team{}, fmt.Errorf("%w: %q", ErrUnknownTeam, name)
	}
	t.Members = append([]model.Member(nil), t.Members...)
	return t, nil
}

// ValidateMember reports ErrMalformedEntry for members missing an id or name.
func ValidateMember(m model.Member) error {
	if m.ID == "" || m.Name == "" {
		return fmt.Errorf("%w: member id=%q name=%q", ErrMalformedEntry, m.ID, m.Name)
	}
	return nil
}

// Builtin returns the default roster used when no external source is configured.
func Builtin() *Static {
	return NewStatic([]model.Team{
		{
			Name:       "Team A",
			MentorName: "Alice Mentor",
			Members: []model.Member{
				{ID: "paul_hicks", Name: "Hicks, Paul"},
				{ID: "brenda_johnson", Name: "Johnson, Brenda"},
				{ID: "kayla_ward", Name: "Ward, Kayla"},
			},
		},
		{
			Name:       "Team B",
			MentorName: "Bob Mentor",
			Members: []model.Member{
				{ID: "sam_lee", Name: "Lee, Sam"},
				{ID: "nina_patel", Name: "Patel, Nina"},
			},
		},
	})
}
