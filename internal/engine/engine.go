// Package engine builds and walks the ordered instance plan of a survey session.
//
// A plan always starts with a single intro instance. Once the mentor picks a
// team the plan is materialized into: intro, mentor confirmation, overall
// performance, client communication, one member evaluation per roster member,
// director comment. The cursor indexes the next instance the mentor must answer.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"mentorsurvey/internal/model"
	"mentorsurvey/internal/roster"
)

// Delim separates the kind from the suffix of an instance id.
const Delim = "__"

var ErrInstanceNotFound = errors.New("instance not found")

// InstanceID builds the stable id of an instance.
func InstanceID(kind model.BlockKind, suffix string) string {
	return string(kind) + Delim + suffix
}

// IntroInstanceID is the id of the instance every plan starts with.
var IntroInstanceID = InstanceID(model.BlockIntro, "1")

func fixed(kind model.BlockKind) model.Instance {
	return model.Instance{InstanceID: InstanceID(kind, "1"), Kind: kind}
}

// Engine creates sessions and materializes their plans from a roster.
type Engine struct {
	roster roster.Provider
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

// New constructs an Engine backed by the given roster.
func New(p roster.Provider, opts ...Option) *Engine {
	e := &Engine{
		roster: p,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateSession allocates an IN_PROGRESS session whose plan holds only the intro.
func (e *Engine) CreateSession() *model.Session {
	now := e.now().UTC()
	return &model.Session{
		ID:        e.newID(),
		Status:    model.SessionInProgress,
		Plan:      []model.Instance{fixed(model.BlockIntro)},
		Cursor:    0,
		Answers:   map[string]model.Answers{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MaterializePlan expands the plan for teamName and moves the cursor past the
// intro. The session is left untouched when the team is unknown. Calling it
// again replaces the plan and restarts the flow after the intro.
func (e *Engine) MaterializePlan(s *model.Session, teamName string) error {
	team, err := e.roster.GetTeam(teamName)
	if err != nil {
		return err
	}

	plan, skipped := BuildPlan(team)
	for _, err := range skipped {
		e.logger.Warn("skipping roster entry",
			"session_id", s.ID,
			"team", teamName,
			"error", err)
	}

	s.Meta = model.SessionMeta{
		TeamName:   teamName,
		MentorName: team.MentorName,
		Members:    planMembers(plan),
	}
	s.Plan = plan
	s.Cursor = 1
	s.UpdatedAt = e.now().UTC()
	return nil
}

// BuildPlan returns the materialized plan for team. Members missing an id or
// name are left out and reported in skipped. A member whose id was already
// taken gets "_<position>" appended, position being 1-based in team.Members.
func BuildPlan(team model.Team) (plan []model.Instance, skipped []error) {
	plan = make([]model.Instance, 0, len(team.Members)+5)
	plan = append(plan,
		fixed(model.BlockIntro),
		fixed(model.BlockMentorConfirmation),
		fixed(model.BlockOverallPerformance),
		fixed(model.BlockClientCommunication),
	)

	seen := make(map[string]bool, len(team.Members))
	for i, m := range team.Members {
		if err := roster.ValidateMember(m); err != nil {
			skipped = append(skipped, err)
			continue
		}
		if seen[m.ID] {
			m.ID = disambiguate(m.ID, i+1, seen)
		}
		seen[m.ID] = true
		plan = append(plan, model.Instance{
			InstanceID: InstanceID(model.BlockMemberEvaluation, m.ID),
			Kind:       model.BlockMemberEvaluation,
			Bindings: map[string]string{
				model.BindingMemberID:   m.ID,
				model.BindingMemberName: m.Name,
			},
		})
	}

	plan = append(plan, fixed(model.BlockDirectorComment))
	return plan, skipped
}

// planMembers lists the members evaluated by plan, with the ids the plan uses.
func planMembers(plan []model.Instance) []model.Member {
	var members []model.Member
	for _, inst := range plan {
		if inst.Kind != model.BlockMemberEvaluation {
			continue
		}
		members = append(members, model.Member{
			ID:   inst.Bindings[model.BindingMemberID],
			Name: inst.Bindings[model.BindingMemberName],
		})
	}
	return members
}

func disambiguate(id string, position int, seen map[string]bool) string {
	base := id + "_" + strconv.Itoa(position)
	candidate := base
	for n := 2; seen[candidate]; n++ {
		candidate = base + "_" + strconv.Itoa(n)
	}
	return candidate
}

// NextInstance returns the instance at the cursor, or nil once the plan is
// exhausted. A negative cursor is reset to 0.
func NextInstance(s *model.Session) *model.Instance {
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor >= len(s.Plan) {
		return nil
	}
	inst := s.Plan[s.Cursor]
	return &inst
}

// AdvanceCursor moves the cursor by one when instanceID is the current
// instance and reports whether it moved.
func AdvanceCursor(s *model.Session, instanceID string) bool {
	cur := NextInstance(s)
	if cur == nil || cur.InstanceID != instanceID {
		return false
	}
	s.Cursor++
	return true
}

// FindInstance looks up instanceID in the session plan.
func FindInstance(s *model.Session, instanceID string) (model.Instance, int, error) {
	for i, inst := range s.Plan {
		if inst.InstanceID == instanceID {
			return inst, i, nil
		}
	}
	return model.Instance{}, -1, fmt.Errorf("%w: %q", ErrInstanceNotFound, instanceID)
}
