package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorsurvey/internal/model"
	"mentorsurvey/internal/roster"
)

func newTestEngine() *Engine {
	fixedNow := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	return New(roster.Builtin(),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "sess-1" }),
	)
}

func planIDs(s *model.Session) []string {
	ids := make([]string, 0, len(s.Plan))
	for _, inst := range s.Plan {
		ids = append(ids, inst.InstanceID)
	}
	return ids
}

func TestCreateSession(t *testing.T) {
	e := newTestEngine()
	s := e.CreateSession()

	assert.Equal(t, "sess-1", s.ID)
	assert.Equal(t, model.SessionInProgress, s.Status)
	assert.Equal(t, []string{"intro__1"}, planIDs(s))
	assert.Equal(t, 0, s.Cursor)
	assert.Empty(t, s.Answers)
	assert.Equal(t, s.CreatedAt, s.UpdatedAt)

	next := NextInstance(s)
	require.NotNil(t, next)
	assert.Equal(t, IntroInstanceID, next.InstanceID)
}

func TestCreateSessionUsesUUIDByDefault(t *testing.T) {
	e := New(roster.Builtin())
	a, b := e.CreateSession(), e.CreateSession()
	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMaterializePlan(t *testing.T) {
	e := newTestEngine()
	s := e.CreateSession()

	require.NoError(t, e.MaterializePlan(s, "Team A"))

	assert.Equal(t, []string{
		"intro__1",
		"mentor_confirmation__1",
		"overall_performance__1",
		"client_communication__1",
		"member_evaluation__paul_hicks",
		"member_evaluation__brenda_johnson",
		"member_evaluation__kayla_ward",
		"director_comment__1",
	}, planIDs(s))
	assert.Equal(t, 1, s.Cursor)
	assert.Equal(t, "Team A", s.Meta.TeamName)
	assert.Equal(t, "Alice Mentor", s.Meta.MentorName)
	assert.Len(t, s.Meta.Members, 3)

	member := s.Plan[4]
	assert.Equal(t, model.BlockMemberEvaluation, member.Kind)
	assert.Equal(t, "paul_hicks", member.Bindings[model.BindingMemberID])
	assert.Equal(t, "Hicks, Paul", member.Bindings[model.BindingMemberName])
}

func TestMaterializePlanUnknownTeam(t *testing.T) {
	e := newTestEngine()
	s := e.CreateSession()

	err := e.MaterializePlan(s, "Team Z")
	require.ErrorIs(t, err, roster.ErrUnknownTeam)
	assert.Equal(t, []string{"intro__1"}, planIDs(s))
	assert.Equal(t, 0, s.Cursor)
	assert.Empty(t, s.Meta.TeamName)
}

func TestMaterializePlanReplacesPreviousPlan(t *testing.T) {
	e := newTestEngine()
	s := e.CreateSession()
	require.NoError(t, e.MaterializePlan(s, "Team A"))
	s.Cursor = 6

	require.NoError(t, e.MaterializePlan(s, "Team B"))
	assert.Len(t, s.Plan, 4+2+1)
	assert.Equal(t, 1, s.Cursor)
	assert.Equal(t, "member_evaluation__sam_lee", s.Plan[4].InstanceID)
}

func TestBuildPlanSkipsMalformedMembers(t *testing.T) {
	plan, skipped := BuildPlan(model.Team{
		Name: "Team C",
		Members: []model.Member{
			{ID: "ok", Name: "Ok, Member"},
			{ID: "", Name: "No Id"},
			{ID: "no_name"},
		},
	})

	assert.Len(t, plan, 4+1+1)
	assert.Len(t, skipped, 2)
	for _, err := range skipped {
		assert.ErrorIs(t, err, roster.ErrMalformedEntry)
	}
}

func TestBuildPlanDisambiguatesCollidingIDs(t *testing.T) {
	plan, skipped := BuildPlan(model.Team{
		Name: "Team C",
		Members: []model.Member{
			{ID: "lee_sam", Name: "Lee, Sam"},
			{ID: "lee_sam", Name: "Lee Sam"},
			{ID: "lee_sam_2", Name: "Sam Lee"},
			{ID: "lee_sam", Name: "S. Lee"},
		},
	})

	assert.Empty(t, skipped)
	require.Len(t, plan, 4+4+1)
	assert.Equal(t, []string{
		"member_evaluation__lee_sam",
		"member_evaluation__lee_sam_2",
		"member_evaluation__lee_sam_2_3",
		"member_evaluation__lee_sam_4",
	}, []string{plan[4].InstanceID, plan[5].InstanceID, plan[6].InstanceID, plan[7].InstanceID})
	assert.Equal(t, "Lee Sam", plan[5].Bindings[model.BindingMemberName])
	assert.Equal(t, "lee_sam_2_3", plan[6].Bindings[model.BindingMemberID])
}

func TestMaterializePlanRecordsPlanMemberIDs(t *testing.T) {
	e := New(roster.NewStatic([]model.Team{{
		Name:       "Team D",
		MentorName: "Dee Mentor",
		Members: []model.Member{
			{ID: "lee_sam", Name: "Lee, Sam"},
			{ID: "", Name: "Nobody"},
			{ID: "lee_sam", Name: "Lee Sam"},
		},
	}}))
	s := e.CreateSession()
	require.NoError(t, e.MaterializePlan(s, "Team D"))

	assert.Equal(t, []model.Member{
		{ID: "lee_sam", Name: "Lee, Sam"},
		{ID: "lee_sam_3", Name: "Lee Sam"},
	}, s.Meta.Members)
	assert.Equal(t, "member_evaluation__lee_sam_3", s.Plan[5].InstanceID)
}

func TestBuildPlanEmptyTeam(t *testing.T) {
	plan, skipped := BuildPlan(model.Team{Name: "Empty"})
	assert.Empty(t, skipped)
	require.Len(t, plan, 5)
	assert.Equal(t, model.BlockClientCommunication, plan[3].Kind)
	assert.Equal(t, model.BlockDirectorComment, plan[4].Kind)
}

func TestAdvanceCursor(t *testing.T) {
	e := newTestEngine()
	s := e.CreateSession()
	require.NoError(t, e.MaterializePlan(s, "Team B"))

	t.Run("ignores instances other than the current one", func(t *testing.T) {
		assert.False(t, AdvanceCursor(s, "intro__1"))
		assert.False(t, AdvanceCursor(s, "director_comment__1"))
		assert.Equal(t, 1, s.Cursor)
	})

	t.Run("walks the whole plan", func(t *testing.T) {
		for {
			next := NextInstance(s)
			if next == nil {
				break
			}
			require.True(t, AdvanceCursor(s, next.InstanceID))
		}
		assert.Equal(t, len(s.Plan), s.Cursor)
		assert.False(t, AdvanceCursor(s, "director_comment__1"))
		assert.Equal(t, len(s.Plan), s.Cursor)
	})
}

func TestNextInstanceResetsNegativeCursor(t *testing.T) {
	s := newTestEngine().CreateSession()
	s.Cursor = -3

	next := NextInstance(s)
	require.NotNil(t, next)
	assert.Equal(t, IntroInstanceID, next.InstanceID)
	assert.Equal(t, 0, s.Cursor)
}

func TestFindInstance(t *testing.T) {
	e := newTestEngine()
	s := e.CreateSession()
	require.NoError(t, e.MaterializePlan(s, "Team A"))

	inst, idx, err := FindInstance(s, "member_evaluation__kayla_ward")
	require.NoError(t, err)
	assert.Equal(t, 6, idx)
	assert.Equal(t, "Ward, Kayla", inst.Bindings[model.BindingMemberName])

	_, idx, err = FindInstance(s, "member_evaluation__nobody")
	require.ErrorIs(t, err, ErrInstanceNotFound)
	assert.Equal(t, -1, idx)
}
