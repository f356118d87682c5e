package persist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorsurvey/internal/model"
)

func TestFieldPath(t *testing.T) {
	tests := []struct {
		name string
		inst model.Instance
		want string
	}{
		{"intro", model.Instance{InstanceID: "intro__1", Kind: model.BlockIntro}, "answers.intro"},
		{"mentor confirmation", model.Instance{InstanceID: "mentor_confirmation__1", Kind: model.BlockMentorConfirmation}, "answers.mentor_confirmation"},
		{"overall performance", model.Instance{InstanceID: "overall_performance__1", Kind: model.BlockOverallPerformance}, "answers.overall_performance"},
		{"client communication", model.Instance{InstanceID: "client_communication__1", Kind: model.BlockClientCommunication}, "answers.client_communication"},
		{"director comment", model.Instance{InstanceID: "director_comment__1", Kind: model.BlockDirectorComment}, "answers.director_comment"},
		{
			"member evaluation",
			model.Instance{
				InstanceID: "member_evaluation__paul_hicks",
				Kind:       model.BlockMemberEvaluation,
				Bindings:   map[string]string{model.BindingMemberID: "paul_hicks"},
			},
			"answers.member_evaluations.paul_hicks",
		},
		{
			"member evaluation without binding",
			model.Instance{InstanceID: "member_evaluation__x", Kind: model.BlockMemberEvaluation},
			"answers.member_evaluations.member_evaluation__x",
		},
		{"unknown kind", model.Instance{InstanceID: "bonus__1", Kind: "bonus"}, "answers.misc.bonus__1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FieldPath(tt.inst))
		})
	}
}

func TestAssignAndLookup(t *testing.T) {
	var doc model.AnswersDocument
	for _, kind := range model.BlockKinds {
		inst := model.Instance{
			InstanceID: string(kind) + "__1",
			Kind:       kind,
			Bindings:   map[string]string{model.BindingMemberID: "m1"},
		}
		Assign(&doc, Segments(inst), model.Answers{"k": string(kind)})
		assert.Equal(t, model.Answers{"k": string(kind)}, Lookup(&doc, Segments(inst)), kind)
	}
	Assign(&doc, []string{"misc", "bonus__1"}, model.Answers{"k": "v"})
	assert.Equal(t, "v", doc.Misc["bonus__1"]["k"])
	assert.Nil(t, Lookup(&doc, []string{"nowhere"}))
}

func TestPlanEntries(t *testing.T) {
	plan := []model.Instance{
		{InstanceID: "intro__1", Kind: model.BlockIntro},
		{
			InstanceID: "member_evaluation__sam_lee",
			Kind:       model.BlockMemberEvaluation,
			Bindings:   map[string]string{model.BindingMemberID: "sam_lee", model.BindingMemberName: "Lee, Sam"},
		},
	}
	assert.Equal(t, []model.PlanEntry{
		{InstanceID: "intro__1", Kind: model.BlockIntro},
		{InstanceID: "member_evaluation__sam_lee", Kind: model.BlockMemberEvaluation, MemberID: "sam_lee"},
	}, PlanEntries(plan))
}

func TestRestore(t *testing.T) {
	submitted := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	doc := &model.SessionDocument{
		SessionID:        "s1",
		Status:           model.SessionSubmitted,
		Cursor:           7,
		SubmittedAt:      &submitted,
		TeamKey:          "team_b",
		TeamName:         "Team B",
		MentorNameRoster: "Bob Mentor",
		Members:          []model.Member{{ID: "sam_lee", Name: "Lee, Sam"}, {ID: "nina_patel", Name: "Patel, Nina"}},
		Plan: []model.PlanEntry{
			{InstanceID: "intro__1", Kind: model.BlockIntro},
			{InstanceID: "mentor_confirmation__1", Kind: model.BlockMentorConfirmation},
			{InstanceID: "member_evaluation__sam_lee", Kind: model.BlockMemberEvaluation, MemberID: "sam_lee"},
			{InstanceID: "director_comment__1", Kind: model.BlockDirectorComment},
		},
		Answers: model.AnswersDocument{
			Intro:           model.Answers{"ProjectTeam": "Team B"},
			DirectorComment: model.Answers{"DirectorComment": "solid"},
			MemberEvaluations: map[string]model.Answers{
				"sam_lee":    {"MemberTechnical": 8.0},
				"paul_hicks": {"MemberTechnical": 3.0},
			},
			Misc: map[string]model.Answers{"bonus__1": {"x": 1.0}},
		},
	}

	s := Restore(doc)

	require.Len(t, s.Plan, 4)
	assert.Equal(t, "Lee, Sam", s.Plan[2].Bindings[model.BindingMemberName])
	assert.Equal(t, model.SessionSubmitted, s.Status)
	assert.Equal(t, 7, s.Cursor)
	assert.Equal(t, submitted, *s.SubmittedAt)
	assert.Equal(t, "Team B", s.Meta.TeamName)
	assert.Equal(t, "Bob Mentor", s.Meta.MentorName)

	assert.Equal(t, "Team B", s.Answers["intro__1"]["ProjectTeam"])
	assert.Equal(t, 8.0, s.Answers["member_evaluation__sam_lee"]["MemberTechnical"])
	assert.Equal(t, "solid", s.Answers["director_comment__1"]["DirectorComment"])
	assert.Equal(t, 3.0, s.Answers["member_evaluation__paul_hicks"]["MemberTechnical"], "stale evaluation kept")
	assert.Equal(t, 1.0, s.Answers["bonus__1"]["x"])
	assert.NotContains(t, s.Answers, "mentor_confirmation__1")
}

func TestRestoreEmptyDocument(t *testing.T) {
	s := Restore(&model.SessionDocument{SessionID: "s2"})
	require.Len(t, s.Plan, 1)
	assert.Equal(t, "intro__1", s.Plan[0].InstanceID)
	assert.Equal(t, model.SessionInProgress, s.Status)
	assert.NotNil(t, s.Answers)
}
