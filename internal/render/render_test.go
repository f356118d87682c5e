package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorsurvey/internal/model"
)

func inputIDs(f model.Form) []string {
	var ids []string
	for _, el := range f.Elements {
		if el.IsInput() {
			ids = append(ids, el.QuestionID)
		}
	}
	return ids
}

func TestRenderBlocks(t *testing.T) {
	ctx := Context{TeamName: "Team A", MentorName: "Alice Mentor", Teams: []string{"Team A", "Team B"}}

	t.Run("intro lists every team", func(t *testing.T) {
		f, err := Render(model.Instance{InstanceID: "intro__1", Kind: model.BlockIntro}, ctx)
		require.NoError(t, err)
		assert.Equal(t, model.BlockIntro, f.BlockID)
		sel := f.Inputs()["ProjectTeam"]
		assert.Equal(t, model.ElementSelect, sel.Type)
		assert.True(t, sel.Required)
		assert.Equal(t, []model.Option{{Value: "Team A", Label: "Team A"}, {Value: "Team B", Label: "Team B"}}, sel.Options)
	})

	t.Run("mentor confirmation shows the roster mentor", func(t *testing.T) {
		f, err := Render(model.Instance{Kind: model.BlockMentorConfirmation}, ctx)
		require.NoError(t, err)
		assert.Equal(t, model.ElementDisplay, f.Elements[0].Type)
		assert.Contains(t, f.Elements[0].Text, `"Team A"`)
		assert.Contains(t, f.Elements[0].Text, "Alice Mentor")
		assert.False(t, f.Inputs()["MentorNameOverride"].Required)
	})

	t.Run("overall performance", func(t *testing.T) {
		f, err := Render(model.Instance{Kind: model.BlockOverallPerformance}, ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"OverallSatisfaction", "ClientMeetings", "HoursPerWeek"}, inputIDs(f))
		s := f.Inputs()["OverallSatisfaction"]
		assert.Equal(t, 1, *s.Min)
		assert.Equal(t, 10, *s.Max)
		for _, el := range f.Inputs() {
			assert.True(t, el.Required, el.QuestionID)
		}
	})

	t.Run("client communication has four required sliders", func(t *testing.T) {
		f, err := Render(model.Instance{Kind: model.BlockClientCommunication}, ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"CommWithClient", "AlignWithClient", "CriticalThinking", "Independence"}, inputIDs(f))
		for _, el := range f.Inputs() {
			assert.Equal(t, model.ElementSlider, el.Type)
			assert.Equal(t, 0, *el.Min)
			assert.Equal(t, 10, *el.Max)
			assert.True(t, el.Required)
		}
	})

	t.Run("member evaluation is parameterised by member name", func(t *testing.T) {
		inst := model.Instance{
			InstanceID: "member_evaluation__paul_hicks",
			Kind:       model.BlockMemberEvaluation,
			Bindings:   map[string]string{model.BindingMemberID: "paul_hicks", model.BindingMemberName: "Hicks, Paul"},
		}
		f, err := Render(inst, ctx)
		require.NoError(t, err)
		assert.Equal(t, "Member – Hicks, Paul", f.Title)
		assert.Equal(t, []string{"MemberCommunication", "MemberTechnical", "MemberReliability", "MemberFeedback"}, inputIDs(f))
		assert.Contains(t, f.Inputs()["MemberTechnical"].Label, "Hicks, Paul")
		assert.False(t, f.Inputs()["MemberFeedback"].Required)
	})

	t.Run("director comment is internal and optional", func(t *testing.T) {
		f, err := Render(model.Instance{Kind: model.BlockDirectorComment}, ctx)
		require.NoError(t, err)
		el := f.Inputs()["DirectorComment"]
		assert.True(t, el.Internal)
		assert.False(t, el.Required)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := Render(model.Instance{Kind: "feedback_wall"}, ctx)
		require.ErrorIs(t, err, ErrUnknownBlockKind)
	})

	t.Run("deterministic", func(t *testing.T) {
		a, _ := Render(model.Instance{Kind: model.BlockClientCommunication}, ctx)
		b, _ := Render(model.Instance{Kind: model.BlockClientCommunication}, ctx)
		assert.Equal(t, a, b)
	})
}

func TestValidate(t *testing.T) {
	ctx := Context{Teams: []string{"Team A"}}
	overall, _ := Render(model.Instance{Kind: model.BlockOverallPerformance}, ctx)
	intro, _ := Render(model.Instance{Kind: model.BlockIntro}, ctx)
	director, _ := Render(model.Instance{Kind: model.BlockDirectorComment}, ctx)

	t.Run("accepts partial answers", func(t *testing.T) {
		assert.NoError(t, Validate(overall, model.Answers{"OverallSatisfaction": 7.0}))
		assert.NoError(t, Validate(overall, model.Answers{"ClientMeetings": ""}))
		assert.NoError(t, Validate(overall, model.Answers{}))
	})

	t.Run("rejects slider out of range", func(t *testing.T) {
		err := Validate(overall, model.Answers{"OverallSatisfaction": 0.0})
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "OverallSatisfaction", verr.Fields[0].Field)
		assert.Equal(t, "must be between 1 and 10", verr.Fields[0].Message)
	})

	t.Run("rejects non numeric values", func(t *testing.T) {
		err := Validate(overall, model.Answers{"HoursPerWeek": "lots"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HoursPerWeek")
	})

	t.Run("select must match an option", func(t *testing.T) {
		assert.NoError(t, Validate(intro, model.Answers{"ProjectTeam": "Team A"}))
		assert.Error(t, Validate(intro, model.Answers{"ProjectTeam": 3.0}))
	})

	t.Run("text must be a string", func(t *testing.T) {
		assert.NoError(t, Validate(director, model.Answers{"DirectorComment": "fine"}))
		assert.Error(t, Validate(director, model.Answers{"DirectorComment": 12.0}))
	})

	t.Run("ignores undeclared keys", func(t *testing.T) {
		assert.NoError(t, Validate(overall, model.Answers{"Extra": []any{1, 2}}))
	})
}

func TestNumeric(t *testing.T) {
	n, ok := Numeric(int32(7))
	assert.True(t, ok)
	assert.Equal(t, 7.0, n)

	_, ok = Numeric("")
	assert.False(t, ok)

	n, ok = Numeric("4.5")
	assert.True(t, ok)
	assert.Equal(t, 4.5, n)
}
