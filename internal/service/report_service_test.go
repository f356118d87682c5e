package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorsurvey/internal/cache"
	"mentorsurvey/internal/engine"
	"mentorsurvey/internal/model"
	"mentorsurvey/internal/persist"
	"mentorsurvey/internal/roster"
)

func TestTeamReport(t *testing.T) {
	ctx := context.Background()
	rp := roster.Builtin()
	mirror := persist.NewMemoryMirror()
	svc := NewSurveyService(engine.New(rp), rp, cache.NewMemoryStore(), persist.NewRecorder(mirror))

	submit := func(overall, technical float64, feedback, comment string, doSubmit bool) string {
		resp, err := svc.CreateSession(ctx)
		require.NoError(t, err)
		id := resp.SessionID
		for _, step := range []struct {
			instanceID string
			answers    model.Answers
		}{
			{engine.IntroInstanceID, model.Answers{"ProjectTeam": "Team B"}},
			{"overall_performance__1", model.Answers{"OverallSatisfaction": overall, "ClientMeetings": 2}},
			{"member_evaluation__sam_lee", model.Answers{"MemberTechnical": technical, "MemberFeedback": feedback}},
			{"director_comment__1", model.Answers{"DirectorComment": comment}},
		} {
			_, err := svc.SubmitAnswers(ctx, id, step.instanceID, step.answers)
			require.NoError(t, err)
		}
		if doSubmit {
			_, err = svc.Submit(ctx, id)
			require.NoError(t, err)
		}
		return id
	}

	submit(8, 6, "solid", "watch scope", true)
	submit(6, 10, "", "", true)
	submit(1, 1, "draft", "", false)

	report, err := NewReportService(mirror, rp).TeamReport(ctx, "team_b")
	require.NoError(t, err)

	assert.Equal(t, "Team B", report.TeamName)
	require.Len(t, report.Sessions, 2)

	var comments []string
	for _, d := range report.Sessions {
		assert.Equal(t, "Bob Mentor", d.MentorNameRoster)
		if d.DirectorComment != "" {
			comments = append(comments, d.DirectorComment)
		}
	}
	assert.Equal(t, []string{"watch scope"}, comments)

	assert.Equal(t, []model.ScoreSummary{
		{QuestionID: "OverallSatisfaction", Mean: 7, Count: 2},
		{QuestionID: "ClientMeetings", Mean: 2, Count: 2},
	}, report.Team)

	require.Len(t, report.Members, 2)
	assert.Equal(t, "sam_lee", report.Members[0].MemberID)
	assert.Equal(t, []model.ScoreSummary{{QuestionID: "MemberTechnical", Mean: 8, Count: 2}}, report.Members[0].Scores)
	assert.Equal(t, []string{"solid"}, report.Members[0].Feedback)
	assert.Equal(t, "nina_patel", report.Members[1].MemberID)
	assert.Empty(t, report.Members[1].Scores)

	for _, m := range report.Members {
		for _, sc := range m.Scores {
			assert.NotEqual(t, "DirectorComment", sc.QuestionID)
		}
	}
}

func TestTeamReportWithoutSubmissions(t *testing.T) {
	report, err := NewReportService(persist.NewMemoryMirror(), roster.Builtin()).TeamReport(context.Background(), "team_a")
	require.NoError(t, err)
	assert.Equal(t, "Team A", report.TeamName)
	assert.Empty(t, report.Sessions)
	assert.Empty(t, report.Members)
}
