package service

import (
	"context"
	"fmt"

	"mentorsurvey/internal/model"
	"mentorsurvey/internal/persist"
	"mentorsurvey/internal/render"
	"mentorsurvey/internal/roster"
)

const maxReportSessions = 500

// ReportService builds director reports from submitted sessions
type ReportService struct {
	mirror persist.SessionMirror
	roster roster.Provider
}

// NewReportService creates a new report service
func NewReportService(mirror persist.SessionMirror, rp roster.Provider) *ReportService {
	return &ReportService{mirror: mirror, roster: rp}
}

// TeamReport aggregates every submitted session of teamKey. Only answers of
// instances in each session's final plan are counted, and internal questions
// such as the director comment never contribute to scores.
func (s *ReportService) TeamReport(ctx context.Context, teamKey string) (*model.TeamReport, error) {
	docs, err := s.mirror.ListSubmittedByTeam(ctx, teamKey, maxReportSessions)
	if err != nil {
		return nil, fmt.Errorf("list submitted sessions for %s: %w", teamKey, err)
	}

	report := &model.TeamReport{
		TeamKey:  teamKey,
		TeamName: s.teamName(teamKey, docs),
		Sessions: []model.SessionDigest{},
		Team:     []model.ScoreSummary{},
		Members:  []model.MemberReport{},
	}

	team := newScoreSet(model.BlockOverallPerformance, model.BlockClientCommunication)
	members := map[string]*memberAcc{}
	var memberOrder []string

	for i := range docs {
		doc := &docs[i]
		report.Sessions = append(report.Sessions, digest(doc))
		team.add(doc.Answers.OverallPerformance)
		team.add(doc.Answers.ClientCommunication)

		for _, entry := range doc.Plan {
			if entry.Kind != model.BlockMemberEvaluation || entry.MemberID == "" {
				continue
			}
			acc, ok := members[entry.MemberID]
			if !ok {
				acc = &memberAcc{scores: newScoreSet(model.BlockMemberEvaluation)}
				members[entry.MemberID] = acc
				memberOrder = append(memberOrder, entry.MemberID)
			}
			answers := doc.Answers.MemberEvaluations[entry.MemberID]
			acc.scores.add(answers)
			if fb, _ := answers["MemberFeedback"].(string); fb != "" {
				acc.feedback = append(acc.feedback, fb)
			}
		}
	}

	report.Team = team.summaries()
	for _, id := range memberOrder {
		acc := members[id]
		report.Members = append(report.Members, model.MemberReport{
			MemberID: id,
			Scores:   acc.scores.summaries(),
			Feedback: acc.feedback,
		})
	}
	return report, nil
}

func (s *ReportService) teamName(teamKey string, docs []model.SessionDocument) string {
	for _, doc := range docs {
		if doc.TeamName != "" {
			return doc.TeamName
		}
	}
	for _, name := range s.roster.ListTeams() {
		if roster.Slugify(name) == teamKey {
			return name
		}
	}
	return ""
}

func digest(doc *model.SessionDocument) model.SessionDigest {
	comment, _ := doc.Answers.DirectorComment["DirectorComment"].(string)
	return model.SessionDigest{
		SessionID:         doc.SessionID,
		MentorNameRoster:  doc.MentorNameRoster,
		MentorNameEntered: doc.MentorNameEntered,
		SubmittedAt:       doc.SubmittedAt,
		DirectorComment:   comment,
	}
}

type memberAcc struct {
	scores   *scoreSet
	feedback []string
}

// scoreSet accumulates numeric answers for the scored questions of some
// block kinds, in form order.
type scoreSet struct {
	order []string
	sum   map[string]float64
	count map[string]int
}

func newScoreSet(kinds ...model.BlockKind) *scoreSet {
	set := &scoreSet{sum: map[string]float64{}, count: map[string]int{}}
	for _, kind := range kinds {
		form, err := render.Render(model.Instance{Kind: kind}, render.Context{})
		if err != nil {
			continue
		}
		for _, el := range form.Elements {
			if !el.IsInput() || el.Internal {
				continue
			}
			if el.Type != model.ElementSlider && el.Type != model.ElementNumber {
				continue
			}
			set.order = append(set.order, el.QuestionID)
		}
	}
	return set
}

func (s *scoreSet) add(answers model.Answers) {
	for _, qid := range s.order {
		if n, ok := render.Numeric(answers[qid]); ok {
			s.sum[qid] += n
			s.count[qid]++
		}
	}
}

func (s *scoreSet) summaries() []model.ScoreSummary {
	out := []model.ScoreSummary{}
	for _, qid := range s.order {
		n := s.count[qid]
		if n == 0 {
			continue
		}
		out = append(out, model.ScoreSummary{QuestionID: qid, Mean: s.sum[qid] / float64(n), Count: n})
	}
	return out
}
