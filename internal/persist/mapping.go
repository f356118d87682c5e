// Package persist mirrors live sessions into a durable document store under a
// stable schema and maps documents back into sessions for resume.
package persist

import (
	"strings"

	"mentorsurvey/internal/engine"
	"mentorsurvey/internal/model"
)

// Top-level keys of the answers document.
const (
	keyMemberEvaluations = "member_evaluations"
	keyMisc              = "misc"
)

// Segments returns the location of inst's answers inside the answers document.
func Segments(inst model.Instance) []string {
	switch inst.Kind {
	case model.BlockIntro,
		model.BlockMentorConfirmation,
		model.BlockOverallPerformance,
		model.BlockClientCommunication,
		model.BlockDirectorComment:
		return []string{string(inst.Kind)}
	case model.BlockMemberEvaluation:
		if id := inst.Bindings[model.BindingMemberID]; id != "" {
			return []string{keyMemberEvaluations, id}
		}
		return []string{keyMemberEvaluations, inst.InstanceID}
	default:
		return []string{keyMisc, inst.InstanceID}
	}
}

// FieldPath is the dotted document path of inst's answers, e.g.
// "answers.member_evaluations.paul_hicks".
func FieldPath(inst model.Instance) string {
	return "answers." + strings.Join(Segments(inst), ".")
}

// PlanEntries flattens a plan into its stored form.
func PlanEntries(plan []model.Instance) []model.PlanEntry {
	entries := make([]model.PlanEntry, 0, len(plan))
	for _, inst := range plan {
		entries = append(entries, model.PlanEntry{
			InstanceID: inst.InstanceID,
			Kind:       inst.Kind,
			MemberID:   inst.Bindings[model.BindingMemberID],
		})
	}
	return entries
}

// Lookup returns the answers stored at path, or nil.
func Lookup(doc *model.AnswersDocument, path []string) model.Answers {
	if len(path) == 0 {
		return nil
	}
	switch path[0] {
	case string(model.BlockIntro):
		return doc.Intro
	case string(model.BlockMentorConfirmation):
		return doc.MentorConfirmation
	case string(model.BlockOverallPerformance):
		return doc.OverallPerformance
	case string(model.BlockClientCommunication):
		return doc.ClientCommunication
	case string(model.BlockDirectorComment):
		return doc.DirectorComment
	case keyMemberEvaluations:
		if len(path) == 2 {
			return doc.MemberEvaluations[path[1]]
		}
	case keyMisc:
		if len(path) == 2 {
			return doc.Misc[path[1]]
		}
	}
	return nil
}

// Assign replaces the answers stored at path. Unknown paths are ignored.
func Assign(doc *model.AnswersDocument, path []string, answers model.Answers) {
	if len(path) == 0 {
		return
	}
	switch path[0] {
	case string(model.BlockIntro):
		doc.Intro = answers
	case string(model.BlockMentorConfirmation):
		doc.MentorConfirmation = answers
	case string(model.BlockOverallPerformance):
		doc.OverallPerformance = answers
	case string(model.BlockClientCommunication):
		doc.ClientCommunication = answers
	case string(model.BlockDirectorComment):
		doc.DirectorComment = answers
	case keyMemberEvaluations:
		if len(path) == 2 {
			if doc.MemberEvaluations == nil {
				doc.MemberEvaluations = map[string]model.Answers{}
			}
			doc.MemberEvaluations[path[1]] = answers
		}
	case keyMisc:
		if len(path) == 2 {
			if doc.Misc == nil {
				doc.Misc = map[string]model.Answers{}
			}
			doc.Misc[path[1]] = answers
		}
	}
}

// Restore rebuilds a live session from its durable document. Answers whose
// instance is no longer part of the plan are kept under their original ids.
func Restore(doc *model.SessionDocument) *model.Session {
	names := make(map[string]string, len(doc.Members))
	for _, m := range doc.Members {
		names[m.ID] = m.Name
	}

	s := &model.Session{
		ID:      doc.SessionID,
		Status:  doc.Status,
		Cursor:  doc.Cursor,
		Plan:    make([]model.Instance, 0, len(doc.Plan)),
		Answers: map[string]model.Answers{},
		Meta: model.SessionMeta{
			TeamName:   doc.TeamName,
			MentorName: doc.MentorNameRoster,
			Members:    append([]model.Member(nil), doc.Members...),
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if doc.SubmittedAt != nil {
		t := *doc.SubmittedAt
		s.SubmittedAt = &t
	}
	if s.Status == "" {
		s.Status = model.SessionInProgress
	}

	placed := map[string]bool{}
	for _, e := range doc.Plan {
		inst := model.Instance{InstanceID: e.InstanceID, Kind: e.Kind}
		if e.MemberID != "" {
			name := names[e.MemberID]
			if name == "" {
				name = e.MemberID
			}
			inst.Bindings = map[string]string{
				model.BindingMemberID:   e.MemberID,
				model.BindingMemberName: name,
			}
		}
		s.Plan = append(s.Plan, inst)

		path := Segments(inst)
		placed[strings.Join(path, ".")] = true
		if a := Lookup(&doc.Answers, path); a != nil {
			s.Answers[inst.InstanceID] = a.Clone()
		}
	}
	if len(s.Plan) == 0 {
		s.Plan = []model.Instance{{InstanceID: engine.IntroInstanceID, Kind: model.BlockIntro}}
		if doc.Answers.Intro != nil {
			s.Answers[s.Plan[0].InstanceID] = doc.Answers.Intro.Clone()
		}
	}

	for id, a := range doc.Answers.MemberEvaluations {
		if !placed[keyMemberEvaluations+"."+id] {
			s.Answers[engine.InstanceID(model.BlockMemberEvaluation, id)] = a.Clone()
		}
	}
	for id, a := range doc.Answers.Misc {
		if !placed[keyMisc+"."+id] {
			s.Answers[id] = a.Clone()
		}
	}
	return s
}
