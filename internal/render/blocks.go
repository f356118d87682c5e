package render

import (
	"fmt"

	"mentorsurvey/internal/model"
)

const introText = "Thank you for working with our students! This survey is designed to gather feedback on " +
	"overall team performance as well as individual contributions. The results will be " +
	"incorporated into each student’s grade for the Capstone course. If you are mentoring " +
	"more than one project, please complete a separate survey for each project."

func display(text string) model.Element {
	return model.Element{Type: model.ElementDisplay, Text: text}
}

func slider(id, label string, lo, hi int) model.Element {
	return model.Element{
		Type:       model.ElementSlider,
		QuestionID: id,
		Label:      label,
		Min:        &lo,
		Max:        &hi,
		Required:   true,
	}
}

func introBlock(teams []string) model.Form {
	options := make([]model.Option, 0, len(teams))
	for _, t := range teams {
		options = append(options, model.Option{Value: t, Label: t})
	}
	return model.Form{
		BlockID: model.BlockIntro,
		Title:   "Intro and Project Selection",
		Elements: []model.Element{
			display(introText),
			{
				Type:       model.ElementSelect,
				QuestionID: "ProjectTeam",
				Label:      "Please select the project team you are evaluating today.",
				Required:   true,
				Options:    options,
			},
		},
	}
}

func mentorConfirmationBlock(teamName, mentorName string) model.Form {
	return model.Form{
		BlockID: model.BlockMentorConfirmation,
		Title:   "Mentor Confirmation",
		Elements: []model.Element{
			display(fmt.Sprintf("Our records show that you are the mentor for \"%s\":\n%s.", teamName, mentorName)),
			{
				Type:       model.ElementText,
				QuestionID: "MentorNameOverride",
				Label:      "If this name is not correct, please enter your name here.",
			},
		},
	}
}

func overallPerformanceBlock() model.Form {
	return model.Form{
		BlockID: model.BlockOverallPerformance,
		Title:   "Overall Performance",
		Elements: []model.Element{
			display("Section 1: Overall team performance"),
			slider("OverallSatisfaction",
				"Please rate the team’s overall productivity and your satisfaction with their "+
					"performance on a scale of 1–10 (10 = very satisfied; scores of 7 or below indicate some level of concern).",
				1, 10),
			{
				Type:       model.ElementNumber,
				QuestionID: "ClientMeetings",
				Label:      "How many client meetings have you attended?",
				Required:   true,
			},
			{
				Type:       model.ElementNumber,
				QuestionID: "HoursPerWeek",
				Label:      "Approximately how many hours per week, on average, did you spend working with the team this semester?",
				Required:   true,
			},
		},
	}
}

var clientCommunicationQuestions = []struct{ id, label string }{
	{"CommWithClient", "How effectively did the students communicate their progress to the client(s) throughout the semester?"},
	{"AlignWithClient", "How well did the students’ work align with the clients’ interests, needs, and stated goals?"},
	{"CriticalThinking", "To what extent did the students demonstrate critical thinking about their problem, for example, by asking thoughtful, clarifying questions or raising important issues?"},
	{"Independence", "To what extent did the students independently propose solutions (score = 10) versus relying on your guidance to determine detailed next steps (score = 0)?"},
}

func clientCommunicationBlock() model.Form {
	elements := []model.Element{display("Section 2: Communication with client and problem solving")}
	for _, q := range clientCommunicationQuestions {
		elements = append(elements, slider(q.id, q.label, 0, 10))
	}
	return model.Form{
		BlockID:  model.BlockClientCommunication,
		Title:    "Client Communication",
		Elements: elements,
	}
}

func memberEvaluationBlock(memberName string) model.Form {
	return model.Form{
		BlockID: model.BlockMemberEvaluation,
		Title:   "Member – " + memberName,
		Elements: []model.Element{
			display(fmt.Sprintf("Now thinking specifically about %s:", memberName)),
			slider("MemberCommunication", fmt.Sprintf("How would you rate %s's Communication skills", memberName), 0, 10),
			slider("MemberTechnical", fmt.Sprintf("How would you rate %s's Technical contribution", memberName), 0, 10),
			slider("MemberReliability", fmt.Sprintf("How would you rate %s's Reliability and accountability", memberName), 0, 10),
			{
				Type:       model.ElementText,
				QuestionID: "MemberFeedback",
				Label:      "Open-ended feedback for " + memberName,
			},
		},
	}
}

func directorCommentBlock() model.Form {
	return model.Form{
		BlockID: model.BlockDirectorComment,
		Title:   "Director Comment",
		Elements: []model.Element{
			{
				Type:       model.ElementText,
				QuestionID: "DirectorComment",
				Label:      "Additional comment to Capstone Director only",
				Internal:   true,
			},
		},
	}
}
