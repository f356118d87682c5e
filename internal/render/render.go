// Package render maps block instances to form definitions. It performs no I/O
// and never mutates session state.
package render

import (
	"errors"
	"fmt"

	"mentorsurvey/internal/model"
)

var ErrUnknownBlockKind = errors.New("unknown block kind")

// Context carries the session-level values blocks are rendered with.
type Context struct {
	TeamName   string
	MentorName string
	Teams      []string
}

// Render builds the form for inst.
func Render(inst model.Instance, ctx Context) (model.Form, error) {
	switch inst.Kind {
	case model.BlockIntro:
		return introBlock(ctx.Teams), nil
	case model.BlockMentorConfirmation:
		return mentorConfirmationBlock(ctx.TeamName, ctx.MentorName), nil
	case model.BlockOverallPerformance:
		return overallPerformanceBlock(), nil
	case model.BlockClientCommunication:
		return clientCommunicationBlock(), nil
	case model.BlockMemberEvaluation:
		return memberEvaluationBlock(inst.Bindings[model.BindingMemberName]), nil
	case model.BlockDirectorComment:
		return directorCommentBlock(), nil
	default:
		return model.Form{}, fmt.Errorf("%w: %q", ErrUnknownBlockKind, inst.Kind)
	}
}
