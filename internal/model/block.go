package model

// BlockKind identifies the category of form content an instance renders.
type BlockKind string

const (
	BlockIntro               BlockKind = "intro"
	BlockMentorConfirmation  BlockKind = "mentor_confirmation"
	BlockOverallPerformance  BlockKind = "overall_performance"
	BlockClientCommunication BlockKind = "client_communication"
	BlockMemberEvaluation    BlockKind = "member_evaluation"
	BlockDirectorComment     BlockKind = "director_comment"
)

// BlockKinds lists every supported kind in plan order.
var BlockKinds = []BlockKind{
	BlockIntro,
	BlockMentorConfirmation,
	BlockOverallPerformance,
	BlockClientCommunication,
	BlockMemberEvaluation,
	BlockDirectorComment,
}

// Valid reports whether k is one of the supported kinds.
func (k BlockKind) Valid() bool {
	for _, known := range BlockKinds {
		if k == known {
			return true
		}
	}
	return false
}

// ElementType is the input variant of a form element
type ElementType string

const (
	ElementDisplay ElementType = "display"
	ElementSelect  ElementType = "select"
	ElementSlider  ElementType = "slider"
	ElementNumber  ElementType = "number"
	ElementText    ElementType = "text"
)

// Option is a single choice of a select element
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Element is one entry of a rendered form. Display elements carry only Text.
type Element struct {
	Type       ElementType `json:"type"`
	QuestionID string      `json:"question_id,omitempty"`
	Label      string      `json:"label,omitempty"`
	Text       string      `json:"text,omitempty"`
	Required   bool        `json:"required,omitempty"`
	Options    []Option    `json:"options,omitempty"`
	Min        *int        `json:"min,omitempty"`
	Max        *int        `json:"max,omitempty"`
	Internal   bool        `json:"internal,omitempty"` // hidden from mentor-facing score aggregation
}

// IsInput reports whether the element collects an answer.
func (e Element) IsInput() bool {
	return e.Type != ElementDisplay && e.QuestionID != ""
}

// Form is the displayable definition of a block instance
type Form struct {
	BlockID  BlockKind `json:"block_id"`
	Title    string    `json:"title"`
	Elements []Element `json:"elements"`
}

// Inputs returns the input elements keyed by question id.
func (f Form) Inputs() map[string]Element {
	inputs := make(map[string]Element, len(f.Elements))
	for _, el := range f.Elements {
		if el.IsInput() {
			inputs[el.QuestionID] = el
		}
	}
	return inputs
}
