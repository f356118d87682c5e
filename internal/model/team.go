package model

// Member is a student on a project team. ID is a slug stable for the survey run.
type Member struct {
	ID   string `json:"id" bson:"id" yaml:"id"`
	Name string `json:"name" bson:"name" yaml:"name"`
}

// Team is a roster entry sourced outside the survey
type Team struct {
	Name       string   `json:"name" bson:"team_name" yaml:"name"`
	Key        string   `json:"team_key,omitempty" bson:"team_key" yaml:"-"`
	MentorName string   `json:"mentor_name" bson:"mentor_name" yaml:"mentor"`
	Members    []Member `json:"members" bson:"members" yaml:"members"`
}
