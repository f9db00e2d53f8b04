package dto

type SubmitInput struct {
	AgeRange           string   `json:"age_range"`
	RelationshipStatus string   `json:"relationship_status"`
	ProblemDuration    string   `json:"problem_duration"`
	Frequency          string   `json:"frequency"`
	AnxietyLevel       int      `json:"anxiety_level"`
	TriedSolutions     []string `json:"tried_solutions"`
	MainConcern        string   `json:"main_concern"`
}

type SubmitOutput struct {
	ID     string `json:"id"`
	UserID string `json:"user_id,omitempty"`
}
