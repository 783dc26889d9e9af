package types

// Priority is the urgency of a suggestion.
type Priority string

// Suggestion priorities.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Suggestion is one advisory item. Its only identity is its position in a ranked list.
type Suggestion struct {
	Priority        Priority `json:"priority"`
	Category        string   `json:"category"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	EstimatedImpact int      `json:"estimated_impact"`
}
