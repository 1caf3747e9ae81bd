package model

// Priority is the coarse routing tier derived from a case score.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// CaseScore is a computed projection of LeadAnswers; it is never stored on its own.
type CaseScore struct {
	Score    int      `json:"score"`
	Priority Priority `json:"priority"`
}

// Urgency orders follow-up handling for a qualified case.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

// Qualification is the server-side enrichment of a submitted case.
type Qualification struct {
	Qualified      bool     `json:"qualified"`
	Recommendation string   `json:"recommendation"`
	NextSteps      []string `json:"nextSteps"`
	Urgency        Urgency  `json:"urgency"`
}
