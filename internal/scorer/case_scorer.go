package scorer

import (
	"github.com/sells-group/lead-intake/internal/model"
)

// RuleHit is a satisfied scoring rule.
type RuleHit struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Breakdown returns every satisfied rule in table order.
func Breakdown(answers model.LeadAnswers) []RuleHit {
	var hits []RuleHit
	for _, r := range rules {
		if r.Match(answers) {
			hits = append(hits, RuleHit{Name: r.Name, Points: r.Points})
		}
	}
	return hits
}

// CalculateCaseScore sums the points of every satisfied rule and maps the
// total to a priority tier. It is pure and order-independent.
func CalculateCaseScore(answers model.LeadAnswers) model.CaseScore {
	score := 0
	for _, h := range Breakdown(answers) {
		score += h.Points
	}
	return model.CaseScore{Score: score, Priority: PriorityFor(score)}
}

// PriorityFor maps a score to its tier: >= 70 high, >= 40 medium, else low.
func PriorityFor(score int) model.Priority {
	switch {
	case score >= HighPriorityMin:
		return model.PriorityHigh
	case score >= MediumPriorityMin:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}
