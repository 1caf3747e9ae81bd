package scorer

import (
	"strings"
	"time"

	"github.com/sells-group/lead-intake/internal/model"
)

// Next-step texts prepended by the qualification overrides.
const (
	StepMotorcycleSpecialist = "Motorcycle accident specialist assigned"
	StepRecentIncident       = "Recent incident - time-sensitive evidence collection"
)

// QualifyInput is the subset of a submitted case that drives qualification.
type QualifyInput struct {
	Score        int
	Priority     model.Priority
	AccidentType string
	IncidentDate string
}

// Qualify maps a scored case to an urgency and recommended next steps. The
// motorcycle and recent-incident overrides run after the tier mapping and
// each prepends its own step.
func Qualify(in QualifyInput, now time.Time) model.Qualification {
	q := model.Qualification{Qualified: in.Score >= QualifiedMin}

	switch {
	case in.Priority == model.PriorityHigh || in.Score >= HighPriorityMin:
		q.Recommendation = "Immediate consultation recommended"
		q.Urgency = model.UrgencyUrgent
		q.NextSteps = []string{
			"Attorney will call within 1 hour",
			"Initial case assessment",
			"Document collection guidance",
			"Free consultation scheduling",
		}
	case in.Priority == model.PriorityMedium || in.Score >= MediumPriorityMin:
		q.Recommendation = "Strong case potential - consultation recommended"
		q.Urgency = model.UrgencyHigh
		q.NextSteps = []string{
			"Attorney will call within 2 hours",
			"Case review and assessment",
			"Free consultation scheduling",
			"Initial documentation review",
		}
	case in.Score >= NormalUrgencyMin:
		q.Recommendation = "Case has potential - consultation advised"
		q.Urgency = model.UrgencyNormal
		q.NextSteps = []string{
			"Paralegal will call within 4 hours",
			"Initial case screening",
			"Documentation collection",
			"Consultation scheduling if qualified",
		}
	default:
		q.Recommendation = "Case requires detailed review"
		q.Urgency = model.UrgencyLow
		q.NextSteps = []string{
			"Case review within 24 hours",
			"Initial assessment call",
			"Determine case viability",
			"Referral if outside our practice area",
		}
	}

	if in.AccidentType == "motorcycle" {
		q.Urgency = model.UrgencyUrgent
		q.NextSteps = append([]string{StepMotorcycleSpecialist}, q.NextSteps...)
	}

	if days, ok := DaysSince(in.IncidentDate, now); ok && days <= RecentIncidentDays {
		q.Urgency = model.UrgencyUrgent
		q.NextSteps = append([]string{StepRecentIncident}, q.NextSteps...)
	}

	return q
}

// DaysSince returns the whole days elapsed between the incident date and now,
// floored. Dates are "2006-01-02" (UTC midnight) or RFC 3339. The second
// result is false when the date is empty or unparseable.
func DaysSince(date string, now time.Time) (int, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return 0, false
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		t, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return 0, false
		}
	}
	secs := now.Unix() - t.Unix()
	days := secs / 86400
	if secs < 0 && secs%86400 != 0 {
		days--
	}
	return int(days), true
}
