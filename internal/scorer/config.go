// Package scorer implements the intake case score and server-side case qualification.
package scorer

import (
	"github.com/sells-group/lead-intake/internal/model"
)

// Priority tier thresholds.
const (
	HighPriorityMin   = 70
	MediumPriorityMin = 40

	// QualifiedMin is the score at which a case counts as qualified.
	QualifiedMin = 30
	// NormalUrgencyMin is the lowest score that still earns a paralegal screening.
	NormalUrgencyMin = 20
	// RecentIncidentDays marks an incident as time-sensitive.
	RecentIncidentDays = 7
	// LongDescriptionChars is the injury description length that earns points.
	LongDescriptionChars = 200
)

// Rule is one additive scoring predicate.
type Rule struct {
	Name   string
	Points int
	Match  func(model.LeadAnswers) bool
}

func equals(field, value string) func(model.LeadAnswers) bool {
	return func(a model.LeadAnswers) bool { return a.Get(field) == value }
}

func includes(field, value string) func(model.LeadAnswers) bool {
	return func(a model.LeadAnswers) bool { return a.Contains(field, value) }
}

var rules = []Rule{
	{"fault_other", 30, equals(model.FieldFaultAssignment, "other")},
	{"fault_mutual", 15, equals(model.FieldFaultAssignment, "mutual")},
	{"fault_unsure", 10, equals(model.FieldFaultAssignment, "unsure")},
	{"treatment_hospitalization", 25, includes(model.FieldMedicalTreatment, "hospitalization")},
	{"treatment_emergency_room", 20, includes(model.FieldMedicalTreatment, "emergency-room")},
	{"treatment_ongoing", 15, includes(model.FieldMedicalTreatment, "ongoing")},
	{"treatment_physical_therapy", 10, includes(model.FieldMedicalTreatment, "physical-therapy")},
	{"police_report", 15, equals(model.FieldPoliceReport, "yes")},
	{"has_insurance", 10, equals(model.FieldHasInsurance, "yes")},
	{"accident_motor_vehicle", 10, equals(model.FieldAccidentType, "motor-vehicle")},
	{"accident_motorcycle", 15, equals(model.FieldAccidentType, "motorcycle")},
	{"long_description", 10, func(a model.LeadAnswers) bool {
		return len([]rune(a.Get(model.FieldInjuryDescription))) > LongDescriptionChars
	}},
}

// Rules returns a copy of the scoring table.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}
