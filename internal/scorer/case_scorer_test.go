package scorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/lead-intake/internal/model"
)

func TestCalculateCaseScore_Empty(t *testing.T) {
	t.Parallel()

	got := CalculateCaseScore(model.LeadAnswers{})
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, model.PriorityLow, got.Priority)

	a := model.LeadAnswers{}
	a.Set(model.FieldFaultAssignment, "me")
	a.Set(model.FieldPoliceReport, "no")
	a.Set(model.FieldAccidentType, "slip-and-fall")
	a.SetList(model.FieldMedicalTreatment, []string{"none"})
	assert.Equal(t, 0, CalculateCaseScore(a).Score)
}

func TestCalculateCaseScore_MaxScenario(t *testing.T) {
	t.Parallel()

	a := model.LeadAnswers{}
	a.Set(model.FieldFaultAssignment, "other")
	a.SetList(model.FieldMedicalTreatment, []string{"hospitalization", "emergency-room"})
	a.Set(model.FieldPoliceReport, "yes")
	a.Set(model.FieldHasInsurance, "yes")
	a.Set(model.FieldAccidentType, "motorcycle")
	a.Set(model.FieldInjuryDescription, strings.Repeat("x", 250))

	got := CalculateCaseScore(a)
	assert.Equal(t, 125, got.Score)
	assert.Equal(t, model.PriorityHigh, got.Priority)
}

func TestCalculateCaseScore_EachRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		set    func(model.LeadAnswers)
		points int
	}{
		{"fault other", func(a model.LeadAnswers) { a.Set(model.FieldFaultAssignment, "other") }, 30},
		{"fault mutual", func(a model.LeadAnswers) { a.Set(model.FieldFaultAssignment, "mutual") }, 15},
		{"fault unsure", func(a model.LeadAnswers) { a.Set(model.FieldFaultAssignment, "unsure") }, 10},
		{"hospitalization", func(a model.LeadAnswers) { a.Append(model.FieldMedicalTreatment, "hospitalization") }, 25},
		{"emergency room", func(a model.LeadAnswers) { a.Append(model.FieldMedicalTreatment, "emergency-room") }, 20},
		{"ongoing", func(a model.LeadAnswers) { a.Append(model.FieldMedicalTreatment, "ongoing") }, 15},
		{"physical therapy", func(a model.LeadAnswers) { a.Append(model.FieldMedicalTreatment, "physical-therapy") }, 10},
		{"police report", func(a model.LeadAnswers) { a.Set(model.FieldPoliceReport, "yes") }, 15},
		{"insurance", func(a model.LeadAnswers) { a.Set(model.FieldHasInsurance, "yes") }, 10},
		{"motor vehicle", func(a model.LeadAnswers) { a.Set(model.FieldAccidentType, "motor-vehicle") }, 10},
		{"motorcycle", func(a model.LeadAnswers) { a.Set(model.FieldAccidentType, "motorcycle") }, 15},
		{"description 201", func(a model.LeadAnswers) { a.Set(model.FieldInjuryDescription, strings.Repeat("a", 201)) }, 10},
		{"description 200", func(a model.LeadAnswers) { a.Set(model.FieldInjuryDescription, strings.Repeat("a", 200)) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := model.LeadAnswers{}
			tt.set(a)
			assert.Equal(t, tt.points, CalculateCaseScore(a).Score)
		})
	}
}

func TestCalculateCaseScore_Monotonic(t *testing.T) {
	t.Parallel()

	a := model.LeadAnswers{}
	prev := CalculateCaseScore(a).Score
	steps := []func(){
		func() { a.Set(model.FieldHasInsurance, "yes") },
		func() { a.Append(model.FieldMedicalTreatment, "ongoing") },
		func() { a.Set(model.FieldPoliceReport, "yes") },
		func() { a.Append(model.FieldMedicalTreatment, "physical-therapy") },
		func() { a.Set(model.FieldAccidentType, "motor-vehicle") },
	}
	for _, step := range steps {
		step()
		cur := CalculateCaseScore(a).Score
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
	assert.Equal(t, 60, prev)
}

func TestCalculateCaseScore_SumMatchesBreakdown(t *testing.T) {
	t.Parallel()

	a := model.LeadAnswers{}
	a.Set(model.FieldFaultAssignment, "mutual")
	a.SetList(model.FieldMedicalTreatment, []string{"ongoing", "physical-therapy"})
	a.Set(model.FieldAccidentType, "motor-vehicle")

	sum := 0
	for _, h := range Breakdown(a) {
		sum += h.Points
	}
	assert.Equal(t, 50, sum)
	assert.Equal(t, sum, CalculateCaseScore(a).Score)
	assert.Equal(t, model.PriorityMedium, CalculateCaseScore(a).Priority)
}

func TestPriorityFor_Boundaries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, model.PriorityLow, PriorityFor(0))
	assert.Equal(t, model.PriorityLow, PriorityFor(39))
	assert.Equal(t, model.PriorityMedium, PriorityFor(40))
	assert.Equal(t, model.PriorityMedium, PriorityFor(69))
	assert.Equal(t, model.PriorityHigh, PriorityFor(70))
}

func TestRules_ReturnsCopy(t *testing.T) {
	t.Parallel()

	r := Rules()
	assert.Len(t, r, 12)
	r[0].Points = 1000
	assert.Equal(t, 30, Rules()[0].Points)
}
