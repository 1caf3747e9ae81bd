package intake

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/lead-intake/internal/model"
)

// MockDispatcher implements Dispatcher for testing.
type MockDispatcher struct {
	mock.Mock
	mu     sync.Mutex
	events []Event
}

func (m *MockDispatcher) Dispatch(ctx context.Context, ev Event) Outcome {
	m.mu.Lock()
	m.events = append(m.events, ev)
	m.mu.Unlock()
	args := m.Called(ctx, ev)
	return args.Get(0).(Outcome)
}

func (m *MockDispatcher) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

func text(name, value string) model.FieldInput {
	return model.FieldInput{Name: name, Value: value}
}

func radio(name, value string, checked bool) model.FieldInput {
	return model.FieldInput{Name: name, Type: model.FieldTypeRadio, Value: value, Checked: checked}
}

func checkbox(name, value string, checked bool) model.FieldInput {
	return model.FieldInput{Name: name, Type: model.FieldTypeCheckbox, Value: value, Checked: checked}
}

func step1Inputs() []model.FieldInput {
	return []model.FieldInput{
		text(model.FieldFirstName, "Jane"),
		{Name: model.FieldEmail, Type: model.FieldTypeEmail, Value: "jane@example.com"},
		{Name: model.FieldPhone, Type: model.FieldTypeTel, Value: "(909) 555-1234"},
		radio(model.FieldPreferredContact, "email", false),
		radio(model.FieldPreferredContact, "phone", true),
	}
}

func step2Inputs() []model.FieldInput {
	return []model.FieldInput{
		text(model.FieldLastName, "Doe"),
		{Name: model.FieldIncidentDate, Type: model.FieldTypeDate, Value: "2025-09-01"},
		{Name: model.FieldAccidentType, Type: model.FieldTypeSelect, Value: "motor-vehicle"},
		{Name: model.FieldInjuryDescription, Type: model.FieldTypeTextarea, Value: "Neck pain after being rear-ended."},
		checkbox(model.FieldMedicalTreatment, "emergency-room", true),
		checkbox(model.FieldMedicalTreatment, "hospitalization", false),
		checkbox(model.FieldMedicalTreatment, "physical-therapy", true),
		radio(model.FieldHasInsurance, "yes", true),
		radio(model.FieldHasInsurance, "no", false),
		radio(model.FieldPoliceReport, "yes", true),
		radio(model.FieldFaultAssignment, "other", true),
		{Name: model.FieldAdditionalDetails, Type: model.FieldTypeTextarea, Value: ""},
	}
}
