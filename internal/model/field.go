package model

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// FieldType mirrors the HTML input type of an intake control.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
)

// FieldSpec declares one field of the intake form.
type FieldSpec struct {
	Name     string    `json:"name" yaml:"name"`
	Type     FieldType `json:"type" yaml:"type"`
	Step     int       `json:"step" yaml:"step"`
	Required bool      `json:"required" yaml:"required"`
}

// Schema is an indexed, ordered collection of field specs.
type Schema struct {
	Fields []FieldSpec
	byName map[string]*FieldSpec
	steps  map[int][]FieldSpec
}

// NewSchema creates a Schema with indexed lookups.
func NewSchema(fields []FieldSpec) *Schema {
	s := &Schema{
		Fields: fields,
		byName: make(map[string]*FieldSpec, len(fields)),
		steps:  make(map[int][]FieldSpec),
	}
	for i := range s.Fields {
		f := &s.Fields[i]
		s.byName[f.Name] = f
		s.steps[f.Step] = append(s.steps[f.Step], *f)
	}
	return s
}

// ByName returns the field spec with the given name, or nil if not found.
func (s *Schema) ByName(name string) *FieldSpec {
	return s.byName[name]
}

// ForStep returns the fields rendered in the given step, in declaration order.
func (s *Schema) ForStep(step int) []FieldSpec {
	return s.steps[step]
}

// DefaultSchema returns the two-step personal injury intake form.
func DefaultSchema() *Schema {
	return NewSchema([]FieldSpec{
		{Name: FieldFirstName, Type: FieldTypeText, Step: 1, Required: true},
		{Name: FieldEmail, Type: FieldTypeEmail, Step: 1, Required: true},
		{Name: FieldPhone, Type: FieldTypeTel, Step: 1, Required: true},
		{Name: FieldPreferredContact, Type: FieldTypeRadio, Step: 1, Required: true},

		{Name: FieldLastName, Type: FieldTypeText, Step: 2, Required: true},
		{Name: FieldIncidentDate, Type: FieldTypeDate, Step: 2, Required: true},
		{Name: FieldAccidentType, Type: FieldTypeSelect, Step: 2, Required: true},
		{Name: FieldInjuryDescription, Type: FieldTypeTextarea, Step: 2, Required: true},
		{Name: FieldMedicalTreatment, Type: FieldTypeCheckbox, Step: 2},
		{Name: FieldHasInsurance, Type: FieldTypeRadio, Step: 2, Required: true},
		{Name: FieldPoliceReport, Type: FieldTypeRadio, Step: 2, Required: true},
		{Name: FieldFaultAssignment, Type: FieldTypeRadio, Step: 2, Required: true},
		{Name: FieldAdditionalDetails, Type: FieldTypeTextarea, Step: 2},
	})
}

// LoadSchema reads a field schema from a YAML file with a top-level "fields" list.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "model: read schema %s", path)
	}

	var wrapper struct {
		Fields []FieldSpec `yaml:"fields"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrap(err, "model: parse schema")
	}
	if len(wrapper.Fields) == 0 {
		return nil, eris.Errorf("model: schema %s declares no fields", path)
	}
	for _, f := range wrapper.Fields {
		if f.Name == "" {
			return nil, eris.New("model: schema field without name")
		}
		if f.Step != 1 && f.Step != 2 {
			return nil, eris.Errorf("model: field %s has invalid step %d", f.Name, f.Step)
		}
	}
	return NewSchema(wrapper.Fields), nil
}
