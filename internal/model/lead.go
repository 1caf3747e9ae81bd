package model

import "encoding/json"

// Intake form field names. The set is fixed by the form schema.
const (
	FieldFirstName         = "firstName"
	FieldLastName          = "lastName"
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldPreferredContact  = "preferredContact"
	FieldIncidentDate      = "incidentDate"
	FieldAccidentType      = "accidentType"
	FieldInjuryDescription = "injuryDescription"
	FieldMedicalTreatment  = "medicalTreatment"
	FieldHasInsurance      = "hasInsurance"
	FieldPoliceReport      = "policeReport"
	FieldFaultAssignment   = "faultAssignment"
	FieldAdditionalDetails = "additionalDetails"
)

// Value is a single answer: either a scalar string or a multi-select list.
type Value struct {
	Str    string
	List   []string
	IsList bool
}

// MarshalJSON encodes a list value as a JSON array and a scalar as a string.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsList {
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	}
	return json.Marshal(v.Str)
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		v.IsList = true
		v.Str = ""
		return json.Unmarshal(data, &v.List)
	}
	v.IsList = false
	v.List = nil
	return json.Unmarshal(data, &v.Str)
}

// LeadAnswers accumulates form answers across both intake steps. Absent keys
// are unanswered; entries are never removed before submission.
type LeadAnswers map[string]Value

// Get returns the scalar value for name, or "" if absent or a list.
func (a LeadAnswers) Get(name string) string {
	v, ok := a[name]
	if !ok || v.IsList {
		return ""
	}
	return v.Str
}

// List returns the list value for name, or nil if absent or scalar.
func (a LeadAnswers) List(name string) []string {
	v, ok := a[name]
	if !ok || !v.IsList {
		return nil
	}
	return v.List
}

// Has reports whether name has been written.
func (a LeadAnswers) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Set writes a scalar.
func (a LeadAnswers) Set(name, value string) {
	a[name] = Value{Str: value}
}

// SetList writes a list, replacing any previous entries.
func (a LeadAnswers) SetList(name string, values []string) {
	a[name] = Value{List: values, IsList: true}
}

// Append adds value to the list under name, creating it if needed.
func (a LeadAnswers) Append(name, value string) {
	v := a[name]
	v.IsList = true
	v.Str = ""
	v.List = append(v.List, value)
	a[name] = v
}

// Contains reports whether the list under name includes value.
func (a LeadAnswers) Contains(name, value string) bool {
	for _, s := range a.List(name) {
		if s == value {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so payload snapshots stay immutable.
func (a LeadAnswers) Clone() LeadAnswers {
	out := make(LeadAnswers, len(a))
	for k, v := range a {
		if v.IsList {
			v.List = append([]string(nil), v.List...)
		}
		out[k] = v
	}
	return out
}

// FieldInput is one rendered form control as reported by a presentation layer.
type FieldInput struct {
	Name    string    `json:"name"`
	Type    FieldType `json:"type"`
	Value   string    `json:"value"`
	Checked bool      `json:"checked,omitempty"`
}
