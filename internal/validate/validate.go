// Package validate implements per-field and per-step checks for the intake form.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sells-group/lead-intake/internal/model"
)

// User-visible error messages.
const (
	MsgRequired    = "This field is required"
	MsgEmail       = "Please enter a valid email address"
	MsgPhone       = "Please enter a valid phone number"
	MsgSelect      = "Please select an option"
	msgInjuryShort = "Please provide at least %d characters describing your injuries"
)

var (
	// Intentionally permissive: any non-space, non-@ run on each side of "@",
	// with at least one dot in the domain part.
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)
)

// IsEmail reports whether s has the local@domain.tld shape.
func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsPhone reports whether s is in the canonical (XXX) XXX-XXXX shape.
func IsPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// Policy holds optional validation rules.
type Policy struct {
	// InjuryMinLength, when > 0, rejects step-2 injury descriptions shorter
	// than this many characters. 0 disables the check.
	InjuryMinLength int `yaml:"injury_min_length" mapstructure:"injury_min_length"`
}

// Errors maps field name to the message currently shown for it.
type Errors map[string]string

// Validator checks answers against a field schema. It is not safe for
// concurrent use; each form session owns one.
type Validator struct {
	schema *model.Schema
	policy Policy
	errs   Errors
}

// New creates a Validator. A nil schema uses model.DefaultSchema.
func New(schema *model.Schema, policy Policy) *Validator {
	if schema == nil {
		schema = model.DefaultSchema()
	}
	return &Validator{
		schema: schema,
		policy: policy,
		errs:   Errors{},
	}
}

// Errors returns the messages currently shown, keyed by field name.
func (v *Validator) Errors() Errors {
	return v.errs
}

// Clear removes any shown message for the field.
func (v *Validator) Clear(name string) {
	delete(v.errs, name)
}

// ValidateField checks a single field and records or clears its message.
func (v *Validator) ValidateField(spec model.FieldSpec, answers model.LeadAnswers) bool {
	v.Clear(spec.Name)

	// A radio group passes only if exactly one option is checked, which the
	// collector represents as a non-empty scalar.
	if spec.Type == model.FieldTypeRadio {
		if spec.Required && strings.TrimSpace(answers.Get(spec.Name)) == "" {
			v.errs[spec.Name] = MsgSelect
			return false
		}
		return true
	}

	if spec.Type == model.FieldTypeCheckbox {
		if spec.Required && len(answers.List(spec.Name)) == 0 {
			v.errs[spec.Name] = MsgRequired
			return false
		}
		return true
	}

	value := strings.TrimSpace(answers.Get(spec.Name))
	if spec.Required && value == "" {
		v.errs[spec.Name] = MsgRequired
		return false
	}

	switch spec.Type {
	case model.FieldTypeEmail:
		if value != "" && !IsEmail(value) {
			v.errs[spec.Name] = MsgEmail
			return false
		}
	case model.FieldTypeTel:
		if value != "" && !IsPhone(value) {
			v.errs[spec.Name] = MsgPhone
			return false
		}
	}
	return true
}

// ValidateStep checks every field of the step. All failing fields get a
// message; the result is true only if every field passes.
func (v *Validator) ValidateStep(step int, answers model.LeadAnswers) bool {
	ok := true
	for _, spec := range v.schema.ForStep(step) {
		if !v.ValidateField(spec, answers) {
			ok = false
		}
	}

	if step == 2 && v.policy.InjuryMinLength > 0 {
		if _, shown := v.errs[model.FieldInjuryDescription]; !shown &&
			len([]rune(answers.Get(model.FieldInjuryDescription))) < v.policy.InjuryMinLength {
			v.errs[model.FieldInjuryDescription] = fmt.Sprintf(msgInjuryShort, v.policy.InjuryMinLength)
			ok = false
		}
	}
	return ok
}
