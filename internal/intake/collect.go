package intake

import (
	"github.com/sells-group/lead-intake/internal/model"
)

// Collect merges the controls of one rendered step into answers. Checked
// checkboxes append under their shared name, a checked radio sets its group's
// scalar, and any other control sets a scalar. Unnamed controls are ignored.
// Checkbox groups present in inputs are reset first so that re-collecting a
// step after navigating back does not duplicate entries.
func Collect(answers model.LeadAnswers, schema *model.Schema, inputs []model.FieldInput) {
	typed := make([]model.FieldInput, 0, len(inputs))
	for _, in := range inputs {
		if in.Name == "" {
			continue
		}
		if in.Type == "" && schema != nil {
			if spec := schema.ByName(in.Name); spec != nil {
				in.Type = spec.Type
			}
		}
		typed = append(typed, in)
	}

	for _, in := range typed {
		if in.Type == model.FieldTypeCheckbox {
			answers.SetList(in.Name, []string{})
		}
	}

	for _, in := range typed {
		switch in.Type {
		case model.FieldTypeCheckbox:
			if in.Checked {
				answers.Append(in.Name, in.Value)
			}
		case model.FieldTypeRadio:
			if in.Checked {
				answers.Set(in.Name, in.Value)
			}
		default:
			answers.Set(in.Name, in.Value)
		}
	}
}
