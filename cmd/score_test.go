package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-intake/internal/model"
	"github.com/sells-group/lead-intake/internal/scorer"
)

const answersJSON = `{
  "firstName": "Jane",
  "faultAssignment": "other",
  "medicalTreatment": ["emergency-room", "physical-therapy"],
  "policeReport": "yes",
  "hasInsurance": "yes",
  "accidentType": "motorcycle",
  "incidentDate": "2025-09-18"
}`

// newTestCmd returns a bare command with captured stdin and stdout.
func newTestCmd(stdin string) (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

func TestRunScore_Stdin(t *testing.T) {
	cmd, out := newTestCmd(answersJSON)
	require.NoError(t, runScore(cmd, nil))

	var got scoreOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	// 30 + 20 + 10 + 15 + 10 + 15
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.Len(t, got.Rules, 6)
	assert.Equal(t, "fault_other", got.Rules[0].Name)
}

func TestRunScore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"faultAssignment":"unsure"}`), 0o644))

	cmd, out := newTestCmd("")
	require.NoError(t, runScore(cmd, []string{path}))

	var got scoreOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 10, got.Score)
	assert.Equal(t, model.PriorityLow, got.Priority)
}

func TestRunScore_EmptyAnswers(t *testing.T) {
	cmd, out := newTestCmd("{}")
	require.NoError(t, runScore(cmd, []string{"-"}))
	assert.Contains(t, out.String(), `"rules": []`)
	assert.Contains(t, out.String(), `"score": 0`)
}

func TestRunScore_BadInput(t *testing.T) {
	cmd, _ := newTestCmd("not json")
	err := runScore(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode answers")

	cmd, _ = newTestCmd("")
	err = runScore(cmd, []string{filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
}

func TestRunQualify(t *testing.T) {
	cmd, out := newTestCmd(answersJSON)
	cmd.Flags().String("now", "2025-09-20T15:00:00Z", "")
	require.NoError(t, runQualify(cmd, nil))

	var got qualifyOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 100, got.Score)
	assert.True(t, got.Qualification.Qualified)
	assert.Equal(t, model.UrgencyUrgent, got.Qualification.Urgency)
	require.GreaterOrEqual(t, len(got.Qualification.NextSteps), 2)
	assert.Equal(t, scorer.StepRecentIncident, got.Qualification.NextSteps[0])
	assert.Equal(t, scorer.StepMotorcycleSpecialist, got.Qualification.NextSteps[1])
}

func TestRunQualify_BadNow(t *testing.T) {
	cmd, _ := newTestCmd(answersJSON)
	cmd.Flags().String("now", "yesterday", "")
	err := runQualify(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse --now")
}
