package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSchema_Steps(t *testing.T) {
	t.Parallel()

	s := DefaultSchema()

	step1 := s.ForStep(1)
	names := make([]string, len(step1))
	for i, f := range step1 {
		names[i] = f.Name
	}
	assert.Equal(t, []string{FieldFirstName, FieldEmail, FieldPhone, FieldPreferredContact}, names)
	assert.Len(t, s.ForStep(2), 9)
	assert.Empty(t, s.ForStep(3))

	f := s.ByName(FieldMedicalTreatment)
	require.NotNil(t, f)
	assert.Equal(t, FieldTypeCheckbox, f.Type)
	assert.False(t, f.Required)
	assert.Nil(t, s.ByName("nope"))
}

func TestLoadSchema(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	yaml := `
fields:
  - name: firstName
    type: text
    step: 1
    required: true
  - name: email
    type: email
    step: 1
    required: true
  - name: injuryDescription
    type: textarea
    step: 2
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	s, err := LoadSchema(path)
	require.NoError(t, err)
	assert.Len(t, s.ForStep(1), 2)
	assert.Equal(t, FieldTypeEmail, s.ByName(FieldEmail).Type)
	assert.False(t, s.ByName(FieldInjuryDescription).Required)
}

func TestLoadSchema_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadSchema(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("fields: []\n"), 0o644))
	_, err = LoadSchema(empty)
	assert.ErrorContains(t, err, "declares no fields")

	badStep := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badStep, []byte("fields:\n  - name: x\n    type: text\n    step: 3\n"), 0o644))
	_, err = LoadSchema(badStep)
	assert.ErrorContains(t, err, "invalid step")
}
