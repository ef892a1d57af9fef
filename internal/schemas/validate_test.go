package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateListings_Valid(t *testing.T) {
	payload := `{
		"listings": [
			{
				"job_title": "Backend Engineer",
				"company": "Acme",
				"location": "Remote",
				"requirements_text": "Need React, Node.js, AWS",
				"label_skill": "React, Node.js, AWS",
				"url_lowongan": "https://example.com/jobs/1"
			}
		]
	}`

	assert.NoError(t, ValidateListings([]byte(payload)))
}

func TestValidateListings_EmptyArrayIsValid(t *testing.T) {
	assert.NoError(t, ValidateListings([]byte(`{"listings": []}`)))
}

func TestValidateListings_OptionalFieldsMayBeAbsent(t *testing.T) {
	payload := `{
		"listings": [
			{
				"job_title": "Data Engineer",
				"company": "Beta Corp",
				"location": "Jakarta",
				"requirements_text": "SQL, Python, Airflow"
			}
		]
	}`

	assert.NoError(t, ValidateListings([]byte(payload)))
}

func TestValidateListings_MissingRequiredField(t *testing.T) {
	payload := `{
		"listings": [
			{"job_title": "Backend Engineer", "company": "Acme", "location": "Remote"}
		]
	}`

	err := ValidateListings([]byte(payload))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Error(), "requirements_text")
}

func TestValidateListings_MissingListingsKey(t *testing.T) {
	err := ValidateListings([]byte(`{"jobs": []}`))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidateListings_WrongFieldType(t *testing.T) {
	payload := `{
		"listings": [
			{
				"job_title": 42,
				"company": "Acme",
				"location": "Remote",
				"requirements_text": "Go"
			}
		]
	}`

	err := ValidateListings([]byte(payload))
	require.Error(t, err)
}
