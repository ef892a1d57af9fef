package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestValidateJob_RequirementsTextRequired(t *testing.T) {
	err := ValidateJob(JobInput{RequirementsText: ""})
	require.Error(t, err)

	var ve *Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "requirements_text", ve.Field)

	err = ValidateJob(JobInput{RequirementsText: "   "})
	assert.Error(t, err)

	err = ValidateJob(JobInput{RequirementsText: "Need Go"})
	assert.NoError(t, err)
}

func TestValidateJob_URLScheme(t *testing.T) {
	base := JobInput{RequirementsText: "Need Go"}

	tests := []struct {
		url   string
		valid bool
	}{
		{"https://example.com/jobs", true},
		{"http://example.com/jobs", true},
		{"HTTPS://EXAMPLE.COM/JOBS", true},
		{"  https://example.com ", true},
		{"ftp://example.com", false},
		{"example.com/jobs", false},
		{"", false},
	}

	for _, tt := range tests {
		in := base
		in.URL = strptr(tt.url)
		err := ValidateJob(in)
		if tt.valid {
			assert.NoError(t, err, "url %q", tt.url)
		} else {
			assert.Error(t, err, "url %q", tt.url)
		}
	}

	// Absent url is fine.
	assert.NoError(t, ValidateJob(base))
}

func TestValidateJob_TitleAndCompanyLength(t *testing.T) {
	base := JobInput{RequirementsText: "Need Go"}

	short := base
	short.JobTitle = strptr(" a ")
	assert.Error(t, ValidateJob(short))

	ok := base
	ok.JobTitle = strptr("Backend Engineer")
	assert.NoError(t, ValidateJob(ok))

	shortCompany := base
	shortCompany.Company = strptr("X")
	assert.Error(t, ValidateJob(shortCompany))

	okCompany := base
	okCompany.Company = strptr("Acme")
	assert.NoError(t, ValidateJob(okCompany))
}

func TestValidateJob_LabelSkill(t *testing.T) {
	base := JobInput{RequirementsText: "Need Go"}

	empty := base
	empty.LabelSkill = strptr("  ")
	assert.Error(t, ValidateJob(empty))

	ok := base
	ok.LabelSkill = strptr("Go, Docker")
	assert.NoError(t, ValidateJob(ok))

	// Absent is fine.
	assert.NoError(t, ValidateJob(base))
}

func TestValidateScrapeURL(t *testing.T) {
	require.NoError(t, ValidateScrapeURL("https://example.com/jobs"))
	require.NoError(t, ValidateScrapeURL("  HTTP://example.com  "))

	var verr *Error
	err := ValidateScrapeURL("")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "url", verr.Field)

	err = ValidateScrapeURL("ftp://example.com")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "url", verr.Field)
}
