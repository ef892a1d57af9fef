// Package validation provides the edge-input gate for job record data.
// It is stricter than the pipeline's own defaulting: the pipeline fills
// missing fields, this package rejects them.
package validation

import "strings"

// JobInput holds candidate record fields. Pointer fields distinguish "absent"
// from "present but empty"; absent optional fields are not validated.
type JobInput struct {
	URL              *string
	JobTitle         *string
	Company          *string
	Location         *string
	RequirementsText string
	LabelSkill       *string
}

// ValidateScrapeURL checks a URL submitted for scraping. Only the scheme
// prefix is checked; reachability is the fetcher's problem.
func ValidateScrapeURL(raw string) error {
	url := strings.ToLower(strings.TrimSpace(raw))
	if url == "" {
		return &Error{Field: "url", Message: "url is required"}
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return &Error{Field: "url", Message: "URL must start with http:// or https://"}
	}
	return nil
}

// ValidateJob checks a candidate record against the field rules enforced
// before any direct write:
//   - requirements_text is required and non-empty after trim
//   - url, if present, must start with http:// or https:// (case-insensitive)
//   - job_title and company, if present, must be at least 2 characters after trim
//   - label_skill, if present, must be non-empty after trim
func ValidateJob(in JobInput) error {
	if strings.TrimSpace(in.RequirementsText) == "" {
		return &Error{Field: "requirements_text", Message: "requirements text is mandatory"}
	}

	if in.URL != nil {
		url := strings.ToLower(strings.TrimSpace(*in.URL))
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return &Error{Field: "url", Message: "URL must start with http:// or https://"}
		}
	}

	if in.JobTitle != nil && len(strings.TrimSpace(*in.JobTitle)) < 2 {
		return &Error{Field: "job_title", Message: "job title format is invalid"}
	}

	if in.Company != nil && len(strings.TrimSpace(*in.Company)) < 2 {
		return &Error{Field: "company", Message: "company format is invalid"}
	}

	if in.LabelSkill != nil && strings.TrimSpace(*in.LabelSkill) == "" {
		return &Error{Field: "label_skill", Message: "label skill format is invalid"}
	}

	return nil
}
