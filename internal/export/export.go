// Package export serializes stored job records for download and CLI output.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dimasramdhani/jobscrape/internal/db"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// WriteJobs writes records to w in the requested format.
func WriteJobs(w io.Writer, jobs []db.JobRecord, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, jobs)
	case FormatCSV:
		return writeCSV(w, jobs)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

func writeJSON(w io.Writer, jobs []db.JobRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jobs)
}

func writeCSV(w io.Writer, jobs []db.JobRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, job := range jobs {
		if err := writer.Write(csvRow(job)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvHeader() []string {
	return []string{
		"id",
		"url",
		"job_title",
		"company",
		"location",
		"requirements_text",
		"label_skill",
		"url_lowongan",
		"created_at",
	}
}

func csvRow(job db.JobRecord) []string {
	created := ""
	if !job.CreatedAt.IsZero() {
		created = job.CreatedAt.Format(time.RFC3339)
	}
	return []string{
		job.ID.String(),
		job.URL,
		job.JobTitle,
		job.Company,
		job.Location,
		job.RequirementsText,
		job.LabelSkill,
		job.URLLowongan,
		created,
	}
}
