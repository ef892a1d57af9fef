// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/dimasramdhani/jobscrape/internal/db"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScrapeSummary outputs a human-readable summary of a completed scrape.
func (p *Printer) PrintScrapeSummary(sourceURL string, records []db.JobRecord) {
	var sb strings.Builder

	url := sourceURL
	if len(url) > 45 {
		url = url[:42] + "..."
	}
	sb.WriteString(fmt.Sprintf("Source:   %s\n", url))
	sb.WriteString(fmt.Sprintf("Records:  %d\n", len(records)))

	if len(records) > 0 {
		sb.WriteString("\n")
		count := min(len(records), maxItemsToShow)
		for i := 0; i < count; i++ {
			r := records[i]
			title := r.JobTitle
			if len(title) > 40 {
				title = title[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("• %s\n", title))
			sb.WriteString(fmt.Sprintf("  %s, %s\n", r.Company, r.Location))
			if r.LabelSkill != "" {
				skills := r.LabelSkill
				if len(skills) > 40 {
					skills = skills[:37] + "..."
				}
				sb.WriteString(fmt.Sprintf("  [%s]\n", skills))
			}
			if i < count-1 {
				sb.WriteString("\n")
			}
		}
		if len(records) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n... and %d more records", len(records)-maxItemsToShow))
		}
	}

	p.printBox("SCRAPE RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScrapeFailure outputs a failed scrape for one URL.
func (p *Printer) PrintScrapeFailure(sourceURL string, err error) {
	var sb strings.Builder

	url := sourceURL
	if len(url) > 45 {
		url = url[:42] + "..."
	}
	sb.WriteString(fmt.Sprintf("Source:   %s\n", url))

	msg := err.Error()
	if len(msg) > 50 {
		msg = msg[:47] + "..."
	}
	sb.WriteString(fmt.Sprintf("⚠ %s", msg))

	p.printBox("SCRAPE FAILED", sb.String())
}
