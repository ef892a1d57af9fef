// Package pipeline orchestrates the scrape-extract-persist flow for a single
// submitted URL.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dimasramdhani/jobscrape/internal/db"
	"github.com/dimasramdhani/jobscrape/internal/extraction"
	"github.com/dimasramdhani/jobscrape/internal/fetch"
)

// PlaceholderRequirements is stored when extraction returns a listing without
// requirement text. Kept verbatim from the original dataset.
const PlaceholderRequirements = "Lihat detail di link"

// Stage names used in stage errors and logs.
const (
	StageFetching   = "fetching"
	StageExtracting = "extracting"
	StagePersisting = "persisting"
)

// ErrNoListings is returned when extraction succeeds but finds nothing.
// It is an empty result, not a stage failure; nothing is written.
var ErrNoListings = errors.New("no listings found")

// StageError wraps a failure of one pipeline stage. Any stage failure aborts
// the run before the next stage starts.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Store is the persistence surface the pipeline needs.
type Store interface {
	InsertJobs(ctx context.Context, records []db.JobRecord) ([]db.JobRecord, error)
}

// Result is the outcome of a completed run.
type Result struct {
	Count   int
	Records []db.JobRecord
}

// Orchestrator runs the fetch -> extract -> persist chain. All collaborators
// are injected so tests can substitute stubs.
type Orchestrator struct {
	fetcher          fetch.Fetcher
	extractor        extraction.Extractor
	store            Store
	minContentLength int
	log              zerolog.Logger
}

// New creates an orchestrator. minContentLength below which fetched content
// is flagged (not rejected) defaults to 2000 when zero.
func New(fetcher fetch.Fetcher, extractor extraction.Extractor, store Store, minContentLength int, logger zerolog.Logger) *Orchestrator {
	if minContentLength == 0 {
		minContentLength = 2000
	}
	return &Orchestrator{
		fetcher:          fetcher,
		extractor:        extractor,
		store:            store,
		minContentLength: minContentLength,
		log:              logger,
	}
}

// Run executes one pipeline run for the submitted URL. Stages are strictly
// sequential; the persist step is a single atomic batch insert, so a failed
// run never commits a subset of its records.
func (o *Orchestrator) Run(ctx context.Context, sourceURL string) (*Result, error) {
	if sourceURL == "" {
		return nil, fmt.Errorf("url is required")
	}

	log := o.log.With().Str("url", sourceURL).Logger()
	log.Info().Msg("pipeline run started")

	result, err := o.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, &StageError{Stage: StageFetching, Err: err}
	}
	if len(result.Markdown) < o.minContentLength {
		// Short content is advisory only; small pages can still hold valid
		// listings.
		log.Warn().Int("markdown_len", len(result.Markdown)).Int("min", o.minContentLength).
			Msg("fetched content shorter than threshold, proceeding")
	}
	log.Info().Str("stage", StageFetching).Int("markdown_len", len(result.Markdown)).Msg("stage complete")

	listings, err := o.extractor.Extract(ctx, result.Markdown)
	if err != nil {
		return nil, &StageError{Stage: StageExtracting, Err: err}
	}
	log.Info().Str("stage", StageExtracting).Int("listings", len(listings)).Msg("stage complete")

	if len(listings) == 0 {
		log.Info().Msg("pipeline run found no listings")
		return nil, ErrNoListings
	}

	records := prepareRecords(listings, sourceURL)

	inserted, err := o.store.InsertJobs(ctx, records)
	if err != nil {
		return nil, &StageError{Stage: StagePersisting, Err: err}
	}
	log.Info().Str("stage", StagePersisting).Int("records", len(inserted)).Msg("stage complete")

	return &Result{Count: len(inserted), Records: inserted}, nil
}

// prepareRecords applies per-record defaulting between extraction and
// persistence: the source url backfills url and url_lowongan, and empty
// requirement text gets the placeholder so the store invariant always holds.
func prepareRecords(listings []extraction.Listing, sourceURL string) []db.JobRecord {
	records := make([]db.JobRecord, 0, len(listings))
	for _, l := range listings {
		r := db.JobRecord{
			URL:              sourceURL,
			JobTitle:         l.JobTitle,
			Company:          l.Company,
			Location:         l.Location,
			RequirementsText: l.RequirementsText,
			LabelSkill:       l.LabelSkill,
			URLLowongan:      l.URLLowongan,
		}
		if r.RequirementsText == "" {
			r.RequirementsText = PlaceholderRequirements
		}
		if r.URLLowongan == "" {
			r.URLLowongan = sourceURL
		}
		records = append(records, r)
	}
	return records
}
