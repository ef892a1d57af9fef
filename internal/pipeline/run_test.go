package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimasramdhani/jobscrape/internal/db"
	"github.com/dimasramdhani/jobscrape/internal/extraction"
	"github.com/dimasramdhani/jobscrape/internal/fetch"
)

type stubFetcher struct {
	markdown string
	err      error
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) (*fetch.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &fetch.Result{URL: url, Markdown: s.markdown}, nil
}

type stubExtractor struct {
	listings []extraction.Listing
	err      error
}

func (s *stubExtractor) Extract(ctx context.Context, markdown string) ([]extraction.Listing, error) {
	return s.listings, s.err
}

type stubStore struct {
	inserted []db.JobRecord
	err      error
	calls    int
}

func (s *stubStore) InsertJobs(ctx context.Context, records []db.JobRecord) ([]db.JobRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	s.inserted = records
	return records, nil
}

func newTestOrchestrator(f fetch.Fetcher, e extraction.Extractor, st Store) *Orchestrator {
	return New(f, e, st, 0, zerolog.Nop())
}

func TestRunSuccess(t *testing.T) {
	store := &stubStore{}
	o := newTestOrchestrator(
		&stubFetcher{markdown: "# Jobs\nlots of content"},
		&stubExtractor{listings: []extraction.Listing{
			{JobTitle: "Backend Engineer", Company: "Acme", Location: "Jakarta", RequirementsText: "Go, 3 years"},
			{JobTitle: "Data Analyst", Company: "Acme", Location: "Bandung", RequirementsText: "SQL"},
		}},
		store,
	)

	result, err := o.Run(context.Background(), "https://example.com/jobs")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	require.Len(t, store.inserted, 2)
	assert.Equal(t, "https://example.com/jobs", store.inserted[0].URL)
	assert.Equal(t, "Backend Engineer", store.inserted[0].JobTitle)
}

func TestRunDefaultsMissingFields(t *testing.T) {
	store := &stubStore{}
	o := newTestOrchestrator(
		&stubFetcher{markdown: "content"},
		&stubExtractor{listings: []extraction.Listing{
			{JobTitle: "Engineer", Company: "Acme", Location: "Remote"},
		}},
		store,
	)

	_, err := o.Run(context.Background(), "https://example.com/jobs")
	require.NoError(t, err)
	require.Len(t, store.inserted, 1)
	assert.Equal(t, PlaceholderRequirements, store.inserted[0].RequirementsText)
	assert.Equal(t, "https://example.com/jobs", store.inserted[0].URLLowongan)
}

func TestRunKeepsProvidedListingURL(t *testing.T) {
	store := &stubStore{}
	o := newTestOrchestrator(
		&stubFetcher{markdown: "content"},
		&stubExtractor{listings: []extraction.Listing{
			{JobTitle: "Engineer", Company: "Acme", Location: "Remote", RequirementsText: "Go", URLLowongan: "https://example.com/jobs/42"},
		}},
		store,
	)

	_, err := o.Run(context.Background(), "https://example.com/jobs")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/jobs/42", store.inserted[0].URLLowongan)
}

func TestRunNoListings(t *testing.T) {
	store := &stubStore{}
	o := newTestOrchestrator(
		&stubFetcher{markdown: "content"},
		&stubExtractor{listings: nil},
		store,
	)

	_, err := o.Run(context.Background(), "https://example.com/jobs")
	assert.ErrorIs(t, err, ErrNoListings)
	assert.Zero(t, store.calls, "nothing should be persisted when no listings are found")
}

func TestRunFetchFailureAbortsRun(t *testing.T) {
	store := &stubStore{}
	o := newTestOrchestrator(
		&stubFetcher{err: errors.New("connection refused")},
		&stubExtractor{},
		store,
	)

	_, err := o.Run(context.Background(), "https://example.com/jobs")
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageFetching, stageErr.Stage)
	assert.Zero(t, store.calls)
}

func TestRunExtractFailureAbortsRun(t *testing.T) {
	store := &stubStore{}
	o := newTestOrchestrator(
		&stubFetcher{markdown: "content"},
		&stubExtractor{err: errors.New("model overloaded")},
		store,
	)

	_, err := o.Run(context.Background(), "https://example.com/jobs")
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageExtracting, stageErr.Stage)
	assert.Zero(t, store.calls)
}

func TestRunPersistFailure(t *testing.T) {
	store := &stubStore{err: errors.New("constraint violation")}
	o := newTestOrchestrator(
		&stubFetcher{markdown: "content"},
		&stubExtractor{listings: []extraction.Listing{
			{JobTitle: "Engineer", Company: "Acme", Location: "Remote", RequirementsText: "Go"},
		}},
		store,
	)

	_, err := o.Run(context.Background(), "https://example.com/jobs")
	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StagePersisting, stageErr.Stage)
}

func TestRunShortContentStillProcessed(t *testing.T) {
	store := &stubStore{}
	o := New(
		&stubFetcher{markdown: "tiny"},
		&stubExtractor{listings: []extraction.Listing{
			{JobTitle: "Engineer", Company: "Acme", Location: "Remote", RequirementsText: "Go"},
		}},
		store,
		2000,
		zerolog.Nop(),
	)

	result, err := o.Run(context.Background(), "https://example.com/jobs")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)
}

func TestRunEmptyURL(t *testing.T) {
	o := newTestOrchestrator(&stubFetcher{}, &stubExtractor{}, &stubStore{})
	_, err := o.Run(context.Background(), "")
	assert.Error(t, err)
}
