package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimasramdhani/jobscrape/internal/db"
	"github.com/dimasramdhani/jobscrape/internal/pipeline"
)

type fakeStore struct {
	jobs      []db.JobRecord
	listErr   error
	updated   *db.JobRecord
	updateErr error
	deleteErr error
	lastQuery string
	lastPatch db.JobPatch
	lastID    uuid.UUID
}

func (f *fakeStore) ListJobs(_ context.Context, query string) ([]db.JobRecord, error) {
	f.lastQuery = query
	return f.jobs, f.listErr
}

func (f *fakeStore) UpdateJob(_ context.Context, id uuid.UUID, patch db.JobPatch) (*db.JobRecord, error) {
	f.lastID = id
	f.lastPatch = patch
	return f.updated, f.updateErr
}

func (f *fakeStore) DeleteJob(_ context.Context, id uuid.UUID) error {
	f.lastID = id
	return f.deleteErr
}

type fakeRunner struct {
	result  *pipeline.Result
	err     error
	lastURL string
}

func (f *fakeRunner) Run(_ context.Context, sourceURL string) (*pipeline.Result, error) {
	f.lastURL = sourceURL
	return f.result, f.err
}

func newTestServer(store Store, runner Runner) *Server {
	return New(Config{Port: 0}, store, runner, zerolog.Nop())
}

func doRequest(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&fakeStore{}, &fakeRunner{})

	w := doRequest(s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestScrapeRouteLiteralColon(t *testing.T) {
	runner := &fakeRunner{result: &pipeline.Result{Count: 0, Records: nil}}
	s := newTestServer(&fakeStore{}, runner)

	w := doRequest(s, http.MethodPost, "/jobs:scrape", `{"url":"https://example.com/jobs"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://example.com/jobs", runner.lastURL)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(&fakeStore{}, &fakeRunner{})

	w := doRequest(s, http.MethodOptions, "/jobs", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthDisabledWithoutSecret(t *testing.T) {
	s := newTestServer(&fakeStore{}, &fakeRunner{})

	w := doRequest(s, http.MethodGet, "/jobs", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejectsMissingToken(t *testing.T) {
	s := New(Config{JWTSecret: "test-secret"}, &fakeStore{}, &fakeRunner{}, zerolog.Nop())

	w := doRequest(s, http.MethodGet, "/jobs", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	s := New(Config{JWTSecret: "test-secret"}, &fakeStore{}, &fakeRunner{}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret"))
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAcceptsValidToken(t *testing.T) {
	s := New(Config{JWTSecret: "test-secret"}, &fakeStore{}, &fakeRunner{}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret"))
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthExemptsHealth(t *testing.T) {
	s := New(Config{JWTSecret: "test-secret"}, &fakeStore{}, &fakeRunner{}, zerolog.Nop())

	w := doRequest(s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
}
