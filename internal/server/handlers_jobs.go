package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dimasramdhani/jobscrape/internal/db"
	"github.com/dimasramdhani/jobscrape/internal/export"
	"github.com/dimasramdhani/jobscrape/internal/pipeline"
	"github.com/dimasramdhani/jobscrape/internal/validation"
)

// ---------------------------------------------------------------------
// Scrape Handler
// ---------------------------------------------------------------------

type ScrapeRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleScrapeJobs(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.ValidateScrapeURL(req.URL); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.runner.Run(r.Context(), strings.TrimSpace(req.URL))
	if err != nil {
		if errors.Is(err, pipeline.ErrNoListings) {
			s.jsonResponse(w, http.StatusNotFound, map[string]any{
				"success": false,
				"message": "No job listings found on the given page",
			})
			return
		}
		var verr *validation.Error
		if errors.As(err, &verr) {
			s.errorResponse(w, http.StatusBadRequest, verr.Error())
			return
		}
		s.log.Error().Err(err).Str("url", req.URL).Msg("scrape run failed")
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   result.Count,
		"data":    result.Records,
	})
}

// ---------------------------------------------------------------------
// Record Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	jobs, err := s.store.ListJobs(r.Context(), query)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs})
}

type PatchJobRequest struct {
	ID         string  `json:"id" validate:"required"`
	JobTitle   *string `json:"job_title" validate:"omitempty,min=2"`
	Company    *string `json:"company" validate:"omitempty,min=2"`
	LabelSkill *string `json:"label_skill"`
}

// Validate validates the PatchJobRequest using the validator. Fields are
// expected to be trimmed before the call.
func (req *PatchJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

func (s *Server) handlePatchJob(w http.ResponseWriter, r *http.Request) {
	var req PatchJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	jobID, err := uuid.Parse(req.ID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	trimPtr(req.JobTitle)
	trimPtr(req.Company)
	trimPtr(req.LabelSkill)
	// The omitempty tag skips blank strings, so blank-after-trim is
	// rejected here.
	if (req.JobTitle != nil && *req.JobTitle == "") || (req.Company != nil && *req.Company == "") {
		s.errorResponse(w, http.StatusBadRequest, "Invalid field values: blank field")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid field values: "+err.Error())
		return
	}

	patch := db.JobPatch{
		JobTitle:   req.JobTitle,
		Company:    req.Company,
		LabelSkill: req.LabelSkill,
	}
	if patch.IsEmpty() {
		s.errorResponse(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	job, err := s.store.UpdateJob(r.Context(), jobID, patch)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Job record not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"job": job})
}

type DeleteJobRequest struct {
	ID string `json:"id"`
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	var req DeleteJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	jobID, err := uuid.Parse(req.ID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	if err := s.store.DeleteJob(r.Context(), jobID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, "Job record not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true})
}

// ---------------------------------------------------------------------
// Export Handler
// ---------------------------------------------------------------------

func (s *Server) handleExportJobs(w http.ResponseWriter, r *http.Request) {
	format := export.FormatCSV
	if f := r.URL.Query().Get("format"); f != "" {
		format = export.Format(f)
		if format != export.FormatCSV && format != export.FormatJSON {
			s.errorResponse(w, http.StatusBadRequest, "Unsupported export format: "+f)
			return
		}
	}

	jobs, err := s.store.ListJobs(r.Context(), "")
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	switch format {
	case export.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	default:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=jobs.%s", format))
	}

	if err := export.WriteJobs(w, jobs, format); err != nil {
		s.log.Error().Err(err).Msg("writing export")
	}
}

// trimPtr trims the pointed-to string in place, skipping nil.
func trimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}
