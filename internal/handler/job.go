package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hireboard/hireboard/internal/auth"
	"github.com/hireboard/hireboard/internal/handler/dto"
	"github.com/hireboard/hireboard/internal/repository"
	"github.com/hireboard/hireboard/internal/service"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	svc    *service.JobService
	logger *slog.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(svc *service.JobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/v1/jobs.
// Supports ?search= (title or company substring) and ?location= filters.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	jobs, err := h.svc.ListJobs(r.Context(), repository.JobFilter{
		Search:   query.Get("search"),
		Location: query.Get("location"),
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToJobListResponse(jobs))
}

// Create handles POST /api/v1/jobs.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	job, err := h.svc.CreateJob(r.Context(), auth.UserIDFromContext(r.Context()), jobInput(req))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("job_created",
		"job_id", job.ID,
		"posted_by", job.PostedBy,
	)

	writeJSON(w, http.StatusCreated, dto.ToJobResponse(job))
}

// Get handles GET /api/v1/jobs/{id}.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	job, err := h.svc.GetJob(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToJobResponse(job))
}

// Update handles PATCH /api/v1/jobs/{id}.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	var req dto.JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	job, err := h.svc.UpdateJob(r.Context(), id, auth.UserIDFromContext(r.Context()), jobInput(req))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("job_updated", "job_id", job.ID)

	writeJSON(w, http.StatusOK, dto.ToJobResponse(job))
}

// Delete handles DELETE /api/v1/jobs/{id}.
// Applications for the job are removed by the database cascade.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	if err := h.svc.DeleteJob(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("job_deleted", "job_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// MyJobs handles GET /api/v1/my/jobs.
// Returns the employer's own postings, newest first.
func (h *JobHandler) MyJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.ListEmployerJobs(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToJobListResponse(jobs))
}

// jobInput converts the request DTO into the service input.
func jobInput(req dto.JobRequest) service.JobInput {
	return service.JobInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Company:     req.Company,
		Location:    req.Location,
		Salary:      req.Salary,
		Tags:        req.Tags,
	}
}

// handleServiceError maps service errors to HTTP responses.
func (h *JobHandler) handleServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr.Fields)
	case errors.Is(err, service.ErrJobNotFound):
		writeError(w, http.StatusNotFound, "JOB_NOT_FOUND", "Job not found")
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, "NOT_OWNER", "Only the employer who posted this job may modify it")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
