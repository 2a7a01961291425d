package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/anchorleg/anchorleg/internal/app"
	"github.com/anchorleg/anchorleg/internal/metrics"
	"github.com/anchorleg/anchorleg/internal/models"
	"github.com/anchorleg/anchorleg/internal/portal"
)

// Runner is the slice of the portal client the handlers drive. Each method
// is one independent automation call: fresh session, fresh login, one
// stage of work, session released.
type Runner interface {
	ListSports(ctx context.Context, creds portal.Credentials) ([]string, error)
	ListEvents(ctx context.Context, creds portal.Credentials, sportName string) ([]models.EventInfo, error)
	SubmitResults(ctx context.Context, creds portal.Credentials, sportName, eventDate string, data []models.RaceResult) (int, error)
}

type AutomationHandler struct {
	service *app.Service
	runner  Runner
}

func NewAutomationHandler(service *app.Service, runner Runner) *AutomationHandler {
	return &AutomationHandler{
		service: service,
		runner:  runner,
	}
}

func (h *AutomationHandler) HandleListSports(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SportsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, "Username and password required", err)
		return
	}
	corrID := correlationID(req.CorrelationID)

	sports, err := h.runner.ListSports(r.Context(), portal.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	h.observe("sports", start, err)
	if err != nil {
		logger.Error.Printf("Automation error [%s]: %v", corrID, err)
		h.audit(corrID, req.Username, req, failurePayload("Failed to fetch sports", err))
		writeFailure(w, "Failed to fetch sports", err)
		return
	}

	h.audit(corrID, req.Username, req, sports)
	writeJSON(w, http.StatusOK, map[string]any{"sports": sports})
}

func (h *AutomationHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.EventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, "Username and password required", err)
		return
	}
	corrID := correlationID(req.CorrelationID)

	events, err := h.runner.ListEvents(r.Context(), portal.Credentials{
		Username: req.Username,
		Password: req.Password,
	}, req.Sport)
	h.observe("events", start, err)
	if err != nil {
		logger.Error.Printf("Automation error [%s]: %v", corrID, err)
		h.audit(corrID, req.Username, req, failurePayload("Failed to fetch events", err))
		writeFailure(w, "Failed to fetch events", err)
		return
	}

	h.audit(corrID, req.Username, req, events)
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (h *AutomationHandler) HandleSubmitResults(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "Invalid request body", err)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidationError(w, "Username and password required", err)
		return
	}
	corrID := correlationID(req.CorrelationID)

	release, err := h.service.Lock.Acquire(r.Context(), req.Username)
	if err != nil {
		writeJSON(w, http.StatusConflict, models.FailureResponse{
			Success:    false,
			Error:      "Submission already in progress",
			Details:    err.Error(),
			Suggestion: "Wait for the running submission to finish",
		})
		return
	}
	defer release()

	ctx, cancel := context.WithTimeout(r.Context(), h.service.Config.Portal.SubmitTimeout())
	defer cancel()

	warnings, err := h.runner.SubmitResults(ctx, portal.Credentials{
		Username: req.Username,
		Password: req.Password,
	}, req.Sport, req.EventDate, req.Data)
	h.observe("submit", start, err)
	if err != nil {
		logger.Error.Printf("Automation error [%s]: %v", corrID, err)
		h.audit(corrID, req.Username, req, failurePayload("Failed to submit results", err))
		writeFailure(w, "Failed to submit results", err)
		return
	}

	resp := models.SubmitResponse{Success: true, Warnings: warnings}
	h.audit(corrID, req.Username, req, resp)
	writeJSON(w, http.StatusOK, resp)
}

// HandleListAudit exposes the most recent audit rows for one account, for
// operators chasing a failed automation run.
func (h *AutomationHandler) HandleListAudit(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeValidationError(w, "username query parameter required", errors.New("missing username"))
		return
	}

	records, err := h.service.Store.ListRecords(username, 100)
	if err != nil {
		logger.Error.Printf("Failed to list audit records: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.FailureResponse{
			Success: false,
			Error:   "Failed to list audit records",
			Details: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (h *AutomationHandler) observe(stage string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	metrics.AutomationCallsTotal.WithLabelValues(stage, outcome).Inc()
	metrics.AutomationCallDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// audit records one automation call, best-effort and fire-and-forget: a
// failed write retries briefly in the background and never changes the
// call's outcome.
func (h *AutomationHandler) audit(corrID, username string, request, response any) {
	reqBlob, _ := json.Marshal(request)
	respBlob, _ := json.Marshal(response)

	rec := &models.AuditRecord{
		CorrelationID: corrID,
		Username:      username,
		Request:       string(reqBlob),
		Response:      string(respBlob),
	}

	go func() {
		policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
		if err := backoff.Retry(func() error {
			return h.service.Store.CreateRecord(rec)
		}, policy); err != nil {
			logger.Error.Printf("Failed to write audit record %s: %v", corrID, err)
		}
	}()
}

// correlationID keeps the client-supplied tag when present so requests can
// be traced across the client's whole session; otherwise every audit row
// still gets a linkable id.
func correlationID(supplied string) string {
	if supplied != "" {
		return supplied
	}
	return uuid.NewString()
}

func failurePayload(msg string, err error) models.FailureResponse {
	return models.FailureResponse{
		Success:    false,
		Error:      msg,
		Details:    err.Error(),
		Suggestion: "Check credentials and network connection",
	}
}

func writeFailure(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	var notFound *portal.NotFoundError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.Is(err, portal.ErrAuthenticationFailed):
		status = http.StatusUnauthorized
	}

	writeJSON(w, status, failurePayload(msg, err))
}

// writeValidationError rejects a request at the boundary; no browser
// session has been opened at this point.
func writeValidationError(w http.ResponseWriter, msg string, err error) {
	writeJSON(w, http.StatusBadRequest, models.FailureResponse{
		Success:    false,
		Error:      msg,
		Details:    err.Error(),
		Suggestion: "Provide username and password in the request body",
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
	}
}
