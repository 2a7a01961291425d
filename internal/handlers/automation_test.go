package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anchorleg/anchorleg/internal/app"
	"github.com/anchorleg/anchorleg/internal/models"
	"github.com/anchorleg/anchorleg/internal/portal"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) ListSports(ctx context.Context, creds portal.Credentials) ([]string, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRunner) ListEvents(ctx context.Context, creds portal.Credentials, sportName string) ([]models.EventInfo, error) {
	args := m.Called(ctx, creds, sportName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EventInfo), args.Error(1)
}

func (m *MockRunner) SubmitResults(ctx context.Context, creds portal.Credentials, sportName, eventDate string, data []models.RaceResult) (int, error) {
	args := m.Called(ctx, creds, sportName, eventDate, data)
	return args.Int(0), args.Error(1)
}

// stubStore collects audit writes; safe for the handler's background
// goroutine.
type stubStore struct {
	mu      sync.Mutex
	records []models.AuditRecord
}

func (s *stubStore) Close() error { return nil }

func (s *stubStore) ApplyMigrations(dir string) error { return nil }

func (s *stubStore) CreateRecord(rec *models.AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, *rec)
	return nil
}

func (s *stubStore) ListRecords(username string, limit int) ([]models.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AuditRecord, 0)
	for _, rec := range s.records {
		if rec.Username == username {
			out = append(out, rec)
		}
	}
	return out, nil
}

func newTestHandler(t *testing.T, runner Runner) (*AutomationHandler, *stubStore) {
	t.Helper()

	cfg := &app.Config{}
	cfg.Portal.ApplyDefaults()

	lock, err := app.NewAccountLock(cfg)
	require.NoError(t, err)

	store := &stubStore{}
	service := &app.Service{Config: cfg, Store: store, Lock: lock}

	return NewAutomationHandler(service, runner), store
}

func post(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleListSportsMissingCredentials(t *testing.T) {
	runner := &MockRunner{}
	h, _ := newTestHandler(t, runner)

	rec := post(h.HandleListSports, `{"username": "coach"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.FailureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)

	// No browser session may be opened for a rejected request.
	runner.AssertNotCalled(t, "ListSports", mock.Anything, mock.Anything)
}

func TestHandleListSportsSuccess(t *testing.T) {
	runner := &MockRunner{}
	runner.On("ListSports", mock.Anything, portal.Credentials{Username: "coach", Password: "hunter2"}).
		Return([]string{"Swimming - Boys", "Swimming - Girls"}, nil)

	h, _ := newTestHandler(t, runner)
	rec := post(h.HandleListSports, `{"username": "coach", "password": "hunter2", "requestId": "r-1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Sports []string `json:"sports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Swimming - Boys", "Swimming - Girls"}, resp.Sports)
}

func TestHandleListSportsEmptyAccount(t *testing.T) {
	runner := &MockRunner{}
	runner.On("ListSports", mock.Anything, mock.Anything).Return([]string{}, nil)

	h, _ := newTestHandler(t, runner)
	rec := post(h.HandleListSports, `{"username": "coach", "password": "hunter2"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sports": []}`, rec.Body.String())
}

func TestHandleListSportsAuthFailure(t *testing.T) {
	runner := &MockRunner{}
	runner.On("ListSports", mock.Anything, mock.Anything).
		Return(nil, portal.ErrAuthenticationFailed)

	h, _ := newTestHandler(t, runner)
	rec := post(h.HandleListSports, `{"username": "coach", "password": "wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp models.FailureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Check credentials and network connection", resp.Suggestion)
}

func TestHandleListEventsSportNotFound(t *testing.T) {
	runner := &MockRunner{}
	runner.On("ListEvents", mock.Anything, mock.Anything, "Chess").
		Return(nil, &portal.NotFoundError{Kind: "sport", Name: "Chess"})

	h, _ := newTestHandler(t, runner)
	rec := post(h.HandleListEvents, `{"username": "coach", "password": "hunter2", "sport": "Chess"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp models.FailureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Details, "Chess")
}

func TestHandleSubmitResultsSuccess(t *testing.T) {
	runner := &MockRunner{}
	runner.On("SubmitResults",
		mock.Anything,
		portal.Credentials{Username: "coach", Password: "hunter2"},
		"Swimming - Boys",
		"12/4 4:00pm",
		mock.Anything,
	).Return(0, nil)

	h, _ := newTestHandler(t, runner)
	rec := post(h.HandleSubmitResults, `{
		"username": "coach",
		"password": "hunter2",
		"sport": "Swimming - Boys",
		"eventDate": "12/4 4:00pm",
		"data": [{"race": "200 Free", "results": [{"swimmers": ["John Smith"], "place": 1, "time": "1:23.45"}]}]
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true}`, rec.Body.String())
}

func TestHandleSubmitResultsEmptySetIsSuccess(t *testing.T) {
	runner := &MockRunner{}
	runner.On("SubmitResults", mock.Anything, mock.Anything, "Swimming - Boys", "12/4 4:00pm", mock.Anything).
		Return(0, nil)

	h, _ := newTestHandler(t, runner)
	rec := post(h.HandleSubmitResults, `{
		"username": "coach",
		"password": "hunter2",
		"sport": "Swimming - Boys",
		"eventDate": "12/4 4:00pm",
		"data": []
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true}`, rec.Body.String())
}

func TestHandleSubmitResultsEventNotFound(t *testing.T) {
	runner := &MockRunner{}
	runner.On("SubmitResults", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(0, &portal.NotFoundError{Kind: "event", Name: "1/1 1:00pm"})

	h, _ := newTestHandler(t, runner)
	rec := post(h.HandleSubmitResults, `{
		"username": "coach",
		"password": "hunter2",
		"sport": "Swimming - Boys",
		"eventDate": "1/1 1:00pm"
	}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp models.FailureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to submit results", resp.Error)
}

func TestHandleSubmitResultsReportsWarnings(t *testing.T) {
	runner := &MockRunner{}
	runner.On("SubmitResults", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(2, nil)

	h, _ := newTestHandler(t, runner)
	rec := post(h.HandleSubmitResults, `{
		"username": "coach",
		"password": "hunter2",
		"sport": "Swimming - Boys",
		"eventDate": "12/4 4:00pm"
	}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "warnings": 2}`, rec.Body.String())
}

func TestHandleListAuditRequiresUsername(t *testing.T) {
	h, _ := newTestHandler(t, &MockRunner{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audit", nil)
	rec := httptest.NewRecorder()
	h.HandleListAudit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
