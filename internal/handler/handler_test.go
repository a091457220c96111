package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/domain"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/dto"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/identity"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/repository"
)

// MockEventService is a mock implementation of service.EventServicer
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest, caller *identity.Identity) (*domain.Event, error) {
	args := m.Called(ctx, req, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) ListEvents(ctx context.Context, req *dto.ListEventsRequest) ([]*domain.Event, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

func (m *MockEventService) UpdateEvent(ctx context.Context, eventID string, req *dto.UpdateEventRequest) (*domain.Event, error) {
	args := m.Called(ctx, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventService) DeleteEvent(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockEventService) BatchUpdateStatus(ctx context.Context, eventIDs []string, status string) error {
	args := m.Called(ctx, eventIDs, status)
	return args.Error(0)
}

func (m *MockEventService) BatchDeleteEvents(ctx context.Context, eventIDs []string) error {
	args := m.Called(ctx, eventIDs)
	return args.Error(0)
}

func (m *MockEventService) GetStatistics(ctx context.Context) (*repository.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Statistics), args.Error(1)
}

func (m *MockEventService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockAssetService is a mock implementation of service.AssetServicer
type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) IssueUpload(ctx context.Context, req *dto.IssueUploadRequest) *dto.UploadResponse {
	args := m.Called(ctx, req)
	return args.Get(0).(*dto.UploadResponse)
}

func (m *MockAssetService) ListAssets(ctx context.Context, prefix string) *dto.ListObjectsResponse {
	args := m.Called(ctx, prefix)
	return args.Get(0).(*dto.ListObjectsResponse)
}

func (m *MockAssetService) DeleteAsset(ctx context.Context, key string) bool {
	args := m.Called(ctx, key)
	return args.Bool(0)
}

func (m *MockAssetService) TestConnection(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func newTestHandler(t *testing.T) (*Handler, *MockEventService, *MockAssetService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockEvents := new(MockEventService)
	mockAssets := new(MockAssetService)
	h := NewHandler(mockEvents, mockAssets, identity.NewHeaderProvider(), zap.NewNop())
	return h, mockEvents, mockAssets
}

func asOrganizer(req *http.Request) *http.Request {
	req.Header.Set("X-Auth-Subject", "user_123")
	req.Header.Set("X-Auth-Email", "organizer@example.com")
	req.Header.Set("X-Auth-Role", "organizer")
	return req
}

func asAdmin(req *http.Request) *http.Request {
	req.Header.Set("X-Auth-Subject", "admin_1")
	req.Header.Set("X-Auth-Email", "admin@example.com")
	req.Header.Set("X-Auth-Role", "admin")
	return req
}

func asAttendee(req *http.Request) *http.Request {
	req.Header.Set("X-Auth-Subject", "user_456")
	req.Header.Set("X-Auth-Email", "attendee@example.com")
	req.Header.Set("X-Auth-Role", "attendee")
	return req
}

func TestHandler_HealthCheck_OK(t *testing.T) {
	h, mockEvents, mockAssets := newTestHandler(t)

	mockEvents.On("Ping", mock.Anything).Return(nil)
	mockAssets.On("TestConnection", mock.Anything).Return(true)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_HealthCheck_Degraded(t *testing.T) {
	h, mockEvents, _ := newTestHandler(t)

	mockEvents.On("Ping", mock.Anything).Return(errors.New("table unreachable"))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandler_GetEvent_NotFound(t *testing.T) {
	h, mockEvents, _ := newTestHandler(t)

	mockEvents.On("GetEvent", mock.Anything, "evt_missing").Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/evt_missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Error)
}

func TestHandler_GetEvent_Success(t *testing.T) {
	h, mockEvents, _ := newTestHandler(t)

	mockEvents.On("GetEvent", mock.Anything, "evt_1").
		Return(&domain.Event{EventID: "evt_1", Title: "Demo"}, nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/evt_1", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var event domain.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	assert.Equal(t, "Demo", event.Title)
}

func TestHandler_ListEvents_InvalidStatus(t *testing.T) {
	h, _, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events?status=archived", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ListEvents_ForwardsFilters(t *testing.T) {
	h, mockEvents, _ := newTestHandler(t)

	mockEvents.On("ListEvents", mock.Anything, &dto.ListEventsRequest{
		Status: "active",
		Search: "tech",
	}).Return([]*domain.Event{{EventID: "evt_1"}}, nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events?status=active&search=tech", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.ListEventsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	mockEvents.AssertExpectations(t)
}

func TestHandler_CreateEvent_RequiresIdentity(t *testing.T) {
	h, mockEvents, _ := newTestHandler(t)

	body, _ := json.Marshal(dto.CreateEventRequest{Title: "Demo", Category: "conference", Date: "2026-09-12T19:00:00Z"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockEvents.AssertNotCalled(t, "CreateEvent")
}

func TestHandler_CreateEvent_AttendeeForbidden(t *testing.T) {
	h, mockEvents, _ := newTestHandler(t)

	body, _ := json.Marshal(dto.CreateEventRequest{Title: "Demo", Category: "conference", Date: "2026-09-12T19:00:00Z"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, asAttendee(httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))))

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockEvents.AssertNotCalled(t, "CreateEvent")
}

func TestHandler_CreateEvent_Success(t *testing.T) {
	h, mockEvents, _ := newTestHandler(t)

	mockEvents.On("CreateEvent", mock.Anything, mock.AnythingOfType("*dto.CreateEventRequest"), mock.MatchedBy(func(caller *identity.Identity) bool {
		return caller.SubjectID == "user_123" && caller.Role == identity.RoleOrganizer
	})).Return(&domain.Event{EventID: "evt_1", Title: "Demo"}, nil)

	body, _ := json.Marshal(dto.CreateEventRequest{Title: "Demo", Category: "conference", Date: "2026-09-12T19:00:00Z"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, asOrganizer(httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))))

	assert.Equal(t, http.StatusCreated, w.Code)
	mockEvents.AssertExpectations(t)
}

func TestHandler_CreateEvent_ValidationError(t *testing.T) {
	h, mockEvents, _ := newTestHandler(t)

	mockEvents.On("CreateEvent", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.ErrValidation)

	body, _ := json.Marshal(dto.CreateEventRequest{Title: "Demo", Category: "conference", Date: "2026-09-12T19:00:00Z"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, asOrganizer(httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_BatchDelete_AdminOnly(t *testing.T) {
	h, mockEvents, _ := newTestHandler(t)

	body, _ := json.Marshal(dto.BatchDeleteRequest{EventIDs: []string{"evt_1"}})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, asOrganizer(httptest.NewRequest(http.MethodPost, "/events/batch-delete", bytes.NewReader(body))))

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockEvents.AssertNotCalled(t, "BatchDeleteEvents")
}

func TestHandler_BatchDelete_ReportsPartialFailure(t *testing.T) {
	h, mockEvents, _ := newTestHandler(t)

	mockEvents.On("BatchDeleteEvents", mock.Anything, []string{"evt_1", "evt_missing"}).
		Return(errors.New("delete evt_missing: event not found"))

	body, _ := json.Marshal(dto.BatchDeleteRequest{EventIDs: []string{"evt_1", "evt_missing"}})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, asAdmin(httptest.NewRequest(http.MethodPost, "/events/batch-delete", bytes.NewReader(body))))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.BatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "evt_missing")
}

func TestHandler_BatchStatus_Success(t *testing.T) {
	h, mockEvents, _ := newTestHandler(t)

	mockEvents.On("BatchUpdateStatus", mock.Anything, []string{"evt_1", "evt_2"}, "cancelled").
		Return(nil)

	body, _ := json.Marshal(dto.BatchStatusRequest{EventIDs: []string{"evt_1", "evt_2"}, Status: "cancelled"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, asAdmin(httptest.NewRequest(http.MethodPost, "/events/batch-status", bytes.NewReader(body))))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.BatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestHandler_GetStatistics(t *testing.T) {
	h, mockEvents, _ := newTestHandler(t)

	mockEvents.On("GetStatistics", mock.Anything).Return(&repository.Statistics{
		TotalEvents:      12,
		TotalRevenue:     3400,
		TotalTicketsSold: 210,
		ActiveEvents:     5,
		PendingEvents:    3,
	}, nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, asAdmin(httptest.NewRequest(http.MethodGet, "/statistics", nil)))

	assert.Equal(t, http.StatusOK, w.Code)

	var stats repository.Statistics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 12, stats.TotalEvents)
	assert.Equal(t, 5, stats.ActiveEvents)
}

func TestHandler_IssueUpload_FailureSurfacedAsPayload(t *testing.T) {
	h, _, mockAssets := newTestHandler(t)

	mockAssets.On("IssueUpload", mock.Anything, mock.AnythingOfType("*dto.IssueUploadRequest")).
		Return(&dto.UploadResponse{Success: false, Error: "bucket unreachable"})

	body, _ := json.Marshal(dto.IssueUploadRequest{FileName: "poster.png", ContentType: "image/png"})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, asOrganizer(httptest.NewRequest(http.MethodPost, "/uploads", bytes.NewReader(body))))

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp dto.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "bucket unreachable")
}

func TestHandler_DeleteUpload_StripsLeadingSlash(t *testing.T) {
	h, _, mockAssets := newTestHandler(t)

	mockAssets.On("DeleteAsset", mock.Anything, "event-images/a.png").Return(true)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, asAdmin(httptest.NewRequest(http.MethodDelete, "/uploads/event-images/a.png", nil)))

	assert.Equal(t, http.StatusOK, w.Code)
	mockAssets.AssertExpectations(t)
}
