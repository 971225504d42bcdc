package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recycling-api/internal/estimation"
	"recycling-api/internal/models"
	"recycling-api/internal/repository"
	"recycling-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPointService is a mock implementation of the PointService interface
type MockPointService struct {
	mock.Mock
}

func (m *MockPointService) ListPoints(ctx context.Context, filter models.PointFilter) ([]models.RecyclingPoint, error) {
	args := m.Called(ctx, filter)
	points, _ := args.Get(0).([]models.RecyclingPoint)
	return points, args.Error(1)
}

func (m *MockPointService) GetPoint(ctx context.Context, id int64) (*models.RecyclingPoint, error) {
	args := m.Called(ctx, id)
	point, _ := args.Get(0).(*models.RecyclingPoint)
	return point, args.Error(1)
}

func (m *MockPointService) CreatePoint(ctx context.Context, input models.CreatePointInput) (*models.RecyclingPoint, error) {
	args := m.Called(ctx, input)
	point, _ := args.Get(0).(*models.RecyclingPoint)
	return point, args.Error(1)
}

func (m *MockPointService) UpdatePoint(ctx context.Context, id int64, input models.UpdatePointInput) (*models.RecyclingPoint, error) {
	args := m.Called(ctx, id, input)
	point, _ := args.Get(0).(*models.RecyclingPoint)
	return point, args.Error(1)
}

func (m *MockPointService) DeletePoint(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var (
	handlerNow  = time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
	lastEmptied = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
)

func samplePoint() *models.RecyclingPoint {
	return &models.RecyclingPoint{
		ID:            1,
		Name:          "Plaza de Armas",
		Latitude:      -33.4378,
		Longitude:     -70.6505,
		FillLevel:     10,
		WasteType:     "Glass",
		LastEmptiedAt: lastEmptied,
		CreatedAt:     lastEmptied,
	}
}

func newTestHandler(svc PointService) *PointHandler {
	h := NewPointHandler(svc)
	h.now = func() time.Time { return handlerNow }
	return h
}

func performRequest(h *PointHandler, method, target string, body any) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.Register(r.Group("/api"))

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestPointHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		mockPoint      *models.RecyclingPoint
		mockError      error
		callService    bool
		expectedStatus int
		expectedBody   map[string]any
	}{
		{
			name:           "found",
			target:         "/api/points/1",
			mockPoint:      samplePoint(),
			callService:    true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid id",
			target:         "/api/points/abc",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "invalid point id"},
		},
		{
			name:           "not found",
			target:         "/api/points/1",
			mockError:      repository.ErrNotFound,
			callService:    true,
			expectedStatus: http.StatusNotFound,
			expectedBody:   map[string]any{"error": "recycling point not found"},
		},
		{
			name:           "service error",
			target:         "/api/points/1",
			mockError:      assert.AnError,
			callService:    true,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]any{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockPointService)
			if tt.callService {
				mockSvc.On("GetPoint", mock.Anything, int64(1)).Return(tt.mockPoint, tt.mockError)
			}

			w := performRequest(newTestHandler(mockSvc), http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decode(t, w)
			if tt.expectedBody != nil {
				assert.Equal(t, tt.expectedBody, body)
			} else {
				assert.Equal(t, "Plaza de Armas", body["name"])
				assert.Equal(t, float64(10), body["fill_level"])
				assert.Equal(t, "80 days", body["estimation"])
				assert.Equal(t, "2025-03-01T08:00:00Z", body["last_emptied_at"])
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestPointHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		filter         *models.PointFilter
		mockPoints     []models.RecyclingPoint
		mockError      error
		expectedStatus int
		expectedLen    int
	}{
		{
			name:           "all points",
			target:         "/api/points",
			filter:         &models.PointFilter{},
			mockPoints:     []models.RecyclingPoint{*samplePoint()},
			expectedStatus: http.StatusOK,
			expectedLen:    1,
		},
		{
			name:           "empty result is an empty array",
			target:         "/api/points?waste_type=Plastic&q=plaza",
			filter:         &models.PointFilter{WasteType: "Plastic", Name: "plaza"},
			mockPoints:     nil,
			expectedStatus: http.StatusOK,
			expectedLen:    0,
		},
		{
			name:   "proximity filter",
			target: "/api/points?lat=-33.4&lon=-70.6&radius_km=2.5",
			filter: &models.PointFilter{Near: &models.Proximity{Latitude: -33.4, Longitude: -70.6, RadiusKm: 2.5}},
			mockPoints: []models.RecyclingPoint{
				*samplePoint(), *samplePoint(),
			},
			expectedStatus: http.StatusOK,
			expectedLen:    2,
		},
		{
			name:           "partial proximity filter",
			target:         "/api/points?lat=-33.4",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed radius",
			target:         "/api/points?lat=-33.4&lon=-70.6&radius_km=far",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "out of range proximity",
			target:         "/api/points?lat=100&lon=-70.6&radius_km=1",
			filter:         &models.PointFilter{Near: &models.Proximity{Latitude: 100, Longitude: -70.6, RadiusKm: 1}},
			mockError:      service.ErrInvalidFilter,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "service error",
			target:         "/api/points",
			filter:         &models.PointFilter{},
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockPointService)
			if tt.filter != nil {
				mockSvc.On("ListPoints", mock.Anything, *tt.filter).Return(tt.mockPoints, tt.mockError)
			}

			w := performRequest(newTestHandler(mockSvc), http.MethodGet, tt.target, nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var body []map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Len(t, body, tt.expectedLen)
				for _, p := range body {
					assert.Contains(t, p, "estimation")
				}
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestPointHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		callService    bool
		mockError      error
		expectedStatus int
	}{
		{
			name:           "valid point",
			body:           map[string]any{"name": "Plaza de Armas", "latitude": -33.4378, "longitude": -70.6505, "fill_level": 10},
			callService:    true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "zero coordinates are valid",
			body:           map[string]any{"name": "Null Island", "latitude": 0, "longitude": 0},
			callService:    true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           map[string]any{"latitude": -33.4378, "longitude": -70.6505},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing latitude",
			body:           map[string]any{"name": "Plaza", "longitude": -70.6505},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "wrong fill level type",
			body:           map[string]any{"name": "Plaza", "latitude": 1, "longitude": 1, "fill_level": "half"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "service error",
			body:           map[string]any{"name": "Plaza", "latitude": 1, "longitude": 1},
			callService:    true,
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockPointService)
			if tt.callService {
				var ret *models.RecyclingPoint
				if tt.mockError == nil {
					ret = samplePoint()
				}
				mockSvc.On("CreatePoint", mock.Anything, mock.AnythingOfType("models.CreatePointInput")).Return(ret, tt.mockError)
			}

			w := performRequest(newTestHandler(mockSvc), http.MethodPost, "/api/points", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				assert.Equal(t, "80 days", decode(t, w)["estimation"])
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestPointHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		body           any
		callService    bool
		mockError      error
		expectedStatus int
	}{
		{
			name:           "patch fill level",
			method:         http.MethodPatch,
			body:           `{"fill_level": 0}`,
			callService:    true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "patch with malformed fill level still succeeds",
			method:         http.MethodPatch,
			body:           `{"fill_level": "lots"}`,
			callService:    true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "put with all required fields",
			method:         http.MethodPut,
			body:           `{"name": "Plaza", "latitude": -33.4, "longitude": -70.6, "fill_level": 50}`,
			callService:    true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "put missing coordinates",
			method:         http.MethodPut,
			body:           `{"name": "Plaza", "fill_level": 50}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown point",
			method:         http.MethodPatch,
			body:           `{"fill_level": 10}`,
			callService:    true,
			mockError:      repository.ErrNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed json",
			method:         http.MethodPatch,
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockPointService)
			if tt.callService {
				var ret *models.RecyclingPoint
				if tt.mockError == nil {
					ret = samplePoint()
				}
				mockSvc.On("UpdatePoint", mock.Anything, int64(1), mock.AnythingOfType("models.UpdatePointInput")).Return(ret, tt.mockError)
			}

			w := performRequest(newTestHandler(mockSvc), tt.method, "/api/points/1", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestPointHandler_Delete(t *testing.T) {
	mockSvc := new(MockPointService)
	mockSvc.On("DeletePoint", mock.Anything, int64(1)).Return(nil)
	mockSvc.On("DeletePoint", mock.Anything, int64(2)).Return(repository.ErrNotFound)
	h := newTestHandler(mockSvc)

	w := performRequest(h, http.MethodDelete, "/api/points/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = performRequest(h, http.MethodDelete, "/api/points/2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(h, http.MethodDelete, "/api/points/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockSvc.AssertExpectations(t)
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	Health(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"status": "ok"}, decode(t, w))
}

func TestPointResponse_EstimationIsDerived(t *testing.T) {
	h := newTestHandler(new(MockPointService))
	p := *samplePoint()
	p.FillLevel = 0

	resp := h.toResponse(p)
	assert.Equal(t, estimation.JustEmptied, resp.Estimation)
	assert.Equal(t, p, resp.RecyclingPoint)
}
