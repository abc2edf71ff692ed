package boat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/adamg02/boatbooking/internal/logger"
)

func init() {
	logger.Init()
}

type MockBoatService struct{ mock.Mock }

func (m *MockBoatService) ListVisible(ctx context.Context, userID int) ([]BoatWithGroups, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BoatWithGroups), args.Error(1)
}

func (m *MockBoatService) GetVisibleByID(ctx context.Context, userID, boatID int) (*BoatWithGroups, error) {
	args := m.Called(ctx, userID, boatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BoatWithGroups), args.Error(1)
}

func (m *MockBoatService) Create(ctx context.Context, req CreateBoatRequest) (*Boat, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Boat), args.Error(1)
}

func (m *MockBoatService) Update(ctx context.Context, boatID int, req UpdateBoatRequest) error {
	return m.Called(ctx, boatID, req).Error(0)
}

func (m *MockBoatService) SetGroups(ctx context.Context, boatID int, groupIDs []int) error {
	return m.Called(ctx, boatID, groupIDs).Error(0)
}

func (m *MockBoatService) ListAllWithGroups(ctx context.Context) ([]BoatWithGroups, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BoatWithGroups), args.Error(1)
}

func setupBoatRouter(svc Service, upcoming UpcomingFunc, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})

	h := NewHandler(svc, upcoming)
	router.GET("/boats", h.ListBoats)
	router.GET("/boats/:boatID", h.GetBoat)
	return router
}

func TestHandler_GetBoat(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	heron := &BoatWithGroups{
		Boat:   Boat{ID: 3, Name: "Heron", Capacity: 4, IsActive: true},
		Groups: []GroupRef{},
	}
	refs := []BookingRef{
		{ID: 8, UserID: 2, StartTime: start, EndTime: start.Add(2 * time.Hour)},
	}

	svc := new(MockBoatService)
	svc.On("GetVisibleByID", mock.Anything, 1, 3).Return(heron, nil)

	router := setupBoatRouter(svc, func(ctx context.Context, boatID int) ([]BookingRef, error) {
		assert.Equal(t, 3, boatID)
		return refs, nil
	}, 1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/boats/3", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var detail BoatDetail
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "Heron", detail.Name)
	assert.Len(t, detail.Bookings, 1)
	assert.Equal(t, 8, detail.Bookings[0].ID)
	svc.AssertExpectations(t)
}

func TestHandler_GetBoat_Errors(t *testing.T) {
	tests := []struct {
		name       string
		boatID     string
		serviceErr error
		wantStatus int
	}{
		{name: "not found", boatID: "3", serviceErr: ErrBoatNotFound, wantStatus: http.StatusNotFound},
		{name: "access denied", boatID: "3", serviceErr: ErrBoatAccessDenied, wantStatus: http.StatusForbidden},
		{name: "bad id", boatID: "heron", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockBoatService)
			if tt.serviceErr != nil {
				svc.On("GetVisibleByID", mock.Anything, 1, 3).Return(nil, tt.serviceErr)
			}

			router := setupBoatRouter(svc, func(ctx context.Context, boatID int) ([]BookingRef, error) {
				t.Fatal("bookings must not be fetched on error")
				return nil, nil
			}, 1)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/boats/%s", tt.boatID), nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_GetBoat_BookingsFetchFails(t *testing.T) {
	heron := &BoatWithGroups{Boat: Boat{ID: 3, Name: "Heron", IsActive: true}}

	svc := new(MockBoatService)
	svc.On("GetVisibleByID", mock.Anything, 1, 3).Return(heron, nil)

	router := setupBoatRouter(svc, func(ctx context.Context, boatID int) ([]BookingRef, error) {
		return nil, errors.New("db down")
	}, 1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/boats/3", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandler_ListBoats(t *testing.T) {
	boats := []BoatWithGroups{
		{Boat: Boat{ID: 1, Name: "Heron", IsActive: true}},
		{Boat: Boat{ID: 2, Name: "Kingfisher", IsActive: true}},
	}

	svc := new(MockBoatService)
	svc.On("ListVisible", mock.Anything, 7).Return(boats, nil)

	router := setupBoatRouter(svc, nil, 7)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/boats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []BoatWithGroups
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	svc.AssertExpectations(t)
}
