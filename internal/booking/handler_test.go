package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/adamg02/boatbooking/internal/api"
	"github.com/adamg02/boatbooking/internal/logger"
)

func init() {
	logger.Init()
}

type MockService struct{ mock.Mock }

func (m *MockService) Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockService) Cancel(ctx context.Context, userID, bookingID int) error {
	return m.Called(ctx, userID, bookingID).Error(0)
}

func (m *MockService) CancelSlot(ctx context.Context, userID, boatID int, start, end time.Time) error {
	return m.Called(ctx, userID, boatID, start, end).Error(0)
}

func (m *MockService) AdminCancel(ctx context.Context, adminID, bookingID int) error {
	return m.Called(ctx, adminID, bookingID).Error(0)
}

func (m *MockService) ListMine(ctx context.Context, userID int) ([]BookingWithDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingWithDetails), args.Error(1)
}

func (m *MockService) ListForDay(ctx context.Context, dayStart time.Time) ([]BookingWithDetails, error) {
	args := m.Called(ctx, dayStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingWithDetails), args.Error(1)
}

func (m *MockService) DailySummary(ctx context.Context, start time.Time, days int) (*DailySummary, error) {
	args := m.Called(ctx, start, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*DailySummary), args.Error(1)
}

func (m *MockService) ListAll(ctx context.Context) ([]BookingWithDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingWithDetails), args.Error(1)
}

func setupRouter(svc Service, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})

	h := NewHandler(svc)
	router.POST("/bookings", h.CreateBooking)
	router.DELETE("/bookings/:bookingID", h.CancelBooking)
	router.DELETE("/bookings", h.CancelBookingSlot)
	router.GET("/bookings", h.ListMyBookings)
	router.GET("/bookings/daily", h.ListDailyBookings)
	router.DELETE("/admin/bookings", h.AdminCancelBooking)
	return router
}

func TestHandler_CreateBooking(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{"created", "", nil, http.StatusCreated},
		{"conflict", "", ErrTimeConflict, http.StatusConflict},
		{"access denied", "", ErrAccessDenied, http.StatusForbidden},
		{"boat missing", "", ErrBoatUnavailable, http.StatusNotFound},
		{"invalid slot", "", ErrInvalidSlot, http.StatusBadRequest},
		{"malformed json", `{"boat_id": nope}`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			if tt.body == "" {
				req := CreateBookingRequest{BoatID: 1, StartTime: start, EndTime: end}
				if tt.serviceErr != nil {
					svc.On("Create", mock.Anything, 7, req).Return(nil, tt.serviceErr)
				} else {
					svc.On("Create", mock.Anything, 7, req).Return(&Booking{
						ID: 1, BoatID: 1, UserID: 7, StartTime: start, EndTime: end, Status: StatusConfirmed,
					}, nil)
				}
			}

			body := tt.body
			if body == "" {
				raw, _ := json.Marshal(CreateBookingRequest{BoatID: 1, StartTime: start, EndTime: end})
				body = string(raw)
			}

			router := setupRouter(svc, 7)
			req := httptest.NewRequest("POST", "/bookings", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_CancelBooking(t *testing.T) {
	tests := []struct {
		name       string
		bookingID  string
		serviceErr error
		wantStatus int
	}{
		{"cancelled", "5", nil, http.StatusOK},
		{"not found", "99", ErrBookingNotFound, http.StatusNotFound},
		{"not owner", "5", ErrNotOwner, http.StatusForbidden},
		{"bad id", "abc", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Cancel", mock.Anything, 7, mock.Anything).Return(tt.serviceErr)

			router := setupRouter(svc, 7)
			req := httptest.NewRequest("DELETE", "/bookings/"+tt.bookingID, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var resp api.CancelResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, 5, resp.BookingID)
			}
		})
	}
}

func TestHandler_CancelBookingSlot(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	query := fmt.Sprintf("boat_id=3&start=%s&end=%s",
		start.Format(time.RFC3339), end.Format(time.RFC3339))

	tests := []struct {
		name       string
		query      string
		serviceErr error
		wantStatus int
	}{
		{"cancelled", query, nil, http.StatusOK},
		{"no matching slot", query, ErrBookingNotFound, http.StatusNotFound},
		{"bad boat id", "boat_id=heron&start=x&end=y", nil, http.StatusBadRequest},
		{"bad start time", "boat_id=3&start=tomorrow&end=later", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("CancelSlot", mock.Anything, 7, 3, start, end).Return(tt.serviceErr)

			router := setupRouter(svc, 7)
			req := httptest.NewRequest("DELETE", "/bookings?"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_ListMyBookings(t *testing.T) {
	svc := new(MockService)
	svc.On("ListMine", mock.Anything, 7).Return([]BookingWithDetails{
		{Booking: Booking{ID: 1, BoatID: 3, UserID: 7, Status: StatusConfirmed}, BoatName: "Heron"},
	}, nil)

	router := setupRouter(svc, 7)
	req := httptest.NewRequest("GET", "/bookings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []BookingWithDetails
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "Heron", got[0].BoatName)
}

func TestHandler_ListDailyBookings(t *testing.T) {
	svc := new(MockService)
	svc.On("ListForDay", mock.Anything, mock.Anything).Return([]BookingWithDetails{}, nil)

	router := setupRouter(svc, 7)

	t.Run("valid date", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/bookings/daily?date=2026-09-14", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing date", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/bookings/daily", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("garbage date", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/bookings/daily?date=next-tuesday", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_AdminCancelBooking(t *testing.T) {
	svc := new(MockService)
	svc.On("AdminCancel", mock.Anything, 2, 5).Return(nil)

	router := setupRouter(svc, 2)
	req := httptest.NewRequest("DELETE", fmt.Sprintf("/admin/bookings?id=%d", 5), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
