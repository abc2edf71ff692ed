package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adamg02/boatbooking/internal/api"
	"github.com/adamg02/boatbooking/internal/auth"
	"github.com/adamg02/boatbooking/internal/logger"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateBooking godoc
// @Summary      Create booking
// @Description  Books a boat for a 2-hour slot or the full-day window.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Booking request"
// @Success      201      {object}  Booking
// @Failure      400      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Missing required fields"})
		return
	}

	booking, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBoatUnavailable):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Boat not found or not available for booking"})
		case errors.Is(err, ErrInvalidSlot), errors.Is(err, ErrSlotInPast), errors.Is(err, ErrOutsideWindow):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrAccessDenied):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You don't have permission to book this boat"})
		case errors.Is(err, ErrTimeConflict):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Time slot already booked"})
		default:
			logger.Errorf("Create booking failed: %v", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// CancelBooking godoc
// @Summary      Cancel booking
// @Description  Cancels the caller's own booking. Already-cancelled bookings return success.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  api.CancelResponse
// @Failure      400        {object}  api.ErrorResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      500        {object}  api.ErrorResponse
// @Router       /bookings/{bookingID} [delete]
func (h *Handler) CancelBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), userID, bookingID); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only cancel your own bookings"})
		default:
			logger.Errorf("Cancel booking failed: %v", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, api.CancelResponse{Message: "Booking cancelled", BookingID: bookingID})
}

// CancelBookingSlot godoc
// @Summary      Cancel own booking by slot
// @Description  Cancels the caller's booking identified by boat and exact time range.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        boat_id  query     int     true  "Boat ID"
// @Param        start    query     string  true  "Slot start (RFC3339)"
// @Param        end      query     string  true  "Slot end (RFC3339)"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /bookings [delete]
func (h *Handler) CancelBookingSlot(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	boatID, err := strconv.Atoi(c.Query("boat_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid boat ID"})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid start time"})
		return
	}

	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid end time"})
		return
	}

	if err := h.service.CancelSlot(c.Request.Context(), userID, boatID, start, end); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "No booking of yours matches that slot"})
			return
		}
		logger.Errorf("Cancel booking slot failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel booking"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking cancelled"})
}

// ListMyBookings godoc
// @Summary      List my bookings
// @Description  Returns the caller's upcoming confirmed bookings.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   BookingWithDetails
// @Failure      500  {object}  api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookings, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		logger.Errorf("List my bookings failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListDailyBookings godoc
// @Summary      Bookings for a day
// @Description  Returns confirmed bookings starting on the given day.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  true  "Day (YYYY-MM-DD)"
// @Success      200   {array}   BookingWithDetails
// @Failure      400   {object}  api.ErrorResponse
// @Failure      500   {object}  api.ErrorResponse
// @Router       /bookings/daily [get]
func (h *Handler) ListDailyBookings(c *gin.Context) {
	dateParam := c.Query("date")
	if dateParam == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Date is required"})
		return
	}

	dayStart, err := time.ParseInLocation("2006-01-02", dateParam, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid date"})
		return
	}

	bookings, err := h.service.ListForDay(c.Request.Context(), dayStart)
	if err != nil {
		logger.Errorf("List daily bookings failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// DailySummary godoc
// @Summary      Daily booking counts
// @Description  Returns per-day confirmed booking counts over a date span.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        start  query     string  true  "Start day (YYYY-MM-DD)"
// @Param        days   query     int     true  "Number of days"
// @Success      200    {object}  DailySummary
// @Failure      400    {object}  api.ErrorResponse
// @Failure      500    {object}  api.ErrorResponse
// @Router       /bookings/daily-summary [get]
func (h *Handler) DailySummary(c *gin.Context) {
	startParam := c.Query("start")
	daysParam := c.Query("days")

	if startParam == "" || daysParam == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Start date and days are required"})
		return
	}

	start, err := time.ParseInLocation("2006-01-02", startParam, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid parameters"})
		return
	}

	days, err := strconv.Atoi(daysParam)
	if err != nil || days <= 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid parameters"})
		return
	}

	summary, err := h.service.DailySummary(c.Request.Context(), start, days)
	if err != nil {
		logger.Errorf("Daily summary failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ListAllBookings godoc
// @Summary      List all bookings
// @Description  Returns every booking with user and boat details. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   BookingWithDetails
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/bookings [get]
func (h *Handler) ListAllBookings(c *gin.Context) {
	bookings, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		logger.Errorf("List all bookings failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// AdminCancelBooking godoc
// @Summary      Cancel any booking
// @Description  Cancels a booking on behalf of its owner and emails them. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id   query     int  true  "Booking ID"
// @Success      200  {object}  api.CancelResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/bookings [delete]
func (h *Handler) AdminCancelBooking(c *gin.Context) {
	adminID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	idParam := c.Query("id")
	if idParam == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Booking ID required"})
		return
	}

	bookingID, err := strconv.Atoi(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	if err := h.service.AdminCancel(c.Request.Context(), adminID, bookingID); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
			return
		}
		logger.Errorf("Admin cancel booking failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel booking"})
		return
	}

	c.JSON(http.StatusOK, api.CancelResponse{Message: "Booking cancelled", BookingID: bookingID})
}
