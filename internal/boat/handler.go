package boat

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adamg02/boatbooking/internal/api"
	"github.com/adamg02/boatbooking/internal/auth"
	"github.com/adamg02/boatbooking/internal/logger"
)

// UpcomingFunc supplies the boat's upcoming confirmed bookings for the
// detail calendar. Wired in the server to keep this package store-agnostic.
type UpcomingFunc func(ctx context.Context, boatID int) ([]BookingRef, error)

type Handler struct {
	service  Service
	upcoming UpcomingFunc
}

func NewHandler(service Service, upcoming UpcomingFunc) *Handler {
	return &Handler{
		service:  service,
		upcoming: upcoming,
	}
}

// ListBoats godoc
// @Summary      List boats
// @Description  Returns active boats the authenticated user may book.
// @Tags         boats
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   BoatWithGroups
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /boats [get]
func (h *Handler) ListBoats(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	boats, err := h.service.ListVisible(c.Request.Context(), userID)
	if err != nil {
		logger.Errorf("List boats failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch boats"})
		return
	}

	c.JSON(http.StatusOK, boats)
}

// GetBoat godoc
// @Summary      Boat details
// @Description  Returns one boat if it is active and the user's groups admit it.
// @Tags         boats
// @Security     BearerAuth
// @Produce      json
// @Param        boatID  path      int  true  "Boat ID"
// @Success      200     {object}  BoatDetail
// @Failure      400     {object}  api.ErrorResponse
// @Failure      403     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /boats/{boatID} [get]
func (h *Handler) GetBoat(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	boatID, err := strconv.Atoi(c.Param("boatID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid boat ID"})
		return
	}

	b, err := h.service.GetVisibleByID(c.Request.Context(), userID, boatID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBoatNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Boat not found or not available"})
		case errors.Is(err, ErrBoatAccessDenied):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You don't have permission to use this boat"})
		default:
			logger.Errorf("Get boat failed: %v", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch boat"})
		}
		return
	}

	bookings, err := h.upcoming(c.Request.Context(), boatID)
	if err != nil {
		logger.Errorf("List boat bookings failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch boat"})
		return
	}

	c.JSON(http.StatusOK, BoatDetail{BoatWithGroups: *b, Bookings: bookings})
}

// ListAllBoats godoc
// @Summary      List all boats
// @Description  Returns every boat with its groups, including inactive ones. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   BoatWithGroups
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/boats [get]
func (h *Handler) ListAllBoats(c *gin.Context) {
	boats, err := h.service.ListAllWithGroups(c.Request.Context())
	if err != nil {
		logger.Errorf("List all boats failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch boats"})
		return
	}

	c.JSON(http.StatusOK, boats)
}

// CreateBoat godoc
// @Summary      Create boat
// @Description  Creates a boat, optionally restricted to access groups. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBoatRequest  true  "Boat data"
// @Success      201      {object}  Boat
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/boats [post]
func (h *Handler) CreateBoat(c *gin.Context) {
	var req CreateBoatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	boat, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("Create boat failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create boat"})
		return
	}

	c.JSON(http.StatusCreated, boat)
}

// UpdateBoat godoc
// @Summary      Update boat
// @Description  Updates boat fields including the active flag. Deactivation leaves existing bookings untouched. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        boatID   path      int                true  "Boat ID"
// @Param        request  body      UpdateBoatRequest  true  "Boat data"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/boats/{boatID} [put]
func (h *Handler) UpdateBoat(c *gin.Context) {
	boatID, err := strconv.Atoi(c.Param("boatID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid boat ID"})
		return
	}

	var req UpdateBoatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.Update(c.Request.Context(), boatID, req); err != nil {
		if errors.Is(err, ErrBoatNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Boat not found"})
			return
		}
		logger.Errorf("Update boat failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update boat"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Boat updated"})
}

// SetBoatGroups godoc
// @Summary      Replace boat's groups
// @Description  Replaces the boat's access restriction set. An empty set opens the boat to all members. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        boatID   path      int               true  "Boat ID"
// @Param        request  body      SetGroupsRequest  true  "Group IDs"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/boats/{boatID}/groups [put]
func (h *Handler) SetBoatGroups(c *gin.Context) {
	boatID, err := strconv.Atoi(c.Param("boatID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid boat ID"})
		return
	}

	var req SetGroupsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.SetGroups(c.Request.Context(), boatID, req.GroupIDs); err != nil {
		if errors.Is(err, ErrBoatNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Boat not found"})
			return
		}
		logger.Errorf("Set boat groups failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update boat groups"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Boat groups updated"})
}
