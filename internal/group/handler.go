package group

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adamg02/boatbooking/internal/api"
	"github.com/adamg02/boatbooking/internal/logger"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListGroups godoc
// @Summary      List groups
// @Description  Returns all access groups. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Group
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/groups [get]
func (h *Handler) ListGroups(c *gin.Context) {
	groups, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		logger.Errorf("List groups failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch groups"})
		return
	}

	c.JSON(http.StatusOK, groups)
}

// CreateGroup godoc
// @Summary      Create group
// @Description  Creates a new access group. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateGroupRequest  true  "Group data"
// @Success      201      {object}  Group
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/groups [post]
func (h *Handler) CreateGroup(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	group, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("Create group failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, group)
}

// GetGroupDetails godoc
// @Summary      Group details
// @Description  Returns a group with its member users and associated boats. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        groupID  path      int  true  "Group ID"
// @Success      200      {object}  GroupDetails
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/groups/{groupID} [get]
func (h *Handler) GetGroupDetails(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("groupID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid group ID"})
		return
	}

	details, err := h.service.GetDetails(c.Request.Context(), groupID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Group not found"})
			return
		}
		logger.Errorf("Group details failed: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch group details"})
		return
	}

	c.JSON(http.StatusOK, details)
}

// RenameGroup godoc
// @Summary      Rename group
// @Description  Renames a group. The Admin group cannot be renamed. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        groupID  path      int                 true  "Group ID"
// @Param        request  body      RenameGroupRequest  true  "New name"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/groups/{groupID} [put]
func (h *Handler) RenameGroup(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("groupID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid group ID"})
		return
	}

	var req RenameGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.Rename(c.Request.Context(), groupID, req.Name); err != nil {
		switch {
		case errors.Is(err, ErrGroupNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Group not found"})
		case errors.Is(err, ErrAdminGroupImmutable):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Admin group cannot be renamed"})
		default:
			logger.Errorf("Rename group failed: %v", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to rename group"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Group renamed"})
}

// DeleteGroup godoc
// @Summary      Delete group
// @Description  Deletes a group and its associations. The Admin group cannot be deleted. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        groupID  path      int  true  "Group ID"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/groups/{groupID} [delete]
func (h *Handler) DeleteGroup(c *gin.Context) {
	groupID, err := strconv.Atoi(c.Param("groupID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid group ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), groupID); err != nil {
		switch {
		case errors.Is(err, ErrGroupNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Group not found"})
		case errors.Is(err, ErrAdminGroupImmutable):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Admin group cannot be deleted"})
		default:
			logger.Errorf("Delete group failed: %v", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete group"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Group deleted"})
}
