package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
)

func (h *Handler) listRoles(c *gin.Context) {
	roles, err := h.roles.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

func (h *Handler) getRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role identifier"})
		return
	}
	role, err := h.roles.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

type createRoleRequest struct {
	UserType    string              `json:"userType" binding:"required"`
	Description string              `json:"description"`
	Permissions model.PermissionMap `json:"permissions"`
}

func (h *Handler) createRole(c *gin.Context) {
	var req createRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	role, err := h.roles.Create(c.Request.Context(), req.UserType, req.Description, req.Permissions)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}

type updateRoleRequest struct {
	Description string              `json:"description"`
	Permissions model.PermissionMap `json:"permissions"`
}

func (h *Handler) updateRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role identifier"})
		return
	}
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	role, err := h.roles.Update(c.Request.Context(), id, req.Description, req.Permissions)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}
