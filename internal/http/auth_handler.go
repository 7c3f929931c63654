package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/http/middleware"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/service"
)

type registerRequest struct {
	Username string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Mobile   string `json:"mobile"`
	UserType string `json:"userType"`
}

type userResponse struct {
	ID       uuid.UUID `json:"_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Mobile   *string   `json:"mobile"`
	UserType *string   `json:"userType"`
}

func toUserResponse(user *model.User, role *model.Role) userResponse {
	resp := userResponse{
		ID:     user.ID,
		Name:   user.Username,
		Email:  user.Email,
		Mobile: user.Mobile,
	}
	if role != nil {
		resp.UserType = &role.UserType
	}
	return resp
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Mobile:   req.Mobile,
		UserType: req.UserType,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user, nil))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"user":  toUserResponse(result.User, result.Role),
	})
}

func (h *Handler) me(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}
	user, role, err := h.auth.CurrentUser(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user, role))
}

type assignRoleRequest struct {
	RoleID string `json:"roleId" binding:"required"`
}

func (h *Handler) assignRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user identifier"})
		return
	}
	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role identifier"})
		return
	}
	user, err := h.auth.AssignRole(c.Request.Context(), userID, roleID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user, nil))
}
