package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/http/middleware"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/service"
)

type createDepositRequest struct {
	WasteWeight     float64 `json:"wasteWeight" binding:"required"`
	GarbageCategory string  `json:"garbageCategory" binding:"required"`
	BinID           string  `json:"binId" binding:"required"`
}

func (h *Handler) createDeposit(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}
	var req createDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	deposit, err := h.deposits.Create(c.Request.Context(), service.CreateDepositInput{
		WasteWeight:     req.WasteWeight,
		GarbageCategory: req.GarbageCategory,
		BinIDOrCode:     req.BinID,
		Creator:         model.CreatorRefFromID(principal.UserID),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deposit)
}

func (h *Handler) listDeposits(c *gin.Context) {
	rows, err := h.deposits.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) todayDeposits(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}
	rows, err := h.deposits.ListToday(c.Request.Context(), model.CreatorRefFromID(principal.UserID))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) getDeposit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid deposit identifier"})
		return
	}
	deposit, err := h.deposits.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, deposit)
}

type updateDepositRequest struct {
	WasteWeight     float64 `json:"wasteWeight" binding:"required"`
	GarbageCategory string  `json:"garbageCategory" binding:"required"`
	BinID           string  `json:"binId" binding:"required"`
}

func (h *Handler) updateDeposit(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid deposit identifier"})
		return
	}
	var req updateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	deposit, err := h.deposits.Update(c.Request.Context(), id, service.UpdateDepositInput{
		WasteWeight:     req.WasteWeight,
		GarbageCategory: req.GarbageCategory,
		BinIDOrCode:     req.BinID,
		UpdatedBy:       model.CreatorRefFromID(principal.UserID),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, deposit)
}

func (h *Handler) deleteDeposit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid deposit identifier"})
		return
	}
	deposit, err := h.deposits.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, deposit)
}
