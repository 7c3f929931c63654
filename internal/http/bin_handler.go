package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/http/middleware"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/service"
)

type createBinRequest struct {
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	ThresholdLevel *float64 `json:"thresholdLevel"`
	Capacity       *float64 `json:"capacity"`
	BinType        string   `json:"binType" binding:"required"`
}

func (h *Handler) createBin(c *gin.Context) {
	var req createBinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	bin, err := h.bins.Create(c.Request.Context(), service.CreateBinInput{
		Name:           req.Name,
		Location:       req.Location,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		ThresholdLevel: req.ThresholdLevel,
		Capacity:       req.Capacity,
		BinType:        req.BinType,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bin)
}

func (h *Handler) listBins(c *gin.Context) {
	bins, err := h.bins.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, bins)
}

func (h *Handler) listOwnBins(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}
	bins, err := h.bins.ListForOwner(c.Request.Context(), principal.UserID, c.Param("binType"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, bins)
}

func (h *Handler) getBin(c *gin.Context) {
	bin, err := h.bins.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, bin)
}

type updateBinRequest struct {
	Name           *string  `json:"name"`
	Location       *string  `json:"location"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	ThresholdLevel *float64 `json:"thresholdLevel"`
	Capacity       *float64 `json:"capacity"`
	Status         *string  `json:"status"`
}

func (h *Handler) updateBin(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid bin identifier"})
		return
	}
	var req updateBinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	bin, err := h.bins.Update(c.Request.Context(), id, service.UpdateBinInput{
		Name:           req.Name,
		Location:       req.Location,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		ThresholdLevel: req.ThresholdLevel,
		Capacity:       req.Capacity,
		Status:         req.Status,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, bin)
}

func (h *Handler) deleteBin(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid bin identifier"})
		return
	}
	if err := h.bins.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bin deleted"})
}

func (h *Handler) resetBinLevel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid bin identifier"})
		return
	}
	bin, err := h.bins.ResetLevel(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, bin)
}
