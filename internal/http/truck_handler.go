package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/http/middleware"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/service"
)

type createTruckRequest struct {
	Capacity        float64  `json:"capacity" binding:"required"`
	Driver          string   `json:"driver" binding:"required"`
	CurrentLocation *string  `json:"currentLocation"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

func (h *Handler) createTruck(c *gin.Context) {
	var req createTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	driver, err := uuid.Parse(req.Driver)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid driver identifier"})
		return
	}
	truck, err := h.trucks.Create(c.Request.Context(), service.CreateTruckInput{
		Capacity:        req.Capacity,
		Driver:          driver,
		CurrentLocation: req.CurrentLocation,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, truck)
}

func (h *Handler) listTrucks(c *gin.Context) {
	trucks, err := h.trucks.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, trucks)
}

func (h *Handler) getTruck(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid truck identifier"})
		return
	}
	truck, err := h.trucks.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, truck)
}

func (h *Handler) truckByDriver(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}
	truck, err := h.trucks.GetByDriver(c.Request.Context(), principal.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, truck)
}

type updateTruckRequest struct {
	Capacity        *float64 `json:"capacity"`
	Driver          *string  `json:"driver"`
	CurrentLocation *string  `json:"currentLocation"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

func (h *Handler) updateTruck(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid truck identifier"})
		return
	}
	var req updateTruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	input := service.UpdateTruckInput{
		Capacity:        req.Capacity,
		CurrentLocation: req.CurrentLocation,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
	}
	if req.Driver != nil {
		driver, err := uuid.Parse(*req.Driver)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid driver identifier"})
			return
		}
		input.Driver = &driver
	}
	truck, err := h.trucks.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, truck)
}

func (h *Handler) deleteTruck(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid truck identifier"})
		return
	}
	if err := h.trucks.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Truck deleted"})
}

type truckStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) setTruckStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid truck identifier"})
		return
	}
	var req truckStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	truck, err := h.trucks.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, truck)
}

func (h *Handler) collectDeposit(c *gin.Context) {
	truckID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid truck identifier"})
		return
	}
	depositID, err := uuid.Parse(c.Param("garbageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid deposit identifier"})
		return
	}
	truck, err := h.trucks.CollectDeposit(c.Request.Context(), truckID, depositID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, truck)
}
