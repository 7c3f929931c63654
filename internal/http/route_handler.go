package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/service"
)

type createRouteRequest struct {
	TruckID    string   `json:"truckId" binding:"required"`
	RequestIDs []string `json:"requestIds" binding:"required"`
}

func parseUUIDList(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *Handler) createRoute(c *gin.Context) {
	var req createRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	truckID, err := uuid.Parse(req.TruckID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid truck identifier"})
		return
	}
	requestIDs, err := parseUUIDList(req.RequestIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request identifier"})
		return
	}
	route, err := h.routes.Create(c.Request.Context(), service.CreateRouteInput{
		TruckID:    truckID,
		RequestIDs: requestIDs,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

func (h *Handler) listRoutes(c *gin.Context) {
	routes, err := h.routes.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *Handler) getRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid route identifier"})
		return
	}
	route, err := h.routes.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

type updateRouteRequest struct {
	RequestIDs     []string `json:"requestIds"`
	DeliveryStatus *string  `json:"deliveryStatus"`
}

func (h *Handler) updateRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid route identifier"})
		return
	}
	var req updateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	input := service.UpdateRouteInput{DeliveryStatus: req.DeliveryStatus}
	if req.RequestIDs != nil {
		requestIDs, err := parseUUIDList(req.RequestIDs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request identifier"})
			return
		}
		input.RequestIDs = requestIDs
	}
	route, err := h.routes.Update(c.Request.Context(), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *Handler) deleteRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid route identifier"})
		return
	}
	if err := h.routes.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Route deleted"})
}
