package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/http/middleware"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/model"
	"github.com/akilaManu-MaHiTo/eco-waste-server/internal/service"
)

// notifyInput binds the gateway's form-encoded callback payload.
func notifyInput(c *gin.Context) service.NotifyInput {
	return service.NotifyInput{
		PaymentID:       c.PostForm("payment_id"),
		OrderID:         c.PostForm("order_id"),
		PayhereAmount:   c.PostForm("payhere_amount"),
		PayhereCurrency: c.PostForm("payhere_currency"),
		StatusCode:      c.PostForm("status_code"),
		Custom1:         c.PostForm("custom_1"),
		Custom2:         c.PostForm("custom_2"),
	}
}

func (h *Handler) payhereNotify(c *gin.Context) {
	if err := h.payments.NotifyPickup(c.Request.Context(), notifyInput(c)); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment recorded"})
}

func (h *Handler) payhereNotifyBin(c *gin.Context) {
	if err := h.payments.NotifyBinPurchase(c.Request.Context(), notifyInput(c)); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment recorded"})
}

func (h *Handler) listPayments(c *gin.Context) {
	rows, err := h.payments.ListPayments(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type scheduleCollectionRequest struct {
	BinID          string  `json:"binId" binding:"required"`
	CollectionDate string  `json:"collectionDate" binding:"required"`
	CollectionTime string  `json:"collectionTime" binding:"required"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	OrderID        string  `json:"orderId" binding:"required"`
	Amount         float64 `json:"amount"`
}

func (h *Handler) scheduleCollection(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}
	var req scheduleCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	request, err := h.payments.ScheduleCollection(c.Request.Context(), service.ScheduleCollectionInput{
		BinID:          req.BinID,
		UserID:         principal.UserID.String(),
		CollectionDate: req.CollectionDate,
		CollectionTime: req.CollectionTime,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		OrderID:        req.OrderID,
		Amount:         req.Amount,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

func (h *Handler) listScheduledCollections(c *gin.Context) {
	rows, err := h.payments.ListScheduledCollections(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) listPickupRequests(c *gin.Context) {
	rows, err := h.payments.ListPickupRequests(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) listOwnPickupRequests(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}
	rows, err := h.payments.ListPickupRequestsForCreator(c.Request.Context(), model.CreatorRefFromID(principal.UserID))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type checkoutHashRequest struct {
	OrderID  string  `json:"orderId" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	Currency string  `json:"currency" binding:"required"`
}

func (h *Handler) checkoutHash(c *gin.Context) {
	var req checkoutHashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	hash, err := h.payments.CheckoutHash(req.OrderID, req.Amount, req.Currency)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hash": hash})
}
