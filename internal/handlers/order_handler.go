package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Keoroanthony/go-food-ordering/internal/auth"
	"github.com/Keoroanthony/go-food-ordering/internal/orders"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// POST /api/orders places the caller's cart as an order.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req orders.CustomerInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	store, ok := h.openCart(c)
	if !ok {
		return
	}

	id, err := h.Submitter.Submit(c.Request.Context(), store, req, auth.CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "order created successfully", "order_id": id})
}

func (h *Handler) ListOrders(c *gin.Context) {
	list, err := h.Tracker.List(c.Request.Context(), auth.CurrentIdentity(c), auth.CurrentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	order, err := h.Tracker.Get(c.Request.Context(), id, auth.CurrentIdentity(c), auth.CurrentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// PATCH /api/orders/:id/status (admin console)
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Tracker.UpdateStatus(c.Request.Context(), id, req.Status, auth.CurrentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	order, err := h.Tracker.Cancel(c.Request.Context(), id, auth.CurrentIdentity(c), auth.CurrentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
