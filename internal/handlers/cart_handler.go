package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Keoroanthony/go-food-ordering/internal/apperr"
	"github.com/Keoroanthony/go-food-ordering/internal/cart"
)

const sessionCartID = "cart_id"

type AddCartItemRequest struct {
	ID uint `json:"id" binding:"required"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// openCart restores the cart of the calling browser, issuing it a cart id on first use.
func (h *Handler) openCart(c *gin.Context) (*cart.Store, bool) {
	sess := sessions.Default(c)
	browserID, _ := sess.Get(sessionCartID).(string)
	if browserID == "" {
		browserID = uuid.NewString()
		sess.Set(sessionCartID, browserID)
		if err := sess.Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
			return nil, false
		}
	}

	store, err := cart.Open(c.Request.Context(), h.Carts, cart.Key(browserID))
	if err != nil {
		respondError(c, &apperr.FetchError{Err: err})
		return nil, false
	}
	return store, true
}

func cartJSON(store *cart.Store) gin.H {
	lines := store.Lines()
	return gin.H{"items": lines, "total": cart.Total(lines)}
}

func (h *Handler) GetCart(c *gin.Context) {
	store, ok := h.openCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cartJSON(store))
}

func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store, ok := h.openCart(c)
	if !ok {
		return
	}

	item, err := h.Catalog.Get(c.Request.Context(), req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	store.Add(c.Request.Context(), item)
	c.JSON(http.StatusOK, cartJSON(store))
}

// PATCH /api/cart/items/:id. Quantities below 1 are stored as 1.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store, ok := h.openCart(c)
	if !ok {
		return
	}
	store.UpdateQuantity(c.Request.Context(), id, req.Quantity)
	c.JSON(http.StatusOK, cartJSON(store))
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	store, ok := h.openCart(c)
	if !ok {
		return
	}
	store.Remove(c.Request.Context(), id)
	c.JSON(http.StatusOK, cartJSON(store))
}

func (h *Handler) ClearCart(c *gin.Context) {
	store, ok := h.openCart(c)
	if !ok {
		return
	}
	store.Clear(c.Request.Context())
	c.JSON(http.StatusOK, cartJSON(store))
}
