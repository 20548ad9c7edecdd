package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Keoroanthony/go-food-ordering/internal/auth"
	"github.com/Keoroanthony/go-food-ordering/internal/backend"
	"github.com/Keoroanthony/go-food-ordering/internal/cart"
	"github.com/Keoroanthony/go-food-ordering/internal/catalog"
	"github.com/Keoroanthony/go-food-ordering/internal/orders"
)

// Handler serves the storefront API. Every dependency is injected by main.
type Handler struct {
	Records   backend.Records
	Catalog   *catalog.Catalog
	Carts     cart.Storage
	Submitter *orders.Submitter
	Tracker   *orders.Tracker
	Gateway   *auth.Gateway
	OIDC      *auth.OIDC // nil when OAuth sign-in is not configured
	State     *auth.StateSigner
}

// Register mounts every route on r. The session middleware must already be installed.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/health", Health)

	a := r.Group("/auth")
	{
		a.POST("/signup", h.SignUp)
		a.POST("/login", h.Login)
		a.POST("/logout", h.Logout)
		a.GET("/oauth/login", h.OAuthLogin)
		a.GET("/callback", h.Callback)
	}

	api := r.Group("/api")
	{
		api.GET("/menu", h.ListMenu)
		api.GET("/menu/average", h.GetAveragePrice)
		api.GET("/menu/:id", h.GetMenuItem)

		api.GET("/cart", h.GetCart)
		api.POST("/cart/items", h.AddCartItem)
		api.PATCH("/cart/items/:id", h.UpdateCartItem)
		api.DELETE("/cart/items/:id", h.RemoveCartItem)
		api.DELETE("/cart", h.ClearCart)
	}

	// ── protected API ──
	protected := api.Group("", auth.RequireAuth(h.Records))
	{
		protected.GET("/profile", h.Profile)

		protected.POST("/orders", h.CreateOrder)
		protected.GET("/orders", h.ListOrders)
		protected.GET("/orders/:id", h.GetOrder)
		protected.PATCH("/orders/:id/status", h.UpdateOrderStatus)
		protected.POST("/orders/:id/cancel", h.CancelOrder)

		admin := protected.Group("", auth.RequireAdmin())
		admin.POST("/menu", h.CreateMenuItem)
		admin.POST("/categories", h.CreateCategory)
	}
}

func Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
