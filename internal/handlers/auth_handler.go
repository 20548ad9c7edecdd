package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Keoroanthony/go-food-ordering/internal/auth"
)

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Gateway.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := auth.StartSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "signed up", "user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Gateway.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := auth.StartSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged in", "user": user})
}

func (h *Handler) Logout(c *gin.Context) {
	if err := auth.EndSession(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /auth/oauth/login
func (h *Handler) OAuthLogin(c *gin.Context) {
	if h.OIDC == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "oauth sign-in is not configured"})
		return
	}

	state, nonce, err := h.State.Issue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := auth.RememberState(c, nonce); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}
	c.Redirect(http.StatusFound, h.OIDC.AuthCodeURL(state))
}

// GET /auth/callback
func (h *Handler) Callback(c *gin.Context) {
	if h.OIDC == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "oauth sign-in is not configured"})
		return
	}

	nonce, err := auth.TakeState(c)
	if err != nil {
		log.Printf("Failed to clear OAuth state from session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}
	if err := h.State.Verify(c.Query("state"), nonce); err != nil {
		log.Printf("Rejected OAuth callback: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code missing"})
		return
	}

	ctx := c.Request.Context()
	claims, err := h.OIDC.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Gateway.UpsertOIDC(ctx, claims)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := auth.StartSession(c, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged in", "user": user})
}

// GET /api/profile
func (h *Handler) Profile(c *gin.Context) {
	who := auth.CurrentIdentity(c)
	user, err := h.Gateway.Profile(c.Request.Context(), who.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "role": auth.CurrentRole(c)})
}
