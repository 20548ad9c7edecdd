package auth

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/Keoroanthony/go-food-ordering/internal/backend"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
)

const SessionName = "gosess"

const (
	sessionUserID = "user_id"
	sessionEmail  = "email"
	sessionState  = "oauth_state"

	identityKey = "identity"
	roleKey     = "role"
)

// StartSession remembers user in the session cookie.
func StartSession(c *gin.Context, user models.User) error {
	sess := sessions.Default(c)
	sess.Set(sessionUserID, user.ID)
	sess.Set(sessionEmail, user.Email)
	return sess.Save()
}

// EndSession forgets the signed-in user. The browser's cart id survives.
func EndSession(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Delete(sessionUserID)
	sess.Delete(sessionEmail)
	return sess.Save()
}

// RememberState stores the nonce of an issued OAuth state.
func RememberState(c *gin.Context, nonce string) error {
	sess := sessions.Default(c)
	sess.Set(sessionState, nonce)
	return sess.Save()
}

// TakeState returns the stored OAuth nonce and removes it, so a state is accepted once.
func TakeState(c *gin.Context) (string, error) {
	sess := sessions.Default(c)
	nonce, _ := sess.Get(sessionState).(string)
	sess.Delete(sessionState)
	return nonce, sess.Save()
}

// RequireAuth ensures the user is logged in and puts their identity and role on the context.
func RequireAuth(records backend.Records) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		userID, ok := sess.Get(sessionUserID).(string)
		if !ok || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		email, _ := sess.Get(sessionEmail).(string)
		who := &backend.Identity{ID: userID, Email: email}

		role, err := ResolveRole(c.Request.Context(), records, who)
		if err != nil {
			log.Printf("Failed to resolve role for user %s, continuing as %s: %v", userID, role, err)
		}

		c.Set(identityKey, who)
		c.Set(roleKey, role)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentRole(c) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentIdentity is nil on routes not behind RequireAuth.
func CurrentIdentity(c *gin.Context) *backend.Identity {
	who, _ := c.Get(identityKey)
	identity, _ := who.(*backend.Identity)
	return identity
}

func CurrentRole(c *gin.Context) models.Role {
	if role, ok := c.Get(roleKey); ok {
		if r, ok := role.(models.Role); ok {
			return r
		}
	}
	return models.RoleCustomer
}
