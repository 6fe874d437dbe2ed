package v1

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scoutcassa/backend/internal/auth"
	"github.com/scoutcassa/backend/internal/models"
)

// tokenTTL is the lifetime of issued session tokens.
const tokenTTL = 12 * time.Hour

// authService builds the token service from the environment. When JWT_SECRET
// is unset, authentication is disabled and every guard lets requests through.
func authService() *auth.Service {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil
	}

	return auth.NewService(secret, tokenTTL, auth.BcryptVerifier{Hash: os.Getenv("ADMIN_PIN_HASH")})
}

// guard protects a route with a capability check. User sessions need the
// capability granted in the settings, admin sessions always pass.
func guard(capability auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc := authService()
		if svc == nil {
			c.Next()
			return
		}

		role, err := auth.Authenticate(c, svc)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: err.Error()})
			return
		}

		settings, err := models.LoadSettings(models.DB)
		if err != nil {
			c.AbortWithStatusJSON(status(err), httpError{Error: err.Error()})
			return
		}

		if !auth.HasCapability(role, capability, settings) {
			c.AbortWithStatusJSON(http.StatusForbidden, httpError{Error: auth.ErrForbidden.Error()})
			return
		}

		c.Next()
	}
}

// guardAdmin protects a route so that only admin sessions may use it.
func guardAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		svc := authService()
		if svc == nil {
			c.Next()
			return
		}

		role, err := auth.Authenticate(c, svc)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: err.Error()})
			return
		}

		if role != auth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, httpError{Error: auth.ErrForbidden.Error()})
			return
		}

		c.Next()
	}
}
