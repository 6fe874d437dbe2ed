package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scoutcassa/backend/internal/models"
)

const roleKey = "auth-role"

// RoleFromContext returns the authenticated role of the request, if any.
func RoleFromContext(c *gin.Context) (Role, bool) {
	value, ok := c.Get(roleKey)
	if !ok {
		return "", false
	}
	role, ok := value.(Role)
	return role, ok
}

// Authenticate reads the bearer token of a request and returns the session
// role. It does not write to the response.
func Authenticate(c *gin.Context, svc *Service) (Role, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrInvalidToken
	}

	claims, err := svc.Validate(parts[1])
	if err != nil {
		return "", err
	}

	return claims.Role, nil
}

// Middleware validates the bearer token and stores the session role on the
// context. Requests without a valid token are rejected.
func Middleware(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := Authenticate(c, svc)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(roleKey, role)
		c.Next()
	}
}

// HasCapability reports whether a role may perform an action. Admin sessions
// hold every capability, user sessions only those granted in the settings
// row.
func HasCapability(role Role, capability Capability, settings models.Settings) bool {
	if role == RoleAdmin {
		return true
	}

	for _, granted := range ParseCapabilities(settings.UserCapabilities) {
		if granted == capability {
			return true
		}
	}

	return false
}
