package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scoutcassa/backend/internal/auth"
	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/models"
)

var errAuthDisabled = errors.New("authentication is not configured on this server")

// RegisterAuthRoutes registers the routes for authentication with
// the RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/login", OptionsLogin)
	r.POST("/login", Login)
}

type LoginRequest struct {
	Role auth.Role `json:"role" example:"ADMIN"` // The role to log in as
	Pin  string    `json:"pin" example:"1234"`   // The admin PIN. Ignored for the user role.
}

type LoginData struct {
	Token        string            `json:"token"`               // The bearer token for subsequent requests
	Role         auth.Role         `json:"role" example:"USER"` // The role the token was issued for
	Capabilities []auth.Capability `json:"capabilities"`        // The capabilities granted to the session
}

type LoginResponse struct {
	Data  *LoginData `json:"data"`                                   // The session, if the login succeeded
	Error *string    `json:"error" example:"the PIN is not correct"` // The error, if any occurred
}

// OptionsLogin returns the allowed HTTP methods.
func OptionsLogin(c *gin.Context) {
	httputil.OptionsPost(c)
}

// Login exchanges a role selection, for admins together with the PIN, for a
// bearer token.
func Login(c *gin.Context) {
	svc := authService()
	if svc == nil {
		e := errAuthDisabled.Error()
		c.JSON(http.StatusNotImplemented, LoginResponse{Error: &e})
		return
	}

	var request LoginRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LoginResponse{Error: &e})
		return
	}

	token, err := svc.Login(request.Role, request.Pin)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{Error: &e})
		return
	}

	capabilities := auth.Capabilities
	if request.Role == auth.RoleUser {
		settings, err := models.LoadSettings(models.DB)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), LoginResponse{Error: &e})
			return
		}
		capabilities = auth.ParseCapabilities(settings.UserCapabilities)
	}

	c.JSON(http.StatusOK, LoginResponse{
		Data: &LoginData{
			Token:        token,
			Role:         request.Role,
			Capabilities: capabilities,
		},
	})
}
