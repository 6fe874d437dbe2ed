package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/scoutcassa/backend/internal/auth"
	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/models"
)

// SettingsEditable represents all user configurable parameters
type SettingsEditable struct {
	FundManagerGroupID *uuid.UUID      `json:"fundManagerGroupId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the group holding the shared bank account
	ConfirmOnDelete    bool            `json:"confirmOnDelete" example:"true" default:"true"`                     // Ask for confirmation before deleting resources?
	UserPermissions    map[string]bool `json:"userPermissions"`                                                   // Capability grants for the user role
}

type SettingsResponse struct {
	Data  *SettingsEditable `json:"data"`                                                                // The settings
	Error *string           `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

func newSettings(model models.Settings) SettingsEditable {
	permissions := make(map[string]bool, len(auth.Capabilities))
	for _, capability := range auth.Capabilities {
		permissions[string(capability)] = false
	}
	for _, capability := range auth.ParseCapabilities(model.UserCapabilities) {
		permissions[string(capability)] = true
	}

	return SettingsEditable{
		FundManagerGroupID: model.FundManagerGroupID,
		ConfirmOnDelete:    model.ConfirmOnDelete,
		UserPermissions:    permissions,
	}
}

// RegisterSettingsRoutes registers the routes for the settings with
// the RouterGroup that is passed.
func RegisterSettingsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettings)
	r.GET("", guardAdmin(), GetSettings)
	r.PATCH("", guardAdmin(), UpdateSettings)
}

// OptionsSettings returns the allowed HTTP methods.
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// GetSettings returns the instance settings.
func GetSettings(c *gin.Context) {
	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	apiResource := newSettings(settings)
	c.JSON(http.StatusOK, SettingsResponse{Data: &apiResource})
}

// UpdateSettings updates the instance settings. Only values to be updated
// need to be specified, the permission map is replaced as a whole when
// present.
func UpdateSettings(c *gin.Context) {
	settings, err := models.LoadSettings(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	// Prefill with the stored values so that fields missing from the body
	// stay untouched. The permission map starts out nil since unmarshaling
	// merges into a prefilled map instead of replacing it.
	data := newSettings(settings)
	data.UserPermissions = nil

	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	// The fund manager must be an existing group
	if data.FundManagerGroupID != nil {
		var group models.Group
		err = models.DB.First(&group, *data.FundManagerGroupID).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SettingsResponse{
				Error: &s,
			})
			return
		}
	}

	settings.FundManagerGroupID = data.FundManagerGroupID
	settings.ConfirmOnDelete = data.ConfirmOnDelete

	if data.UserPermissions != nil {
		var granted []auth.Capability
		for _, capability := range auth.Capabilities {
			if data.UserPermissions[string(capability)] {
				granted = append(granted, capability)
			}
		}
		settings.UserCapabilities = auth.FormatCapabilities(granted)
	}

	err = models.DB.Save(&settings).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	apiResource := newSettings(settings)
	c.JSON(http.StatusOK, SettingsResponse{Data: &apiResource})
}
