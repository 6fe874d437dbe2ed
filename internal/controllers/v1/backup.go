package v1

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scoutcassa/backend/internal/auth"
	"github.com/scoutcassa/backend/internal/backup"
	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/models"
)

type BackupValidateResponse struct {
	Data  *backup.Summary `json:"data"`                                          // Counts per collection of the backup
	Error *string         `json:"error" example:"this file is not a valid backup"` // The error, if any occurred
}

// RegisterBackupRoutes registers the routes for backups with
// the RouterGroup that is passed.
func RegisterBackupRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBackup)
	r.GET("", guard(auth.CanExport), GetBackup)
	r.OPTIONS("/validate", OptionsBackupValidate)
	r.POST("/validate", ValidateBackup)
	r.OPTIONS("/restore", OptionsBackupRestore)
	r.POST("/restore", guardAdmin(), RestoreBackup)
}

// OptionsBackup returns the allowed HTTP methods.
func OptionsBackup(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsBackupValidate returns the allowed HTTP methods.
func OptionsBackupValidate(c *gin.Context) {
	httputil.OptionsPost(c)
}

// OptionsBackupRestore returns the allowed HTTP methods.
func OptionsBackupRestore(c *gin.Context) {
	httputil.OptionsPost(c)
}

// GetBackup returns the full instance state as a downloadable backup file.
//
// The body is the backup wire format itself, not wrapped in a data object,
// so a stored response can be fed back to the restore endpoint as is.
func GetBackup(c *gin.Context) {
	snapshot, err := models.LoadSnapshot(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var categories []models.Category
	err = models.DB.Order("name ASC").Find(&categories).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var units []models.Unit
	err = models.DB.Order("name ASC").Find(&units).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("backup_%s.json", time.Now().In(time.UTC).Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, backup.Create(snapshot, categories, units))
}

// ValidateBackup checks an uploaded backup file and returns the counts per
// collection without restoring anything.
func ValidateBackup(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, BackupValidateResponse{})
		return
	}

	summary, err := backup.Validate(raw)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BackupValidateResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BackupValidateResponse{Data: &summary})
}

// RestoreBackup replaces the full instance state with an uploaded backup
// file. The file is validated first, a failed restore leaves the database
// untouched.
func RestoreBackup(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: httputil.ErrInvalidBody.Error(),
		})
		return
	}

	if _, err := backup.Validate(raw); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	file, err := backup.Migrate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	err = backup.Restore(models.DB, file)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
