package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/models"
)

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
//
// Note: This function only works for resources with an ID, not for configurations (like /settings) or calculated endpoints (like /balances)
func resourceOptionsDetail[R models.Group | models.Member | models.Transaction | models.Category | models.Unit | models.FundTransfer | models.InternalTransfer | models.SelfFinancingProject](c *gin.Context, resource R) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// deleteResource deletes the resource with the ID in the URI parameter.
func deleteResource[R models.Group | models.Member | models.Transaction | models.Category | models.Unit | models.FundTransfer | models.InternalTransfer | models.SelfFinancingProject](c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var resource R
	err = models.DB.First(&resource, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&resource).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// nameFilter fuzzy-filters a query on the name column. A name parameter set
// to the empty string matches resources with an empty name exactly.
func nameFilter(query *gorm.DB, setFields []string, name string) *gorm.DB {
	if name != "" {
		return query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	}

	if slices.Contains(setFields, "Name") {
		return query.Where("name = ''")
	}

	return query
}
