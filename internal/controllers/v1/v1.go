package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gorm.io/gorm"

	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/models"
)

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Auth              string `json:"auth" example:"https://example.com/api/v1/auth"`                            // URL of the authentication endpoint
	Groups            string `json:"groups" example:"https://example.com/api/v1/groups"`                        // URL of the Group collection endpoint
	Members           string `json:"members" example:"https://example.com/api/v1/members"`                      // URL of the Member collection endpoint
	Transactions      string `json:"transactions" example:"https://example.com/api/v1/transactions"`            // URL of the Transaction collection endpoint
	Categories        string `json:"categories" example:"https://example.com/api/v1/categories"`                // URL of the Category collection endpoint
	Units             string `json:"units" example:"https://example.com/api/v1/units"`                          // URL of the Unit collection endpoint
	FundTransfers     string `json:"fundTransfers" example:"https://example.com/api/v1/fund-transfers"`         // URL of the FundTransfer collection endpoint
	InternalTransfers string `json:"internalTransfers" example:"https://example.com/api/v1/internal-transfers"` // URL of the InternalTransfer collection endpoint
	Projects          string `json:"projects" example:"https://example.com/api/v1/projects"`                    // URL of the self-financing project collection endpoint
	Balances          string `json:"balances" example:"https://example.com/api/v1/balances"`                    // URL of the balance endpoint
	Ledger            string `json:"ledger" example:"https://example.com/api/v1/ledger"`                        // URL of the combined ledger endpoint
	Export            string `json:"export" example:"https://example.com/api/v1/export"`                        // URL of the export endpoints
	Backup            string `json:"backup" example:"https://example.com/api/v1/backup"`                        // URL of the backup endpoints
	Settings          string `json:"settings" example:"https://example.com/api/v1/settings"`                    // URL of the settings endpoint
}

// GetV1 returns the link list for v1.
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Auth:              url + "/v1/auth",
			Groups:            url + "/v1/groups",
			Members:           url + "/v1/members",
			Transactions:      url + "/v1/transactions",
			Categories:        url + "/v1/categories",
			Units:             url + "/v1/units",
			FundTransfers:     url + "/v1/fund-transfers",
			InternalTransfers: url + "/v1/internal-transfers",
			Projects:          url + "/v1/projects",
			Balances:          url + "/v1/balances",
			Ledger:            url + "/v1/ledger",
			Export:            url + "/v1/export",
			Backup:            url + "/v1/backup",
			Settings:          url + "/v1/settings",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods for the v1 root.
func OptionsV1(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// Cleanup permanently deletes all resources.
func Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errCleanupConfirmation.Error(),
		})
		return
	}

	// Foreign keys are checked during cleanup,
	// add new models *before* any of the models
	// they reference
	resources := []any{
		models.Installment{},
		models.Member{},
		models.FundTransferShare{},
		models.FundTransfer{},
		models.InternalTransfer{},
		models.Transaction{},
		models.SelfFinancingProject{},
		models.Category{},
		models.Unit{},
		models.Group{},
		models.Settings{},
	}

	// Use a transaction so that we can roll back if errors happen.
	// Hooks are skipped since the referential guards would reject
	// wiping the last group.
	tx := models.DB.Session(&gorm.Session{SkipHooks: true}).Begin()

	for _, model := range resources {
		err := tx.Unscoped().Where("true").Delete(&model).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, httpError{
				Error: err.Error(),
			})
			tx.Rollback()
			return
		}
	}

	tx.Commit()
	c.JSON(http.StatusNoContent, nil)
}
