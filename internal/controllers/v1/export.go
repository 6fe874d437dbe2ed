package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scoutcassa/backend/internal/auth"
	"github.com/scoutcassa/backend/internal/export"
	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/ledger"
	"github.com/scoutcassa/backend/internal/models"
)

// RegisterExportRoutes registers the routes for exports with
// the RouterGroup that is passed.
func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/transactions", OptionsExportTransactions)
	r.GET("/transactions", guard(auth.CanExport), GetExportTransactions)
}

// OptionsExportTransactions returns the allowed HTTP methods.
func OptionsExportTransactions(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetExportTransactions returns all transactions as a CSV file. The ledger
// query parameters narrow the export, an export without any matching
// transaction is rejected.
func GetExportTransactions(c *gin.Context) {
	var params LedgerQueryFilter
	if err := c.Bind(&params); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	groupID, err := httputil.UUIDFromString(params.GroupID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	snapshot, err := models.LoadSnapshot(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	filter := ledger.Filter{
		Text:      params.Text,
		Type:      models.TransactionType(params.Type),
		Category:  params.Category,
		StartDate: params.FromDate,
		EndDate:   params.UntilDate,
		GroupID:   groupID,
	}

	transactions := filter.ApplyTransactions(snapshot.Transactions)
	if len(transactions) == 0 {
		c.JSON(http.StatusNotFound, httpError{
			Error: errNothingToExport.Error(),
		})
		return
	}

	filename := fmt.Sprintf("transazioni_%s.csv", time.Now().In(time.UTC).Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(export.TransactionsCSV(transactions, snapshot.Groups)))
}
