package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scoutcassa/backend/internal/auth"
	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/models"
	"github.com/scoutcassa/backend/internal/reconcile"
)

type BalanceResponse struct {
	Data  *reconcile.Result `json:"data"`                                                 // All derived balances
	Error *string           `json:"error" example:"an error occurred on the server during your request"` // The error, if any occurred
}

// RegisterBalanceRoutes registers the routes for balances with
// the RouterGroup that is passed.
func RegisterBalanceRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBalances)
	r.GET("", guard(auth.CanViewConti), GetBalances)
}

// OptionsBalances returns the allowed HTTP methods.
func OptionsBalances(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetBalances recomputes all derived balances from the full event set:
// overall and per-group positions, the shared pools, the group fund,
// outstanding debts between groups and data warnings.
func GetBalances(c *gin.Context) {
	snapshot, err := models.LoadSnapshot(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &s,
		})
		return
	}

	result := reconcile.Aggregate(snapshot)
	c.JSON(http.StatusOK, BalanceResponse{Data: &result})
}
