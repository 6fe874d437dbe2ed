package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/ledger"
	"github.com/scoutcassa/backend/internal/models"
)

type LedgerQueryFilter struct {
	Text      string    `form:"text"`      // Search for this text in entry descriptions. * and ? are wildcards.
	Type      string    `form:"type"`      // By entry type
	Category  string    `form:"category"`  // By transaction category. Excludes all non-transaction entries.
	GroupID   string    `form:"group"`     // By ID of an involved group
	FromDate  time.Time `form:"fromDate"`  // From this date. Time is ignored.
	UntilDate time.Time `form:"untilDate"` // Until this date. Time is ignored.
}

type LedgerResponse struct {
	Data  []ledger.Entry `json:"data"`                                                   // The filtered feed, newest first
	Error *string        `json:"error" example:"the specified entry type is invalid"` // The error, if any occurred
}

// RegisterLedgerRoutes registers the routes for the combined ledger with
// the RouterGroup that is passed.
func RegisterLedgerRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsLedger)
	r.GET("", GetLedger)
}

// OptionsLedger returns the allowed HTTP methods.
func OptionsLedger(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetLedger projects all event kinds into one feed, newest first, and
// filters it with the query parameters. All predicates are conjunctive.
func GetLedger(c *gin.Context) {
	var params LedgerQueryFilter
	if err := c.Bind(&params); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, LedgerResponse{
			Error: &s,
		})
		return
	}

	entryType := ledger.EntryType(params.Type)
	if params.Type != "" && !entryType.Valid() {
		s := errEntryTypeInvalid.Error()
		c.JSON(http.StatusBadRequest, LedgerResponse{
			Error: &s,
		})
		return
	}

	groupID, err := httputil.UUIDFromString(params.GroupID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &s,
		})
		return
	}

	snapshot, err := models.LoadSnapshot(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &s,
		})
		return
	}

	filter := ledger.Filter{
		Text:       params.Text,
		Category:   params.Category,
		StartDate:  params.FromDate,
		EndDate:    params.UntilDate,
		LedgerType: entryType,
		GroupID:    groupID,
	}

	c.JSON(http.StatusOK, LedgerResponse{
		Data: filter.Apply(ledger.Project(snapshot)),
	})
}
