package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/scoutcassa/backend/internal/auth"
	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/models"
)

// FundTransferShareEditable is one group's part of a fund transfer.
type FundTransferShareEditable struct {
	GroupID uuid.UUID       `json:"groupId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the group
	Amount  decimal.Decimal `json:"amount" example:"100"`                                   // The group's part of the total amount
}

// FundTransferEditable represents all user configurable parameters
type FundTransferEditable struct {
	Date         time.Time                   `json:"date" example:"2024-03-10T00:00:00Z"`       // Date of the transfer
	Type         models.FundTransferType     `json:"type" example:"WITHDRAWAL"`                 // WITHDRAWAL or DEPOSIT
	TotalAmount  decimal.Decimal             `json:"totalAmount" example:"300"`                 // The amount moved between bank account and cash boxes
	Description  string                      `json:"description" example:"Prelievo riunione" default:""` // Description of the transfer
	Distribution []FundTransferShareEditable `json:"distribution"`                              // How the total is split across group cash boxes
}

func (editable FundTransferEditable) model() models.FundTransfer {
	transfer := models.FundTransfer{
		Date:        editable.Date,
		Type:        editable.Type,
		TotalAmount: editable.TotalAmount,
		Description: editable.Description,
	}

	for _, share := range editable.Distribution {
		transfer.Shares = append(transfer.Shares, models.FundTransferShare{
			GroupID: share.GroupID,
			Amount:  share.Amount,
		})
	}

	return transfer
}

type FundTransferLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/fund-transfers/d430d7c3-d14c-4712-9336-ee56965a6673"` // The fund transfer itself
}

type FundTransfer struct {
	models.DefaultModel
	FundTransferEditable
	Links FundTransferLinks `json:"links"`
}

func newFundTransfer(c *gin.Context, model models.FundTransfer) FundTransfer {
	url := c.GetString(string(models.DBContextURL))

	transfer := FundTransfer{
		DefaultModel: model.DefaultModel,
		FundTransferEditable: FundTransferEditable{
			Date:        model.Date,
			Type:        model.Type,
			TotalAmount: model.TotalAmount,
			Description: model.Description,
		},
		Links: FundTransferLinks{
			Self: fmt.Sprintf("%s/v1/fund-transfers/%s", url, model.ID),
		},
	}

	for _, share := range model.Shares {
		transfer.Distribution = append(transfer.Distribution, FundTransferShareEditable{
			GroupID: share.GroupID,
			Amount:  share.Amount,
		})
	}

	return transfer
}

type FundTransferListResponse struct {
	Data       []FundTransfer `json:"data"`                                                          // List of fund transfers
	Error      *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination    `json:"pagination"`                                                    // Pagination information
}

type FundTransferCreateResponse struct {
	Data  []FundTransferResponse `json:"data"`                                                          // List of the created fund transfers or their respective error
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *FundTransferCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, FundTransferResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type FundTransferResponse struct {
	Data  *FundTransfer `json:"data"`                                                          // Data for the fund transfer
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type FundTransferQueryFilter struct {
	Type   string `form:"type"`                       // By transfer type
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first fund transfer returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of fund transfers to return. Defaults to 50.
}

func (f FundTransferQueryFilter) model() models.FundTransfer {
	return models.FundTransfer{
		Type: models.FundTransferType(f.Type),
	}
}

// RegisterFundTransferRoutes registers the routes for fund transfers with
// the RouterGroup that is passed.
func RegisterFundTransferRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsFundTransferList)
		r.GET("", GetFundTransfers)
		r.POST("", guard(auth.CanManageFundTransfers), CreateFundTransfers)
	}

	// Fund transfer with ID
	{
		r.OPTIONS("/:id", OptionsFundTransferDetail)
		r.GET("/:id", GetFundTransfer)
		r.DELETE("/:id", guard(auth.CanManageFundTransfers), DeleteFundTransfer)
	}
}

// OptionsFundTransferList returns the allowed HTTP methods.
func OptionsFundTransferList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsFundTransferDetail returns the allowed HTTP methods for a specific
// fund transfer. Transfers are immutable, they can only be deleted.
func OptionsFundTransferDetail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var transfer models.FundTransfer
	err = models.DB.First(&transfer, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// CreateFundTransfers creates new fund transfers. The distribution of each
// transfer must add up to its total amount.
func CreateFundTransfers(c *gin.Context) {
	var editables []FundTransferEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FundTransferCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := FundTransferCreateResponse{}

	for _, editable := range editables {
		transfer := editable.model()

		if !transfer.DistributedTotal().Equal(transfer.TotalAmount) {
			status = r.appendError(models.ErrDistributionMismatch, status)
			continue
		}

		err := models.DB.Create(&transfer).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newFundTransfer(c, transfer)
		r.Data = append(r.Data, FundTransferResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetFundTransfers returns a list of fund transfers with their
// distributions.
func GetFundTransfers(c *gin.Context) {
	var filter FundTransferQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var transfers []models.FundTransfer

	q := models.DB.
		Preload("Shares").
		Order("datetime(date) DESC, datetime(created_at) DESC").
		Where(filter.model(), queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all fund transfers and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err := q.Find(&transfers).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundTransferListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), FundTransferListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]FundTransfer, 0)
	for _, transfer := range transfers {
		apiResources = append(apiResources, newFundTransfer(c, transfer))
	}

	c.JSON(http.StatusOK, FundTransferListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetFundTransfer returns a specific fund transfer.
func GetFundTransfer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundTransferResponse{
			Error: &s,
		})
		return
	}

	var transfer models.FundTransfer
	err = models.DB.Preload("Shares").First(&transfer, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), FundTransferResponse{
			Error: &s,
		})
		return
	}

	apiResource := newFundTransfer(c, transfer)
	c.JSON(http.StatusOK, FundTransferResponse{Data: &apiResource})
}

// DeleteFundTransfer deletes a fund transfer together with its
// distribution.
func DeleteFundTransfer(c *gin.Context) {
	deleteResource[models.FundTransfer](c)
}
