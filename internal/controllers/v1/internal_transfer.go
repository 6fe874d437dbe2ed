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

// InternalTransferEditable represents all user configurable parameters
type InternalTransferEditable struct {
	Date          time.Time            `json:"date" example:"2024-03-10T00:00:00Z"`                         // Date of the transfer
	FromGroupID   uuid.UUID            `json:"fromGroupId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`  // ID of the group lending or repaying
	ToGroupID     uuid.UUID            `json:"toGroupId" example:"d1079f1b-9ce9-4d8e-8a31-bebbbb1d0d96"`    // ID of the group receiving
	Amount        decimal.Decimal      `json:"amount" example:"50"`                                         // The amount moved
	PaymentMethod models.PaymentMethod `json:"paymentMethod" example:"CASH"`                                // Rail the money moved on
	Description   string               `json:"description" example:"Prestito per uscita" default:""`        // Description of the transfer
	IsRepayment   bool                 `json:"isRepayment" example:"false" default:"false"`                 // Is this the repayment of an earlier loan?
}

func (editable InternalTransferEditable) model() models.InternalTransfer {
	return models.InternalTransfer{
		Date:          editable.Date,
		FromGroupID:   editable.FromGroupID,
		ToGroupID:     editable.ToGroupID,
		Amount:        editable.Amount,
		PaymentMethod: editable.PaymentMethod,
		Description:   editable.Description,
		IsRepayment:   editable.IsRepayment,
	}
}

type InternalTransferLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/internal-transfers/d430d7c3-d14c-4712-9336-ee56965a6673"` // The internal transfer itself
}

type InternalTransfer struct {
	models.DefaultModel
	InternalTransferEditable
	Links InternalTransferLinks `json:"links"`
}

func newInternalTransfer(c *gin.Context, model models.InternalTransfer) InternalTransfer {
	url := c.GetString(string(models.DBContextURL))

	return InternalTransfer{
		DefaultModel: model.DefaultModel,
		InternalTransferEditable: InternalTransferEditable{
			Date:          model.Date,
			FromGroupID:   model.FromGroupID,
			ToGroupID:     model.ToGroupID,
			Amount:        model.Amount,
			PaymentMethod: model.PaymentMethod,
			Description:   model.Description,
			IsRepayment:   model.IsRepayment,
		},
		Links: InternalTransferLinks{
			Self: fmt.Sprintf("%s/v1/internal-transfers/%s", url, model.ID),
		},
	}
}

type InternalTransferListResponse struct {
	Data       []InternalTransfer `json:"data"`                                                          // List of internal transfers
	Error      *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination        `json:"pagination"`                                                    // Pagination information
}

type InternalTransferCreateResponse struct {
	Data  []InternalTransferResponse `json:"data"`                                                          // List of the created internal transfers or their respective error
	Error *string                    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *InternalTransferCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, InternalTransferResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type InternalTransferResponse struct {
	Data  *InternalTransfer `json:"data"`                                                          // Data for the internal transfer
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type InternalTransferQueryFilter struct {
	FromGroupID string `form:"from"`                       // By ID of the lending group
	ToGroupID   string `form:"to"`                         // By ID of the receiving group
	IsRepayment bool   `form:"repayment"`                  // Only repayments or only loans
	Offset      uint   `form:"offset" filterField:"false"` // The offset of the first internal transfer returned. Defaults to 0.
	Limit       int    `form:"limit" filterField:"false"`  // Maximum number of internal transfers to return. Defaults to 50.
}

func (f InternalTransferQueryFilter) model() (models.InternalTransfer, error) {
	fromID, err := httputil.UUIDFromString(f.FromGroupID)
	if err != nil {
		return models.InternalTransfer{}, err
	}

	toID, err := httputil.UUIDFromString(f.ToGroupID)
	if err != nil {
		return models.InternalTransfer{}, err
	}

	return models.InternalTransfer{
		FromGroupID: fromID,
		ToGroupID:   toID,
		IsRepayment: f.IsRepayment,
	}, nil
}

// RegisterInternalTransferRoutes registers the routes for internal
// transfers with the RouterGroup that is passed.
func RegisterInternalTransferRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsInternalTransferList)
		r.GET("", GetInternalTransfers)
		r.POST("", guard(auth.CanManageInternalTransfers), CreateInternalTransfers)
	}

	// Internal transfer with ID
	{
		r.OPTIONS("/:id", OptionsInternalTransferDetail)
		r.GET("/:id", GetInternalTransfer)
		r.DELETE("/:id", guard(auth.CanManageInternalTransfers), DeleteInternalTransfer)
	}
}

// OptionsInternalTransferList returns the allowed HTTP methods.
func OptionsInternalTransferList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsInternalTransferDetail returns the allowed HTTP methods for a
// specific internal transfer. Transfers are immutable, they can only be
// deleted.
func OptionsInternalTransferDetail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var transfer models.InternalTransfer
	err = models.DB.First(&transfer, id).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// CreateInternalTransfers creates new internal transfers.
func CreateInternalTransfers(c *gin.Context) {
	var editables []InternalTransferEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InternalTransferCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := InternalTransferCreateResponse{}

	for _, editable := range editables {
		transfer := editable.model()

		err := models.DB.Create(&transfer).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newInternalTransfer(c, transfer)
		r.Data = append(r.Data, InternalTransferResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetInternalTransfers returns a list of internal transfers.
func GetInternalTransfers(c *gin.Context) {
	var filter InternalTransferQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InternalTransferListResponse{
			Error: &s,
		})
		return
	}

	var transfers []models.InternalTransfer

	q := models.DB.
		Order("datetime(date) DESC, datetime(created_at) DESC").
		Where(model, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all internal transfers and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	err = q.Find(&transfers).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InternalTransferListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InternalTransferListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]InternalTransfer, 0)
	for _, transfer := range transfers {
		apiResources = append(apiResources, newInternalTransfer(c, transfer))
	}

	c.JSON(http.StatusOK, InternalTransferListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetInternalTransfer returns a specific internal transfer.
func GetInternalTransfer(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InternalTransferResponse{
			Error: &s,
		})
		return
	}

	var transfer models.InternalTransfer
	err = models.DB.First(&transfer, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InternalTransferResponse{
			Error: &s,
		})
		return
	}

	apiResource := newInternalTransfer(c, transfer)
	c.JSON(http.StatusOK, InternalTransferResponse{Data: &apiResource})
}

// DeleteInternalTransfer deletes an internal transfer.
func DeleteInternalTransfer(c *gin.Context) {
	deleteResource[models.InternalTransfer](c)
}
