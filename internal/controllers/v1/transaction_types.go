package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/models"
)

type TransactionEditable struct {
	GroupID uuid.UUID `json:"groupId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the group the transaction belongs to

	Date time.Time `json:"date" example:"2024-03-10T00:00:00Z"` // Date of the transaction. Time is currently only used for sorting

	// The maximum value is "999999999999.99999999".
	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount for the transaction

	Description     string                 `json:"description" example:"Acquisto materiale" default:""` // Description of the transaction
	Type            models.TransactionType `json:"type" example:"EXPENSE"`                              // INCOME or EXPENSE
	Category        string                 `json:"category" example:"Materiale" default:""`             // Category label of the transaction
	PaymentMethod   models.PaymentMethod   `json:"paymentMethod" example:"CASH"`                        // Rail the money moved on
	IsCampExpense   bool                   `json:"isCampExpense" example:"false" default:"false"`       // Is this expense attributed to the summer camp?
	AdvancedBy      *string                `json:"advancedBy" example:"Akela"`                          // Name of the person who advanced the money, if any
	Repaid          bool                   `json:"repaid" example:"false" default:"false"`              // Has the advance been repaid?
	RepaidDate      *time.Time             `json:"repaidDate"`                                          // Date the advance was repaid
	RepaymentMethod models.PaymentMethod   `json:"repaymentMethod" example:"TRANSFER"`                  // Rail the repayment moved on
	SelfFinancingID *uuid.UUID             `json:"selfFinancingId" example:"2649c965-7999-4873-ae16-89d5d5fa972e"` // ID of the self-financing project, if any
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		GroupID:         editable.GroupID,
		Date:            editable.Date,
		Amount:          editable.Amount,
		Description:     editable.Description,
		Type:            editable.Type,
		Category:        editable.Category,
		PaymentMethod:   editable.PaymentMethod,
		IsCampExpense:   editable.IsCampExpense,
		AdvancedBy:      editable.AdvancedBy,
		Repaid:          editable.Repaid,
		RepaidDate:      editable.RepaidDate,
		RepaymentMethod: editable.RepaymentMethod,
		SelfFinancingID: editable.SelfFinancingID,
	}
}

type TransactionLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
	Group string `json:"group" example:"https://example.com/api/v1/groups/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`      // The group of this transaction
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			GroupID:         model.GroupID,
			Date:            model.Date,
			Amount:          model.Amount,
			Description:     model.Description,
			Type:            model.Type,
			Category:        model.Category,
			PaymentMethod:   model.PaymentMethod,
			IsCampExpense:   model.IsCampExpense,
			AdvancedBy:      model.AdvancedBy,
			Repaid:          model.Repaid,
			RepaidDate:      model.RepaidDate,
			RepaymentMethod: model.RepaymentMethod,
			SelfFinancingID: model.SelfFinancingID,
		},
		Links: TransactionLinks{
			Self:  fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
			Group: fmt.Sprintf("%s/v1/groups/%s", url, model.GroupID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The Transaction data, if creation was successful
}

// RepaymentEditable marks an advanced transaction as repaid, or reverts
// that.
type RepaymentEditable struct {
	Repaid          bool                 `json:"repaid" example:"true"`              // Has the advance been repaid?
	RepaidDate      *time.Time           `json:"repaidDate"`                         // Date the advance was repaid
	RepaymentMethod models.PaymentMethod `json:"repaymentMethod" example:"TRANSFER"` // Rail the repayment moved on
}

type TransactionQueryFilter struct {
	Date          time.Time            `form:"date" filterField:"false"`      // Exact date. Time is ignored.
	FromDate      time.Time            `form:"fromDate" filterField:"false"`  // From this date. Time is ignored.
	UntilDate     time.Time            `form:"untilDate" filterField:"false"` // Until this date. Time is ignored.
	Amount        decimal.Decimal      `form:"amount"`                        // Exact amount
	GroupID       string               `form:"group"`                         // ID of the group
	Type          string               `form:"type"`                          // Type of the transaction
	Category      string               `form:"category"`                      // Category label
	PaymentMethod string               `form:"paymentMethod"`                 // Rail the money moved on
	IsCampExpense bool                 `form:"campExpense"`                   // Is this expense attributed to the summer camp?
	Repaid        bool                 `form:"repaid"`                        // Has the advance been repaid?
	Advanced      bool                 `form:"advanced" filterField:"false"`  // Only transactions that were advanced by somebody
	SelfFinancing string               `form:"selfFinancing" filterField:"false"` // ID of the self-financing project
	Search        string               `form:"search" filterField:"false"`    // Search for this text in description and category
	Offset        uint                 `form:"offset" filterField:"false"`    // The offset of the first Transaction returned. Defaults to 0.
	Limit         int                  `form:"limit" filterField:"false"`     // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() (models.Transaction, error) {
	groupID, err := httputil.UUIDFromString(f.GroupID)
	if err != nil {
		return models.Transaction{}, err
	}

	// This does not set the string or date fields since they are
	// handled in the controller function
	return TransactionEditable{
		Amount:        f.Amount,
		GroupID:       groupID,
		Type:          models.TransactionType(f.Type),
		Category:      f.Category,
		PaymentMethod: models.PaymentMethod(f.PaymentMethod),
		IsCampExpense: f.IsCampExpense,
		Repaid:        f.Repaid,
	}.model(), nil
}
