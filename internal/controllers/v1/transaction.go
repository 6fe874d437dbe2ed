package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"

	"github.com/scoutcassa/backend/internal/auth"
	"github.com/scoutcassa/backend/internal/httputil"
	"github.com/scoutcassa/backend/internal/models"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", guard(auth.CanAddTransaction), CreateTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", guard(auth.CanEditTransaction), UpdateTransaction)
		r.DELETE("/:id", guard(auth.CanDeleteTransaction), DeleteTransaction)
	}

	// Repayment of an advanced transaction
	{
		r.OPTIONS("/:id/repayment", OptionsRepayment)
		r.PATCH("/:id/repayment", guard(auth.CanEditTransaction), UpdateRepayment)
	}
}

// OptionsTransactionList returns the allowed HTTP methods.
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsTransactionDetail returns the allowed HTTP methods for a specific
// transaction.
func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Transaction{})
}

// OptionsRepayment returns the allowed HTTP methods for the repayment of a
// transaction.
func OptionsRepayment(c *gin.Context) {
	httputil.OptionsPatch(c)
}

// CreateTransactions creates new transactions.
func CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TransactionCreateResponse{}

	for _, editable := range editables {
		transaction := editable.model()

		err := models.DB.Create(&transaction).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTransaction(c, transaction)
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetTransactions returns a list of transactions matching the query
// parameters.
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a Create struct
	model, err := filter.model()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	q := models.DB.
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC").
		Where(&model, queryFields...)

	// Filter for the transaction being at the same date
	if !filter.Date.IsZero() {
		date := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("transactions.date >= date(?)", date).Where("transactions.date < date(?)", date.AddDate(0, 0, 1))
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("transactions.date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("transactions.date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	if slices.Contains(setFields, "Advanced") {
		if filter.Advanced {
			q = q.Where("transactions.advanced_by IS NOT NULL")
		} else {
			q = q.Where("transactions.advanced_by IS NULL")
		}
	}

	if filter.SelfFinancing != "" {
		projectID, err := httputil.UUIDFromString(filter.SelfFinancing)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), TransactionListResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("transactions.self_financing_id = ?", projectID)
	}

	if filter.Search != "" {
		q = q.Where(
			models.DB.Where("description LIKE ?", fmt.Sprintf("%%%s%%", filter.Search)).Or(
				models.DB.Where("category LIKE ?", fmt.Sprintf("%%%s%%", filter.Search)),
			),
		)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to all transactions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	apiResources := make([]Transaction, 0)
	for _, transaction := range transactions {
		apiResources = append(apiResources, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: apiResources,
		Pagination: &Pagination{
			Count:  len(apiResources),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetTransaction returns a specific transaction.
func GetTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	apiResource := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &apiResource})
}

// UpdateTransaction updates an existing transaction. Only values to be
// updated need to be specified.
func UpdateTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	// Prefill the editable with the stored values so that fields missing
	// from the body stay untouched. Saving the merged resource runs the
	// model hooks on the merged state.
	data := TransactionEditable{
		GroupID:         transaction.GroupID,
		Date:            transaction.Date,
		Amount:          transaction.Amount,
		Description:     transaction.Description,
		Type:            transaction.Type,
		Category:        transaction.Category,
		PaymentMethod:   transaction.PaymentMethod,
		IsCampExpense:   transaction.IsCampExpense,
		AdvancedBy:      transaction.AdvancedBy,
		Repaid:          transaction.Repaid,
		RepaidDate:      transaction.RepaidDate,
		RepaymentMethod: transaction.RepaymentMethod,
		SelfFinancingID: transaction.SelfFinancingID,
	}

	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	merged := data.model()
	merged.DefaultModel = transaction.DefaultModel
	transaction = merged

	err = models.DB.Save(&transaction).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	apiResource := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &apiResource})
}

// DeleteTransaction deletes a transaction.
func DeleteTransaction(c *gin.Context) {
	deleteResource[models.Transaction](c)
}

// UpdateRepayment marks the advance of a transaction as repaid or reverts
// that. Clearing the repayment also clears its date and method.
func UpdateRepayment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, id).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var data RepaymentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	transaction.Repaid = data.Repaid
	if data.Repaid {
		transaction.RepaidDate = data.RepaidDate
		if transaction.RepaidDate == nil {
			now := time.Now().In(time.UTC)
			transaction.RepaidDate = &now
		}
		transaction.RepaymentMethod = data.RepaymentMethod
	} else {
		transaction.RepaidDate = nil
		transaction.RepaymentMethod = models.PaymentMethodNone
	}

	err = models.DB.Save(&transaction).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	apiResource := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &apiResource})
}
