package v1_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	v1 "github.com/scoutcassa/backend/internal/controllers/v1"
	"github.com/scoutcassa/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutcassa/backend/test"
)

// TestTransactionsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestTransactionsOptions() {
	tests := []struct {
		name   string
		id     string // path at the Transactions endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Transaction with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Transaction exists", createTestTransaction(suite.T(), v1.TransactionEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/transactions", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	group := createTestGroup(suite.T(), v1.GroupEditable{})
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		GroupID:     group.Data.ID,
		Amount:      decimal.NewFromFloat(32.50),
		Type:        models.TransactionTypeExpense,
		Description: "Corde per il reparto",
		Category:    "Materiale",
	})

	assert.True(suite.T(), transaction.Data.Amount.Equal(decimal.NewFromFloat(32.50)))
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/groups/%s", group.Data.ID), transaction.Data.Links.Group)
	assert.False(suite.T(), transaction.Data.Date.IsZero(), "The date must default to the current time")
}

func (suite *TestSuiteStandard) TestTransactionsCreateFails() {
	group := createTestGroup(suite.T(), v1.GroupEditable{})

	tests := []struct {
		name     string
		body     any
		status   int                                                // expected HTTP status
		testFunc func(t *testing.T, r v1.TransactionCreateResponse) // tests to perform against the response
	}{
		{
			"Broken Body", `[{ "description": 2 }]`, http.StatusBadRequest,
			func(t *testing.T, r v1.TransactionCreateResponse) {
				assert.Equal(t, "json: cannot unmarshal number into Go struct field TransactionEditable.description of type string", *r.Error)
			},
		},
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, r v1.TransactionCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *r.Error)
			},
		},
		{
			"Invalid type",
			[]v1.TransactionEditable{{GroupID: group.Data.ID, Amount: decimal.NewFromInt(10), Type: "TRANSFER", PaymentMethod: models.PaymentMethodCash}},
			http.StatusBadRequest,
			func(t *testing.T, r v1.TransactionCreateResponse) {
				assert.Equal(t, models.ErrTransactionTypeInvalid.Error(), *r.Data[0].Error)
			},
		},
		{
			"Zero amount",
			[]v1.TransactionEditable{{GroupID: group.Data.ID, Type: models.TransactionTypeIncome, PaymentMethod: models.PaymentMethodCash}},
			http.StatusBadRequest,
			func(t *testing.T, r v1.TransactionCreateResponse) {
				assert.Equal(t, models.ErrAmountNotPositive.Error(), *r.Data[0].Error)
			},
		},
		{
			"Missing payment method",
			[]v1.TransactionEditable{{GroupID: group.Data.ID, Amount: decimal.NewFromInt(10), Type: models.TransactionTypeIncome}},
			http.StatusBadRequest,
			func(t *testing.T, r v1.TransactionCreateResponse) {
				assert.Equal(t, models.ErrPaymentMethodInvalid.Error(), *r.Data[0].Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.TransactionCreateResponse
			test.DecodeResponse(t, &r, &response)

			if tt.testFunc != nil {
				tt.testFunc(t, response)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	g1 := createTestGroup(suite.T(), v1.GroupEditable{})
	g2 := createTestGroup(suite.T(), v1.GroupEditable{})
	project := createTestProject(suite.T(), v1.ProjectEditable{GroupID: g2.Data.ID})

	akela := "Akela"

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		GroupID:       g1.Data.ID,
		Date:          time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(250),
		Description:   "Quote censimento",
		Type:          models.TransactionTypeIncome,
		Category:      "Cibo & Bevande",
		PaymentMethod: models.PaymentMethodTransfer,
	})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		GroupID:       g1.Data.ID,
		Date:          time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromFloat(47.12),
		Description:   "Spesa per uscita",
		Type:          models.TransactionTypeExpense,
		Category:      "Trasporti",
		PaymentMethod: models.PaymentMethodCash,
		IsCampExpense: true,
		AdvancedBy:    &akela,
	})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		GroupID:         g2.Data.ID,
		Date:            time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		Amount:          decimal.NewFromInt(300),
		Description:     "Vendita torte",
		Type:            models.TransactionTypeIncome,
		PaymentMethod:   models.PaymentMethodCash,
		SelfFinancingID: &project.Data.ID,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Exact date", "date=2026-02-20T00:00:00Z", 2},
		{"From date", "fromDate=2026-02-01T00:00:00Z", 2},
		{"Until date", "untilDate=2026-01-31T00:00:00Z", 1},
		{"Amount", "amount=300", 1},
		{"Group", fmt.Sprintf("group=%s", g1.Data.ID), 2},
		{"Type income", "type=INCOME", 2},
		{"Type expense", "type=EXPENSE", 1},
		{"Category", "category=Trasporti", 1},
		{"Payment method", "paymentMethod=CASH", 2},
		{"Camp expenses", "campExpense=true", 1},
		{"Advanced", "advanced=true", 1},
		{"Not advanced", "advanced=false", 2},
		{"Repaid", "repaid=true", 0},
		{"Self-financing project", fmt.Sprintf("selfFinancing=%s", project.Data.ID), 1},
		{"Search in description", "search=torte", 1},
		{"Search in category", "search=traspor", 1},
		{"Limit", "limit=2", 2},
		{"Offset", "offset=1", 2},
		{"Offset and limit", "offset=2&limit=2", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.TransactionListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

// TestTransactionsSorting verifies that transactions are sorted by date,
// newest first.
func (suite *TestSuiteStandard) TestTransactionsSorting() {
	group := createTestGroup(suite.T(), v1.GroupEditable{})

	older := createTestTransaction(suite.T(), v1.TransactionEditable{
		GroupID: group.Data.ID,
		Date:    time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
	})
	newer := createTestTransaction(suite.T(), v1.TransactionEditable{
		GroupID: group.Data.ID,
		Date:    time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), newer.Data.ID, response.Data[0].ID)
	assert.Equal(suite.T(), older.Data.ID, response.Data[1].ID)
}

func (suite *TestSuiteStandard) TestTransactionsPagination() {
	for i := 0; i < 4; i++ {
		_ = createTestTransaction(suite.T(), v1.TransactionEditable{})
	}

	r := test.Request(suite.T(), http.MethodGet, "/v1/transactions?offset=1&limit=2", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), uint(1), response.Pagination.Offset)
	assert.Equal(suite.T(), 2, response.Pagination.Limit)
	assert.Equal(suite.T(), int64(4), response.Pagination.Total)
}

func (suite *TestSuiteStandard) TestTransactionsGetSingle() {
	tr := createTestTransaction(suite.T(), v1.TransactionEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Transaction", tr.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No Transaction with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (positive number)", "87", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/transactions/%s", tt.id), "")

			var transaction v1.TransactionResponse
			test.DecodeResponse(t, &r, &transaction)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		Description: "Spesa per uscita",
		Category:    "Trasporti",
	})

	tests := []struct {
		name     string
		body     map[string]any
		testFunc func(t *testing.T, tr v1.TransactionResponse)
	}{
		{
			"Description",
			map[string]any{"description": "Biglietti del treno"},
			func(t *testing.T, tr v1.TransactionResponse) {
				assert.Equal(t, "Biglietti del treno", tr.Data.Description)
				assert.Equal(t, "Trasporti", tr.Data.Category, "Fields not in the body must stay untouched")
			},
		},
		{
			"Amount and camp expense",
			map[string]any{"amount": "52.30", "isCampExpense": true},
			func(t *testing.T, tr v1.TransactionResponse) {
				assert.True(t, tr.Data.Amount.Equal(decimal.NewFromFloat(52.30)))
				assert.True(t, tr.Data.IsCampExpense)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, transaction.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var tr v1.TransactionResponse
			test.DecodeResponse(t, &r, &tr)

			if tt.testFunc != nil {
				tt.testFunc(t, tr)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsUpdateFails() {
	tests := []struct {
		name   string
		id     string
		body   any
		status int // expected response status
	}{
		{"Invalid type", "", `{"amount": 0}`, http.StatusBadRequest},
		{"Broken JSON", "", `{ "description": 2" }`, http.StatusBadRequest},
		{"Non-existing Transaction", uuid.New().String(), `{"description": "Nuovo"}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var recorder httptest.ResponseRecorder

			if tt.id == "" {
				transaction := createTestTransaction(suite.T(), v1.TransactionEditable{})
				tt.id = transaction.Data.ID.String()
			}

			recorder = test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/transactions/%s", tt.id), tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}

// TestTransactionsRepayment verifies the repayment endpoint for advanced
// transactions.
func (suite *TestSuiteStandard) TestTransactionsRepayment() {
	akela := "Akela"
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{AdvancedBy: &akela})

	repaymentPath := transaction.Data.Links.Self + "/repayment"

	r := test.Request(suite.T(), http.MethodOptions, repaymentPath, "")
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "OPTIONS, PATCH", r.Header().Get("allow"))

	// Marking as repaid without a date defaults to the current time
	r = test.Request(suite.T(), http.MethodPatch, repaymentPath, v1.RepaymentEditable{
		Repaid:          true,
		RepaymentMethod: models.PaymentMethodTransfer,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.True(suite.T(), response.Data.Repaid)
	require.NotNil(suite.T(), response.Data.RepaidDate)
	assert.Equal(suite.T(), models.PaymentMethodTransfer, response.Data.RepaymentMethod)

	// An explicit date is kept
	date := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	r = test.Request(suite.T(), http.MethodPatch, repaymentPath, v1.RepaymentEditable{
		Repaid:          true,
		RepaidDate:      &date,
		RepaymentMethod: models.PaymentMethodCash,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), date, response.Data.RepaidDate.In(time.UTC))

	// Reverting clears the date and method
	r = test.Request(suite.T(), http.MethodPatch, repaymentPath, v1.RepaymentEditable{})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.False(suite.T(), response.Data.Repaid)
	assert.Nil(suite.T(), response.Data.RepaidDate)
	assert.Equal(suite.T(), models.PaymentMethodNone, response.Data.RepaymentMethod)
}

func (suite *TestSuiteStandard) TestTransactionsRepaymentFails() {
	tests := []struct {
		name   string
		id     string
		body   any
		status int
	}{
		{"Non-existing Transaction", uuid.New().String(), `{"repaid": true}`, http.StatusNotFound},
		{"Not a valid UUID", "NotAUUID", `{"repaid": true}`, http.StatusBadRequest},
		{"No body", createTestTransaction(suite.T(), v1.TransactionEditable{}).Data.ID.String(), "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/transactions/%s/repayment", tt.id), tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	tests := []struct {
		name   string
		id     string
		status int // expected response status
	}{
		{"Success", "", http.StatusNoContent},
		{"Non-existing Transaction", uuid.New().String(), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var recorder httptest.ResponseRecorder

			if tt.id == "" {
				tr := createTestTransaction(t, v1.TransactionEditable{})
				tt.id = tr.Data.ID.String()
			}

			recorder = test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/transactions/%s", tt.id), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}
