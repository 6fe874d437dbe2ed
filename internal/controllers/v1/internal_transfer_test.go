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

	"github.com/scoutcassa/backend/test"
)

// TestInternalTransfersOptions verifies that OPTIONS requests are handled
// correctly. Internal transfers are immutable, so the detail endpoint does
// not allow PATCH.
func (suite *TestSuiteStandard) TestInternalTransfersOptions() {
	tests := []struct {
		name   string
		id     string // path at the InternalTransfers endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Internal Transfer with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Internal Transfer exists", createTestInternalTransfer(suite.T(), v1.InternalTransferEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/internal-transfers", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestInternalTransfersCreate() {
	from := createTestGroup(suite.T(), v1.GroupEditable{})
	to := createTestGroup(suite.T(), v1.GroupEditable{})

	transfer := createTestInternalTransfer(suite.T(), v1.InternalTransferEditable{
		Date:          time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		FromGroupID:   from.Data.ID,
		ToGroupID:     to.Data.ID,
		Amount:        decimal.NewFromInt(80),
		PaymentMethod: models.PaymentMethodCash,
		Description:   "Prestito per uscita",
	})

	assert.Equal(suite.T(), from.Data.ID, transfer.Data.FromGroupID)
	assert.Equal(suite.T(), to.Data.ID, transfer.Data.ToGroupID)
	assert.False(suite.T(), transfer.Data.IsRepayment)
}

func (suite *TestSuiteStandard) TestInternalTransfersCreateFails() {
	group := createTestGroup(suite.T(), v1.GroupEditable{})
	other := createTestGroup(suite.T(), v1.GroupEditable{})

	tests := []struct {
		name     string
		body     any
		status   int                                                     // expected HTTP status
		testFunc func(t *testing.T, r v1.InternalTransferCreateResponse) // tests to perform against the response
	}{
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, r v1.InternalTransferCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *r.Error)
			},
		},
		{
			"Same group on both sides",
			[]v1.InternalTransferEditable{{
				FromGroupID:   group.Data.ID,
				ToGroupID:     group.Data.ID,
				Amount:        decimal.NewFromInt(10),
				PaymentMethod: models.PaymentMethodCash,
			}},
			http.StatusBadRequest,
			func(t *testing.T, r v1.InternalTransferCreateResponse) {
				assert.Equal(t, models.ErrTransferSameGroup.Error(), *r.Data[0].Error)
			},
		},
		{
			"Zero amount",
			[]v1.InternalTransferEditable{{
				FromGroupID:   group.Data.ID,
				ToGroupID:     other.Data.ID,
				PaymentMethod: models.PaymentMethodCash,
			}},
			http.StatusBadRequest,
			func(t *testing.T, r v1.InternalTransferCreateResponse) {
				assert.Equal(t, models.ErrAmountNotPositive.Error(), *r.Data[0].Error)
			},
		},
		{
			"Missing payment method",
			[]v1.InternalTransferEditable{{
				FromGroupID: group.Data.ID,
				ToGroupID:   other.Data.ID,
				Amount:      decimal.NewFromInt(10),
			}},
			http.StatusBadRequest,
			func(t *testing.T, r v1.InternalTransferCreateResponse) {
				assert.Equal(t, models.ErrPaymentMethodInvalid.Error(), *r.Data[0].Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/internal-transfers", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.InternalTransferCreateResponse
			test.DecodeResponse(t, &r, &response)

			if tt.testFunc != nil {
				tt.testFunc(t, response)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestInternalTransfersGetFilter() {
	g1 := createTestGroup(suite.T(), v1.GroupEditable{})
	g2 := createTestGroup(suite.T(), v1.GroupEditable{})
	g3 := createTestGroup(suite.T(), v1.GroupEditable{})

	_ = createTestInternalTransfer(suite.T(), v1.InternalTransferEditable{
		FromGroupID: g1.Data.ID, ToGroupID: g2.Data.ID,
		Amount: decimal.NewFromInt(50), PaymentMethod: models.PaymentMethodCash,
	})
	_ = createTestInternalTransfer(suite.T(), v1.InternalTransferEditable{
		FromGroupID: g1.Data.ID, ToGroupID: g3.Data.ID,
		Amount: decimal.NewFromInt(30), PaymentMethod: models.PaymentMethodTransfer,
	})
	_ = createTestInternalTransfer(suite.T(), v1.InternalTransferEditable{
		FromGroupID: g2.Data.ID, ToGroupID: g1.Data.ID,
		Amount: decimal.NewFromInt(50), PaymentMethod: models.PaymentMethodCash,
		IsRepayment: true,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"From group", fmt.Sprintf("from=%s", g1.Data.ID), 2},
		{"To group", fmt.Sprintf("to=%s", g1.Data.ID), 1},
		{"From and to", fmt.Sprintf("from=%s&to=%s", g1.Data.ID, g3.Data.ID), 1},
		{"Repayments", "repayment=true", 1},
		{"Loans", "repayment=false", 2},
		{"Limit", "limit=2", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.InternalTransferListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/internal-transfers?%s", tt.query), "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestInternalTransfersGetInvalidQuery() {
	r := test.Request(suite.T(), http.MethodGet, "/v1/internal-transfers?from=NotAUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestInternalTransfersGetSingle() {
	transfer := createTestInternalTransfer(suite.T(), v1.InternalTransferEditable{})

	r := test.Request(suite.T(), http.MethodGet, transfer.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/internal-transfers/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/internal-transfers/NotAUUID", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

// TestInternalTransfersImmutable verifies that internal transfers cannot be
// updated.
func (suite *TestSuiteStandard) TestInternalTransfersImmutable() {
	transfer := createTestInternalTransfer(suite.T(), v1.InternalTransferEditable{})

	r := test.Request(suite.T(), http.MethodPatch, transfer.Data.Links.Self, `{"description": "Nuovo"}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)
}

func (suite *TestSuiteStandard) TestInternalTransfersDelete() {
	tests := []struct {
		name   string
		id     string
		status int // expected response status
	}{
		{"Success", "", http.StatusNoContent},
		{"Non-existing Internal Transfer", uuid.New().String(), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var recorder httptest.ResponseRecorder

			if tt.id == "" {
				transfer := createTestInternalTransfer(t, v1.InternalTransferEditable{})
				tt.id = transfer.Data.ID.String()
			}

			recorder = test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1/internal-transfers/%s", tt.id), "")
			test.AssertHTTPStatus(t, &recorder, tt.status)
		})
	}
}
