package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/scoutcassa/backend/internal/controllers/v1"
	"github.com/scoutcassa/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutcassa/backend/test"
)

// fundManagerGroup returns the seeded leaders' group, which manages the
// shared group fund by default.
func (suite *TestSuiteStandard) fundManagerGroup() v1.Group {
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/groups?name=%s", models.DefaultFundManagerName), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var groups v1.GroupListResponse
	test.DecodeResponse(suite.T(), &r, &groups)
	require.Len(suite.T(), groups.Data, 1)

	return groups.Data[0]
}

// TestBalancesEmpty verifies the aggregation result of a fresh instance.
func (suite *TestSuiteStandard) TestBalancesEmpty() {
	manager := suite.fundManagerGroup()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/balances", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BalanceResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.Overall.Balance.IsZero())
	assert.Equal(suite.T(), manager.ID, response.Data.GroupFund.ManagerGroupID)
	assert.True(suite.T(), response.Data.GroupFund.Balance.IsZero())
	assert.Len(suite.T(), response.Data.Groups, 1)
	assert.Zero(suite.T(), response.Data.Warnings.OrphanedTransactions)
}

// TestBalances verifies the aggregation over transactions, installments,
// internal transfers and the shared pools.
func (suite *TestSuiteStandard) TestBalances() {
	manager := suite.fundManagerGroup()
	group := suite.quoteGroup()
	member := createTestMember(suite.T(), v1.MemberEditable{GroupID: group.Data.ID})

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		GroupID:       group.Data.ID,
		Amount:        decimal.NewFromInt(100),
		Type:          models.TransactionTypeIncome,
		PaymentMethod: models.PaymentMethodCash,
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		GroupID:       group.Data.ID,
		Amount:        decimal.NewFromInt(40),
		Type:          models.TransactionTypeExpense,
		PaymentMethod: models.PaymentMethodTransfer,
	})

	// A first installment covering all fixed fees
	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	r := test.Request(suite.T(), http.MethodPatch, installmentPath(member, "first"), v1.InstallmentEditable{
		Amount:        decimal.NewFromInt(120),
		Date:          &date,
		PaymentMethod: models.PaymentMethodCash,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// A loan from the fund manager group
	_ = createTestInternalTransfer(suite.T(), v1.InternalTransferEditable{
		FromGroupID:   manager.ID,
		ToGroupID:     group.Data.ID,
		Amount:        decimal.NewFromInt(50),
		PaymentMethod: models.PaymentMethodCash,
	})

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/balances", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BalanceResponse
	test.DecodeResponse(suite.T(), &r, &response)
	result := response.Data

	// Overall: transfers are zero-sum and do not appear
	assert.True(suite.T(), result.Overall.TotalIncome.Equal(decimal.NewFromInt(220)))
	assert.True(suite.T(), result.Overall.TotalExpenses.Equal(decimal.NewFromInt(40)))
	assert.True(suite.T(), result.Overall.CashIncome.Equal(decimal.NewFromInt(220)))
	assert.True(suite.T(), result.Overall.BankExpenses.Equal(decimal.NewFromInt(40)))
	assert.True(suite.T(), result.Overall.CashBalance.Equal(decimal.NewFromInt(220)))
	assert.True(suite.T(), result.Overall.BankBalance.Equal(decimal.NewFromInt(-40)))
	assert.True(suite.T(), result.Overall.Balance.Equal(decimal.NewFromInt(180)))

	// The group keeps the installment minus the fixed fees, 20 of 120
	gb, ok := result.Groups[group.Data.ID]
	require.True(suite.T(), ok)
	assert.True(suite.T(), gb.CashIncome.Equal(decimal.NewFromInt(120)), "100 income + 20 installment part, got %s", gb.CashIncome)
	assert.True(suite.T(), gb.CashBalance.Equal(decimal.NewFromInt(170)), "120 cash income + 50 loan, got %s", gb.CashBalance)
	assert.True(suite.T(), gb.BankBalance.Equal(decimal.NewFromInt(-40)))
	assert.True(suite.T(), gb.Balance.Equal(decimal.NewFromInt(130)))
	assert.True(suite.T(), gb.PreCampCash.Equal(decimal.NewFromInt(20)))

	// The manager group collects the group fee and lent 50 in cash
	mb, ok := result.Groups[manager.ID]
	require.True(suite.T(), ok)
	assert.True(suite.T(), mb.CashIncome.Equal(decimal.NewFromInt(30)))
	assert.True(suite.T(), mb.CashBalance.Equal(decimal.NewFromInt(-20)))

	// Shared pools
	assert.True(suite.T(), result.Pools.Censimento.Equal(decimal.NewFromInt(40)))
	assert.Equal(suite.T(), 1, result.Pools.CensimentoCount)
	assert.True(suite.T(), result.Pools.BPParkFee.Equal(decimal.NewFromInt(10)))
	assert.True(suite.T(), result.Pools.PreCamp.Equal(decimal.NewFromInt(20)))
	assert.True(suite.T(), result.Pools.GroupFee.Equal(decimal.NewFromInt(30)))
	assert.True(suite.T(), result.Pools.GroupFeeCash.Equal(decimal.NewFromInt(30)))

	// Group fund and outstanding debts
	assert.Equal(suite.T(), manager.ID, result.GroupFund.ManagerGroupID)
	assert.True(suite.T(), result.GroupFund.Balance.Equal(decimal.NewFromInt(30)))
	assert.True(suite.T(), result.Debts[group.Data.ID].Equal(decimal.NewFromInt(50)))
	assert.True(suite.T(), result.Debts[manager.ID].IsZero())
}

// TestBalancesFundTransfer verifies that a fund transfer moves money between
// the manager's bank account and the group cash boxes.
func (suite *TestSuiteStandard) TestBalancesFundTransfer() {
	manager := suite.fundManagerGroup()
	group := createTestGroup(suite.T(), v1.GroupEditable{})

	_ = createTestFundTransfer(suite.T(), v1.FundTransferEditable{
		Type:        models.FundTransferWithdrawal,
		TotalAmount: decimal.NewFromInt(200),
		Distribution: []v1.FundTransferShareEditable{
			{GroupID: group.Data.ID, Amount: decimal.NewFromInt(200)},
		},
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/balances", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BalanceResponse
	test.DecodeResponse(suite.T(), &r, &response)
	result := response.Data

	assert.True(suite.T(), result.Overall.Balance.IsZero(), "Fund transfers are zero-sum overall")
	assert.True(suite.T(), result.Groups[group.Data.ID].CashBalance.Equal(decimal.NewFromInt(200)))
	assert.True(suite.T(), result.Groups[manager.ID].BankBalance.Equal(decimal.NewFromInt(-200)))
}

// TestBalancesOrphans verifies that transactions of a deleted group stay in
// the overall balance and are counted as warnings.
func (suite *TestSuiteStandard) TestBalancesOrphans() {
	group := createTestGroup(suite.T(), v1.GroupEditable{})
	transaction := createTestTransaction(suite.T(), v1.TransactionEditable{
		GroupID:       group.Data.ID,
		Amount:        decimal.NewFromInt(25),
		Type:          models.TransactionTypeIncome,
		PaymentMethod: models.PaymentMethodCash,
	})

	// Point the transaction at a group that does not exist
	r := test.Request(suite.T(), http.MethodPatch, transaction.Data.Links.Self, map[string]any{"groupId": uuid.New().String()})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/balances", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BalanceResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), response.Data.Overall.TotalIncome.Equal(decimal.NewFromInt(25)))
	assert.Equal(suite.T(), 1, response.Data.Warnings.OrphanedTransactions)
	assert.True(suite.T(), response.Data.Groups[group.Data.ID].CashBalance.IsZero())
}

func (suite *TestSuiteStandard) TestBalancesDBError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/balances", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
