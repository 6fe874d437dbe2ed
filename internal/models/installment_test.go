package models_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/scoutcassa/backend/internal/models"
)

func (suite *TestSuiteStandard) TestInstallmentBeforeSave() {
	date := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	tests := []struct {
		name        string
		installment models.Installment
		err         error
	}{
		{"Unpaid slot", models.Installment{Slot: models.SlotFirst}, nil},
		{"Paid slot", models.Installment{Slot: models.SlotSecond, Amount: decimal.NewFromInt(80), Date: &date, PaymentMethod: models.PaymentMethodCash}, nil},
		{"Invalid slot", models.Installment{Slot: "fourth"}, models.ErrSlotInvalid},
		{"Negative amount", models.Installment{Slot: models.SlotFirst, Amount: decimal.NewFromInt(-1)}, models.ErrAmountNotPositive},
		{"Paid without date", models.Installment{Slot: models.SlotFirst, Amount: decimal.NewFromInt(120), PaymentMethod: models.PaymentMethodCash}, models.ErrInstallmentIncomplete},
		{"Paid without method", models.Installment{Slot: models.SlotFirst, Amount: decimal.NewFromInt(120), Date: &date}, models.ErrInstallmentIncomplete},
		{"Paid with unknown method", models.Installment{Slot: models.SlotFirst, Amount: decimal.NewFromInt(120), Date: &date, PaymentMethod: "IOU"}, models.ErrPaymentMethodInvalid},
		{"Unpaid with date", models.Installment{Slot: models.SlotFirst, Date: &date}, models.ErrInstallmentNotEmpty},
		{"Unpaid with method", models.Installment{Slot: models.SlotFirst, PaymentMethod: models.PaymentMethodCash}, models.ErrInstallmentNotEmpty},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := tt.installment.BeforeSave(models.DB)
			if tt.err == nil {
				assert.Nil(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

// TestInstallmentDateUTC verifies that payment dates are normalized to UTC.
func (suite *TestSuiteStandard) TestInstallmentDateUTC() {
	date := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	installment := models.Installment{
		Slot:          models.SlotFirst,
		Amount:        decimal.NewFromInt(120),
		Date:          &date,
		PaymentMethod: models.PaymentMethodCash,
	}

	assert.Nil(suite.T(), installment.BeforeSave(models.DB))
	assert.Equal(suite.T(), time.UTC, installment.Date.Location())
}

// TestInstallmentClearDropsAllocation verifies that saving an unpaid slot
// drops a stale allocation.
func (suite *TestSuiteStandard) TestInstallmentClearDropsAllocation() {
	installment := models.Installment{
		Slot:       models.SlotFirst,
		Allocation: models.Allocation{Censimento: true, GroupFee: true},
	}

	assert.Nil(suite.T(), installment.BeforeSave(models.DB))
	assert.True(suite.T(), installment.Allocation.None())
}

func (suite *TestSuiteStandard) TestInstallmentPaid() {
	assert.False(suite.T(), models.Installment{}.Paid())
	assert.True(suite.T(), models.Installment{Amount: decimal.NewFromInt(1)}.Paid())
}
