package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single income or expense recorded against one group. The
// group reference is deliberately not enforced with a foreign key: restored
// backups may carry transactions of groups deleted long ago, those are kept
// and reported as data warnings by the aggregator.
type Transaction struct {
	DefaultModel
	GroupID         uuid.UUID
	Description     string
	Amount          decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date            time.Time
	Type            TransactionType
	Category        string
	PaymentMethod   PaymentMethod
	IsCampExpense   bool
	AdvancedBy      *string
	Repaid          bool
	RepaidDate      *time.Time
	RepaymentMethod PaymentMethod
	SelfFinancingID *uuid.UUID
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}
	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if !t.PaymentMethod.Valid() {
		return ErrPaymentMethodInvalid
	}

	t.Description = strings.TrimSpace(t.Description)
	t.Category = strings.TrimSpace(t.Category)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	if t.AdvancedBy != nil {
		name := strings.TrimSpace(*t.AdvancedBy)
		if name == "" {
			t.AdvancedBy = nil
		} else {
			t.AdvancedBy = &name
		}
	}

	return nil
}

// AfterFind updates the timestamps to use UTC as timezone, see DefaultModel.
func (t *Transaction) AfterFind(_ *gorm.DB) error {
	t.Date = t.Date.In(time.UTC)
	return nil
}
