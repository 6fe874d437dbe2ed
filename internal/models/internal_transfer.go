package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InternalTransfer is a loan from one group to another, or the repayment of
// an earlier loan when IsRepayment is set. Transfers are zero-sum across
// groups and never change the global balance.
type InternalTransfer struct {
	DefaultModel
	Date          time.Time
	FromGroupID   uuid.UUID
	ToGroupID     uuid.UUID
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaymentMethod PaymentMethod
	Description   string
	IsRepayment   bool
}

func (t *InternalTransfer) BeforeSave(_ *gorm.DB) error {
	if t.FromGroupID == t.ToGroupID {
		return ErrTransferSameGroup
	}
	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if !t.PaymentMethod.Valid() {
		return ErrPaymentMethodInvalid
	}

	t.Description = strings.TrimSpace(t.Description)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}
