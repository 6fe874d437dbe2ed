package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Installment is one fee slot of a member. The slot is fixed, only the
// payment fields change over its lifetime.
type Installment struct {
	DefaultModel
	MemberID      uuid.UUID       `gorm:"uniqueIndex:installment_member_slot"`
	Slot          Slot            `gorm:"uniqueIndex:installment_member_slot"`
	Amount        decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date          *time.Time
	PaymentMethod PaymentMethod
	Allocation    Allocation `gorm:"embedded;embeddedPrefix:alloc_" json:"allocations"`
}

// Allocation records which fixed fees a first-installment payment is deemed
// to cover. Only the first slot carries a meaningful allocation.
type Allocation struct {
	Censimento bool `json:"censimento"`
	BPParkFee  bool `json:"bpParkFee"`
	GroupFee   bool `json:"groupFee"`
	PreCamp    bool `json:"preCamp"`
}

// None reports whether no fee bucket is selected.
func (a Allocation) None() bool {
	return !a.Censimento && !a.BPParkFee && !a.GroupFee && !a.PreCamp
}

// Paid reports whether the installment has been paid.
func (i Installment) Paid() bool {
	return i.Amount.IsPositive()
}

// BeforeSave enforces the payment invariant: a positive amount needs a date
// and a payment method, a zero amount must not carry either. Unpaid slots
// also drop any stale allocation.
func (i *Installment) BeforeSave(_ *gorm.DB) error {
	if !i.Slot.Valid() {
		return ErrSlotInvalid
	}

	if i.Amount.IsNegative() {
		return ErrAmountNotPositive
	}

	if i.Amount.IsPositive() {
		if i.Date == nil || i.PaymentMethod == PaymentMethodNone {
			return ErrInstallmentIncomplete
		}
		if !i.PaymentMethod.Valid() {
			return ErrPaymentMethodInvalid
		}

		utc := i.Date.In(time.UTC)
		i.Date = &utc

		return nil
	}

	if i.Date != nil || i.PaymentMethod != PaymentMethodNone {
		return ErrInstallmentNotEmpty
	}
	i.Allocation = Allocation{}

	return nil
}
