package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FundTransfer moves money between the fund manager's bank account and the
// cash boxes of the groups listed in its shares. The shares are validated
// against the total when the transfer is recorded; the aggregator trusts
// stored rows.
type FundTransfer struct {
	DefaultModel
	Date        time.Time
	Type        FundTransferType
	TotalAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Description string
	Shares      []FundTransferShare `gorm:"constraint:OnDelete:CASCADE" json:"distribution"`
}

// FundTransferShare is one group's part of a fund transfer.
type FundTransferShare struct {
	DefaultModel
	FundTransferID uuid.UUID
	GroupID        uuid.UUID
	Amount         decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (f *FundTransfer) BeforeSave(_ *gorm.DB) error {
	if !f.Type.Valid() {
		return ErrFundTransferTypeInvalid
	}
	if !f.TotalAmount.IsPositive() {
		return ErrAmountNotPositive
	}

	f.Description = strings.TrimSpace(f.Description)

	if f.Date.IsZero() {
		f.Date = time.Now().In(time.UTC)
	} else {
		f.Date = f.Date.In(time.UTC)
	}

	return nil
}

// DistributedTotal is the sum of all shares.
func (f FundTransfer) DistributedTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, share := range f.Shares {
		sum = sum.Add(share.Amount)
	}
	return sum
}
