// Package quota decides how a member's installment payments are attributed
// to the fixed fee buckets of their group. All functions are pure.
package quota

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/scoutcassa/backend/internal/models"
)

var (
	ErrAllocationRequired       = errors.New("the payment does not cover all fixed fees, the covered fees must be selected explicitly")
	ErrAllocationExceedsPayment = errors.New("the selected fees add up to more than the amount paid")
)

var percent = decimal.NewFromInt(100)

// SuggestAmount returns the amount to prefill for an installment slot.
//
// A slot that has already been paid echoes its amount so that repeated
// suggestions are stable. An unpaid first installment suggests the base
// amount with the member's sibling discount applied, rounded to cents. The
// other slots are entered manually and suggest nothing.
func SuggestAmount(inst models.Installment, siblings models.Siblings, qs models.QuoteSettings) decimal.Decimal {
	if inst.Paid() {
		return inst.Amount
	}

	if inst.Slot != models.SlotFirst {
		return decimal.Zero
	}

	discount := qs.SiblingDiscount(siblings)
	factor := decimal.NewFromInt(1).Sub(discount.Div(percent))

	return qs.InstallmentBase(models.SlotFirst).Mul(factor).Round(2)
}

// TotalFixedFees is the sum of the four fixed fees of a group.
func TotalFixedFees(qs models.QuoteSettings) decimal.Decimal {
	return qs.Censimento.
		Add(qs.BPParkFee).
		Add(qs.GroupFee).
		Add(qs.PreCamp)
}

// AllocatedTotal is the sum of the fee amounts an allocation selects.
func AllocatedTotal(a models.Allocation, qs models.QuoteSettings) decimal.Decimal {
	sum := decimal.Zero
	if a.Censimento {
		sum = sum.Add(qs.Censimento)
	}
	if a.BPParkFee {
		sum = sum.Add(qs.BPParkFee)
	}
	if a.GroupFee {
		sum = sum.Add(qs.GroupFee)
	}
	if a.PreCamp {
		sum = sum.Add(qs.PreCamp)
	}
	return sum
}

// Resolve determines the fee allocation for a first-installment payment.
//
// A payment covering all fixed fees resolves to a full allocation without
// any selection. A partial payment needs an explicit selection whose fee
// amounts must not exceed the amount paid; resolving an edited-down payment
// against its stored allocation rejects stale selections the new amount no
// longer covers, forcing the caller back into the selection step. A zero
// payment carries no allocation.
func Resolve(paid decimal.Decimal, qs models.QuoteSettings, selected *models.Allocation) (models.Allocation, error) {
	if !paid.IsPositive() {
		return models.Allocation{}, nil
	}

	if paid.GreaterThanOrEqual(TotalFixedFees(qs)) {
		return models.Allocation{
			Censimento: true,
			BPParkFee:  true,
			GroupFee:   true,
			PreCamp:    true,
		}, nil
	}

	if selected == nil {
		return models.Allocation{}, ErrAllocationRequired
	}

	if AllocatedTotal(*selected, qs).GreaterThan(paid) {
		return models.Allocation{}, ErrAllocationExceedsPayment
	}

	return *selected, nil
}
