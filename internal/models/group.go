package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Group is one sub-group of the association sharing the common treasury,
// e.g. a branch or the leaders' community.
type Group struct {
	DefaultModel
	Name          string `gorm:"uniqueIndex:group_name"`
	Color         string
	QuoteSettings QuoteSettings `gorm:"embedded;embeddedPrefix:quote_" json:"quoteSettings"`
}

// QuoteSettings holds the fee schedule of a group: the base amount of each
// installment, the sibling discount table and the four fixed fees collected
// with the first installment.
type QuoteSettings struct {
	InstallmentFirst      decimal.Decimal `json:"installmentFirst" gorm:"type:DECIMAL(20,8)"`
	InstallmentSecond     decimal.Decimal `json:"installmentSecond" gorm:"type:DECIMAL(20,8)"`
	InstallmentThird      decimal.Decimal `json:"installmentThird" gorm:"type:DECIMAL(20,8)"`
	InstallmentSummerCamp decimal.Decimal `json:"installmentSummerCamp" gorm:"type:DECIMAL(20,8)"`

	// Discount percentages per sibling-count bucket
	DiscountSiblings0     decimal.Decimal `json:"discountSiblings0" gorm:"type:DECIMAL(20,8)"`
	DiscountSiblings1     decimal.Decimal `json:"discountSiblings1" gorm:"type:DECIMAL(20,8)"`
	DiscountSiblings2     decimal.Decimal `json:"discountSiblings2" gorm:"type:DECIMAL(20,8)"`
	DiscountSiblingsOver2 decimal.Decimal `json:"discountSiblingsOver2" gorm:"type:DECIMAL(20,8)"`

	GroupFee   decimal.Decimal `json:"groupFee" gorm:"type:DECIMAL(20,8)"`
	BPParkFee  decimal.Decimal `json:"bpParkFee" gorm:"type:DECIMAL(20,8)"`
	Censimento decimal.Decimal `json:"censimento" gorm:"type:DECIMAL(20,8)"`
	PreCamp    decimal.Decimal `json:"preCamp" gorm:"type:DECIMAL(20,8)"`
}

// InstallmentBase returns the configured base amount for a slot.
func (q QuoteSettings) InstallmentBase(slot Slot) decimal.Decimal {
	switch slot {
	case SlotFirst:
		return q.InstallmentFirst
	case SlotSecond:
		return q.InstallmentSecond
	case SlotThird:
		return q.InstallmentThird
	case SlotSummerCamp:
		return q.InstallmentSummerCamp
	}
	return decimal.Zero
}

// SiblingDiscount returns the discount percentage for a sibling bucket.
func (q QuoteSettings) SiblingDiscount(s Siblings) decimal.Decimal {
	switch s {
	case SiblingsOne:
		return q.DiscountSiblings1
	case SiblingsTwo:
		return q.DiscountSiblings2
	case SiblingsOverTwo:
		return q.DiscountSiblingsOver2
	}
	return q.DiscountSiblings0
}

func (g *Group) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Color = strings.TrimSpace(g.Color)

	return nil
}

// BeforeDelete rejects the deletion of a group that is still referenced by
// transactions or members, and of the last remaining group.
func (g *Group) BeforeDelete(tx *gorm.DB) error {
	var count int64

	err := tx.Model(&Transaction{}).Where("group_id = ?", g.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrGroupInUse
	}

	err = tx.Model(&Member{}).Where("group_id = ?", g.ID).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrGroupInUse
	}

	err = tx.Model(&Group{}).Count(&count).Error
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastGroup
	}

	return nil
}
