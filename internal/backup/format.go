// Package backup reads and writes the portable backup file. The file is a
// single JSON object holding every collection plus the instance settings,
// and restoring one replaces the database contents wholesale.
package backup

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scoutcassa/backend/internal/models"
)

const dateLayout = "2006-01-02"

// File is the wire shape of a backup. Field names follow the historical
// format so that backups stay portable across versions.
type File struct {
	Transactions          []Transaction          `json:"transactions"`
	Categories            []Named                `json:"categories"`
	Groups                []Group                `json:"groups"`
	Members               []Member               `json:"members"`
	Units                 []Named                `json:"units"`
	FundTransfers         []FundTransfer         `json:"fundTransfers"`
	InternalTransfers     []InternalTransfer     `json:"internalTransfers"`
	SelfFinancingProjects []SelfFinancingProject `json:"selfFinancingProjects"`
	ConfirmOnDelete       bool                   `json:"confirmOnDelete"`
	GroupFundManagerID    *string                `json:"groupFundManagerId"`
	UserPermissions       map[string]bool        `json:"userPermissions"`
}

type Named struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Group struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Color         string        `json:"color"`
	QuoteSettings QuoteSettings `json:"quoteSettings"`
}

type QuoteSettings struct {
	Installments     map[string]decimal.Decimal `json:"installments"`
	SiblingDiscounts map[string]decimal.Decimal `json:"siblingDiscounts"`
	GroupFee         decimal.Decimal            `json:"groupFee"`
	BPParkFee        decimal.Decimal            `json:"bpParkFee"`
	Censimento       decimal.Decimal            `json:"censimento"`
	PreCamp          decimal.Decimal            `json:"preCamp"`
}

type Member struct {
	ID           string                 `json:"id"`
	GroupID      string                 `json:"groupId"`
	Name         string                 `json:"name"`
	Unit         string                 `json:"unit"`
	Siblings     string                 `json:"siblings"`
	Installments map[string]Installment `json:"installments"`
}

type Installment struct {
	Amount        decimal.Decimal `json:"amount"`
	Date          *string         `json:"date"`
	PaymentMethod *string         `json:"paymentMethod"`
	Allocations   *Allocations    `json:"allocations,omitempty"`
}

type Allocations struct {
	Censimento bool `json:"censimento"`
	BPParkFee  bool `json:"bpParkFee"`
	GroupFee   bool `json:"groupFee"`
	PreCamp    bool `json:"preCamp"`
}

type Transaction struct {
	ID              string          `json:"id"`
	GroupID         string          `json:"groupId"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Date            string          `json:"date"`
	Type            string          `json:"type"`
	Category        string          `json:"category"`
	PaymentMethod   string          `json:"paymentMethod"`
	IsCampExpense   bool            `json:"isCampExpense"`
	AdvancedBy      *string         `json:"advancedBy"`
	Repaid          bool            `json:"repaid"`
	RepaidDate      *string         `json:"repaidDate"`
	RepaymentMethod *string         `json:"repaymentMethod"`
	SelfFinancingID *string         `json:"selfFinancingId,omitempty"`
}

type FundTransfer struct {
	ID           string                     `json:"id"`
	Date         string                     `json:"date"`
	Type         string                     `json:"type"`
	TotalAmount  decimal.Decimal            `json:"totalAmount"`
	Description  string                     `json:"description"`
	Distribution map[string]decimal.Decimal `json:"distribution"`
}

type InternalTransfer struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	FromGroupID   string          `json:"fromGroupId"`
	ToGroupID     string          `json:"toGroupId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	Description   string          `json:"description"`
	IsRepayment   bool            `json:"isRepayment"`
}

type SelfFinancingProject struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	GroupID string `json:"groupId"`
}

// Create builds a backup file from the database contents.
func Create(s models.Snapshot, categories []models.Category, units []models.Unit) File {
	f := File{
		Transactions:          make([]Transaction, 0, len(s.Transactions)),
		Categories:            make([]Named, 0, len(categories)),
		Groups:                make([]Group, 0, len(s.Groups)),
		Members:               make([]Member, 0, len(s.Members)),
		Units:                 make([]Named, 0, len(units)),
		FundTransfers:         make([]FundTransfer, 0, len(s.FundTransfers)),
		InternalTransfers:     make([]InternalTransfer, 0, len(s.InternalTransfers)),
		SelfFinancingProjects: make([]SelfFinancingProject, 0, len(s.Projects)),
		ConfirmOnDelete:       s.Settings.ConfirmOnDelete,
		UserPermissions:       permissionsFromSettings(s.Settings),
	}

	if s.Settings.FundManagerGroupID != nil {
		id := s.Settings.FundManagerGroupID.String()
		f.GroupFundManagerID = &id
	}

	for _, t := range s.Transactions {
		f.Transactions = append(f.Transactions, Transaction{
			ID:              t.ID.String(),
			GroupID:         t.GroupID.String(),
			Description:     t.Description,
			Amount:          t.Amount,
			Date:            t.Date.Format(dateLayout),
			Type:            string(t.Type),
			Category:        t.Category,
			PaymentMethod:   string(t.PaymentMethod),
			IsCampExpense:   t.IsCampExpense,
			AdvancedBy:      t.AdvancedBy,
			Repaid:          t.Repaid,
			RepaidDate:      formatDatePtr(t.RepaidDate),
			RepaymentMethod: methodPtr(t.RepaymentMethod),
			SelfFinancingID: uuidPtr(t.SelfFinancingID),
		})
	}

	for _, c := range categories {
		f.Categories = append(f.Categories, Named{ID: c.ID.String(), Name: c.Name})
	}
	for _, u := range units {
		f.Units = append(f.Units, Named{ID: u.ID.String(), Name: u.Name})
	}

	for _, g := range s.Groups {
		f.Groups = append(f.Groups, Group{
			ID:    g.ID.String(),
			Name:  g.Name,
			Color: g.Color,
			QuoteSettings: QuoteSettings{
				Installments: map[string]decimal.Decimal{
					string(models.SlotFirst):      g.QuoteSettings.InstallmentFirst,
					string(models.SlotSecond):     g.QuoteSettings.InstallmentSecond,
					string(models.SlotThird):      g.QuoteSettings.InstallmentThird,
					string(models.SlotSummerCamp): g.QuoteSettings.InstallmentSummerCamp,
				},
				SiblingDiscounts: map[string]decimal.Decimal{
					string(models.SiblingsNone):    g.QuoteSettings.DiscountSiblings0,
					string(models.SiblingsOne):     g.QuoteSettings.DiscountSiblings1,
					string(models.SiblingsTwo):     g.QuoteSettings.DiscountSiblings2,
					string(models.SiblingsOverTwo): g.QuoteSettings.DiscountSiblingsOver2,
				},
				GroupFee:   g.QuoteSettings.GroupFee,
				BPParkFee:  g.QuoteSettings.BPParkFee,
				Censimento: g.QuoteSettings.Censimento,
				PreCamp:    g.QuoteSettings.PreCamp,
			},
		})
	}

	for _, m := range s.Members {
		installments := make(map[string]Installment, len(m.Installments))
		for _, inst := range m.Installments {
			wire := Installment{
				Amount:        inst.Amount,
				Date:          formatDatePtr(inst.Date),
				PaymentMethod: methodPtr(inst.PaymentMethod),
			}
			if inst.Slot == models.SlotFirst && !inst.Allocation.None() {
				wire.Allocations = &Allocations{
					Censimento: inst.Allocation.Censimento,
					BPParkFee:  inst.Allocation.BPParkFee,
					GroupFee:   inst.Allocation.GroupFee,
					PreCamp:    inst.Allocation.PreCamp,
				}
			}
			installments[string(inst.Slot)] = wire
		}

		f.Members = append(f.Members, Member{
			ID:           m.ID.String(),
			GroupID:      m.GroupID.String(),
			Name:         m.Name,
			Unit:         m.Unit,
			Siblings:     string(m.Siblings),
			Installments: installments,
		})
	}

	for _, ft := range s.FundTransfers {
		distribution := make(map[string]decimal.Decimal, len(ft.Shares))
		for _, share := range ft.Shares {
			distribution[share.GroupID.String()] = share.Amount
		}

		f.FundTransfers = append(f.FundTransfers, FundTransfer{
			ID:           ft.ID.String(),
			Date:         ft.Date.Format(dateLayout),
			Type:         string(ft.Type),
			TotalAmount:  ft.TotalAmount,
			Description:  ft.Description,
			Distribution: distribution,
		})
	}

	for _, it := range s.InternalTransfers {
		f.InternalTransfers = append(f.InternalTransfers, InternalTransfer{
			ID:            it.ID.String(),
			Date:          it.Date.Format(dateLayout),
			FromGroupID:   it.FromGroupID.String(),
			ToGroupID:     it.ToGroupID.String(),
			Amount:        it.Amount,
			PaymentMethod: string(it.PaymentMethod),
			Description:   it.Description,
			IsRepayment:   it.IsRepayment,
		})
	}

	for _, p := range s.Projects {
		f.SelfFinancingProjects = append(f.SelfFinancingProjects, SelfFinancingProject{
			ID:      p.ID.String(),
			Name:    p.Name,
			GroupID: p.GroupID.String(),
		})
	}

	return f
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func methodPtr(m models.PaymentMethod) *string {
	if m == models.PaymentMethodNone {
		return nil
	}
	s := string(m)
	return &s
}

func uuidPtr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
