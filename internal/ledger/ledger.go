// Package ledger projects all event kinds into one uniformly shaped feed
// and filters it. Both operations are pure, the feed is recomputed on every
// read.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scoutcassa/backend/internal/models"
)

// EntryType tags the event kind an entry was projected from.
type EntryType string

const (
	EntryTransactionIncome  EntryType = "TRANSACTION_INCOME"
	EntryTransactionExpense EntryType = "TRANSACTION_EXPENSE"
	EntryInstallmentPayment EntryType = "INSTALLMENT_PAYMENT"
	EntryFundTransfer       EntryType = "FUND_TRANSFER"
	EntryInternalTransfer   EntryType = "INTERNAL_TRANSFER"
)

func (t EntryType) Valid() bool {
	switch t {
	case EntryTransactionIncome, EntryTransactionExpense, EntryInstallmentPayment, EntryFundTransfer, EntryInternalTransfer:
		return true
	}
	return false
}

// Entry is one row of the combined feed. Amount is unsigned, the type
// carries the direction. Category is set for transaction entries only.
type Entry struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Type        EntryType       `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Details     string          `json:"details"`
	Category    string          `json:"category,omitempty"`
	GroupIDs    []uuid.UUID     `json:"groupIds"`
}

var slotLabels = map[models.Slot]string{
	models.SlotFirst:      "prima rata",
	models.SlotSecond:     "seconda rata",
	models.SlotThird:      "terza rata",
	models.SlotSummerCamp: "campo estivo",
}

// Project merges transactions, paid installments, fund transfers and
// internal transfers into one feed, newest first. The merge order is fixed
// and the sort is stable, entries with equal dates keep their insertion
// order per collection.
func Project(s models.Snapshot) []Entry {
	entries := make([]Entry, 0, len(s.Transactions)+len(s.Members)+len(s.FundTransfers)+len(s.InternalTransfers))

	for _, t := range s.Transactions {
		entryType := EntryTransactionIncome
		if t.Type == models.TransactionTypeExpense {
			entryType = EntryTransactionExpense
		}

		entries = append(entries, Entry{
			ID:          t.ID,
			Date:        t.Date,
			Type:        entryType,
			Description: t.Description,
			Amount:      t.Amount,
			Details:     t.Category,
			Category:    t.Category,
			GroupIDs:    []uuid.UUID{t.GroupID},
		})
	}

	for _, member := range s.Members {
		groupName := ""
		if group, ok := s.GroupByID(member.GroupID); ok {
			groupName = group.Name
		}

		for _, inst := range member.Installments {
			if !inst.Paid() || inst.Date == nil {
				continue
			}

			entries = append(entries, Entry{
				ID:          inst.ID,
				Date:        *inst.Date,
				Type:        EntryInstallmentPayment,
				Description: fmt.Sprintf("Quota %s - %s", slotLabels[inst.Slot], member.Name),
				Amount:      inst.Amount,
				Details:     groupName,
				GroupIDs:    []uuid.UUID{member.GroupID},
			})
		}
	}

	for _, ft := range s.FundTransfers {
		groupIDs := make([]uuid.UUID, 0, len(ft.Shares))
		for _, share := range ft.Shares {
			groupIDs = append(groupIDs, share.GroupID)
		}

		details := "Prelievo dal fondo di gruppo"
		if ft.Type == models.FundTransferDeposit {
			details = "Versamento nel fondo di gruppo"
		}

		entries = append(entries, Entry{
			ID:          ft.ID,
			Date:        ft.Date,
			Type:        EntryFundTransfer,
			Description: ft.Description,
			Amount:      ft.TotalAmount,
			Details:     details,
			GroupIDs:    groupIDs,
		})
	}

	for _, it := range s.InternalTransfers {
		details := "Prestito tra casse"
		if it.IsRepayment {
			details = "Restituzione prestito"
		}

		entries = append(entries, Entry{
			ID:          it.ID,
			Date:        it.Date,
			Type:        EntryInternalTransfer,
			Description: it.Description,
			Amount:      it.Amount,
			Details:     details,
			GroupIDs:    []uuid.UUID{it.FromGroupID, it.ToGroupID},
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	return entries
}
