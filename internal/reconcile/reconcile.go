// Package reconcile computes all derived balances of the treasury as a pure
// fold over the full event set. Aggregate is referentially transparent:
// identical snapshots produce identical results, and the fold order over
// groups and members does not matter.
package reconcile

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/scoutcassa/backend/internal/models"
)

// Overall is the association-wide balance: every transaction with its sign
// and every positive installment payment at full value, split into the cash
// and bank rails. Fund and internal transfers are zero-sum globally and do
// not appear here.
type Overall struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	CashIncome    decimal.Decimal `json:"cashIncome"`
	BankIncome    decimal.Decimal `json:"bankIncome"`
	CashExpenses  decimal.Decimal `json:"cashExpenses"`
	BankExpenses  decimal.Decimal `json:"bankExpenses"`
	CashBalance   decimal.Decimal `json:"cashBalance"`
	BankBalance   decimal.Decimal `json:"bankBalance"`
	Balance       decimal.Decimal `json:"balance"`
}

// GroupBalance is the position of one group: its own transactions, the net
// part of its members' installments, its share of fund transfers and its
// internal transfers.
type GroupBalance struct {
	CashIncome   decimal.Decimal `json:"cashIncome"`
	BankIncome   decimal.Decimal `json:"bankIncome"`
	CashExpenses decimal.Decimal `json:"cashExpenses"`
	BankExpenses decimal.Decimal `json:"bankExpenses"`
	CashBalance  decimal.Decimal `json:"cashBalance"`
	BankBalance  decimal.Decimal `json:"bankBalance"`
	Balance      decimal.Decimal `json:"balance"`
	PreCampCash  decimal.Decimal `json:"preCampCash"`
	PreCampBank  decimal.Decimal `json:"preCampBank"`
}

// Pools are the shared funds collected through installments, association
// wide.
type Pools struct {
	Censimento      decimal.Decimal `json:"censimento"`
	CensimentoCount int             `json:"censimentoCount"`
	BPParkFee       decimal.Decimal `json:"bpParkFee"`
	PreCamp         decimal.Decimal `json:"preCamp"`
	PreCampCash     decimal.Decimal `json:"preCampCash"`
	PreCampBank     decimal.Decimal `json:"preCampBank"`
	GroupFee        decimal.Decimal `json:"groupFee"`
	GroupFeeCash    decimal.Decimal `json:"groupFeeCash"`
	GroupFeeBank    decimal.Decimal `json:"groupFeeBank"`
}

// GroupFund is the shared group-fee pool managed by the fund manager group:
// all collected group fees minus the expenses recorded directly against the
// manager. It is distinct from the manager's own cash and bank balances.
type GroupFund struct {
	ManagerGroupID uuid.UUID       `json:"managerGroupId"`
	Balance        decimal.Decimal `json:"balance"`
}

// Warnings counts events that reference a group the snapshot does not hold.
// Orphans are excluded from per-group sums but stay in the overall balance
// and the combined ledger.
type Warnings struct {
	OrphanedTransactions int `json:"orphanedTransactions"`
	OrphanedMembers      int `json:"orphanedMembers"`
}

// Result is everything Aggregate derives from a snapshot.
type Result struct {
	Overall   Overall                       `json:"overall"`
	Groups    map[uuid.UUID]GroupBalance    `json:"groups"`
	Pools     Pools                         `json:"pools"`
	GroupFund GroupFund                     `json:"groupFund"`
	Debts     map[uuid.UUID]decimal.Decimal `json:"debts"`
	Warnings  Warnings                      `json:"warnings"`
}

// Aggregate recomputes all derived balances from the full event set.
func Aggregate(s models.Snapshot) Result {
	r := Result{
		Groups: make(map[uuid.UUID]GroupBalance, len(s.Groups)),
		Debts:  make(map[uuid.UUID]decimal.Decimal, len(s.Groups)),
	}

	for _, group := range s.Groups {
		r.Groups[group.ID] = GroupBalance{}
		r.Debts[group.ID] = decimal.Zero
	}

	manager, hasManager := models.FundManager(s.Groups, s.Settings)
	managerExpenses := decimal.Zero

	// Transactions
	for _, t := range s.Transactions {
		r.Overall = r.Overall.add(t.Type, t.PaymentMethod, t.Amount)

		gb, ok := r.Groups[t.GroupID]
		if !ok {
			r.Warnings.OrphanedTransactions++
			continue
		}
		gb = gb.add(t.Type, t.PaymentMethod, t.Amount)
		r.Groups[t.GroupID] = gb

		if hasManager && t.GroupID == manager.ID && t.Type == models.TransactionTypeExpense {
			managerExpenses = managerExpenses.Add(t.Amount)
		}
	}

	// Installments
	for _, member := range s.Members {
		group, ok := s.GroupByID(member.GroupID)
		if !ok {
			// The payments still count globally, only the per-group
			// attribution is impossible.
			for _, inst := range member.Installments {
				if inst.Paid() {
					r.Overall = r.Overall.add(models.TransactionTypeIncome, inst.PaymentMethod, inst.Amount)
				}
			}
			r.Warnings.OrphanedMembers++
			continue
		}

		qs := group.QuoteSettings
		gb := r.Groups[group.ID]

		for _, inst := range member.Installments {
			if !inst.Paid() {
				continue
			}

			r.Overall = r.Overall.add(models.TransactionTypeIncome, inst.PaymentMethod, inst.Amount)

			forGroup := inst.Amount

			// Group fee: the first installment pays it only when the
			// allocation says so, the second and third always do. This
			// asymmetry is deliberate and must not be "fixed".
			feePaysGroupFee := (inst.Slot == models.SlotFirst && inst.Allocation.GroupFee) ||
				inst.Slot == models.SlotSecond || inst.Slot == models.SlotThird

			if feePaysGroupFee {
				forGroup = forGroup.Sub(qs.GroupFee)
				r.Pools.GroupFee = r.Pools.GroupFee.Add(qs.GroupFee)
				if inst.PaymentMethod.IsCash() {
					r.Pools.GroupFeeCash = r.Pools.GroupFeeCash.Add(qs.GroupFee)
				} else {
					r.Pools.GroupFeeBank = r.Pools.GroupFeeBank.Add(qs.GroupFee)
				}
			}

			if inst.Slot == models.SlotFirst {
				if inst.Allocation.Censimento {
					forGroup = forGroup.Sub(qs.Censimento)
					r.Pools.Censimento = r.Pools.Censimento.Add(qs.Censimento)
					r.Pools.CensimentoCount++
				}
				if inst.Allocation.BPParkFee {
					forGroup = forGroup.Sub(qs.BPParkFee)
					r.Pools.BPParkFee = r.Pools.BPParkFee.Add(qs.BPParkFee)
				}
			}

			// Pre-camp: subtracted from the group's part only on an
			// allocated first installment, where it flows into the group's
			// pre-camp sub-fund. Second and third installments feed the
			// global pool without reducing the group's part.
			preCampPaid := (inst.Slot == models.SlotFirst && inst.Allocation.PreCamp) ||
				inst.Slot == models.SlotSecond || inst.Slot == models.SlotThird

			if inst.Slot == models.SlotFirst && inst.Allocation.PreCamp {
				forGroup = forGroup.Sub(qs.PreCamp)
				if inst.PaymentMethod.IsCash() {
					gb.PreCampCash = gb.PreCampCash.Add(qs.PreCamp)
				} else {
					gb.PreCampBank = gb.PreCampBank.Add(qs.PreCamp)
				}
			}

			if preCampPaid {
				r.Pools.PreCamp = r.Pools.PreCamp.Add(qs.PreCamp)
				if inst.PaymentMethod.IsCash() {
					r.Pools.PreCampCash = r.Pools.PreCampCash.Add(qs.PreCamp)
				} else {
					r.Pools.PreCampBank = r.Pools.PreCampBank.Add(qs.PreCamp)
				}
			}

			// Never let fee subtraction push the group's part below zero
			if forGroup.IsNegative() {
				forGroup = decimal.Zero
			}

			gb = gb.add(models.TransactionTypeIncome, inst.PaymentMethod, forGroup)
		}

		r.Groups[group.ID] = gb
	}

	// All collected group fees flow into the manager's accounts, credited
	// once after the per-group fold.
	if hasManager {
		gb := r.Groups[manager.ID]
		gb = gb.add(models.TransactionTypeIncome, models.PaymentMethodCash, r.Pools.GroupFeeCash)
		gb = gb.add(models.TransactionTypeIncome, models.PaymentMethodTransfer, r.Pools.GroupFeeBank)
		r.Groups[manager.ID] = gb
	}

	// Fund transfers move money between the manager's bank account and the
	// group cash boxes.
	for _, ft := range s.FundTransfers {
		sign := decimal.NewFromInt(1)
		if ft.Type == models.FundTransferDeposit {
			sign = decimal.NewFromInt(-1)
		}

		if hasManager {
			gb := r.Groups[manager.ID]
			gb.BankBalance = gb.BankBalance.Sub(sign.Mul(ft.TotalAmount))
			r.Groups[manager.ID] = gb
		}

		for _, share := range ft.Shares {
			gb, ok := r.Groups[share.GroupID]
			if !ok {
				continue
			}
			gb.CashBalance = gb.CashBalance.Add(sign.Mul(share.Amount))
			r.Groups[share.GroupID] = gb
		}
	}

	// Internal transfers are zero-sum between two groups.
	for _, it := range s.InternalTransfers {
		if from, ok := r.Groups[it.FromGroupID]; ok {
			from = from.move(it.PaymentMethod, it.Amount.Neg())
			r.Groups[it.FromGroupID] = from
		}
		if to, ok := r.Groups[it.ToGroupID]; ok {
			to = to.move(it.PaymentMethod, it.Amount)
			r.Groups[it.ToGroupID] = to
		}

		// Outstanding debt: loans to a group minus its repayments
		if it.IsRepayment {
			if _, ok := r.Debts[it.FromGroupID]; ok {
				r.Debts[it.FromGroupID] = r.Debts[it.FromGroupID].Sub(it.Amount)
			}
		} else {
			if _, ok := r.Debts[it.ToGroupID]; ok {
				r.Debts[it.ToGroupID] = r.Debts[it.ToGroupID].Add(it.Amount)
			}
		}
	}

	// Finalize the derived totals
	r.Overall.CashBalance = r.Overall.CashIncome.Sub(r.Overall.CashExpenses)
	r.Overall.BankBalance = r.Overall.BankIncome.Sub(r.Overall.BankExpenses)
	r.Overall.Balance = r.Overall.CashBalance.Add(r.Overall.BankBalance)

	for id, gb := range r.Groups {
		gb.Balance = gb.CashBalance.Add(gb.BankBalance)
		r.Groups[id] = gb
	}

	if hasManager {
		r.GroupFund = GroupFund{
			ManagerGroupID: manager.ID,
			Balance:        r.Pools.GroupFee.Sub(managerExpenses),
		}
	}

	return r
}

func (o Overall) add(t models.TransactionType, method models.PaymentMethod, amount decimal.Decimal) Overall {
	if t == models.TransactionTypeIncome {
		o.TotalIncome = o.TotalIncome.Add(amount)
		if method.IsCash() {
			o.CashIncome = o.CashIncome.Add(amount)
		} else {
			o.BankIncome = o.BankIncome.Add(amount)
		}
		return o
	}

	o.TotalExpenses = o.TotalExpenses.Add(amount)
	if method.IsCash() {
		o.CashExpenses = o.CashExpenses.Add(amount)
	} else {
		o.BankExpenses = o.BankExpenses.Add(amount)
	}
	return o
}

func (g GroupBalance) add(t models.TransactionType, method models.PaymentMethod, amount decimal.Decimal) GroupBalance {
	if t == models.TransactionTypeIncome {
		if method.IsCash() {
			g.CashIncome = g.CashIncome.Add(amount)
			g.CashBalance = g.CashBalance.Add(amount)
		} else {
			g.BankIncome = g.BankIncome.Add(amount)
			g.BankBalance = g.BankBalance.Add(amount)
		}
		return g
	}

	if method.IsCash() {
		g.CashExpenses = g.CashExpenses.Add(amount)
		g.CashBalance = g.CashBalance.Sub(amount)
	} else {
		g.BankExpenses = g.BankExpenses.Add(amount)
		g.BankBalance = g.BankBalance.Sub(amount)
	}
	return g
}

// move shifts the balance on one rail without touching the income and
// expense tallies.
func (g GroupBalance) move(method models.PaymentMethod, amount decimal.Decimal) GroupBalance {
	if method.IsCash() {
		g.CashBalance = g.CashBalance.Add(amount)
	} else {
		g.BankBalance = g.BankBalance.Add(amount)
	}
	return g
}
