package models

// TransactionType determines the sign a transaction contributes with.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// PaymentMethod is the rail money moved on. CASH is the physical cash box,
// TRANSFER and CARD both settle on the bank account.
type PaymentMethod string

const (
	PaymentMethodNone     PaymentMethod = ""
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodCard     PaymentMethod = "CARD"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentMethodCash || p == PaymentMethodTransfer || p == PaymentMethodCard
}

// IsCash reports whether the method settles in the cash box rather than on
// the bank account.
func (p PaymentMethod) IsCash() bool {
	return p == PaymentMethodCash
}

// FundTransferType determines the direction of a fund transfer. A withdrawal
// moves money from the fund manager's bank account into group cash boxes, a
// deposit is the reverse.
type FundTransferType string

const (
	FundTransferWithdrawal FundTransferType = "WITHDRAWAL"
	FundTransferDeposit    FundTransferType = "DEPOSIT"
)

func (t FundTransferType) Valid() bool {
	return t == FundTransferWithdrawal || t == FundTransferDeposit
}

// Siblings is the sibling-count bucket used for installment discounts.
type Siblings string

const (
	SiblingsNone    Siblings = "0"
	SiblingsOne     Siblings = "1"
	SiblingsTwo     Siblings = "2"
	SiblingsOverTwo Siblings = ">2"
)

func (s Siblings) Valid() bool {
	switch s {
	case SiblingsNone, SiblingsOne, SiblingsTwo, SiblingsOverTwo:
		return true
	}
	return false
}

// Slot identifies one of the four fee installments of a member.
type Slot string

const (
	SlotFirst      Slot = "first"
	SlotSecond     Slot = "second"
	SlotThird      Slot = "third"
	SlotSummerCamp Slot = "summerCamp"
)

// Slots lists all installment slots in their canonical order.
var Slots = []Slot{SlotFirst, SlotSecond, SlotThird, SlotSummerCamp}

func (s Slot) Valid() bool {
	switch s {
	case SlotFirst, SlotSecond, SlotThird, SlotSummerCamp:
		return true
	}
	return false
}

// Regular reports whether the slot is one of the three regular fee
// installments, as opposed to the summer camp one.
func (s Slot) Regular() bool {
	return s == SlotFirst || s == SlotSecond || s == SlotThird
}
