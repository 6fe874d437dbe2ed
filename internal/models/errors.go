package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Group errors
var (
	ErrGroupNameNotUnique = errors.New("the group name must be unique")
	ErrGroupInUse         = errors.New("the group cannot be deleted because transactions or members still reference it")
	ErrLastGroup          = errors.New("the last remaining group cannot be deleted")
)

// Member and installment errors
var (
	ErrSiblingsInvalid          = errors.New("the sibling bucket must be one of 0, 1, 2, >2")
	ErrSlotInvalid              = errors.New("the installment slot must be one of first, second, third, summerCamp")
	ErrInstallmentIncomplete    = errors.New("a paid installment needs both a payment date and a payment method")
	ErrInstallmentNotEmpty      = errors.New("an unpaid installment must not have a payment date or a payment method")
	ErrPaymentMethodInvalid     = errors.New("the payment method must be one of CASH, TRANSFER, CARD")
	ErrTransactionTypeInvalid   = errors.New("the transaction type must be INCOME or EXPENSE")
	ErrAmountNotPositive        = errors.New("the amount must be larger than zero")
	ErrFundTransferTypeInvalid  = errors.New("the fund transfer type must be WITHDRAWAL or DEPOSIT")
	ErrDistributionMismatch     = errors.New("the amounts distributed to the groups must add up to the total amount")
	ErrTransferSameGroup        = errors.New("an internal transfer needs two different groups")
	ErrCategoryNameNotUnique    = errors.New("the category name must be unique")
	ErrUnitNameNotUnique        = errors.New("the unit name must be unique")
)
