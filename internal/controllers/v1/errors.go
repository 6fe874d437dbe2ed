package v1

import (
	"errors"
	"net/http"

	"github.com/scoutcassa/backend/internal/models"
	"github.com/scoutcassa/backend/internal/quota"
)

type httpError struct {
	Error string `json:"error" example:"there is no group matching your query"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, quota.ErrAllocationRequired) {
		return http.StatusConflict
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Export errors
var (
	errNothingToExport = errors.New("there are no transactions to export")
)

// Installment errors
var (
	errSlotInvalid = errors.New("the specified installment slot is invalid")
)

// Ledger errors
var (
	errEntryTypeInvalid = errors.New("the specified entry type is invalid")
)
