package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/scoutcassa/backend/internal/auth"
	"github.com/scoutcassa/backend/internal/models"
)

var ErrInvalidBackup = errors.New("this file is not a valid backup")

// arrayKeys are the collection keys a valid backup must carry.
var arrayKeys = []string{
	"transactions",
	"categories",
	"groups",
	"members",
	"units",
	"fundTransfers",
	"internalTransfers",
	"selfFinancingProjects",
}

// Summary reports the per-collection counts of a validated backup, shown to
// the user before they commit to a restore.
type Summary struct {
	Transactions          int `json:"transactions"`
	Categories            int `json:"categories"`
	Groups                int `json:"groups"`
	Members               int `json:"members"`
	Units                 int `json:"units"`
	FundTransfers         int `json:"fundTransfers"`
	InternalTransfers     int `json:"internalTransfers"`
	SelfFinancingProjects int `json:"selfFinancingProjects"`
}

// Validate checks the structural shape of a backup: every collection key
// present and an array, confirmOnDelete a boolean. It returns the collection
// counts without decoding the records themselves.
func Validate(raw []byte) (Summary, error) {
	var top map[string]json.RawMessage
	err := json.Unmarshal(raw, &top)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	counts := make(map[string]int, len(arrayKeys))
	for _, key := range arrayKeys {
		value, ok := top[key]
		if !ok {
			return Summary{}, fmt.Errorf("%w: missing key %q", ErrInvalidBackup, key)
		}

		var elements []json.RawMessage
		err = json.Unmarshal(value, &elements)
		if err != nil {
			return Summary{}, fmt.Errorf("%w: key %q is not an array", ErrInvalidBackup, key)
		}
		counts[key] = len(elements)
	}

	confirm, ok := top["confirmOnDelete"]
	if !ok {
		return Summary{}, fmt.Errorf("%w: missing key %q", ErrInvalidBackup, "confirmOnDelete")
	}
	var confirmValue bool
	err = json.Unmarshal(confirm, &confirmValue)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: confirmOnDelete is not a boolean", ErrInvalidBackup)
	}

	return Summary{
		Transactions:          counts["transactions"],
		Categories:            counts["categories"],
		Groups:                counts["groups"],
		Members:               counts["members"],
		Units:                 counts["units"],
		FundTransfers:         counts["fundTransfers"],
		InternalTransfers:     counts["internalTransfers"],
		SelfFinancingProjects: counts["selfFinancingProjects"],
	}, nil
}

// Migrate decodes a backup tolerantly. The top-level object must parse,
// everything below is defaulted field by field: malformed records are
// dropped, missing scalars become zero values, unknown sibling buckets fall
// back to "0" and missing installment slots are filled with zero slots.
// Collections left empty are seeded again after the restore.
func Migrate(raw []byte) (File, error) {
	var top map[string]json.RawMessage
	err := json.Unmarshal(raw, &top)
	if err != nil {
		return File{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	f := File{
		Transactions:          decodeEach[Transaction](top["transactions"]),
		Categories:            decodeEach[Named](top["categories"]),
		Groups:                decodeEach[Group](top["groups"]),
		Members:               decodeEach[Member](top["members"]),
		Units:                 decodeEach[Named](top["units"]),
		FundTransfers:         decodeEach[FundTransfer](top["fundTransfers"]),
		InternalTransfers:     decodeEach[InternalTransfer](top["internalTransfers"]),
		SelfFinancingProjects: decodeEach[SelfFinancingProject](top["selfFinancingProjects"]),
		ConfirmOnDelete:       true,
	}

	if confirm, ok := top["confirmOnDelete"]; ok {
		var value bool
		if json.Unmarshal(confirm, &value) == nil {
			f.ConfirmOnDelete = value
		}
	}
	if manager, ok := top["groupFundManagerId"]; ok {
		var value *string
		if json.Unmarshal(manager, &value) == nil {
			f.GroupFundManagerID = value
		}
	}
	if perms, ok := top["userPermissions"]; ok {
		var value map[string]bool
		if json.Unmarshal(perms, &value) == nil {
			f.UserPermissions = value
		}
	}

	for i := range f.Transactions {
		t := &f.Transactions[i]
		if t.Type != string(models.TransactionTypeIncome) {
			t.Type = string(models.TransactionTypeExpense)
		}
		if !models.PaymentMethod(t.PaymentMethod).Valid() {
			t.PaymentMethod = string(models.PaymentMethodCash)
		}
	}

	for i := range f.Members {
		m := &f.Members[i]
		if !models.Siblings(m.Siblings).Valid() {
			m.Siblings = string(models.SiblingsNone)
		}
		if m.Installments == nil {
			m.Installments = make(map[string]Installment, len(models.Slots))
		}
		for _, slot := range models.Slots {
			if _, ok := m.Installments[string(slot)]; !ok {
				m.Installments[string(slot)] = Installment{}
			}
		}
	}

	for i := range f.FundTransfers {
		ft := &f.FundTransfers[i]
		if !models.FundTransferType(ft.Type).Valid() {
			ft.Type = string(models.FundTransferWithdrawal)
		}
	}

	for i := range f.InternalTransfers {
		it := &f.InternalTransfers[i]
		if !models.PaymentMethod(it.PaymentMethod).Valid() {
			it.PaymentMethod = string(models.PaymentMethodCash)
		}
	}

	return f, nil
}

// decodeEach reads an array element by element, dropping everything that
// does not decode into T.
func decodeEach[T any](raw json.RawMessage) []T {
	if raw == nil {
		return nil
	}

	var elements []json.RawMessage
	err := json.Unmarshal(raw, &elements)
	if err != nil {
		return nil
	}

	decoded := make([]T, 0, len(elements))
	for _, element := range elements {
		if !bytes.HasPrefix(bytes.TrimSpace(element), []byte("{")) {
			continue
		}
		var value T
		if json.Unmarshal(element, &value) != nil {
			continue
		}
		decoded = append(decoded, value)
	}
	return decoded
}

// permissionsFromSettings expands the stored capability list into the full
// permission map of the backup format.
func permissionsFromSettings(settings models.Settings) map[string]bool {
	perms := make(map[string]bool, len(auth.Capabilities))
	for _, c := range auth.Capabilities {
		perms[string(c)] = false
	}
	for _, c := range auth.ParseCapabilities(settings.UserCapabilities) {
		perms[string(c)] = true
	}
	return perms
}

// capabilitiesFromPermissions collapses a permission map back into the
// stored capability list. Unknown names are dropped.
func capabilitiesFromPermissions(perms map[string]bool) string {
	var granted []auth.Capability
	for _, c := range auth.Capabilities {
		if perms[string(c)] {
			granted = append(granted, c)
		}
	}
	return auth.FormatCapabilities(granted)
}
