package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"github.com/scoutcassa/backend/internal/models"
)

// Filter is a conjunctive predicate set over the feed. Zero values mean
// "no restriction".
type Filter struct {
	Text       string
	Type       models.TransactionType
	Category   string
	StartDate  time.Time
	EndDate    time.Time
	LedgerType EntryType
	GroupID    uuid.UUID
}

var textMatcher = search.New(language.Und, search.IgnoreCase, search.IgnoreDiacritics)

// matchText is a case-insensitive substring match. A pattern containing
// wildcards is matched as a glob over the whole string instead.
func matchText(pattern, s string) bool {
	if strings.ContainsAny(pattern, "*?") {
		return glob.Glob(strings.ToLower(pattern), strings.ToLower(s))
	}

	start, _ := textMatcher.IndexString(s, pattern)
	return start >= 0
}

// sameOrAfter compares at day granularity.
func sameOrAfter(t, reference time.Time) bool {
	ty, tm, td := t.Date()
	ry, rm, rd := reference.Date()
	return time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).
		Compare(time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC)) >= 0
}

// Matches reports whether a single entry passes all predicates. The Type
// predicate is ignored here, it only applies to raw transactions through
// ApplyTransactions.
func (f Filter) Matches(e Entry) bool {
	if f.Text != "" && !matchText(f.Text, e.Description) {
		return false
	}

	if f.LedgerType != "" && e.Type != f.LedgerType {
		// Installment payments are a form of income
		if !(f.LedgerType == EntryTransactionIncome && e.Type == EntryInstallmentPayment) {
			return false
		}
	}

	// Category only ever describes transactions, every other entry kind is
	// excluded when a category is selected.
	if f.Category != "" {
		if e.Type != EntryTransactionIncome && e.Type != EntryTransactionExpense {
			return false
		}
		if e.Category != f.Category {
			return false
		}
	}

	if !f.StartDate.IsZero() && !sameOrAfter(e.Date, f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && !sameOrAfter(f.EndDate, e.Date) {
		return false
	}

	if f.GroupID != uuid.Nil {
		found := false
		for _, id := range e.GroupIDs {
			if id == f.GroupID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Apply returns the entries passing all predicates, keeping their order.
func (f Filter) Apply(entries []Entry) []Entry {
	matched := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			matched = append(matched, e)
		}
	}
	return matched
}

// ApplyTransactions filters raw transactions with the same predicate set.
// The LedgerType predicate does not apply here, Type takes its place.
func (f Filter) ApplyTransactions(txns []models.Transaction) []models.Transaction {
	matched := make([]models.Transaction, 0, len(txns))

	for _, t := range txns {
		if f.Text != "" && !matchText(f.Text, t.Description) {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if !f.StartDate.IsZero() && !sameOrAfter(t.Date, f.StartDate) {
			continue
		}
		if !f.EndDate.IsZero() && !sameOrAfter(f.EndDate, t.Date) {
			continue
		}
		if f.GroupID != uuid.Nil && t.GroupID != f.GroupID {
			continue
		}

		matched = append(matched, t)
	}

	return matched
}
