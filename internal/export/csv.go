// Package export renders transactions as CSV for download.
package export

import (
	"strings"

	"github.com/google/uuid"

	"github.com/scoutcassa/backend/internal/models"
)

const dateLayout = "2006-01-02"

var csvHeader = []string{
	"ID",
	"Data",
	"Gruppo",
	"Descrizione",
	"Tipo",
	"Categoria",
	"Importo",
	"Metodo di Pagamento",
	"Spese per Campo",
	"Anticipato Da",
	"Restituita",
	"Data Restituzione",
	"Metodo Rimborso",
}

// TransactionsCSV renders the transactions with one header row and a fixed
// column order. The description is always quoted with inner quotes doubled,
// all other fields are written raw. The amount carries the sign of the
// transaction type.
func TransactionsCSV(txns []models.Transaction, groups []models.Group) string {
	names := make(map[uuid.UUID]string, len(groups))
	for _, g := range groups {
		names[g.ID] = g.Name
	}

	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	b.WriteByte('\n')

	for _, t := range txns {
		groupName, ok := names[t.GroupID]
		if !ok {
			groupName = "N/A"
		}

		amount := t.Amount
		tipo := "Entrata"
		if t.Type == models.TransactionTypeExpense {
			amount = amount.Neg()
			tipo = "Uscita"
		}

		advancedBy := ""
		if t.AdvancedBy != nil {
			advancedBy = *t.AdvancedBy
		}

		repaidDate := ""
		if t.RepaidDate != nil {
			repaidDate = t.RepaidDate.Format(dateLayout)
		}

		row := []string{
			t.ID.String(),
			t.Date.Format(dateLayout),
			groupName,
			quote(t.Description),
			tipo,
			t.Category,
			amount.String(),
			string(t.PaymentMethod),
			yesNo(t.IsCampExpense),
			advancedBy,
			yesNo(t.Repaid),
			repaidDate,
			string(t.RepaymentMethod),
		}

		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}

	return b.String()
}

// quote wraps a field in double quotes with inner quotes doubled.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func yesNo(b bool) string {
	if b {
		return "Sì"
	}
	return "No"
}
