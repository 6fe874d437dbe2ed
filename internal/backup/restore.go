package backup

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scoutcassa/backend/internal/models"
)

// idMap translates backup record IDs to UUIDs. UUIDs pass through, the
// string IDs of older backups are remapped consistently so that references
// between records stay intact.
type idMap map[string]uuid.UUID

func (m idMap) resolve(s string) uuid.UUID {
	if s == "" {
		return uuid.Nil
	}
	if id, err := uuid.Parse(s); err == nil {
		return id
	}
	if id, ok := m[s]; ok {
		return id
	}
	id := uuid.New()
	m[s] = id
	return id
}

// primary is resolve with a fresh UUID for records that carry no ID at all.
func (m idMap) primary(s string) uuid.UUID {
	id := m.resolve(s)
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

// Restore replaces the database contents with a migrated backup. Everything
// happens in one transaction, hooks are skipped since migrated records are
// already normalized and must be stored verbatim. Empty collections are
// seeded afterwards.
func Restore(db *gorm.DB, f File) error {
	ids := make(idMap)

	return db.Transaction(func(tx *gorm.DB) error {
		wipe := tx.Unscoped().Session(&gorm.Session{AllowGlobalUpdate: true, SkipHooks: true})
		for _, model := range []any{
			&models.Installment{},
			&models.Member{},
			&models.FundTransferShare{},
			&models.FundTransfer{},
			&models.InternalTransfer{},
			&models.Transaction{},
			&models.SelfFinancingProject{},
			&models.Category{},
			&models.Unit{},
			&models.Group{},
			&models.Settings{},
		} {
			err := wipe.Delete(model).Error
			if err != nil {
				return err
			}
		}

		insert := tx.Session(&gorm.Session{SkipHooks: true})

		for _, g := range f.Groups {
			group := models.Group{
				Name:  g.Name,
				Color: g.Color,
				QuoteSettings: models.QuoteSettings{
					InstallmentFirst:      g.QuoteSettings.Installments[string(models.SlotFirst)],
					InstallmentSecond:     g.QuoteSettings.Installments[string(models.SlotSecond)],
					InstallmentThird:      g.QuoteSettings.Installments[string(models.SlotThird)],
					InstallmentSummerCamp: g.QuoteSettings.Installments[string(models.SlotSummerCamp)],
					DiscountSiblings0:     g.QuoteSettings.SiblingDiscounts[string(models.SiblingsNone)],
					DiscountSiblings1:     g.QuoteSettings.SiblingDiscounts[string(models.SiblingsOne)],
					DiscountSiblings2:     g.QuoteSettings.SiblingDiscounts[string(models.SiblingsTwo)],
					DiscountSiblingsOver2: g.QuoteSettings.SiblingDiscounts[string(models.SiblingsOverTwo)],
					GroupFee:              g.QuoteSettings.GroupFee,
					BPParkFee:             g.QuoteSettings.BPParkFee,
					Censimento:            g.QuoteSettings.Censimento,
					PreCamp:               g.QuoteSettings.PreCamp,
				},
			}
			group.ID = ids.primary(g.ID)

			err := insert.Create(&group).Error
			if err != nil {
				return err
			}
		}

		for _, c := range f.Categories {
			category := models.Category{Name: c.Name}
			category.ID = ids.primary(c.ID)
			err := insert.Create(&category).Error
			if err != nil {
				return err
			}
		}

		for _, u := range f.Units {
			unit := models.Unit{Name: u.Name}
			unit.ID = ids.primary(u.ID)
			err := insert.Create(&unit).Error
			if err != nil {
				return err
			}
		}

		for _, m := range f.Members {
			member := models.Member{
				GroupID:  ids.resolve(m.GroupID),
				Name:     m.Name,
				Unit:     m.Unit,
				Siblings: models.Siblings(m.Siblings),
			}
			member.ID = ids.primary(m.ID)

			for _, slot := range models.Slots {
				wire := m.Installments[string(slot)]

				inst := models.Installment{
					MemberID:      member.ID,
					Slot:          slot,
					Amount:        wire.Amount,
					Date:          parseDatePtr(wire.Date),
					PaymentMethod: methodFromPtr(wire.PaymentMethod),
				}
				// hooks are skipped, IDs are assigned by hand
				inst.ID = uuid.New()
				if wire.Allocations != nil {
					inst.Allocation = models.Allocation{
						Censimento: wire.Allocations.Censimento,
						BPParkFee:  wire.Allocations.BPParkFee,
						GroupFee:   wire.Allocations.GroupFee,
						PreCamp:    wire.Allocations.PreCamp,
					}
				}
				member.Installments = append(member.Installments, inst)
			}

			err := insert.Create(&member).Error
			if err != nil {
				return err
			}
		}

		for _, t := range f.Transactions {
			txn := models.Transaction{
				GroupID:         ids.resolve(t.GroupID),
				Description:     t.Description,
				Amount:          t.Amount,
				Date:            parseDate(t.Date),
				Type:            models.TransactionType(t.Type),
				Category:        t.Category,
				PaymentMethod:   models.PaymentMethod(t.PaymentMethod),
				IsCampExpense:   t.IsCampExpense,
				AdvancedBy:      t.AdvancedBy,
				Repaid:          t.Repaid,
				RepaidDate:      parseDatePtr(t.RepaidDate),
				RepaymentMethod: methodFromPtr(t.RepaymentMethod),
			}
			txn.ID = ids.primary(t.ID)

			if t.SelfFinancingID != nil {
				id := ids.resolve(*t.SelfFinancingID)
				if id != uuid.Nil {
					txn.SelfFinancingID = &id
				}
			}

			err := insert.Create(&txn).Error
			if err != nil {
				return err
			}
		}

		for _, ft := range f.FundTransfers {
			transfer := models.FundTransfer{
				Date:        parseDate(ft.Date),
				Type:        models.FundTransferType(ft.Type),
				TotalAmount: ft.TotalAmount,
				Description: ft.Description,
			}
			transfer.ID = ids.primary(ft.ID)

			for groupID, amount := range ft.Distribution {
				share := models.FundTransferShare{
					FundTransferID: transfer.ID,
					GroupID:        ids.resolve(groupID),
					Amount:         amount,
				}
				share.ID = uuid.New()
				transfer.Shares = append(transfer.Shares, share)
			}

			err := insert.Create(&transfer).Error
			if err != nil {
				return err
			}
		}

		for _, it := range f.InternalTransfers {
			transfer := models.InternalTransfer{
				Date:          parseDate(it.Date),
				FromGroupID:   ids.resolve(it.FromGroupID),
				ToGroupID:     ids.resolve(it.ToGroupID),
				Amount:        it.Amount,
				PaymentMethod: models.PaymentMethod(it.PaymentMethod),
				Description:   it.Description,
				IsRepayment:   it.IsRepayment,
			}
			transfer.ID = ids.primary(it.ID)

			err := insert.Create(&transfer).Error
			if err != nil {
				return err
			}
		}

		for _, p := range f.SelfFinancingProjects {
			project := models.SelfFinancingProject{
				Name:    p.Name,
				GroupID: ids.resolve(p.GroupID),
			}
			project.ID = ids.primary(p.ID)

			err := insert.Create(&project).Error
			if err != nil {
				return err
			}
		}

		settings := models.Settings{
			ID:               1,
			ConfirmOnDelete:  f.ConfirmOnDelete,
			UserCapabilities: capabilitiesFromPermissions(f.UserPermissions),
		}
		if f.GroupFundManagerID != nil {
			id := ids.resolve(*f.GroupFundManagerID)
			if id != uuid.Nil {
				settings.FundManagerGroupID = &id
			}
		}
		err := insert.Create(&settings).Error
		if err != nil {
			return err
		}

		return models.Seed(tx)
	})
}

func parseDate(s string) time.Time {
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

func parseDatePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t := parseDate(*s)
	return &t
}

func methodFromPtr(s *string) models.PaymentMethod {
	if s == nil {
		return models.PaymentMethodNone
	}
	return models.PaymentMethod(*s)
}
