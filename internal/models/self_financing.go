package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SelfFinancingProject groups transactions of a self-financing activity of
// one group, e.g. a cake sale.
type SelfFinancingProject struct {
	DefaultModel
	Name    string
	GroupID uuid.UUID
}

func (p *SelfFinancingProject) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	return nil
}

// BeforeDelete unlinks the project from its transactions. The transactions
// themselves are kept. Hooks are skipped since only the reference column
// changes.
func (p *SelfFinancingProject) BeforeDelete(tx *gorm.DB) error {
	return tx.Session(&gorm.Session{SkipHooks: true}).
		Model(&Transaction{}).
		Where("self_financing_id = ?", p.ID).
		Update("self_financing_id", nil).Error
}
