package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is a registered scout. Their four fee installments are created
// together with the member and updated in place, never appended.
type Member struct {
	DefaultModel
	GroupID      uuid.UUID
	Name         string
	Unit         string
	Siblings     Siblings      `gorm:"default:0"`
	Installments []Installment `gorm:"constraint:OnDelete:CASCADE" json:"installments"`
}

func (m *Member) BeforeSave(_ *gorm.DB) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Unit = strings.TrimSpace(m.Unit)

	if m.Siblings == "" {
		m.Siblings = SiblingsNone
	}
	if !m.Siblings.Valid() {
		return ErrSiblingsInvalid
	}

	return nil
}

// AfterCreate seeds the four zero installments for a new member. Restored
// members already carry their installments, those are left alone.
func (m *Member) AfterCreate(tx *gorm.DB) error {
	if len(m.Installments) > 0 {
		return nil
	}

	for _, slot := range Slots {
		err := tx.Create(&Installment{MemberID: m.ID, Slot: slot}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// Installment returns the installment for a slot, if the member carries one.
func (m Member) Installment(slot Slot) (Installment, bool) {
	for _, i := range m.Installments {
		if i.Slot == slot {
			return i, true
		}
	}
	return Installment{}, false
}
