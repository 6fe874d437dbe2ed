package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Snapshot is the full event set the derived read models are computed from.
// It is loaded once per read and passed through the pure packages, never
// mutated by them.
type Snapshot struct {
	Groups            []Group
	Members           []Member
	Transactions      []Transaction
	FundTransfers     []FundTransfer
	InternalTransfers []InternalTransfer
	Projects          []SelfFinancingProject
	Settings          Settings
}

// LoadSnapshot reads the full event set from the database.
func LoadSnapshot(db *gorm.DB) (Snapshot, error) {
	var s Snapshot

	err := db.Order("created_at ASC").Find(&s.Groups).Error
	if err != nil {
		return Snapshot{}, err
	}

	err = db.Preload("Installments").Order("created_at ASC").Find(&s.Members).Error
	if err != nil {
		return Snapshot{}, err
	}

	err = db.Order("created_at ASC").Find(&s.Transactions).Error
	if err != nil {
		return Snapshot{}, err
	}

	err = db.Preload("Shares").Order("created_at ASC").Find(&s.FundTransfers).Error
	if err != nil {
		return Snapshot{}, err
	}

	err = db.Order("created_at ASC").Find(&s.InternalTransfers).Error
	if err != nil {
		return Snapshot{}, err
	}

	err = db.Order("created_at ASC").Find(&s.Projects).Error
	if err != nil {
		return Snapshot{}, err
	}

	s.Settings, err = LoadSettings(db)
	if err != nil {
		return Snapshot{}, err
	}

	return s, nil
}

// GroupByID returns the group with the given ID as stored in the snapshot.
func (s Snapshot) GroupByID(id uuid.UUID) (Group, bool) {
	for _, group := range s.Groups {
		if group.ID == id {
			return group, true
		}
	}
	return Group{}, false
}
