package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultFundManagerName is the group that holds the shared bank account
// when no fund manager has been designated explicitly.
const DefaultFundManagerName = "Capi"

// Settings is the single-row configuration of the instance.
type Settings struct {
	ID                 uint `gorm:"primaryKey"`
	Timestamps
	FundManagerGroupID *uuid.UUID
	ConfirmOnDelete    bool   `gorm:"default:true"`
	UserCapabilities   string // comma-separated capability names for the user role
}

// LoadSettings returns the settings row, creating it with defaults on first
// use.
func LoadSettings(db *gorm.DB) (Settings, error) {
	var settings Settings

	err := db.First(&settings).Error
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, ErrResourceNotFound) {
		return Settings{}, err
	}

	settings = Settings{ID: 1, ConfirmOnDelete: true}
	err = db.Create(&settings).Error
	if err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// FundManager resolves the group holding the shared group-fee pool: the
// configured group if it still exists, otherwise the group named after the
// leaders, otherwise the oldest group. The second return value is false
// when there are no groups at all.
func FundManager(groups []Group, settings Settings) (Group, bool) {
	if settings.FundManagerGroupID != nil {
		for _, group := range groups {
			if group.ID == *settings.FundManagerGroupID {
				return group, true
			}
		}
	}

	for _, group := range groups {
		if strings.EqualFold(group.Name, DefaultFundManagerName) {
			return group, true
		}
	}

	if len(groups) > 0 {
		return groups[0], true
	}

	return Group{}, false
}
