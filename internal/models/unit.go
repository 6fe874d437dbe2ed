package models

import (
	"strings"

	"gorm.io/gorm"
)

// Unit is an organizational unit members can be associated with.
type Unit struct {
	DefaultModel
	Name string `gorm:"uniqueIndex:unit_name"`
}

func (u *Unit) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	return nil
}
