package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category is a label for transactions.
type Category struct {
	DefaultModel
	Name string `gorm:"uniqueIndex:category_name"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}
