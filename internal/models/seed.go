package models

import (
	"gorm.io/gorm"
)

// Seed data for a fresh instance, kept from the original bookkeeping sheets.
var (
	seedCategories = []string{
		"Cibo & Bevande",
		"Trasporti",
		"Utenze",
		"Materiale",
		"Manutenzione",
	}

	seedUnits = []string{
		"Branco",
		"Reparto",
		"Clan",
	}

	seedGroup = Group{Name: DefaultFundManagerName, Color: "bg-blue-500"}
)

// Seed fills empty collections with the initial data. It runs on connect
// and after a backup restore so that a sparse backup still yields a usable
// instance.
func Seed(db *gorm.DB) error {
	return seed(db)
}

// seed fills an empty database with the initial categories, units and a
// single group. Collections that already hold rows are left alone.
func seed(db *gorm.DB) error {
	var count int64

	err := db.Model(&Category{}).Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		for _, name := range seedCategories {
			err = db.Create(&Category{Name: name}).Error
			if err != nil {
				return err
			}
		}
	}

	err = db.Model(&Unit{}).Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		for _, name := range seedUnits {
			err = db.Create(&Unit{Name: name}).Error
			if err != nil {
				return err
			}
		}
	}

	err = db.Model(&Group{}).Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		group := seedGroup
		err = db.Create(&group).Error
		if err != nil {
			return err
		}
	}

	return nil
}
