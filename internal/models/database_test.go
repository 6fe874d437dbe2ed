package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutcassa/backend/internal/models"
)

// TestSeed verifies the initial data of a fresh instance.
func (suite *TestSuiteStandard) TestSeed() {
	var categories []models.Category
	require.Nil(suite.T(), models.DB.Order("name ASC").Find(&categories).Error)
	require.Len(suite.T(), categories, 5)
	assert.Equal(suite.T(), "Cibo & Bevande", categories[0].Name)
	assert.Equal(suite.T(), "Utenze", categories[4].Name)

	var units []models.Unit
	require.Nil(suite.T(), models.DB.Order("name ASC").Find(&units).Error)
	require.Len(suite.T(), units, 3)
	assert.Equal(suite.T(), "Branco", units[0].Name)

	var groups []models.Group
	require.Nil(suite.T(), models.DB.Find(&groups).Error)
	require.Len(suite.T(), groups, 1)
	assert.Equal(suite.T(), models.DefaultFundManagerName, groups[0].Name)
}

// TestSeedExisting verifies that seeding leaves collections with data alone.
func (suite *TestSuiteStandard) TestSeedExisting() {
	var unit models.Unit
	require.Nil(suite.T(), models.DB.First(&unit, "name = ?", "Branco").Error)
	require.Nil(suite.T(), models.DB.Unscoped().Delete(&unit).Error)

	require.Nil(suite.T(), models.Seed(models.DB))

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Unit{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(2), count, "Partially filled collections must not be seeded again")
}

// TestResourceNotFound verifies the user friendly "not found" errors derived
// from the table name.
func (suite *TestSuiteStandard) TestResourceNotFound() {
	err := models.DB.First(&models.Group{}, "name = ?", "does not exist").Error
	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Equal(suite.T(), "there is no group matching your query", err.Error())

	err = models.DB.First(&models.Category{}, "name = ?", "does not exist").Error
	require.NotNil(suite.T(), err)
	assert.Equal(suite.T(), "there is no category matching your query", err.Error())
}

// TestUniqueConstraintErrors verifies the translation of uniqueness
// violations.
func (suite *TestSuiteStandard) TestUniqueConstraintErrors() {
	err := models.DB.Create(&models.Group{Name: models.DefaultFundManagerName}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGroupNameNotUnique)

	err = models.DB.Create(&models.Category{Name: "Trasporti"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameNotUnique)

	err = models.DB.Create(&models.Unit{Name: "Branco"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrUnitNameNotUnique)
}

// TestGeneralError verifies that unspecific database errors are hidden
// behind a generic message.
func (suite *TestSuiteStandard) TestGeneralError() {
	suite.CloseDB()

	err := models.DB.Create(&models.Category{Name: "Eventi"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)

	err = models.DB.Find(&[]models.Group{}).Error
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestConnectInvalid() {
	err := models.Connect("/this/path/does/not/exist/db.sqlite")
	assert.NotNil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestDecimalStorage() {
	group := suite.createTestGroup(models.Group{
		Name: "Reparto",
		QuoteSettings: models.QuoteSettings{
			InstallmentFirst: decimal.RequireFromString("120.45"),
		},
	})

	var reread models.Group
	require.Nil(suite.T(), models.DB.First(&reread, group.ID).Error)
	assert.True(suite.T(), reread.QuoteSettings.InstallmentFirst.Equal(decimal.RequireFromString("120.45")))
}
